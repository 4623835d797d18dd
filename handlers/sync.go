package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	syncSvc "torcal/services/sync"
	"torcal/utils"
)

// SyncHandler exposes the manual resync trigger and the health snapshot.
type SyncHandler struct {
	Service *syncSvc.SyncService
}

func NewSyncHandler(svc *syncSvc.SyncService) *SyncHandler {
	return &SyncHandler{Service: svc}
}

// TriggerSyncHandler handles POST /api/sync.
func (h *SyncHandler) TriggerSyncHandler(c *gin.Context) {
	if err := h.Service.SyncAll(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "sync failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
}

// HealthHandler handles GET /health.
func (h *SyncHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
}
