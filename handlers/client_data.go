package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogRepo "torcal/database/repository/catalog"
	rulesRepo "torcal/database/repository/rules"
	"torcal/services/availability"
)

// ClientDataHandler serves the eligibility view the booking form drives its
// dropdowns from.
type ClientDataHandler struct {
	Rules   rulesRepo.RuleRepository
	Catalog catalogRepo.MeetingTypeRepository
	Engine  *availability.Engine
}

func NewClientDataHandler(rules rulesRepo.RuleRepository, catalog catalogRepo.MeetingTypeRepository, engine *availability.Engine) *ClientDataHandler {
	return &ClientDataHandler{Rules: rules, Catalog: catalog, Engine: engine}
}

type clientEntry struct {
	Type        string         `json:"type"`
	DisplayName string         `json:"displayName"`
	Meetings    map[string]int `json:"meetings"`
}

// GetClientDataHandler handles GET /api/client-data.
func (h *ClientDataHandler) GetClientDataHandler(c *gin.Context) {
	clientTypes := h.Rules.ClientTypes()
	if len(clientTypes) == 0 {
		// Same degradation path the filter engine takes.
		clientTypes = availability.DefaultClientTypes()
	}

	clients := make([]clientEntry, 0, len(clientTypes))
	for _, ct := range clientTypes {
		clients = append(clients, clientEntry{
			Type:        ct,
			DisplayName: h.Rules.DisplayName(ct),
			Meetings:    h.Engine.AllowedMeetingTypes(ct),
		})
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetMeetingTypesHandler handles GET /api/meeting-types.
func (h *ClientDataHandler) GetMeetingTypesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.All())
}
