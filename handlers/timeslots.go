package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	timeslotRepo "torcal/database/repository/timeslot"
	"torcal/models"
	"torcal/services/availability"
	"torcal/utils"
)

// TimeslotHandler serves the filtered and consolidated timeslot views the
// grid renders.
type TimeslotHandler struct {
	Repo      timeslotRepo.TimeslotRepository
	Engine    *availability.Engine
	Threshold int
	// WindowDays bounds the default query window when the caller omits it.
	WindowDays int
}

func NewTimeslotHandler(repo timeslotRepo.TimeslotRepository, engine *availability.Engine, threshold, windowDays int) *TimeslotHandler {
	return &TimeslotHandler{Repo: repo, Engine: engine, Threshold: threshold, WindowDays: windowDays}
}

// GetTimeslotsHandler handles GET /api/timeslots?start&end&type&meetingType.
func (h *TimeslotHandler) GetTimeslotsHandler(c *gin.Context) {
	visible, ok := h.visibleFromQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, visible)
}

// GetDisplayTimeslotsHandler handles GET /api/timeslots/display: the same
// filter pipeline, consolidated into display units for the grid.
func (h *TimeslotHandler) GetDisplayTimeslotsHandler(c *gin.Context) {
	visible, ok := h.visibleFromQuery(c)
	if !ok {
		return
	}
	narrow := c.Query("narrow") == "true" || c.Query("narrow") == "1"
	units := availability.ConsolidateAll(visible, h.Threshold, narrow)
	c.JSON(http.StatusOK, units)
}

func (h *TimeslotHandler) visibleFromQuery(c *gin.Context) ([]availability.VisibleTimeslot, bool) {
	now := time.Now()

	start, err := parseInstant(c.Query("start"), now)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start parameter", err.Error())
		return nil, false
	}
	windowDays := h.WindowDays
	if windowDays <= 0 {
		windowDays = 30
	}
	end, err := parseInstant(c.Query("end"), start.AddDate(0, 0, windowDays))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end parameter", err.Error())
		return nil, false
	}

	clients := models.SelectTags(splitCSV(c.Query("type"))...)
	meetings := models.SelectTags(splitCSV(c.Query("meetingType"))...)

	raw := h.Repo.AvailableByDateRange(start, end)
	return h.Engine.VisibleTimeslots(raw, clients, meetings, now), true
}

// parseInstant accepts RFC3339 or a plain date; an empty value yields the
// fallback.
func parseInstant(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
