package routes

import (
	"github.com/gin-gonic/gin"

	"torcal/handlers"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/timeslots", hb.GetTimeslotsHandler)
		api.GET("/timeslots/display", hb.GetDisplayTimeslotsHandler)
		api.GET("/client-data", hb.GetClientDataHandler)
		api.GET("/meeting-types", hb.GetMeetingTypesHandler)
		api.POST("/bookings", hb.CreateBookingHandler)
		api.GET("/bookings/:id", hb.GetBookingHandler)
		api.POST("/sync", hb.TriggerSyncHandler)
	}

	r.GET("/health", hb.HealthHandler)
}
