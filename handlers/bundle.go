package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every route handler so wiring stays in main and
// registration stays in routes.
type HandlerBundle struct {
	// Timeslot endpoints.
	GetTimeslotsHandler        gin.HandlerFunc
	GetDisplayTimeslotsHandler gin.HandlerFunc

	// Eligibility endpoints.
	GetClientDataHandler   gin.HandlerFunc
	GetMeetingTypesHandler gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc

	// Sync endpoints.
	TriggerSyncHandler gin.HandlerFunc
	HealthHandler      gin.HandlerFunc
}
