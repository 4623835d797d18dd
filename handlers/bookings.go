package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"torcal/services/booking"
	"torcal/utils"
)

// BookingHandler exposes the booking transaction.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type createBookingRequest struct {
	TimeslotID      int64      `json:"timeslotId" binding:"required"`
	Name            string     `json:"name" binding:"required"`
	Email           string     `json:"email" binding:"required,email"`
	Phone           string     `json:"phone"`
	MeetingType     string     `json:"meetingType" binding:"required"`
	Notes           string     `json:"notes"`
	ClientType      string     `json:"clientType"`
	StartTime       *time.Time `json:"startTime"`
	DurationMinutes int        `json:"durationMinutes"`
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		TimeslotID:      req.TimeslotID,
		ClientType:      req.ClientType,
		MeetingType:     req.MeetingType,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Notes:           req.Notes,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		utils.JSONError(c, statusForBookingError(err), "booking failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id", c.Param("id"))
		return
	}
	b, err := h.Service.GetBooking(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, statusForBookingError(err), "booking not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

func statusForBookingError(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeInvalidArgument:
		return http.StatusBadRequest
	case booking.CodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
