package bookingRepo

import (
	"errors"

	"torcal/models"
)

// ErrNotFound is returned when no booking carries the requested ID.
var ErrNotFound = errors.New("booking not found")

// BookingRepository stores confirmed bookings. Records are append-only.
type BookingRepository interface {
	Create(b models.Booking) models.Booking
	GetByID(id int64) (*models.Booking, error)
	ByTimeslot(timeslotID int64) []models.Booking
	All() []models.Booking
	Count() int
}
