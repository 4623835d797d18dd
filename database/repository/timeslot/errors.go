package timeslotRepo

import "errors"

var (
	// ErrNotFound is returned when no timeslot carries the requested ID.
	ErrNotFound = errors.New("timeslot not found")
	// ErrUnavailable is returned when a split targets an already booked slot.
	ErrUnavailable = errors.New("timeslot is no longer available")
)
