package models

import "time"

// Booking records a confirmed appointment against a timeslot. It references
// the slot, it does not own it, and it is immutable once created.
type Booking struct {
	ID              int64     `json:"id"`
	TimeslotID      int64     `json:"timeslotId"`
	Reference       string    `json:"reference"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	MeetingType     string    `json:"meetingType"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
