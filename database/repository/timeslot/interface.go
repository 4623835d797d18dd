package timeslotRepo

import (
	"time"

	"torcal/models"
)

// TimeslotRepository owns the timeslot collection. All reads return copies;
// the only mutations are creation (sync or split), MarkUnavailable, and the
// full wipe before a resync.
//
// The *ByDateRange and *Type queries filter on IsAvailable; ByDateRange is
// the raw window used internally before eligibility filtering.
type TimeslotRepository interface {
	Create(slot models.Timeslot) models.Timeslot
	CreateMany(slots []models.Timeslot) []models.Timeslot
	GetByID(id int64) (*models.Timeslot, error)
	All() []models.Timeslot
	ByDateRange(start, end time.Time) []models.Timeslot
	AvailableByDateRange(start, end time.Time) []models.Timeslot
	ByClientType(clientType string) []models.Timeslot
	ByMeetingType(meetingType string) []models.Timeslot
	ByClientAndMeetingType(clientType, meetingType string) []models.Timeslot
	MarkUnavailable(id int64) error
	SplitForBooking(id int64, remainders []models.Timeslot) ([]models.Timeslot, error)
	Clear()
	ReplaceAll(slots []models.Timeslot) []models.Timeslot
	Count() int
}
