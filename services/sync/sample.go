package sync

import (
	"fmt"
	"time"

	"torcal/models"
)

// Sample data keeps the system usable end-to-end when no Google credentials
// are configured (local development, demos). The shapes rotate so the grid
// exercises every consolidation path.

var sampleClientTypes = []string{models.ClientTypeAll, "new", "returning", "group"}

var sampleMeetingSets = []models.MeetingTypeList{
	{models.MeetingTypePhone, models.MeetingTypeVideo, models.MeetingTypeInPerson},
	{models.MeetingTypePhone, models.MeetingTypeVideo},
	{models.MeetingTypeVideo},
	{models.MeetingTypeInPerson},
}

// SampleTimeslots generates a working week of hour-long availability windows
// starting tomorrow morning.
func SampleTimeslots(now time.Time, days int) []models.Timeslot {
	if days <= 0 {
		days = 7
	}
	var slots []models.Timeslot
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	n := 0
	for d := 0; d < days; d++ {
		date := day.AddDate(0, 0, d)
		// Friday afternoon through Saturday is off.
		if date.Weekday() == time.Saturday {
			continue
		}
		for hour := 9; hour < 17; hour += 2 {
			start := date.Add(time.Duration(hour) * time.Hour)
			slots = append(slots, models.Timeslot{
				StartTime:        start,
				EndTime:          start.Add(time.Hour),
				ClientType:       sampleClientTypes[n%len(sampleClientTypes)],
				MeetingTypes:     append(models.MeetingTypeList(nil), sampleMeetingSets[n%len(sampleMeetingSets)]...),
				IsAvailable:      true,
				ExternalEventRef: fmt.Sprintf("sample-%d", n),
			})
			n++
		}
	}
	return slots
}

// SampleRules mirrors the built-in eligibility defaults as sheet-style rules
// so the client-data endpoint has something to serve without a spreadsheet.
func SampleRules() []models.ClientEligibilityRule {
	return []models.ClientEligibilityRule{
		{ClientType: "new", MeetingType: models.MeetingTypePhone, DurationMinutes: 30, IsActive: true, DisplayName: "לקוח חדש"},
		{ClientType: "new", MeetingType: models.MeetingTypeVideo, DurationMinutes: 45, IsActive: true, DisplayName: "לקוח חדש"},
		{ClientType: "new", MeetingType: models.MeetingTypeInPerson, DurationMinutes: 60, IsActive: true, DisplayName: "לקוח חדש"},
		{ClientType: "returning", MeetingType: models.MeetingTypePhone, DurationMinutes: 15, IsActive: true, DisplayName: "לקוח חוזר"},
		{ClientType: "returning", MeetingType: models.MeetingTypeVideo, DurationMinutes: 30, IsActive: true, DisplayName: "לקוח חוזר"},
		{ClientType: "returning", MeetingType: models.MeetingTypeInPerson, DurationMinutes: 45, IsActive: true, DisplayName: "לקוח חוזר"},
		{ClientType: "group", MeetingType: models.MeetingTypeVideo, DurationMinutes: 60, IsActive: true, DisplayName: "קבוצה"},
		{ClientType: "group", MeetingType: models.MeetingTypeInPerson, DurationMinutes: 90, IsActive: true, DisplayName: "קבוצה"},
	}
}
