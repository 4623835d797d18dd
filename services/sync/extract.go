package sync

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"torcal/models"
)

// Keyword tables for normalizing free-text event fields. Events are written
// by hand in Hebrew or English, so matching is substring-based over the
// lowercased summary and description. This adapter is the only place text
// heuristics live; everything downstream sees typed Timeslot records.

var clientTypeKeywords = []struct {
	tag      string
	keywords []string
}{
	{"new", []string{"new client", "לקוח חדש", "חדש"}},
	{"returning", []string{"returning", "לקוח חוזר", "חוזר"}},
	{"group", []string{"group", "קבוצתי", "קבוצה"}},
}

var meetingTypeKeywords = []struct {
	tag      string
	keywords []string
}{
	{models.MeetingTypePhone, []string{"phone", "טלפון", "שיחת טלפון"}},
	{models.MeetingTypeVideo, []string{"video", "zoom", "וידאו", "זום"}},
	{models.MeetingTypeInPerson, []string{"in person", "in-person", "פרונטלי", "פרונטלית", "במשרד"}},
}

// bookedMarker tags events this system writes for confirmed bookings. The
// sync skips marked events, so a resync never re-ingests a booked interval
// as availability.
const bookedMarker = "booked-ref:"

// clientTypeLabels is the inverse of clientTypeKeywords: the label written
// into a remainder event so the next resync extracts the same tag back out.
var clientTypeLabels = map[string]string{
	"new":       "לקוח חדש",
	"returning": "לקוח חוזר",
	"group":     "קבוצתי",
}

// ExtractClientType finds the eligibility tag hinted at in the event text.
// No hint means the slot is open to everyone.
func ExtractClientType(summary, description string) string {
	text := strings.ToLower(summary + " " + description)
	for _, entry := range clientTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.tag
			}
		}
	}
	return models.ClientTypeAll
}

// ExtractMeetingTypes finds the modalities hinted at in the event text. No
// hint means the slot offers every catalog modality.
func ExtractMeetingTypes(summary, description string) models.MeetingTypeList {
	text := strings.ToLower(summary + " " + description)
	out := make(models.MeetingTypeList, 0, len(meetingTypeKeywords))
	for _, entry := range meetingTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				out = append(out, entry.tag)
				break
			}
		}
	}
	if len(out) == 0 {
		return models.MeetingTypeList{
			models.MeetingTypePhone,
			models.MeetingTypeVideo,
			models.MeetingTypeInPerson,
		}
	}
	return out
}

// TimeslotFromEvent normalizes one calendar event into a typed Timeslot.
// All-day events, events without resolvable instants, and events this system
// wrote itself to mirror bookings are rejected.
func TimeslotFromEvent(ev *calendar.Event) (models.Timeslot, error) {
	if ev.Status == "cancelled" {
		return models.Timeslot{}, fmt.Errorf("event %s is cancelled", ev.Id)
	}
	if strings.Contains(ev.Description, bookedMarker) {
		return models.Timeslot{}, fmt.Errorf("event %s mirrors a booking", ev.Id)
	}
	start, err := eventInstant(ev.Start)
	if err != nil {
		return models.Timeslot{}, fmt.Errorf("event %s: %w", ev.Id, err)
	}
	end, err := eventInstant(ev.End)
	if err != nil {
		return models.Timeslot{}, fmt.Errorf("event %s: %w", ev.Id, err)
	}

	return models.Timeslot{
		StartTime:        start,
		EndTime:          end,
		ClientType:       ExtractClientType(ev.Summary, ev.Description),
		MeetingTypes:     ExtractMeetingTypes(ev.Summary, ev.Description),
		IsAvailable:      true,
		ExternalEventRef: ev.Id,
	}, nil
}

// availabilityEvent renders a remainder slot as an upstream availability
// event the extraction round-trips: the summary carries the meeting types
// and the client-type label the keyword tables recognize.
func availabilityEvent(slot models.Timeslot) *calendar.Event {
	summary := "זמין: " + slot.MeetingTypes.String()
	if label, ok := clientTypeLabels[slot.ClientType]; ok {
		summary += " (" + label + ")"
	}
	ev := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: slot.StartTime.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: slot.EndTime.Format(time.RFC3339)},
	}
	if slot.ParentEventRef != "" {
		ev.Description = "parent: " + slot.ParentEventRef
	}
	return ev
}

func eventInstant(edt *calendar.EventDateTime) (time.Time, error) {
	if edt == nil || edt.DateTime == "" {
		return time.Time{}, fmt.Errorf("missing event instant (all-day events are not bookable)")
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable event instant %q: %w", edt.DateTime, err)
	}
	return t, nil
}
