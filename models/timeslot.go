package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ClientTypeAll is the wildcard client-type tag: a timeslot carrying it is
// open to every eligibility group, and a filter carrying it applies no
// restriction.
const ClientTypeAll = "all"

// MeetingTypeList is an ordered set of meeting-type tags. On the wire it is a
// single comma-separated string ("phone,video"), the same shape the calendar
// sync extracts from event descriptions.
type MeetingTypeList []string

// ParseMeetingTypes splits a comma list into trimmed, de-duplicated tags,
// preserving first-seen order.
func ParseMeetingTypes(s string) MeetingTypeList {
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make(MeetingTypeList, 0, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (m MeetingTypeList) Contains(tag string) bool {
	for _, t := range m {
		if t == tag {
			return true
		}
	}
	return false
}

func (m MeetingTypeList) String() string {
	return strings.Join(m, ",")
}

func (m MeetingTypeList) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MeetingTypeList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = ParseMeetingTypes(s)
		return nil
	}
	// Also accept a plain JSON array from older clients.
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*m = ParseMeetingTypes(strings.Join(arr, ","))
	return nil
}

// Timeslot is a bookable (or already split) time interval sourced from the
// external calendar or created as a split remainder at booking time.
type Timeslot struct {
	ID               int64           `json:"id"`
	StartTime        time.Time       `json:"startTime"`
	EndTime          time.Time       `json:"endTime"`
	ClientType       string          `json:"clientType"`
	MeetingTypes     MeetingTypeList `json:"meetingTypes"`
	IsAvailable      bool            `json:"isAvailable"`
	ExternalEventRef string          `json:"externalEventRef,omitempty"`
	ParentEventRef   string          `json:"parentEventRef,omitempty"`
}

// DisplayBounds returns the interval to use for rendering. A slot whose
// stored end precedes its start is swapped here only; the stored values stay
// exactly as the upstream calendar delivered them.
func (t Timeslot) DisplayBounds() (time.Time, time.Time) {
	if t.EndTime.Before(t.StartTime) {
		return t.EndTime, t.StartTime
	}
	return t.StartTime, t.EndTime
}

// DisplayDuration is the rendered length of the slot, tolerant of swapped
// bounds.
func (t Timeslot) DisplayDuration() time.Duration {
	start, end := t.DisplayBounds()
	return end.Sub(start)
}

// OffersMeetingType reports whether the slot can host the given modality.
func (t Timeslot) OffersMeetingType(tag string) bool {
	return t.MeetingTypes.Contains(tag)
}
