package models

// Canonical meeting-type tags. The sync adapter normalizes free-text event
// descriptions (Hebrew or English) onto these.
const (
	MeetingTypePhone    = "phone"
	MeetingTypeVideo    = "video"
	MeetingTypeInPerson = "in-person"
)

// MeetingType is a catalog entry for a modality: the canonical tag plus the
// label the client renders (Hebrew for the default locale).
type MeetingType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
