package models

// ClientEligibilityRule maps one client type to one meeting type with its
// session duration. The rules table is replaced wholesale on every sheet
// sync; a rule only counts when it is active with a positive duration.
type ClientEligibilityRule struct {
	ID              int64  `json:"id"`
	ClientType      string `json:"clientType"`
	MeetingType     string `json:"meetingType"`
	DurationMinutes int    `json:"durationMinutes"`
	IsActive        bool   `json:"isActive"`
	DisplayName     string `json:"displayName,omitempty"`
}

// Offered reports whether this rule grants the meeting type at all.
func (r ClientEligibilityRule) Offered() bool {
	return r.IsActive && r.DurationMinutes > 0
}
