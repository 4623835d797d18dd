package rulesRepo

import "torcal/models"

// RuleRepository holds the client-eligibility rules table. The sheet sync
// replaces the whole table on every run; everything else only reads it.
type RuleRepository interface {
	ReplaceAll(rules []models.ClientEligibilityRule) []models.ClientEligibilityRule
	All() []models.ClientEligibilityRule
	Active() []models.ClientEligibilityRule
	// AllowedMeetingTypes maps meeting type to duration in minutes for one
	// client type, counting only active rules with a positive duration.
	AllowedMeetingTypes(clientType string) map[string]int
	ClientTypes() []string
	DisplayName(clientType string) string
	Count() int
}
