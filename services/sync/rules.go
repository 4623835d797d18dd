package sync

import (
	"fmt"
	"strconv"
	"strings"

	"torcal/models"
)

// ParseRuleRows turns raw sheet values into eligibility rules plus the
// meeting-type catalog the header row declares.
//
// Layout contract: row 1 is headers; columns 0-1 carry an id and the
// client-type label; columns 2+ are meeting-type names. Each data row maps
// its client type to a duration per meeting type, where 0 or blank means the
// meeting type is not offered to that client type.
func ParseRuleRows(values [][]interface{}) ([]models.ClientEligibilityRule, []models.MeetingType, error) {
	if len(values) < 1 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}
	header := values[0]
	if len(header) < 3 {
		return nil, nil, fmt.Errorf("sheet header has %d columns, need at least 3", len(header))
	}

	meetingTypes := make([]models.MeetingType, 0, len(header)-2)
	for _, cell := range header[2:] {
		name := normalizeMeetingTypeName(cellString(cell))
		if name == "" {
			continue
		}
		meetingTypes = append(meetingTypes, models.MeetingType{
			Name:        name,
			DisplayName: strings.TrimSpace(cellString(cell)),
		})
	}

	var rules []models.ClientEligibilityRule
	for _, row := range values[1:] {
		if len(row) < 2 {
			continue
		}
		label := strings.TrimSpace(cellString(row[1]))
		if label == "" {
			continue
		}
		clientType := normalizeClientType(label)

		for i, mt := range meetingTypes {
			col := i + 2
			duration := 0
			if col < len(row) {
				duration = cellInt(row[col])
			}
			rules = append(rules, models.ClientEligibilityRule{
				ClientType:      clientType,
				MeetingType:     mt.Name,
				DurationMinutes: duration,
				IsActive:        duration > 0,
				DisplayName:     label,
			})
		}
	}
	return rules, meetingTypes, nil
}

// normalizeMeetingTypeName maps a header label (possibly Hebrew) onto the
// canonical tag, falling back to a lowercased slug for unknown modalities.
func normalizeMeetingTypeName(label string) string {
	text := strings.ToLower(strings.TrimSpace(label))
	if text == "" {
		return ""
	}
	for _, entry := range meetingTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.tag
			}
		}
	}
	return strings.ReplaceAll(text, " ", "-")
}

// normalizeClientType maps a row label onto the canonical tag, keeping a
// slug of the label for client types the keyword table does not know.
func normalizeClientType(label string) string {
	text := strings.ToLower(strings.TrimSpace(label))
	for _, entry := range clientTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.tag
			}
		}
	}
	return strings.ReplaceAll(text, " ", "-")
}

func cellString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func cellInt(v interface{}) int {
	s := strings.TrimSpace(cellString(v))
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Sheets sometimes deliver "45.0"; take the integer part.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}
