package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torcal/models"
)

func sheetRows() [][]interface{} {
	return [][]interface{}{
		{"ID", "סוג לקוח", "שיחת טלפון", "שיחת וידאו", "פגישה פרונטלית"},
		{"1", "לקוח חדש", "30", "45", "60"},
		{"2", "לקוח חוזר", "15", "", "45.0"},
		{"3", "קבוצתי", "0", "60", ""},
	}
}

func TestParseRuleRowsCatalogFromHeader(t *testing.T) {
	_, types, err := ParseRuleRows(sheetRows())

	require.NoError(t, err)
	require.Len(t, types, 3)
	assert.Equal(t, models.MeetingTypePhone, types[0].Name)
	assert.Equal(t, "שיחת טלפון", types[0].DisplayName)
	assert.Equal(t, models.MeetingTypeVideo, types[1].Name)
	assert.Equal(t, models.MeetingTypeInPerson, types[2].Name)
}

func TestParseRuleRowsNormalizesAndFlagsOffers(t *testing.T) {
	rules, _, err := ParseRuleRows(sheetRows())

	require.NoError(t, err)
	// 3 client types x 3 meeting types.
	require.Len(t, rules, 9)

	byPair := make(map[[2]string]models.ClientEligibilityRule, len(rules))
	for _, r := range rules {
		byPair[[2]string{r.ClientType, r.MeetingType}] = r
	}

	newPhone := byPair[[2]string{"new", models.MeetingTypePhone}]
	assert.Equal(t, 30, newPhone.DurationMinutes)
	assert.True(t, newPhone.IsActive)
	assert.Equal(t, "לקוח חדש", newPhone.DisplayName)

	// Blank cell means not offered.
	retVideo := byPair[[2]string{"returning", models.MeetingTypeVideo}]
	assert.Equal(t, 0, retVideo.DurationMinutes)
	assert.False(t, retVideo.IsActive)

	// "45.0" float cells are truncated to minutes.
	retInPerson := byPair[[2]string{"returning", models.MeetingTypeInPerson}]
	assert.Equal(t, 45, retInPerson.DurationMinutes)

	// Explicit zero means not offered.
	groupPhone := byPair[[2]string{"group", models.MeetingTypePhone}]
	assert.False(t, groupPhone.IsActive)
}

func TestParseRuleRowsSkipsBlankRows(t *testing.T) {
	rows := sheetRows()
	rows = append(rows, []interface{}{"4", ""}, []interface{}{"5"})

	rules, _, err := ParseRuleRows(rows)

	require.NoError(t, err)
	assert.Len(t, rules, 9)
}

func TestParseRuleRowsUnknownLabelsBecomeSlugs(t *testing.T) {
	rows := [][]interface{}{
		{"ID", "Client", "שיחת טלפון", "House Call"},
		{"1", "VIP Member", "30", "90"},
	}

	rules, types, err := ParseRuleRows(rows)

	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "house-call", types[1].Name)
	require.Len(t, rules, 2)
	assert.Equal(t, "vip-member", rules[0].ClientType)
}

func TestParseRuleRowsRejectsEmptyOrNarrowSheets(t *testing.T) {
	_, _, err := ParseRuleRows(nil)
	assert.Error(t, err)

	_, _, err = ParseRuleRows([][]interface{}{{"ID", "Client"}})
	assert.Error(t, err)
}
