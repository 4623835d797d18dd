package rulesRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torcal/models"
)

func seeded() RuleRepository {
	repo := NewMemoryRuleRepo()
	repo.ReplaceAll([]models.ClientEligibilityRule{
		{ClientType: "new", DisplayName: "לקוח חדש", MeetingType: models.MeetingTypePhone, DurationMinutes: 30, IsActive: true},
		{ClientType: "new", DisplayName: "לקוח חדש", MeetingType: models.MeetingTypeVideo, DurationMinutes: 45, IsActive: true},
		{ClientType: "returning", DisplayName: "לקוח חוזר", MeetingType: models.MeetingTypePhone, DurationMinutes: 15, IsActive: true},
		{ClientType: "returning", DisplayName: "לקוח חוזר", MeetingType: models.MeetingTypeInPerson, DurationMinutes: 0, IsActive: true},
		{ClientType: "group", DisplayName: "קבוצתי", MeetingType: models.MeetingTypeVideo, DurationMinutes: 60, IsActive: false},
	})
	return repo
}

func TestReplaceAllKeepsIDsClimbing(t *testing.T) {
	repo := NewMemoryRuleRepo()

	first := repo.ReplaceAll([]models.ClientEligibilityRule{
		{ClientType: "new", MeetingType: models.MeetingTypePhone, DurationMinutes: 30, IsActive: true},
	})
	second := repo.ReplaceAll([]models.ClientEligibilityRule{
		{ClientType: "new", MeetingType: models.MeetingTypePhone, DurationMinutes: 30, IsActive: true},
	})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Greater(t, second[0].ID, first[0].ID)
	assert.Equal(t, 1, repo.Count())
}

func TestActiveExcludesZeroDurationAndInactive(t *testing.T) {
	active := seeded().Active()

	require.Len(t, active, 3)
	for _, rule := range active {
		assert.True(t, rule.IsActive)
		assert.Greater(t, rule.DurationMinutes, 0)
	}
}

func TestAllowedMeetingTypesMapsDurations(t *testing.T) {
	repo := seeded()

	allowed := repo.AllowedMeetingTypes("new")
	assert.Equal(t, map[string]int{
		models.MeetingTypePhone: 30,
		models.MeetingTypeVideo: 45,
	}, allowed)

	// The zero-duration in-person row is not offered to returning clients.
	allowed = repo.AllowedMeetingTypes("returning")
	assert.Equal(t, map[string]int{models.MeetingTypePhone: 15}, allowed)

	// The only group rule is inactive.
	assert.Empty(t, repo.AllowedMeetingTypes("group"))
}

func TestClientTypesSortedAndDeduplicated(t *testing.T) {
	assert.Equal(t, []string{"group", "new", "returning"}, seeded().ClientTypes())
}

func TestDisplayNameFallsBackToSlug(t *testing.T) {
	repo := seeded()

	assert.Equal(t, "לקוח חדש", repo.DisplayName("new"))
	assert.Equal(t, "stranger", repo.DisplayName("stranger"))
}
