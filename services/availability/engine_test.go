package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rulesRepo "torcal/database/repository/rules"
	"torcal/models"
)

var base = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

func slot(clientType string, meetingTypes ...string) models.Timeslot {
	return models.Timeslot{
		StartTime:    base,
		EndTime:      base.Add(time.Hour),
		ClientType:   clientType,
		MeetingTypes: meetingTypes,
		IsAvailable:  true,
	}
}

func emptyEngine() *Engine {
	return NewEngine(rulesRepo.NewMemoryRuleRepo())
}

func TestVisibleTimeslotsBothAllReturnsInputUnfiltered(t *testing.T) {
	slots := []models.Timeslot{
		slot("new", models.MeetingTypePhone),
		slot(models.ClientTypeAll, models.MeetingTypeVideo),
		slot("group", models.MeetingTypeInPerson),
	}

	got := emptyEngine().VisibleTimeslots(slots, models.SelectAll(), models.SelectAll(), time.Time{})

	require.Len(t, got, len(slots))
	for i, v := range got {
		assert.Equal(t, slots[i].ClientType, v.ClientType)
		assert.Equal(t, slots[i].MeetingTypes, v.CompatibleMeetingTypes)
	}
}

func TestEmptySelectionsNormalizeToAll(t *testing.T) {
	assert.True(t, models.SelectTags().IsAll())
	assert.True(t, models.SelectTags("").IsAll())
	assert.True(t, models.SelectTags("all").IsAll())
	assert.True(t, models.SelectTags("new", "all").IsAll())
	assert.False(t, models.SelectTags("new").IsAll())
}

func TestConcreteClientTypeOutsideSelectionIsHidden(t *testing.T) {
	// The slot offers phone, which "returning" is generically allowed, but
	// the slot is tagged for "new" clients only.
	slots := []models.Timeslot{slot("new", models.MeetingTypePhone)}

	got := emptyEngine().VisibleTimeslots(slots, models.SelectTags("returning"), models.SelectAll(), time.Time{})

	assert.Empty(t, got)
}

func TestWildcardSlotVisibleThroughAllowedMeetingType(t *testing.T) {
	slots := []models.Timeslot{slot(models.ClientTypeAll, models.MeetingTypePhone, models.MeetingTypeVideo)}

	// Empty rules table: the built-in fallback grants "returning" both
	// phone and video.
	got := emptyEngine().VisibleTimeslots(slots, models.SelectTags("returning"), models.SelectAll(), time.Time{})

	require.Len(t, got, 1)
	assert.Equal(t, models.MeetingTypeList{models.MeetingTypePhone, models.MeetingTypeVideo}, got[0].CompatibleMeetingTypes)
}

func TestSlotWithEmptyCompatibleSetIsDropped(t *testing.T) {
	// The fallback table gives "group" video and in-person but no phone.
	slots := []models.Timeslot{slot(models.ClientTypeAll, models.MeetingTypePhone)}

	got := emptyEngine().VisibleTimeslots(slots, models.SelectTags("group"), models.SelectAll(), time.Time{})

	assert.Empty(t, got)
}

func TestNoSlotReturnedWithEmptyCompatibleList(t *testing.T) {
	slots := []models.Timeslot{
		slot(models.ClientTypeAll, models.MeetingTypePhone),
		slot(models.ClientTypeAll, models.MeetingTypeVideo),
		slot("group", models.MeetingTypeVideo, models.MeetingTypeInPerson),
	}

	got := emptyEngine().VisibleTimeslots(slots, models.SelectTags("group"), models.SelectAll(), time.Time{})

	for _, v := range got {
		assert.NotEmpty(t, v.CompatibleMeetingTypes)
	}
}

func TestMeetingSelectionNarrowsCompatibleTypes(t *testing.T) {
	slots := []models.Timeslot{
		slot(models.ClientTypeAll, models.MeetingTypePhone, models.MeetingTypeVideo),
		slot(models.ClientTypeAll, models.MeetingTypePhone),
	}

	got := emptyEngine().VisibleTimeslots(slots, models.SelectAll(), models.SelectTags(models.MeetingTypeVideo), time.Time{})

	require.Len(t, got, 1)
	assert.Equal(t, models.MeetingTypeList{models.MeetingTypeVideo}, got[0].CompatibleMeetingTypes)
}

func TestRulesTableOverridesFallback(t *testing.T) {
	rules := rulesRepo.NewMemoryRuleRepo()
	rules.ReplaceAll([]models.ClientEligibilityRule{
		{ClientType: "returning", MeetingType: models.MeetingTypeVideo, DurationMinutes: 25, IsActive: true},
	})
	engine := NewEngine(rules)

	slots := []models.Timeslot{slot(models.ClientTypeAll, models.MeetingTypePhone, models.MeetingTypeVideo)}
	got := engine.VisibleTimeslots(slots, models.SelectTags("returning"), models.SelectAll(), time.Time{})

	// Phone is in the fallback but the loaded table only grants video.
	require.Len(t, got, 1)
	assert.Equal(t, models.MeetingTypeList{models.MeetingTypeVideo}, got[0].CompatibleMeetingTypes)
}

func TestUnionAcrossMultipleClientTypes(t *testing.T) {
	rules := rulesRepo.NewMemoryRuleRepo()
	rules.ReplaceAll([]models.ClientEligibilityRule{
		{ClientType: "new", MeetingType: models.MeetingTypePhone, DurationMinutes: 30, IsActive: true},
		{ClientType: "group", MeetingType: models.MeetingTypeInPerson, DurationMinutes: 90, IsActive: true},
	})
	engine := NewEngine(rules)

	slots := []models.Timeslot{slot(models.ClientTypeAll, models.MeetingTypePhone, models.MeetingTypeInPerson)}
	got := engine.VisibleTimeslots(slots, models.SelectTags("new", "group"), models.SelectAll(), time.Time{})

	require.Len(t, got, 1)
	assert.ElementsMatch(t,
		[]string{models.MeetingTypePhone, models.MeetingTypeInPerson},
		[]string(got[0].CompatibleMeetingTypes))
}

func TestEndedSlotsAreSkipped(t *testing.T) {
	past := slot(models.ClientTypeAll, models.MeetingTypePhone)
	future := slot(models.ClientTypeAll, models.MeetingTypePhone)
	future.StartTime = base.Add(24 * time.Hour)
	future.EndTime = base.Add(25 * time.Hour)

	now := base.Add(2 * time.Hour)
	got := emptyEngine().VisibleTimeslots([]models.Timeslot{past, future}, models.SelectAll(), models.SelectAll(), now)

	require.Len(t, got, 1)
	assert.Equal(t, future.StartTime, got[0].StartTime)
}

func TestSwappedBoundsSlotPassesThroughUncorrected(t *testing.T) {
	anomaly := models.Timeslot{
		StartTime:    base.Add(time.Hour),
		EndTime:      base,
		ClientType:   models.ClientTypeAll,
		MeetingTypes: models.MeetingTypeList{models.MeetingTypePhone},
		IsAvailable:  true,
	}

	got := emptyEngine().VisibleTimeslots([]models.Timeslot{anomaly}, models.SelectAll(), models.SelectAll(), time.Time{})

	require.Len(t, got, 1)
	// Stored values stay swapped; only the display accessor reorders them.
	assert.Equal(t, anomaly.StartTime, got[0].StartTime)
	assert.Equal(t, anomaly.EndTime, got[0].EndTime)
	start, end := got[0].DisplayBounds()
	assert.True(t, start.Before(end))
}

func TestDefaultAllowedMeetingTypesUnknownClient(t *testing.T) {
	assert.Empty(t, DefaultAllowedMeetingTypes("stranger"))
}
