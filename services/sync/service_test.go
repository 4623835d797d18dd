package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	catalogRepo "torcal/database/repository/catalog"
	rulesRepo "torcal/database/repository/rules"
	timeslotRepo "torcal/database/repository/timeslot"
	"torcal/models"
)

// stubCalendarClient behaves like a tiny calendar: inserts and deletes
// mutate the event list that the next ListEvents returns.
type stubCalendarClient struct {
	events   []*calendar.Event
	listErr  error
	inserted []*calendar.Event
	deleted  []string
}

func (c *stubCalendarClient) ListEvents(context.Context, string, time.Time, time.Time) ([]*calendar.Event, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]*calendar.Event(nil), c.events...), nil
}

func (c *stubCalendarClient) InsertEvent(_ context.Context, _ string, ev *calendar.Event) (*calendar.Event, error) {
	if ev.Id == "" {
		ev.Id = fmt.Sprintf("ins-%d", len(c.inserted)+1)
	}
	c.inserted = append(c.inserted, ev)
	c.events = append(c.events, ev)
	return ev, nil
}

func (c *stubCalendarClient) DeleteEvent(_ context.Context, _ string, eventID string) error {
	c.deleted = append(c.deleted, eventID)
	kept := c.events[:0]
	for _, ev := range c.events {
		if ev.Id != eventID {
			kept = append(kept, ev)
		}
	}
	c.events = kept
	return nil
}

type stubSheetClient struct {
	values [][]interface{}
	err    error
}

func (c *stubSheetClient) ReadSheet(context.Context, string, string) ([][]interface{}, error) {
	return c.values, c.err
}

func timedEvent(id string, start time.Time, d time.Duration) *calendar.Event {
	return &calendar.Event{
		Id:    id,
		Start: &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:   &calendar.EventDateTime{DateTime: start.Add(d).Format(time.RFC3339)},
	}
}

func newSyncService(cal CalendarClient, sheets SheetClient) *SyncService {
	return &SyncService{
		Calendar:  cal,
		Sheets:    sheets,
		Timeslots: timeslotRepo.NewMemoryTimeslotRepo(),
		Rules:     rulesRepo.NewMemoryRuleRepo(),
		Catalog:   catalogRepo.NewMemoryMeetingTypeRepo(),
	}
}

func TestSyncCalendarReplacesStore(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	cal := &stubCalendarClient{events: []*calendar.Event{
		timedEvent("ev-1", start, time.Hour),
		timedEvent("ev-2", start.Add(2*time.Hour), time.Hour),
		{Id: "ev-cancelled", Status: "cancelled"},
	}}
	svc := newSyncService(cal, nil)
	svc.Timeslots.Create(models.Timeslot{StartTime: start, EndTime: start.Add(time.Hour), IsAvailable: true})

	err := svc.SyncCalendar(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, svc.Timeslots.Count())
	all := svc.Timeslots.All()
	assert.Equal(t, "ev-1", all[0].ExternalEventRef)
	assert.Equal(t, "ev-2", all[1].ExternalEventRef)
}

func TestSyncCalendarFailureKeepsPriorState(t *testing.T) {
	cal := &stubCalendarClient{listErr: errors.New("upstream down")}
	svc := newSyncService(cal, nil)
	start := time.Now().Add(time.Hour)
	svc.Timeslots.Create(models.Timeslot{StartTime: start, EndTime: start.Add(time.Hour), IsAvailable: true})

	err := svc.SyncCalendar(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, svc.Timeslots.Count())
}

func TestSyncCalendarWithoutClientLoadsSampleDataOnce(t *testing.T) {
	svc := newSyncService(nil, nil)

	require.NoError(t, svc.SyncCalendar(context.Background()))
	seeded := svc.Timeslots.Count()
	assert.Greater(t, seeded, 0)

	// A second run must not reshuffle an already populated store.
	require.NoError(t, svc.SyncCalendar(context.Background()))
	assert.Equal(t, seeded, svc.Timeslots.Count())
}

func TestSyncRulesRefreshesTableAndCatalog(t *testing.T) {
	sheets := &stubSheetClient{values: sheetRows()}
	svc := newSyncService(nil, sheets)

	err := svc.SyncRules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 9, svc.Rules.Count())
	types := svc.Catalog.All()
	require.Len(t, types, 3)
	assert.Equal(t, "שיחת טלפון", types[0].DisplayName)
}

func TestSyncRulesFailureKeepsPriorTable(t *testing.T) {
	svc := newSyncService(nil, &stubSheetClient{err: errors.New("upstream down")})
	svc.Rules.ReplaceAll(SampleRules())
	before := svc.Rules.Count()

	err := svc.SyncRules(context.Background())

	require.Error(t, err)
	assert.Equal(t, before, svc.Rules.Count())
}

func TestSyncAllReportsCalendarFailureFirst(t *testing.T) {
	svc := newSyncService(
		&stubCalendarClient{listErr: errors.New("calendar down")},
		&stubSheetClient{err: errors.New("sheet down")},
	)

	err := svc.SyncAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar unavailable")
}

func TestMirrorBookingRewritesUpstreamEvents(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	cal := &stubCalendarClient{events: []*calendar.Event{timedEvent("ev-origin", start, time.Hour)}}
	svc := newSyncService(cal, nil)

	b := models.Booking{
		Reference:       "ref-1234",
		Name:            "Dana",
		Email:           "dana@example.com",
		MeetingType:     models.MeetingTypePhone,
		DurationMinutes: 30,
	}
	booked := models.Timeslot{
		StartTime:        start,
		EndTime:          start.Add(30 * time.Minute),
		ExternalEventRef: "ev-origin",
	}
	remainder := models.Timeslot{
		StartTime:      start.Add(30 * time.Minute),
		EndTime:        start.Add(time.Hour),
		ClientType:     models.ClientTypeAll,
		MeetingTypes:   models.MeetingTypeList{models.MeetingTypePhone},
		IsAvailable:    true,
		ParentEventRef: "ev-origin",
	}

	require.NoError(t, svc.MirrorBooking(context.Background(), b, booked, []models.Timeslot{remainder}))

	// The booked interval lands as a marked event, the remainder as a fresh
	// availability event, and the consumed original is gone.
	require.Len(t, cal.inserted, 2)
	bookedEv := cal.inserted[0]
	assert.Contains(t, bookedEv.Summary, "Dana")
	assert.Contains(t, bookedEv.Description, "ref-1234")
	assert.Equal(t, start.Format(time.RFC3339), bookedEv.Start.DateTime)
	assert.Equal(t, start.Add(30*time.Minute).Format(time.RFC3339), bookedEv.End.DateTime)

	remEv := cal.inserted[1]
	assert.Equal(t, start.Add(30*time.Minute).Format(time.RFC3339), remEv.Start.DateTime)
	assert.Equal(t, start.Add(time.Hour).Format(time.RFC3339), remEv.End.DateTime)

	assert.Equal(t, []string{"ev-origin"}, cal.deleted)
}

func TestResyncDoesNotResurrectBookedInterval(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	cal := &stubCalendarClient{events: []*calendar.Event{timedEvent("ev-origin", start, time.Hour)}}
	svc := newSyncService(cal, nil)

	require.NoError(t, svc.SyncCalendar(context.Background()))
	require.Equal(t, 1, svc.Timeslots.Count())
	slot := svc.Timeslots.All()[0]

	// Book the first half hour and mirror the split upstream.
	booked := slot
	booked.EndTime = slot.StartTime.Add(30 * time.Minute)
	remainder := models.Timeslot{
		StartTime:      booked.EndTime,
		EndTime:        slot.EndTime,
		ClientType:     slot.ClientType,
		MeetingTypes:   slot.MeetingTypes,
		IsAvailable:    true,
		ParentEventRef: slot.ExternalEventRef,
	}
	b := models.Booking{Reference: "ref-1", Name: "Dana", MeetingType: models.MeetingTypePhone, DurationMinutes: 30}
	require.NoError(t, svc.MirrorBooking(context.Background(), b, booked, []models.Timeslot{remainder}))

	// A routine resync must reproduce only the remainder, never the booked
	// interval or the mirrored booking event itself.
	require.NoError(t, svc.SyncCalendar(context.Background()))

	avail := svc.Timeslots.AvailableByDateRange(slot.StartTime, slot.EndTime)
	require.Len(t, avail, 1)
	assert.True(t, avail[0].StartTime.Equal(remainder.StartTime))
	assert.True(t, avail[0].EndTime.Equal(remainder.EndTime))
}

func TestMirrorBookingWithoutCalendarIsNoOp(t *testing.T) {
	svc := newSyncService(nil, nil)

	assert.NoError(t, svc.MirrorBooking(context.Background(), models.Booking{}, models.Timeslot{}, nil))
}
