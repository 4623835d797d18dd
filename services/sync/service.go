package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	catalogRepo "torcal/database/repository/catalog"
	rulesRepo "torcal/database/repository/rules"
	timeslotRepo "torcal/database/repository/timeslot"
	"torcal/models"
	"torcal/utils"
)

// SyncService pulls availability from the external calendar and eligibility
// rules from the spreadsheet into the in-memory stores. Either client may be
// nil, in which case the service degrades to sample data so the system stays
// usable without credentials.
//
// Upstream failures never wipe local state: the prior timeslots and rules
// survive until a sync actually succeeds.
type SyncService struct {
	Calendar CalendarClient
	Sheets   SheetClient

	Timeslots timeslotRepo.TimeslotRepository
	Rules     rulesRepo.RuleRepository
	Catalog   catalogRepo.MeetingTypeRepository

	CalendarID    string
	SpreadsheetID string
	SheetName     string
	WindowDays    int
	Timeout       time.Duration
}

func (s *SyncService) timeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return s.Timeout
}

func (s *SyncService) windowDays() int {
	if s.WindowDays <= 0 {
		return 30
	}
	return s.WindowDays
}

// SyncCalendar performs the full availability resync: read the event window,
// normalize each event, then replace the whole store. Booked intervals exist
// upstream only as marked events the extraction skips, and their remainders
// as regular availability events, so a resync cannot resurrect a booked
// interval.
func (s *SyncService) SyncCalendar(ctx context.Context) error {
	logger := utils.GetLogger()
	now := time.Now()

	if s.Calendar == nil {
		if s.Timeslots.Count() == 0 {
			created := s.Timeslots.ReplaceAll(SampleTimeslots(now, s.windowDays()))
			logger.Info("no calendar configured, loaded sample timeslots", zap.Int("count", len(created)))
			utils.RecordCalendarSync(true, len(created))
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	from := now
	to := now.AddDate(0, 0, s.windowDays())
	events, err := s.Calendar.ListEvents(ctx, s.CalendarID, from, to)
	if err != nil {
		// Keep whatever we had; the grid degrades to stale data, not a crash.
		logger.Error("calendar sync failed, keeping prior timeslots", zap.Error(err))
		utils.RecordCalendarSync(false, s.Timeslots.Count())
		return fmt.Errorf("calendar unavailable: %w", err)
	}

	slots := make([]models.Timeslot, 0, len(events))
	for _, ev := range events {
		slot, err := TimeslotFromEvent(ev)
		if err != nil {
			logger.Debug("skipping calendar event", zap.Error(err))
			continue
		}
		if slot.EndTime.Before(slot.StartTime) {
			// Tolerated data anomaly: stored as delivered, swapped only for
			// display downstream.
			logger.Warn("calendar event ends before it starts",
				zap.String("eventRef", slot.ExternalEventRef),
				zap.Time("start", slot.StartTime),
				zap.Time("end", slot.EndTime))
		}
		slots = append(slots, slot)
	}

	created := s.Timeslots.ReplaceAll(slots)
	logger.Info("calendar sync complete",
		zap.Int("events", len(events)),
		zap.Int("timeslots", len(created)))
	utils.RecordCalendarSync(true, len(created))
	return nil
}

// SyncRules replaces the eligibility rules table from the spreadsheet, and
// refreshes the meeting-type catalog from the sheet's header row.
func (s *SyncService) SyncRules(ctx context.Context) error {
	logger := utils.GetLogger()

	if s.Sheets == nil {
		if s.Rules.Count() == 0 {
			rules := s.Rules.ReplaceAll(SampleRules())
			logger.Info("no spreadsheet configured, loaded sample eligibility rules", zap.Int("count", len(rules)))
			utils.RecordRulesSync(true, len(rules))
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	values, err := s.Sheets.ReadSheet(ctx, s.SpreadsheetID, s.SheetName)
	if err != nil {
		logger.Error("sheet sync failed, keeping prior rules", zap.Error(err))
		utils.RecordRulesSync(false, s.Rules.Count())
		return fmt.Errorf("spreadsheet unavailable: %w", err)
	}

	rules, meetingTypes, err := ParseRuleRows(values)
	if err != nil {
		logger.Error("sheet layout not understood, keeping prior rules", zap.Error(err))
		utils.RecordRulesSync(false, s.Rules.Count())
		return fmt.Errorf("spreadsheet layout invalid: %w", err)
	}

	if len(meetingTypes) > 0 && s.Catalog != nil {
		s.Catalog.Replace(meetingTypes)
	}
	replaced := s.Rules.ReplaceAll(rules)
	logger.Info("eligibility rules sync complete", zap.Int("rules", len(replaced)))
	utils.RecordRulesSync(true, len(replaced))
	return nil
}

// SyncAll runs both syncs under one run ID and reports the first failure.
func (s *SyncService) SyncAll(ctx context.Context) error {
	logger := utils.GetLogger()
	runID := uuid.New().String()[:8]
	logger.Info("sync run starting", zap.String("runId", runID))

	rulesErr := s.SyncRules(ctx)
	calErr := s.SyncCalendar(ctx)

	if calErr != nil {
		return calErr
	}
	if rulesErr != nil {
		return rulesErr
	}
	logger.Info("sync run finished", zap.String("runId", runID))
	return nil
}

// MirrorBooking rewrites the external calendar to match a confirmed booking:
// the booked interval becomes a marked event the next resync skips, each
// remainder becomes a fresh availability event, and the consumed original
// event is deleted last, so a partial failure never loses upstream
// availability. Callers treat failure as advisory; the next resync
// reconciles local refs against whatever landed.
func (s *SyncService) MirrorBooking(ctx context.Context, b models.Booking, booked models.Timeslot, remainders []models.Timeslot) error {
	if s.Calendar == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	event := &calendar.Event{
		Summary:     fmt.Sprintf("תור: %s (%s)", b.Name, b.MeetingType),
		Description: fmt.Sprintf("%s %s\n%s\n%s", bookedMarker, b.Reference, b.Email, b.Notes),
		Start:       &calendar.EventDateTime{DateTime: booked.StartTime.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: booked.EndTime.Format(time.RFC3339)},
	}
	if _, err := s.Calendar.InsertEvent(ctx, s.CalendarID, event); err != nil {
		return err
	}
	for _, rem := range remainders {
		if _, err := s.Calendar.InsertEvent(ctx, s.CalendarID, availabilityEvent(rem)); err != nil {
			return err
		}
	}
	if booked.ExternalEventRef != "" {
		if err := s.Calendar.DeleteEvent(ctx, s.CalendarID, booked.ExternalEventRef); err != nil {
			return err
		}
	}
	return nil
}
