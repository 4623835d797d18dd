package availability

import (
	"time"

	"go.uber.org/zap"

	rulesRepo "torcal/database/repository/rules"
	"torcal/models"
	"torcal/utils"
)

// VisibleTimeslot pairs a timeslot with the meeting types the active client
// selection may actually book on it. The engine never returns a slot with an
// empty compatible list.
type VisibleTimeslot struct {
	models.Timeslot
	CompatibleMeetingTypes models.MeetingTypeList `json:"compatibleMeetingTypes"`
}

// Engine computes which timeslots a given client/meeting-type selection sees.
// It only ever works on typed Timeslot records; the keyword heuristics that
// produce them live in the sync adapter.
type Engine struct {
	Rules rulesRepo.RuleRepository
}

func NewEngine(rules rulesRepo.RuleRepository) *Engine {
	return &Engine{Rules: rules}
}

// defaultEligibility is the degradation path when the rules table has not
// been loaded yet (first boot, sheet unreachable). Durations mirror the
// practice's standing offering.
var defaultEligibility = map[string]map[string]int{
	"new": {
		models.MeetingTypePhone:    30,
		models.MeetingTypeVideo:    45,
		models.MeetingTypeInPerson: 60,
	},
	"returning": {
		models.MeetingTypePhone:    15,
		models.MeetingTypeVideo:    30,
		models.MeetingTypeInPerson: 45,
	},
	"group": {
		models.MeetingTypeVideo:    60,
		models.MeetingTypeInPerson: 90,
	},
}

// DefaultAllowedMeetingTypes returns the built-in meeting-type durations for
// a known client type. Empty map for unknown types.
func DefaultAllowedMeetingTypes(clientType string) map[string]int {
	out := make(map[string]int)
	for mt, dur := range defaultEligibility[clientType] {
		out[mt] = dur
	}
	return out
}

// DefaultClientTypes lists the client types covered by the built-in table.
func DefaultClientTypes() []string {
	return []string{"group", "new", "returning"}
}

// AllowedMeetingTypes resolves the meeting types one client type may book,
// falling back to the built-in table when the rules table is empty. The
// fallback is an explicit degradation, not a silent failure, so it is logged.
func (e *Engine) AllowedMeetingTypes(clientType string) map[string]int {
	if e.Rules == nil || e.Rules.Count() == 0 {
		utils.GetLogger().Debug("eligibility table empty, using built-in defaults",
			zap.String("clientType", clientType))
		return DefaultAllowedMeetingTypes(clientType)
	}
	return e.Rules.AllowedMeetingTypes(clientType)
}

// allowedUnion merges the allowed meeting types across every active client
// type in the selection.
func (e *Engine) allowedUnion(clients models.Selection) map[string]struct{} {
	union := make(map[string]struct{})
	for _, ct := range clients.Tags() {
		for mt := range e.AllowedMeetingTypes(ct) {
			union[mt] = struct{}{}
		}
	}
	return union
}

// VisibleTimeslots filters raw slots down to what the active selection sees.
//
// A slot with a concrete client-type tag is hidden whenever that tag is
// outside the active set. Beyond that the check is an inclusive OR: a slot
// also shows when any of its meeting types is generically allowed for the
// active client types, which deliberately over-includes rather than risking
// false negatives. Slots whose compatible meeting types come up empty are
// dropped entirely.
func (e *Engine) VisibleTimeslots(
	slots []models.Timeslot,
	clients models.Selection,
	meetings models.Selection,
	now time.Time,
) []VisibleTimeslot {
	out := make([]VisibleTimeslot, 0, len(slots))

	if clients.IsAll() && meetings.IsAll() {
		for _, slot := range slots {
			if ended(slot, now) {
				continue
			}
			out = append(out, VisibleTimeslot{
				Timeslot:               slot,
				CompatibleMeetingTypes: append(models.MeetingTypeList(nil), slot.MeetingTypes...),
			})
		}
		return out
	}

	var union map[string]struct{}
	if !clients.IsAll() {
		union = e.allowedUnion(clients)
	}

	for _, slot := range slots {
		if ended(slot, now) {
			continue
		}

		// A concrete tag outside the active set hides the slot no matter
		// what it offers.
		if !clients.IsAll() && slot.ClientType != models.ClientTypeAll && !clients.Contains(slot.ClientType) {
			continue
		}

		compatible := make(models.MeetingTypeList, 0, len(slot.MeetingTypes))
		for _, mt := range slot.MeetingTypes {
			if !clients.IsAll() {
				if _, ok := union[mt]; !ok {
					continue
				}
			}
			if !meetings.IsAll() && !meetings.Contains(mt) {
				continue
			}
			compatible = append(compatible, mt)
		}

		// Nothing to offer this client: drop, never return an empty list.
		if len(compatible) == 0 {
			continue
		}

		out = append(out, VisibleTimeslot{
			Timeslot:               slot,
			CompatibleMeetingTypes: compatible,
		})
	}
	return out
}

// ended reports whether a slot is entirely in the past. It works on display
// bounds so a swapped-bounds anomaly is still judged by its real interval.
// A zero now disables the gate.
func ended(slot models.Timeslot, now time.Time) bool {
	if now.IsZero() {
		return false
	}
	_, end := slot.DisplayBounds()
	return end.Before(now)
}
