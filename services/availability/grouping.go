package availability

import (
	"sort"
	"time"

	"torcal/models"
)

// DefaultConsolidationThreshold is how many concurrent options a grid cell
// renders side by side before collapsing into an expandable summary.
const DefaultConsolidationThreshold = 3

// IntervalKey identifies one exact (start, end) instant pair. Slots sharing
// the pair form one visual unit regardless of client or meeting types.
type IntervalKey struct {
	Start int64
	End   int64
}

func keyFor(slot models.Timeslot) IntervalKey {
	return IntervalKey{Start: slot.StartTime.UnixNano(), End: slot.EndTime.UnixNano()}
}

// DisplayKind tells the view how to render a consolidated unit.
type DisplayKind string

const (
	DisplaySingle  DisplayKind = "single"
	DisplayRow     DisplayKind = "row"
	DisplaySummary DisplayKind = "summary"
)

// DisplayUnit is what the grid actually renders for one interval: either a
// single slot, a short side-by-side row, or a collapsed summary that expands
// to a selectable list on interaction.
type DisplayUnit struct {
	StartTime          time.Time              `json:"startTime"`
	EndTime            time.Time              `json:"endTime"`
	Kind               DisplayKind            `json:"kind"`
	SlotCount          int                    `json:"slotCount"`
	ClientTypes        []string               `json:"clientTypes"`
	MeetingTypes       models.MeetingTypeList `json:"meetingTypes"`
	PrimaryMeetingType string                 `json:"primaryMeetingType,omitempty"`
	Slots              []VisibleTimeslot      `json:"slots"`
}

// GroupByExactInterval partitions slots by their exact stored bounds. The
// partition is stable under regrouping its own output.
func GroupByExactInterval(slots []VisibleTimeslot) map[IntervalKey][]VisibleTimeslot {
	groups := make(map[IntervalKey][]VisibleTimeslot)
	for _, s := range slots {
		k := keyFor(s.Timeslot)
		groups[k] = append(groups[k], s)
	}
	return groups
}

// Consolidate turns one interval group into its display unit. narrow forces
// the summary form even under the threshold (narrow viewports have no room
// for a row).
func Consolidate(group []VisibleTimeslot, threshold int, narrow bool) DisplayUnit {
	if len(group) == 0 {
		return DisplayUnit{}
	}
	if threshold <= 0 {
		threshold = DefaultConsolidationThreshold
	}

	// Display bounds, not stored bounds: a swapped anomaly renders in the
	// right place while the stored data stays untouched.
	start, end := group[0].DisplayBounds()

	unit := DisplayUnit{
		StartTime:    start,
		EndTime:      end,
		SlotCount:    len(group),
		ClientTypes:  representedClientTypes(group),
		MeetingTypes: representedMeetingTypes(group),
		Slots:        group,
	}
	unit.PrimaryMeetingType = PrimaryMeetingType(unit.MeetingTypes)

	switch {
	case len(group) == 1:
		unit.Kind = DisplaySingle
	case len(group) > threshold || narrow:
		unit.Kind = DisplaySummary
	default:
		unit.Kind = DisplayRow
	}
	return unit
}

// ConsolidateAll groups and consolidates in one pass, ordered by display
// start then end so the grid is deterministic.
func ConsolidateAll(slots []VisibleTimeslot, threshold int, narrow bool) []DisplayUnit {
	groups := GroupByExactInterval(slots)
	units := make([]DisplayUnit, 0, len(groups))
	for _, group := range groups {
		units = append(units, Consolidate(group, threshold, narrow))
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].StartTime.Equal(units[j].StartTime) {
			return units[i].EndTime.Before(units[j].EndTime)
		}
		return units[i].StartTime.Before(units[j].StartTime)
	})
	return units
}

// PrimaryMeetingType picks the badge shown when space is limited: phone
// first, then video, then whatever comes first. Arbitrary but fixed, so the
// badge never flickers between renders.
func PrimaryMeetingType(types models.MeetingTypeList) string {
	if types.Contains(models.MeetingTypePhone) {
		return models.MeetingTypePhone
	}
	if types.Contains(models.MeetingTypeVideo) {
		return models.MeetingTypeVideo
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

func representedClientTypes(group []VisibleTimeslot) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(group))
	for _, s := range group {
		if _, ok := seen[s.ClientType]; ok {
			continue
		}
		seen[s.ClientType] = struct{}{}
		out = append(out, s.ClientType)
	}
	sort.Strings(out)
	return out
}

func representedMeetingTypes(group []VisibleTimeslot) models.MeetingTypeList {
	out := make(models.MeetingTypeList, 0)
	seen := make(map[string]struct{})
	for _, s := range group {
		for _, mt := range s.CompatibleMeetingTypes {
			if _, ok := seen[mt]; ok {
				continue
			}
			seen[mt] = struct{}{}
			out = append(out, mt)
		}
	}
	return out
}
