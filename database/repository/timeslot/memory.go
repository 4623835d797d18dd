package timeslotRepo

import (
	"sort"
	"sync"
	"time"

	"torcal/models"
)

// memoryTimeslotRepo keeps every timeslot in a single owned map. A full
// process restart loses all of it; the calendar sync repopulates.
//
// IDs are monotonic for the process lifetime and survive Clear, so a stale
// reference from before a resync can never alias a fresh slot.
type memoryTimeslotRepo struct {
	mu     sync.RWMutex
	slots  map[int64]models.Timeslot
	nextID int64
}

// NewMemoryTimeslotRepo constructs an empty in-memory TimeslotRepository.
func NewMemoryTimeslotRepo() TimeslotRepository {
	return &memoryTimeslotRepo{
		slots: make(map[int64]models.Timeslot),
	}
}

func (r *memoryTimeslotRepo) create(slot models.Timeslot) models.Timeslot {
	r.nextID++
	slot.ID = r.nextID
	r.slots[slot.ID] = slot
	return slot
}

func (r *memoryTimeslotRepo) Create(slot models.Timeslot) models.Timeslot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(slot)
}

func (r *memoryTimeslotRepo) CreateMany(slots []models.Timeslot) []models.Timeslot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Timeslot, len(slots))
	for i, s := range slots {
		out[i] = r.create(s)
	}
	return out
}

func (r *memoryTimeslotRepo) GetByID(id int64) (*models.Timeslot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &slot, nil
}

func (r *memoryTimeslotRepo) All() []models.Timeslot {
	return r.collect(func(models.Timeslot) bool { return true })
}

func (r *memoryTimeslotRepo) ByDateRange(start, end time.Time) []models.Timeslot {
	return r.collect(func(s models.Timeslot) bool {
		return inWindow(s, start, end)
	})
}

func (r *memoryTimeslotRepo) AvailableByDateRange(start, end time.Time) []models.Timeslot {
	return r.collect(func(s models.Timeslot) bool {
		return s.IsAvailable && inWindow(s, start, end)
	})
}

func (r *memoryTimeslotRepo) ByClientType(clientType string) []models.Timeslot {
	return r.collect(func(s models.Timeslot) bool {
		return s.IsAvailable && s.ClientType == clientType
	})
}

func (r *memoryTimeslotRepo) ByMeetingType(meetingType string) []models.Timeslot {
	return r.collect(func(s models.Timeslot) bool {
		return s.IsAvailable && s.OffersMeetingType(meetingType)
	})
}

func (r *memoryTimeslotRepo) ByClientAndMeetingType(clientType, meetingType string) []models.Timeslot {
	return r.collect(func(s models.Timeslot) bool {
		return s.IsAvailable && s.ClientType == clientType && s.OffersMeetingType(meetingType)
	})
}

func (r *memoryTimeslotRepo) MarkUnavailable(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return ErrNotFound
	}
	slot.IsAvailable = false
	r.slots[id] = slot
	return nil
}

// SplitForBooking is the single mutation path a booking takes: under one
// critical section it re-checks availability, creates the remainder slots,
// and flips the original off. Either everything lands or nothing does.
func (r *memoryTimeslotRepo) SplitForBooking(id int64, remainders []models.Timeslot) ([]models.Timeslot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !slot.IsAvailable {
		return nil, ErrUnavailable
	}
	created := make([]models.Timeslot, len(remainders))
	for i, rem := range remainders {
		created[i] = r.create(rem)
	}
	slot.IsAvailable = false
	r.slots[id] = slot
	return created, nil
}

func (r *memoryTimeslotRepo) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = make(map[int64]models.Timeslot)
}

func (r *memoryTimeslotRepo) ReplaceAll(slots []models.Timeslot) []models.Timeslot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = make(map[int64]models.Timeslot, len(slots))
	out := make([]models.Timeslot, len(slots))
	for i, s := range slots {
		out[i] = r.create(s)
	}
	return out
}

func (r *memoryTimeslotRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

func (r *memoryTimeslotRepo) collect(match func(models.Timeslot) bool) []models.Timeslot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Timeslot, 0)
	for _, s := range r.slots {
		if match(s) {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out
}

// inWindow keys the range check on the start instant: [start, end).
func inWindow(s models.Timeslot, start, end time.Time) bool {
	return !s.StartTime.Before(start) && s.StartTime.Before(end)
}

func sortByStart(slots []models.Timeslot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].ID < slots[j].ID
		}
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}
