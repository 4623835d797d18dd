package bookingRepo

import (
	"sort"
	"sync"
	"time"

	"torcal/models"
)

type memoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[int64]models.Booking
	nextID   int64
}

// NewMemoryBookingRepo constructs an empty in-memory BookingRepository.
func NewMemoryBookingRepo() BookingRepository {
	return &memoryBookingRepo{
		bookings: make(map[int64]models.Booking),
	}
}

func (r *memoryBookingRepo) Create(b models.Booking) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.bookings[b.ID] = b
	return b
}

func (r *memoryBookingRepo) GetByID(id int64) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memoryBookingRepo) ByTimeslot(timeslotID int64) []models.Booking {
	return r.collect(func(b models.Booking) bool { return b.TimeslotID == timeslotID })
}

func (r *memoryBookingRepo) All() []models.Booking {
	return r.collect(func(models.Booking) bool { return true })
}

func (r *memoryBookingRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}

func (r *memoryBookingRepo) collect(match func(models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
