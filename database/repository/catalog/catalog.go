package catalogRepo

import (
	"errors"
	"sync"

	"torcal/models"
)

// ErrNotFound is returned for an unknown meeting-type name.
var ErrNotFound = errors.New("meeting type not found")

// MeetingTypeRepository is the read-mostly modality catalog. It starts from
// the built-in defaults and can be replaced when a sync discovers the sheet's
// column headers.
type MeetingTypeRepository interface {
	All() []models.MeetingType
	GetByName(name string) (*models.MeetingType, error)
	Replace(types []models.MeetingType) []models.MeetingType
}

type memoryMeetingTypeRepo struct {
	mu     sync.RWMutex
	types  []models.MeetingType
	nextID int64
}

// NewMemoryMeetingTypeRepo constructs the catalog seeded with the default
// modalities and their Hebrew display names.
func NewMemoryMeetingTypeRepo() MeetingTypeRepository {
	r := &memoryMeetingTypeRepo{}
	r.Replace([]models.MeetingType{
		{Name: models.MeetingTypePhone, DisplayName: "שיחת טלפון"},
		{Name: models.MeetingTypeVideo, DisplayName: "שיחת וידאו"},
		{Name: models.MeetingTypeInPerson, DisplayName: "פגישה פרונטלית"},
	})
	return r
}

func (r *memoryMeetingTypeRepo) All() []models.MeetingType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.MeetingType(nil), r.types...)
}

func (r *memoryMeetingTypeRepo) GetByName(name string) (*models.MeetingType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.types {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryMeetingTypeRepo) Replace(types []models.MeetingType) []models.MeetingType {
	r.mu.Lock()
	defer r.mu.Unlock()
	replaced := make([]models.MeetingType, len(types))
	for i, t := range types {
		r.nextID++
		t.ID = r.nextID
		replaced[i] = t
	}
	r.types = replaced
	return append([]models.MeetingType(nil), replaced...)
}
