package sessionRepo

import (
	"context"
	"sync"
	"time"

	"mentorbook/models"
)

type memorySessionRepo struct {
	mu      sync.RWMutex
	byID    map[string]models.SessionRequest
	holders map[string]string // slot key -> request id
}

// NewMemorySessionRepo returns a process-local SessionRequestRepository.
func NewMemorySessionRepo() SessionRequestRepository {
	return &memorySessionRepo{
		byID:    make(map[string]models.SessionRequest),
		holders: make(map[string]string),
	}
}

func (r *memorySessionRepo) Insert(ctx context.Context, req *models.SessionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := models.SlotKey(req.MentorID, req.Date, req.TimeSlot)
	if req.Status.HoldsSlot() {
		if _, taken := r.holders[key]; taken {
			return ErrSlotTaken
		}
		r.holders[key] = req.ID
	}
	r.byID[req.ID] = *req
	return nil
}

func (r *memorySessionRepo) GetByID(ctx context.Context, id string) (*models.SessionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
}

func (r *memorySessionRepo) UpdateStatus(ctx context.Context, id string, from, to models.SessionStatus, at time.Time) (*models.SessionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status != from {
		return nil, ErrStatusChanged
	}

	req.Status = to
	req.UpdatedAt = at
	if !to.HoldsSlot() {
		key := models.SlotKey(req.MentorID, req.Date, req.TimeSlot)
		if r.holders[key] == id {
			delete(r.holders, key)
		}
	}
	r.byID[id] = req
	return &req, nil
}

func (r *memorySessionRepo) FindHolding(ctx context.Context, mentorID, date string, slot models.TimeSlot) (*models.SessionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.holders[models.SlotKey(mentorID, date, slot)]
	if !ok {
		return nil, nil
	}
	req := r.byID[id]
	return &req, nil
}

func (r *memorySessionRepo) ListHolding(ctx context.Context, mentorID, date string) ([]models.SessionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.SessionRequest
	for _, req := range r.byID {
		if req.MentorID == mentorID && req.Date == date && req.Status.HoldsSlot() {
			out = append(out, req)
		}
	}
	SortByDateAndStart(out)
	return out, nil
}

func (r *memorySessionRepo) List(ctx context.Context, filter models.SessionFilter) ([]models.SessionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.SessionRequest
	for _, req := range r.byID {
		if matches(req, filter) {
			out = append(out, req)
		}
	}
	SortByDateAndStart(out)
	return out, nil
}

func matches(req models.SessionRequest, f models.SessionFilter) bool {
	if f.PartyID != "" && req.PartyID(f.Role) != f.PartyID {
		return false
	}
	if f.FromDate != "" && req.Date < f.FromDate {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if req.Status == s {
			return true
		}
	}
	return false
}
