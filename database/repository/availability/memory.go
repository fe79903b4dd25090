package availabilityRepo

import (
	"context"
	"sort"
	"sync"

	"mentorbook/models"
)

type memoryAvailabilityRepo struct {
	mu        sync.RWMutex
	schedules map[string]map[string]models.DateSchedule // mentorID -> date -> schedule
}

// NewMemoryAvailabilityRepo returns a process-local AvailabilityRepository.
func NewMemoryAvailabilityRepo() AvailabilityRepository {
	return &memoryAvailabilityRepo{schedules: make(map[string]map[string]models.DateSchedule)}
}

func cloneSchedule(s models.DateSchedule) models.DateSchedule {
	s.TimeSlots = append([]models.TimeSlot(nil), s.TimeSlots...)
	return s
}

func (r *memoryAvailabilityRepo) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[mentorID][date]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneSchedule(s)
	return &out, nil
}

func (r *memoryAvailabilityRepo) ReplaceSchedule(ctx context.Context, schedule models.DateSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dates, ok := r.schedules[schedule.MentorID]
	if !ok {
		dates = make(map[string]models.DateSchedule)
		r.schedules[schedule.MentorID] = dates
	}
	dates[schedule.Date] = cloneSchedule(schedule)
	return nil
}

func (r *memoryAvailabilityRepo) DeleteSchedule(ctx context.Context, mentorID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.schedules[mentorID], date)
	return nil
}

func (r *memoryAvailabilityRepo) ListFrom(ctx context.Context, mentorID, fromDate string) ([]models.DateSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.DateSchedule
	for date, s := range r.schedules[mentorID] {
		if date >= fromDate {
			out = append(out, cloneSchedule(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
