// Package availability owns each mentor's published date -> slots schedule.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	availabilityRepo "mentorbook/database/repository/availability"
	"mentorbook/models"
	"mentorbook/services/timeslot"
	"mentorbook/utils"
)

// AvailabilityService is the schedule API used by handlers and the booking engine.
type AvailabilityService interface {
	PublishSchedule(ctx context.Context, mentorID, date string, slots []models.TimeSlot) (*models.DateSchedule, error)
	GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error)
	ListUpcoming(ctx context.Context, mentorID, fromDate string) (*models.MentorAvailability, error)
}

// DefaultAvailabilityService implements AvailabilityService on top of a repository.
type DefaultAvailabilityService struct {
	Repo     availabilityRepo.AvailabilityRepository
	Locks    utils.Locker
	Now      func() time.Time
	Location *time.Location
	Logger   *zap.Logger
}

// NewAvailabilityService wires a service with an in-process mentor lock and the wall clock.
func NewAvailabilityService(repo availabilityRepo.AvailabilityRepository, loc *time.Location, logger *zap.Logger) *DefaultAvailabilityService {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultAvailabilityService{
		Repo:     repo,
		Locks:    utils.NewKeyedMutex(),
		Now:      time.Now,
		Location: loc,
		Logger:   logger,
	}
}

func (s *DefaultAvailabilityService) today() string {
	return timeslot.Today(s.Now(), s.Location)
}

// PublishSchedule replaces mentorID's schedule for date with slots. An empty
// slot list clears the date.
func (s *DefaultAvailabilityService) PublishSchedule(ctx context.Context, mentorID, date string, slots []models.TimeSlot) (*models.DateSchedule, error) {
	if mentorID == "" {
		return nil, ErrInvalidMentor
	}
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, ErrInvalidDate.With("date", date)
	}
	if date < s.today() {
		return nil, ErrPastDate.With("date", date).With("today", s.today())
	}
	if len(slots) > models.MaxSlotsPerDate {
		return nil, ErrTooManySlots.With("max", models.MaxSlotsPerDate).With("got", len(slots))
	}

	normalized := make([]models.TimeSlot, 0, len(slots))
	for i, slot := range slots {
		n, err := timeslot.Normalize(slot)
		if err != nil {
			return nil, ErrInvalidSlot.With("index", i).With("slot", slot).With("reason", err.Error())
		}
		normalized = append(normalized, n)
	}
	if a, b, found := timeslot.FirstOverlap(normalized); found {
		return nil, ErrOverlappingSlots.With("conflict", []models.TimeSlot{a, b})
	}

	unlock, err := s.Locks.Lock(ctx, "availability:"+mentorID)
	if errors.Is(err, utils.ErrLockTimeout) {
		s.Logger.Warn("Mentor schedule lock busy", zap.String("mentorID", mentorID), zap.String("date", date))
		return nil, ErrScheduleBusy.With("reason", ReasonBusy)
	}
	if err != nil {
		return nil, fmt.Errorf("lock mentor schedule: %w", err)
	}
	defer unlock()

	schedule := models.DateSchedule{
		MentorID:  mentorID,
		Date:      date,
		TimeSlots: timeslot.Sorted(normalized),
		UpdatedAt: s.Now().UTC(),
	}

	if len(schedule.TimeSlots) == 0 {
		if err := s.Repo.DeleteSchedule(ctx, mentorID, date); err != nil {
			return nil, fmt.Errorf("clear schedule: %w", err)
		}
		s.Logger.Info("Schedule cleared", zap.String("mentorID", mentorID), zap.String("date", date))
		return &schedule, nil
	}

	if err := s.Repo.ReplaceSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("store schedule: %w", err)
	}
	s.Logger.Info("Schedule published",
		zap.String("mentorID", mentorID),
		zap.String("date", date),
		zap.Int("slots", len(schedule.TimeSlots)))
	return &schedule, nil
}

func (s *DefaultAvailabilityService) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, ErrInvalidDate.With("date", date)
	}
	schedule, err := s.Repo.GetSchedule(ctx, mentorID, date)
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		return nil, ErrScheduleNotFound.With("mentorId", mentorID).With("date", date)
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return schedule, nil
}

// ListUpcoming returns every schedule dated on or after fromDate (today when empty).
func (s *DefaultAvailabilityService) ListUpcoming(ctx context.Context, mentorID, fromDate string) (*models.MentorAvailability, error) {
	if fromDate == "" {
		fromDate = s.today()
	} else if _, err := timeslot.ParseDate(fromDate); err != nil {
		return nil, ErrInvalidDate.With("date", fromDate)
	}

	schedules, err := s.Repo.ListFrom(ctx, mentorID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	if schedules == nil {
		schedules = []models.DateSchedule{}
	}
	return &models.MentorAvailability{MentorID: mentorID, Schedules: schedules}, nil
}
