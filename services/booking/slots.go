package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	availabilityRepo "mentorbook/database/repository/availability"
	"mentorbook/models"
	"mentorbook/services/timeslot"
)

// FreeSlots lists the published slots of date that nobody holds.
func (l *DefaultSessionLedger) FreeSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, ErrInvalidDate.With("date", date)
	}

	free := []models.TimeSlot{}
	schedule, err := l.Checker.Availability.GetSchedule(ctx, mentorID, date)
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		return free, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	held, err := l.heldKeys(ctx, mentorID, date)
	if err != nil {
		return nil, err
	}
	for _, s := range schedule.TimeSlots {
		if _, taken := held[s.Key()]; !taken {
			free = append(free, s)
		}
	}
	return free, nil
}

// BookedSlots lists the slots of date held by a pending, approved or completed request.
func (l *DefaultSessionLedger) BookedSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error) {
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, ErrInvalidDate.With("date", date)
	}

	reqs, err := l.Repo.ListHolding(ctx, mentorID, date)
	if err != nil {
		return nil, fmt.Errorf("list holding requests: %w", err)
	}
	booked := make([]models.TimeSlot, 0, len(reqs))
	for _, r := range reqs {
		booked = append(booked, r.TimeSlot)
	}
	return timeslot.Sorted(booked), nil
}

func (l *DefaultSessionLedger) heldKeys(ctx context.Context, mentorID, date string) (map[string]struct{}, error) {
	reqs, err := l.Repo.ListHolding(ctx, mentorID, date)
	if err != nil {
		return nil, fmt.Errorf("list holding requests: %w", err)
	}
	keys := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		keys[r.TimeSlot.Key()] = struct{}{}
	}
	return keys, nil
}

// MentorStats summarises a mentor's completed sessions. Hours are rounded to two decimals.
func (l *DefaultSessionLedger) MentorStats(ctx context.Context, mentorID string) (*models.MentorStats, error) {
	completed, err := l.Repo.List(ctx, models.SessionFilter{
		PartyID:  mentorID,
		Role:     models.RoleMentor,
		Statuses: []models.SessionStatus{models.StatusCompleted},
	})
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}

	mentees := make(map[string]struct{})
	var hours float64
	for _, r := range completed {
		hours += timeslot.Duration(r.TimeSlot).Hours()
		mentees[r.MenteeID] = struct{}{}
	}
	return &models.MentorStats{
		TotalSessions: len(completed),
		HoursSpent:    math.Round(hours*100) / 100,
		ActiveMentees: len(mentees),
	}, nil
}
