package booking

import (
	"context"
	"errors"
	"fmt"

	availabilityRepo "mentorbook/database/repository/availability"
	sessionRepo "mentorbook/database/repository/sessionrequest"
	"mentorbook/models"
	"mentorbook/utils"
)

// ConflictChecker decides whether a mentor's slot can still be requested.
// It must read the authoritative schedule store, never a cache.
type ConflictChecker struct {
	Availability availabilityRepo.AvailabilityRepository
	Sessions     sessionRepo.SessionRequestRepository
}

func NewConflictChecker(avail availabilityRepo.AvailabilityRepository, sessions sessionRepo.SessionRequestRepository) *ConflictChecker {
	return &ConflictChecker{Availability: avail, Sessions: sessions}
}

// IsSlotAvailable is true when slot is published for date and no request holds it.
func (c *ConflictChecker) IsSlotAvailable(ctx context.Context, mentorID, date string, slot models.TimeSlot) (bool, error) {
	err := c.Check(ctx, mentorID, date, slot)
	if err == nil {
		return true, nil
	}
	if utils.ErrorCode(err) == utils.CodeSlotUnavailable {
		return false, nil
	}
	return false, err
}

// Check returns ErrSlotUnavailable, with the reason and the holder's status
// when there is one, or nil if the slot is free.
func (c *ConflictChecker) Check(ctx context.Context, mentorID, date string, slot models.TimeSlot) error {
	schedule, err := c.Availability.GetSchedule(ctx, mentorID, date)
	switch {
	case errors.Is(err, availabilityRepo.ErrNotFound):
		return ErrSlotUnavailable.With("slot", slot).With("reason", ReasonNotPublished)
	case err != nil:
		return fmt.Errorf("load schedule: %w", err)
	}
	if !schedule.HasSlot(slot) {
		return ErrSlotUnavailable.With("slot", slot).With("reason", ReasonNotPublished)
	}

	holder, err := c.Sessions.FindHolding(ctx, mentorID, date, slot)
	if err != nil {
		return fmt.Errorf("find slot holder: %w", err)
	}
	if holder != nil {
		return ErrSlotUnavailable.
			With("slot", slot).
			With("reason", ReasonHeld).
			With("currentStatus", holder.Status)
	}
	return nil
}
