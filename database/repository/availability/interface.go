// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"errors"

	"mentorbook/models"
)

// ErrNotFound is returned when a mentor has no schedule for a date.
var ErrNotFound = errors.New("schedule not found")

// AvailabilityRepository persists one DateSchedule per (mentorId, date).
type AvailabilityRepository interface {
	GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error)
	// ReplaceSchedule stores schedule, overwriting any previous one for the same date.
	ReplaceSchedule(ctx context.Context, schedule models.DateSchedule) error
	// DeleteSchedule removes a date. Deleting a missing date is not an error.
	DeleteSchedule(ctx context.Context, mentorID, date string) error
	// ListFrom returns schedules with date >= fromDate, ascending by date.
	ListFrom(ctx context.Context, mentorID, fromDate string) ([]models.DateSchedule, error)
}
