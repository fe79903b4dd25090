package availabilityRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorbook/models"
)

type postgresAvailabilityRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresAvailabilityRepo stores schedules in the mentor_schedules table.
func NewPostgresAvailabilityRepo(pool *pgxpool.Pool) AvailabilityRepository {
	return &postgresAvailabilityRepo{pool: pool}
}

func (r *postgresAvailabilityRepo) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	query := `
		SELECT mentor_id, date, time_slots, updated_at
		FROM mentor_schedules
		WHERE mentor_id = $1 AND date = $2
	`

	var s models.DateSchedule
	err := r.pool.QueryRow(ctx, query, mentorID, date).Scan(&s.MentorID, &s.Date, &s.TimeSlots, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return &s, nil
}

func (r *postgresAvailabilityRepo) ReplaceSchedule(ctx context.Context, schedule models.DateSchedule) error {
	query := `
		INSERT INTO mentor_schedules (mentor_id, date, time_slots, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (mentor_id, date)
		DO UPDATE SET time_slots = EXCLUDED.time_slots, updated_at = EXCLUDED.updated_at
	`

	slots := schedule.TimeSlots
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	if _, err := r.pool.Exec(ctx, query, schedule.MentorID, schedule.Date, slots, schedule.UpdatedAt); err != nil {
		return fmt.Errorf("replace schedule: %w", err)
	}
	return nil
}

func (r *postgresAvailabilityRepo) DeleteSchedule(ctx context.Context, mentorID, date string) error {
	query := `DELETE FROM mentor_schedules WHERE mentor_id = $1 AND date = $2`

	if _, err := r.pool.Exec(ctx, query, mentorID, date); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (r *postgresAvailabilityRepo) ListFrom(ctx context.Context, mentorID, fromDate string) ([]models.DateSchedule, error) {
	query := `
		SELECT mentor_id, date, time_slots, updated_at
		FROM mentor_schedules
		WHERE mentor_id = $1 AND date >= $2
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, mentorID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.DateSchedule
	for rows.Next() {
		var s models.DateSchedule
		if err := rows.Scan(&s.MentorID, &s.Date, &s.TimeSlots, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return schedules, nil
}
