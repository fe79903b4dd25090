package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorbook/models"
)

const uniqueViolation = "23505"

const sessionColumns = `id, mentor_id, mentee_id, date, start_time, end_time, topic, description, status, created_at, updated_at`

type postgresSessionRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresSessionRepo stores requests in the session_requests table. The
// session_requests_slot_hold_uniq partial index enforces a single holder per slot.
func NewPostgresSessionRepo(pool *pgxpool.Pool) SessionRequestRepository {
	return &postgresSessionRepo{pool: pool}
}

func (r *postgresSessionRepo) Insert(ctx context.Context, req *models.SessionRequest) error {
	query := `
		INSERT INTO session_requests (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID, req.MentorID, req.MenteeID, req.Date,
		req.TimeSlot.StartTime, req.TimeSlot.EndTime,
		req.Topic, req.Description, string(req.Status),
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert session request: %w", err)
	}
	return nil
}

func (r *postgresSessionRepo) GetByID(ctx context.Context, id string) (*models.SessionRequest, error) {
	query := `SELECT ` + sessionColumns + ` FROM session_requests WHERE id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session request: %w", err)
	}
	return req, nil
}

func (r *postgresSessionRepo) UpdateStatus(ctx context.Context, id string, from, to models.SessionStatus, at time.Time) (*models.SessionRequest, error) {
	query := `
		UPDATE session_requests
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + sessionColumns

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id, string(from), string(to), at))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM session_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("recheck session request: %w", err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("update session request status: %w", err)
	}
	return req, nil
}

func (r *postgresSessionRepo) FindHolding(ctx context.Context, mentorID, date string, slot models.TimeSlot) (*models.SessionRequest, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM session_requests
		WHERE mentor_id = $1 AND date = $2 AND start_time = $3 AND end_time = $4
		  AND status = ANY($5)
		LIMIT 1
	`

	req, err := scanRequest(r.pool.QueryRow(ctx, query,
		mentorID, date, slot.StartTime, slot.EndTime, statusStrings(models.HoldingStatuses)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find holding request: %w", err)
	}
	return req, nil
}

func (r *postgresSessionRepo) ListHolding(ctx context.Context, mentorID, date string) ([]models.SessionRequest, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM session_requests
		WHERE mentor_id = $1 AND date = $2 AND status = ANY($3)
		ORDER BY start_time ASC, created_at ASC
	`
	return r.query(ctx, query, mentorID, date, statusStrings(models.HoldingStatuses))
}

func (r *postgresSessionRepo) List(ctx context.Context, f models.SessionFilter) ([]models.SessionRequest, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	switch f.Role {
	case models.RoleMentor:
		add("mentor_id = $%d", f.PartyID)
	case models.RoleMentee:
		add("mentee_id = $%d", f.PartyID)
	}
	if len(f.Statuses) > 0 {
		add("status = ANY($%d)", statusStrings(f.Statuses))
	}
	if f.FromDate != "" {
		add("date >= $%d", f.FromDate)
	}

	query := `SELECT ` + sessionColumns + ` FROM session_requests`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date ASC, start_time ASC, created_at ASC`

	return r.query(ctx, query, args...)
}

func (r *postgresSessionRepo) query(ctx context.Context, query string, args ...any) ([]models.SessionRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list session requests: %w", err)
	}
	defer rows.Close()

	var out []models.SessionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session request: %w", err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session requests: %w", err)
	}
	return out, nil
}

func scanRequest(row pgx.Row) (*models.SessionRequest, error) {
	var (
		req    models.SessionRequest
		status string
	)
	err := row.Scan(
		&req.ID, &req.MentorID, &req.MenteeID, &req.Date,
		&req.TimeSlot.StartTime, &req.TimeSlot.EndTime,
		&req.Topic, &req.Description, &status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Status = models.SessionStatus(status)
	return &req, nil
}
