// File: database/repository/sessionrequest/interface.go
package sessionRepo

import (
	"context"
	"errors"
	"sort"
	"time"

	"mentorbook/models"
)

var (
	// ErrNotFound is returned for unknown request ids.
	ErrNotFound = errors.New("session request not found")
	// ErrSlotTaken is returned by Insert when another request already holds the slot.
	ErrSlotTaken = errors.New("slot already held by another request")
	// ErrStatusChanged is returned by UpdateStatus when the stored status is no longer the expected one.
	ErrStatusChanged = errors.New("session request status changed concurrently")
)

// SessionRequestRepository is the ledger's persistence. Every implementation
// guarantees at most one slot-holding request per (mentor, date, slot).
type SessionRequestRepository interface {
	Insert(ctx context.Context, req *models.SessionRequest) error
	GetByID(ctx context.Context, id string) (*models.SessionRequest, error)
	// UpdateStatus moves id from -> to only if it is still in from, and returns the stored result.
	UpdateStatus(ctx context.Context, id string, from, to models.SessionStatus, at time.Time) (*models.SessionRequest, error)
	// FindHolding returns the request holding the slot, or nil when it is free.
	FindHolding(ctx context.Context, mentorID, date string, slot models.TimeSlot) (*models.SessionRequest, error)
	// ListHolding returns every slot-holding request of a mentor on a date.
	ListHolding(ctx context.Context, mentorID, date string) ([]models.SessionRequest, error)
	// List returns the requests matching filter, ordered by date then start time.
	List(ctx context.Context, filter models.SessionFilter) ([]models.SessionRequest, error)
}

// SortByDateAndStart orders requests by date, then slot start, then creation.
func SortByDateAndStart(reqs []models.SessionRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		a, b := reqs[i], reqs[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.TimeSlot.StartTime != b.TimeSlot.StartTime {
			return a.TimeSlot.StartTime < b.TimeSlot.StartTime
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

func statusStrings(statuses []models.SessionStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
