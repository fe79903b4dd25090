package sessionRepo

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorbook/models"
)

var (
	morning = models.TimeSlot{StartTime: "09:00", EndTime: "10:00"}
	noon    = models.TimeSlot{StartTime: "12:00", EndTime: "13:00"}
)

func newRequest(mentorID, menteeID, date string, slot models.TimeSlot) *models.SessionRequest {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.SessionRequest{
		ID:          uuid.NewString(),
		MentorID:    mentorID,
		MenteeID:    menteeID,
		Date:        date,
		TimeSlot:    slot,
		Topic:       "Go interfaces",
		Description: "Walk through accept-interfaces return-structs",
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// runContract exercises behaviour every SessionRequestRepository must share.
// Ids are random so the suite can run against a persistent database.
func runContract(t *testing.T, newRepo func(t *testing.T) SessionRequestRepository) {
	t.Run("insert and get", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		mentor := uuid.NewString()

		req := newRequest(mentor, "mentee-a", "2030-02-01", morning)
		require.NoError(t, repo.Insert(ctx, req))

		got, err := repo.GetByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, req.MentorID, got.MentorID)
		assert.Equal(t, req.TimeSlot, got.TimeSlot)
		assert.Equal(t, models.StatusPending, got.Status)

		_, err = repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("second holder is rejected", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		mentor := uuid.NewString()

		require.NoError(t, repo.Insert(ctx, newRequest(mentor, "mentee-a", "2030-02-01", morning)))
		err := repo.Insert(ctx, newRequest(mentor, "mentee-b", "2030-02-01", morning))
		assert.ErrorIs(t, err, ErrSlotTaken)

		// A different slot or date is independent.
		require.NoError(t, repo.Insert(ctx, newRequest(mentor, "mentee-b", "2030-02-01", noon)))
		require.NoError(t, repo.Insert(ctx, newRequest(mentor, "mentee-b", "2030-02-02", morning)))
	})

	t.Run("releasing statuses free the slot", func(t *testing.T) {
		for _, to := range []models.SessionStatus{models.StatusRejected, models.StatusCancelled} {
			t.Run(string(to), func(t *testing.T) {
				ctx := context.Background()
				repo := newRepo(t)
				mentor := uuid.NewString()

				first := newRequest(mentor, "mentee-a", "2030-02-01", morning)
				require.NoError(t, repo.Insert(ctx, first))

				updated, err := repo.UpdateStatus(ctx, first.ID, models.StatusPending, to, time.Now().UTC())
				require.NoError(t, err)
				assert.Equal(t, to, updated.Status)

				holder, err := repo.FindHolding(ctx, mentor, "2030-02-01", morning)
				require.NoError(t, err)
				assert.Nil(t, holder)

				require.NoError(t, repo.Insert(ctx, newRequest(mentor, "mentee-b", "2030-02-01", morning)))
			})
		}
	})

	t.Run("completed keeps holding", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		mentor := uuid.NewString()

		req := newRequest(mentor, "mentee-a", "2030-02-01", morning)
		require.NoError(t, repo.Insert(ctx, req))
		_, err := repo.UpdateStatus(ctx, req.ID, models.StatusPending, models.StatusApproved, time.Now().UTC())
		require.NoError(t, err)
		_, err = repo.UpdateStatus(ctx, req.ID, models.StatusApproved, models.StatusCompleted, time.Now().UTC())
		require.NoError(t, err)

		holder, err := repo.FindHolding(ctx, mentor, "2030-02-01", morning)
		require.NoError(t, err)
		require.NotNil(t, holder)
		assert.Equal(t, req.ID, holder.ID)

		err = repo.Insert(ctx, newRequest(mentor, "mentee-b", "2030-02-01", morning))
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("update is compare and set", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		req := newRequest(uuid.NewString(), "mentee-a", "2030-02-01", morning)
		require.NoError(t, repo.Insert(ctx, req))

		_, err := repo.UpdateStatus(ctx, req.ID, models.StatusApproved, models.StatusCompleted, time.Now().UTC())
		assert.ErrorIs(t, err, ErrStatusChanged)

		_, err = repo.UpdateStatus(ctx, uuid.NewString(), models.StatusPending, models.StatusApproved, time.Now().UTC())
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := repo.GetByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("concurrent inserts admit one", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		mentor := uuid.NewString()

		var ok, taken atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Insert(ctx, newRequest(mentor, uuid.NewString(), "2030-02-01", morning))
				switch {
				case err == nil:
					ok.Add(1)
				case assert.ErrorIs(t, err, ErrSlotTaken):
					taken.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(15), taken.Load())
	})

	t.Run("list filters and orders", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		mentor := uuid.NewString()
		mentee := uuid.NewString()

		late := newRequest(mentor, mentee, "2030-02-03", morning)
		earlyNoon := newRequest(mentor, mentee, "2030-02-01", noon)
		earlyMorning := newRequest(mentor, mentee, "2030-02-01", morning)
		other := newRequest(mentor, uuid.NewString(), "2030-02-02", morning)
		for _, r := range []*models.SessionRequest{late, earlyNoon, earlyMorning, other} {
			require.NoError(t, repo.Insert(ctx, r))
		}
		_, err := repo.UpdateStatus(ctx, earlyNoon.ID, models.StatusPending, models.StatusApproved, time.Now().UTC())
		require.NoError(t, err)

		mine, err := repo.List(ctx, models.SessionFilter{PartyID: mentee, Role: models.RoleMentee})
		require.NoError(t, err)
		require.Len(t, mine, 3)
		assert.Equal(t, earlyMorning.ID, mine[0].ID)
		assert.Equal(t, earlyNoon.ID, mine[1].ID)
		assert.Equal(t, late.ID, mine[2].ID)

		approved, err := repo.List(ctx, models.SessionFilter{
			PartyID:  mentor,
			Role:     models.RoleMentor,
			Statuses: []models.SessionStatus{models.StatusApproved},
		})
		require.NoError(t, err)
		require.Len(t, approved, 1)
		assert.Equal(t, earlyNoon.ID, approved[0].ID)

		upcoming, err := repo.List(ctx, models.SessionFilter{PartyID: mentor, Role: models.RoleMentor, FromDate: "2030-02-02"})
		require.NoError(t, err)
		require.Len(t, upcoming, 2)
		assert.Equal(t, other.ID, upcoming[0].ID)
		assert.Equal(t, late.ID, upcoming[1].ID)

		holding, err := repo.ListHolding(ctx, mentor, "2030-02-01")
		require.NoError(t, err)
		require.Len(t, holding, 2)
		assert.Equal(t, morning, holding[0].TimeSlot)
	})
}
