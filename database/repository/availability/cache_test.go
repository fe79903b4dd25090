package availabilityRepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mentorbook/models"
)

type countingRepo struct {
	AvailabilityRepository
	gets int
}

func (c *countingRepo) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	c.gets++
	return c.AvailabilityRepository.GetSchedule(ctx, mentorID, date)
}

func newCached(t *testing.T) (*miniredis.Miniredis, *countingRepo, AvailabilityRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	backing := &countingRepo{AvailabilityRepository: NewMemoryAvailabilityRepo()}
	return mr, backing, NewCachedAvailabilityRepo(backing, client, time.Minute, zap.NewNop())
}

func TestCachedRepoReadThrough(t *testing.T) {
	ctx := context.Background()
	mr, backing, repo := newCached(t)

	require.NoError(t, backing.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", nine)))

	for i := 0; i < 3; i++ {
		got, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
		require.NoError(t, err)
		assert.Equal(t, []models.TimeSlot{nine}, got.TimeSlots)
	}
	assert.Equal(t, 1, backing.gets)
	assert.True(t, mr.Exists("schedule:m1:2030-01-01"))
}

func TestCachedRepoWritesThrough(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newCached(t)

	require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", nine)))
	_, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", ten)))
	got, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{ten}, got.TimeSlots)

	require.NoError(t, repo.DeleteSchedule(ctx, "m1", "2030-01-01"))
	_, err = repo.GetSchedule(ctx, "m1", "2030-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedRepoServesWritesWithoutBackingReads(t *testing.T) {
	ctx := context.Background()
	mr, backing, repo := newCached(t)

	require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", nine)))
	got, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{nine}, got.TimeSlots)

	require.NoError(t, repo.DeleteSchedule(ctx, "m1", "2030-01-01"))
	_, err = repo.GetSchedule(ctx, "m1", "2030-01-01")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 0, backing.gets)
	assert.True(t, mr.Exists("schedule:m1:2030-01-01"))
}

// stallingRepo parks the first GetSchedule after it has read the store,
// until resume is closed.
type stallingRepo struct {
	AvailabilityRepository
	once   sync.Once
	loaded chan struct{}
	resume chan struct{}
}

func (s *stallingRepo) GetSchedule(ctx context.Context, mentorID, date string) (*models.DateSchedule, error) {
	got, err := s.AvailabilityRepository.GetSchedule(ctx, mentorID, date)
	s.once.Do(func() {
		close(s.loaded)
		<-s.resume
	})
	return got, err
}

func TestCachedRepoLateFillDoesNotResurrectOldSchedule(t *testing.T) {
	tests := []struct {
		name  string
		write func(ctx context.Context, repo AvailabilityRepository) error
		check func(t *testing.T, got *models.DateSchedule, err error)
	}{
		{
			name: "republish",
			write: func(ctx context.Context, repo AvailabilityRepository) error {
				return repo.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", models.TimeSlot{StartTime: "14:00", EndTime: "15:00"}))
			},
			check: func(t *testing.T, got *models.DateSchedule, err error) {
				require.NoError(t, err)
				assert.Equal(t, []models.TimeSlot{{StartTime: "14:00", EndTime: "15:00"}}, got.TimeSlots)
			},
		},
		{
			name: "clear",
			write: func(ctx context.Context, repo AvailabilityRepository) error {
				return repo.DeleteSchedule(ctx, "m1", "2030-01-01")
			},
			check: func(t *testing.T, _ *models.DateSchedule, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })

			store := NewMemoryAvailabilityRepo()
			require.NoError(t, store.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", nine)))
			stalling := &stallingRepo{AvailabilityRepository: store, loaded: make(chan struct{}), resume: make(chan struct{})}
			repo := NewCachedAvailabilityRepo(stalling, client, time.Minute, zap.NewNop())

			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = repo.GetSchedule(ctx, "m1", "2030-01-01")
			}()

			<-stalling.loaded
			require.NoError(t, tt.write(ctx, repo))
			close(stalling.resume)
			<-done

			got, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
			tt.check(t, got, err)
		})
	}
}

func TestCachedRepoSurvivesRedisOutage(t *testing.T) {
	ctx := context.Background()
	mr, backing, repo := newCached(t)

	require.NoError(t, backing.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", nine)))
	mr.Close()

	got, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01", got.Date)
}
