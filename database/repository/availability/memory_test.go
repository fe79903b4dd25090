package availabilityRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorbook/models"
)

func schedule(mentorID, date string, slots ...models.TimeSlot) models.DateSchedule {
	return models.DateSchedule{MentorID: mentorID, Date: date, TimeSlots: slots}
}

var nine = models.TimeSlot{StartTime: "09:00", EndTime: "10:00"}
var ten = models.TimeSlot{StartTime: "10:00", EndTime: "11:00"}

func TestMemoryRepoReplaceAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAvailabilityRepo()

	_, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", nine, ten)))
	require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m1", "2030-01-01", ten)))

	got, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlot{ten}, got.TimeSlots)

	got.TimeSlots[0] = nine
	again, err := repo.GetSchedule(ctx, "m1", "2030-01-01")
	require.NoError(t, err)
	assert.Equal(t, ten, again.TimeSlots[0], "callers must not alias stored state")
}

func TestMemoryRepoListFrom(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAvailabilityRepo()

	for _, d := range []string{"2030-01-03", "2030-01-01", "2030-01-02"} {
		require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m1", d, nine)))
	}
	require.NoError(t, repo.ReplaceSchedule(ctx, schedule("m2", "2030-01-02", nine)))

	list, err := repo.ListFrom(ctx, "m1", "2030-01-02")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2030-01-02", list[0].Date)
	assert.Equal(t, "2030-01-03", list[1].Date)

	require.NoError(t, repo.DeleteSchedule(ctx, "m1", "2030-01-02"))
	require.NoError(t, repo.DeleteSchedule(ctx, "m1", "2030-01-02"))
	list, err = repo.ListFrom(ctx, "m1", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
