package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mentorbook/models"
)

const (
	mentorID = "mentor-1"
	menteeID = "mentee-1"
)

func request(status models.SessionStatus) models.SessionRequest {
	return models.SessionRequest{ID: "req-1", MentorID: mentorID, MenteeID: menteeID, Status: status}
}

func actorFor(role models.Role) string {
	if role == models.RoleMentor {
		return mentorID
	}
	return menteeID
}

func TestCanTransitionTable(t *testing.T) {
	allowed := map[[3]string]bool{
		{"pending", "approved", "mentor"}:   true,
		{"pending", "rejected", "mentor"}:   true,
		{"pending", "cancelled", "mentee"}:  true,
		{"approved", "cancelled", "mentee"}: true,
		{"approved", "completed", "mentor"}: true,
		{"approved", "completed", "mentee"}: true,
	}

	roles := []models.Role{models.RoleMentor, models.RoleMentee}
	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			for _, role := range roles {
				key := [3]string{string(from), string(to), string(role)}
				d := CanTransition(request(from), actorFor(role), role, to)
				if allowed[key] {
					assert.True(t, d.Allowed(), "%v should be allowed", key)
				} else {
					assert.False(t, d.Allowed(), "%v should be denied", key)
					assert.Contains(t, []Reason{WrongRole, InvalidTransition}, d.Reason, "%v", key)
				}
				assert.Equal(t, from, d.CurrentStatus)
			}
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, from := range []models.SessionStatus{models.StatusRejected, models.StatusCancelled, models.StatusCompleted} {
		for _, to := range models.AllStatuses {
			for _, role := range []models.Role{models.RoleMentor, models.RoleMentee} {
				d := CanTransition(request(from), actorFor(role), role, to)
				assert.Equal(t, InvalidTransition, d.Reason, "%s -> %s as %s", from, to, role)
			}
		}
	}
}

func TestDenialReasons(t *testing.T) {
	t.Run("mentee approving", func(t *testing.T) {
		d := CanTransition(request(models.StatusPending), menteeID, models.RoleMentee, models.StatusApproved)
		assert.Equal(t, WrongRole, d.Reason)
		assert.Equal(t, []models.Role{models.RoleMentor}, d.RequiredRoles)
	})

	t.Run("another mentor approving", func(t *testing.T) {
		d := CanTransition(request(models.StatusPending), "mentor-2", models.RoleMentor, models.StatusApproved)
		assert.Equal(t, NotOwner, d.Reason)
	})

	t.Run("another mentee completing", func(t *testing.T) {
		d := CanTransition(request(models.StatusApproved), "mentee-2", models.RoleMentee, models.StatusCompleted)
		assert.Equal(t, NotOwner, d.Reason)
	})

	t.Run("empty actor", func(t *testing.T) {
		d := CanTransition(request(models.StatusPending), "", models.RoleMentor, models.StatusApproved)
		assert.Equal(t, NotOwner, d.Reason)
	})

	t.Run("already approved", func(t *testing.T) {
		d := CanTransition(request(models.StatusApproved), menteeID, models.RoleMentee, models.StatusApproved)
		assert.Equal(t, InvalidTransition, d.Reason)
		assert.Equal(t, models.StatusApproved, d.CurrentStatus)
	})

	t.Run("unknown role", func(t *testing.T) {
		d := CanTransition(request(models.StatusApproved), mentorID, models.Role("admin"), models.StatusCompleted)
		assert.Equal(t, WrongRole, d.Reason)
	})
}

func TestCanCreate(t *testing.T) {
	assert.True(t, CanCreate(models.RoleMentee).Allowed())
	assert.Equal(t, WrongRole, CanCreate(models.RoleMentor).Reason)
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.SessionStatus{models.StatusApproved, models.StatusRejected},
		NextStatuses(models.StatusPending, models.RoleMentor))
	assert.ElementsMatch(t,
		[]models.SessionStatus{models.StatusCancelled, models.StatusCompleted},
		NextStatuses(models.StatusApproved, models.RoleMentee))
	assert.Empty(t, NextStatuses(models.StatusCompleted, models.RoleMentor))
}
