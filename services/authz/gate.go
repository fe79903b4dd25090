// Package authz decides which party may move a session request between statuses.
// The transition table below is the single definition of what is legal.
package authz

import (
	"mentorbook/models"
)

// Reason explains a denial.
type Reason string

const (
	Allowed           Reason = ""
	WrongRole         Reason = "WrongRole"
	NotOwner          Reason = "NotOwner"
	InvalidTransition Reason = "InvalidTransition"
)

// Rule is one row of the transition table.
type Rule struct {
	From  models.SessionStatus
	To    models.SessionStatus
	Roles []models.Role
}

// StatusNone is the "from" state of a request that does not exist yet.
const StatusNone models.SessionStatus = ""

// Transitions is every legal move. Ownership is implied: the actor must be
// the party on the request that plays the matching role.
var Transitions = []Rule{
	{From: StatusNone, To: models.StatusPending, Roles: []models.Role{models.RoleMentee}},
	{From: models.StatusPending, To: models.StatusApproved, Roles: []models.Role{models.RoleMentor}},
	{From: models.StatusPending, To: models.StatusRejected, Roles: []models.Role{models.RoleMentor}},
	{From: models.StatusPending, To: models.StatusCancelled, Roles: []models.Role{models.RoleMentee}},
	{From: models.StatusApproved, To: models.StatusCancelled, Roles: []models.Role{models.RoleMentee}},
	{From: models.StatusApproved, To: models.StatusCompleted, Roles: []models.Role{models.RoleMentor, models.RoleMentee}},
}

// Decision is the outcome of a gate evaluation.
type Decision struct {
	Reason        Reason
	CurrentStatus models.SessionStatus
	RequiredRoles []models.Role
}

func (d Decision) Allowed() bool {
	return d.Reason == Allowed
}

func findRule(from, to models.SessionStatus) (Rule, bool) {
	for _, r := range Transitions {
		if r.From == from && r.To == to {
			return r, true
		}
	}
	return Rule{}, false
}

func roleAllowed(rule Rule, role models.Role) bool {
	for _, r := range rule.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanTransition evaluates whether actorID acting as actorRole may move req to next.
// Checks run in order: the transition must exist, the role must be permitted,
// and the actor must be the request's party for that role.
func CanTransition(req models.SessionRequest, actorID string, actorRole models.Role, next models.SessionStatus) Decision {
	d := Decision{CurrentStatus: req.Status}

	rule, ok := findRule(req.Status, next)
	if !ok {
		d.Reason = InvalidTransition
		return d
	}
	d.RequiredRoles = rule.Roles

	if !roleAllowed(rule, actorRole) {
		d.Reason = WrongRole
		return d
	}
	if actorID == "" || req.PartyID(actorRole) != actorID {
		d.Reason = NotOwner
		return d
	}
	return d
}

// CanCreate evaluates whether actorRole may open a new request.
func CanCreate(actorRole models.Role) Decision {
	rule, _ := findRule(StatusNone, models.StatusPending)
	d := Decision{RequiredRoles: rule.Roles}
	if !roleAllowed(rule, actorRole) {
		d.Reason = WrongRole
	}
	return d
}

// NextStatuses lists the statuses actorRole could move a request in from to.
func NextStatuses(from models.SessionStatus, actorRole models.Role) []models.SessionStatus {
	var out []models.SessionStatus
	for _, r := range Transitions {
		if r.From == from && from != StatusNone && roleAllowed(r, actorRole) {
			out = append(out, r.To)
		}
	}
	return out
}
