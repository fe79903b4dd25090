package models

import "time"

// Role is the caller's role as asserted by the identity provider.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

// SessionStatus is the lifecycle state of a SessionRequest.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusApproved  SessionStatus = "approved"
	StatusRejected  SessionStatus = "rejected"
	StatusCancelled SessionStatus = "cancelled"
	StatusCompleted SessionStatus = "completed"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []SessionStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// HoldingStatuses keep the slot occupied. Completed sessions happened, so they keep it too.
var HoldingStatuses = []SessionStatus{StatusPending, StatusApproved, StatusCompleted}

func (s SessionStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// HoldsSlot reports whether a request in this status occupies its slot.
func (s SessionStatus) HoldsSlot() bool {
	return s == StatusPending || s == StatusApproved || s == StatusCompleted
}

// Terminal reports whether no transition can leave this status.
func (s SessionStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

const (
	MaxTopicLength       = 200
	MaxDescriptionLength = 1000
)

// SessionRequest is a mentee's booking of one mentor slot.
type SessionRequest struct {
	ID          string        `bson:"id" json:"id"`
	MentorID    string        `bson:"mentorId" json:"mentorId"`
	MenteeID    string        `bson:"menteeId" json:"menteeId"`
	Date        string        `bson:"date" json:"date"`
	TimeSlot    TimeSlot      `bson:"timeSlot" json:"timeSlot"`
	Topic       string        `bson:"topic" json:"topic"`
	Description string        `bson:"description" json:"description"`
	Status      SessionStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PartyID returns the id of the party on the request that plays role.
func (r SessionRequest) PartyID(role Role) string {
	switch role {
	case RoleMentor:
		return r.MentorID
	case RoleMentee:
		return r.MenteeID
	}
	return ""
}

// SessionRequestInput is the body of a RequestSession call.
type SessionRequestInput struct {
	MentorID    string   `json:"mentorId"`
	Date        string   `json:"date"`
	TimeSlot    TimeSlot `json:"timeSlot"`
	Topic       string   `json:"topic"`
	Description string   `json:"description"`
}

// UpdateStatusInput is the body of an UpdateSessionStatus call.
type UpdateStatusInput struct {
	Status SessionStatus `json:"status"`
}

// SessionFilter narrows a party listing.
type SessionFilter struct {
	PartyID  string
	Role     Role
	Statuses []SessionStatus
	FromDate string // inclusive, empty means unbounded
}

// MentorStats summarises a mentor's completed sessions.
type MentorStats struct {
	TotalSessions int     `json:"totalSessions"`
	HoursSpent    float64 `json:"hoursSpent"`
	ActiveMentees int     `json:"activeMentees"`
}

// SlotKey identifies a mentor's slot on a date; it is the admission lock and uniqueness key.
func SlotKey(mentorID, date string, slot TimeSlot) string {
	return mentorID + "|" + date + "|" + slot.Key()
}
