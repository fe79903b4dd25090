// Package booking admits session requests against published slots and moves
// them through their lifecycle.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sessionRepo "mentorbook/database/repository/sessionrequest"
	"mentorbook/models"
	"mentorbook/services/authz"
	"mentorbook/services/timeslot"
	"mentorbook/utils"
)

// SessionLedger is the authoritative record of session requests.
type SessionLedger interface {
	CreateRequest(ctx context.Context, callerID string, callerRole models.Role, in models.SessionRequestInput) (*models.SessionRequest, error)
	UpdateStatus(ctx context.Context, requestID, actorID string, actorRole models.Role, next models.SessionStatus) (*models.SessionRequest, error)
	GetRequest(ctx context.Context, requestID, callerID string, callerRole models.Role) (*models.SessionRequest, error)
	ListForParty(ctx context.Context, partyID string, role models.Role, statuses []models.SessionStatus) ([]models.SessionRequest, error)
	ListUpcomingApproved(ctx context.Context, partyID string, role models.Role) ([]models.SessionRequest, error)
	FreeSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error)
	BookedSlots(ctx context.Context, mentorID, date string) ([]models.TimeSlot, error)
	MentorStats(ctx context.Context, mentorID string) (*models.MentorStats, error)
}

// DefaultSessionLedger implements SessionLedger. Admission is serialised per
// slot key through Locks; the repository's uniqueness guarantee backs it up
// when several processes share storage.
type DefaultSessionLedger struct {
	Repo     sessionRepo.SessionRequestRepository
	Checker  *ConflictChecker
	Locks    utils.Locker
	Now      func() time.Time
	Location *time.Location
	NewID    func() string
	Logger   *zap.Logger
}

func NewSessionLedger(repo sessionRepo.SessionRequestRepository, checker *ConflictChecker, locks utils.Locker, loc *time.Location, logger *zap.Logger) *DefaultSessionLedger {
	if locks == nil {
		locks = utils.NewKeyedMutex()
	}
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultSessionLedger{
		Repo:     repo,
		Checker:  checker,
		Locks:    locks,
		Now:      time.Now,
		Location: loc,
		NewID:    uuid.NewString,
		Logger:   logger,
	}
}

func (l *DefaultSessionLedger) today() string {
	return timeslot.Today(l.Now(), l.Location)
}

// CreateRequest admits a new pending request for the caller, who must be a mentee.
func (l *DefaultSessionLedger) CreateRequest(ctx context.Context, callerID string, callerRole models.Role, in models.SessionRequestInput) (*models.SessionRequest, error) {
	if d := authz.CanCreate(callerRole); !d.Allowed() {
		return nil, ErrWrongRole.With("requiredRoles", d.RequiredRoles)
	}

	req, err := l.buildRequest(callerID, in)
	if err != nil {
		return nil, err
	}

	key := models.SlotKey(req.MentorID, req.Date, req.TimeSlot)
	unlock, err := l.Locks.Lock(ctx, key)
	if err != nil {
		if errors.Is(err, utils.ErrLockTimeout) {
			l.Logger.Warn("Slot admission lock busy", zap.String("slotKey", key))
			return nil, ErrSlotUnavailable.With("slot", req.TimeSlot).With("reason", ReasonBusy)
		}
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	defer unlock()

	if err := l.Checker.Check(ctx, req.MentorID, req.Date, req.TimeSlot); err != nil {
		if utils.ErrorCode(err) == utils.CodeSlotUnavailable {
			l.Logger.Info("Slot admission refused",
				zap.String("slotKey", key),
				zap.String("menteeID", callerID),
				zap.Error(err))
		}
		return nil, err
	}

	if err := l.Repo.Insert(ctx, req); err != nil {
		if errors.Is(err, sessionRepo.ErrSlotTaken) {
			l.Logger.Info("Slot admission lost at storage", zap.String("slotKey", key), zap.String("menteeID", callerID))
			return nil, ErrSlotUnavailable.With("slot", req.TimeSlot).With("reason", ReasonHeld)
		}
		return nil, fmt.Errorf("insert session request: %w", err)
	}

	l.Logger.Info("Session request admitted",
		zap.String("requestID", req.ID),
		zap.String("mentorID", req.MentorID),
		zap.String("menteeID", req.MenteeID),
		zap.String("date", req.Date),
		zap.String("slot", req.TimeSlot.Key()))
	return req, nil
}

func (l *DefaultSessionLedger) buildRequest(menteeID string, in models.SessionRequestInput) (*models.SessionRequest, error) {
	if menteeID == "" {
		return nil, invalidField("menteeId", "caller id is required")
	}
	mentorID := strings.TrimSpace(in.MentorID)
	if mentorID == "" {
		return nil, invalidField("mentorId", "mentor id is required")
	}
	if mentorID == menteeID {
		return nil, invalidField("mentorId", "cannot request a session with yourself")
	}

	if _, err := timeslot.ParseDate(in.Date); err != nil {
		return nil, ErrInvalidDate.With("date", in.Date)
	}
	if in.Date < l.today() {
		return nil, ErrPastDate.With("date", in.Date).With("today", l.today())
	}

	slot, err := timeslot.Normalize(in.TimeSlot)
	if err != nil {
		return nil, ErrInvalidSlot.With("slot", in.TimeSlot).With("reason", err.Error())
	}

	topic := strings.TrimSpace(in.Topic)
	if n := utf8.RuneCountInString(topic); n == 0 || n > models.MaxTopicLength {
		return nil, invalidField("topic", fmt.Sprintf("must be 1-%d characters", models.MaxTopicLength))
	}
	description := strings.TrimSpace(in.Description)
	if n := utf8.RuneCountInString(description); n == 0 || n > models.MaxDescriptionLength {
		return nil, invalidField("description", fmt.Sprintf("must be 1-%d characters", models.MaxDescriptionLength))
	}

	now := l.Now().UTC()
	return &models.SessionRequest{
		ID:          l.NewID(),
		MentorID:    mentorID,
		MenteeID:    menteeID,
		Date:        in.Date,
		TimeSlot:    slot,
		Topic:       topic,
		Description: description,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateStatus moves a request to next on behalf of the actor.
func (l *DefaultSessionLedger) UpdateStatus(ctx context.Context, requestID, actorID string, actorRole models.Role, next models.SessionStatus) (*models.SessionRequest, error) {
	if !next.Valid() {
		return nil, invalidField("status", fmt.Sprintf("unknown status %q", next))
	}

	req, err := l.visible(ctx, requestID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if d := authz.CanTransition(*req, actorID, actorRole, next); !d.Allowed() {
		return nil, denial(d, next)
	}

	updated, err := l.Repo.UpdateStatus(ctx, req.ID, req.Status, next, l.Now().UTC())
	switch {
	case errors.Is(err, sessionRepo.ErrStatusChanged):
		// Another actor moved it first; report against what is stored now.
		current, getErr := l.Repo.GetByID(ctx, req.ID)
		if getErr != nil {
			return nil, fmt.Errorf("reload session request: %w", getErr)
		}
		l.Logger.Info("Status update lost race",
			zap.String("requestID", req.ID),
			zap.String("expected", string(req.Status)),
			zap.String("current", string(current.Status)))
		return nil, ErrInvalidTransition.
			With("currentStatus", current.Status).
			With("requestedStatus", next)
	case errors.Is(err, sessionRepo.ErrNotFound):
		return nil, ErrRequestNotFound.With("id", requestID)
	case err != nil:
		return nil, fmt.Errorf("update session status: %w", err)
	}

	l.Logger.Info("Session request status changed",
		zap.String("requestID", updated.ID),
		zap.String("actorID", actorID),
		zap.String("role", string(actorRole)),
		zap.String("from", string(req.Status)),
		zap.String("to", string(updated.Status)))
	return updated, nil
}

func denial(d authz.Decision, next models.SessionStatus) error {
	switch d.Reason {
	case authz.WrongRole:
		return ErrWrongRole.With("requiredRoles", d.RequiredRoles).With("currentStatus", d.CurrentStatus)
	case authz.NotOwner:
		return ErrNotOwner
	default:
		return ErrInvalidTransition.
			With("currentStatus", d.CurrentStatus).
			With("requestedStatus", next)
	}
}

// visible loads a request the caller is a party to. Anyone else gets NotFound
// so existence does not leak.
func (l *DefaultSessionLedger) visible(ctx context.Context, requestID, callerID string, role models.Role) (*models.SessionRequest, error) {
	req, err := l.Repo.GetByID(ctx, requestID)
	if errors.Is(err, sessionRepo.ErrNotFound) {
		return nil, ErrRequestNotFound.With("id", requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session request: %w", err)
	}
	if callerID == "" || req.PartyID(role) != callerID {
		return nil, ErrRequestNotFound.With("id", requestID)
	}
	return req, nil
}

func (l *DefaultSessionLedger) GetRequest(ctx context.Context, requestID, callerID string, callerRole models.Role) (*models.SessionRequest, error) {
	return l.visible(ctx, requestID, callerID, callerRole)
}

// ListForParty returns the party's requests ordered by date then start time.
// An empty statuses slice means every status.
func (l *DefaultSessionLedger) ListForParty(ctx context.Context, partyID string, role models.Role, statuses []models.SessionStatus) ([]models.SessionRequest, error) {
	for _, s := range statuses {
		if !s.Valid() {
			return nil, invalidField("status", fmt.Sprintf("unknown status %q", s))
		}
	}
	return l.list(ctx, models.SessionFilter{PartyID: partyID, Role: role, Statuses: statuses})
}

// ListUpcomingApproved returns approved requests dated today or later.
func (l *DefaultSessionLedger) ListUpcomingApproved(ctx context.Context, partyID string, role models.Role) ([]models.SessionRequest, error) {
	return l.list(ctx, models.SessionFilter{
		PartyID:  partyID,
		Role:     role,
		Statuses: []models.SessionStatus{models.StatusApproved},
		FromDate: l.today(),
	})
}

func (l *DefaultSessionLedger) list(ctx context.Context, filter models.SessionFilter) ([]models.SessionRequest, error) {
	if !filter.Role.Valid() || filter.PartyID == "" {
		return nil, ErrWrongRole.With("requiredRoles", []models.Role{models.RoleMentor, models.RoleMentee})
	}
	reqs, err := l.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list session requests: %w", err)
	}
	if reqs == nil {
		reqs = []models.SessionRequest{}
	}
	sessionRepo.SortByDateAndStart(reqs)
	return reqs, nil
}
