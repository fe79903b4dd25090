package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorbook/models"
	"mentorbook/services/booking"
	"mentorbook/utils"
)

// SessionHandler exposes the session request ledger.
type SessionHandler struct {
	Ledger booking.SessionLedger
}

func NewSessionHandler(ledger booking.SessionLedger) *SessionHandler {
	return &SessionHandler{Ledger: ledger}
}

// RequestSessionHandler lets a mentee request one published slot.
func (h *SessionHandler) RequestSessionHandler(c *gin.Context) {
	callerID, role, ok := caller(c)
	if !ok {
		return
	}

	var input models.SessionRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.WriteError(c, invalidPayload(err))
		return
	}

	req, err := h.Ledger.CreateRequest(c.Request.Context(), callerID, role, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListMySessionsHandler accepts ?status=a,b or repeated ?status= values.
func (h *SessionHandler) ListMySessionsHandler(c *gin.Context) {
	callerID, role, ok := caller(c)
	if !ok {
		return
	}

	var statuses []models.SessionStatus
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, models.SessionStatus(s))
			}
		}
	}

	reqs, err := h.Ledger.ListForParty(c.Request.Context(), callerID, role, statuses)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *SessionHandler) ListUpcomingHandler(c *gin.Context) {
	callerID, role, ok := caller(c)
	if !ok {
		return
	}
	reqs, err := h.Ledger.ListUpcomingApproved(c.Request.Context(), callerID, role)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *SessionHandler) MentorStatsHandler(c *gin.Context) {
	mentorID, _, ok := caller(c)
	if !ok {
		return
	}
	stats, err := h.Ledger.MentorStats(c.Request.Context(), mentorID)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	callerID, role, ok := caller(c)
	if !ok {
		return
	}
	req, err := h.Ledger.GetRequest(c.Request.Context(), c.Param("id"), callerID, role)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *SessionHandler) UpdateSessionStatusHandler(c *gin.Context) {
	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.WriteError(c, invalidPayload(err))
		return
	}
	h.transition(c, input.Status)
}

// CompleteSessionHandler is a shortcut for moving an approved session to completed.
func (h *SessionHandler) CompleteSessionHandler(c *gin.Context) {
	h.transition(c, models.StatusCompleted)
}

func (h *SessionHandler) transition(c *gin.Context, next models.SessionStatus) {
	callerID, role, ok := caller(c)
	if !ok {
		return
	}
	req, err := h.Ledger.UpdateStatus(c.Request.Context(), c.Param("id"), callerID, role, next)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
