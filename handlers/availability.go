package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorbook/models"
	"mentorbook/services/availability"
	"mentorbook/services/booking"
	"mentorbook/utils"
)

// AvailabilityHandler serves mentor schedules and their free/booked views.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Ledger  booking.SessionLedger
}

func NewAvailabilityHandler(svc availability.AvailabilityService, ledger booking.SessionLedger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Ledger: ledger}
}

// PublishAvailabilityHandler replaces the calling mentor's slots for :date.
func (h *AvailabilityHandler) PublishAvailabilityHandler(c *gin.Context) {
	mentorID, _, ok := caller(c)
	if !ok {
		return
	}

	var input models.PublishAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.WriteError(c, invalidPayload(err))
		return
	}
	// Only an explicit [] clears the date.
	if input.TimeSlots == nil {
		utils.WriteError(c, utils.NewAppError(utils.KindValidation, utils.CodeValidation, "timeSlots is required").
			With("field", "timeSlots"))
		return
	}

	schedule, err := h.Service.PublishSchedule(c.Request.Context(), mentorID, c.Param("date"), input.TimeSlots)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	getLogger(c).Debug("Availability published", zap.String("mentorID", mentorID), zap.String("date", schedule.Date))
	c.JSON(http.StatusOK, schedule)
}

func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	schedule, err := h.Service.GetSchedule(c.Request.Context(), c.Param("mentorID"), c.Param("date"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// ListAvailabilityHandler lists a mentor's schedules from ?from= (default today).
func (h *AvailabilityHandler) ListAvailabilityHandler(c *gin.Context) {
	result, err := h.Service.ListUpcoming(c.Request.Context(), c.Param("mentorID"), c.Query("from"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AvailabilityHandler) FreeSlotsHandler(c *gin.Context) {
	slots, err := h.Ledger.FreeSlots(c.Request.Context(), c.Param("mentorID"), c.Param("date"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentorId": c.Param("mentorID"), "date": c.Param("date"), "timeSlots": slots})
}

func (h *AvailabilityHandler) BookedSlotsHandler(c *gin.Context) {
	slots, err := h.Ledger.BookedSlots(c.Request.Context(), c.Param("mentorID"), c.Param("date"))
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentorId": c.Param("mentorID"), "date": c.Param("date"), "timeSlots": slots})
}
