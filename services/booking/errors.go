package booking

import "mentorbook/utils"

var (
	ErrSlotUnavailable   = utils.NewAppError(utils.KindConflict, utils.CodeSlotUnavailable, "the requested slot is not available")
	ErrRequestNotFound   = utils.NewAppError(utils.KindNotFound, utils.CodeNotFound, "session request not found")
	ErrInvalidTransition = utils.NewAppError(utils.KindState, utils.CodeInvalidTransition, "status change not allowed from the current status")
	ErrWrongRole         = utils.NewAppError(utils.KindAuthorization, utils.CodeWrongRole, "your role may not perform this action")
	ErrNotOwner          = utils.NewAppError(utils.KindAuthorization, utils.CodeNotOwner, "you are not a party to this session request")
	ErrValidation        = utils.NewAppError(utils.KindValidation, utils.CodeValidation, "invalid session request")
	ErrInvalidDate       = utils.NewAppError(utils.KindValidation, utils.CodeInvalidDate, "date must be YYYY-MM-DD")
	ErrPastDate          = utils.NewAppError(utils.KindValidation, utils.CodePastDate, "date is in the past")
	ErrInvalidSlot       = utils.NewAppError(utils.KindValidation, utils.CodeInvalidSlot, "invalid time slot")
)

// Slot unavailability reasons, reported in the "reason" detail.
const (
	ReasonNotPublished = "not_published"
	ReasonHeld         = "held"
	ReasonBusy         = "busy"
)

func invalidField(field, message string) *utils.AppError {
	return ErrValidation.With("field", field).With("reason", message)
}
