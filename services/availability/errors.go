package availability

import "mentorbook/utils"

var (
	ErrPastDate         = utils.NewAppError(utils.KindValidation, utils.CodePastDate, "date is in the past")
	ErrTooManySlots     = utils.NewAppError(utils.KindValidation, utils.CodeTooManySlots, "too many slots for one date")
	ErrInvalidSlot      = utils.NewAppError(utils.KindValidation, utils.CodeInvalidSlot, "invalid time slot")
	ErrOverlappingSlots = utils.NewAppError(utils.KindValidation, utils.CodeOverlappingSlots, "time slots overlap")
	ErrInvalidDate      = utils.NewAppError(utils.KindValidation, utils.CodeInvalidDate, "date must be YYYY-MM-DD")
	ErrInvalidMentor    = utils.NewAppError(utils.KindValidation, utils.CodeValidation, "mentor id is required")
	ErrScheduleNotFound = utils.NewAppError(utils.KindNotFound, utils.CodeNotFound, "no availability for this date")
	ErrScheduleBusy     = utils.NewAppError(utils.KindConflict, utils.CodeScheduleBusy, "schedule is being updated, retry")
)

// ReasonBusy is reported when another publish for the mentor holds the lock.
const ReasonBusy = "busy"
