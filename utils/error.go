package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind groups domain failures by how a caller should react to them.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConflict      ErrorKind = "conflict"
	KindAuthorization ErrorKind = "authorization"
	KindState         ErrorKind = "state"
	KindNotFound      ErrorKind = "not_found"
)

// Error codes reported to clients.
const (
	CodePastDate          = "PastDate"
	CodeTooManySlots      = "TooManySlots"
	CodeInvalidSlot       = "InvalidSlot"
	CodeOverlappingSlots  = "OverlappingSlots"
	CodeInvalidDate       = "InvalidDate"
	CodeValidation        = "ValidationError"
	CodeSlotUnavailable   = "SlotUnavailable"
	CodeWrongRole         = "WrongRole"
	CodeNotOwner          = "NotOwner"
	CodeInvalidTransition = "InvalidTransition"
	CodeNotFound          = "NotFound"
	CodeScheduleBusy      = "ScheduleBusy"
)

// AppError is a domain failure with enough context to render an actionable message.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches another AppError by code, so errors.Is(err, &AppError{Code: CodeNotFound}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// With returns a copy of e carrying one more detail.
func (e *AppError) With(key string, value any) *AppError {
	out := *e
	out.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		out.Details[k] = v
	}
	out.Details[key] = value
	return &out
}

func NewAppError(kind ErrorKind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// AsAppError unwraps err into an AppError when it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorCode returns the AppError code of err, or "" for infrastructure errors.
func ErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HTTPStatus maps an error kind onto a response status.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindState:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "InternalError",
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// WriteError renders err as JSON. Domain errors keep their code and details;
// anything else is logged and reported as an opaque 500.
func WriteError(c *gin.Context, err error) {
	logger := GetLogger()
	if appErr, ok := AsAppError(err); ok {
		status := HTTPStatus(appErr.Kind)
		logger.Debug("request failed",
			zap.String("code", appErr.Code),
			zap.Int("status", status),
			zap.String("message", appErr.Message))
		c.AbortWithStatusJSON(status, ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	logger.Error("internal error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "InternalError",
		Message: "An unexpected error occurred. Please try again later.",
	})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, code, message string) {
	GetLogger().Warn(message, zap.String("code", code))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}
