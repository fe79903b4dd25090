package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorbook/middleware"
	"mentorbook/models"
	"mentorbook/utils"
)

// getLogger returns the request-scoped logger set by middleware.RequestLogger,
// or the process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// caller reads the authenticated identity. Routes are registered behind
// middleware.JWTAuthMiddleware, so a miss means a wiring bug.
func caller(c *gin.Context) (string, models.Role, bool) {
	id, role, ok := middleware.Caller(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Caller identity missing")
	}
	return id, role, ok
}

func invalidPayload(err error) *utils.AppError {
	return utils.NewAppError(utils.KindValidation, utils.CodeValidation, "invalid request payload").
		With("reason", err.Error())
}
