package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorbook/models"
	"mentorbook/utils"
)

// RequireRole lets the request through only when the caller plays one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := Caller(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Caller identity missing")
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.WriteError(c, utils.NewAppError(utils.KindAuthorization, utils.CodeWrongRole, "your role may not perform this action").
			With("requiredRoles", roles).
			With("role", role))
	}
}
