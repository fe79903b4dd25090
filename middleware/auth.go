package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorbook/models"
	"mentorbook/utils"
)

// Context keys set by JWTAuthMiddleware.
const (
	CallerIDKey   = "callerID"
	CallerRoleKey = "callerRole"
)

// JWTAuthMiddleware trusts the identity provider's HS256 token and stores the
// caller id ("sub") and role in the gin context. Credentials are never checked here.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		callerID, role, err := utils.ExtractIdentity(secret, tokenString)
		if err != nil {
			utils.GetLogger().Debug("Rejected identity token", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			return
		}
		if !models.Role(role).Valid() {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Token role must be mentor or mentee")
			return
		}

		c.Set(CallerIDKey, callerID)
		c.Set(CallerRoleKey, models.Role(role))
		c.Next()
	}
}

// Caller returns the identity stored by JWTAuthMiddleware.
func Caller(c *gin.Context) (string, models.Role, bool) {
	id := c.GetString(CallerIDKey)
	v, _ := c.Get(CallerRoleKey)
	role, _ := v.(models.Role)
	return id, role, id != "" && role.Valid()
}
