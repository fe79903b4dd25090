package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorbook/utils"
)

// HealthHandler reports the last snapshot of the health monitor.
// It answers 503 while any backing service is unreachable.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := monitor.Status()
		if status.CheckedAt.IsZero() {
			status = monitor.Check(c.Request.Context())
		}

		code, label := http.StatusOK, "ok"
		if !status.Healthy {
			code, label = http.StatusServiceUnavailable, "degraded"
		}
		c.JSON(code, gin.H{"status": label, "services": status.Services, "checkedAt": status.CheckedAt})
	}
}
