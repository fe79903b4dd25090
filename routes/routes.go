package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mentorbook/handlers"
	"mentorbook/middleware"
	"mentorbook/models"
)

// RegisterAvailabilityRoutes registers schedule endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		api.PUT("/:date", middleware.RequireRole(models.RoleMentor), hb.PublishAvailabilityHandler)
		api.GET("/:mentorID", hb.ListAvailabilityHandler)
		api.GET("/:mentorID/:date", hb.GetAvailabilityHandler)
		api.GET("/:mentorID/:date/free", hb.FreeSlotsHandler)
		api.GET("/:mentorID/:date/booked", hb.BookedSlotsHandler)
	}
}

// RegisterSessionRoutes registers session request endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		api.POST("", middleware.RequireRole(models.RoleMentee), hb.RequestSessionHandler)
		api.GET("", hb.ListMySessionsHandler)
		api.GET("/upcoming", hb.ListUpcomingHandler)
		api.GET("/stats", middleware.RequireRole(models.RoleMentor), hb.MentorStatsHandler)
		api.GET("/:id", hb.GetSessionHandler)
		api.PUT("/:id/status", hb.UpdateSessionStatusHandler)
		api.POST("/:id/complete", hb.CompleteSessionHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
		return
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := hb.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAny(origins),
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
}

// Browsers drop credentialed responses that carry a wildcard origin.
func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
