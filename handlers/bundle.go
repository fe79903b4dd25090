// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler plus what the router needs to protect them.
type HandlerBundle struct {
	JWTSecret         []byte
	MaxRequestsPerMin int
	AllowedOrigins    []string

	// Availability endpoints
	PublishAvailabilityHandler gin.HandlerFunc
	GetAvailabilityHandler     gin.HandlerFunc
	ListAvailabilityHandler    gin.HandlerFunc
	FreeSlotsHandler           gin.HandlerFunc
	BookedSlotsHandler         gin.HandlerFunc

	// Session request endpoints
	RequestSessionHandler      gin.HandlerFunc
	ListMySessionsHandler      gin.HandlerFunc
	ListUpcomingHandler        gin.HandlerFunc
	MentorStatsHandler         gin.HandlerFunc
	GetSessionHandler          gin.HandlerFunc
	UpdateSessionStatusHandler gin.HandlerFunc
	CompleteSessionHandler     gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle fills the endpoint fields from the two resource handlers.
func NewHandlerBundle(avail *AvailabilityHandler, sessions *SessionHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		PublishAvailabilityHandler: avail.PublishAvailabilityHandler,
		GetAvailabilityHandler:     avail.GetAvailabilityHandler,
		ListAvailabilityHandler:    avail.ListAvailabilityHandler,
		FreeSlotsHandler:           avail.FreeSlotsHandler,
		BookedSlotsHandler:         avail.BookedSlotsHandler,

		RequestSessionHandler:      sessions.RequestSessionHandler,
		ListMySessionsHandler:      sessions.ListMySessionsHandler,
		ListUpcomingHandler:        sessions.ListUpcomingHandler,
		MentorStatsHandler:         sessions.MentorStatsHandler,
		GetSessionHandler:          sessions.GetSessionHandler,
		UpdateSessionStatusHandler: sessions.UpdateSessionStatusHandler,
		CompleteSessionHandler:     sessions.CompleteSessionHandler,

		HealthHandler: health,
	}
}
