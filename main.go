// File: main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mentorbook/config"
	"mentorbook/handlers"
	"mentorbook/middleware"
	"mentorbook/routes"
	"mentorbook/services/availability"
	"mentorbook/services/booking"
	"mentorbook/utils"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	utils.InitializeLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty; identity tokens are only as safe as an empty key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open storage (%s): %v", cfg.StorageDriver, err)
	}
	defer st.Close()

	loc := cfg.Location()

	// services.
	availabilityService := availability.NewAvailabilityService(st.Schedules, loc, logger)
	availabilityService.Locks = st.Locker

	checker := booking.NewConflictChecker(st.Availability, st.Sessions)
	ledger := booking.NewSessionLedger(st.Sessions, checker, st.Locker, loc, logger)

	monitor := utils.NewHealthMonitor(st.Checks)
	monitor.Start(ctx, 30*time.Second)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewAvailabilityHandler(availabilityService, ledger),
		handlers.NewSessionHandler(ledger),
		handlers.HealthHandler(monitor),
	)
	handlerBundle.JWTSecret = []byte(cfg.JWTSecret)
	handlerBundle.MaxRequestsPerMin = cfg.MaxRequestsPerMin
	handlerBundle.AllowedOrigins = cfg.AllowedOrigins()

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s (storage=%s)", srv.Addr, cfg.StorageDriver)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	logger.Info("main: server stopped gracefully")
}
