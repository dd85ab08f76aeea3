package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firstresponse/config"
	"firstresponse/handlers"
	"firstresponse/middleware"
	"firstresponse/routes"
	"firstresponse/services/auth"
	"firstresponse/services/firstaid"
	"firstresponse/services/geocode"
	"firstresponse/services/home"
	"firstresponse/services/rationing"
	"firstresponse/services/route"
	"firstresponse/services/scanner"
	"firstresponse/services/session"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	api := upstream.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout)
	geo := geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocodeTimeout)

	probes := map[string]utils.Probe{
		"upstream": api.Reachable,
	}

	var sessions session.Backend
	switch cfg.SessionBackend {
	case "redis":
		if err := utils.InitSessionCache(); err != nil {
			logger.Fatal("main: session store unavailable", zap.Error(err))
		}
		client := utils.GetSessionCacheClient()
		sessions = session.NewRedisBackend(client)
		probes["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	case "memory", "":
		sessions = session.NewMemoryBackend()
	default:
		logger.Fatal("main: unknown SESSION_BACKEND", zap.String("backend", cfg.SessionBackend))
	}
	if cfg.ClientCookieSecret == "" {
		logger.Warn("CLIENT_COOKIE_SECRET not set; browser sessions will not survive a restart")
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, time.Minute, probes)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())

	bundle := handlers.NewHandlerBundle(handlers.Deps{
		Sessions:       sessions,
		CookieTTL:      cfg.ClientCookieTTL,
		RateLimit:      cfg.MaxRequestsPerMin,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Auth:           auth.NewController(api, cfg.DemoFallback),
		Home:           home.NewService(api, cfg.DemoFallback),
		FirstAid:       firstaid.NewService(api, cfg.DemoFallback),
		Rationing:      rationing.NewService(api, cfg.DemoFallback),
		Planner:        route.NewOrchestrator(geo, api, cfg.DemoFallback),
		Scanner:        scanner.NewService(api, cfg.DemoFallback, cfg.MaxUploadBytes),
	})
	routes.RegisterRoutes(router, bundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting gateway",
		zap.String("addr", srv.Addr),
		zap.String("api", cfg.APIBaseURL),
		zap.String("sessions", cfg.SessionBackend),
		zap.Bool("demo_fallback", cfg.DemoFallback),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if client := utils.GetSessionCacheClient(); client != nil {
		if err := client.Close(); err != nil {
			logger.Warn("main: failed to close redis", zap.Error(err))
		}
	}
	logger.Info("main: server stopped gracefully")
	_ = logger.Sync()
}
