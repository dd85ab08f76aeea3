package handlers

import (
	"time"

	"firstresponse/services/auth"
	"firstresponse/services/firstaid"
	"firstresponse/services/home"
	"firstresponse/services/rationing"
	"firstresponse/services/scanner"
	"firstresponse/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions  session.Backend
	CookieTTL time.Duration
	RateLimit int

	// Login flow
	RootHandler      gin.HandlerFunc
	LoginPageHandler gin.HandlerFunc
	OTPPageHandler   gin.HandlerFunc
	LoginHandler     gin.HandlerFunc
	VerifyOTPHandler gin.HandlerFunc
	SessionHandler   gin.HandlerFunc
	SignOutHandler   gin.HandlerFunc

	// Dashboard pages
	HomeHandler           gin.HandlerFunc
	FirstAidHandler       gin.HandlerFunc
	RationingHandler      gin.HandlerFunc
	SafeRoutePageHandler  gin.HandlerFunc
	SafeRouteHandler      gin.HandlerFunc
	SafeRouteSample       gin.HandlerFunc
	FlyerScannerHandler   gin.HandlerFunc
	GetSettingsHandler    gin.HandlerFunc
	UpdateSettingsHandler gin.HandlerFunc
}

// Deps are the services the gateway pages are built on.
type Deps struct {
	Sessions       session.Backend
	CookieTTL      time.Duration
	RateLimit      int
	MaxUploadBytes int64

	Auth      *auth.Controller
	Home      home.HomeService
	FirstAid  firstaid.FirstAidService
	Rationing rationing.RationingService
	Planner   RoutePlanner
	Scanner   scanner.ScannerService
}

// NewHandlerBundle wires every page handler.
func NewHandlerBundle(d Deps) *HandlerBundle {
	authHandler := NewAuthHandler(d.Auth)
	homeHandler := NewHomeHandler(d.Home)
	firstAidHandler := NewFirstAidHandler(d.FirstAid)
	rationingHandler := NewRationingHandler(d.Rationing)
	routeHandler := NewSafeRouteHandler(d.Planner)
	scannerHandler := NewScannerHandler(d.Scanner, d.MaxUploadBytes)

	return &HandlerBundle{
		Sessions:  d.Sessions,
		CookieTTL: d.CookieTTL,
		RateLimit: d.RateLimit,

		RootHandler:      RedirectToLogin,
		LoginPageHandler: authHandler.LoginPageHandler,
		OTPPageHandler:   authHandler.OTPPageHandler,
		LoginHandler:     authHandler.LoginHandler,
		VerifyOTPHandler: authHandler.VerifyOTPHandler,
		SessionHandler:   authHandler.SessionHandler,
		SignOutHandler:   authHandler.SignOutHandler,

		HomeHandler:           homeHandler.GetHomeHandler,
		FirstAidHandler:       firstAidHandler.AskHandler,
		RationingHandler:      rationingHandler.AnalyzeHandler,
		SafeRoutePageHandler:  routeHandler.PageHandler,
		SafeRouteHandler:      routeHandler.PlanHandler,
		SafeRouteSample:       routeHandler.SampleHandler,
		FlyerScannerHandler:   scannerHandler.ScanHandler,
		GetSettingsHandler:    GetSettingsHandler,
		UpdateSettingsHandler: UpdateSettingsHandler,
	}
}
