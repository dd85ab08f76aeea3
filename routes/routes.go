package routes

import (
	"net/http"
	"time"

	"firstresponse/config"
	"firstresponse/handlers"
	"firstresponse/middleware"
	"firstresponse/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the login flow endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.RootHandler)
	r.GET("/login", hb.LoginPageHandler)
	r.POST("/login", hb.LoginHandler)
	r.GET("/otp", hb.OTPPageHandler)
	r.POST("/otp", hb.VerifyOTPHandler)
	r.GET("/session", hb.SessionHandler)
}

// RegisterDashboardRoutes registers the tool pages behind the session guard.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.Use(middleware.SessionGuard())
		dashboard.GET("", hb.HomeHandler)
		dashboard.GET("/first-aid", hb.FirstAidHandler)
		dashboard.POST("/rationing", hb.RationingHandler)
		dashboard.GET("/safe-route", hb.SafeRoutePageHandler)
		dashboard.POST("/safe-route", hb.SafeRouteHandler)
		dashboard.GET("/safe-route/sample", hb.SafeRouteSample)
		dashboard.POST("/flyer-scanner", hb.FlyerScannerHandler)
		dashboard.GET("/settings", hb.GetSettingsHandler)
		dashboard.PUT("/settings", hb.UpdateSettingsHandler)
		dashboard.POST("/sign-out", hb.SignOutHandler)
	}
}

// RegisterHealthRoute reports gateway liveness and the last dependency check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "FirstResponse gateway is running",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AppConfig.AllowedOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:8080"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	r.Use(middleware.ClientIdentity(hb.Sessions, hb.CookieTTL))
	r.Use(middleware.RateLimitMiddleware(hb.RateLimit))
	RegisterAuthRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})
}
