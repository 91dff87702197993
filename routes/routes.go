package routes

import (
	"net/http"
	"time"

	"bookwise/config"
	"bookwise/handlers"
	"bookwise/middleware"
	"bookwise/models"
	"bookwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func authRequired(hb *handlers.HandlerBundle) gin.HandlerFunc {
	return middleware.JWTAuthMiddleware(hb.Users, hb.Blacklist)
}

// RegisterAuthRoutes registers registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.AuthHandler.Register)
		api.POST("/login", hb.AuthHandler.Login)
		api.POST("/refresh-token", hb.AuthHandler.Refresh)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(authRequired(hb))
		protected.POST("/logout", hb.AuthHandler.Logout)
		protected.GET("/me", hb.AuthHandler.Me)
	}
}

// RegisterUserRoutes registers self-service account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(authRequired(hb))
		api.PUT("/profile", hb.UserHandler.UpdateProfile)
		api.PATCH("/password", hb.UserHandler.UpdatePassword)
		api.DELETE("/account", hb.UserHandler.DeleteAccount)
		api.PUT("/device", hb.UserHandler.RegisterDevice)
	}
}

// RegisterBookingRoutes sets up the booking endpoints. Static paths are declared
// before /:id.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(authRequired(hb))
		bookingGroup.POST("", hb.BookingHandler.Create)
		bookingGroup.GET("", hb.BookingHandler.List)
		bookingGroup.GET("/upcoming", hb.BookingHandler.Upcoming)
		bookingGroup.GET("/past", hb.BookingHandler.Past)
		bookingGroup.GET("/range", hb.BookingHandler.Range)
		bookingGroup.GET("/:id", hb.BookingHandler.Get)
		bookingGroup.PATCH("/:id", hb.BookingHandler.Update)
		bookingGroup.PATCH("/:id/status", hb.BookingHandler.UpdateStatus)
		bookingGroup.DELETE("/:id", hb.BookingHandler.Delete)
	}
}

// RegisterNotificationRoutes mounts the per-user push stream.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(authRequired(hb))
		api.GET("/stream", hb.NotificationHandler.Stream)
	}
}

// RegisterJobRoutes exposes the reminder queue. Cleanup deletes history, so it
// needs an admin token.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	jobGroup := r.Group("/job")
	{
		jobGroup.GET("", hb.JobHandler.Info)
		jobGroup.GET("/health", hb.JobHandler.Health)
		jobGroup.GET("/metrics", hb.JobHandler.Metrics)
		jobGroup.GET("/queue/stats", hb.JobHandler.QueueStats)
		jobGroup.POST("/cleanup", authRequired(hb), middleware.RequireRole(models.RoleAdmin), hb.JobHandler.Cleanup)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the background
// health monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm bookwise"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if config.AppConfig.MaxRequestsPerMin > 0 {
		r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	}

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	if hb.JobHandler != nil {
		RegisterJobRoutes(r, hb)
	}
}

// RegisterWorkerRoutes serves only the queue endpoints, for a worker-only process.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(utils.ErrorHandler())
	RegisterHealthRoute(r)
	RegisterJobRoutes(r, hb)
}
