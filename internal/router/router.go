package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tilmock/cefr-backend/internal/config"
	"github.com/tilmock/cefr-backend/internal/handler"
	"github.com/tilmock/cefr-backend/internal/middleware"
	"github.com/tilmock/cefr-backend/internal/response"
	"github.com/tilmock/cefr-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Session      *handler.SessionHandler
	Reading      *handler.ReadingHandler
	Listening    *handler.ListeningHandler
	Writing      *handler.WritingHandler
	Notification *handler.NotificationHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	sessionService *service.DeviceSessionService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.HeaderDeviceFingerprint}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService)
	touchSession := middleware.TouchDeviceSession(sessionService)

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.Refresh)
		auth.POST("/logout", requireAuth, handlers.Auth.Logout)
	}

	// ─── 2. Users ──────────────────────────────────────────────────────
	users := router.Group("/api/v1/users")
	users.Use(requireAuth, touchSession)
	{
		users.GET("/me", handlers.User.Me)
		users.PUT("/me", handlers.User.UpdateProfile)
		users.PUT("/me/password", handlers.User.ChangePassword)

		adminUsers := users.Group("")
		adminUsers.Use(middleware.RequireAdmin())
		{
			adminUsers.GET("", handlers.User.List)
			adminUsers.POST("/promote", handlers.User.Promote)
			adminUsers.POST("/demote", handlers.User.Demote)
			adminUsers.POST("/premium", handlers.User.GrantPremium)
		}
	}

	// ─── 3. Device Sessions ────────────────────────────────────────────
	sessions := router.Group("/api/v1/sessions")
	sessions.Use(requireAuth, touchSession)
	{
		sessions.GET("", handlers.Session.MySessions)
		sessions.DELETE("", handlers.Session.LogoutAll)
		sessions.GET("/count", handlers.Session.ActiveCount)
		sessions.GET("/:id", handlers.Session.GetSession)
		sessions.DELETE("/:id", handlers.Session.DeleteSession)

		adminSessions := sessions.Group("")
		adminSessions.Use(middleware.RequireAdmin())
		{
			adminSessions.GET("/users/:id", handlers.Session.UserSessions)
			adminSessions.DELETE("/admin/:id", handlers.Session.AdminDeleteSession)
		}
	}

	// ─── 4. Reading Mocks ──────────────────────────────────────────────
	reading := router.Group("/api/v1/mocks/reading")
	reading.Use(requireAuth, touchSession)
	{
		reading.GET("", handlers.Reading.ListMocks)
		reading.GET("/:id", handlers.Reading.GetMock)
		reading.POST("/:id/submit", handlers.Reading.Submit)

		adminReading := reading.Group("")
		adminReading.Use(middleware.RequireAdmin())
		{
			adminReading.POST("", handlers.Reading.CreateMock)
			adminReading.PUT("/:id", handlers.Reading.UpdateMock)
			adminReading.DELETE("/:id", handlers.Reading.DeleteMock)
			adminReading.GET("/:id/answers", handlers.Reading.GetAnswers)
			adminReading.PUT("/:id/answers", handlers.Reading.UpsertAnswers)
			adminReading.DELETE("/:id/answers", handlers.Reading.DeleteAnswers)
		}
	}

	// ─── 5. Listening Mocks ────────────────────────────────────────────
	listening := router.Group("/api/v1/mocks/listening")
	listening.Use(requireAuth, touchSession)
	{
		listening.GET("", handlers.Listening.ListMocks)
		listening.GET("/:id", handlers.Listening.GetMock)
		listening.POST("/:id/submit", handlers.Listening.Submit)

		adminListening := listening.Group("")
		adminListening.Use(middleware.RequireAdmin())
		{
			adminListening.POST("", handlers.Listening.CreateMock)
			adminListening.PUT("/:id", handlers.Listening.UpdateMock)
			adminListening.DELETE("/:id", handlers.Listening.DeleteMock)
			adminListening.GET("/:id/answers", handlers.Listening.GetAnswers)
			adminListening.PUT("/:id/answers", handlers.Listening.UpsertAnswers)
			adminListening.DELETE("/:id/answers", handlers.Listening.DeleteAnswers)
		}
	}

	// ─── 6. Writing Mocks ──────────────────────────────────────────────
	writing := router.Group("/api/v1/mocks/writing")
	writing.Use(requireAuth, touchSession)
	{
		writing.GET("", handlers.Writing.ListMocks)
		writing.GET("/submissions", handlers.Writing.MySubmissions)
		writing.GET("/submissions/pending", middleware.RequireAdmin(), handlers.Writing.PendingSubmissions)
		writing.GET("/submissions/:id", handlers.Writing.GetSubmission)
		writing.GET("/:id", handlers.Writing.GetMock)
		writing.POST("/:id/submit", handlers.Writing.Submit)

		adminWriting := writing.Group("")
		adminWriting.Use(middleware.RequireAdmin())
		{
			adminWriting.POST("", handlers.Writing.CreateMock)
			adminWriting.PUT("/submissions/:id/evaluation", handlers.Writing.Evaluate)
		}
	}

	// ─── 7. Notifications ──────────────────────────────────────────────
	notifications := router.Group("/api/v1/notifications")
	notifications.Use(requireAuth, touchSession)
	{
		notifications.GET("", handlers.Notification.List)
		notifications.POST("", middleware.RequireAdmin(), handlers.Notification.Create)
	}

	return router
}
