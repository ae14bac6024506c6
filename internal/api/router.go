package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/kevgathuku/docue-stack-sub000/internal/api/handlers"
	"github.com/kevgathuku/docue-stack-sub000/internal/api/middleware"
	"github.com/kevgathuku/docue-stack-sub000/internal/auth"
	"github.com/kevgathuku/docue-stack-sub000/internal/cache"
	"github.com/kevgathuku/docue-stack-sub000/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, database *gorm.DB, statsCache cache.Cache) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware())

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)
	authService := auth.NewService(database, tokens)

	userHandler := handlers.NewUserHandler(database, authService)
	roleHandler := handlers.NewRoleHandler(database)
	docHandler := handlers.NewDocumentHandler(database)
	statsHandler := handlers.NewStatsHandler(database, statsCache)

	// Public routes. Logout and session do their own token handling: logout
	// stays usable for an already closed session, and session never errors.
	public := router.Group("/api")
	{
		public.GET("/health", handlers.HealthCheck)
		public.POST("/users", userHandler.Signup)
		public.POST("/users/login", userHandler.Login)
		public.POST("/users/logout", userHandler.Logout)
		public.GET("/users/session", userHandler.Session)
	}

	// Protected routes (require an authenticated, logged-in caller)
	protected := router.Group("/api")
	protected.Use(middleware.Authenticate(database, tokens))
	{
		protected.GET("/users", middleware.RequireAdmin(), userHandler.ListUsers)
		protected.GET("/users/:id", userHandler.GetUser)
		protected.PUT("/users/:id", userHandler.UpdateUser)
		protected.DELETE("/users/:id", userHandler.DeleteUser)
		protected.GET("/users/:id/documents", userHandler.UserDocuments)

		protected.POST("/roles", roleHandler.CreateRole)
		protected.GET("/roles", roleHandler.ListRoles)

		protected.POST("/documents", docHandler.CreateDocument)
		protected.GET("/documents", docHandler.ListDocuments)
		protected.GET("/documents/:id", docHandler.GetDocument)
		protected.PUT("/documents/:id", docHandler.UpdateDocument)
		protected.DELETE("/documents/:id", docHandler.DeleteDocument)
		protected.GET("/documents/roles/:role", docHandler.ListByRole)
		protected.GET("/documents/created/:date", docHandler.ListByDate)

		protected.GET("/stats", middleware.RequireAdmin(), statsHandler.GetStats)
	}

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	slog.Info("API router initialized", "mode", cfg.Server.Mode)
	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-access-token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
