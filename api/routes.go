package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mailfold/mailfold/api/handlers"
	"github.com/mailfold/mailfold/api/middleware"
	"github.com/mailfold/mailfold/internal/logger"
	"github.com/mailfold/mailfold/services"
)

const apiKeyHeader = "X-API-Key"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, log logger.Logger, apiKey string) {
	if s == nil {
		panic("Services cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	// Health check endpoint stays outside the API key gate
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  apiKeyHeader,
		ValidAPIKey: apiKey,
	})

	protected := r.Group("/")
	protected.Use(apiKeyMiddleware)
	protected.Use(middleware.TracingMiddleware())
	{
		protected.POST("/pipe_mail", handlers.PipeMail(s.RouterService, log))
		protected.POST("/move-email", handlers.MoveEmail(s.IMAPService, log))
		protected.POST("/list-folders", handlers.ListFolders(s.IMAPService, log))
	}
}
