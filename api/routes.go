package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/replyradar/replyradar/api/handlers"
	"github.com/replyradar/replyradar/api/middleware"
	"github.com/replyradar/replyradar/internal/repository"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery

	// Health check endpoint (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-REPLYRADAR-API-KEY",
		ValidAPIKey: apikey,
	})

	// API group with version and custom context
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.UserIdMiddleware())
	api.Use(middleware.CustomContextMiddleware("replyradar")) // Add custom context for all /v1/* endpoints
	api.Use(middleware.TracingMiddleware())                   // Add tracing for all /v1/* endpoints
	{
		// Mailbox endpoints
		mailboxes := api.Group("/mailboxes")
		{
			mailboxes.GET("", handlers.ListMailboxes(repos.MailboxRepository))
			mailboxes.POST("", handlers.ConnectMailbox(s.MailboxService))
			mailboxes.GET("/:id", handlers.GetMailbox(repos.MailboxRepository))
			mailboxes.DELETE("/:id", handlers.RemoveMailbox(repos.MailboxRepository))
			mailboxes.POST("/:id/sync", handlers.SyncMailbox(s.SyncService, repos.MailboxRepository))
			mailboxes.GET("/:id/threads", handlers.ListThreads(repos.ThreadRepository, repos.MailboxRepository))
		}

		// Fleet-wide sync trigger, same pass the cron job runs
		api.POST("/sync", handlers.SyncAllMailboxes(s.SyncService))

		threads := api.Group("/threads")
		{
			threads.GET("/:id/messages", handlers.ListThreadMessages(repos.ThreadRepository, repos.MessageRepository))
		}

		api.GET("/classifications", handlers.ListClassifications(repos.ClassificationRepository))
	}
}
