package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/mailflow/mailflow/api/handlers"
	"github.com/mailflow/mailflow/api/middleware"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	apiHandlers := handlers.InitHandlers(s)

	// Health check endpoint (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-MAILFLOW-API-KEY",
		ValidAPIKey: apikey,
	})

	// API group with version and custom context
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.UserIdMiddleware())
	api.Use(middleware.CustomContextMiddleware("mailflow"))
	api.Use(middleware.TracingMiddleware())
	{
		emails := api.Group("/emails")
		{
			emails.POST("", apiHandlers.Emails.Create())
			emails.GET("", apiHandlers.Emails.List())
			emails.GET("/unread-count", apiHandlers.Emails.UnreadCount())
			emails.GET("/starred", apiHandlers.Emails.Starred())
			emails.DELETE("/trash", apiHandlers.Emails.EmptyTrash())
			emails.GET("/:id", apiHandlers.Emails.Get())
			emails.DELETE("/:id", apiHandlers.Emails.SoftDelete())
			emails.DELETE("/:id/permanent", apiHandlers.Emails.HardDelete())
			emails.PUT("/:id/read", apiHandlers.Emails.MarkAsRead())
			emails.PUT("/:id/unread", apiHandlers.Emails.MarkAsUnread())
			emails.POST("/:id/reply", apiHandlers.Emails.Reply())
			emails.POST("/:id/forward", apiHandlers.Emails.Forward())
			emails.PUT("/:id/folder", apiHandlers.Emails.MoveToFolder())
			emails.PUT("/:id/star", apiHandlers.Emails.Star())
			emails.DELETE("/:id/star", apiHandlers.Emails.Unstar())
			emails.PUT("/:id/labels/:labelId", apiHandlers.Labels.Attach())
			emails.DELETE("/:id/labels/:labelId", apiHandlers.Labels.Detach())
		}

		labels := api.Group("/labels")
		{
			labels.POST("", apiHandlers.Labels.Create())
			labels.GET("", apiHandlers.Labels.List())
			labels.GET("/:id", apiHandlers.Labels.Get())
			labels.PUT("/:id", apiHandlers.Labels.Update())
			labels.DELETE("/:id", apiHandlers.Labels.Delete())
			labels.GET("/:id/emails", apiHandlers.Labels.Emails())
		}

		attachments := api.Group("/attachments")
		{
			attachments.POST("", apiHandlers.Attachments.Upload())
			attachments.GET("/:id", apiHandlers.Attachments.Download())
			attachments.DELETE("/:id", apiHandlers.Attachments.Delete())
		}
	}
}
