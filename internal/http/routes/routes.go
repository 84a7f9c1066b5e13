package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"clinicwa/internal/http/handler"
	"clinicwa/internal/http/middleware"
	"clinicwa/internal/infra/config"
	"clinicwa/pkg/logger"

	// Import generated docs
	_ "clinicwa/docs"
)

// Router holds all route handlers and dependencies
type Router struct {
	moderatorHandler *handler.ModeratorHandler
	healthHandler    *handler.HealthHandler
	config           *config.Config
	logger           logger.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(
	moderatorHandler *handler.ModeratorHandler,
	healthHandler *handler.HealthHandler,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		moderatorHandler: moderatorHandler,
		healthHandler:    healthHandler,
		config:           config,
		logger:           logger,
	}
}

// SetupRoutes configures all routes and middleware
func (rt *Router) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	rt.setupGlobalMiddleware(r)

	// Health and metrics routes (no auth required)
	rt.setupHealthRoutes(r)

	// Swagger documentation route (no auth required)
	rt.setupSwaggerRoute(r)

	// API routes with authentication
	rt.setupAPIRoutes(r)

	return r
}

// setupGlobalMiddleware configures global middleware
func (rt *Router) setupGlobalMiddleware(r *chi.Mux) {
	// Recovery middleware (should be first)
	r.Use(middleware.RecoveryMiddleware(rt.logger))

	// Request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Security headers
	r.Use(middleware.SecurityHeadersMiddleware())

	// CORS middleware
	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   rt.config.Server.CORS.AllowedOrigins,
		AllowedMethods:   rt.config.Server.CORS.AllowedMethods,
		AllowedHeaders:   rt.config.Server.CORS.AllowedHeaders,
		AllowCredentials: rt.config.Server.CORS.AllowCredentials,
		MaxAge:           rt.config.Server.CORS.MaxAge,
	}
	r.Use(middleware.CORSMiddleware(corsConfig))

	// Logging middleware
	r.Use(middleware.LoggingMiddleware(rt.logger))

	// Rate limiting middleware
	rateLimitConfig := &middleware.RateLimitConfig{
		RequestsPerMinute: rt.config.Server.RateLimit.RequestsPerMinute,
		BurstSize:         rt.config.Server.RateLimit.BurstSize,
		KeyFunc: func(r *http.Request) string {
			return r.RemoteAddr
		},
	}
	r.Use(middleware.RateLimitMiddleware(rateLimitConfig, rt.logger))

	// Content validation middleware
	r.Use(middleware.ValidationMiddleware(rt.logger))
}

// setupHealthRoutes configures health and metrics routes
func (rt *Router) setupHealthRoutes(r *chi.Mux) {
	r.Get("/health", rt.healthHandler.Health)
	r.Get("/metrics", rt.healthHandler.Metrics)
}

// setupAPIRoutes configures API routes with authentication
func (rt *Router) setupAPIRoutes(r *chi.Mux) {
	// Authentication middleware for API routes
	var api chi.Router = r
	if rt.config.Auth.Enabled {
		switch rt.config.Auth.Type {
		case "api_key":
			authConfig := &middleware.AuthConfig{
				APIKeys:    rt.config.Auth.APIKeys,
				SkipPaths:  []string{"/health", "/metrics"},
				HeaderName: rt.config.Auth.HeaderName,
			}
			api = r.With(middleware.AuthMiddleware(authConfig, rt.logger))
		case "basic":
			api = r.With(middleware.BasicAuthMiddleware(
				rt.config.Auth.BasicAuth.Username,
				rt.config.Auth.BasicAuth.Password,
				rt.logger,
			))
		}
	}

	// Moderator routes
	rt.setupModeratorRoutes(api)

	// Standalone network connectivity probe
	api.Get("/network/connectivity", rt.moderatorHandler.CheckConnectivity)
}

// setupModeratorRoutes configures moderator-registry and messaging-façade routes
func (rt *Router) setupModeratorRoutes(r chi.Router) {
	r.Route("/moderators", func(r chi.Router) {
		// Moderator CRUD operations
		r.Post("/", rt.moderatorHandler.CreateModerator)
		r.Get("/", rt.moderatorHandler.ListModerators)

		// Individual moderator operations
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.moderatorHandler.GetModerator)
			r.Delete("/", rt.moderatorHandler.DeleteModerator)

			r.Post("/proxy", rt.moderatorHandler.SetProxy)

			// Messaging façade
			r.Post("/send", rt.moderatorHandler.SendMessage)
			r.Post("/check", rt.moderatorHandler.CheckNumber)
			r.Post("/dispose", rt.moderatorHandler.DisposeSession)

			// Advisory-tier pause/resume
			r.Get("/pause", rt.moderatorHandler.GetPauseStatus)
			r.Post("/pause", rt.moderatorHandler.PauseModerator)
			r.Post("/resume", rt.moderatorHandler.ResumeModerator)
		})
	})
}

// setupSwaggerRoute configures the Swagger documentation route
func (rt *Router) setupSwaggerRoute(r *chi.Mux) {
	// Swagger documentation route - accessible without authentication
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
