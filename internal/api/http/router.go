package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-intel/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Analyze  *handlers.AnalyzeHandler
	Tickets  *handlers.TicketsHandler
	Insights *handlers.InsightsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Get("/examples", cfg.Analyze.Examples)
	api.Post("/tickets/analyze", cfg.Analyze.Analyze)
	api.Post("/tickets/analyze-batch", cfg.Analyze.AnalyzeBatch)

	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/:id", cfg.Tickets.Get)
	api.Post("/tickets/:id/suggest-reply", cfg.Tickets.SuggestReply)
	api.Get("/tickets/:id/suggest-reply", cfg.Tickets.ReplyState)

	api.Get("/categories", cfg.Insights.Categories)
	api.Get("/categories/:name/insights", cfg.Insights.CategoryInsights)
	api.Get("/dashboard", cfg.Insights.Dashboard)
	api.Post("/dashboard/refresh", cfg.Insights.RefreshDashboard)
}
