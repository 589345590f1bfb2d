package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-intel/internal/api/dto"
	"github.com/spec-kit/ticket-intel/internal/domain"
	"github.com/spec-kit/ticket-intel/internal/service"
	"github.com/spec-kit/ticket-intel/pkg/util"
)

// InsightsHandler manages category insight and dashboard endpoints.
type InsightsHandler struct {
	dashboard *service.Dashboard
}

// NewInsightsHandler constructs handler.
func NewInsightsHandler(dashboard *service.Dashboard) *InsightsHandler {
	return &InsightsHandler{dashboard: dashboard}
}

// Categories GET /api/categories.
func (h *InsightsHandler) Categories(c *fiber.Ctx) error {
	values := domain.Categories()
	names := make([]string, 0, len(values))
	for _, v := range values {
		names = append(names, string(v))
	}
	return c.JSON(fiber.Map{"data": names})
}

// CategoryInsights GET /api/categories/:name/insights. Selecting a category
// makes it the active dashboard scope; a selection superseded by a newer one
// while in flight still returns its own data, it just does not become the
// stored scope.
func (h *InsightsHandler) CategoryInsights(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return util.NewValidationError("invalid category name", nil)
	}
	category := domain.ParseCategory(name)
	if category == domain.CategoryUnknown {
		return util.NewNotFound("category", map[string]any{"category": name})
	}

	view, applied := h.dashboard.SelectCategory(c.UserContext(), category)
	resp := dto.FromCategoryView(view)
	return c.JSON(fiber.Map{"data": resp, "applied": applied})
}

// Dashboard GET /api/dashboard. Returns the last computed global view.
func (h *InsightsHandler) Dashboard(c *fiber.Ctx) error {
	view := h.dashboard.GlobalSnapshot()
	return c.JSON(fiber.Map{"data": dto.FromGlobalView(view)})
}

// RefreshDashboard POST /api/dashboard/refresh. Recomputes predictive
// insights and alerts synchronously.
func (h *InsightsHandler) RefreshDashboard(c *fiber.Ctx) error {
	view, applied := h.dashboard.RefreshGlobal(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.FromGlobalView(view), "applied": applied})
}
