package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/navigation"
	"github.com/jhoicas/revops-api/pkg/currency"
)

// HealthChecker is a dependency probed by /health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// MetaHandler currency registry, navigation policy and health.
type MetaHandler struct {
	checks map[string]HealthChecker
}

// NewMetaHandler builds the handler; checks may be empty.
func NewMetaHandler(checks map[string]HealthChecker) *MetaHandler {
	return &MetaHandler{checks: checks}
}

// Currencies godoc
// @Summary      Supported currencies
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/currencies [get]
func (h *MetaHandler) Currencies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"default": currency.DefaultCode, "currencies": currency.All()})
}

// Navigation godoc
// @Summary      Menu of the current role
// @Tags         meta
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  navigation.NavItem
// @Router       /api/navigation [get]
func (h *MetaHandler) Navigation(c *fiber.Ctx) error {
	items := navigation.Items(CurrentUser(c).Role)
	if items == nil {
		items = []navigation.NavItem{}
	}
	return c.JSON(items)
}

// ResolveNavigation godoc
// @Summary      Routing decision for a client path
// @Description  Works without a token; the decision is then made for an anonymous visitor.
// @Tags         meta
// @Produce      json
// @Param        path  query  string  true  "client path, e.g. /jobs/new"
// @Success      200  {object}  navigation.Decision
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/navigation/resolve [get]
func (h *MetaHandler) ResolveNavigation(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return badQuery(c, "path is required")
	}
	return c.JSON(navigation.Resolve(SessionFrom(c), path))
}

// Health godoc
// @Summary      Liveness and dependency status
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	body := fiber.Map{"status": "ok"}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			status = fiber.StatusServiceUnavailable
			body["status"] = "degraded"
			body[name] = err.Error()
			continue
		}
		body[name] = "ok"
	}
	return c.Status(status).JSON(body)
}
