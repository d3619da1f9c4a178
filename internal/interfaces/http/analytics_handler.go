package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/revops-api/internal/application/analytics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandler owner dashboard and job export.
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	export    *analytics.ExportUseCase
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(dashboard *analytics.DashboardUseCase, export *analytics.ExportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, export: export}
}

// Dashboard godoc
// @Summary      Owner dashboard
// @Description  Totals, status counts, revenue per manager and the last 30 days of revenue.
// @Description  Served from the cache when a snapshot exists.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.Dashboard(c.UserContext(), CurrentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export jobs as a spreadsheet
// @Tags         analytics
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/export [get]
func (h *AnalyticsHandler) Export(c *fiber.Ctx) error {
	data, name, err := h.export.Export(c.UserContext(), CurrentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, xlsxContentType, name, data)
}

func sendAttachment(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}
