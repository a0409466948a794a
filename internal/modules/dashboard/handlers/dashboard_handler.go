package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stokmate/stokmate-analytics-be/internal/core/analytics"
	"github.com/stokmate/stokmate-analytics-be/internal/modules/dashboard/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Full dashboard for a period
// @Description Aggregated KPIs, product rankings, purchases-vs-sales series and invoice stats for one period
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period selector" Enums(today, week, month, year, all) default(month)
// @Success 200 {object} services.Dashboard
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	period, ok := analytics.ParsePeriod(c.Query("period", string(analytics.PeriodMonth)))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid period: must be one of today, week, month, year, all",
		})
	}

	dash, err := h.dashboardService.ComputeDashboard(c.Context(), period)
	if err != nil {
		// Upstream is down: surface the error, hand back the last good
		// snapshot so the caller can keep rendering it with an indicator.
		payload := fiber.Map{
			"error":  err.Error(),
			"period": period,
		}
		if lastGood, found := h.dashboardService.LastKnownGood(period); found {
			payload["last_known_good"] = lastGood
		}
		return c.Status(fiber.StatusBadGateway).JSON(payload)
	}

	return c.JSON(dash)
}

// GetInvoiceStats godoc
// @Summary Invoice analytics for a period
// @Description Period-filtered invoice counts, success rate and aggregate value
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period selector" Enums(today, week, month, year, all) default(month)
// @Success 200 {object} analytics.InvoiceStats
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /dashboard/invoices [get]
func (h *DashboardHandler) GetInvoiceStats(c *fiber.Ctx) error {
	period, ok := analytics.ParsePeriod(c.Query("period", string(analytics.PeriodMonth)))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid period: must be one of today, week, month, year, all",
		})
	}

	dash, err := h.dashboardService.ComputeDashboard(c.Context(), period)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  err.Error(),
			"period": period,
		})
	}

	return c.JSON(dash.InvoiceStats)
}
