package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	dataSourceURL string
}

func NewHealthHandler(dataSourceURL string) *HealthHandler {
	return &HealthHandler{dataSourceURL: dataSourceURL}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"service":     "analytics-api",
		"data_source": h.dataSourceURL,
	})
}
