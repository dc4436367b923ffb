package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/core/channel"
)

type HealthHandler struct {
	channelService *channel.Service
}

func NewHealthHandler(channelService *channel.Service) *HealthHandler {
	return &HealthHandler{channelService: channelService}
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
		"status":   "ok",
		"service":  "connect-api",
		"provider": h.channelService.GetProviderName(),
	})
}
