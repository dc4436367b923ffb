package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/core/channel"
)

type ChannelHandler struct {
	channel *channel.Service
}

func NewChannelHandler(channelSvc *channel.Service) *ChannelHandler {
	return &ChannelHandler{channel: channelSvc}
}

// QR godoc
// @Summary Gera o QR code de pareamento do canal
// @Tags Canal
// @Produce png
// @Param Authorization header string true "Bearer token"
// @Success 200 {file} binary
// @Failure 500 {object} map[string]string
// @Router /channel/qr [get]
func (h *ChannelHandler) QR(c *fiber.Ctx) error {
	png, err := h.channel.GenerateQR()
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "falha ao gerar QR code")
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// StartSession godoc
// @Summary Conecta a sessão do canal
// @Tags Canal
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /channel/session/start [post]
func (h *ChannelHandler) StartSession(c *fiber.Ctx) error {
	if err := h.channel.Connect(); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "falha ao conectar a sessão do canal")
	}
	return c.JSON(fiber.Map{"status": "conectado"})
}

// StopSession godoc
// @Summary Encerra a sessão do canal
// @Tags Canal
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /channel/session/stop [post]
func (h *ChannelHandler) StopSession(c *fiber.Ctx) error {
	h.channel.Disconnect()
	return c.JSON(fiber.Map{"status": "desconectado"})
}

// Status godoc
// @Summary Consulta o status da sessão do canal
// @Tags Canal
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /channel/status [get]
func (h *ChannelHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"provider":  h.channel.GetProviderName(),
		"connected": h.channel.IsConnected(),
	})
}
