package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

// WebhookHandler manages outbound webhook subscriptions. The secret is
// write-only: it is accepted on create/update and never echoed back.
type WebhookHandler struct {
	webhooks repositories.WebhookRepo
}

func NewWebhookHandler(webhooks repositories.WebhookRepo) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

type webhookRequest struct {
	Event  string `json:"evento"`
	URL    string `json:"url"`
	Secret string `json:"secret"`
	Active *bool  `json:"active"`
}

func validEvent(event string) bool {
	switch event {
	case models.EventMessageCreated, models.EventCallStatusChanged, models.EventLeadStageChanged:
		return true
	}
	return false
}

// Create godoc
// @Summary Registra uma assinatura de webhook
// @Description Eventos suportados: message.created, call.status_changed, lead.stage_changed
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body webhookRequest true "Assinatura"
// @Success 201 {object} models.WebhookSubscription
// @Failure 400 {object} map[string]string
// @Router /webhooks [post]
func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req webhookRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if !validEvent(req.Event) {
		return respondError(c, fiber.StatusBadRequest, "evento inválido")
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return respondError(c, fiber.StatusBadRequest, "url inválida")
	}
	if req.Secret == "" {
		return respondError(c, fiber.StatusBadRequest, "secret é obrigatório")
	}

	sub := &models.WebhookSubscription{
		TenantID: tenantID,
		Event:    req.Event,
		URL:      req.URL,
		Secret:   req.Secret,
		Active:   true,
	}
	if err := h.webhooks.Create(sub); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// List godoc
// @Summary Lista as assinaturas de webhook do tenant
// @Tags Webhooks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.WebhookSubscription
// @Router /webhooks [get]
func (h *WebhookHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	subs, err := h.webhooks.ListByTenant(tenantID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subs)
}

// Update godoc
// @Summary Atualiza uma assinatura de webhook
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da assinatura"
// @Param body body webhookRequest true "Assinatura"
// @Success 200 {object} models.WebhookSubscription
// @Failure 404 {object} map[string]string
// @Router /webhooks/{id} [put]
func (h *WebhookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	sub, err := h.webhooks.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req webhookRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	if req.Event != "" {
		if !validEvent(req.Event) {
			return respondError(c, fiber.StatusBadRequest, "evento inválido")
		}
		sub.Event = req.Event
	}
	if req.URL != "" {
		if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
			return respondError(c, fiber.StatusBadRequest, "url inválida")
		}
		sub.URL = req.URL
	}
	if req.Secret != "" {
		sub.Secret = req.Secret
	}
	if req.Active != nil {
		sub.Active = *req.Active
	}

	if err := h.webhooks.Save(sub); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sub)
}

// Delete godoc
// @Summary Remove uma assinatura de webhook
// @Tags Webhooks
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da assinatura"
// @Success 204
// @Router /webhooks/{id} [delete]
func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.webhooks.Delete(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
