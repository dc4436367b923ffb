package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

// longPollWindow caps how long a sync request may hang before the client
// is told to refetch anyway.
const longPollWindow = 25 * time.Second

type ConversationHandler struct {
	conversations *services.ConversationService
}

func NewConversationHandler(conversations *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

type openConversationRequest struct {
	PatientID string `json:"patient_id"`
}

type sendMessageRequest struct {
	AuthorRole string `json:"author_role"`
	Kind       string `json:"kind"`
	Body       string `json:"body"`
	MediaURL   string `json:"media_url"`
}

type assignAttendantRequest struct {
	AttendantID string `json:"attendant_id"`
}

// Open godoc
// @Summary Abre (ou retorna) a conversa de um paciente
// @Description Cada paciente tem uma única conversa; a operação é idempotente
// @Tags Conversas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body openConversationRequest true "Paciente"
// @Success 200 {object} models.Conversation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /conversations [post]
func (h *ConversationHandler) Open(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req openConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	patientID, err := parseUUIDField(req.PatientID, "patient_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	conversation, err := h.conversations.LookupOrCreate(tenantID, patientID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(conversation)
}

// Get godoc
// @Summary Consulta uma conversa
// @Tags Conversas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da conversa"
// @Success 200 {object} models.Conversation
// @Failure 404 {object} map[string]string
// @Router /conversations/{id} [get]
func (h *ConversationHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	conversation, err := h.conversations.Get(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(conversation)
}

// ListMessages godoc
// @Summary Lista as mensagens de uma conversa
// @Description Sequência completa em ordem cronológica; clientes refazem a leitura a cada notificação de mudança
// @Tags Conversas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da conversa"
// @Success 200 {array} models.Message
// @Failure 404 {object} map[string]string
// @Router /conversations/{id}/mensagens [get]
func (h *ConversationHandler) ListMessages(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	messages, err := h.conversations.ListMessages(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(messages)
}

// SyncMessages godoc
// @Summary Aguarda mudanças na conversa (long poll)
// @Description Bloqueia até uma nova mensagem ou até o fim da janela; retorna a sequência completa em ambos os casos
// @Tags Conversas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da conversa"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /conversations/{id}/mensagens/sync [get]
func (h *ConversationHandler) SyncMessages(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	messages, changed, err := h.conversations.SyncMessages(c.Context(), id, longPollWindow)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"changed":   changed,
		"mensagens": messages,
	})
}

// SendMessage godoc
// @Summary Envia uma mensagem na conversa
// @Tags Conversas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da conversa"
// @Param body body sendMessageRequest true "Mensagem"
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /conversations/{id}/mensagens [post]
func (h *ConversationHandler) SendMessage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	message, err := h.conversations.SendMessage(id, req.AuthorRole, req.Kind, req.Body, req.MediaURL)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// AssignAttendant godoc
// @Summary Define o atendente responsável pela conversa
// @Tags Conversas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da conversa"
// @Param body body assignAttendantRequest true "Atendente"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /conversations/{id}/atendente [put]
func (h *ConversationHandler) AssignAttendant(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req assignAttendantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := h.conversations.AssignAttendant(id, attendantID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
