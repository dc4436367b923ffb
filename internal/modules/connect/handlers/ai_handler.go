package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

type AIHandler struct {
	ai *services.AIService
}

func NewAIHandler(ai *services.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

type aiConversationRequest struct {
	ConversationID string `json:"conversation_id"`
}

type aiForecastRequest struct {
	LeadID string `json:"lead_id"`
}

type aiImageRequest struct {
	ConversationID string `json:"conversation_id"`
	Prompt         string `json:"prompt"`
}

// AnalyzeIntent godoc
// @Summary Analisa a intenção do paciente na conversa
// @Tags IA
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body aiConversationRequest true "Conversa"
// @Success 200 {object} llm.IntentResult
// @Failure 402 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /ai/intencao [post]
func (h *AIHandler) AnalyzeIntent(c *fiber.Ctx) error {
	var req aiConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	conversationID, err := parseUUIDField(req.ConversationID, "conversation_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	result, err := h.ai.AnalyzeIntent(c.Context(), conversationID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// SuggestReplies godoc
// @Summary Sugere três respostas para o atendente
// @Tags IA
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body aiConversationRequest true "Conversa"
// @Success 200 {object} map[string][]string
// @Failure 402 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /ai/sugestoes [post]
func (h *AIHandler) SuggestReplies(c *fiber.Ctx) error {
	var req aiConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	conversationID, err := parseUUIDField(req.ConversationID, "conversation_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	suggestions, err := h.ai.SuggestReplies(c.Context(), conversationID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"sugestoes": suggestions})
}

// ForecastLead godoc
// @Summary Estima a probabilidade de fechamento de uma negociação
// @Tags IA
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body aiForecastRequest true "Negociação"
// @Success 200 {object} llm.ForecastResult
// @Failure 402 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /ai/previsao [post]
func (h *AIHandler) ForecastLead(c *fiber.Ctx) error {
	var req aiForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	leadID, err := parseUUIDField(req.LeadID, "lead_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	result, err := h.ai.ForecastLead(c.Context(), leadID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// GenerateImage godoc
// @Summary Gera uma imagem e anexa à conversa
// @Description A imagem gerada é armazenada e registrada como mensagem do atendente na conversa
// @Tags IA
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body aiImageRequest true "Conversa e prompt"
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /ai/imagem [post]
func (h *AIHandler) GenerateImage(c *fiber.Ctx) error {
	var req aiImageRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Prompt == "" {
		return respondError(c, fiber.StatusBadRequest, "prompt é obrigatório")
	}

	conversationID, err := parseUUIDField(req.ConversationID, "conversation_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	message, err := h.ai.GenerateImage(c.Context(), conversationID, req.Prompt)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}
