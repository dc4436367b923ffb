package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

type CallHandler struct {
	calls *services.CallService
}

func NewCallHandler(calls *services.CallService) *CallHandler {
	return &CallHandler{calls: calls}
}

type startCallRequest struct {
	ConversationID string `json:"conversation_id"`
	AttendantID    string `json:"attendant_id"`
}

type updateCallStatusRequest struct {
	Status string `json:"status"`
}

// Start godoc
// @Summary Inicia uma chamada (status discando)
// @Tags Chamadas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body startCallRequest true "Chamada"
// @Success 201 {object} models.Call
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /calls [post]
func (h *CallHandler) Start(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req startCallRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	conversationID, err := parseUUIDField(req.ConversationID, "conversation_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	call, err := h.calls.Start(tenantID, conversationID, attendantID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(call)
}

// Get godoc
// @Summary Consulta uma chamada com o tempo decorrido derivado
// @Tags Chamadas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da chamada"
// @Success 200 {object} services.CallView
// @Failure 404 {object} map[string]string
// @Router /calls/{id} [get]
func (h *CallHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	view, err := h.calls.Get(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}

// UpdateStatus godoc
// @Summary Avança o status da chamada
// @Description Transições: discando → chamando → em_andamento → encerrada; encerrada é terminal
// @Tags Chamadas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da chamada"
// @Param body body updateCallStatusRequest true "Novo status"
// @Success 200 {object} models.Call
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /calls/{id}/status [put]
func (h *CallHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req updateCallStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	call, err := h.calls.UpdateStatus(id, req.Status)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(call)
}
