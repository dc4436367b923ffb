package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

type LeadHandler struct {
	leads *services.LeadService
}

func NewLeadHandler(leads *services.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

type openLeadRequest struct {
	PatientID   string  `json:"patient_id"`
	AttendantID string  `json:"attendant_id"`
	Service     string  `json:"servico"`
	QuotedValue float64 `json:"valor_proposto"`
}

type winLeadRequest struct {
	AttendantID   string  `json:"attendant_id"`
	FinalValue    float64 `json:"valor_final"`
	PaymentMethod string  `json:"forma_pagamento"`
}

type loseLeadRequest struct {
	AttendantID string `json:"attendant_id"`
	LossReason  string `json:"motivo_perda"`
}

type reopenLeadRequest struct {
	AttendantID string `json:"attendant_id"`
	Note        string `json:"nota"`
}

// Open godoc
// @Summary Abre uma negociação para o paciente
// @Description Um paciente só pode ter uma negociação ativa; a segunda tentativa retorna 409
// @Tags Funil
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body openLeadRequest true "Negociação"
// @Success 201 {object} models.Lead
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads [post]
func (h *LeadHandler) Open(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req openLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	patientID, err := parseUUIDField(req.PatientID, "patient_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	lead, err := h.leads.Open(tenantID, patientID, attendantID, req.Service, req.QuotedValue)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(lead)
}

// List godoc
// @Summary Lista as negociações do tenant
// @Tags Funil
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param stage query string false "Filtra por etapa (negociando, ganho, perdido)"
// @Param patient_id query string false "Filtra por paciente"
// @Param ativo query boolean false "Somente negociações ativas"
// @Success 200 {array} models.Lead
// @Router /leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	filter := repositories.LeadFilter{
		TenantID: tenantID,
		Stage:    c.Query("stage"),
	}

	if raw := c.Query("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "patient_id inválido")
		}
		filter.PatientID = &patientID
	}

	if raw := c.Query("ativo"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	if filter.Stage != "" {
		switch filter.Stage {
		case models.StageNegotiating, models.StageWon, models.StageLost:
		default:
			return respondError(c, fiber.StatusBadRequest, "etapa inválida")
		}
	}

	leads, err := h.leads.List(filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(leads)
}

// Get godoc
// @Summary Consulta uma negociação
// @Tags Funil
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da negociação"
// @Success 200 {object} models.Lead
// @Failure 404 {object} map[string]string
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	lead, err := h.leads.Get(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(lead)
}

// Win godoc
// @Summary Fecha a negociação como ganha
// @Tags Funil
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da negociação"
// @Param body body winLeadRequest true "Fechamento"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /leads/{id}/ganho [post]
func (h *LeadHandler) Win(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req winLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	lead, err := h.leads.Win(id, attendantID, req.FinalValue, req.PaymentMethod)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(lead)
}

// Lose godoc
// @Summary Fecha a negociação como perdida
// @Description O motivo da perda é obrigatório
// @Tags Funil
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da negociação"
// @Param body body loseLeadRequest true "Motivo"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /leads/{id}/perdido [post]
func (h *LeadHandler) Lose(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req loseLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	lead, err := h.leads.Lose(id, attendantID, req.LossReason)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(lead)
}

// Reopen godoc
// @Summary Reabre uma negociação encerrada
// @Description Volta a etapa para negociando e limpa os campos de fechamento
// @Tags Funil
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da negociação"
// @Param body body reopenLeadRequest true "Atendente e justificativa"
// @Success 200 {object} models.Lead
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /leads/{id}/reabrir [post]
func (h *LeadHandler) Reopen(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req reopenLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	lead, err := h.leads.Reopen(id, attendantID, req.Note)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(lead)
}
