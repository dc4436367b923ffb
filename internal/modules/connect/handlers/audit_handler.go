package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/core/audit"
)

type AuditHandler struct {
	audits *audit.Service
}

func NewAuditHandler(audits *audit.Service) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// List godoc
// @Summary Lista os registros de auditoria do tenant
// @Tags Auditoria
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param action query string false "Filtra por ação (create, update, win, lose, reopen...)"
// @Param entity query string false "Filtra por entidade (lead, patient, call...)"
// @Param entity_id query string false "Filtra por ID da entidade"
// @Param attendant_id query string false "Filtra por atendente"
// @Param start_date query string false "Data inicial (RFC 3339)"
// @Param end_date query string false "Data final (RFC 3339)"
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} audit.LogsResponse
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	filter := audit.Filter{
		TenantID: &tenantID,
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 50),
	}

	if raw := c.Query("attendant_id"); raw != "" {
		attendantID, err := parseUUIDField(raw, "attendant_id")
		if err != nil {
			return respondServiceError(c, err)
		}
		filter.AttendantID = &attendantID
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "start_date inválida")
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "end_date inválida")
		}
		filter.EndDate = &end
	}

	logs, err := h.audits.GetLogs(filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(logs)
}

// EntityHistory godoc
// @Summary Lista o histórico de alterações de uma entidade
// @Tags Auditoria
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param entity path string true "Entidade (lead, patient, call...)"
// @Param entityId path string true "ID da entidade"
// @Success 200 {array} audit.AuditLog
// @Router /audit-logs/{entity}/{entityId} [get]
func (h *AuditHandler) EntityHistory(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	logs, err := h.audits.GetEntityHistory(tenantID, c.Params("entity"), c.Params("entityId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(logs)
}
