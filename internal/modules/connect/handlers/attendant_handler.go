package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

type AttendantHandler struct {
	attendants repositories.AttendantRepo
}

func NewAttendantHandler(attendants repositories.AttendantRepo) *AttendantHandler {
	return &AttendantHandler{attendants: attendants}
}

type attendantRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	SectorID        string `json:"sector_id"`
	UnitID          string `json:"unit_id"`
	AccessProfileID string `json:"access_profile_id"`
	AvatarURL       string `json:"avatar_url"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleAttendant, models.RoleCoordination, models.RoleManagement:
		return true
	}
	return false
}

func optionalUUID(raw, name string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseUUIDField(raw, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Create godoc
// @Summary Cadastra um atendente
// @Tags Atendentes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body attendantRequest true "Atendente"
// @Success 201 {object} models.Attendant
// @Failure 400 {object} map[string]string
// @Router /attendants [post]
func (h *AttendantHandler) Create(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req attendantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name == "" || req.Email == "" {
		return respondError(c, fiber.StatusBadRequest, "nome e e-mail são obrigatórios")
	}

	role := req.Role
	if role == "" {
		role = models.RoleAttendant
	}
	if !validRole(role) {
		return respondError(c, fiber.StatusBadRequest, "papel inválido")
	}

	sectorID, err := optionalUUID(req.SectorID, "sector_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	unitID, err := optionalUUID(req.UnitID, "unit_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	profileID, err := optionalUUID(req.AccessProfileID, "access_profile_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	attendant := &models.Attendant{
		TenantID:        tenantID,
		Name:            req.Name,
		Email:           req.Email,
		Role:            role,
		SectorID:        sectorID,
		UnitID:          unitID,
		AccessProfileID: profileID,
		AvatarURL:       req.AvatarURL,
		Active:          true,
	}
	if err := h.attendants.Create(attendant); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(attendant)
}

// Get godoc
// @Summary Consulta um atendente
// @Tags Atendentes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendente"
// @Success 200 {object} models.Attendant
// @Failure 404 {object} map[string]string
// @Router /attendants/{id} [get]
func (h *AttendantHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	attendant, err := h.attendants.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(attendant)
}

// List godoc
// @Summary Lista os atendentes ativos do tenant
// @Tags Atendentes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Attendant
// @Router /attendants [get]
func (h *AttendantHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	attendants, err := h.attendants.ListActive(tenantID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(attendants)
}

// Update godoc
// @Summary Atualiza um atendente
// @Tags Atendentes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendente"
// @Param body body attendantRequest true "Atendente"
// @Success 200 {object} models.Attendant
// @Failure 404 {object} map[string]string
// @Router /attendants/{id} [put]
func (h *AttendantHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	attendant, err := h.attendants.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req attendantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	if req.Name != "" {
		attendant.Name = req.Name
	}
	if req.Email != "" {
		attendant.Email = req.Email
	}
	if req.Role != "" {
		if !validRole(req.Role) {
			return respondError(c, fiber.StatusBadRequest, "papel inválido")
		}
		attendant.Role = req.Role
	}
	if req.AvatarURL != "" {
		attendant.AvatarURL = req.AvatarURL
	}
	if sectorID, err := optionalUUID(req.SectorID, "sector_id"); err != nil {
		return respondServiceError(c, err)
	} else if sectorID != nil {
		attendant.SectorID = sectorID
	}
	if unitID, err := optionalUUID(req.UnitID, "unit_id"); err != nil {
		return respondServiceError(c, err)
	} else if unitID != nil {
		attendant.UnitID = unitID
	}
	if profileID, err := optionalUUID(req.AccessProfileID, "access_profile_id"); err != nil {
		return respondServiceError(c, err)
	} else if profileID != nil {
		attendant.AccessProfileID = profileID
	}

	if err := h.attendants.Save(attendant); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(attendant)
}

// Deactivate godoc
// @Summary Desativa um atendente
// @Description Desativação lógica; conversas mantêm a referência
// @Tags Atendentes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do atendente"
// @Success 204
// @Router /attendants/{id} [delete]
func (h *AttendantHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := h.attendants.Deactivate(id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
