package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

// AdminHandler serves the small organizational CRUD screens: sectors,
// units and access profiles. The three resources share the same shape.
type AdminHandler struct {
	sectors  repositories.SectorRepo
	units    repositories.UnitRepo
	profiles repositories.AccessProfileRepo
}

func NewAdminHandler(sectors repositories.SectorRepo, units repositories.UnitRepo, profiles repositories.AccessProfileRepo) *AdminHandler {
	return &AdminHandler{sectors: sectors, units: units, profiles: profiles}
}

type sectorRequest struct {
	Name string `json:"name"`
}

type unitRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type accessProfileRequest struct {
	Name        string         `json:"name"`
	Permissions map[string]any `json:"permissions"`
}

// --- Sectors ---

// CreateSector godoc
// @Summary Cadastra um setor
// @Tags Administração
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body sectorRequest true "Setor"
// @Success 201 {object} models.Sector
// @Router /sectors [post]
func (h *AdminHandler) CreateSector(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req sectorRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "nome é obrigatório")
	}

	sector := &models.Sector{TenantID: tenantID, Name: req.Name, Active: true}
	if err := h.sectors.Create(sector); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sector)
}

// ListSectors godoc
// @Summary Lista os setores
// @Tags Administração
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Sector
// @Router /sectors [get]
func (h *AdminHandler) ListSectors(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	sectors, err := h.sectors.List(tenantID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sectors)
}

// UpdateSector godoc
// @Summary Atualiza um setor
// @Tags Administração
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do setor"
// @Param body body sectorRequest true "Setor"
// @Success 200 {object} models.Sector
// @Failure 404 {object} map[string]string
// @Router /sectors/{id} [put]
func (h *AdminHandler) UpdateSector(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	sector, err := h.sectors.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req sectorRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name != "" {
		sector.Name = req.Name
	}

	if err := h.sectors.Save(sector); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(sector)
}

// DeleteSector godoc
// @Summary Remove um setor
// @Tags Administração
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do setor"
// @Success 204
// @Router /sectors/{id} [delete]
func (h *AdminHandler) DeleteSector(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.sectors.Delete(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Units ---

// CreateUnit godoc
// @Summary Cadastra uma unidade
// @Tags Administração
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body unitRequest true "Unidade"
// @Success 201 {object} models.Unit
// @Router /units [post]
func (h *AdminHandler) CreateUnit(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req unitRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "nome é obrigatório")
	}

	unit := &models.Unit{TenantID: tenantID, Name: req.Name, Address: req.Address, Active: true}
	if err := h.units.Create(unit); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(unit)
}

// ListUnits godoc
// @Summary Lista as unidades
// @Tags Administração
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Unit
// @Router /units [get]
func (h *AdminHandler) ListUnits(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	units, err := h.units.List(tenantID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(units)
}

// UpdateUnit godoc
// @Summary Atualiza uma unidade
// @Tags Administração
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da unidade"
// @Param body body unitRequest true "Unidade"
// @Success 200 {object} models.Unit
// @Failure 404 {object} map[string]string
// @Router /units/{id} [put]
func (h *AdminHandler) UpdateUnit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	unit, err := h.units.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req unitRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name != "" {
		unit.Name = req.Name
	}
	if req.Address != "" {
		unit.Address = req.Address
	}

	if err := h.units.Save(unit); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(unit)
}

// DeleteUnit godoc
// @Summary Remove uma unidade
// @Tags Administração
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da unidade"
// @Success 204
// @Router /units/{id} [delete]
func (h *AdminHandler) DeleteUnit(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.units.Delete(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Access profiles ---

// CreateAccessProfile godoc
// @Summary Cadastra um perfil de acesso
// @Tags Administração
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body accessProfileRequest true "Perfil"
// @Success 201 {object} models.AccessProfile
// @Router /access-profiles [post]
func (h *AdminHandler) CreateAccessProfile(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req accessProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "nome é obrigatório")
	}

	permissions, err := permissionsJSON(req.Permissions)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "permissões inválidas")
	}

	profile := &models.AccessProfile{TenantID: tenantID, Name: req.Name, Permissions: permissions}
	if err := h.profiles.Create(profile); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// ListAccessProfiles godoc
// @Summary Lista os perfis de acesso
// @Tags Administração
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.AccessProfile
// @Router /access-profiles [get]
func (h *AdminHandler) ListAccessProfiles(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	profiles, err := h.profiles.List(tenantID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}

// UpdateAccessProfile godoc
// @Summary Atualiza um perfil de acesso
// @Tags Administração
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do perfil"
// @Param body body accessProfileRequest true "Perfil"
// @Success 200 {object} models.AccessProfile
// @Failure 404 {object} map[string]string
// @Router /access-profiles/{id} [put]
func (h *AdminHandler) UpdateAccessProfile(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	profile, err := h.profiles.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req accessProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Permissions != nil {
		permissions, err := permissionsJSON(req.Permissions)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "permissões inválidas")
		}
		profile.Permissions = permissions
	}

	if err := h.profiles.Save(profile); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccessProfile godoc
// @Summary Remove um perfil de acesso
// @Tags Administração
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do perfil"
// @Success 204
// @Router /access-profiles/{id} [delete]
func (h *AdminHandler) DeleteAccessProfile(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.profiles.Delete(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func permissionsJSON(permissions map[string]any) (datatypes.JSON, error) {
	if permissions == nil {
		return datatypes.JSON([]byte("{}")), nil
	}
	raw, err := json.Marshal(permissions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
