package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

type APIKeyHandler struct {
	keys *services.APIKeyService
}

func NewAPIKeyHandler(keys *services.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keys: keys}
}

type apiKeyRequest struct {
	Name string `json:"name"`
}

// Generate godoc
// @Summary Gera uma nova chave de API
// @Description A chave em texto puro aparece apenas nesta resposta; guarde-a
// @Tags Chaves de API
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body apiKeyRequest true "Chave"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api-keys [post]
func (h *APIKeyHandler) Generate(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req apiKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name == "" {
		return respondError(c, fiber.StatusBadRequest, "nome da chave é obrigatório")
	}

	key, plaintext, err := h.keys.Generate(tenantID, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key":       key,
		"plaintext": plaintext,
	})
}

// List godoc
// @Summary Lista as chaves de API do tenant
// @Tags Chaves de API
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.APIKey
// @Router /api-keys [get]
func (h *APIKeyHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	keys, err := h.keys.List(tenantID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(keys)
}

// Revoke godoc
// @Summary Revoga uma chave de API
// @Tags Chaves de API
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da chave"
// @Success 204
// @Router /api-keys/{id} [delete]
func (h *APIKeyHandler) Revoke(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := h.keys.Revoke(id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
