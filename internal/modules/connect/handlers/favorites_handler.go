package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

type FavoritesHandler struct {
	favorites *services.FavoritesService
}

func NewFavoritesHandler(favorites *services.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

type favoriteRequest struct {
	AttendantID string `json:"attendant_id"`
	MessageID   string `json:"message_id"`
}

// Favorite godoc
// @Summary Favorita uma mensagem
// @Tags Favoritos
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body favoriteRequest true "Mensagem"
// @Success 201 {object} models.FavoriteMessage
// @Failure 404 {object} map[string]string
// @Router /favoritos [post]
func (h *FavoritesHandler) Favorite(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	messageID, err := parseUUIDField(req.MessageID, "message_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	favorite, err := h.favorites.Favorite(tenantID, attendantID, messageID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// Unfavorite godoc
// @Summary Remove uma mensagem dos favoritos
// @Tags Favoritos
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param attendantId path string true "ID do atendente"
// @Param messageId path string true "ID da mensagem"
// @Success 204
// @Router /favoritos/{attendantId}/{messageId} [delete]
func (h *FavoritesHandler) Unfavorite(c *fiber.Ctx) error {
	attendantID, err := parseIDParam(c, "attendantId")
	if err != nil {
		return respondServiceError(c, err)
	}
	messageID, err := parseIDParam(c, "messageId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := h.favorites.Unfavorite(attendantID, messageID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary Lista as mensagens favoritas do atendente
// @Tags Favoritos
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param attendantId path string true "ID do atendente"
// @Success 200 {array} models.FavoriteMessage
// @Router /favoritos/{attendantId} [get]
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	attendantID, err := parseIDParam(c, "attendantId")
	if err != nil {
		return respondServiceError(c, err)
	}

	favorites, err := h.favorites.List(attendantID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(favorites)
}
