package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/core/upload"
)

type UploadHandler struct {
	uploads *upload.Service
}

func NewUploadHandler(uploads *upload.Service) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload godoc
// @Summary Armazena um anexo (imagem, áudio ou arquivo)
// @Tags Anexos
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "Arquivo"
// @Success 201 {object} upload.Result
// @Failure 400 {object} map[string]string
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "arquivo ausente")
	}

	result, err := h.uploads.UploadMultipart(fileHeader, nil)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Delete godoc
// @Summary Remove um anexo armazenado
// @Tags Anexos
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param publicId path string true "Identificador do anexo"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /uploads/{publicId} [delete]
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	publicID := c.Params("*")
	if publicID == "" {
		return respondError(c, fiber.StatusBadRequest, "identificador ausente")
	}

	if err := h.uploads.Delete(publicID); err != nil {
		return respondError(c, fiber.StatusNotFound, "anexo não encontrado")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
