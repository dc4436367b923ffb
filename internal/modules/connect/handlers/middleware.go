package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/grupovitalis/connect-api/internal/modules/connect/services"
)

// APIKeyAuth validates the Authorization bearer key and stores the tenant
// on the request context. Every /api route sits behind this.
func APIKeyAuth(keys *services.APIKeyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return respondError(c, fiber.StatusUnauthorized, "credencial ausente")
		}

		plaintext := strings.TrimPrefix(header, "Bearer ")
		if plaintext == header || plaintext == "" {
			return respondError(c, fiber.StatusUnauthorized, "credencial malformada")
		}

		key, err := keys.Validate(plaintext)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "credencial inválida")
		}

		c.Locals("tenantID", key.TenantID.String())
		return c.Next()
	}
}

// tenantFromCtx reads the tenant set by APIKeyAuth
func tenantFromCtx(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("tenantID").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "tenant ausente no contexto")
	}
	return uuid.Parse(raw)
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "identificador inválido")
	}
	return id, nil
}

// parseUUIDField parses a UUID carried in a request body
func parseUUIDField(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" inválido")
	}
	return id, nil
}
