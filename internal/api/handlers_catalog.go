package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListProdromes(c *fiber.Ctx) error {
	rows, err := handler.catalogService.Prodromes()
	if err != nil {
		return handler.respondServiceError(c, "Prodrome", "list", err)
	}
	return c.JSON(rows)
}

func (handler *Handler) ListAuras(c *fiber.Ctx) error {
	rows, err := handler.catalogService.Auras()
	if err != nil {
		return handler.respondServiceError(c, "Aura", "list", err)
	}
	return c.JSON(rows)
}

func (handler *Handler) ListTriggers(c *fiber.Ctx) error {
	rows, err := handler.catalogService.Triggers()
	if err != nil {
		return handler.respondServiceError(c, "Trigger", "list", err)
	}
	return c.JSON(rows)
}

func (handler *Handler) ListSeizureTypes(c *fiber.Ctx) error {
	rows, err := handler.catalogService.SeizureTypes()
	if err != nil {
		return handler.respondServiceError(c, "SeizureType", "list", err)
	}
	return c.JSON(rows)
}
