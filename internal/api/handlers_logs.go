package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/services"
)

const logSubject = "UserLog"

func (handler *Handler) GetLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	views, err := handler.logService.All(user.ID)
	if err != nil {
		return handler.respondServiceError(c, logSubject, "fetch", err)
	}
	return c.JSON(views)
}

func (handler *Handler) GetLogsByDate(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	views, err := handler.logService.ByDate(user.ID, c.Query("date"))
	if err != nil {
		return handler.respondServiceError(c, logSubject, "fetch", err)
	}
	return c.JSON(views)
}

func (handler *Handler) GetWeeklyLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	views, err := handler.logService.Weekly(user.ID)
	if err != nil {
		return handler.respondServiceError(c, logSubject, "fetch", err)
	}
	return c.JSON(views)
}

func (handler *Handler) CreateLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	var input services.LogInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	entry, err := handler.logService.Create(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, logSubject, "create", err)
	}
	handler.metrics.RecordJournalWrite(logSubject, "create")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": logSubject + " created successfully", "log_id": entry.ID})
}

func (handler *Handler) UpdateLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	id, ok := pathID(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, logSubject+" not found or access denied")
	}

	var input services.LogInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	if _, err := handler.logService.Update(user.ID, id, input); err != nil {
		return handler.respondServiceError(c, logSubject, "update", err)
	}
	handler.metrics.RecordJournalWrite(logSubject, "update")
	return c.JSON(fiber.Map{"message": logSubject + " updated successfully"})
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	id, ok := pathID(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, logSubject+" not found or access denied")
	}

	if err := handler.logService.Delete(user.ID, id); err != nil {
		return handler.respondServiceError(c, logSubject, "delete", err)
	}
	handler.metrics.RecordJournalWrite(logSubject, "delete")
	return c.JSON(fiber.Map{"message": logSubject + " deleted successfully"})
}
