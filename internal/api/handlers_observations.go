package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/services"
)

// newObservationRoutes builds the create, update and delete handlers for one
// observation kind. idKey is the response field carrying the new row id.
func newObservationRoutes[T models.Observation, C any, U any](handler *Handler, service *services.ObservationService[T, C, U], idKey string) observationRoutes {
	kind := service.Kind()
	notFound := kind + " not found or access denied"

	return observationRoutes{
		create: func(c *fiber.Ctx) error {
			user, ok := currentUser(c)
			if !ok {
				return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
			}
			var input C
			if err := decodeJSON(c, &input); err != nil {
				return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
			}
			entry, err := service.Create(user.ID, input)
			if err != nil {
				return handler.respondServiceError(c, kind, "create", err)
			}
			handler.metrics.RecordJournalWrite(kind, "create")
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"message": kind + " created successfully",
				idKey:     entry.EntryID(),
			})
		},
		update: func(c *fiber.Ctx) error {
			user, ok := currentUser(c)
			if !ok {
				return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
			}
			id, ok := pathID(c)
			if !ok {
				return apiError(c, fiber.StatusNotFound, notFound)
			}
			var input U
			if err := decodeJSON(c, &input); err != nil {
				return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
			}
			if _, err := service.Update(user.ID, id, input); err != nil {
				return handler.respondServiceError(c, kind, "update", err)
			}
			handler.metrics.RecordJournalWrite(kind, "update")
			return c.JSON(fiber.Map{"message": kind + " updated successfully"})
		},
		delete: func(c *fiber.Ctx) error {
			user, ok := currentUser(c)
			if !ok {
				return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
			}
			id, ok := pathID(c)
			if !ok {
				return apiError(c, fiber.StatusNotFound, notFound)
			}
			if err := service.Delete(user.ID, id); err != nil {
				return handler.respondServiceError(c, kind, "delete", err)
			}
			handler.metrics.RecordJournalWrite(kind, "delete")
			return c.JSON(fiber.Map{"message": kind + " deleted successfully"})
		},
	}
}
