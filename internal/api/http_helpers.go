package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/terraincognita07/ictus/internal/logging"
	"github.com/terraincognita07/ictus/internal/services"
)

const (
	userNotFoundMessage   = "User not found"
	invalidPayloadMessage = "Invalid payload"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func validationError(c *fiber.Ctx, err *services.ValidationError) error {
	body := fiber.Map{"message": err.Message}
	if len(err.Fields) > 0 {
		body["fields"] = err.Fields
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// decodeJSON reads the request body regardless of Content-Type. An empty body
// leaves target untouched.
func decodeJSON(c *fiber.Ctx, target any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, target)
}

func pathID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps a service error to its HTTP status. subject names the
// entity in not-found messages and action completes "Failed to <action> <subject>".
func (handler *Handler) respondServiceError(c *fiber.Ctx, subject string, action string, err error) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationError(c, validationErr)
	case errors.Is(err, services.ErrNotFoundOrDenied):
		return apiError(c, fiber.StatusNotFound, subject+" not found or access denied")
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, userNotFoundMessage)
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusBadRequest, "Email address already exists!")
	case errors.Is(err, services.ErrUnderage):
		return apiError(c, fiber.StatusBadRequest, "You must be at least 18 years old.")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "Invalid email or password. Login again.")
	case errors.Is(err, services.ErrIncorrectPassword):
		return apiError(c, fiber.StatusUnauthorized, "Old password is incorrect.")
	case errors.Is(err, services.ErrPasswordUnchanged):
		return apiError(c, fiber.StatusBadRequest, "New password should be different from the old password.")
	case errors.Is(err, services.ErrMedicationAlreadyStopped):
		return apiError(c, fiber.StatusBadRequest, "Medication already stopped")
	case isTokenError(err):
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	default:
		return handler.internalError(c, action+" "+subject, err, fmt.Sprintf("Failed to %s %s", action, subject))
	}
}

// internalError logs err with the request id and answers with a generic body.
func (handler *Handler) internalError(c *fiber.Ctx, operation string, err error, message string) error {
	handler.logger.Error("request failed",
		"operation", operation,
		"request_id", requestID(c),
		logging.Err(err),
	)
	body := fiber.Map{"message": message}
	if errors.Is(err, services.ErrPersistence) {
		body["error"] = "persistence failure"
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
