package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input services.RegistrationInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}

	if _, err := handler.authService.Register(input); err != nil {
		handler.metrics.RecordAuthEvent("register", "failure")
		return handler.respondServiceError(c, "User", "register", err)
	}
	handler.metrics.RecordAuthEvent("register", "success")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Successfully registered! Please login."})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}

	pair, err := handler.authService.Login(input.Email, input.Password)
	if err != nil {
		handler.metrics.RecordAuthEvent("login", "failure")
		return handler.respondServiceError(c, "User", "log in", err)
	}
	handler.metrics.RecordAuthEvent("login", "success")
	return c.JSON(fiber.Map{
		"message":       "Successful login!",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Refresh expects the refresh token in the Authorization header.
func (handler *Handler) Refresh(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		handler.metrics.RecordAuthEvent("refresh", "failure")
		return apiError(c, fiber.StatusUnauthorized, "Missing or invalid refresh token")
	}

	access, err := handler.authService.Refresh(token)
	if err != nil {
		handler.metrics.RecordAuthEvent("refresh", "failure")
		if isTokenError(err) {
			return apiError(c, fiber.StatusUnauthorized, "Missing or invalid refresh token")
		}
		return handler.respondServiceError(c, "User", "refresh token for", err)
	}
	handler.metrics.RecordAuthEvent("refresh", "success")
	return c.JSON(fiber.Map{"message": "Access token refreshed.", "access_token": access})
}
