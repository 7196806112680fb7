package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/services"
)

const invalidAccessTokenMessage = "Missing or invalid access token"

// AuthRequired resolves the bearer access token to a user and stores it in Locals.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	user, err := handler.authService.AuthenticateAccessToken(token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(c, fiber.StatusNotFound, userNotFoundMessage)
		case isTokenError(err):
			return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
		default:
			return handler.internalError(c, "authenticate request", err, "Unexpected error")
		}
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isTokenError(err error) bool {
	return errors.Is(err, services.ErrTokenInvalid) ||
		errors.Is(err, services.ErrTokenExpired) ||
		errors.Is(err, services.ErrTokenWrongType)
}
