package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/services"
)

func newProfileView(user models.User) profileView {
	return profileView{
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Birthdate:       services.FormatCalendarDate(user.Birthdate),
		HasMenstruation: user.HasMenstruation,
	}
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	return c.JSON(fiber.Map{"data": newProfileView(*user), "message": "User profile retrieved successfully."})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	var input services.ProfileUpdateInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	updated, err := handler.userService.UpdateProfile(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, "User", "update", err)
	}
	return c.JSON(fiber.Map{"data": newProfileView(updated), "message": "Profile updated successfully."})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	var input services.PasswordChangeInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	if err := handler.userService.ChangePassword(user.ID, input); err != nil {
		return handler.respondServiceError(c, "User", "change password for", err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully."})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	if err := handler.userService.DeleteAccount(user.ID); err != nil {
		return handler.respondServiceError(c, "User", "delete", err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully."})
}
