package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/prediction"
	"github.com/terraincognita07/ictus/internal/services"
)

// GetDailyPrediction scores one calendar day (default today) of the caller's logs.
func (handler *Handler) GetDailyPrediction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	day := services.DateAtLocation(handler.now(), handler.location)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := services.ParseCalendarDate(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		}
		day = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, handler.location)
	}

	logs, err := handler.logService.DayLogs(user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, "Prediction", "compute", err)
	}
	features := prediction.BuildFeatures(logs)
	return c.JSON(fiber.Map{
		"message":       "Prediction computed.",
		"date":          day.Format(services.DateLayout),
		"prediction":    handler.scorer.Score(features),
		"feature_count": len(features),
	})
}
