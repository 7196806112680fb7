package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ObserveRequests logs every request and records it in the metrics recorder.
// Client errors log at warn and server errors at error.
func (handler *Handler) ObserveRequests(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
	}
	duration := time.Since(started)
	route := c.Route().Path

	handler.metrics.RecordRequest(c.Method(), route, status, duration)

	level := slog.LevelInfo
	switch {
	case status >= fiber.StatusInternalServerError:
		level = slog.LevelError
	case status >= fiber.StatusBadRequest:
		level = slog.LevelWarn
	}
	handler.logger.LogAttrs(c.UserContext(), level, "http request",
		slog.String("method", c.Method()),
		slog.String("route", route),
		slog.Int("status", status),
		slog.Duration("duration", duration),
		slog.String("request_id", requestID(c)),
	)
	return err
}
