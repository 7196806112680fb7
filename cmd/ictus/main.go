package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/terraincognita07/ictus/internal/api"
	"github.com/terraincognita07/ictus/internal/cli"
	"github.com/terraincognita07/ictus/internal/config"
	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/logging"
	"github.com/terraincognita07/ictus/internal/metrics"
	"github.com/terraincognita07/ictus/internal/prediction"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", logging.Err(err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)

	handled, err := cli.Run(os.Args[1:], cfg.DBPath, logger, os.Stdin, os.Stdout)
	if handled {
		if err != nil {
			logger.Error("command failed", logging.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg, logger); err != nil {
		logger.Error("server exited", logging.Err(err))
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return err
	}

	model, err := prediction.LoadModel(cfg.ModelPath)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := api.NewHandler(database, api.Options{
		SecretKey:  cfg.SecretKey,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		Location:   cfg.Location(),
		Logger:     logger,
		Metrics:    metrics.NewCollector(registry),
		Gatherer:   registry,
		Scorer:     model,
	})
	if err != nil {
		return err
	}

	app := newApp(cfg, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", logging.Err(err))
		}
	}()

	logger.Info("ictus listening",
		slog.String("port", cfg.Port),
		slog.String("db", cfg.DBPath),
		slog.String("tz", cfg.Location().String()),
		slog.String("model", model.Name),
	)
	return app.Listen(":" + cfg.Port)
}

func newApp(cfg *config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ictus",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(compress.New())
	app.Use(handler.ObserveRequests)

	api.RegisterRoutes(app, handler)
	return app
}

// jsonErrorHandler keeps unmatched routes and recovered panics in the API's {"message"} shape.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
