package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/terraincognita07/ictus/internal/metrics"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	if handler.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(handler.gatherer)))
	}
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh", handler.Refresh)

	user := api.Group("/user", handler.AuthRequired)
	user.Get("/profile", handler.GetProfile)
	user.Put("/profile", handler.UpdateProfile)
	user.Put("/change-password", handler.ChangePassword)
	user.Delete("/delete-account", handler.DeleteAccount)

	medications := api.Group("/medications", handler.AuthRequired)
	medications.Get("/", handler.ListMedications)
	medications.Post("/", handler.CreateMedication)
	medications.Put("/:id", handler.UpdateMedication)
	medications.Delete("/:id", handler.DeleteMedication)
	medications.Put("/:id/stop", handler.StopMedication)

	datalog := api.Group("/datalog", handler.AuthRequired)
	registerObservationRoutes(datalog, "/user-prodromes", newObservationRoutes(handler, handler.prodromes, "user_prodrome_id"))
	registerObservationRoutes(datalog, "/user-auras", newObservationRoutes(handler, handler.auras, "user_aura_id"))
	registerObservationRoutes(datalog, "/user-triggers", newObservationRoutes(handler, handler.triggers, "user_trigger_id"))
	registerObservationRoutes(datalog, "/seizure-episodes", newObservationRoutes(handler, handler.seizureEpisodes, "seizure_episode_id"))

	datalog.Get("/logs", handler.GetLogs)
	datalog.Post("/logs", handler.CreateLog)
	datalog.Get("/logs/date", handler.GetLogsByDate)
	datalog.Put("/logs/:id", handler.UpdateLog)
	datalog.Delete("/logs/:id", handler.DeleteLog)
	datalog.Get("/weekly-logs", handler.GetWeeklyLogs)

	datalog.Get("/prodromes", handler.ListProdromes)
	datalog.Get("/auras", handler.ListAuras)
	datalog.Get("/triggers", handler.ListTriggers)
	datalog.Get("/seizure-types", handler.ListSeizureTypes)

	predictions := api.Group("/predictions", handler.AuthRequired)
	predictions.Get("/daily", handler.GetDailyPrediction)
}

func registerObservationRoutes(router fiber.Router, prefix string, routes observationRoutes) {
	router.Post(prefix, routes.create)
	router.Put(prefix+"/:id", routes.update)
	router.Delete(prefix+"/:id", routes.delete)
}
