package api

import (
	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories, handler.tokens)
	handler.userService = services.NewUserService(handler.repositories)
	handler.medicationService = services.NewMedicationService(handler.repositories, handler.location)
	handler.logService = services.NewLogService(handler.repositories, handler.location)
	handler.catalogService = services.NewCatalogService(handler.repositories)
	handler.prodromes = services.NewUserProdromeService(handler.repositories)
	handler.auras = services.NewUserAuraService(handler.repositories)
	handler.triggers = services.NewUserTriggerService(handler.repositories)
	handler.seizureEpisodes = services.NewSeizureEpisodeService(handler.repositories)
	return handler
}
