package db

import (
	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	database        *gorm.DB
	Users           *UserRepository
	Medications     *MedicationRepository
	UserLogs        *UserLogRepository
	Catalog         *CatalogRepository
	Prodromes       *ObservationRepository[models.UserProdrome]
	Auras           *ObservationRepository[models.UserAura]
	Triggers        *ObservationRepository[models.UserTrigger]
	SeizureEpisodes *ObservationRepository[models.SeizureEpisode]
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:        database,
		Users:           NewUserRepository(database),
		Medications:     NewMedicationRepository(database),
		UserLogs:        NewUserLogRepository(database),
		Catalog:         NewCatalogRepository(database),
		Prodromes:       NewObservationRepository[models.UserProdrome](database),
		Auras:           NewObservationRepository[models.UserAura](database),
		Triggers:        NewObservationRepository[models.UserTrigger](database),
		SeizureEpisodes: NewObservationRepository[models.SeizureEpisode](database),
	}
}

// Transaction runs fn against repositories bound to a single transaction.
// A non-nil error from fn rolls everything back.
func (repos *Repositories) Transaction(fn func(tx *Repositories) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
