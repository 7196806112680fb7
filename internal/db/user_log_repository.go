package db

import (
	"time"

	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserLogRepository struct {
	database *gorm.DB
}

func NewUserLogRepository(database *gorm.DB) *UserLogRepository {
	return &UserLogRepository{database: database}
}

func (repo *UserLogRepository) FindByID(logID uint) (models.UserLog, bool, error) {
	var entry models.UserLog
	result := repo.database.Where("id = ?", logID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.UserLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *UserLogRepository) Create(entry *models.UserLog) error {
	return repo.database.Omit(clause.Associations).Create(entry).Error
}

func (repo *UserLogRepository) Save(entry *models.UserLog) error {
	return repo.database.Omit(clause.Associations).Save(entry).Error
}

// DeleteWithObservations removes the log and every observation recorded under it.
func (repo *UserLogRepository) DeleteWithObservations(logID uint) error {
	for _, observation := range []any{
		&models.UserProdrome{},
		&models.UserAura{},
		&models.UserTrigger{},
		&models.SeizureEpisode{},
	} {
		if err := repo.database.Where("log_id = ?", logID).Delete(observation).Error; err != nil {
			return err
		}
	}
	return repo.database.Delete(&models.UserLog{}, logID).Error
}

// ListDetailedByUser loads logs with their observations and catalog rows.
// fromStart and toEnd are optional half-open bounds on log_time.
func (repo *UserLogRepository) ListDetailedByUser(userID uint, fromStart *time.Time, toEnd *time.Time, newestFirst bool) ([]models.UserLog, error) {
	query := repo.database.
		Preload("Prodromes", orderByID).
		Preload("Prodromes.Prodrome").
		Preload("Auras", orderByID).
		Preload("Auras.Aura").
		Preload("Triggers", orderByID).
		Preload("Triggers.Trigger").
		Preload("SeizureEpisodes", orderByID).
		Preload("SeizureEpisodes.SeizureType").
		Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("log_time >= ?", fromStart.UTC())
	}
	if toEnd != nil {
		query = query.Where("log_time < ?", toEnd.UTC())
	}
	if newestFirst {
		query = query.Order("log_time DESC, id DESC")
	} else {
		query = query.Order("id ASC")
	}

	logs := make([]models.UserLog, 0)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func orderByID(database *gorm.DB) *gorm.DB {
	return database.Order("id ASC")
}
