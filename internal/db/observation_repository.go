package db

import (
	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ObservationRepository stores one kind of per-log observation.
type ObservationRepository[T models.Observation] struct {
	database *gorm.DB
}

func NewObservationRepository[T models.Observation](database *gorm.DB) *ObservationRepository[T] {
	return &ObservationRepository[T]{database: database}
}

func (repo *ObservationRepository[T]) FindByID(id uint) (T, bool, error) {
	var entry T
	result := repo.database.Where("id = ?", id).Limit(1).Find(&entry)
	if result.Error != nil {
		var zero T
		return zero, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *ObservationRepository[T]) Create(entry *T) error {
	return repo.database.Omit(clause.Associations).Create(entry).Error
}

func (repo *ObservationRepository[T]) Save(entry *T) error {
	return repo.database.Omit(clause.Associations).Save(entry).Error
}

func (repo *ObservationRepository[T]) Delete(id uint) error {
	var entry T
	return repo.database.Where("id = ?", id).Delete(&entry).Error
}
