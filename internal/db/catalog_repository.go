package db

import (
	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
)

// CatalogRepository reads the seeded reference tables.
type CatalogRepository struct {
	database *gorm.DB
}

func NewCatalogRepository(database *gorm.DB) *CatalogRepository {
	return &CatalogRepository{database: database}
}

func (repo *CatalogRepository) ProdromeExists(id uint) (bool, error) {
	return catalogRowExists(repo.database, &models.Prodrome{}, id)
}

func (repo *CatalogRepository) AuraExists(id uint) (bool, error) {
	return catalogRowExists(repo.database, &models.Aura{}, id)
}

func (repo *CatalogRepository) TriggerExists(id uint) (bool, error) {
	return catalogRowExists(repo.database, &models.Trigger{}, id)
}

func (repo *CatalogRepository) SeizureTypeExists(id uint) (bool, error) {
	return catalogRowExists(repo.database, &models.SeizureType{}, id)
}

func (repo *CatalogRepository) ListProdromes() ([]models.Prodrome, error) {
	return listCatalog[models.Prodrome](repo.database)
}

func (repo *CatalogRepository) ListAuras() ([]models.Aura, error) {
	return listCatalog[models.Aura](repo.database)
}

func (repo *CatalogRepository) ListTriggers() ([]models.Trigger, error) {
	return listCatalog[models.Trigger](repo.database)
}

func (repo *CatalogRepository) ListSeizureTypes() ([]models.SeizureType, error) {
	return listCatalog[models.SeizureType](repo.database)
}

func catalogRowExists(database *gorm.DB, model any, id uint) (bool, error) {
	var matched int64
	if err := database.Model(model).Where("id = ?", id).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func listCatalog[T any](database *gorm.DB) ([]T, error) {
	rows := make([]T, 0)
	if err := database.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
