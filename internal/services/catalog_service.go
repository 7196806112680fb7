package services

import (
	"fmt"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
)

// CatalogService exposes the seeded reference lists.
type CatalogService struct {
	repos *db.Repositories
}

func NewCatalogService(repos *db.Repositories) *CatalogService {
	return &CatalogService{repos: repos}
}

func (service *CatalogService) Prodromes() ([]models.Prodrome, error) {
	return wrapCatalog(service.repos.Catalog.ListProdromes())
}

func (service *CatalogService) Auras() ([]models.Aura, error) {
	return wrapCatalog(service.repos.Catalog.ListAuras())
}

func (service *CatalogService) Triggers() ([]models.Trigger, error) {
	return wrapCatalog(service.repos.Catalog.ListTriggers())
}

func (service *CatalogService) SeizureTypes() ([]models.SeizureType, error) {
	return wrapCatalog(service.repos.Catalog.ListSeizureTypes())
}

func wrapCatalog[T any](rows []T, err error) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rows, nil
}
