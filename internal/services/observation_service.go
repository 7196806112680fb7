package services

import (
	"fmt"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
)

// ObservationKind describes one observation entity to the generic CRUD routine.
// C is the create payload and U the update payload; Apply is the full list of
// fields a caller may change.
type ObservationKind[T models.Observation, C any, U any] struct {
	Name          string
	CatalogName   string
	Required      func(input C) error
	Build         func(input C) T
	Apply         func(entry *T, input U)
	CatalogID     func(entry T) uint
	CatalogExists func(tx *db.Repositories, id uint) (bool, error)
	Store         func(tx *db.Repositories) *db.ObservationRepository[T]
}

type ObservationService[T models.Observation, C any, U any] struct {
	repos *db.Repositories
	kind  ObservationKind[T, C, U]
}

func NewObservationService[T models.Observation, C any, U any](repos *db.Repositories, kind ObservationKind[T, C, U]) *ObservationService[T, C, U] {
	return &ObservationService[T, C, U]{repos: repos, kind: kind}
}

func (service *ObservationService[T, C, U]) Kind() string {
	return service.kind.Name
}

func (service *ObservationService[T, C, U]) CatalogName() string {
	return service.kind.CatalogName
}

// Create validates the payload, resolves the log and catalog row, checks that
// the log belongs to userID and inserts the entry, all in one transaction.
func (service *ObservationService[T, C, U]) Create(userID uint, input C) (T, error) {
	var zero T
	if err := service.kind.Required(input); err != nil {
		return zero, err
	}
	entry := service.kind.Build(input)
	if err := validateEntity(entry); err != nil {
		return zero, err
	}

	err := service.repos.Transaction(func(tx *db.Repositories) error {
		log, logFound, err := tx.UserLogs.FindByID(entry.OwningLogID())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		catalogFound, err := service.kind.CatalogExists(tx, service.kind.CatalogID(entry))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !logFound || !catalogFound {
			return ErrReferenceNotFound
		}
		if log.UserID != userID {
			return ErrAccessDenied
		}

		if err := service.kind.Store(tx).Create(&entry); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}
	return entry, nil
}

func (service *ObservationService[T, C, U]) Update(userID uint, id uint, input U) (T, error) {
	var updated T
	err := service.repos.Transaction(func(tx *db.Repositories) error {
		entry, err := service.authorizeAndFetch(tx, id, userID)
		if err != nil {
			return err
		}
		service.kind.Apply(&entry, input)
		if err := validateEntity(entry); err != nil {
			return err
		}
		if err := service.kind.Store(tx).Save(&entry); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		updated = entry
		return nil
	})
	return updated, err
}

func (service *ObservationService[T, C, U]) Delete(userID uint, id uint) error {
	return service.repos.Transaction(func(tx *db.Repositories) error {
		if _, err := service.authorizeAndFetch(tx, id, userID); err != nil {
			return err
		}
		if err := service.kind.Store(tx).Delete(id); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}

// authorizeAndFetch loads the entry and checks that its log belongs to userID.
// A missing entry and a foreign one produce errors that both match ErrNotFoundOrDenied.
func (service *ObservationService[T, C, U]) authorizeAndFetch(tx *db.Repositories, id uint, userID uint) (T, error) {
	var zero T
	entry, found, err := service.kind.Store(tx).FindByID(id)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found {
		return zero, ErrReferenceNotFound
	}
	if _, err := authorizeLog(tx, entry.OwningLogID(), userID); err != nil {
		return zero, err
	}
	return entry, nil
}

func authorizeLog(tx *db.Repositories, logID uint, userID uint) (models.UserLog, error) {
	log, found, err := tx.UserLogs.FindByID(logID)
	if err != nil {
		return models.UserLog{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found {
		return models.UserLog{}, ErrReferenceNotFound
	}
	if log.UserID != userID {
		return models.UserLog{}, ErrAccessDenied
	}
	return log, nil
}
