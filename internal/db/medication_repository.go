package db

import (
	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MedicationRepository struct {
	database *gorm.DB
}

func NewMedicationRepository(database *gorm.DB) *MedicationRepository {
	return &MedicationRepository{database: database}
}

// ListByUserPage returns one page, newest start date first, and the total row count.
func (repo *MedicationRepository) ListByUserPage(userID uint, page int, perPage int) ([]models.Medication, int64, error) {
	var total int64
	if err := repo.database.Model(&models.Medication{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	medications := make([]models.Medication, 0, perPage)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&medications).Error; err != nil {
		return nil, 0, err
	}
	return medications, total, nil
}

func (repo *MedicationRepository) FindByIDForUser(medicationID uint, userID uint) (models.Medication, bool, error) {
	var medication models.Medication
	result := repo.database.
		Where("id = ? AND user_id = ?", medicationID, userID).
		Limit(1).
		Find(&medication)
	if result.Error != nil {
		return models.Medication{}, false, result.Error
	}
	return medication, result.RowsAffected > 0, nil
}

func (repo *MedicationRepository) Create(medication *models.Medication) error {
	return repo.database.Omit(clause.Associations).Create(medication).Error
}

func (repo *MedicationRepository) Save(medication *models.Medication) error {
	return repo.database.Omit(clause.Associations).Save(medication).Error
}

func (repo *MedicationRepository) Delete(medicationID uint) error {
	return repo.database.Delete(&models.Medication{}, medicationID).Error
}
