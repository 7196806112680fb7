package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
	"gorm.io/datatypes"
)

const (
	DefaultMedicationsPerPage = 10
	MaxMedicationsPerPage     = 100
	firstDoseLayout           = "15:04"
)

type MedicationInput struct {
	Name          *string  `json:"name"`
	DosageMg      *float64 `json:"dosage_mg"`
	Frequency     *int     `json:"frequency"`
	FirstDose     *string  `json:"first_dose"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	ReasonForStop *string  `json:"reason_for_stop"`
}

type StopMedicationInput struct {
	EndDate       *string `json:"end_date"`
	ReasonForStop *string `json:"reason_for_stop"`
}

type MedicationPage struct {
	Items   []models.Medication
	Page    int
	PerPage int
	Total   int64
}

func (page MedicationPage) Pages() int {
	if page.PerPage <= 0 {
		return 0
	}
	return int((page.Total + int64(page.PerPage) - 1) / int64(page.PerPage))
}

type MedicationService struct {
	repos     *db.Repositories
	sanitizer *security.TextSanitizer
	location  *time.Location
	now       func() time.Time
}

func NewMedicationService(repos *db.Repositories, location *time.Location) *MedicationService {
	return &MedicationService{
		repos:     repos,
		sanitizer: security.NewTextSanitizer(),
		location:  location,
		now:       time.Now,
	}
}

func (service *MedicationService) List(userID uint, page int, perPage int) (MedicationPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultMedicationsPerPage
	}
	if perPage > MaxMedicationsPerPage {
		perPage = MaxMedicationsPerPage
	}

	items, total, err := service.repos.Medications.ListByUserPage(userID, page, perPage)
	if err != nil {
		return MedicationPage{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return MedicationPage{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

func (service *MedicationService) Create(userID uint, input MedicationInput) (models.Medication, error) {
	if err := checkRequired(
		requiredField{"name", presentText(input.Name)},
		requiredField{"dosage_mg", present(input.DosageMg)},
		requiredField{"frequency", present(input.Frequency)},
	); err != nil {
		return models.Medication{}, err
	}

	medication := models.Medication{
		UserID:    userID,
		StartDate: CalendarDate(service.now(), service.location),
	}
	if err := service.apply(&medication, input); err != nil {
		return models.Medication{}, err
	}
	if err := service.check(medication); err != nil {
		return models.Medication{}, err
	}
	if err := service.repos.Medications.Create(&medication); err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return medication, nil
}

// Update changes only the fields present in input. is_stopped is not editable here.
func (service *MedicationService) Update(userID uint, medicationID uint, input MedicationInput) (models.Medication, error) {
	var updated models.Medication
	err := service.repos.Transaction(func(tx *db.Repositories) error {
		medication, err := findOwnedMedication(tx, medicationID, userID)
		if err != nil {
			return err
		}
		if err := service.apply(&medication, input); err != nil {
			return err
		}
		if err := service.check(medication); err != nil {
			return err
		}
		if err := tx.Medications.Save(&medication); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		updated = medication
		return nil
	})
	return updated, err
}

func (service *MedicationService) Delete(userID uint, medicationID uint) error {
	return service.repos.Transaction(func(tx *db.Repositories) error {
		if _, err := findOwnedMedication(tx, medicationID, userID); err != nil {
			return err
		}
		if err := tx.Medications.Delete(medicationID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}

// Stop moves an active medication to the stopped state. It is the only transition.
func (service *MedicationService) Stop(userID uint, medicationID uint, input StopMedicationInput) (models.Medication, error) {
	var stopped models.Medication
	err := service.repos.Transaction(func(tx *db.Repositories) error {
		medication, err := findOwnedMedication(tx, medicationID, userID)
		if err != nil {
			return err
		}
		if medication.IsStopped {
			return ErrMedicationAlreadyStopped
		}

		if input.EndDate != nil && strings.TrimSpace(*input.EndDate) != "" {
			endDate, err := ParseCalendarDate(*input.EndDate)
			if err != nil {
				return invalidInputError("Invalid date format, please use YYYY-MM-DD", "end_date")
			}
			medication.EndDate = &endDate
		}
		if input.ReasonForStop != nil {
			medication.ReasonForStop = service.sanitizer.Sanitize(*input.ReasonForStop)
		}
		medication.IsStopped = true

		if err := service.check(medication); err != nil {
			return err
		}
		if err := tx.Medications.Save(&medication); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		stopped = medication
		return nil
	})
	return stopped, err
}

func (service *MedicationService) apply(medication *models.Medication, input MedicationInput) error {
	if input.Name != nil {
		medication.Name = strings.TrimSpace(*input.Name)
	}
	if input.DosageMg != nil {
		medication.DosageMg = *input.DosageMg
	}
	if input.Frequency != nil {
		medication.Frequency = *input.Frequency
	}
	if input.FirstDose != nil {
		if strings.TrimSpace(*input.FirstDose) == "" {
			medication.FirstDose = nil
		} else {
			firstDose, err := ParseFirstDose(*input.FirstDose)
			if err != nil {
				return invalidInputError("Invalid time format, please use HH:MM", "first_dose")
			}
			medication.FirstDose = &firstDose
		}
	}
	if input.StartDate != nil {
		startDate, err := ParseCalendarDate(*input.StartDate)
		if err != nil {
			return invalidInputError("Invalid date format, please use YYYY-MM-DD", "start_date")
		}
		medication.StartDate = startDate
	}
	if input.EndDate != nil {
		if strings.TrimSpace(*input.EndDate) == "" {
			medication.EndDate = nil
		} else {
			endDate, err := ParseCalendarDate(*input.EndDate)
			if err != nil {
				return invalidInputError("Invalid date format, please use YYYY-MM-DD", "end_date")
			}
			medication.EndDate = &endDate
		}
	}
	if input.ReasonForStop != nil {
		medication.ReasonForStop = service.sanitizer.Sanitize(*input.ReasonForStop)
	}
	return nil
}

func (service *MedicationService) check(medication models.Medication) error {
	if err := validateEntity(medication); err != nil {
		return err
	}
	if !medication.HasValidPeriod() {
		return invalidInputError("End date must be after start date", "end_date")
	}
	return nil
}

func findOwnedMedication(tx *db.Repositories, medicationID uint, userID uint) (models.Medication, error) {
	medication, found, err := tx.Medications.FindByIDForUser(medicationID, userID)
	if err != nil {
		return models.Medication{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found {
		return models.Medication{}, ErrReferenceNotFound
	}
	return medication, nil
}

// ParseFirstDose accepts HH:MM in 24-hour form.
func ParseFirstDose(raw string) (datatypes.Time, error) {
	parsed, err := time.Parse(firstDoseLayout, strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return datatypes.NewTime(parsed.Hour(), parsed.Minute(), 0, 0), nil
}

// FormatFirstDose renders HH:MM, or "" when no time is set.
func FormatFirstDose(value *datatypes.Time) string {
	if value == nil {
		return ""
	}
	text := value.String()
	if len(text) < len(firstDoseLayout) {
		return text
	}
	return text[:len(firstDoseLayout)]
}
