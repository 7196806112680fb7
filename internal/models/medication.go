package models

import (
	"time"

	"gorm.io/datatypes"
)

const MaxMedicationFrequency = 5

type Medication struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"-"`
	Name          string          `gorm:"not null" json:"name" validate:"required,max=255"`
	DosageMg      float64         `gorm:"not null" json:"dosage_mg" validate:"min=0"`
	Frequency     int             `gorm:"not null" json:"frequency" validate:"min=0,max=5"`
	FirstDose     *datatypes.Time `json:"first_dose"`
	StartDate     time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time      `gorm:"type:date" json:"end_date"`
	IsStopped     bool            `gorm:"not null;default:false" json:"is_stopped"`
	ReasonForStop string          `gorm:"not null;default:''" json:"reason_for_stop" validate:"max=1000"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

// HasValidPeriod reports whether an end date, when present, falls strictly after the start date.
func (medication Medication) HasValidPeriod() bool {
	return medication.EndDate == nil || medication.EndDate.After(medication.StartDate)
}
