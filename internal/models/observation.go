package models

// Observation is a row that hangs off a UserLog and inherits its owner.
type Observation interface {
	UserProdrome | UserAura | UserTrigger | SeizureEpisode
	OwningLogID() uint
	EntryID() uint
}

type UserProdrome struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	LogID      uint     `gorm:"not null;index" json:"log_id"`
	ProdromeID uint     `gorm:"not null" json:"prodrome_id"`
	Intensity  int      `gorm:"not null" json:"intensity" validate:"min=0,max=10"`
	Note       string   `gorm:"not null;default:''" json:"note" validate:"max=2000"`
	Prodrome   Prodrome `gorm:"foreignKey:ProdromeID" json:"-"`
}

func (entry UserProdrome) OwningLogID() uint { return entry.LogID }
func (entry UserProdrome) EntryID() uint { return entry.ID }

type UserAura struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	LogID     uint   `gorm:"not null;index" json:"log_id"`
	AuraID    uint   `gorm:"not null" json:"aura_id"`
	IsPresent bool   `gorm:"not null;default:false" json:"is_present"`
	Note      string `gorm:"not null;default:''" json:"note" validate:"max=2000"`
	Aura      Aura   `gorm:"foreignKey:AuraID" json:"-"`
}

func (entry UserAura) OwningLogID() uint { return entry.LogID }
func (entry UserAura) EntryID() uint { return entry.ID }

// UserTrigger carries either a numeric or a boolean reading, depending on the trigger.
type UserTrigger struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	LogID        uint     `gorm:"not null;index" json:"log_id"`
	TriggerID    uint     `gorm:"not null" json:"trigger_id"`
	ValueNumeric *float64 `json:"value_numeric" validate:"omitempty,min=0"`
	ValueBoolean *bool    `json:"value_boolean"`
	Note         string   `gorm:"not null;default:''" json:"note" validate:"max=2000"`
	Trigger      Trigger  `gorm:"foreignKey:TriggerID" json:"-"`
}

func (entry UserTrigger) OwningLogID() uint { return entry.LogID }
func (entry UserTrigger) EntryID() uint { return entry.ID }

type SeizureEpisode struct {
	ID                            uint        `gorm:"primaryKey" json:"id"`
	LogID                         uint        `gorm:"not null;index" json:"log_id"`
	SeizureTypeID                 uint        `gorm:"not null" json:"seizure_type_id"`
	DurationSec                   int         `gorm:"not null" json:"duration_sec" validate:"min=0"`
	Frequency                     int         `gorm:"not null;default:1" json:"frequency" validate:"min=1"`
	RequiresEmergencyIntervention bool        `gorm:"not null;default:false" json:"requires_emergency_intervention"`
	PostictalConfusionDuration    *float64    `json:"postictal_confusion_duration" validate:"omitempty,min=0"`
	PostictalConfusionIntensity   *int        `json:"postictal_confusion_intensity" validate:"omitempty,min=0,max=10"`
	PostictalHeadacheDuration     *float64    `json:"postictal_headache_duration" validate:"omitempty,min=0"`
	PostictalHeadacheIntensity    *int        `json:"postictal_headache_intensity" validate:"omitempty,min=0,max=10"`
	PostictalFatigueDuration      *float64    `json:"postictal_fatigue_duration" validate:"omitempty,min=0"`
	PostictalFatigueIntensity     *int        `json:"postictal_fatigue_intensity" validate:"omitempty,min=0,max=10"`
	Note                          string      `gorm:"not null;default:''" json:"note" validate:"max=2000"`
	SeizureType                   SeizureType `gorm:"foreignKey:SeizureTypeID" json:"-"`
}

func (entry SeizureEpisode) OwningLogID() uint { return entry.LogID }
func (entry SeizureEpisode) EntryID() uint { return entry.ID }
