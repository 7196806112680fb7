package models

import "time"

// UserLog groups everything a user recorded at one point in time.
type UserLog struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UserID          uint             `gorm:"not null;index" json:"-"`
	LogTime         time.Time        `gorm:"not null" json:"log_time"`
	Note            string           `gorm:"not null;default:''" json:"note" validate:"max=2000"`
	CreatedAt       time.Time        `json:"-"`
	Prodromes       []UserProdrome   `gorm:"foreignKey:LogID" json:"-"`
	Auras           []UserAura       `gorm:"foreignKey:LogID" json:"-"`
	Triggers        []UserTrigger    `gorm:"foreignKey:LogID" json:"-"`
	SeizureEpisodes []SeizureEpisode `gorm:"foreignKey:LogID" json:"-"`
}

// HasSeizures requires SeizureEpisodes to be loaded.
func (log UserLog) HasSeizures() bool {
	return len(log.SeizureEpisodes) > 0
}
