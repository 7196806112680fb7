package models

import "time"

const MinimumAge = 18

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"not null" json:"first_name" validate:"required,max=64"`
	LastName        string    `gorm:"not null" json:"last_name" validate:"required,max=64"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,max=255"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	Birthdate       time.Time `gorm:"type:date;not null" json:"birthdate"`
	HasMenstruation bool      `gorm:"not null;default:false" json:"has_menstruation"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// AgeOn returns the number of full years between the birthdate and day.
func (user User) AgeOn(day time.Time) int {
	birth := user.Birthdate
	years := day.Year() - birth.Year()
	if day.Month() < birth.Month() || (day.Month() == birth.Month() && day.Day() < birth.Day()) {
		years--
	}
	return years
}

func (user User) IsAdultOn(day time.Time) bool {
	return user.AgeOn(day) >= MinimumAge
}
