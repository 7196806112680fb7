package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
)

type ProfileUpdateInput struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Birthdate       *string `json:"birthdate"`
	HasMenstruation *bool   `json:"has_menstruation"`
}

type PasswordChangeInput struct {
	OldPassword *string `json:"old_password"`
	NewPassword *string `json:"new_password"`
}

type UserService struct {
	repos *db.Repositories
	now   func() time.Time
}

func NewUserService(repos *db.Repositories) *UserService {
	return &UserService{repos: repos, now: time.Now}
}

// UpdateProfile applies the supplied fields. Email and password are changed elsewhere.
func (service *UserService) UpdateProfile(userID uint, input ProfileUpdateInput) (models.User, error) {
	var updated models.User
	err := service.repos.Transaction(func(tx *db.Repositories) error {
		user, found, err := tx.Users.FindByID(userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !found {
			return ErrUserNotFound
		}

		if input.FirstName != nil {
			user.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			user.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.HasMenstruation != nil {
			user.HasMenstruation = *input.HasMenstruation
		}
		if input.Birthdate != nil {
			birthdate, err := ParseCalendarDate(*input.Birthdate)
			if err != nil {
				return invalidInputError("Invalid date format, please use YYYY-MM-DD", "birthdate")
			}
			user.Birthdate = birthdate
		}

		if err := validateEntity(user); err != nil {
			return err
		}
		if !user.IsAdultOn(service.now()) {
			return ErrUnderage
		}
		if err := tx.Users.Save(&user); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		updated = user
		return nil
	})
	return updated, err
}

func (service *UserService) ChangePassword(userID uint, input PasswordChangeInput) error {
	if err := checkRequired(
		requiredField{"old_password", input.OldPassword != nil && *input.OldPassword != ""},
		requiredField{"new_password", presentText(input.NewPassword)},
	); err != nil {
		return err
	}

	user, found, err := service.repos.Users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found {
		return ErrUserNotFound
	}

	matches, err := security.PasswordMatches(user.PasswordHash, *input.OldPassword)
	if err != nil || !matches {
		return ErrIncorrectPassword
	}
	if *input.OldPassword == *input.NewPassword {
		return ErrPasswordUnchanged
	}

	hash, err := security.HashPassword(*input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.repos.Users.UpdatePassword(userID, hash); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (service *UserService) DeleteAccount(userID uint) error {
	if err := service.repos.Users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
