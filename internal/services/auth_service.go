package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
)

type RegistrationInput struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	Birthdate       *string `json:"birthdate"`
	HasMenstruation *bool   `json:"has_menstruation"`
}

type AuthService struct {
	repos  *db.Repositories
	tokens *TokenIssuer
	now    func() time.Time
}

func NewAuthService(repos *db.Repositories, tokens *TokenIssuer) *AuthService {
	return &AuthService{repos: repos, tokens: tokens, now: time.Now}
}

// Register creates the account. The age check runs after the insert inside the
// same transaction, so an underage registration leaves no row behind.
func (service *AuthService) Register(input RegistrationInput) (models.User, error) {
	if err := checkRequired(
		requiredField{"first_name", presentText(input.FirstName)},
		requiredField{"last_name", presentText(input.LastName)},
		requiredField{"email", presentText(input.Email)},
		requiredField{"password", presentText(input.Password)},
		requiredField{"birthdate", presentText(input.Birthdate)},
	); err != nil {
		return models.User{}, err
	}

	email := NormalizeAuthEmail(*input.Email)
	if email == "" {
		return models.User{}, invalidInputError("Invalid email format.", "email")
	}
	birthdate, err := ParseCalendarDate(*input.Birthdate)
	if err != nil {
		return models.User{}, invalidInputError("Invalid date format, please use YYYY-MM-DD", "birthdate")
	}
	passwordHash, err := security.HashPassword(*input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FirstName:    strings.TrimSpace(*input.FirstName),
		LastName:     strings.TrimSpace(*input.LastName),
		Email:        email,
		PasswordHash: passwordHash,
		Birthdate:    birthdate,
	}
	if input.HasMenstruation != nil {
		user.HasMenstruation = *input.HasMenstruation
	}
	if err := validateEntity(user); err != nil {
		return models.User{}, err
	}

	err = service.repos.Transaction(func(tx *db.Repositories) error {
		exists, err := tx.Users.ExistsByNormalizedEmail(email)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if exists {
			return ErrEmailTaken
		}
		if err := tx.Users.Create(&user); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !user.IsAdultOn(service.now()) {
			return ErrUnderage
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) Login(emailRaw string, password string) (TokenPair, error) {
	if err := checkRequired(
		requiredField{"email", strings.TrimSpace(emailRaw) != ""},
		requiredField{"password", password != ""},
	); err != nil {
		return TokenPair{}, err
	}

	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return TokenPair{}, ErrInvalidCredentials
	}
	user, found, err := service.repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found {
		return TokenPair{}, ErrInvalidCredentials
	}
	matches, err := security.PasswordMatches(user.PasswordHash, password)
	if err != nil || !matches {
		return TokenPair{}, ErrInvalidCredentials
	}
	return service.tokens.IssuePair(user.Email)
}

// Refresh trades a valid refresh token for a new access token.
func (service *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := service.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	if _, err := service.Authenticate(claims.Subject); err != nil {
		return "", err
	}
	return service.tokens.IssueAccess(claims.Subject)
}

// AuthenticateAccessToken resolves the caller behind an access token.
func (service *AuthService) AuthenticateAccessToken(raw string) (models.User, error) {
	claims, err := service.tokens.Parse(raw, TokenTypeAccess)
	if err != nil {
		return models.User{}, err
	}
	return service.Authenticate(claims.Subject)
}

// Authenticate loads the user a token subject refers to.
func (service *AuthService) Authenticate(email string) (models.User, error) {
	user, found, err := service.repos.Users.FindByNormalizedEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
