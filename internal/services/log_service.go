package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
)

const weeklyReportDays = 7

type LogInput struct {
	LogTime *string `json:"log_time"`
	Note    *string `json:"note"`
}

type LogService struct {
	repos    *db.Repositories
	location *time.Location
	now      func() time.Time
}

func NewLogService(repos *db.Repositories, location *time.Location) *LogService {
	if location == nil {
		location = time.UTC
	}
	return &LogService{repos: repos, location: location, now: time.Now}
}

// Create opens a new log for userID. log_time defaults to now.
func (service *LogService) Create(userID uint, input LogInput) (models.UserLog, error) {
	entry := models.UserLog{UserID: userID, LogTime: normalizeLogTime(service.now())}
	if err := applyLogInput(&entry, input); err != nil {
		return models.UserLog{}, err
	}
	if err := validateEntity(entry); err != nil {
		return models.UserLog{}, err
	}

	err := service.repos.Transaction(func(tx *db.Repositories) error {
		if _, found, err := tx.Users.FindByID(userID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		} else if !found {
			return ErrUserNotFound
		}
		if err := tx.UserLogs.Create(&entry); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return models.UserLog{}, err
	}
	return entry, nil
}

func (service *LogService) Update(userID uint, logID uint, input LogInput) (models.UserLog, error) {
	var updated models.UserLog
	err := service.repos.Transaction(func(tx *db.Repositories) error {
		entry, err := authorizeLog(tx, logID, userID)
		if err != nil {
			return err
		}
		if err := applyLogInput(&entry, input); err != nil {
			return err
		}
		if err := validateEntity(entry); err != nil {
			return err
		}
		if err := tx.UserLogs.Save(&entry); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		updated = entry
		return nil
	})
	return updated, err
}

func (service *LogService) Delete(userID uint, logID uint) error {
	return service.repos.Transaction(func(tx *db.Repositories) error {
		if _, err := authorizeLog(tx, logID, userID); err != nil {
			return err
		}
		if err := tx.UserLogs.DeleteWithObservations(logID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}

// All returns every log of the user in storage order.
func (service *LogService) All(userID uint) ([]LogView, error) {
	logs, err := service.repos.UserLogs.ListDetailedByUser(userID, nil, nil, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return service.logViews(logs), nil
}

// ByDate returns the logs whose log_time falls on rawDate in the service time zone.
func (service *LogService) ByDate(userID uint, rawDate string) ([]LogView, error) {
	if strings.TrimSpace(rawDate) == "" {
		return nil, invalidInputError("No date provided", "date")
	}
	day, err := ParseCalendarDate(rawDate)
	if err != nil {
		return nil, invalidInputError("Invalid date format, expected YYYY-MM-DD", "date")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, service.location)
	end := start.AddDate(0, 0, 1)
	logs, err := service.repos.UserLogs.ListDetailedByUser(userID, &start, &end, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return service.logViews(logs), nil
}

// Weekly summarizes the logs of the trailing seven days, newest first.
func (service *LogService) Weekly(userID uint) ([]WeeklyLogView, error) {
	from := service.now().Add(-weeklyReportDays * 24 * time.Hour)
	logs, err := service.repos.UserLogs.ListDetailedByUser(userID, &from, nil, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	views := make([]WeeklyLogView, 0, len(logs))
	for _, log := range logs {
		views = append(views, buildWeeklyLogView(log, service.location))
	}
	return views, nil
}

// DayLogs loads the detailed logs of one calendar day for the prediction scorer.
func (service *LogService) DayLogs(userID uint, day time.Time) ([]models.UserLog, error) {
	start, end := DayRange(day, service.location)
	logs, err := service.repos.UserLogs.ListDetailedByUser(userID, &start, &end, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return logs, nil
}

func (service *LogService) Location() *time.Location {
	return service.location
}

func (service *LogService) logViews(logs []models.UserLog) []LogView {
	views := make([]LogView, 0, len(logs))
	for _, log := range logs {
		views = append(views, buildLogView(log, service.location))
	}
	return views
}

func applyLogInput(entry *models.UserLog, input LogInput) error {
	if input.LogTime != nil {
		raw := strings.TrimSpace(*input.LogTime)
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return invalidInputError("Invalid log_time, expected RFC 3339", "log_time")
		}
		entry.LogTime = normalizeLogTime(parsed)
	}
	if input.Note != nil {
		entry.Note = noteSanitizer.Sanitize(*input.Note)
	}
	return nil
}

func normalizeLogTime(value time.Time) time.Time {
	return value.UTC().Truncate(time.Second)
}
