package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/metrics"
	"github.com/terraincognita07/ictus/internal/prediction"
	"github.com/terraincognita07/ictus/internal/services"
	"gorm.io/gorm"
)

// Scorer turns a feature vector into a seizure probability.
type Scorer interface {
	Score(features []float64) float64
}

type Options struct {
	SecretKey  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Location   *time.Location
	Logger     *slog.Logger
	Metrics    metrics.Recorder
	Gatherer   prometheus.Gatherer
	Scorer     Scorer
}

type Handler struct {
	db       *gorm.DB
	location *time.Location
	logger   *slog.Logger
	metrics  metrics.Recorder
	gatherer prometheus.Gatherer
	scorer   Scorer
	tokens   *services.TokenIssuer
	now      func() time.Time

	repositories      *db.Repositories
	authService       *services.AuthService
	userService       *services.UserService
	medicationService *services.MedicationService
	logService        *services.LogService
	catalogService    *services.CatalogService
	prodromes         *services.UserProdromeService
	auras             *services.UserAuraService
	triggers          *services.UserTriggerService
	seizureEpisodes   *services.SeizureEpisodeService
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	if options.AccessTTL <= 0 || options.RefreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Metrics == nil {
		options.Metrics = metrics.Nop{}
	}
	if options.Scorer == nil {
		options.Scorer = prediction.DefaultModel()
	}

	handler := &Handler{
		db:       database,
		location: options.Location,
		logger:   options.Logger,
		metrics:  options.Metrics,
		gatherer: options.Gatherer,
		scorer:   options.Scorer,
		tokens:   services.NewTokenIssuer(options.SecretKey, options.AccessTTL, options.RefreshTTL),
		now:      time.Now,
	}
	return handler.withDependencies(database), nil
}
