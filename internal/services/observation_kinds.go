package services

import (
	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
)

var noteSanitizer = security.NewTextSanitizer()

type UserProdromeUpdate struct {
	Intensity *int    `json:"intensity"`
	Note      *string `json:"note"`
}

type UserProdromeInput struct {
	LogID      *uint `json:"log_id"`
	ProdromeID *uint `json:"prodrome_id"`
	UserProdromeUpdate
}

type UserAuraUpdate struct {
	IsPresent *bool   `json:"is_present"`
	Note      *string `json:"note"`
}

type UserAuraInput struct {
	LogID  *uint `json:"log_id"`
	AuraID *uint `json:"aura_id"`
	UserAuraUpdate
}

type UserTriggerUpdate struct {
	ValueNumeric *float64 `json:"value_numeric"`
	ValueBoolean *bool    `json:"value_boolean"`
	Note         *string  `json:"note"`
}

type UserTriggerInput struct {
	LogID     *uint `json:"log_id"`
	TriggerID *uint `json:"trigger_id"`
	UserTriggerUpdate
}

type SeizureEpisodeUpdate struct {
	DurationSec                   *int     `json:"duration_sec"`
	Frequency                     *int     `json:"frequency"`
	RequiresEmergencyIntervention *bool    `json:"requires_emergency_intervention"`
	PostictalConfusionDuration    *float64 `json:"postictal_confusion_duration"`
	PostictalConfusionIntensity   *int     `json:"postictal_confusion_intensity"`
	PostictalHeadacheDuration     *float64 `json:"postictal_headache_duration"`
	PostictalHeadacheIntensity    *int     `json:"postictal_headache_intensity"`
	PostictalFatigueDuration      *float64 `json:"postictal_fatigue_duration"`
	PostictalFatigueIntensity     *int     `json:"postictal_fatigue_intensity"`
	Note                          *string  `json:"note"`
}

type SeizureEpisodeInput struct {
	LogID         *uint `json:"log_id"`
	SeizureTypeID *uint `json:"seizure_type_id"`
	SeizureEpisodeUpdate
}

type (
	UserProdromeService   = ObservationService[models.UserProdrome, UserProdromeInput, UserProdromeUpdate]
	UserAuraService       = ObservationService[models.UserAura, UserAuraInput, UserAuraUpdate]
	UserTriggerService    = ObservationService[models.UserTrigger, UserTriggerInput, UserTriggerUpdate]
	SeizureEpisodeService = ObservationService[models.SeizureEpisode, SeizureEpisodeInput, SeizureEpisodeUpdate]
)

func NewUserProdromeService(repos *db.Repositories) *UserProdromeService {
	return NewObservationService(repos, ObservationKind[models.UserProdrome, UserProdromeInput, UserProdromeUpdate]{
		Name:        "UserProdrome",
		CatalogName: "Prodrome",
		Required: func(input UserProdromeInput) error {
			return checkRequired(
				requiredField{"log_id", present(input.LogID)},
				requiredField{"prodrome_id", present(input.ProdromeID)},
				requiredField{"intensity", present(input.Intensity)},
			)
		},
		Build: func(input UserProdromeInput) models.UserProdrome {
			entry := models.UserProdrome{LogID: *input.LogID, ProdromeID: *input.ProdromeID}
			applyProdromeUpdate(&entry, input.UserProdromeUpdate)
			return entry
		},
		Apply:     applyProdromeUpdate,
		CatalogID: func(entry models.UserProdrome) uint { return entry.ProdromeID },
		CatalogExists: func(tx *db.Repositories, id uint) (bool, error) {
			return tx.Catalog.ProdromeExists(id)
		},
		Store: func(tx *db.Repositories) *db.ObservationRepository[models.UserProdrome] { return tx.Prodromes },
	})
}

func applyProdromeUpdate(entry *models.UserProdrome, input UserProdromeUpdate) {
	if input.Intensity != nil {
		entry.Intensity = *input.Intensity
	}
	if input.Note != nil {
		entry.Note = noteSanitizer.Sanitize(*input.Note)
	}
}

func NewUserAuraService(repos *db.Repositories) *UserAuraService {
	return NewObservationService(repos, ObservationKind[models.UserAura, UserAuraInput, UserAuraUpdate]{
		Name:        "UserAura",
		CatalogName: "Aura",
		Required: func(input UserAuraInput) error {
			return checkRequired(
				requiredField{"log_id", present(input.LogID)},
				requiredField{"aura_id", present(input.AuraID)},
				requiredField{"is_present", present(input.IsPresent)},
			)
		},
		Build: func(input UserAuraInput) models.UserAura {
			entry := models.UserAura{LogID: *input.LogID, AuraID: *input.AuraID}
			applyAuraUpdate(&entry, input.UserAuraUpdate)
			return entry
		},
		Apply:     applyAuraUpdate,
		CatalogID: func(entry models.UserAura) uint { return entry.AuraID },
		CatalogExists: func(tx *db.Repositories, id uint) (bool, error) {
			return tx.Catalog.AuraExists(id)
		},
		Store: func(tx *db.Repositories) *db.ObservationRepository[models.UserAura] { return tx.Auras },
	})
}

func applyAuraUpdate(entry *models.UserAura, input UserAuraUpdate) {
	if input.IsPresent != nil {
		entry.IsPresent = *input.IsPresent
	}
	if input.Note != nil {
		entry.Note = noteSanitizer.Sanitize(*input.Note)
	}
}

func NewUserTriggerService(repos *db.Repositories) *UserTriggerService {
	return NewObservationService(repos, ObservationKind[models.UserTrigger, UserTriggerInput, UserTriggerUpdate]{
		Name:        "UserTrigger",
		CatalogName: "Trigger",
		Required: func(input UserTriggerInput) error {
			return checkRequired(
				requiredField{"log_id", present(input.LogID)},
				requiredField{"trigger_id", present(input.TriggerID)},
				requiredField{"value_numeric or value_boolean", present(input.ValueNumeric) || present(input.ValueBoolean)},
			)
		},
		Build: func(input UserTriggerInput) models.UserTrigger {
			entry := models.UserTrigger{LogID: *input.LogID, TriggerID: *input.TriggerID}
			applyTriggerUpdate(&entry, input.UserTriggerUpdate)
			return entry
		},
		Apply:     applyTriggerUpdate,
		CatalogID: func(entry models.UserTrigger) uint { return entry.TriggerID },
		CatalogExists: func(tx *db.Repositories, id uint) (bool, error) {
			return tx.Catalog.TriggerExists(id)
		},
		Store: func(tx *db.Repositories) *db.ObservationRepository[models.UserTrigger] { return tx.Triggers },
	})
}

func applyTriggerUpdate(entry *models.UserTrigger, input UserTriggerUpdate) {
	if input.ValueNumeric != nil {
		value := *input.ValueNumeric
		entry.ValueNumeric = &value
	}
	if input.ValueBoolean != nil {
		value := *input.ValueBoolean
		entry.ValueBoolean = &value
	}
	if input.Note != nil {
		entry.Note = noteSanitizer.Sanitize(*input.Note)
	}
}

func NewSeizureEpisodeService(repos *db.Repositories) *SeizureEpisodeService {
	return NewObservationService(repos, ObservationKind[models.SeizureEpisode, SeizureEpisodeInput, SeizureEpisodeUpdate]{
		Name:        "SeizureEpisode",
		CatalogName: "SeizureType",
		Required: func(input SeizureEpisodeInput) error {
			return checkRequired(
				requiredField{"log_id", present(input.LogID)},
				requiredField{"seizure_type_id", present(input.SeizureTypeID)},
				requiredField{"duration_sec", present(input.DurationSec)},
			)
		},
		Build: func(input SeizureEpisodeInput) models.SeizureEpisode {
			entry := models.SeizureEpisode{LogID: *input.LogID, SeizureTypeID: *input.SeizureTypeID, Frequency: 1}
			applySeizureEpisodeUpdate(&entry, input.SeizureEpisodeUpdate)
			return entry
		},
		Apply:     applySeizureEpisodeUpdate,
		CatalogID: func(entry models.SeizureEpisode) uint { return entry.SeizureTypeID },
		CatalogExists: func(tx *db.Repositories, id uint) (bool, error) {
			return tx.Catalog.SeizureTypeExists(id)
		},
		Store: func(tx *db.Repositories) *db.ObservationRepository[models.SeizureEpisode] { return tx.SeizureEpisodes },
	})
}

func applySeizureEpisodeUpdate(entry *models.SeizureEpisode, input SeizureEpisodeUpdate) {
	if input.DurationSec != nil {
		entry.DurationSec = *input.DurationSec
	}
	if input.Frequency != nil {
		entry.Frequency = *input.Frequency
	}
	if input.RequiresEmergencyIntervention != nil {
		entry.RequiresEmergencyIntervention = *input.RequiresEmergencyIntervention
	}
	setIfPresent(&entry.PostictalConfusionDuration, input.PostictalConfusionDuration)
	setIfPresent(&entry.PostictalConfusionIntensity, input.PostictalConfusionIntensity)
	setIfPresent(&entry.PostictalHeadacheDuration, input.PostictalHeadacheDuration)
	setIfPresent(&entry.PostictalHeadacheIntensity, input.PostictalHeadacheIntensity)
	setIfPresent(&entry.PostictalFatigueDuration, input.PostictalFatigueDuration)
	setIfPresent(&entry.PostictalFatigueIntensity, input.PostictalFatigueIntensity)
	if input.Note != nil {
		entry.Note = noteSanitizer.Sanitize(*input.Note)
	}
}

// setIfPresent copies an optional value so the entry never aliases the payload.
func setIfPresent[V any](target **V, value *V) {
	if value == nil {
		return
	}
	copied := *value
	*target = &copied
}
