package services

import (
	"time"

	"github.com/terraincognita07/ictus/internal/models"
)

type ProdromeView struct {
	ID        uint   `json:"id"`
	EntryID   uint   `json:"entry_id"`
	Name      string `json:"name"`
	Intensity int    `json:"intensity"`
	Note      string `json:"note"`
}

type AuraView struct {
	ID        uint   `json:"id"`
	EntryID   uint   `json:"entry_id"`
	Name      string `json:"name"`
	IsPresent bool   `json:"is_present"`
	Note      string `json:"note"`
}

type TriggerView struct {
	ID           uint     `json:"id"`
	EntryID      uint     `json:"entry_id"`
	Name         string   `json:"name"`
	ValueNumeric *float64 `json:"value_numeric"`
	ValueBoolean *bool    `json:"value_boolean"`
	Note         string   `json:"note"`
}

type SeizureEpisodeView struct {
	ID                            uint     `json:"id"`
	SeizureTypeID                 uint     `json:"seizure_type_id"`
	SeizureType                   string   `json:"seizure_type"`
	DurationSec                   int      `json:"duration_sec"`
	Frequency                     int      `json:"frequency"`
	RequiresEmergencyIntervention bool     `json:"requires_emergency_intervention"`
	Note                          string   `json:"note"`
	PostictalConfusionDuration    *float64 `json:"postictal_confusion_duration"`
	PostictalConfusionIntensity   *int     `json:"postictal_confusion_intensity"`
	PostictalHeadacheDuration     *float64 `json:"postictal_headache_duration"`
	PostictalHeadacheIntensity    *int     `json:"postictal_headache_intensity"`
	PostictalFatigueDuration      *float64 `json:"postictal_fatigue_duration"`
	PostictalFatigueIntensity     *int     `json:"postictal_fatigue_intensity"`
}

// LogView is a log with every observation recorded under it.
type LogView struct {
	LogID           uint                 `json:"log_id"`
	LogTime         string               `json:"log_time"`
	Note            string               `json:"note"`
	HasSeizures     bool                 `json:"has_seizures"`
	Prodromes       []ProdromeView       `json:"prodromes"`
	Auras           []AuraView           `json:"auras"`
	Triggers        []TriggerView        `json:"triggers"`
	SeizureEpisodes []SeizureEpisodeView `json:"seizure_episodes"`
}

type WeeklySeizureView struct {
	Type                  string `json:"type"`
	Duration              int    `json:"duration"`
	Frequency             int    `json:"frequency"`
	EmergencyIntervention bool   `json:"emergencyIntervention"`
	PostictalSymptoms     string `json:"postictalSymptoms"`
	Note                  string `json:"note"`
}

// WeeklyLogView is the summarized form used by the weekly report.
type WeeklyLogView struct {
	Date      string              `json:"date"`
	Triggers  []string            `json:"triggers"`
	Prodromes []string            `json:"prodromes"`
	Auras     []string            `json:"auras"`
	Notes     string              `json:"notes"`
	Seizure   []WeeklySeizureView `json:"seizure"`
}

func buildLogView(log models.UserLog, location *time.Location) LogView {
	view := LogView{
		LogID:           log.ID,
		LogTime:         log.LogTime.In(location).Format(time.RFC3339),
		Note:            log.Note,
		HasSeizures:     log.HasSeizures(),
		Prodromes:       make([]ProdromeView, 0, len(log.Prodromes)),
		Auras:           make([]AuraView, 0, len(log.Auras)),
		Triggers:        make([]TriggerView, 0, len(log.Triggers)),
		SeizureEpisodes: make([]SeizureEpisodeView, 0, len(log.SeizureEpisodes)),
	}
	for _, entry := range log.Prodromes {
		view.Prodromes = append(view.Prodromes, ProdromeView{
			ID: entry.ProdromeID, EntryID: entry.ID, Name: entry.Prodrome.Name, Intensity: entry.Intensity, Note: entry.Note,
		})
	}
	for _, entry := range log.Auras {
		view.Auras = append(view.Auras, AuraView{
			ID: entry.AuraID, EntryID: entry.ID, Name: entry.Aura.Name, IsPresent: entry.IsPresent, Note: entry.Note,
		})
	}
	for _, entry := range log.Triggers {
		view.Triggers = append(view.Triggers, TriggerView{
			ID: entry.TriggerID, EntryID: entry.ID, Name: entry.Trigger.Name,
			ValueNumeric: entry.ValueNumeric, ValueBoolean: entry.ValueBoolean, Note: entry.Note,
		})
	}
	for _, episode := range log.SeizureEpisodes {
		view.SeizureEpisodes = append(view.SeizureEpisodes, SeizureEpisodeView{
			ID:                            episode.ID,
			SeizureTypeID:                 episode.SeizureTypeID,
			SeizureType:                   episode.SeizureType.Name,
			DurationSec:                   episode.DurationSec,
			Frequency:                     episode.Frequency,
			RequiresEmergencyIntervention: episode.RequiresEmergencyIntervention,
			Note:                          episode.Note,
			PostictalConfusionDuration:    episode.PostictalConfusionDuration,
			PostictalConfusionIntensity:   episode.PostictalConfusionIntensity,
			PostictalHeadacheDuration:     episode.PostictalHeadacheDuration,
			PostictalHeadacheIntensity:    episode.PostictalHeadacheIntensity,
			PostictalFatigueDuration:      episode.PostictalFatigueDuration,
			PostictalFatigueIntensity:     episode.PostictalFatigueIntensity,
		})
	}
	return view
}

// reportedProdromeMinIntensity: only prodromes stronger than this appear in the weekly summary.
const reportedProdromeMinIntensity = 2

func buildWeeklyLogView(log models.UserLog, location *time.Location) WeeklyLogView {
	view := WeeklyLogView{
		Date:      log.LogTime.In(location).Format(DateLayout),
		Triggers:  triggerLabels(log.Triggers),
		Prodromes: make([]string, 0, len(log.Prodromes)),
		Auras:     make([]string, 0, len(log.Auras)),
		Notes:     log.Note,
		Seizure:   make([]WeeklySeizureView, 0, len(log.SeizureEpisodes)),
	}
	for _, entry := range log.Prodromes {
		if entry.Intensity > reportedProdromeMinIntensity {
			view.Prodromes = append(view.Prodromes, entry.Prodrome.Name)
		}
	}
	for _, entry := range log.Auras {
		if entry.IsPresent {
			view.Auras = append(view.Auras, entry.Aura.Name)
		}
	}
	for _, episode := range log.SeizureEpisodes {
		view.Seizure = append(view.Seizure, WeeklySeizureView{
			Type:                  episode.SeizureType.Name,
			Duration:              episode.DurationSec,
			Frequency:             episode.Frequency,
			EmergencyIntervention: episode.RequiresEmergencyIntervention,
			PostictalSymptoms:     FormatPostictalSymptoms(episode),
			Note:                  episode.Note,
		})
	}
	return view
}
