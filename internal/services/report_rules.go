package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/ictus/internal/models"
)

const NoPostictalSymptoms = "No significant postictal symptoms"

// postictalReportThresholdMinutes: shorter postictal phases are left out of the weekly summary.
const postictalReportThresholdMinutes = 2

type triggerReading struct {
	numeric *float64
	boolean *bool
}

type triggerLabelRule struct {
	trigger string
	label   string
	matches func(reading triggerReading) bool
}

func numericAtMost(limit float64) func(triggerReading) bool {
	return func(reading triggerReading) bool {
		return reading.numeric != nil && *reading.numeric <= limit
	}
}

func numericAtLeast(limit float64) func(triggerReading) bool {
	return func(reading triggerReading) bool {
		return reading.numeric != nil && *reading.numeric >= limit
	}
}

func flagged(reading triggerReading) bool {
	return reading.boolean != nil && *reading.boolean
}

// triggerLabelRules maps a trigger reading to the label shown in the weekly summary.
// Triggers without a rule, and readings that do not match, produce no label.
var triggerLabelRules = []triggerLabelRule{
	{trigger: "Sleep Quality", label: "Poor Sleep", matches: numericAtMost(5)},
	{trigger: "Stress Level", label: "Stress", matches: numericAtLeast(6)},
	{trigger: "Sleep Duration", label: "Lack of Sleep", matches: numericAtMost(6)},
	{trigger: "Caffeine", label: "Caffeine", matches: flagged},
	{trigger: "Alcohol", label: "Alcohol", matches: flagged},
	{trigger: "Smoking", label: "Smoking", matches: flagged},
	{trigger: "Drugs", label: "Drugs", matches: flagged},
	{trigger: "Menstruation", label: "Menstruation", matches: flagged},
	{trigger: "Skipped Meal", label: "Skipped Meal", matches: flagged},
	{trigger: "Fever", label: "Fever", matches: flagged},
	{trigger: "Physical Exertion", label: "Physical Exertion", matches: numericAtLeast(5)},
	{trigger: "Flashing Lights", label: "Flashing Lights", matches: flagged},
	{trigger: "Skipped Medication", label: "Skipped Medication", matches: flagged},
	{trigger: "Change in Medication", label: "Change in Medication", matches: flagged},
}

// TriggerLabel returns the weekly label for one trigger reading, if any.
func TriggerLabel(triggerName string, numeric *float64, boolean *bool) (string, bool) {
	reading := triggerReading{numeric: numeric, boolean: boolean}
	for _, rule := range triggerLabelRules {
		if rule.trigger == triggerName && rule.matches(reading) {
			return rule.label, true
		}
	}
	return "", false
}

func triggerLabels(triggers []models.UserTrigger) []string {
	labels := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		if label, ok := TriggerLabel(trigger.Trigger.Name, trigger.ValueNumeric, trigger.ValueBoolean); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

type postictalDimension struct {
	symptom   string
	duration  *float64
	intensity *int
}

// FormatPostictalSymptoms summarizes the postictal phase of an episode in one line.
func FormatPostictalSymptoms(episode models.SeizureEpisode) string {
	dimensions := []postictalDimension{
		{symptom: "confusion", duration: episode.PostictalConfusionDuration, intensity: episode.PostictalConfusionIntensity},
		{symptom: "headache", duration: episode.PostictalHeadacheDuration, intensity: episode.PostictalHeadacheIntensity},
		{symptom: "fatigue", duration: episode.PostictalFatigueDuration, intensity: episode.PostictalFatigueIntensity},
	}

	parts := make([]string, 0, len(dimensions))
	for _, dimension := range dimensions {
		if dimension.duration == nil || *dimension.duration <= postictalReportThresholdMinutes {
			continue
		}
		intensity := 0
		if dimension.intensity != nil {
			intensity = *dimension.intensity
		}
		parts = append(parts, fmt.Sprintf("%d/10 %s for %s minutes",
			intensity, dimension.symptom, strconv.FormatFloat(*dimension.duration, 'f', -1, 64)))
	}
	if len(parts) == 0 {
		return NoPostictalSymptoms
	}
	return strings.Join(parts, ", ")
}
