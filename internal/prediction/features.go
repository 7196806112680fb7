package prediction

import "github.com/terraincognita07/ictus/internal/models"

// BuildFeatures flattens one day of logs into the scorer input.
// Every trigger contributes a [numeric, boolean] pair, then every prodrome
// intensity follows, in log order.
func BuildFeatures(logs []models.UserLog) []float64 {
	features := make([]float64, 0)
	for _, log := range logs {
		for _, trigger := range log.Triggers {
			features = append(features, triggerPair(trigger)...)
		}
	}
	for _, log := range logs {
		for _, prodrome := range log.Prodromes {
			features = append(features, float64(prodrome.Intensity))
		}
	}
	return features
}

func triggerPair(trigger models.UserTrigger) []float64 {
	if trigger.ValueNumeric != nil {
		return []float64{*trigger.ValueNumeric, 0}
	}
	if trigger.ValueBoolean != nil && *trigger.ValueBoolean {
		return []float64{0, 1}
	}
	return []float64{0, 0}
}
