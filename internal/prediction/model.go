package prediction

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

//go:embed default_model.json
var defaultModelJSON []byte

var ErrInvalidModel = errors.New("invalid prediction model")

// Model is a logistic scorer over a fixed-width feature vector.
type Model struct {
	Name       string    `json:"name"`
	InputWidth int       `json:"input_width"`
	Bias       float64   `json:"bias"`
	Weights    []float64 `json:"weights"`
}

// LoadModel reads weights from path, or the embedded default model when path is empty.
func LoadModel(path string) (*Model, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ParseModel(defaultModelJSON)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prediction model: %w", err)
	}
	return ParseModel(content)
}

func DefaultModel() *Model {
	model, err := ParseModel(defaultModelJSON)
	if err != nil {
		panic(err)
	}
	return model
}

func ParseModel(content []byte) (*Model, error) {
	var model Model
	if err := json.Unmarshal(content, &model); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if model.InputWidth <= 0 {
		return nil, fmt.Errorf("%w: input_width must be positive", ErrInvalidModel)
	}
	if len(model.Weights) != model.InputWidth {
		return nil, fmt.Errorf("%w: %d weights for input width %d", ErrInvalidModel, len(model.Weights), model.InputWidth)
	}
	for _, weight := range append([]float64{model.Bias}, model.Weights...) {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return nil, fmt.Errorf("%w: weights must be finite", ErrInvalidModel)
		}
	}
	return &model, nil
}

// Score returns the probability for features. Longer vectors are truncated and
// shorter ones padded with zeros.
func (model *Model) Score(features []float64) float64 {
	z := model.Bias
	for index, weight := range model.Weights {
		if index >= len(features) {
			break
		}
		z += weight * features[index]
	}
	return 1 / (1 + math.Exp(-z))
}
