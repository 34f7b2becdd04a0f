package entities

import (
	"encoding/json"
	"fmt"
)

// Outcome represents a predicted or final match outcome
type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeDraw Outcome = "draw"
	OutcomeAway Outcome = "away"
)

// PredictionTypeWinner is the only prediction type currently supported.
// The type tag on the payload keeps the format forward-compatible.
const PredictionTypeWinner = "winner"

// WinnerPrediction is the structured payload of a "winner" prediction.
type WinnerPrediction struct {
	Type  string  `json:"type"`
	Value Outcome `json:"value"`
}

// ParsePrediction validates a raw prediction payload against its declared
// type and returns the predicted outcome. Malformed payloads and
// well-formed-but-invalid payloads produce distinct errors so callers can
// tell them apart.
func ParsePrediction(predictionType, rawPayload string) (Outcome, error) {
	if predictionType != PredictionTypeWinner {
		return "", fmt.Errorf("unsupported prediction type %q", predictionType)
	}

	var p WinnerPrediction
	if err := json.Unmarshal([]byte(rawPayload), &p); err != nil {
		return "", fmt.Errorf("malformed prediction payload: %w", err)
	}

	if p.Type != PredictionTypeWinner {
		return "", fmt.Errorf("prediction payload type %q does not match declared type %q", p.Type, predictionType)
	}

	switch p.Value {
	case OutcomeHome, OutcomeDraw, OutcomeAway:
		return p.Value, nil
	default:
		return "", fmt.Errorf("invalid winner value %q: must be home, draw or away", p.Value)
	}
}
