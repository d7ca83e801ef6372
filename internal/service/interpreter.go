package service

import (
	"encoding/json"
	"fmt"

	"github.com/oncorisk-client/internal/domain"
)

// wireResponse mirrors the prediction endpoint's success body. Pointer fields
// distinguish absent values from zero values.
type wireResponse struct {
	RequestID        string         `json:"request_id"`
	Model            string         `json:"model"`
	Prediction       *wirePrediction `json:"prediction"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
	ReceivedFeatures map[string]any `json:"received_features"`
}

type wirePrediction struct {
	Class         string   `json:"class"`
	Probability   *float64 `json:"probability"`
	RiskLevel     string   `json:"risk_level"`
	ThresholdUsed float64  `json:"threshold_used"`
}

// Interpret maps the raw prediction response into a display-ready result.
// The response must carry a prediction block with class ∈
// {positive,negative}, probability ∈ [0,1] and risk_level ∈ {high,medium,low};
// any deviation fails the whole interpretation as a contract violation rather
// than defaulting silently. An unknown risk level is rejected too, so the
// display mapping stays total over exactly three tiers.
func Interpret(raw json.RawMessage) (*domain.PredictionResult, error) {
	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, domain.NewMalformedResponseError(fmt.Sprintf("invalid JSON: %v", err))
	}

	if resp.Prediction == nil {
		return nil, domain.NewMalformedResponseError("missing prediction block")
	}

	class := domain.PredictionClass(resp.Prediction.Class)
	if class != domain.ClassPositive && class != domain.ClassNegative {
		return nil, domain.NewMalformedResponseError(fmt.Sprintf("unknown class %q", resp.Prediction.Class))
	}

	if resp.Prediction.Probability == nil {
		return nil, domain.NewMalformedResponseError("missing probability")
	}
	probability := *resp.Prediction.Probability
	if probability < 0 || probability > 1 {
		return nil, domain.NewMalformedResponseError(fmt.Sprintf("probability %g outside [0,1]", probability))
	}

	risk := domain.RiskLevel(resp.Prediction.RiskLevel)
	switch risk {
	case domain.RiskHigh, domain.RiskMedium, domain.RiskLow:
	default:
		return nil, domain.NewMalformedResponseError(fmt.Sprintf("unknown risk level %q", resp.Prediction.RiskLevel))
	}

	return &domain.PredictionResult{
		RequestID:        resp.RequestID,
		Model:            resp.Model,
		Class:            class,
		Probability:      probability,
		RiskLevel:        risk,
		ThresholdUsed:    resp.Prediction.ThresholdUsed,
		ProcessingTimeMs: resp.ProcessingTimeMs,
		Display:          domain.DisplayForRisk(risk),
		ReceivedFeatures: resp.ReceivedFeatures,
	}, nil
}
