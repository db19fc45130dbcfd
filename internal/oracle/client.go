package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"health-triage/internal/triage"
)

// Client talks to the python prediction service. It exposes the two
// model endpoints: symptom classification and per-condition risk models.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: http, logger: logger}
}

type symptomRequest struct {
	Symptoms []int `json:"symptoms"`
}

type scoresResponse struct {
	Diabetes *float64 `json:"diabetes"`
	Heart    *float64 `json:"heart"`
	Stroke   *float64 `json:"stroke"`
}

// toScores coerces the response, defaulting any missing field to 0.
func (r scoresResponse) toScores() triage.ConditionValues {
	value := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return triage.ConditionValues{
		Diabetes: value(r.Diabetes),
		Heart:    value(r.Heart),
		Stroke:   value(r.Stroke),
	}
}

// ScoreSymptoms asks the symptoms model for per-condition likelihoods.
// A single attempt; the caller decides on fallback behaviour.
func (c *Client) ScoreSymptoms(ctx context.Context, symptomIDs []int) (triage.ConditionValues, error) {
	var result scoresResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(symptomRequest{Symptoms: symptomIDs}).
		SetResult(&result).
		Post("/predict_symptoms")
	if err != nil {
		return triage.ConditionValues{}, fmt.Errorf("symptom prediction call failed: %w", err)
	}
	if resp.IsError() {
		return triage.ConditionValues{}, fmt.Errorf("symptom prediction service returned %s", resp.Status())
	}
	return result.toScores(), nil
}

// Predict runs the three condition risk models against patient-derived features.
func (c *Client) Predict(ctx context.Context, features triage.PredictionFeatures) (triage.ConditionValues, error) {
	var result scoresResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(features).
		SetResult(&result).
		Post("/predict")
	if err != nil {
		return triage.ConditionValues{}, fmt.Errorf("risk prediction call failed: %w", err)
	}
	if resp.IsError() {
		return triage.ConditionValues{}, fmt.Errorf("risk prediction service returned %s", resp.Status())
	}
	return result.toScores(), nil
}
