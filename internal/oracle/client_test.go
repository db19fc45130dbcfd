package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"health-triage/internal/triage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, zap.NewNop())
}

func TestScoreSymptoms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict_symptoms", r.URL.Path)

		var req struct {
			Symptoms []int `json:"symptoms"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []int{1, 6, 11}, req.Symptoms)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"diabetes": 0.42, "heart": 0.1, "stroke": 0.73}`))
	})

	scores, err := client.ScoreSymptoms(context.Background(), []int{1, 6, 11})
	require.NoError(t, err)
	assert.Equal(t, triage.ConditionValues{Diabetes: 0.42, Heart: 0.1, Stroke: 0.73}, scores)
}

func TestScoreSymptoms_MissingFieldsDefaultToZero(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"diabetes": 0.42}`))
	})

	scores, err := client.ScoreSymptoms(context.Background(), []int{1})
	require.NoError(t, err)
	assert.Equal(t, triage.ConditionValues{Diabetes: 0.42}, scores)
}

func TestScoreSymptoms_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	_, err := client.ScoreSymptoms(context.Background(), []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestScoreSymptoms_ConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, zap.NewNop())

	_, err := client.ScoreSymptoms(context.Background(), []int{1})
	require.Error(t, err)
}

func TestPredict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)

		var req map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// Feature keys match the column names the models expect.
		assert.Contains(t, req["diabetes"], "Glucose")
		assert.Contains(t, req["heart"], "ChestPainType")
		assert.Contains(t, req["stroke"], "SmokingStatus")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"diabetes": 0.3, "heart": 0.2, "stroke": 0.1}`))
	})

	features := triage.BuildPredictionFeatures(&triage.PatientSnapshot{
		Metrics: triage.HealthMetrics{Glucose: 120, BMI: 27, BloodPressure: "130/85"},
		Profile: triage.Profile{Gender: "male", Age: 48},
	})

	scores, err := client.Predict(context.Background(), features)
	require.NoError(t, err)
	assert.Equal(t, triage.ConditionValues{Diabetes: 0.3, Heart: 0.2, Stroke: 0.1}, scores)
}
