package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result *AnalysisResult
	err    error

	history []AnalysisRecord
}

func (s *stubService) Analyse(ctx context.Context, userID uuid.UUID, symptomIDs []int) (*AnalysisResult, error) {
	return s.result, s.err
}

func (s *stubService) History(ctx context.Context, userID uuid.UUID) ([]AnalysisRecord, error) {
	return s.history, s.err
}

func (s *stubService) Latest(ctx context.Context, userID uuid.UUID) (*AnalysisRecord, error) {
	return nil, ErrNotFound
}

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))
	return r
}

func TestHandlerAnalyse(t *testing.T) {
	svc := &stubService{result: &AnalysisResult{
		Triage: Summary{Overall: Assessment{Level: LevelRoutine, Urgency: "Schedule a routine appointment with your doctor"}},
	}}
	router := newTestRouter(svc)

	body := strings.NewReader(`{"symptoms": [4, 6]}`)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/users/%s/symptoms/analyse", uuid.New()), body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, LevelRoutine, got.Triage.Overall.Level)
}

func TestHandlerAnalyse_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"no symptoms", ErrNoSymptoms, http.StatusBadRequest, "Invalid input data"},
		{"missing patient data", ErrPatientDataMissing, http.StatusNotFound, "Cannot analyse symptoms without user health data"},
		{"internal failure", assert.AnError, http.StatusInternalServerError, "Failed to analyse symptoms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubService{err: tt.err})

			body := strings.NewReader(`{"symptoms": []}`)
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/users/%s/symptoms/analyse", uuid.New()), body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}

func TestHandlerAnalyse_InvalidUserID(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/users/not-a-uuid/symptoms/analyse", strings.NewReader(`{"symptoms": [1]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerAnalyse_MalformedBody(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/users/%s/symptoms/analyse", uuid.New()), strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerHistory(t *testing.T) {
	userID := uuid.New()
	svc := &stubService{history: []AnalysisRecord{
		{ID: uuid.New(), UserID: userID, Symptoms: []int{6}},
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/users/%s/symptoms/history", userID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, userID, got[0].UserID)
}
