package triage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Oracle is the external prediction service. Both calls are single
// attempt; failures are absorbed by the service with fallback scores.
// We define it here to decouple from the concrete client.
type Oracle interface {
	ScoreSymptoms(ctx context.Context, symptomIDs []int) (ConditionValues, error)
	Predict(ctx context.Context, features PredictionFeatures) (ConditionValues, error)
}

// Notifier receives emergency outcomes, e.g. to alert a clinician.
// Calls are best-effort and must not block the analysis response.
type Notifier interface {
	EmergencyAlert(ctx context.Context, userID uuid.UUID, record *AnalysisRecord)
}

// Repository is the persistence contract the analysis flow needs.
type Repository interface {
	PatientSnapshot(ctx context.Context, userID uuid.UUID) (*PatientSnapshot, error)
	SaveAnalysis(ctx context.Context, record *AnalysisRecord) error
	ListAnalyses(ctx context.Context, userID uuid.UUID) ([]AnalysisRecord, error)
	LatestAnalysis(ctx context.Context, userID uuid.UUID) (*AnalysisRecord, error)
}

type Service interface {
	Analyse(ctx context.Context, userID uuid.UUID, symptomIDs []int) (*AnalysisResult, error)
	History(ctx context.Context, userID uuid.UUID) ([]AnalysisRecord, error)
	Latest(ctx context.Context, userID uuid.UUID) (*AnalysisRecord, error)
}

// fallbackScores is returned whenever an oracle call fails, so a broken
// prediction service degrades to a low-moderate baseline instead of
// silently reporting zero risk.
var fallbackScores = ConditionValues{Diabetes: 0.1, Heart: 0.1, Stroke: 0.1}

type service struct {
	repo     Repository
	oracle   Oracle
	tables   Tables
	notifier Notifier
	logger   *zap.Logger
}

// NewService wires the analysis pipeline. notifier may be nil when no
// alerting channel is configured.
func NewService(repo Repository, oracle Oracle, tables Tables, notifier Notifier, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		oracle:   oracle,
		tables:   tables,
		notifier: notifier,
		logger:   logger,
	}
}

// Analyse runs the full pipeline: gather patient data, score the
// reported symptoms, run the risk models, combine, assess triage,
// derive explanations and recommendations, then persist best-effort.
func (s *service) Analyse(ctx context.Context, userID uuid.UUID, symptomIDs []int) (*AnalysisResult, error) {
	if len(symptomIDs) == 0 {
		return nil, ErrNoSymptoms
	}

	snapshot, err := s.repo.PatientSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	symptomScores := s.resilientScores(ctx, "score_symptoms", func(ctx context.Context) (ConditionValues, error) {
		return s.oracle.ScoreSymptoms(ctx, symptomIDs)
	})

	features := BuildPredictionFeatures(snapshot)
	predictions := s.resilientScores(ctx, "predict", func(ctx context.Context) (ConditionValues, error) {
		return s.oracle.Predict(ctx, features)
	})

	risks := Combine(symptomScores, predictions)
	summary := Assess(risks, symptomIDs)

	result := &AnalysisResult{
		ConditionRisks:    risks,
		Triage:            summary,
		RiskFactors:       RiskFactors(snapshot, risks),
		FeatureImportance: FeatureImportance(s.tables, snapshot, symptomIDs),
		Recommendations:   Recommend(summary.Overall, risks, snapshot),
	}

	record := &AnalysisRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Symptoms:  symptomIDs,
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}
	// Persistence is best-effort: the computed result is returned even
	// when the write fails.
	if err := s.repo.SaveAnalysis(ctx, record); err != nil {
		s.logger.Error("failed to save analysis result",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	if s.notifier != nil && summary.Overall.Level == LevelEmergency {
		go s.notifier.EmergencyAlert(context.Background(), userID, record)
	}

	return result, nil
}

// resilientScores applies the uniform fallback policy to an oracle call.
func (s *service) resilientScores(ctx context.Context, call string, fn func(context.Context) (ConditionValues, error)) ConditionValues {
	scores, err := fn(ctx)
	if err != nil {
		s.logger.Warn("oracle call failed, using fallback scores",
			zap.String("call", call),
			zap.Error(err))
		return fallbackScores
	}
	return scores
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]AnalysisRecord, error) {
	return s.repo.ListAnalyses(ctx, userID)
}

func (s *service) Latest(ctx context.Context, userID uuid.UUID) (*AnalysisRecord, error) {
	return s.repo.LatestAnalysis(ctx, userID)
}
