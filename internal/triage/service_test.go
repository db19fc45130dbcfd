package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOracle struct {
	symptomScores ConditionValues
	symptomErr    error
	predictions   ConditionValues
	predictErr    error

	symptomCalls int
	predictCalls int
	lastFeatures PredictionFeatures
}

func (o *stubOracle) ScoreSymptoms(ctx context.Context, symptomIDs []int) (ConditionValues, error) {
	o.symptomCalls++
	return o.symptomScores, o.symptomErr
}

func (o *stubOracle) Predict(ctx context.Context, features PredictionFeatures) (ConditionValues, error) {
	o.predictCalls++
	o.lastFeatures = features
	return o.predictions, o.predictErr
}

type stubRepo struct {
	snapshot    *PatientSnapshot
	snapshotErr error
	saveErr     error

	snapshotCalls int
	saved         []*AnalysisRecord
}

func (r *stubRepo) PatientSnapshot(ctx context.Context, userID uuid.UUID) (*PatientSnapshot, error) {
	r.snapshotCalls++
	return r.snapshot, r.snapshotErr
}

func (r *stubRepo) SaveAnalysis(ctx context.Context, record *AnalysisRecord) error {
	r.saved = append(r.saved, record)
	return r.saveErr
}

func (r *stubRepo) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]AnalysisRecord, error) {
	return nil, nil
}

func (r *stubRepo) LatestAnalysis(ctx context.Context, userID uuid.UUID) (*AnalysisRecord, error) {
	return nil, ErrNotFound
}

func newTestService(repo *stubRepo, oracle *stubOracle) Service {
	return NewService(repo, oracle, DefaultTables(), nil, zap.NewNop())
}

func TestAnalyse_RejectsEmptySymptomList(t *testing.T) {
	repo := &stubRepo{snapshot: testSnapshot()}
	oracle := &stubOracle{}
	svc := newTestService(repo, oracle)

	_, err := svc.Analyse(context.Background(), uuid.New(), nil)
	require.ErrorIs(t, err, ErrNoSymptoms)

	// Rejected before any data access or oracle call.
	assert.Zero(t, repo.snapshotCalls)
	assert.Zero(t, oracle.symptomCalls)
	assert.Zero(t, oracle.predictCalls)
	assert.Empty(t, repo.saved)
}

func TestAnalyse_RejectsMissingPatientData(t *testing.T) {
	repo := &stubRepo{snapshotErr: ErrPatientDataMissing}
	oracle := &stubOracle{}
	svc := newTestService(repo, oracle)

	_, err := svc.Analyse(context.Background(), uuid.New(), []int{6})
	require.ErrorIs(t, err, ErrPatientDataMissing)
	assert.Zero(t, oracle.symptomCalls)
}

func TestAnalyse_OracleFailureFallsBack(t *testing.T) {
	repo := &stubRepo{snapshot: testSnapshot()}
	oracle := &stubOracle{
		symptomErr: errors.New("connection refused"),
		predictErr: errors.New("connection refused"),
	}
	svc := newTestService(repo, oracle)

	result, err := svc.Analyse(context.Background(), uuid.New(), []int{6})
	require.NoError(t, err)

	// Both sources fell back to 0.1, so every combined risk is 0.1.
	for _, s := range []ConditionScore{
		result.ConditionRisks.Diabetes,
		result.ConditionRisks.Heart,
		result.ConditionRisks.Stroke,
	} {
		assert.Equal(t, 0.1, s.SymptomScore)
		assert.Equal(t, 0.1, s.PredictionScore)
		assert.Equal(t, 0.1, s.Risk)
		assert.Equal(t, RiskLow, s.Level)
	}
}

func TestAnalyse_EmergencySymptomScenario(t *testing.T) {
	repo := &stubRepo{snapshot: testSnapshot()}
	oracle := &stubOracle{
		symptomScores: ConditionValues{Diabetes: 0.2, Heart: 0.1, Stroke: 0.1},
		predictions:   ConditionValues{Diabetes: 0.3, Heart: 0.2, Stroke: 0.1},
	}
	svc := newTestService(repo, oracle)

	result, err := svc.Analyse(context.Background(), uuid.New(), []int{1})
	require.NoError(t, err)

	assert.Equal(t, 0.24, result.ConditionRisks.Diabetes.Risk)
	assert.Equal(t, RiskModerate, result.ConditionRisks.Diabetes.Level)

	// Symptom 1 is a diabetes emergency symptom: triage overrides the
	// moderate computed risk.
	assert.Equal(t, LevelEmergency, result.Triage.Diabetes.Level)
	assert.Equal(t, LevelEmergency, result.Triage.Overall.Level)
}

func TestAnalyse_PersistenceFailureIsSwallowed(t *testing.T) {
	repo := &stubRepo{snapshot: testSnapshot(), saveErr: errors.New("disk full")}
	oracle := &stubOracle{
		symptomScores: ConditionValues{Diabetes: 0.5, Heart: 0.5, Stroke: 0.5},
		predictions:   ConditionValues{Diabetes: 0.5, Heart: 0.5, Stroke: 0.5},
	}
	svc := newTestService(repo, oracle)

	result, err := svc.Analyse(context.Background(), uuid.New(), []int{6})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, repo.saved, 1)
}

func TestAnalyse_SavesRecordWithInputs(t *testing.T) {
	repo := &stubRepo{snapshot: testSnapshot()}
	oracle := &stubOracle{}
	svc := newTestService(repo, oracle)

	userID := uuid.New()
	result, err := svc.Analyse(context.Background(), userID, []int{4, 6})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	record := repo.saved[0]
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, []int{4, 6}, record.Symptoms)
	assert.Equal(t, *result, record.Result)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestAnalyse_PredictionFeaturesDerivedFromSnapshot(t *testing.T) {
	snapshot := testSnapshot()
	repo := &stubRepo{snapshot: snapshot}
	oracle := &stubOracle{}
	svc := newTestService(repo, oracle)

	_, err := svc.Analyse(context.Background(), uuid.New(), []int{6})
	require.NoError(t, err)
	require.Equal(t, 1, oracle.predictCalls)

	features := oracle.lastFeatures
	assert.Equal(t, 140.0, features.Diabetes.BloodPressure) // systolic of "140/90"
	assert.Equal(t, 2, features.Diabetes.Pregnancies)
	assert.Equal(t, "typical angina", features.Heart.ChestPainType)
	assert.Equal(t, 1, features.Stroke.Hypertension)
	assert.Equal(t, "smokes", features.Stroke.SmokingStatus)
}

func TestBuildPredictionFeatures_DefaultsForAbsentRows(t *testing.T) {
	snapshot := &PatientSnapshot{
		Metrics: HealthMetrics{Glucose: 100, BMI: 24, BloodPressure: "120/80"},
		Profile: Profile{Gender: "female", Age: 33},
	}
	features := BuildPredictionFeatures(snapshot)

	assert.Equal(t, 0, features.Diabetes.Pregnancies)
	assert.Equal(t, "asymptomatic", features.Heart.ChestPainType)
	assert.Equal(t, 0, features.Stroke.Hypertension)
	assert.Equal(t, "never smoked", features.Stroke.SmokingStatus)
}
