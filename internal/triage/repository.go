package triage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

// PatientSnapshot assembles the read-only patient view from its four
// source tables. Metrics and profile are required; medical info and
// lifestyle default to absent.
func (r *postgresRepo) PatientSnapshot(ctx context.Context, userID uuid.UUID) (*PatientSnapshot, error) {
	snapshot := &PatientSnapshot{}

	err := r.db.QueryRowContext(ctx,
		`SELECT height, weight, bmi, blood_pressure, heart_rate, max_heart_rate, skin_thickness, glucose, cholesterol
		 FROM health_metrics WHERE user_id = $1`, userID).Scan(
		&snapshot.Metrics.Height,
		&snapshot.Metrics.Weight,
		&snapshot.Metrics.BMI,
		&snapshot.Metrics.BloodPressure,
		&snapshot.Metrics.HeartRate,
		&snapshot.Metrics.MaxHeartRate,
		&snapshot.Metrics.SkinThickness,
		&snapshot.Metrics.Glucose,
		&snapshot.Metrics.Cholesterol,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientDataMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read health metrics: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(gender, ''), COALESCE(age, 0) FROM users WHERE id = $1`, userID).Scan(
		&snapshot.Profile.Gender,
		&snapshot.Profile.Age,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientDataMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var medical MedicalInfo
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(conditions, ''), COALESCE(medications, ''), COALESCE(allergies, ''),
		        COALESCE(pregnancy, 0), COALESCE(blood_type, ''), COALESCE(chest_pain_type, ''), COALESCE(hypertension, FALSE)
		 FROM medical_information WHERE user_id = $1`, userID).Scan(
		&medical.Conditions,
		&medical.Medications,
		&medical.Allergies,
		&medical.Pregnancy,
		&medical.BloodType,
		&medical.ChestPainType,
		&medical.Hypertension,
	)
	switch err {
	case nil:
		snapshot.Medical = &medical
	case sql.ErrNoRows:
		// optional
	default:
		return nil, fmt.Errorf("failed to read medical information: %w", err)
	}

	var lifestyle Lifestyle
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(smoking, FALSE), COALESCE(alcohol_consumption, FALSE), COALESCE(exercise_frequency, '')
		 FROM lifestyle_factors WHERE user_id = $1`, userID).Scan(
		&lifestyle.Smoking,
		&lifestyle.AlcoholConsumption,
		&lifestyle.ExerciseFrequency,
	)
	switch err {
	case nil:
		snapshot.Lifestyle = &lifestyle
	case sql.ErrNoRows:
		// optional
	default:
		return nil, fmt.Errorf("failed to read lifestyle factors: %w", err)
	}

	return snapshot, nil
}

// SaveAnalysis appends one analysis row inside a transaction, with the
// structured parts serialized as JSON blobs.
func (r *postgresRepo) SaveAnalysis(ctx context.Context, record *AnalysisRecord) error {
	symptomsJSON, err := json.Marshal(record.Symptoms)
	if err != nil {
		return err
	}
	resultsJSON, err := json.Marshal(record.Result.ConditionRisks)
	if err != nil {
		return err
	}
	triageJSON, err := json.Marshal(record.Result.Triage)
	if err != nil {
		return err
	}
	riskFactorsJSON, err := json.Marshal(record.Result.RiskFactors)
	if err != nil {
		return err
	}
	featureImportanceJSON, err := json.Marshal(record.Result.FeatureImportance)
	if err != nil {
		return err
	}
	recommendationsJSON, err := json.Marshal(record.Result.Recommendations)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO symptom_analysis
		 (id, user_id, symptoms, results, triage, risk_factors, feature_importance, recommendations, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID, record.UserID, symptomsJSON, resultsJSON, triageJSON,
		riskFactorsJSON, featureImportanceJSON, recommendationsJSON, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return tx.Commit()
}

const listAnalysesQuery = `
	SELECT id, user_id, symptoms, results, triage, risk_factors, feature_importance, recommendations, created_at
	FROM symptom_analysis
	WHERE user_id = $1
	ORDER BY created_at DESC`

// ListAnalyses returns every stored analysis for the user, newest first.
func (r *postgresRepo) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]AnalysisRecord, error) {
	rows, err := r.db.QueryContext(ctx, listAnalysesQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	records := []AnalysisRecord{}
	for rows.Next() {
		record, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// LatestAnalysis returns the most recent analysis, or ErrNotFound.
func (r *postgresRepo) LatestAnalysis(ctx context.Context, userID uuid.UUID) (*AnalysisRecord, error) {
	row := r.db.QueryRowContext(ctx, listAnalysesQuery+` LIMIT 1`, userID)
	record, err := scanAnalysis(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func scanAnalysis(scan func(dest ...any) error) (*AnalysisRecord, error) {
	var record AnalysisRecord
	var symptomsJSON, resultsJSON, triageJSON []byte
	var riskFactorsJSON, featureImportanceJSON, recommendationsJSON []byte

	err := scan(
		&record.ID,
		&record.UserID,
		&symptomsJSON,
		&resultsJSON,
		&triageJSON,
		&riskFactorsJSON,
		&featureImportanceJSON,
		&recommendationsJSON,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, blob := range []struct {
		data []byte
		dest any
	}{
		{symptomsJSON, &record.Symptoms},
		{resultsJSON, &record.Result.ConditionRisks},
		{triageJSON, &record.Result.Triage},
		{riskFactorsJSON, &record.Result.RiskFactors},
		{featureImportanceJSON, &record.Result.FeatureImportance},
		{recommendationsJSON, &record.Result.Recommendations},
	} {
		if len(blob.data) == 0 {
			continue
		}
		if err := json.Unmarshal(blob.data, blob.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis blob: %w", err)
		}
	}

	return &record, nil
}
