package medical

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Add(ctx context.Context, userID uuid.UUID, info *Info, lifestyle *Lifestyle) error
	Update(ctx context.Context, userID uuid.UUID, info *Info, lifestyle *Lifestyle) error
	Get(ctx context.Context, userID uuid.UUID) (*Record, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

// Add inserts the medical and lifestyle rows in one transaction.
func (r *postgresRepo) Add(ctx context.Context, userID uuid.UUID, info *Info, lifestyle *Lifestyle) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO medical_information
		 (user_id, conditions, medications, allergies, pregnancy, hypertension, blood_type, chest_pain_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, info.Conditions, info.Medications, info.Allergies,
		info.Pregnancy, info.Hypertension, info.BloodType, info.ChestPainType)
	if err != nil {
		return fmt.Errorf("failed to insert medical information: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO lifestyle_factors (user_id, smoking, alcohol_consumption, exercise_frequency)
		 VALUES ($1, $2, $3, $4)`,
		userID, lifestyle.Smoking, lifestyle.AlcoholConsumption, lifestyle.ExerciseFrequency)
	if err != nil {
		return fmt.Errorf("failed to insert lifestyle factors: %w", err)
	}

	return tx.Commit()
}

// Update applies partial medical changes (empty fields keep their
// stored values) and overwrites the lifestyle row.
func (r *postgresRepo) Update(ctx context.Context, userID uuid.UUID, info *Info, lifestyle *Lifestyle) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE medical_information
		 SET conditions = COALESCE(NULLIF($1, ''), conditions),
		     medications = COALESCE(NULLIF($2, ''), medications),
		     allergies = COALESCE(NULLIF($3, ''), allergies),
		     pregnancy = $4,
		     blood_type = COALESCE(NULLIF($5, ''), blood_type),
		     chest_pain_type = COALESCE(NULLIF($6, ''), chest_pain_type),
		     hypertension = $7
		 WHERE user_id = $8`,
		info.Conditions, info.Medications, info.Allergies, info.Pregnancy,
		info.BloodType, info.ChestPainType, info.Hypertension, userID)
	if err != nil {
		return fmt.Errorf("failed to update medical information: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE lifestyle_factors
		 SET smoking = $1, alcohol_consumption = $2, exercise_frequency = $3
		 WHERE user_id = $4`,
		lifestyle.Smoking, lifestyle.AlcoholConsumption, lifestyle.ExerciseFrequency, userID)
	if err != nil {
		return fmt.Errorf("failed to update lifestyle factors: %w", err)
	}

	return tx.Commit()
}

// Get reads both rows; the medical row is required, lifestyle optional.
func (r *postgresRepo) Get(ctx context.Context, userID uuid.UUID) (*Record, error) {
	record := &Record{}
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(conditions, ''), COALESCE(medications, ''), COALESCE(allergies, ''),
		        COALESCE(pregnancy, 0), COALESCE(blood_type, ''), COALESCE(chest_pain_type, ''), COALESCE(hypertension, FALSE)
		 FROM medical_information WHERE user_id = $1`, userID).Scan(
		&record.Medical.Conditions, &record.Medical.Medications, &record.Medical.Allergies,
		&record.Medical.Pregnancy, &record.Medical.BloodType, &record.Medical.ChestPainType,
		&record.Medical.Hypertension)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query medical information: %w", err)
	}

	var lifestyle Lifestyle
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(smoking, FALSE), COALESCE(alcohol_consumption, FALSE), COALESCE(exercise_frequency, '')
		 FROM lifestyle_factors WHERE user_id = $1`, userID).Scan(
		&lifestyle.Smoking, &lifestyle.AlcoholConsumption, &lifestyle.ExerciseFrequency)
	switch err {
	case nil:
		record.Lifestyle = &lifestyle
	case sql.ErrNoRows:
		// optional
	default:
		return nil, fmt.Errorf("failed to query lifestyle factors: %w", err)
	}

	return record, nil
}
