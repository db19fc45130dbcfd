package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Upsert(ctx context.Context, metrics *Metrics) error
	Get(ctx context.Context, userID uuid.UUID) (*Metrics, error)
	History(ctx context.Context, userID uuid.UUID, period Period) ([]HistoryEntry, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

// Upsert writes the current metrics row and appends a history snapshot
// in the same transaction.
func (r *postgresRepo) Upsert(ctx context.Context, metrics *Metrics) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO health_metrics
		 (user_id, height, weight, bmi, blood_pressure, heart_rate, max_heart_rate, skin_thickness, glucose, cholesterol)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
			height = $2, weight = $3, bmi = $4, blood_pressure = $5, heart_rate = $6,
			max_heart_rate = $7, skin_thickness = $8, glucose = $9, cholesterol = $10`,
		metrics.UserID, metrics.Height, metrics.Weight, metrics.BMI, metrics.BloodPressure,
		metrics.HeartRate, metrics.MaxHeartRate, metrics.SkinThickness, metrics.Glucose, metrics.Cholesterol)
	if err != nil {
		return fmt.Errorf("failed to upsert health metrics: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO health_metrics_history
		 (user_id, height, weight, bmi, blood_pressure, heart_rate, max_heart_rate, skin_thickness, glucose, cholesterol, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		metrics.UserID, metrics.Height, metrics.Weight, metrics.BMI, metrics.BloodPressure,
		metrics.HeartRate, metrics.MaxHeartRate, metrics.SkinThickness, metrics.Glucose,
		metrics.Cholesterol, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append metrics history: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) Get(ctx context.Context, userID uuid.UUID) (*Metrics, error) {
	metrics := &Metrics{UserID: userID}
	err := r.db.QueryRowContext(ctx,
		`SELECT height, weight, bmi, blood_pressure, heart_rate, max_heart_rate, skin_thickness, glucose, cholesterol
		 FROM health_metrics WHERE user_id = $1`, userID).Scan(
		&metrics.Height, &metrics.Weight, &metrics.BMI, &metrics.BloodPressure,
		&metrics.HeartRate, &metrics.MaxHeartRate, &metrics.SkinThickness,
		&metrics.Glucose, &metrics.Cholesterol)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query health metrics: %w", err)
	}
	return metrics, nil
}

// History returns archived snapshots newest first, optionally limited
// to the given period.
func (r *postgresRepo) History(ctx context.Context, userID uuid.UUID, period Period) ([]HistoryEntry, error) {
	query := `SELECT height, weight, bmi, blood_pressure, heart_rate, max_heart_rate, skin_thickness, glucose, cholesterol, recorded_at
		 FROM health_metrics_history WHERE user_id = $1`
	args := []any{userID}

	if cutoff, ok := period.Cutoff(time.Now().UTC()); ok {
		query += ` AND recorded_at >= $2`
		args = append(args, cutoff)
	}
	query += ` ORDER BY recorded_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		entry := HistoryEntry{Metrics: Metrics{UserID: userID}}
		err := rows.Scan(
			&entry.Height, &entry.Weight, &entry.BMI, &entry.BloodPressure,
			&entry.HeartRate, &entry.MaxHeartRate, &entry.SkinThickness,
			&entry.Glucose, &entry.Cholesterol, &entry.RecordedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
