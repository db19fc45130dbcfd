package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	UpdateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, profile *Profile) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, dob = $3, age = $4, gender = $5,
		     country = $6, address = $7, phone_number = $8
		 WHERE id = $9`,
		profile.FirstName, profile.LastName, profile.DateOfBirth, profile.Age,
		nullable(profile.Gender), nullable(profile.Country), nullable(profile.Address),
		nullable(profile.PhoneNumber), profile.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile Profile
	var dob sql.NullTime
	var gender, country, address, phone sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, ''),
		        dob, COALESCE(age, 0), gender, country, address, phone_number
		 FROM users WHERE id = $1`, id).Scan(
		&profile.ID, &profile.Email, &profile.FirstName, &profile.LastName,
		&dob, &profile.Age, &gender, &country, &address, &phone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	if dob.Valid {
		profile.DateOfBirth = &dob.Time
	}
	profile.Gender = gender.String
	profile.Country = country.String
	profile.Address = address.String
	profile.PhoneNumber = phone.String
	return &profile, nil
}

func (r *postgresRepo) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		`SELECT password FROM users WHERE id = $1`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query password: %w", err)
	}
	return hash, nil
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Delete removes the user and every dependent row in one transaction.
func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	dependents := []string{
		`DELETE FROM health_metrics WHERE user_id = $1`,
		`DELETE FROM health_metrics_history WHERE user_id = $1`,
		`DELETE FROM medical_information WHERE user_id = $1`,
		`DELETE FROM lifestyle_factors WHERE user_id = $1`,
		`DELETE FROM symptom_analysis WHERE user_id = $1`,
	}
	for _, query := range dependents {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return tx.Commit()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
