package auth

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, account *Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password) VALUES ($1, $2, $3)`,
		account.ID, account.Email, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password FROM users WHERE email = $1`, email).Scan(
		&account.ID, &account.Email, &account.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &account, nil
}

func (r *postgresRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password = $1 WHERE email = $2`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
