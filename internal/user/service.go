package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	SaveProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SaveProfile stores the demographic fields, deriving age from the date
// of birth when present.
func (s *service) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile.DateOfBirth != nil {
		profile.Age = deriveAge(*profile.DateOfBirth, time.Now())
	}
	return s.repo.UpdateProfile(ctx, profile)
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	hash, err := s.repo.GetPasswordHash(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)) != nil {
		return ErrPasswordIncorrect
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(newHash))
}

// DeleteAccount verifies the password then removes the user and all
// dependent rows.
func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	hash, err := s.repo.GetPasswordHash(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrPasswordIncorrect
	}
	return s.repo.Delete(ctx, id)
}
