package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	accounts map[string]*Account
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: map[string]*Account{}}
}

func (r *fakeRepo) Create(ctx context.Context, account *Account) error {
	r.accounts[account.Email] = account
	return nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return account, nil
}

func (r *fakeRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	account, ok := r.accounts[email]
	if !ok {
		return ErrUserNotFound
	}
	account.PasswordHash = passwordHash
	return nil
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	account, err := svc.Register(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", account.Email)
	assert.NotEqual(t, "s3cret", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ana@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	registered, err := svc.Register(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)

	account, err := svc.Login(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), "ana@example.com", "n3w-pass"))

	_, err = svc.Login(context.Background(), "ana@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ana@example.com", "n3w-pass")
	assert.NoError(t, err)
}

func TestResetPassword_UnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.ResetPassword(context.Background(), "nobody@example.com", "n3w-pass")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
