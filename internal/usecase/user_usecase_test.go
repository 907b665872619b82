package usecase

import (
	"context"
	"testing"

	"pharmacare/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser_HashesPasswordAndNormalisesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, quietLogger())

	user, err := uc.RegisterUser(context.Background(), " Budi ", "  Budi@Example.COM ", "rahasia123", "0812")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.Equal(t, "Budi", user.Name)
	assert.NotEqual(t, "rahasia123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("rahasia123")))
}

func TestRegisterUser_Validation(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(), quietLogger())

	tests := []struct {
		name, userName, email, password string
	}{
		{"empty name", " ", "a@b.co", "rahasia123"},
		{"email without at", "Budi", "budi.example.com", "rahasia123"},
		{"email without tld", "Budi", "budi@example", "rahasia123"},
		{"short password", "Budi", "budi@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterUser(context.Background(), tt.userName, tt.email, tt.password, "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(), quietLogger())
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia123", "")
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, "Budi", "BUDI@example.com", "rahasia456", "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthenticateUser(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(), quietLogger())
	ctx := context.Background()

	registered, err := uc.RegisterUser(ctx, "Budi", "budi@example.com", "rahasia123", "")
	require.NoError(t, err)

	user, err := uc.AuthenticateUser(ctx, "Budi@Example.com", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = uc.AuthenticateUser(ctx, "budi@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.AuthenticateUser(ctx, "nobody@example.com", "rahasia123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
