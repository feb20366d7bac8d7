package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainerrors "helios/internal/domain/errors"
	"helios/internal/errors"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("Abc123!@")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Abc123!@", hash)

	assert.True(t, hasher.Check("Abc123!@", hash))
	assert.False(t, hasher.Check("Abc123!#", hash))
	assert.False(t, hasher.Check("Abc123!@", "not-a-hash"))
}

func TestBcryptHasher_HashProducesDifferentSalts(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("Abc123!@")
	require.NoError(t, err)
	second, err := hasher.Hash("Abc123!@")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid password", password: "Abc123!@"},
		{name: "valid longer password", password: "Sunlight#2024ok"},
		{name: "too short", password: "Ab1!", wantErr: "at least 8 characters"},
		{name: "missing uppercase", password: "abc123!@", wantErr: "uppercase letter"},
		{name: "missing lowercase", password: "ABC123!@", wantErr: "lowercase letter"},
		{name: "missing number", password: "Abcdef!@", wantErr: "one number"},
		{name: "missing special", password: "Abc12345", wantErr: "special character"},
		{name: "forbidden word", password: "Password123!", wantErr: "forbidden words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBcryptHasher_ValidatePasswordStrength_ErrorIdentity(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	err := hasher.ValidatePasswordStrength("short")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	err = hasher.ValidatePasswordStrength("Admin123!")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordForbiddenWords))
}
