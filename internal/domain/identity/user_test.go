package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  bool
		errCode  string
	}{
		{
			name:     "valid user",
			username: "alice",
			email:    "alice@example.com",
			password: "Secret123",
			wantErr:  false,
		},
		{
			name:     "username too short",
			username: "ab",
			email:    "ab@example.com",
			password: "Secret123",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 51),
			email:    "long@example.com",
			password: "Secret123",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "username with invalid characters",
			username: "alice-smith",
			email:    "alice@example.com",
			password: "Secret123",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "username starting with underscore",
			username: "_alice",
			email:    "alice@example.com",
			password: "Secret123",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "invalid email",
			username: "alice",
			email:    "not-an-email",
			password: "Secret123",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "password without uppercase",
			username: "alice",
			email:    "alice@example.com",
			password: "secret123",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "password without digit",
			username: "alice",
			email:    "alice@example.com",
			password: "SecretPass",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
		{
			name:     "password too short",
			username: "alice",
			email:    "alice@example.com",
			password: "Ab1",
			wantErr:  true,
			errCode:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.username, tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.errCode, domainErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, RoleCustomer, user.Role)
			assert.True(t, user.IsActive)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, tt.password, user.PasswordHash)
		})
	}
}

func TestNewUser_NormalizesEmail(t *testing.T) {
	user, err := NewUser("alice", "  Alice@Example.COM ", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "Secret123")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("Secret123"))
	assert.False(t, user.VerifyPassword("WrongPass1"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "Secret123")
	require.NoError(t, err)
	oldHash := user.PasswordHash

	err = user.ChangePassword("weak")
	require.Error(t, err)
	assert.Equal(t, oldHash, user.PasswordHash)

	err = user.ChangePassword("NewSecret456")
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, user.PasswordHash)
	assert.True(t, user.VerifyPassword("NewSecret456"))
	assert.False(t, user.VerifyPassword("Secret123"))
}

func TestUser_UpdateProfile(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "Secret123")
	require.NoError(t, err)

	err = user.UpdateProfile("alice2", "")
	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)

	err = user.UpdateProfile("", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice2", user.Username)
	assert.Equal(t, "new@example.com", user.Email)

	err = user.UpdateProfile("x", "")
	require.Error(t, err)
	assert.Equal(t, "alice2", user.Username)
}

func TestUser_Roles(t *testing.T) {
	user, err := NewUser("bob", "bob@example.com", "Secret123")
	require.NoError(t, err)

	assert.False(t, user.IsAdmin())
	user.PromoteToAdmin()
	assert.True(t, user.IsAdmin())
	assert.Equal(t, RoleAdmin, user.Role)
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewUser("bob", "bob@example.com", "Secret123")
	require.NoError(t, err)

	user.Deactivate()
	assert.False(t, user.IsActive)
	user.Activate()
	assert.True(t, user.IsActive)
}
