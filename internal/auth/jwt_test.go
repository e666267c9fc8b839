package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinefind/dinefind/internal/domain"
)

const testSecret = "test-secret-key-for-jwt-signing"

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour)

	token, err := manager.GenerateToken("user-123", "diner@example.com", domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "diner@example.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour)
	other := NewJWTManager("a-different-secret-entirely", time.Hour)

	token, err := manager.GenerateToken("user-123", "diner@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewJWTManager(testSecret, -time.Minute)

	token, err := manager.GenerateToken("user-123", "diner@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour)

	_, err := manager.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenValidatorAdaptsClaims(t *testing.T) {
	manager := NewJWTManager(testSecret, time.Hour)
	validate := manager.TokenValidator()

	token, err := manager.GenerateToken("admin-1", "ops@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, err = validate("garbage")
	assert.Error(t, err)
}
