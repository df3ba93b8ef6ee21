package jwt

import (
	"testing"
	"time"

	"clinic-booking-service/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService()
	userID := uuid.New()

	t.Run("Access Token Round Trip", func(t *testing.T) {
		token, tokenID, err := service.GenerateAccessToken(userID, "user@example.com", 3)
		require.NoError(t, err)
		assert.NotEmpty(t, tokenID)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, 3, claims.RoleID)
		assert.Equal(t, AccessToken, claims.TokenType)
		assert.Equal(t, tokenID, claims.TokenID)
	})

	t.Run("Refresh Token Has Refresh Type", func(t *testing.T) {
		token, _, err := service.GenerateRefreshToken(userID, "user@example.com", 3)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, RefreshToken, claims.TokenType)
	})

	t.Run("Wrong Secret Is Rejected", func(t *testing.T) {
		token, _, err := service.GenerateAccessToken(userID, "user@example.com", 3)
		require.NoError(t, err)

		other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Minute})
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired Token Is Rejected", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})
		token, _, err := expired.GenerateAccessToken(userID, "user@example.com", 3)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Garbage Token Is Rejected", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
