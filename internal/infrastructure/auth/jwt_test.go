package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hris/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		RefreshSecret:          "test-refresh-secret-for-unit-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "hris-backend-test",
	})
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	employeeID := uuid.New()
	roleID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Username:    "jdoe",
		EmployeeID:  &employeeID,
		RoleIDs:     []uuid.UUID{roleID},
		Permissions: []string{"employee:read", "employee:update"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.Before(pair.RefreshTokenExpiresAt))

	t.Run("access token carries identity and permissions", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "jdoe", claims.Username)
		assert.Equal(t, employeeID.String(), claims.EmployeeID)
		assert.Equal(t, []string{roleID.String()}, claims.RoleIDs)
		assert.True(t, claims.HasPermission("employee:read"))
		assert.False(t, claims.HasPermission("employee:delete"))
	})

	t.Run("refresh token validates as refresh type", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Equal(t, userID.String(), claims.UserID)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-key",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "other",
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "intruder",
		})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-unit-tests-only",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "hris-backend-test",
		})
		pair, err := expired.GenerateTokenPair(GenerateTokenInput{
			UserID:   uuid.New(),
			Username: "late",
		})
		require.NoError(t, err)

		_, err = expired.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestClaims_Helpers(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Username:    "jdoe",
		Permissions: []string{"asset:read", "asset:assign"},
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	t.Run("GetUserUUID", func(t *testing.T) {
		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("GetEmployeeUUID returns nil when absent", func(t *testing.T) {
		parsed, err := claims.GetEmployeeUUID()
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("HasAnyPermission", func(t *testing.T) {
		assert.True(t, claims.HasAnyPermission("asset:delete", "asset:read"))
		assert.False(t, claims.HasAnyPermission("asset:delete", "asset:create"))
	})

	t.Run("GetRemainingTTL positive for live token", func(t *testing.T) {
		assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	t.Run("blacklists a JTI until ttl expires", func(t *testing.T) {
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		blocked, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blocked)

		blocked, err = bl.IsBlacklisted(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("expired entries are pruned", func(t *testing.T) {
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

		blocked, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("user-level revocation invalidates earlier tokens", func(t *testing.T) {
		issuedBefore := time.Now().Add(-time.Minute)
		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err := bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalidated)

		issuedAfter := time.Now().Add(time.Minute)
		invalidated, err = bl.IsUserTokenInvalidated(ctx, "user-1", issuedAfter)
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}
