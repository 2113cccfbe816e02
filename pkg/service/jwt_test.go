package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/errors"
)

func newTestJWTService(secret string) JWTService {
	return NewJWTService(secret, 15*time.Minute, 24*time.Hour, zap.NewNop())
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService("test-secret")

	access, refresh, err := svc.GenerateTokens(42, 7, constants.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, uint64(7), claims.WorkspaceID)
	assert.Equal(t, constants.RoleManager, claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	access, _, err := newTestJWTService("secret-a").GenerateTokens(1, 1, constants.RoleViewer)
	require.NoError(t, err)

	_, err = newTestJWTService("secret-b").ValidateToken(access)
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, errors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, 1, constants.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestTokenTTLAccessors(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour, zap.NewNop())

	assert.Equal(t, 15*time.Minute, svc.GetAccessTokenTTL())
	assert.Equal(t, 24*time.Hour, svc.GetRefreshTokenTTL())
}
