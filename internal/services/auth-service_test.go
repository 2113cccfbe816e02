package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/service"
)

const testMaxAttempts = 3

func newAuthFixture(t *testing.T) (*countingCache, AuthServiceInterface) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		users: map[uint64]entities.User{
			1: {
				ID:          1,
				WorkspaceID: 7,
				Email:       "admin@demo.local",
				Password:    string(hash),
				Role:        constants.RoleAdmin,
				Active:      true,
			},
		},
	}
	workspaceRepo := &fakeWorkspaceRepo{
		workspace: &entities.Workspace{ID: 7, Name: "Demo", Slug: "demo"},
	}
	cache := newCountingCache()
	jwtSvc := service.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour, zap.NewNop())

	svc := NewAuthService(userRepo, workspaceRepo, cache, jwtSvc, zap.NewNop(),
		testMaxAttempts, time.Minute)
	return cache, svc
}

func loginPayload(password string) dto.LoginDTO {
	return dto.LoginDTO{Workspace: "demo", Email: "admin@demo.local", Password: password}
}

func TestLoginSuccess(t *testing.T) {
	_, svc := newAuthFixture(t)

	res, err := svc.Login(context.Background(), loginPayload("admin123"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), res.User.ID)
	assert.Equal(t, uint64(7), res.User.WorkspaceID)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), loginPayload("wrong"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	_, svc := newAuthFixture(t)

	for i := 0; i < testMaxAttempts; i++ {
		_, err := svc.Login(context.Background(), loginPayload("wrong"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "attempt %d", i+1)
	}

	// Even the right password is rejected while the lockout holds.
	_, err := svc.Login(context.Background(), loginPayload("admin123"))
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	cache, svc := newAuthFixture(t)

	for i := 0; i < testMaxAttempts-1; i++ {
		_, err := svc.Login(context.Background(), loginPayload("wrong"))
		require.Error(t, err)
	}

	_, err := svc.Login(context.Background(), loginPayload("admin123"))
	require.NoError(t, err)
	assert.Empty(t, cache.counts, "successful login clears the failure counter")

	_, err = svc.Login(context.Background(), loginPayload("admin123"))
	require.NoError(t, err, "no lockout carries over after a success")
}

func TestLoginUnknownWorkspace(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Workspace: "nope", Email: "admin@demo.local", Password: "admin123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
