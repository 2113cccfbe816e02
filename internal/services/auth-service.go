package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/repositories"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo         repositories.UserRepositoryInterface
	workspaceRepo    repositories.WorkspaceRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	jwtService       service.JWTService
	logger           *zap.Logger
	maxLoginAttempts int64
	lockoutDuration  time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	workspaceRepo repositories.WorkspaceRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	maxLoginAttempts int,
	lockoutDuration time.Duration,
) AuthServiceInterface {
	return &AuthService{
		userRepo:         userRepo,
		workspaceRepo:    workspaceRepo,
		cacheRepo:        cacheRepo,
		jwtService:       jwtService,
		logger:           logger,
		maxLoginAttempts: int64(maxLoginAttempts),
		lockoutDuration:  lockoutDuration,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	workspace, err := s.workspaceRepo.FindBySlug(ctx, payload.Workspace)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	attemptsKey := fmt.Sprintf("login_attempts:%d:%s", workspace.ID, payload.Email)
	if locked, err := s.isLockedOut(ctx, attemptsKey); err == nil && locked {
		return nil, apperrors.NewHttpError(429, "too many failed attempts, try again later", nil, nil)
	}

	user, err := s.userRepo.FindByEmail(ctx, workspace.ID, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordFailure(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		s.recordFailure(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	// Successful login clears the counter.
	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.WorkspaceID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponseDTO{
		User: dto.AuthUserDTO{
			ID:          user.ID,
			WorkspaceID: user.WorkspaceID,
			FullName:    user.FullName,
			Email:       user.Email,
			Role:        user.Role,
		},
		Tokens: dto.TokenPairDTO{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		},
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Re-check the account so a deactivated user cannot keep rotating
	// tokens until the refresh TTL runs out.
	user, err := s.userRepo.FindByID(ctx, claims.WorkspaceID, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.Active {
		return nil, apperrors.ErrForbidden
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.WorkspaceID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}

func (s *AuthService) isLockedOut(ctx context.Context, key string) (bool, error) {
	val, err := s.cacheRepo.Get(ctx, key)
	if err != nil || val == "" {
		return false, err
	}
	attempts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, nil
	}
	return attempts >= s.maxLoginAttempts, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.lockoutDuration); err != nil {
			s.logger.Warn("failed to set lockout window", zap.Error(err))
		}
	}
}
