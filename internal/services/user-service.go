package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.User, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.User, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateUserDTO) (*entities.User, error)
	Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	Deactivate(ctx context.Context, workspaceID, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.GetUsers(ctx, workspaceID, filter)
}

func (s *UserService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, workspaceID, id)
}

func (s *UserService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateUserDTO) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.userRepo.Create(ctx, entities.User{
		WorkspaceID: workspaceID,
		FullName:    payload.FullName,
		Email:       payload.Email,
		Password:    string(hash),
		Role:        payload.Role,
	})
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, workspaceID, id)
}

func (s *UserService) Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.FullName.Valid {
		user.FullName = payload.FullName.String
	}
	if payload.Email.Valid {
		user.Email = payload.Email.String
	}
	if payload.Role.Valid {
		user.Role = payload.Role.String
	}
	if payload.Active.Valid {
		user.Active = payload.Active.Bool
	}

	if err := s.userRepo.Update(ctx, workspaceID, id, *user); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, workspaceID, id)
}

func (s *UserService) Deactivate(ctx context.Context, workspaceID, id uint64) error {
	return s.userRepo.Delete(ctx, workspaceID, id)
}
