package services

import (
	"context"

	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type WorkspaceServiceInterface interface {
	GetWorkspaces(ctx context.Context, filter types.Filter) ([]entities.Workspace, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Workspace, error)
	Create(ctx context.Context, payload dto.CreateWorkspaceDTO) (*entities.Workspace, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateWorkspaceDTO) (*entities.Workspace, error)
}

type WorkspaceService struct {
	workspaceRepo repositories.WorkspaceRepositoryInterface
	logger        *zap.Logger
}

func NewWorkspaceService(workspaceRepo repositories.WorkspaceRepositoryInterface, logger *zap.Logger) WorkspaceServiceInterface {
	return &WorkspaceService{workspaceRepo: workspaceRepo, logger: logger}
}

func (s *WorkspaceService) GetWorkspaces(ctx context.Context, filter types.Filter) ([]entities.Workspace, uint64, error) {
	return s.workspaceRepo.GetWorkspaces(ctx, uint64(filter.Limit), uint64(filter.Offset))
}

func (s *WorkspaceService) FindByID(ctx context.Context, id uint64) (*entities.Workspace, error) {
	return s.workspaceRepo.FindByID(ctx, id)
}

func (s *WorkspaceService) Create(ctx context.Context, payload dto.CreateWorkspaceDTO) (*entities.Workspace, error) {
	id, err := s.workspaceRepo.Create(ctx, entities.Workspace{
		Name: payload.Name,
		Slug: payload.Slug,
	})
	if err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindByID(ctx, id)
}

func (s *WorkspaceService) Update(ctx context.Context, id uint64, payload dto.UpdateWorkspaceDTO) (*entities.Workspace, error) {
	if err := s.workspaceRepo.Update(ctx, id, payload.Name); err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindByID(ctx, id)
}
