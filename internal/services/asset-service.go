package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

// Asset code prefix for generated codes.
const assetCodeKind = "AST"

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Asset, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Asset, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateAssetDTO) (*entities.Asset, error)
	Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateAssetDTO) (*entities.Asset, error)
}

type AssetService struct {
	assetRepo    repositories.AssetRepositoryInterface
	sequenceRepo repositories.SequenceRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewAssetService(
	assetRepo repositories.AssetRepositoryInterface,
	sequenceRepo repositories.SequenceRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) AssetServiceInterface {
	return &AssetService{
		assetRepo:    assetRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *AssetService) GetAssets(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Asset, uint64, error) {
	return s.assetRepo.GetAssets(ctx, workspaceID, filter)
}

func (s *AssetService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Asset, error) {
	return s.assetRepo.FindByID(ctx, workspaceID, id)
}

// Create issues the code inside the same transaction as the insert, so
// a failed insert never burns a code.
func (s *AssetService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateAssetDTO) (*entities.Asset, error) {
	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		code, err := s.sequenceRepo.NextCode(ctx, tx, workspaceID, assetCodeKind)
		if err != nil {
			return err
		}
		newID, err = s.assetRepo.Create(ctx, tx, entities.Asset{
			WorkspaceID:  workspaceID,
			Code:         code,
			Name:         payload.Name,
			Category:     payload.Category,
			Location:     payload.Location,
			Status:       entities.AssetActive,
			PurchaseDate: payload.PurchaseDate,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.assetRepo.FindByID(ctx, workspaceID, newID)
}

func (s *AssetService) Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateAssetDTO) (*entities.Asset, error) {
	asset, err := s.assetRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		asset.Name = payload.Name.String
	}
	if payload.Category.Valid {
		asset.Category = payload.Category.String
	}
	if payload.Location.Valid {
		asset.Location = &payload.Location.String
	}
	if payload.Status.Valid {
		asset.Status = payload.Status.String
	}

	if err := s.assetRepo.Update(ctx, workspaceID, id, *asset); err != nil {
		return nil, err
	}
	return s.assetRepo.FindByID(ctx, workspaceID, id)
}
