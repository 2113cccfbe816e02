package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

// QCDefectRateThreshold is the defect share above which an inspection
// fails.
const QCDefectRateThreshold = 0.05

type ProductionServiceInterface interface {
	GetRuns(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.ProductionRun, uint64, error)
	FindRun(ctx context.Context, workspaceID, id uint64) (*entities.ProductionRun, error)
	CreateRun(ctx context.Context, workspaceID uint64, payload dto.CreateProductionRunDTO) (*entities.ProductionRun, error)
	UpdateRun(ctx context.Context, workspaceID, id uint64, payload dto.UpdateProductionRunDTO) (*entities.ProductionRun, error)
	StageProgress(ctx context.Context, workspaceID, orderID uint64) ([]entities.StageProgress, error)

	CreateInspection(ctx context.Context, workspaceID, inspectorID uint64, payload dto.CreateQCInspectionDTO) (*entities.QCInspection, error)
	GetInspections(ctx context.Context, workspaceID uint64, runID *uint64, filter types.Filter) ([]entities.QCInspection, uint64, error)
}

type ProductionService struct {
	productionRepo repositories.ProductionRepositoryInterface
	orderRepo      repositories.OrderRepositoryInterface
	logger         *zap.Logger
}

func NewProductionService(
	productionRepo repositories.ProductionRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	logger *zap.Logger,
) ProductionServiceInterface {
	return &ProductionService{
		productionRepo: productionRepo,
		orderRepo:      orderRepo,
		logger:         logger,
	}
}

func (s *ProductionService) GetRuns(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.ProductionRun, uint64, error) {
	return s.productionRepo.GetRuns(ctx, workspaceID, filter)
}

func (s *ProductionService) FindRun(ctx context.Context, workspaceID, id uint64) (*entities.ProductionRun, error) {
	return s.productionRepo.FindRun(ctx, workspaceID, id)
}

func (s *ProductionService) CreateRun(ctx context.Context, workspaceID uint64, payload dto.CreateProductionRunDTO) (*entities.ProductionRun, error) {
	order, err := s.orderRepo.FindOrder(ctx, workspaceID, payload.OrderID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("order not found", err)
	}
	if order.Status != constants.OrderConfirmed && order.Status != constants.OrderInProduction && order.Status != constants.OrderQC {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("order in status %s cannot take production runs", order.Status), nil)
	}

	id, err := s.productionRepo.CreateRun(ctx, entities.ProductionRun{
		WorkspaceID: workspaceID,
		OrderID:     payload.OrderID,
		Stage:       payload.Stage,
		AssetID:     payload.AssetID,
		OperatorID:  payload.OperatorID,
		PlannedQty:  payload.PlannedQty,
		Status:      constants.RunPlanned,
	})
	if err != nil {
		return nil, err
	}
	return s.productionRepo.FindRun(ctx, workspaceID, id)
}

func (s *ProductionService) UpdateRun(ctx context.Context, workspaceID, id uint64, payload dto.UpdateProductionRunDTO) (*entities.ProductionRun, error) {
	run, err := s.productionRepo.FindRun(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.AssetID != nil {
		run.AssetID = payload.AssetID
	}
	if payload.OperatorID != nil {
		run.OperatorID = payload.OperatorID
	}
	if payload.PlannedQty != nil {
		run.PlannedQty = *payload.PlannedQty
	}
	if payload.ActualQty != nil {
		run.ActualQty = *payload.ActualQty
	}
	if payload.Status != nil && *payload.Status != run.Status {
		if !constants.CanTransition(constants.RunTransitions, run.Status, *payload.Status) {
			return nil, apperrors.NewBadRequestError(
				fmt.Sprintf("cannot transition run from %s to %s", run.Status, *payload.Status), nil)
		}
		now := time.Now()
		switch *payload.Status {
		case constants.RunRunning:
			run.StartedAt = &now
		case constants.RunDone:
			run.CompletedAt = &now
		}
		run.Status = *payload.Status
	}

	if err := s.productionRepo.UpdateRun(ctx, workspaceID, id, *run); err != nil {
		return nil, err
	}
	return s.productionRepo.FindRun(ctx, workspaceID, id)
}

func (s *ProductionService) StageProgress(ctx context.Context, workspaceID, orderID uint64) ([]entities.StageProgress, error) {
	if _, err := s.orderRepo.FindOrder(ctx, workspaceID, orderID); err != nil {
		return nil, err
	}
	return s.productionRepo.StageProgress(ctx, workspaceID, orderID)
}

// CreateInspection derives pass/fail from the sampled defect rate.
func (s *ProductionService) CreateInspection(ctx context.Context, workspaceID, inspectorID uint64, payload dto.CreateQCInspectionDTO) (*entities.QCInspection, error) {
	run, err := s.productionRepo.FindRun(ctx, workspaceID, payload.RunID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("production run not found", err)
	}

	defectQty := 0
	for _, count := range payload.DefectReasons {
		if count < 0 {
			return nil, apperrors.NewBadRequestError("defect counts must be non-negative", nil)
		}
		defectQty += count
	}
	if defectQty > payload.SampledQty {
		return nil, apperrors.NewBadRequestError("defect count exceeds sampled quantity", nil)
	}

	insp := entities.QCInspection{
		WorkspaceID:   workspaceID,
		RunID:         run.ID,
		InspectorID:   inspectorID,
		SampledQty:    payload.SampledQty,
		DefectQty:     defectQty,
		DefectReasons: payload.DefectReasons,
		Passed:        float64(defectQty)/float64(payload.SampledQty) <= QCDefectRateThreshold,
		Notes:         payload.Notes,
	}

	id, err := s.productionRepo.CreateInspection(ctx, insp)
	if err != nil {
		return nil, err
	}
	insp.ID = id
	return &insp, nil
}

func (s *ProductionService) GetInspections(ctx context.Context, workspaceID uint64, runID *uint64, filter types.Filter) ([]entities.QCInspection, uint64, error) {
	return s.productionRepo.GetInspections(ctx, workspaceID, runID, filter)
}
