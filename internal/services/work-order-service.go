package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/events"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/eventbus"
	"apparel-erp/pkg/types"
)

const workOrderCodeKind = "WO"

type WorkOrderServiceInterface interface {
	GetWorkOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceWorkOrder, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceWorkOrder, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateWorkOrderDTO) (*entities.MaintenanceWorkOrder, error)
	Assign(ctx context.Context, workspaceID, actorID, id uint64, payload dto.AssignWorkOrderDTO) (*entities.MaintenanceWorkOrder, error)
	ChangeStatus(ctx context.Context, workspaceID, id uint64, newStatus string) (*entities.MaintenanceWorkOrder, error)
	AddCostLine(ctx context.Context, workspaceID, id uint64, payload dto.AddCostLineDTO) (*entities.MaintenanceWorkOrder, error)
	GetCostLines(ctx context.Context, workspaceID, id uint64) ([]entities.WorkOrderCostLine, error)
	GenerateFromDueSchedules(ctx context.Context, workspaceID uint64) ([]entities.MaintenanceWorkOrder, error)
}

type WorkOrderService struct {
	workOrderRepo repositories.WorkOrderRepositoryInterface
	assetRepo     repositories.AssetRepositoryInterface
	scheduleRepo  repositories.ScheduleRepositoryInterface
	sequenceRepo  repositories.SequenceRepositoryInterface
	txManager     repositories.TxManagerInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewWorkOrderService(
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	scheduleRepo repositories.ScheduleRepositoryInterface,
	sequenceRepo repositories.SequenceRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) WorkOrderServiceInterface {
	return &WorkOrderService{
		workOrderRepo: workOrderRepo,
		assetRepo:     assetRepo,
		scheduleRepo:  scheduleRepo,
		sequenceRepo:  sequenceRepo,
		txManager:     txManager,
		bus:           bus,
		logger:        logger,
	}
}

func (s *WorkOrderService) GetWorkOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceWorkOrder, uint64, error) {
	return s.workOrderRepo.GetWorkOrders(ctx, workspaceID, filter)
}

func (s *WorkOrderService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceWorkOrder, error) {
	return s.workOrderRepo.FindByID(ctx, workspaceID, id)
}

func (s *WorkOrderService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateWorkOrderDTO) (*entities.MaintenanceWorkOrder, error) {
	if _, err := s.assetRepo.FindByID(ctx, workspaceID, payload.AssetID); err != nil {
		return nil, apperrors.NewBadRequestError("asset not found", err)
	}

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		code, err := s.sequenceRepo.NextCode(ctx, tx, workspaceID, workOrderCodeKind)
		if err != nil {
			return err
		}
		newID, err = s.workOrderRepo.Create(ctx, tx, entities.MaintenanceWorkOrder{
			WorkspaceID: workspaceID,
			Code:        code,
			AssetID:     payload.AssetID,
			ScheduleID:  payload.ScheduleID,
			Title:       payload.Title,
			Description: payload.Description,
			Status:      constants.WorkOrderOpen,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.workOrderRepo.FindByID(ctx, workspaceID, newID)
}

func (s *WorkOrderService) Assign(ctx context.Context, workspaceID, actorID, id uint64, payload dto.AssignWorkOrderDTO) (*entities.MaintenanceWorkOrder, error) {
	wo, err := s.workOrderRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if wo.Status != constants.WorkOrderOpen && wo.Status != constants.WorkOrderAssigned {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("work order in status %s cannot be assigned", wo.Status), nil)
	}

	if err := s.workOrderRepo.Assign(ctx, workspaceID, id, payload.AssigneeID); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.WorkOrderAssigned{
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		WorkOrderID: id,
		Code:        wo.Code,
		AssigneeID:  payload.AssigneeID,
	})
	return s.workOrderRepo.FindByID(ctx, workspaceID, id)
}

// ChangeStatus walks the work order graph. Completion recomputes the
// cost rollup and advances the generating schedule when there is one.
func (s *WorkOrderService) ChangeStatus(ctx context.Context, workspaceID, id uint64, newStatus string) (*entities.MaintenanceWorkOrder, error) {
	wo, err := s.workOrderRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !constants.CanTransition(constants.WorkOrderTransitions, wo.Status, newStatus) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("cannot transition work order from %s to %s", wo.Status, newStatus), nil)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if newStatus != constants.WorkOrderCompleted {
			return s.workOrderRepo.UpdateStatus(ctx, tx, workspaceID, id, newStatus)
		}
		if err := s.workOrderRepo.Complete(ctx, tx, workspaceID, id); err != nil {
			return err
		}
		if err := s.workOrderRepo.RecalculateCosts(ctx, tx, id); err != nil {
			return err
		}
		if wo.ScheduleID != nil {
			return s.scheduleRepo.Advance(ctx, tx, workspaceID, *wo.ScheduleID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.workOrderRepo.FindByID(ctx, workspaceID, id)
}

func (s *WorkOrderService) AddCostLine(ctx context.Context, workspaceID, id uint64, payload dto.AddCostLineDTO) (*entities.MaintenanceWorkOrder, error) {
	wo, err := s.workOrderRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if wo.Status == constants.WorkOrderCompleted || wo.Status == constants.WorkOrderCancelled {
		return nil, apperrors.NewBadRequestError("cost lines cannot be added to a finished work order", nil)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.workOrderRepo.AddCostLine(ctx, tx, entities.WorkOrderCostLine{
			WorkOrderID: id,
			Kind:        payload.Kind,
			Description: payload.Description,
			Amount:      payload.Amount,
		}); err != nil {
			return err
		}
		return s.workOrderRepo.RecalculateCosts(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	return s.workOrderRepo.FindByID(ctx, workspaceID, id)
}

func (s *WorkOrderService) GetCostLines(ctx context.Context, workspaceID, id uint64) ([]entities.WorkOrderCostLine, error) {
	if _, err := s.workOrderRepo.FindByID(ctx, workspaceID, id); err != nil {
		return nil, err
	}
	return s.workOrderRepo.GetCostLines(ctx, id)
}

// GenerateFromDueSchedules opens a work order for every active schedule
// whose due date has passed. Each schedule is advanced so a second call
// does not duplicate the work.
func (s *WorkOrderService) GenerateFromDueSchedules(ctx context.Context, workspaceID uint64) ([]entities.MaintenanceWorkOrder, error) {
	due, err := s.scheduleRepo.FindDue(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	var generated []entities.MaintenanceWorkOrder
	for _, schedule := range due {
		scheduleID := schedule.ID
		var newID uint64
		err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			code, err := s.sequenceRepo.NextCode(ctx, tx, workspaceID, workOrderCodeKind)
			if err != nil {
				return err
			}
			newID, err = s.workOrderRepo.Create(ctx, tx, entities.MaintenanceWorkOrder{
				WorkspaceID: workspaceID,
				Code:        code,
				AssetID:     schedule.AssetID,
				ScheduleID:  &scheduleID,
				Title:       schedule.Title,
				Status:      constants.WorkOrderOpen,
			})
			if err != nil {
				return err
			}
			return s.scheduleRepo.Advance(ctx, tx, workspaceID, scheduleID)
		})
		if err != nil {
			s.logger.Error("failed to generate work order from schedule",
				zap.Uint64("schedule_id", scheduleID), zap.Error(err))
			continue
		}
		wo, err := s.workOrderRepo.FindByID(ctx, workspaceID, newID)
		if err != nil {
			return nil, err
		}
		generated = append(generated, *wo)
	}
	return generated, nil
}
