package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
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

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Order, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Order, error)
	Create(ctx context.Context, workspaceID, actorID uint64, payload dto.CreateOrderDTO) (*entities.Order, error)
	Update(ctx context.Context, workspaceID, actorID, id uint64, payload dto.UpdateOrderDTO) (*entities.Order, error)
	ChangeStatus(ctx context.Context, workspaceID, actorID, id uint64, newStatus string) (*entities.Order, error)
	Delete(ctx context.Context, workspaceID, actorID, id uint64) error
}

type OrderService struct {
	orderRepo  repositories.OrderRepositoryInterface
	clientRepo repositories.ClientRepositoryInterface
	txManager  repositories.TxManagerInterface
	bus        *eventbus.Bus
	logger     *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		txManager:  txManager,
		bus:        bus,
		logger:     logger,
	}
}

func (s *OrderService) GetOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Order, uint64, error) {
	return s.orderRepo.GetOrders(ctx, workspaceID, filter)
}

func (s *OrderService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Order, error) {
	return s.orderRepo.FindOrder(ctx, workspaceID, id)
}

func (s *OrderService) Create(ctx context.Context, workspaceID, actorID uint64, payload dto.CreateOrderDTO) (*entities.Order, error) {
	if _, err := s.clientRepo.FindByID(ctx, workspaceID, payload.ClientID); err != nil {
		return nil, apperrors.NewBadRequestError("client not found", err)
	}

	order := entities.Order{
		WorkspaceID:        workspaceID,
		ClientID:           payload.ClientID,
		PONumber:           payload.PONumber,
		ProductType:        payload.ProductType,
		Description:        payload.Description,
		TotalQty:           payload.TotalQty,
		UnitPrice:          payload.UnitPrice,
		TotalValue:         float64(payload.TotalQty) * payload.UnitPrice,
		Status:             constants.OrderDraft,
		TargetDeliveryDate: payload.TargetDeliveryDate,
	}

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		newID, err = s.orderRepo.Create(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.FindOrder(ctx, workspaceID, newID)
	if err != nil {
		return nil, err
	}
	s.publishAudit(ctx, workspaceID, actorID, newID, "CREATE", nil, created)
	return created, nil
}

func (s *OrderService) Update(ctx context.Context, workspaceID, actorID, id uint64, payload dto.UpdateOrderDTO) (*entities.Order, error) {
	order, err := s.orderRepo.FindOrder(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == constants.OrderClosed || order.Status == constants.OrderCancelled {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("order in status %s cannot be edited", order.Status), nil)
	}
	before := *order

	if payload.ClientID != nil {
		if _, err := s.clientRepo.FindByID(ctx, workspaceID, *payload.ClientID); err != nil {
			return nil, apperrors.NewBadRequestError("client not found", err)
		}
		order.ClientID = *payload.ClientID
	}
	if payload.ProductType != nil {
		order.ProductType = *payload.ProductType
	}
	if payload.Description != nil {
		order.Description = payload.Description
	}
	if payload.TotalQty != nil {
		order.TotalQty = *payload.TotalQty
	}
	if payload.UnitPrice != nil {
		order.UnitPrice = *payload.UnitPrice
	}
	if payload.TargetDeliveryDate != nil {
		order.TargetDeliveryDate = payload.TargetDeliveryDate
	}
	order.TotalValue = float64(order.TotalQty) * order.UnitPrice

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.orderRepo.Update(ctx, tx, workspaceID, id, *order)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.FindOrder(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	s.publishAudit(ctx, workspaceID, actorID, id, "UPDATE", &before, updated)
	return updated, nil
}

// ChangeStatus applies one edge of the order status graph. DELIVERED
// additionally stamps the actual delivery date.
func (s *OrderService) ChangeStatus(ctx context.Context, workspaceID, actorID, id uint64, newStatus string) (*entities.Order, error) {
	order, err := s.orderRepo.FindOrder(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !constants.CanTransition(constants.OrderTransitions, order.Status, newStatus) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, newStatus), nil)
	}
	before := *order

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.orderRepo.UpdateStatus(ctx, tx, workspaceID, id, newStatus); err != nil {
			return err
		}
		if newStatus == constants.OrderDelivered {
			return s.orderRepo.SetActualDelivery(ctx, tx, workspaceID, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.FindOrder(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	s.publishAudit(ctx, workspaceID, actorID, id, "STATUS_CHANGE", &before, updated)
	s.bus.Publish(ctx, events.OrderStatusChanged{
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		OrderID:     id,
		PONumber:    order.PONumber,
		From:        before.Status,
		To:          newStatus,
	})
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, workspaceID, actorID, id uint64) error {
	order, err := s.orderRepo.FindOrder(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if order.Status != constants.OrderDraft {
		return apperrors.NewBadRequestError("only draft orders can be deleted", nil)
	}
	if err := s.orderRepo.Delete(ctx, workspaceID, id); err != nil {
		return err
	}
	s.publishAudit(ctx, workspaceID, actorID, id, "DELETE", order, nil)
	return nil
}

func (s *OrderService) publishAudit(ctx context.Context, workspaceID, actorID, id uint64, action string, before, after *entities.Order) {
	var beforeJSON, afterJSON json.RawMessage
	if before != nil {
		beforeJSON, _ = json.Marshal(before)
	}
	if after != nil {
		afterJSON, _ = json.Marshal(after)
	}
	s.bus.Publish(ctx, events.EntityMutated{
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		EntityType:  "order",
		EntityID:    id,
		Action:      action,
		Before:      beforeJSON,
		After:       afterJSON,
		BatchID:     uuid.NewString(),
	})
}
