package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"apparel-erp/internal/events"
	"apparel-erp/internal/repositories"
	"apparel-erp/internal/services"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/eventbus"
)

// NotificationListener turns domain events into in-app notifications.
// Delivery is best-effort; a failed insert is logged by the bus and
// never retried.
type NotificationListener struct {
	notificationService services.NotificationServiceInterface
	userRepo            repositories.UserRepositoryInterface
	logger              *zap.Logger
}

func NewNotificationListener(
	notificationService services.NotificationServiceInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationService: notificationService,
		userRepo:            userRepo,
		logger:              logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderStatusChangedName, l.handleOrderStatusChanged)
	bus.Subscribe(events.WorkOrderAssignedName, l.handleWorkOrderAssigned)
}

// handleOrderStatusChanged tells every manager in the workspace about
// the transition.
func (l *NotificationListener) handleOrderStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	managers, err := l.userRepo.FindByRoles(ctx, e.WorkspaceID,
		[]string{constants.RoleAdmin, constants.RoleManager})
	if err != nil {
		return fmt.Errorf("load managers: %w", err)
	}

	subject := fmt.Sprintf("Order %s is now %s", e.PONumber, e.To)
	body := fmt.Sprintf("Order %s moved from %s to %s.", e.PONumber, e.From, e.To)

	for _, manager := range managers {
		if manager.ID == e.ActorID {
			continue
		}
		if err := l.notificationService.Notify(ctx, e.WorkspaceID, manager.ID, subject, body); err != nil {
			l.logger.Error("failed to notify manager of order status change",
				zap.Uint64("recipient_id", manager.ID), zap.Error(err))
		}
	}
	return nil
}

func (l *NotificationListener) handleWorkOrderAssigned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.WorkOrderAssigned)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	subject := fmt.Sprintf("Work order %s assigned to you", e.Code)
	body := fmt.Sprintf("Maintenance work order %s has been assigned to you.", e.Code)
	return l.notificationService.Notify(ctx, e.WorkspaceID, e.AssigneeID, subject, body)
}
