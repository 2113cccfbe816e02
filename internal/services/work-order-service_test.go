package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/eventbus"
)

func newWorkOrderFixture(status string) (*fakeWorkOrderRepo, WorkOrderServiceInterface) {
	workOrderRepo := &fakeWorkOrderRepo{
		workOrder: &entities.MaintenanceWorkOrder{
			ID:          1,
			WorkspaceID: 7,
			Code:        "WO-2026-0001",
			AssetID:     2,
			Title:       "Replace needle bar",
			Status:      status,
		},
	}
	svc := NewWorkOrderService(workOrderRepo, &fakeAssetRepo{}, &fakeScheduleRepo{},
		&fakeSequenceRepo{}, &fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
	return workOrderRepo, svc
}

func TestChangeWorkOrderStatusInvalidTransition(t *testing.T) {
	_, svc := newWorkOrderFixture(constants.WorkOrderOpen)

	_, err := svc.ChangeStatus(context.Background(), 7, 1, constants.WorkOrderCompleted)
	assert.ErrorContains(t, err, "cannot transition work order")
	requireBadRequest(t, err)
}

func TestChangeWorkOrderStatusFromTerminalState(t *testing.T) {
	_, svc := newWorkOrderFixture(constants.WorkOrderCancelled)

	_, err := svc.ChangeStatus(context.Background(), 7, 1, constants.WorkOrderOpen)
	requireBadRequest(t, err)
}

func TestAssignWorkOrderInProgress(t *testing.T) {
	_, svc := newWorkOrderFixture(constants.WorkOrderInProgress)

	_, err := svc.Assign(context.Background(), 7, 42, 1, dto.AssignWorkOrderDTO{AssigneeID: 9})
	assert.ErrorContains(t, err, "cannot be assigned")
	requireBadRequest(t, err)
}
