package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
	"apparel-erp/pkg/eventbus"
)

func newOrderFixture(status string) (*fakeOrderRepo, OrderServiceInterface) {
	orderRepo := &fakeOrderRepo{
		order: &entities.Order{
			ID:          1,
			WorkspaceID: 7,
			ClientID:    2,
			PONumber:    "PO-2026-0001",
			Status:      status,
		},
	}
	svc := NewOrderService(orderRepo, &fakeClientRepo{}, &fakeTxManager{},
		eventbus.New(zap.NewNop()), zap.NewNop())
	return orderRepo, svc
}

func TestChangeOrderStatus(t *testing.T) {
	orderRepo, svc := newOrderFixture(constants.OrderDraft)

	order, err := svc.ChangeStatus(context.Background(), 7, 42, 1, constants.OrderConfirmed)
	require.NoError(t, err)

	assert.Equal(t, constants.OrderConfirmed, order.Status)
	assert.False(t, orderRepo.deliveryDate)
}

func TestChangeOrderStatusDeliveredStampsDate(t *testing.T) {
	orderRepo, svc := newOrderFixture(constants.OrderQC)

	_, err := svc.ChangeStatus(context.Background(), 7, 42, 1, constants.OrderDelivered)
	require.NoError(t, err)

	assert.True(t, orderRepo.deliveryDate)
}

func TestChangeOrderStatusInvalidTransition(t *testing.T) {
	_, svc := newOrderFixture(constants.OrderDraft)

	_, err := svc.ChangeStatus(context.Background(), 7, 42, 1, constants.OrderDelivered)
	assert.ErrorContains(t, err, "cannot transition order")
	requireBadRequest(t, err)
}

func TestDeleteOrderOnlyDraft(t *testing.T) {
	orderRepo, svc := newOrderFixture(constants.OrderConfirmed)

	err := svc.Delete(context.Background(), 7, 42, 1)
	assert.ErrorContains(t, err, "only draft orders")
	assert.False(t, orderRepo.deleted)

	orderRepo.order.Status = constants.OrderDraft
	err = svc.Delete(context.Background(), 7, 42, 1)
	require.NoError(t, err)
	assert.True(t, orderRepo.deleted)
}
