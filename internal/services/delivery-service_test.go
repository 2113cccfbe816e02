package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
)

func newDeliveryFixture(status string, stops []entities.DeliveryStop) (*fakeDeliveryRepo, DeliveryServiceInterface) {
	deliveryRepo := &fakeDeliveryRepo{
		delivery: &entities.Delivery{
			ID:          3,
			WorkspaceID: 7,
			OrderID:     1,
			Status:      status,
			ScheduledAt: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
			Stops:       stops,
		},
	}
	svc := NewDeliveryService(deliveryRepo, &fakeVehicleRepo{}, &fakeOrderRepo{}, &fakeTxManager{}, zap.NewNop())
	return deliveryRepo, svc
}

func TestPlanNearestNeighbour(t *testing.T) {
	stops := []entities.DeliveryStop{
		{ID: 1, Lat: 10, Lng: 10},
		{ID: 2, Lat: 1, Lng: 1},
		{ID: 3, Lat: 5, Lng: 5},
	}

	order := planNearestNeighbour(0, 0, stops)

	assert.Equal(t, map[uint64]int{2: 1, 3: 2, 1: 3}, order)
}

func TestPlanNearestNeighbourSingleStop(t *testing.T) {
	stops := []entities.DeliveryStop{{ID: 9, Lat: 38.56, Lng: 68.78}}

	order := planNearestNeighbour(38.5, 68.7, stops)

	assert.Equal(t, map[uint64]int{9: 1}, order)
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, haversineKm(38.56, 68.78, 38.56, 68.78), 1e-9)

	// London to Paris is roughly 344 km great circle.
	d := haversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, d, 5)
}

func TestPlanRouteReordersStops(t *testing.T) {
	stops := []entities.DeliveryStop{
		{ID: 1, DeliveryID: 3, Seq: 1, Lat: 10, Lng: 10},
		{ID: 2, DeliveryID: 3, Seq: 2, Lat: 1, Lng: 1},
	}
	deliveryRepo, svc := newDeliveryFixture(constants.DeliveryScheduled, stops)

	_, err := svc.PlanRoute(context.Background(), 7, 3, dto.PlanRouteDTO{DepotLat: 0, DepotLng: 0})
	require.NoError(t, err)

	assert.Equal(t, map[uint64]int{2: 1, 1: 2}, deliveryRepo.reordered)
}

func TestPlanRouteAfterDeparture(t *testing.T) {
	_, svc := newDeliveryFixture(constants.DeliveryInTransit, nil)

	_, err := svc.PlanRoute(context.Background(), 7, 3, dto.PlanRouteDTO{})
	assert.ErrorContains(t, err, "before departure")
}

func TestPlanRouteWithoutStopsIsNoop(t *testing.T) {
	deliveryRepo, svc := newDeliveryFixture(constants.DeliveryScheduled, nil)

	_, err := svc.PlanRoute(context.Background(), 7, 3, dto.PlanRouteDTO{})
	require.NoError(t, err)
	assert.Nil(t, deliveryRepo.reordered)
}

func TestChangeDeliveryStatus(t *testing.T) {
	deliveryRepo, svc := newDeliveryFixture(constants.DeliveryScheduled, nil)

	delivery, err := svc.ChangeStatus(context.Background(), 7, 3, constants.DeliveryInTransit)
	require.NoError(t, err)
	assert.Equal(t, constants.DeliveryInTransit, delivery.Status)

	delivery, err = svc.ChangeStatus(context.Background(), 7, 3, constants.DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, constants.DeliveryDelivered, delivery.Status)
	assert.NotNil(t, deliveryRepo.delivery.DeliveredAt)
}

func TestChangeDeliveryStatusInvalidTransition(t *testing.T) {
	_, svc := newDeliveryFixture(constants.DeliveryScheduled, nil)

	_, err := svc.ChangeStatus(context.Background(), 7, 3, constants.DeliveryDelivered)
	assert.ErrorContains(t, err, "cannot transition")
	requireBadRequest(t, err)
}
