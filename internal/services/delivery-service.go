package services

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

type DeliveryServiceInterface interface {
	GetDeliveries(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Delivery, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Delivery, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateDeliveryDTO) (*entities.Delivery, error)
	ChangeStatus(ctx context.Context, workspaceID, id uint64, newStatus string) (*entities.Delivery, error)
	PlanRoute(ctx context.Context, workspaceID, id uint64, payload dto.PlanRouteDTO) (*entities.Delivery, error)
}

type DeliveryService struct {
	deliveryRepo repositories.DeliveryRepositoryInterface
	vehicleRepo  repositories.VehicleRepositoryInterface
	orderRepo    repositories.OrderRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewDeliveryService(
	deliveryRepo repositories.DeliveryRepositoryInterface,
	vehicleRepo repositories.VehicleRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) DeliveryServiceInterface {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		vehicleRepo:  vehicleRepo,
		orderRepo:    orderRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *DeliveryService) GetDeliveries(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Delivery, uint64, error) {
	return s.deliveryRepo.GetDeliveries(ctx, workspaceID, filter)
}

func (s *DeliveryService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Delivery, error) {
	return s.deliveryRepo.FindByID(ctx, workspaceID, id)
}

func (s *DeliveryService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateDeliveryDTO) (*entities.Delivery, error) {
	if _, err := s.orderRepo.FindOrder(ctx, workspaceID, payload.OrderID); err != nil {
		return nil, apperrors.NewBadRequestError("order not found", err)
	}
	if payload.VehicleID != nil {
		vehicle, err := s.vehicleRepo.FindByID(ctx, workspaceID, *payload.VehicleID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("vehicle not found", err)
		}
		if !vehicle.Active {
			return nil, apperrors.NewBadRequestError("vehicle is not active", nil)
		}
	}

	var newID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		newID, err = s.deliveryRepo.Create(ctx, tx, entities.Delivery{
			WorkspaceID: workspaceID,
			OrderID:     payload.OrderID,
			VehicleID:   payload.VehicleID,
			DriverName:  payload.DriverName,
			Status:      constants.DeliveryScheduled,
			ScheduledAt: payload.ScheduledAt,
		})
		if err != nil {
			return err
		}

		stops := make([]entities.DeliveryStop, len(payload.Stops))
		for i, stop := range payload.Stops {
			stops[i] = entities.DeliveryStop{
				Seq:     i + 1,
				Address: stop.Address,
				Lat:     stop.Lat,
				Lng:     stop.Lng,
			}
		}
		return s.deliveryRepo.CreateStops(ctx, tx, newID, stops)
	})
	if err != nil {
		return nil, err
	}
	return s.deliveryRepo.FindByID(ctx, workspaceID, newID)
}

func (s *DeliveryService) ChangeStatus(ctx context.Context, workspaceID, id uint64, newStatus string) (*entities.Delivery, error) {
	delivery, err := s.deliveryRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !constants.CanTransition(constants.DeliveryTransitions, delivery.Status, newStatus) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("cannot transition delivery from %s to %s", delivery.Status, newStatus), nil)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if newStatus == constants.DeliveryDelivered {
			return s.deliveryRepo.MarkDelivered(ctx, tx, workspaceID, id)
		}
		return s.deliveryRepo.UpdateStatus(ctx, tx, workspaceID, id, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return s.deliveryRepo.FindByID(ctx, workspaceID, id)
}

// PlanRoute reorders the stops with a nearest-neighbour walk from the
// depot. Deterministic and greedy; good enough for a handful of drops
// per van.
func (s *DeliveryService) PlanRoute(ctx context.Context, workspaceID, id uint64, payload dto.PlanRouteDTO) (*entities.Delivery, error) {
	delivery, err := s.deliveryRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if delivery.Status != constants.DeliveryScheduled {
		return nil, apperrors.NewBadRequestError("route can only be planned before departure", nil)
	}
	if len(delivery.Stops) == 0 {
		return delivery, nil
	}

	order := planNearestNeighbour(payload.DepotLat, payload.DepotLng, delivery.Stops)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.deliveryRepo.ReorderStops(ctx, tx, id, order)
	})
	if err != nil {
		return nil, err
	}
	return s.deliveryRepo.FindByID(ctx, workspaceID, id)
}

// planNearestNeighbour returns the new seq per stop id, visiting the
// closest unvisited stop each step starting from the depot.
func planNearestNeighbour(depotLat, depotLng float64, stops []entities.DeliveryStop) map[uint64]int {
	order := make(map[uint64]int, len(stops))
	visited := make(map[uint64]bool, len(stops))

	curLat, curLng := depotLat, depotLng
	for seq := 1; seq <= len(stops); seq++ {
		bestIdx := -1
		bestDist := math.MaxFloat64
		for i, stop := range stops {
			if visited[stop.ID] {
				continue
			}
			d := haversineKm(curLat, curLng, stop.Lat, stop.Lng)
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		next := stops[bestIdx]
		visited[next.ID] = true
		order[next.ID] = seq
		curLat, curLng = next.Lat, next.Lng
	}
	return order
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
