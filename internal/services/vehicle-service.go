package services

import (
	"context"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type VehicleServiceInterface interface {
	GetVehicles(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Vehicle, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Vehicle, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateVehicleDTO) (*entities.Vehicle, error)
	Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateVehicleDTO) (*entities.Vehicle, error)
	Deactivate(ctx context.Context, workspaceID, id uint64) error
}

type VehicleService struct {
	vehicleRepo repositories.VehicleRepositoryInterface
}

func NewVehicleService(vehicleRepo repositories.VehicleRepositoryInterface) VehicleServiceInterface {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

func (s *VehicleService) GetVehicles(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Vehicle, uint64, error) {
	return s.vehicleRepo.GetVehicles(ctx, workspaceID, filter)
}

func (s *VehicleService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, workspaceID, id)
}

func (s *VehicleService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateVehicleDTO) (*entities.Vehicle, error) {
	id, err := s.vehicleRepo.Create(ctx, entities.Vehicle{
		WorkspaceID: workspaceID,
		PlateNo:     payload.PlateNo,
		Model:       payload.Model,
		CapacityKg:  payload.CapacityKg,
	})
	if err != nil {
		return nil, err
	}
	return s.vehicleRepo.FindByID(ctx, workspaceID, id)
}

func (s *VehicleService) Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateVehicleDTO) (*entities.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.Model != nil {
		vehicle.Model = *payload.Model
	}
	if payload.CapacityKg != nil {
		vehicle.CapacityKg = *payload.CapacityKg
	}
	if payload.Active != nil {
		vehicle.Active = *payload.Active
	}

	if err := s.vehicleRepo.Update(ctx, workspaceID, id, *vehicle); err != nil {
		return nil, err
	}
	return s.vehicleRepo.FindByID(ctx, workspaceID, id)
}

func (s *VehicleService) Deactivate(ctx context.Context, workspaceID, id uint64) error {
	return s.vehicleRepo.Delete(ctx, workspaceID, id)
}
