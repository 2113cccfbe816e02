package services

import (
	"context"

	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

type EmployeeServiceInterface interface {
	GetEmployees(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Employee, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Employee, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateEmployeeDTO) (*entities.Employee, error)
	Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateEmployeeDTO) (*entities.Employee, error)
	Deactivate(ctx context.Context, workspaceID, id uint64) error
}

type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepositoryInterface, logger *zap.Logger) EmployeeServiceInterface {
	return &EmployeeService{employeeRepo: employeeRepo, logger: logger}
}

func (s *EmployeeService) GetEmployees(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Employee, uint64, error) {
	return s.employeeRepo.GetEmployees(ctx, workspaceID, filter)
}

func (s *EmployeeService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Employee, error) {
	return s.employeeRepo.FindByID(ctx, workspaceID, id)
}

func (s *EmployeeService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateEmployeeDTO) (*entities.Employee, error) {
	id, err := s.employeeRepo.Create(ctx, entities.Employee{
		WorkspaceID: workspaceID,
		UserID:      payload.UserID,
		FullName:    payload.FullName,
		Department:  payload.Department,
		Position:    payload.Position,
		PayScheme:   payload.PayScheme,
		BaseSalary:  payload.BaseSalary,
		PieceRate:   payload.PieceRate,
		HiredAt:     payload.HiredAt,
	})
	if err != nil {
		return nil, err
	}
	return s.employeeRepo.FindByID(ctx, workspaceID, id)
}

func (s *EmployeeService) Update(ctx context.Context, workspaceID, id uint64, payload dto.UpdateEmployeeDTO) (*entities.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if payload.FullName.Valid {
		employee.FullName = payload.FullName.String
	}
	if payload.Department.Valid {
		employee.Department = payload.Department.String
	}
	if payload.Position.Valid {
		employee.Position = payload.Position.String
	}
	if payload.PayScheme.Valid {
		employee.PayScheme = payload.PayScheme.String
	}
	if payload.BaseSalary.Valid {
		employee.BaseSalary = payload.BaseSalary.Float64
	}
	if payload.PieceRate.Valid {
		employee.PieceRate = payload.PieceRate.Float64
	}
	if payload.Active.Valid {
		employee.Active = payload.Active.Bool
	}

	if err := s.employeeRepo.Update(ctx, workspaceID, id, *employee); err != nil {
		return nil, err
	}
	return s.employeeRepo.FindByID(ctx, workspaceID, id)
}

func (s *EmployeeService) Deactivate(ctx context.Context, workspaceID, id uint64) error {
	return s.employeeRepo.Delete(ctx, workspaceID, id)
}
