package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

type PayrollServiceInterface interface {
	GetPeriods(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.PayrollPeriod, uint64, error)
	FindPeriod(ctx context.Context, workspaceID, id uint64) (*entities.PayrollPeriod, error)
	CreatePeriod(ctx context.Context, workspaceID uint64, payload dto.CreatePayrollPeriodDTO) (*entities.PayrollPeriod, error)
	GeneratePayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error)
	GetPayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error)
	AdjustPayslip(ctx context.Context, workspaceID, payslipID uint64, payload dto.PayslipAdjustmentDTO) (*entities.Payslip, error)
	ClosePeriod(ctx context.Context, workspaceID, periodID uint64) (*entities.PayrollPeriod, error)
}

type PayrollService struct {
	payrollRepo    repositories.PayrollRepositoryInterface
	employeeRepo   repositories.EmployeeRepositoryInterface
	productionRepo repositories.ProductionRepositoryInterface
	txManager      repositories.TxManagerInterface
	logger         *zap.Logger
}

func NewPayrollService(
	payrollRepo repositories.PayrollRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	productionRepo repositories.ProductionRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PayrollServiceInterface {
	return &PayrollService{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		productionRepo: productionRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (s *PayrollService) GetPeriods(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.PayrollPeriod, uint64, error) {
	return s.payrollRepo.GetPeriods(ctx, workspaceID, filter)
}

func (s *PayrollService) FindPeriod(ctx context.Context, workspaceID, id uint64) (*entities.PayrollPeriod, error) {
	return s.payrollRepo.FindPeriod(ctx, workspaceID, id)
}

func (s *PayrollService) CreatePeriod(ctx context.Context, workspaceID uint64, payload dto.CreatePayrollPeriodDTO) (*entities.PayrollPeriod, error) {
	id, err := s.payrollRepo.CreatePeriod(ctx, entities.PayrollPeriod{
		WorkspaceID: workspaceID,
		Name:        payload.Name,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Status:      entities.PayrollPeriodOpen,
	})
	if err != nil {
		return nil, err
	}
	return s.payrollRepo.FindPeriod(ctx, workspaceID, id)
}

// GeneratePayslips builds one payslip per active employee. Salaried
// staff get their base amount; piece-rate staff get rate times accepted
// pieces from completed production runs within the period. Regeneration
// replaces earlier slips while the period is still open.
func (s *PayrollService) GeneratePayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error) {
	period, err := s.payrollRepo.FindPeriod(ctx, workspaceID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != entities.PayrollPeriodOpen {
		return nil, apperrors.NewBadRequestError("payroll period is closed", nil)
	}

	employees, err := s.employeeRepo.FindActive(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	pieces, err := s.productionRepo.AcceptedPiecesByOperator(ctx, workspaceID,
		period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	slips := make([]entities.Payslip, 0, len(employees))
	for _, emp := range employees {
		slip := entities.Payslip{
			PeriodID:   periodID,
			EmployeeID: emp.ID,
		}
		switch emp.PayScheme {
		case constants.PaySchemeSalaried:
			slip.BaseAmount = emp.BaseSalary
		case constants.PaySchemePieceRate:
			slip.Pieces = pieces[emp.ID]
			slip.PieceAmount = emp.PieceRate * float64(slip.Pieces)
		}
		slip.NetAmount = slip.BaseAmount + slip.PieceAmount + slip.Allowances - slip.Deductions
		slips = append(slips, slip)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.payrollRepo.ReplacePayslips(ctx, tx, periodID, slips)
	})
	if err != nil {
		return nil, err
	}
	return s.payrollRepo.GetPayslips(ctx, workspaceID, periodID)
}

func (s *PayrollService) GetPayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error) {
	if _, err := s.payrollRepo.FindPeriod(ctx, workspaceID, periodID); err != nil {
		return nil, err
	}
	return s.payrollRepo.GetPayslips(ctx, workspaceID, periodID)
}

func (s *PayrollService) AdjustPayslip(ctx context.Context, workspaceID, payslipID uint64, payload dto.PayslipAdjustmentDTO) (*entities.Payslip, error) {
	if err := s.payrollRepo.AdjustPayslip(ctx, workspaceID, payslipID, payload.Allowances, payload.Deductions); err != nil {
		return nil, err
	}
	return s.payrollRepo.FindPayslip(ctx, workspaceID, payslipID)
}

func (s *PayrollService) ClosePeriod(ctx context.Context, workspaceID, periodID uint64) (*entities.PayrollPeriod, error) {
	period, err := s.payrollRepo.FindPeriod(ctx, workspaceID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != entities.PayrollPeriodOpen {
		return nil, apperrors.NewBadRequestError("payroll period is already closed", nil)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.payrollRepo.ClosePeriod(ctx, tx, workspaceID, periodID)
	})
	if err != nil {
		return nil, err
	}
	return s.payrollRepo.FindPeriod(ctx, workspaceID, periodID)
}
