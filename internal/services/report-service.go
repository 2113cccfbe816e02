package services

import (
	"context"

	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/types"
)

// OrderBookRow is one exported line of the order book report.
type OrderBookRow struct {
	Order    entities.Order
	Progress []entities.StageProgress
}

type ReportServiceInterface interface {
	OrderBook(ctx context.Context, workspaceID uint64, filter types.Filter) ([]OrderBookRow, uint64, error)
	PayrollRegister(ctx context.Context, workspaceID, periodID uint64) (*entities.PayrollPeriod, []entities.Payslip, error)
}

type ReportService struct {
	orderRepo      repositories.OrderRepositoryInterface
	productionRepo repositories.ProductionRepositoryInterface
	payrollRepo    repositories.PayrollRepositoryInterface
	logger         *zap.Logger
}

func NewReportService(
	orderRepo repositories.OrderRepositoryInterface,
	productionRepo repositories.ProductionRepositoryInterface,
	payrollRepo repositories.PayrollRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		orderRepo:      orderRepo,
		productionRepo: productionRepo,
		payrollRepo:    payrollRepo,
		logger:         logger,
	}
}

func (s *ReportService) OrderBook(ctx context.Context, workspaceID uint64, filter types.Filter) ([]OrderBookRow, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, workspaceID, filter)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]OrderBookRow, 0, len(orders))
	for _, order := range orders {
		progress, err := s.productionRepo.StageProgress(ctx, workspaceID, order.ID)
		if err != nil {
			return nil, 0, err
		}
		rows = append(rows, OrderBookRow{Order: order, Progress: progress})
	}
	return rows, total, nil
}

func (s *ReportService) PayrollRegister(ctx context.Context, workspaceID, periodID uint64) (*entities.PayrollPeriod, []entities.Payslip, error) {
	period, err := s.payrollRepo.FindPeriod(ctx, workspaceID, periodID)
	if err != nil {
		return nil, nil, err
	}
	slips, err := s.payrollRepo.GetPayslips(ctx, workspaceID, periodID)
	if err != nil {
		return nil, nil, err
	}
	return period, slips, nil
}
