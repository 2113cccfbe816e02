package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
)

const dashboardCacheTTL = 60 * time.Second

type AnalyticsServiceInterface interface {
	Dashboard(ctx context.Context, workspaceID uint64) (*dto.DashboardDTO, error)
	Insights(ctx context.Context, workspaceID uint64) ([]dto.InsightDTO, error)
}

type AnalyticsService struct {
	orderRepo      repositories.OrderRepositoryInterface
	productionRepo repositories.ProductionRepositoryInterface
	workOrderRepo  repositories.WorkOrderRepositoryInterface
	deliveryRepo   repositories.DeliveryRepositoryInterface
	invoiceRepo    repositories.InvoiceRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
}

func NewAnalyticsService(
	orderRepo repositories.OrderRepositoryInterface,
	productionRepo repositories.ProductionRepositoryInterface,
	workOrderRepo repositories.WorkOrderRepositoryInterface,
	deliveryRepo repositories.DeliveryRepositoryInterface,
	invoiceRepo repositories.InvoiceRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) AnalyticsServiceInterface {
	return &AnalyticsService{
		orderRepo:      orderRepo,
		productionRepo: productionRepo,
		workOrderRepo:  workOrderRepo,
		deliveryRepo:   deliveryRepo,
		invoiceRepo:    invoiceRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
	}
}

// Dashboard aggregates the workspace overview, caching the result for a
// minute per workspace. Cache failures degrade to a direct computation.
func (s *AnalyticsService) Dashboard(ctx context.Context, workspaceID uint64) (*dto.DashboardDTO, error) {
	cacheKey := fmt.Sprintf("dashboard:%d", workspaceID)

	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil && cached != "" {
		var dashboard dto.DashboardDTO
		if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
			return &dashboard, nil
		}
	}

	dashboard, err := s.computeDashboard(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(dashboard); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, payload, dashboardCacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard", zap.Error(err))
		}
	}
	return dashboard, nil
}

func (s *AnalyticsService) computeDashboard(ctx context.Context, workspaceID uint64) (*dto.DashboardDTO, error) {
	ordersByStatus, err := s.orderRepo.CountByStatus(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	wip, err := s.productionRepo.WIPByStage(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	sampled, defects, err := s.productionRepo.DefectTotals(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	defectRate := 0.0
	if sampled > 0 {
		defectRate = float64(defects) / float64(sampled)
	}

	open, overdue, err := s.workOrderRepo.OpenAndOverdueCounts(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	delivered, onTime, err := s.deliveryRepo.OnTimeStats(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	onTimeRate := 0.0
	if delivered > 0 {
		onTimeRate = float64(onTime) / float64(delivered)
	}

	outstanding, err := s.invoiceRepo.Outstanding(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	debtors, err := s.invoiceRepo.TopDebtors(ctx, workspaceID, 5)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardDTO{
		OrdersByStatus:     ordersByStatus,
		WIPByStage:         wip,
		QCDefectRate:       defectRate,
		OpenWorkOrders:     open,
		OverdueWorkOrders:  overdue,
		OnTimeDeliveryRate: onTimeRate,
		AROutstanding:      outstanding,
		TopDebtors:         debtors,
	}, nil
}

// Insights runs fixed threshold rules over the dashboard aggregates.
// The output is deterministic for a given database state.
func (s *AnalyticsService) Insights(ctx context.Context, workspaceID uint64) ([]dto.InsightDTO, error) {
	dashboard, err := s.Dashboard(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	insights := []dto.InsightDTO{}

	if dashboard.QCDefectRate > QCDefectRateThreshold {
		insights = append(insights, dto.InsightDTO{
			Rule:     "qc_defect_rate",
			Severity: "HIGH",
			Message: fmt.Sprintf("QC defect rate is %.1f%%, above the %.0f%% threshold; review recent inspections",
				dashboard.QCDefectRate*100, QCDefectRateThreshold*100),
		})
	}

	if dashboard.OverdueWorkOrders > 0 {
		insights = append(insights, dto.InsightDTO{
			Rule:     "maintenance_backlog",
			Severity: "MEDIUM",
			Message: fmt.Sprintf("%d maintenance work orders have been open for more than a week",
				dashboard.OverdueWorkOrders),
		})
	}

	if inProduction := dashboard.OrdersByStatus[constants.OrderInProduction]; inProduction > 0 {
		idleStages := 0
		for _, stage := range dashboard.WIPByStage {
			if stage.ActualQty == 0 {
				idleStages++
			}
		}
		if idleStages > 0 {
			insights = append(insights, dto.InsightDTO{
				Rule:     "idle_stages",
				Severity: "LOW",
				Message: fmt.Sprintf("%d production stages report no completed pieces while %d orders are in production",
					idleStages, inProduction),
			})
		}
	}

	if dashboard.OnTimeDeliveryRate > 0 && dashboard.OnTimeDeliveryRate < 0.9 {
		insights = append(insights, dto.InsightDTO{
			Rule:     "on_time_delivery",
			Severity: "MEDIUM",
			Message: fmt.Sprintf("on-time delivery rate is %.0f%%, below the 90%% target",
				dashboard.OnTimeDeliveryRate*100),
		})
	}

	if dashboard.AROutstanding > 0 && len(dashboard.TopDebtors) > 0 {
		top := dashboard.TopDebtors[0]
		if top.Outstanding > dashboard.AROutstanding/2 {
			insights = append(insights, dto.InsightDTO{
				Rule:     "ar_concentration",
				Severity: "MEDIUM",
				Message: fmt.Sprintf("%s holds more than half of the outstanding receivables (%.2f of %.2f)",
					top.ClientName, top.Outstanding, dashboard.AROutstanding),
			})
		}
	}

	return insights, nil
}
