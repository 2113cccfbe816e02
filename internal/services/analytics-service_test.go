package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
)

type analyticsFixture struct {
	orderRepo      *fakeOrderRepo
	productionRepo *fakeProductionRepo
	workOrderRepo  *fakeWorkOrderRepo
	deliveryRepo   *fakeDeliveryRepo
	invoiceRepo    *fakeInvoiceRepo
}

func newAnalyticsFixture(f analyticsFixture) AnalyticsServiceInterface {
	return NewAnalyticsService(
		f.orderRepo, f.productionRepo, f.workOrderRepo,
		f.deliveryRepo, f.invoiceRepo, &fakeCache{}, zap.NewNop(),
	)
}

func healthyFixture() analyticsFixture {
	return analyticsFixture{
		orderRepo: &fakeOrderRepo{countByStatus: map[string]int{
			constants.OrderConfirmed: 2,
		}},
		productionRepo: &fakeProductionRepo{
			wip:     []entities.StageProgress{{Stage: constants.StageSewing, PlannedQty: 100, ActualQty: 40}},
			sampled: 100,
			defects: 2,
		},
		workOrderRepo: &fakeWorkOrderRepo{open: 1, overdue: 0},
		deliveryRepo:  &fakeDeliveryRepo{delivered: 20, onTime: 19},
		invoiceRepo: &fakeInvoiceRepo{
			outstanding: 1000,
			debtors: []entities.ClientBalance{
				{ClientID: 1, ClientName: "Northwind Retail", Outstanding: 400},
			},
		},
	}
}

func TestDashboardRates(t *testing.T) {
	svc := newAnalyticsFixture(healthyFixture())

	dashboard, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)

	assert.InDelta(t, 0.02, dashboard.QCDefectRate, 0.0001)
	assert.InDelta(t, 0.95, dashboard.OnTimeDeliveryRate, 0.0001)
	assert.Equal(t, 1, dashboard.OpenWorkOrders)
	assert.Equal(t, 1000.0, dashboard.AROutstanding)
}

func TestDashboardZeroDenominators(t *testing.T) {
	f := healthyFixture()
	f.productionRepo.sampled = 0
	f.productionRepo.defects = 0
	f.deliveryRepo.delivered = 0
	f.deliveryRepo.onTime = 0
	svc := newAnalyticsFixture(f)

	dashboard, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 0.0, dashboard.QCDefectRate)
	assert.Equal(t, 0.0, dashboard.OnTimeDeliveryRate)
}

func TestInsightsHealthyStateIsQuiet(t *testing.T) {
	svc := newAnalyticsFixture(healthyFixture())

	insights, err := svc.Insights(context.Background(), 7)
	require.NoError(t, err)

	assert.Empty(t, insights)
}

func insightRules(insights []dto.InsightDTO) map[string]string {
	rules := make(map[string]string, len(insights))
	for _, insight := range insights {
		rules[insight.Rule] = insight.Severity
	}
	return rules
}

func TestInsightsAllRulesFire(t *testing.T) {
	f := analyticsFixture{
		orderRepo: &fakeOrderRepo{countByStatus: map[string]int{
			constants.OrderInProduction: 3,
		}},
		productionRepo: &fakeProductionRepo{
			wip: []entities.StageProgress{
				{Stage: constants.StageCutting, PlannedQty: 100, ActualQty: 0},
				{Stage: constants.StageSewing, PlannedQty: 100, ActualQty: 50},
			},
			sampled: 100,
			defects: 8,
		},
		workOrderRepo: &fakeWorkOrderRepo{open: 4, overdue: 2},
		deliveryRepo:  &fakeDeliveryRepo{delivered: 10, onTime: 8},
		invoiceRepo: &fakeInvoiceRepo{
			outstanding: 1000,
			debtors: []entities.ClientBalance{
				{ClientID: 1, ClientName: "Atlas Sportswear", Outstanding: 700},
			},
		},
	}
	svc := newAnalyticsFixture(f)

	insights, err := svc.Insights(context.Background(), 7)
	require.NoError(t, err)

	rules := insightRules(insights)
	assert.Equal(t, "HIGH", rules["qc_defect_rate"])
	assert.Equal(t, "MEDIUM", rules["maintenance_backlog"])
	assert.Equal(t, "LOW", rules["idle_stages"])
	assert.Equal(t, "MEDIUM", rules["on_time_delivery"])
	assert.Equal(t, "MEDIUM", rules["ar_concentration"])
	assert.Len(t, insights, 5)
}

func TestInsightsIdleStagesNeedsOrdersInProduction(t *testing.T) {
	f := healthyFixture()
	f.productionRepo.wip = []entities.StageProgress{
		{Stage: constants.StageCutting, PlannedQty: 100, ActualQty: 0},
	}
	svc := newAnalyticsFixture(f)

	insights, err := svc.Insights(context.Background(), 7)
	require.NoError(t, err)

	assert.NotContains(t, insightRules(insights), "idle_stages",
		"an idle stage without in-production orders is not reported")
}

func TestInsightsArConcentration(t *testing.T) {
	f := healthyFixture()
	f.invoiceRepo.debtors = []entities.ClientBalance{
		{ClientID: 1, ClientName: "Northwind Retail", Outstanding: 800},
	}
	svc := newAnalyticsFixture(f)

	insights, err := svc.Insights(context.Background(), 7)
	require.NoError(t, err)

	rules := insightRules(insights)
	assert.Equal(t, "MEDIUM", rules["ar_concentration"])
}
