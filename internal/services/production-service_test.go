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

func newProductionFixture() (*fakeProductionRepo, ProductionServiceInterface) {
	productionRepo := &fakeProductionRepo{
		runs: map[uint64]entities.ProductionRun{
			1: {ID: 1, WorkspaceID: 7, OrderID: 2, Stage: constants.StageSewing, Status: constants.RunRunning},
		},
	}
	svc := NewProductionService(productionRepo, &fakeOrderRepo{}, zap.NewNop())
	return productionRepo, svc
}

func TestCreateInspectionPasses(t *testing.T) {
	productionRepo, svc := newProductionFixture()

	insp, err := svc.CreateInspection(context.Background(), 7, 42, dto.CreateQCInspectionDTO{
		RunID:         1,
		SampledQty:    100,
		DefectReasons: map[string]int{"stain": 2, "misprint": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, insp.DefectQty)
	assert.True(t, insp.Passed, "3% defect rate is within the 5% threshold")
	assert.Equal(t, uint64(42), insp.InspectorID)
	assert.Len(t, productionRepo.inspections, 1)
}

func TestCreateInspectionFailsAboveThreshold(t *testing.T) {
	_, svc := newProductionFixture()

	insp, err := svc.CreateInspection(context.Background(), 7, 42, dto.CreateQCInspectionDTO{
		RunID:         1,
		SampledQty:    100,
		DefectReasons: map[string]int{"seam": 6},
	})
	require.NoError(t, err)

	assert.False(t, insp.Passed)
}

func TestCreateInspectionExactThresholdPasses(t *testing.T) {
	_, svc := newProductionFixture()

	insp, err := svc.CreateInspection(context.Background(), 7, 42, dto.CreateQCInspectionDTO{
		RunID:         1,
		SampledQty:    100,
		DefectReasons: map[string]int{"seam": 5},
	})
	require.NoError(t, err)

	assert.True(t, insp.Passed)
}

func TestCreateInspectionNegativeDefectCount(t *testing.T) {
	_, svc := newProductionFixture()

	_, err := svc.CreateInspection(context.Background(), 7, 42, dto.CreateQCInspectionDTO{
		RunID:         1,
		SampledQty:    100,
		DefectReasons: map[string]int{"seam": -1},
	})
	assert.ErrorContains(t, err, "non-negative")
}

func TestCreateInspectionDefectsExceedSample(t *testing.T) {
	_, svc := newProductionFixture()

	_, err := svc.CreateInspection(context.Background(), 7, 42, dto.CreateQCInspectionDTO{
		RunID:         1,
		SampledQty:    10,
		DefectReasons: map[string]int{"seam": 11},
	})
	assert.ErrorContains(t, err, "exceeds sampled quantity")
}

func TestCreateInspectionUnknownRun(t *testing.T) {
	_, svc := newProductionFixture()

	_, err := svc.CreateInspection(context.Background(), 7, 42, dto.CreateQCInspectionDTO{
		RunID:         999,
		SampledQty:    10,
		DefectReasons: map[string]int{},
	})
	assert.ErrorContains(t, err, "run not found")
}
