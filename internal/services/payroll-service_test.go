package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
)

func newPayrollFixture(periodStatus string) (*fakePayrollRepo, *fakeProductionRepo, PayrollServiceInterface) {
	payrollRepo := &fakePayrollRepo{
		period: &entities.PayrollPeriod{
			ID:          5,
			WorkspaceID: 7,
			Name:        "2026-08",
			StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Status:      periodStatus,
		},
	}
	employeeRepo := &fakeEmployeeRepo{
		employees: []entities.Employee{
			{ID: 1, PayScheme: constants.PaySchemeSalaried, BaseSalary: 5200},
			{ID: 2, PayScheme: constants.PaySchemePieceRate, PieceRate: 0.85},
			{ID: 3, PayScheme: constants.PaySchemePieceRate, PieceRate: 0.60},
		},
	}
	productionRepo := &fakeProductionRepo{
		pieces: map[uint64]int{2: 1200},
	}
	svc := NewPayrollService(payrollRepo, employeeRepo, productionRepo, &fakeTxManager{}, zap.NewNop())
	return payrollRepo, productionRepo, svc
}

func TestGeneratePayslips(t *testing.T) {
	payrollRepo, _, svc := newPayrollFixture(entities.PayrollPeriodOpen)

	slips, err := svc.GeneratePayslips(context.Background(), 7, 5)
	require.NoError(t, err)
	require.Len(t, slips, 3)

	byEmployee := make(map[uint64]entities.Payslip, len(slips))
	for _, slip := range slips {
		byEmployee[slip.EmployeeID] = slip
	}

	salaried := byEmployee[1]
	assert.Equal(t, 5200.0, salaried.BaseAmount)
	assert.Equal(t, 0.0, salaried.PieceAmount)
	assert.Equal(t, 5200.0, salaried.NetAmount)

	pieceRate := byEmployee[2]
	assert.Equal(t, 1200, pieceRate.Pieces)
	assert.InDelta(t, 1020.0, pieceRate.PieceAmount, 0.001)
	assert.InDelta(t, 1020.0, pieceRate.NetAmount, 0.001)

	noPieces := byEmployee[3]
	assert.Equal(t, 0, noPieces.Pieces)
	assert.Equal(t, 0.0, noPieces.NetAmount)

	assert.Len(t, payrollRepo.slips, 3, "regeneration replaces the whole set")
}

func TestGeneratePayslipsClosedPeriod(t *testing.T) {
	_, _, svc := newPayrollFixture(entities.PayrollPeriodClosed)

	_, err := svc.GeneratePayslips(context.Background(), 7, 5)
	assert.ErrorContains(t, err, "closed")
	requireBadRequest(t, err)
}

func TestGeneratePayslipsUnknownPeriod(t *testing.T) {
	_, _, svc := newPayrollFixture(entities.PayrollPeriodOpen)

	_, err := svc.GeneratePayslips(context.Background(), 7, 999)
	assert.Error(t, err)
}

func TestClosePeriod(t *testing.T) {
	payrollRepo, _, svc := newPayrollFixture(entities.PayrollPeriodOpen)

	period, err := svc.ClosePeriod(context.Background(), 7, 5)
	require.NoError(t, err)

	assert.True(t, payrollRepo.closed)
	assert.Equal(t, entities.PayrollPeriodClosed, period.Status)

	_, err = svc.ClosePeriod(context.Background(), 7, 5)
	assert.ErrorContains(t, err, "already closed")
}
