package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/pkg/constants"
)

func newInvoiceFixture(status string) (*fakeInvoiceRepo, InvoiceServiceInterface) {
	invoiceRepo := &fakeInvoiceRepo{
		invoice: &entities.Invoice{
			ID:          1,
			WorkspaceID: 7,
			OrderID:     2,
			ClientID:    3,
			Number:      "INV-2026-0001",
			Amount:      12500,
			Status:      status,
		},
	}
	svc := NewInvoiceService(invoiceRepo, &fakeOrderRepo{}, &fakeSequenceRepo{},
		&fakeTxManager{}, zap.NewNop())
	return invoiceRepo, svc
}

func TestChangeInvoiceStatusInvalidTransition(t *testing.T) {
	_, svc := newInvoiceFixture(constants.InvoiceDraft)

	_, err := svc.ChangeStatus(context.Background(), 7, 1, constants.InvoicePaid)
	assert.ErrorContains(t, err, "cannot transition invoice")
	requireBadRequest(t, err)
}

func TestChangeInvoiceStatusPaidIsTerminal(t *testing.T) {
	_, svc := newInvoiceFixture(constants.InvoicePaid)

	_, err := svc.ChangeStatus(context.Background(), 7, 1, constants.InvoiceVoid)
	requireBadRequest(t, err)
}

func TestCreateInvoiceRequiresDeliveredOrder(t *testing.T) {
	invoiceRepo, _ := newInvoiceFixture(constants.InvoiceDraft)
	orderRepo := &fakeOrderRepo{
		order: &entities.Order{ID: 2, WorkspaceID: 7, ClientID: 3, Status: constants.OrderInProduction},
	}
	svc := NewInvoiceService(invoiceRepo, orderRepo, &fakeSequenceRepo{},
		&fakeTxManager{}, zap.NewNop())

	_, err := svc.Create(context.Background(), 7, dto.CreateInvoiceDTO{OrderID: 2})
	assert.ErrorContains(t, err, "cannot be invoiced")
	requireBadRequest(t, err)
}
