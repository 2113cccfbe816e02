package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"apparel-erp/internal/dto"
	"apparel-erp/internal/entities"
	"apparel-erp/internal/repositories"
	"apparel-erp/pkg/constants"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

const invoiceCodeKind = "INV"

type InvoiceServiceInterface interface {
	GetInvoices(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Invoice, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Invoice, error)
	Create(ctx context.Context, workspaceID uint64, payload dto.CreateInvoiceDTO) (*entities.Invoice, error)
	ChangeStatus(ctx context.Context, workspaceID, id uint64, newStatus string) (*entities.Invoice, error)
}

type InvoiceService struct {
	invoiceRepo  repositories.InvoiceRepositoryInterface
	orderRepo    repositories.OrderRepositoryInterface
	sequenceRepo repositories.SequenceRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	sequenceRepo repositories.SequenceRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) InvoiceServiceInterface {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		sequenceRepo: sequenceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *InvoiceService) GetInvoices(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Invoice, uint64, error) {
	return s.invoiceRepo.GetInvoices(ctx, workspaceID, filter)
}

func (s *InvoiceService) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, workspaceID, id)
}

// Create bills a delivered order. Amount defaults to the order's total
// value when the payload leaves it out.
func (s *InvoiceService) Create(ctx context.Context, workspaceID uint64, payload dto.CreateInvoiceDTO) (*entities.Invoice, error) {
	order, err := s.orderRepo.FindOrder(ctx, workspaceID, payload.OrderID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("order not found", err)
	}
	if order.Status != constants.OrderDelivered && order.Status != constants.OrderClosed {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("order in status %s cannot be invoiced", order.Status), nil)
	}

	amount := order.TotalValue
	if payload.Amount != nil {
		amount = *payload.Amount
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		number, err := s.sequenceRepo.NextCode(ctx, tx, workspaceID, invoiceCodeKind)
		if err != nil {
			return err
		}
		newID, err = s.invoiceRepo.Create(ctx, tx, entities.Invoice{
			WorkspaceID: workspaceID,
			OrderID:     order.ID,
			ClientID:    order.ClientID,
			Number:      number,
			Amount:      amount,
			Status:      constants.InvoiceDraft,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindByID(ctx, workspaceID, newID)
}

func (s *InvoiceService) ChangeStatus(ctx context.Context, workspaceID, id uint64, newStatus string) (*entities.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !constants.CanTransition(constants.InvoiceTransitions, invoice.Status, newStatus) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("cannot transition invoice from %s to %s", invoice.Status, newStatus), nil)
	}

	switch newStatus {
	case constants.InvoiceSent:
		err = s.invoiceRepo.MarkSent(ctx, workspaceID, id)
	case constants.InvoicePaid:
		err = s.invoiceRepo.MarkPaid(ctx, workspaceID, id)
	default:
		err = s.invoiceRepo.UpdateStatus(ctx, workspaceID, id, newStatus)
	}
	if err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindByID(ctx, workspaceID, id)
}
