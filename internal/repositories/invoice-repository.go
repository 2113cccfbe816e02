package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

type InvoiceRepositoryInterface interface {
	GetInvoices(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Invoice, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Invoice, error)
	Create(ctx context.Context, tx pgx.Tx, invoice entities.Invoice) (uint64, error)
	UpdateStatus(ctx context.Context, workspaceID, id uint64, status string) error
	MarkSent(ctx context.Context, workspaceID, id uint64) error
	MarkPaid(ctx context.Context, workspaceID, id uint64) error

	Outstanding(ctx context.Context, workspaceID uint64) (float64, error)
	TopDebtors(ctx context.Context, workspaceID uint64, limit int) ([]entities.ClientBalance, error)
}

type InvoiceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInvoiceRepository(storage *pgxpool.Pool, logger *zap.Logger) InvoiceRepositoryInterface {
	return &InvoiceRepository{storage: storage, logger: logger}
}

const invoiceColumns = `id, workspace_id, order_id, client_id, number, amount, status,
	issued_at, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entities.Invoice, error) {
	var i entities.Invoice
	err := row.Scan(&i.ID, &i.WorkspaceID, &i.OrderID, &i.ClientID, &i.Number, &i.Amount, &i.Status,
		&i.IssuedAt, &i.PaidAt, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InvoiceRepository) GetInvoices(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Invoice, uint64, error) {
	where := `workspace_id = $1`
	args := []interface{}{workspaceID}
	if v, ok := filter.Filter["status"]; ok {
		args = append(args, v)
		where += ` AND status = $2`
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where + ` ORDER BY id DESC`
	if len(args) == 1 {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $3 OFFSET $4`
	}
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invoices := make([]entities.Invoice, 0, filter.Limit)
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, *i)
	}
	return invoices, total, rows.Err()
}

func (r *InvoiceRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Invoice, error) {
	return scanInvoice(r.storage.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
}

func (r *InvoiceRepository) Create(ctx context.Context, tx pgx.Tx, invoice entities.Invoice) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO invoices (workspace_id, order_id, client_id, number, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, invoice.WorkspaceID, invoice.OrderID, invoice.ClientID, invoice.Number,
		invoice.Amount, invoice.Status).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, workspaceID, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW() WHERE workspace_id = $2 AND id = $3`,
		status, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) MarkSent(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE invoices SET status = 'SENT', issued_at = NOW(), updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND status = 'DRAFT'
	`, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) MarkPaid(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE invoices SET status = 'PAID', paid_at = NOW(), updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND status = 'SENT'
	`, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Outstanding is the sum of sent but unpaid invoices.
func (r *InvoiceRepository) Outstanding(ctx context.Context, workspaceID uint64) (float64, error) {
	var total float64
	err := r.storage.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE workspace_id = $1 AND status = 'SENT'`,
		workspaceID).Scan(&total)
	return total, err
}

func (r *InvoiceRepository) TopDebtors(ctx context.Context, workspaceID uint64, limit int) ([]entities.ClientBalance, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT i.client_id, c.name, SUM(i.amount)
		FROM invoices i JOIN clients c ON i.client_id = c.id
		WHERE i.workspace_id = $1 AND i.status = 'SENT'
		GROUP BY i.client_id, c.name
		ORDER BY SUM(i.amount) DESC
		LIMIT $2
	`, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []entities.ClientBalance
	for rows.Next() {
		var b entities.ClientBalance
		if err := rows.Scan(&b.ClientID, &b.ClientName, &b.Outstanding); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
