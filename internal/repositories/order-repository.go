package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	"apparel-erp/internal/infrastructure/bd"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

var orderMap = map[string]string{
	"id":                   "o.id",
	"client_id":            "o.client_id",
	"po_number":            "o.po_number",
	"product_type":         "o.product_type",
	"status":               "o.status",
	"total_qty":            "o.total_qty",
	"target_delivery_date": "o.target_delivery_date",
	"created_at":           "o.created_at",
	"updated_at":           "o.updated_at",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, workspaceID, id uint64) (*entities.Order, error)
	Create(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, order entities.Order) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error
	SetActualDelivery(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error
	Delete(ctx context.Context, workspaceID, id uint64) error
	CountByStatus(ctx context.Context, workspaceID uint64) (map[string]int, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	var c entities.Client
	err := row.Scan(
		&o.ID, &o.WorkspaceID, &o.ClientID, &o.PONumber, &o.ProductType, &o.Description,
		&o.TotalQty, &o.UnitPrice, &o.TotalValue, &o.Status,
		&o.TargetDeliveryDate, &o.ActualDeliveryDate,
		&o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.ID > 0 {
		o.Client = &c
	}
	return &o, nil
}

const orderSelectColumns = `o.id, o.workspace_id, o.client_id, o.po_number, o.product_type, o.description,
	o.total_qty, o.unit_price, o.total_value, o.status,
	o.target_delivery_date, o.actual_delivery_date,
	o.created_at, o.updated_at,
	COALESCE(c.id, 0), COALESCE(c.name, '')`

func (r *OrderRepository) GetOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Order, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"o.po_number": pat},
				sq.ILike{"o.product_type": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(o.id)").From("orders AS o").Where(sq.Eq{"o.workspace_id": workspaceID})
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, orderMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Order{}, 0, nil
	}

	baseBuilder := psql.Select(orderSelectColumns).
		From("orders AS o").
		LeftJoin("clients c ON o.client_id = c.id").
		Where(sq.Eq{"o.workspace_id": workspaceID})
	baseBuilder = applySearch(baseBuilder)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("o.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, orderMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]entities.Order, 0, filter.Limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) FindOrder(ctx context.Context, workspaceID, id uint64) (*entities.Order, error) {
	return scanOrder(r.storage.QueryRow(ctx, `
		SELECT `+orderSelectColumns+`
		FROM orders o LEFT JOIN clients c ON o.client_id = c.id
		WHERE o.workspace_id = $1 AND o.id = $2
	`, workspaceID, id))
}

func (r *OrderRepository) Create(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (workspace_id, client_id, po_number, product_type, description,
			total_qty, unit_price, total_value, status, target_delivery_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id
	`, order.WorkspaceID, order.ClientID, order.PONumber, order.ProductType, order.Description,
		order.TotalQty, order.UnitPrice, order.TotalValue, order.Status, order.TargetDeliveryDate).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *OrderRepository) Update(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, order entities.Order) error {
	result, err := tx.Exec(ctx, `
		UPDATE orders SET client_id = $1, product_type = $2, description = $3,
			total_qty = $4, unit_price = $5, total_value = $6,
			target_delivery_date = $7, updated_at = NOW()
		WHERE workspace_id = $8 AND id = $9
	`, order.ClientID, order.ProductType, order.Description,
		order.TotalQty, order.UnitPrice, order.TotalValue,
		order.TargetDeliveryDate, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error {
	result, err := tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE workspace_id = $2 AND id = $3`,
		status, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) SetActualDelivery(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	result, err := tx.Exec(ctx,
		`UPDATE orders SET actual_delivery_date = NOW(), updated_at = NOW() WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`DELETE FROM orders WHERE workspace_id = $1 AND id = $2 AND status = 'DRAFT'`, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context, workspaceID uint64) (map[string]int, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT status, COUNT(*) FROM orders WHERE workspace_id = $1 GROUP BY status`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
