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

var workOrderMap = map[string]string{
	"id":          "w.id",
	"code":        "w.code",
	"asset_id":    "w.asset_id",
	"status":      "w.status",
	"assignee_id": "w.assignee_id",
	"opened_at":   "w.opened_at",
	"created_at":  "w.created_at",
}

type WorkOrderRepositoryInterface interface {
	GetWorkOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceWorkOrder, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceWorkOrder, error)
	Create(ctx context.Context, tx pgx.Tx, wo entities.MaintenanceWorkOrder) (uint64, error)
	Assign(ctx context.Context, workspaceID, id, assigneeID uint64) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error
	Complete(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error

	AddCostLine(ctx context.Context, tx pgx.Tx, line entities.WorkOrderCostLine) (uint64, error)
	GetCostLines(ctx context.Context, workOrderID uint64) ([]entities.WorkOrderCostLine, error)
	RecalculateCosts(ctx context.Context, tx pgx.Tx, workOrderID uint64) error

	OpenAndOverdueCounts(ctx context.Context, workspaceID uint64) (open int, overdue int, err error)
}

type WorkOrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkOrderRepositoryInterface {
	return &WorkOrderRepository{storage: storage, logger: logger}
}

const workOrderColumns = `w.id, w.workspace_id, w.code, w.asset_id, w.schedule_id, w.title, w.description,
	w.status, w.assignee_id, w.labor_cost, w.parts_cost, w.total_cost,
	w.opened_at, w.completed_at, w.created_at, w.updated_at,
	COALESCE(a.code, ''), COALESCE(a.name, '')`

func scanWorkOrder(row pgx.Row) (*entities.MaintenanceWorkOrder, error) {
	var w entities.MaintenanceWorkOrder
	var assetCode, assetName string
	err := row.Scan(&w.ID, &w.WorkspaceID, &w.Code, &w.AssetID, &w.ScheduleID, &w.Title, &w.Description,
		&w.Status, &w.AssigneeID, &w.LaborCost, &w.PartsCost, &w.TotalCost,
		&w.OpenedAt, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt,
		&assetCode, &assetName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if assetCode != "" {
		w.Asset = &entities.Asset{ID: w.AssetID, Code: assetCode, Name: assetName}
	}
	return &w, nil
}

func (r *WorkOrderRepository) GetWorkOrders(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceWorkOrder, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"w.code": pat},
				sq.ILike{"w.title": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(w.id)").From("maintenance_work_orders AS w").
		Where(sq.Eq{"w.workspace_id": workspaceID})
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, workOrderMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.MaintenanceWorkOrder{}, 0, nil
	}

	baseBuilder := psql.Select(workOrderColumns).
		From("maintenance_work_orders AS w").
		LeftJoin("assets a ON w.asset_id = a.id").
		Where(sq.Eq{"w.workspace_id": workspaceID})
	baseBuilder = applySearch(baseBuilder)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("w.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, workOrderMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	workOrders := make([]entities.MaintenanceWorkOrder, 0, filter.Limit)
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		workOrders = append(workOrders, *w)
	}
	return workOrders, total, rows.Err()
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceWorkOrder, error) {
	return scanWorkOrder(r.storage.QueryRow(ctx, `
		SELECT `+workOrderColumns+`
		FROM maintenance_work_orders w LEFT JOIN assets a ON w.asset_id = a.id
		WHERE w.workspace_id = $1 AND w.id = $2
	`, workspaceID, id))
}

func (r *WorkOrderRepository) Create(ctx context.Context, tx pgx.Tx, wo entities.MaintenanceWorkOrder) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO maintenance_work_orders (workspace_id, code, asset_id, schedule_id, title, description,
			status, assignee_id, labor_cost, parts_cost, total_cost, opened_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, 0, NOW(), NOW(), NOW())
		RETURNING id
	`, wo.WorkspaceID, wo.Code, wo.AssetID, wo.ScheduleID, wo.Title, wo.Description,
		wo.Status, wo.AssigneeID).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *WorkOrderRepository) Assign(ctx context.Context, workspaceID, id, assigneeID uint64) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE maintenance_work_orders SET assignee_id = $1, status = 'ASSIGNED', updated_at = NOW()
		WHERE workspace_id = $2 AND id = $3 AND status IN ('OPEN', 'ASSIGNED')
	`, assigneeID, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkOrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error {
	result, err := tx.Exec(ctx,
		`UPDATE maintenance_work_orders SET status = $1, updated_at = NOW() WHERE workspace_id = $2 AND id = $3`,
		status, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkOrderRepository) Complete(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	result, err := tx.Exec(ctx, `
		UPDATE maintenance_work_orders SET status = 'COMPLETED', completed_at = NOW(), updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2
	`, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkOrderRepository) AddCostLine(ctx context.Context, tx pgx.Tx, line entities.WorkOrderCostLine) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO work_order_cost_lines (work_order_id, kind, description, amount, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`, line.WorkOrderID, line.Kind, line.Description, line.Amount).Scan(&newID)
	return newID, err
}

func (r *WorkOrderRepository) GetCostLines(ctx context.Context, workOrderID uint64) ([]entities.WorkOrderCostLine, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, work_order_id, kind, description, amount, created_at
		FROM work_order_cost_lines WHERE work_order_id = $1 ORDER BY id
	`, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []entities.WorkOrderCostLine
	for rows.Next() {
		var l entities.WorkOrderCostLine
		if err := rows.Scan(&l.ID, &l.WorkOrderID, &l.Kind, &l.Description, &l.Amount, &l.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// RecalculateCosts refreshes the rollup columns from the cost lines so
// totals never drift from their source rows.
func (r *WorkOrderRepository) RecalculateCosts(ctx context.Context, tx pgx.Tx, workOrderID uint64) error {
	_, err := tx.Exec(ctx, `
		UPDATE maintenance_work_orders w SET
			labor_cost = agg.labor,
			parts_cost = agg.parts,
			total_cost = agg.labor + agg.parts,
			updated_at = NOW()
		FROM (
			SELECT
				COALESCE(SUM(amount) FILTER (WHERE kind = 'LABOR'), 0) AS labor,
				COALESCE(SUM(amount) FILTER (WHERE kind = 'PARTS'), 0) AS parts
			FROM work_order_cost_lines WHERE work_order_id = $1
		) agg
		WHERE w.id = $1
	`, workOrderID)
	return err
}

func (r *WorkOrderRepository) OpenAndOverdueCounts(ctx context.Context, workspaceID uint64) (int, int, error) {
	var open, overdue int
	err := r.storage.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status NOT IN ('COMPLETED', 'CANCELLED')),
			COUNT(*) FILTER (WHERE status NOT IN ('COMPLETED', 'CANCELLED') AND opened_at < NOW() - INTERVAL '7 days')
		FROM maintenance_work_orders WHERE workspace_id = $1
	`, workspaceID).Scan(&open, &overdue)
	return open, overdue, err
}
