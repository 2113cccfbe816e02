package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

type ProductionRepositoryInterface interface {
	GetRuns(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.ProductionRun, uint64, error)
	FindRun(ctx context.Context, workspaceID, id uint64) (*entities.ProductionRun, error)
	CreateRun(ctx context.Context, run entities.ProductionRun) (uint64, error)
	UpdateRun(ctx context.Context, workspaceID, id uint64, run entities.ProductionRun) error
	StageProgress(ctx context.Context, workspaceID, orderID uint64) ([]entities.StageProgress, error)
	WIPByStage(ctx context.Context, workspaceID uint64) ([]entities.StageProgress, error)
	AcceptedPiecesByOperator(ctx context.Context, workspaceID uint64, from, to string) (map[uint64]int, error)

	CreateInspection(ctx context.Context, insp entities.QCInspection) (uint64, error)
	GetInspections(ctx context.Context, workspaceID uint64, runID *uint64, filter types.Filter) ([]entities.QCInspection, uint64, error)
	DefectTotals(ctx context.Context, workspaceID uint64) (sampled int, defects int, err error)
}

type ProductionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProductionRepository(storage *pgxpool.Pool, logger *zap.Logger) ProductionRepositoryInterface {
	return &ProductionRepository{storage: storage, logger: logger}
}

const runColumns = `id, workspace_id, order_id, stage, asset_id, operator_id,
	planned_qty, actual_qty, status, started_at, completed_at, created_at, updated_at`

func scanRun(row pgx.Row) (*entities.ProductionRun, error) {
	var p entities.ProductionRun
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.OrderID, &p.Stage, &p.AssetID, &p.OperatorID,
		&p.PlannedQty, &p.ActualQty, &p.Status, &p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductionRepository) GetRuns(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.ProductionRun, uint64, error) {
	// Runs are always scoped to an order or a stage via filter params;
	// the allow list is small enough for direct SQL.
	where := `workspace_id = $1`
	args := []interface{}{workspaceID}

	if v, ok := filter.Filter["order_id"]; ok {
		args = append(args, v)
		where += ` AND order_id = $2`
	}
	if v, ok := filter.Filter["stage"]; ok {
		args = append(args, v)
		switch len(args) {
		case 2:
			where += ` AND stage = $2`
		case 3:
			where += ` AND stage = $3`
		}
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM production_runs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listArgs := append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + runColumns + ` FROM production_runs WHERE ` + where +
		` ORDER BY id DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.storage.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	runs := make([]entities.ProductionRun, 0, filter.Limit)
	for rows.Next() {
		p, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, *p)
	}
	return runs, total, rows.Err()
}

func (r *ProductionRepository) FindRun(ctx context.Context, workspaceID, id uint64) (*entities.ProductionRun, error) {
	return scanRun(r.storage.QueryRow(ctx,
		`SELECT `+runColumns+` FROM production_runs WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
}

func (r *ProductionRepository) CreateRun(ctx context.Context, run entities.ProductionRun) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO production_runs (workspace_id, order_id, stage, asset_id, operator_id,
			planned_qty, actual_qty, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, NOW(), NOW())
		RETURNING id
	`, run.WorkspaceID, run.OrderID, run.Stage, run.AssetID, run.OperatorID,
		run.PlannedQty, run.Status).Scan(&newID)
	return newID, err
}

func (r *ProductionRepository) UpdateRun(ctx context.Context, workspaceID, id uint64, run entities.ProductionRun) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE production_runs
		SET asset_id = $1, operator_id = $2, planned_qty = $3, actual_qty = $4,
			status = $5, started_at = $6, completed_at = $7, updated_at = NOW()
		WHERE workspace_id = $8 AND id = $9
	`, run.AssetID, run.OperatorID, run.PlannedQty, run.ActualQty,
		run.Status, run.StartedAt, run.CompletedAt, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProductionRepository) StageProgress(ctx context.Context, workspaceID, orderID uint64) ([]entities.StageProgress, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT stage, COALESCE(SUM(planned_qty), 0), COALESCE(SUM(actual_qty), 0)
		FROM production_runs
		WHERE workspace_id = $1 AND order_id = $2
		GROUP BY stage ORDER BY stage
	`, workspaceID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStageProgress(rows)
}

func (r *ProductionRepository) WIPByStage(ctx context.Context, workspaceID uint64) ([]entities.StageProgress, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT stage, COALESCE(SUM(planned_qty), 0), COALESCE(SUM(actual_qty), 0)
		FROM production_runs
		WHERE workspace_id = $1 AND status <> 'DONE'
		GROUP BY stage ORDER BY stage
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStageProgress(rows)
}

func scanStageProgress(rows pgx.Rows) ([]entities.StageProgress, error) {
	var progress []entities.StageProgress
	for rows.Next() {
		var sp entities.StageProgress
		if err := rows.Scan(&sp.Stage, &sp.PlannedQty, &sp.ActualQty); err != nil {
			return nil, err
		}
		progress = append(progress, sp)
	}
	return progress, rows.Err()
}

// AcceptedPiecesByOperator sums completed run quantities per operator
// between two dates; payroll uses this for piece-rate employees.
func (r *ProductionRepository) AcceptedPiecesByOperator(ctx context.Context, workspaceID uint64, from, to string) (map[uint64]int, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT operator_id, COALESCE(SUM(actual_qty), 0)
		FROM production_runs
		WHERE workspace_id = $1 AND status = 'DONE' AND operator_id IS NOT NULL
			AND completed_at >= $2::date AND completed_at < ($3::date + INTERVAL '1 day')
		GROUP BY operator_id
	`, workspaceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pieces := make(map[uint64]int)
	for rows.Next() {
		var operatorID uint64
		var qty int
		if err := rows.Scan(&operatorID, &qty); err != nil {
			return nil, err
		}
		pieces[operatorID] = qty
	}
	return pieces, rows.Err()
}

func (r *ProductionRepository) CreateInspection(ctx context.Context, insp entities.QCInspection) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO qc_inspections (workspace_id, run_id, inspector_id, sampled_qty, defect_qty,
			defect_reasons, passed, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`, insp.WorkspaceID, insp.RunID, insp.InspectorID, insp.SampledQty, insp.DefectQty,
		insp.DefectReasons, insp.Passed, insp.Notes).Scan(&newID)
	return newID, err
}

func (r *ProductionRepository) GetInspections(ctx context.Context, workspaceID uint64, runID *uint64, filter types.Filter) ([]entities.QCInspection, uint64, error) {
	where := `workspace_id = $1`
	args := []interface{}{workspaceID}
	if runID != nil {
		args = append(args, *runID)
		where += ` AND run_id = $2`
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM qc_inspections WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listArgs := append(args, filter.Limit, filter.Offset)
	query := `SELECT id, workspace_id, run_id, inspector_id, sampled_qty, defect_qty, defect_reasons, passed, notes, created_at
		FROM qc_inspections WHERE ` + where +
		` ORDER BY id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.storage.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	inspections := make([]entities.QCInspection, 0, filter.Limit)
	for rows.Next() {
		var q entities.QCInspection
		if err := rows.Scan(&q.ID, &q.WorkspaceID, &q.RunID, &q.InspectorID, &q.SampledQty,
			&q.DefectQty, &q.DefectReasons, &q.Passed, &q.Notes, &q.CreatedAt); err != nil {
			return nil, 0, err
		}
		inspections = append(inspections, q)
	}
	return inspections, total, rows.Err()
}

func (r *ProductionRepository) DefectTotals(ctx context.Context, workspaceID uint64) (int, int, error) {
	var sampled, defects int
	err := r.storage.QueryRow(ctx, `
		SELECT COALESCE(SUM(sampled_qty), 0), COALESCE(SUM(defect_qty), 0)
		FROM qc_inspections WHERE workspace_id = $1
	`, workspaceID).Scan(&sampled, &defects)
	return sampled, defects, err
}

