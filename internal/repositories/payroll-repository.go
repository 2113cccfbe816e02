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

type PayrollRepositoryInterface interface {
	GetPeriods(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.PayrollPeriod, uint64, error)
	FindPeriod(ctx context.Context, workspaceID, id uint64) (*entities.PayrollPeriod, error)
	CreatePeriod(ctx context.Context, period entities.PayrollPeriod) (uint64, error)
	ClosePeriod(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error

	GetPayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error)
	FindPayslip(ctx context.Context, workspaceID, id uint64) (*entities.Payslip, error)
	ReplacePayslips(ctx context.Context, tx pgx.Tx, periodID uint64, slips []entities.Payslip) error
	AdjustPayslip(ctx context.Context, workspaceID, id uint64, allowances, deductions float64) error
	PayrollTotal(ctx context.Context, workspaceID, periodID uint64) (float64, error)
}

type PayrollRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPayrollRepository(storage *pgxpool.Pool, logger *zap.Logger) PayrollRepositoryInterface {
	return &PayrollRepository{storage: storage, logger: logger}
}

const periodColumns = `id, workspace_id, name, start_date, end_date, status, created_at, updated_at`

func scanPeriod(row pgx.Row) (*entities.PayrollPeriod, error) {
	var p entities.PayrollPeriod
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayrollRepository) GetPeriods(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.PayrollPeriod, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM payroll_periods WHERE workspace_id = $1`, workspaceID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT `+periodColumns+` FROM payroll_periods WHERE workspace_id = $1
		 ORDER BY start_date DESC LIMIT $2 OFFSET $3`,
		workspaceID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	periods := make([]entities.PayrollPeriod, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, 0, err
		}
		periods = append(periods, *p)
	}
	return periods, total, rows.Err()
}

func (r *PayrollRepository) FindPeriod(ctx context.Context, workspaceID, id uint64) (*entities.PayrollPeriod, error) {
	return scanPeriod(r.storage.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM payroll_periods WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
}

func (r *PayrollRepository) CreatePeriod(ctx context.Context, period entities.PayrollPeriod) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO payroll_periods (workspace_id, name, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`, period.WorkspaceID, period.Name, period.StartDate, period.EndDate, period.Status).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *PayrollRepository) ClosePeriod(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	result, err := tx.Exec(ctx, `
		UPDATE payroll_periods SET status = 'CLOSED', updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND status = 'OPEN'
	`, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const payslipColumns = `p.id, p.period_id, p.employee_id, p.pieces,
	p.base_amount, p.piece_amount, p.allowances, p.deductions, p.net_amount, p.generated_at`

func scanPayslip(row pgx.Row) (*entities.Payslip, error) {
	var p entities.Payslip
	err := row.Scan(&p.ID, &p.PeriodID, &p.EmployeeID, &p.Pieces,
		&p.BaseAmount, &p.PieceAmount, &p.Allowances, &p.Deductions, &p.NetAmount, &p.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PayrollRepository) GetPayslips(ctx context.Context, workspaceID, periodID uint64) ([]entities.Payslip, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+payslipColumns+`, e.id, e.full_name, e.department, e.position, e.pay_scheme
		FROM payslips p
		JOIN payroll_periods pp ON p.period_id = pp.id
		JOIN employees e ON p.employee_id = e.id
		WHERE pp.workspace_id = $1 AND p.period_id = $2
		ORDER BY e.full_name
	`, workspaceID, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []entities.Payslip
	for rows.Next() {
		var p entities.Payslip
		var e entities.Employee
		if err := rows.Scan(&p.ID, &p.PeriodID, &p.EmployeeID, &p.Pieces,
			&p.BaseAmount, &p.PieceAmount, &p.Allowances, &p.Deductions, &p.NetAmount, &p.GeneratedAt,
			&e.ID, &e.FullName, &e.Department, &e.Position, &e.PayScheme); err != nil {
			return nil, err
		}
		p.Employee = &e
		slips = append(slips, p)
	}
	return slips, rows.Err()
}

func (r *PayrollRepository) FindPayslip(ctx context.Context, workspaceID, id uint64) (*entities.Payslip, error) {
	return scanPayslip(r.storage.QueryRow(ctx, `
		SELECT `+payslipColumns+`
		FROM payslips p JOIN payroll_periods pp ON p.period_id = pp.id
		WHERE pp.workspace_id = $1 AND p.id = $2
	`, workspaceID, id))
}

// ReplacePayslips regenerates the period from scratch. Deleting first
// keeps reruns idempotent while the period is still open.
func (r *PayrollRepository) ReplacePayslips(ctx context.Context, tx pgx.Tx, periodID uint64, slips []entities.Payslip) error {
	if _, err := tx.Exec(ctx, `DELETE FROM payslips WHERE period_id = $1`, periodID); err != nil {
		return err
	}
	for _, s := range slips {
		_, err := tx.Exec(ctx, `
			INSERT INTO payslips (period_id, employee_id, pieces, base_amount, piece_amount,
				allowances, deductions, net_amount, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`, periodID, s.EmployeeID, s.Pieces, s.BaseAmount, s.PieceAmount,
			s.Allowances, s.Deductions, s.NetAmount)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PayrollRepository) AdjustPayslip(ctx context.Context, workspaceID, id uint64, allowances, deductions float64) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE payslips p SET allowances = $1, deductions = $2,
			net_amount = p.base_amount + p.piece_amount + $1 - $2
		FROM payroll_periods pp
		WHERE p.period_id = pp.id AND pp.workspace_id = $3 AND p.id = $4 AND pp.status = 'OPEN'
	`, allowances, deductions, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PayrollRepository) PayrollTotal(ctx context.Context, workspaceID, periodID uint64) (float64, error) {
	var total float64
	err := r.storage.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.net_amount), 0)
		FROM payslips p JOIN payroll_periods pp ON p.period_id = pp.id
		WHERE pp.workspace_id = $1 AND p.period_id = $2
	`, workspaceID, periodID).Scan(&total)
	return total, err
}
