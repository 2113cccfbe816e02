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

var employeeMap = map[string]string{
	"id":         "e.id",
	"full_name":  "e.full_name",
	"department": "e.department",
	"position":   "e.position",
	"pay_scheme": "e.pay_scheme",
	"active":     "e.active",
	"hired_at":   "e.hired_at",
	"created_at": "e.created_at",
}

type EmployeeRepositoryInterface interface {
	GetEmployees(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Employee, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Employee, error)
	FindActive(ctx context.Context, workspaceID uint64) ([]entities.Employee, error)
	Create(ctx context.Context, employee entities.Employee) (uint64, error)
	Update(ctx context.Context, workspaceID, id uint64, employee entities.Employee) error
	Delete(ctx context.Context, workspaceID, id uint64) error
}

type EmployeeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEmployeeRepository(storage *pgxpool.Pool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage, logger: logger}
}

const employeeColumns = `e.id, e.workspace_id, e.user_id, e.full_name, e.department, e.position,
	e.pay_scheme, e.base_salary, e.piece_rate, e.hired_at, e.active, e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(&e.ID, &e.WorkspaceID, &e.UserID, &e.FullName, &e.Department, &e.Position,
		&e.PayScheme, &e.BaseSalary, &e.PieceRate, &e.HiredAt, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetEmployees(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Employee, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"e.full_name": pat},
				sq.ILike{"e.department": pat},
				sq.ILike{"e.position": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(e.id)").From("employees AS e").Where(sq.Eq{"e.workspace_id": workspaceID})
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, employeeMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Employee{}, 0, nil
	}

	baseBuilder := psql.Select(employeeColumns).From("employees AS e").Where(sq.Eq{"e.workspace_id": workspaceID})
	baseBuilder = applySearch(baseBuilder)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("e.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, employeeMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0, filter.Limit)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, *e)
	}
	return employees, total, rows.Err()
}

func (r *EmployeeRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Employee, error) {
	return scanEmployee(r.storage.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.workspace_id = $1 AND e.id = $2`, workspaceID, id))
}

func (r *EmployeeRepository) FindActive(ctx context.Context, workspaceID uint64) ([]entities.Employee, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.workspace_id = $1 AND e.active ORDER BY e.id`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []entities.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Create(ctx context.Context, employee entities.Employee) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO employees (workspace_id, user_id, full_name, department, position,
			pay_scheme, base_salary, piece_rate, hired_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW(), NOW())
		RETURNING id
	`, employee.WorkspaceID, employee.UserID, employee.FullName, employee.Department, employee.Position,
		employee.PayScheme, employee.BaseSalary, employee.PieceRate, employee.HiredAt).Scan(&newID)
	return newID, err
}

func (r *EmployeeRepository) Update(ctx context.Context, workspaceID, id uint64, employee entities.Employee) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE employees SET full_name = $1, department = $2, position = $3,
			pay_scheme = $4, base_salary = $5, piece_rate = $6, active = $7, updated_at = NOW()
		WHERE workspace_id = $8 AND id = $9
	`, employee.FullName, employee.Department, employee.Position,
		employee.PayScheme, employee.BaseSalary, employee.PieceRate, employee.Active, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE employees SET active = FALSE, updated_at = NOW() WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
