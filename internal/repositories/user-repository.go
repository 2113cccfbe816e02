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

var userMap = map[string]string{
	"id":         "u.id",
	"full_name":  "u.full_name",
	"email":      "u.email",
	"role":       "u.role",
	"active":     "u.active",
	"created_at": "u.created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.User, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.User, error)
	FindByIDs(ctx context.Context, workspaceID uint64, ids []uint64) (map[uint64]entities.User, error)
	FindByEmail(ctx context.Context, workspaceID uint64, email string) (*entities.User, error)
	FindByRoles(ctx context.Context, workspaceID uint64, roles []string) ([]entities.User, error)
	Create(ctx context.Context, user entities.User) (uint64, error)
	Update(ctx context.Context, workspaceID, id uint64, user entities.User) error
	Delete(ctx context.Context, workspaceID, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

const userColumns = `u.id, u.workspace_id, u.full_name, u.email, u.password, u.role, u.active, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.WorkspaceID, &u.FullName, &u.Email, &u.Password, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"u.full_name": pat},
				sq.ILike{"u.email": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(u.id)").From("users AS u").Where(sq.Eq{"u.workspace_id": workspaceID})
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, userMap)

	var total uint64
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	baseBuilder := psql.Select(userColumns).From("users AS u").Where(sq.Eq{"u.workspace_id": workspaceID})
	baseBuilder = applySearch(baseBuilder)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("u.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, userMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.workspace_id = $1 AND u.id = $2`, workspaceID, id))
}

func (r *UserRepository) FindByIDs(ctx context.Context, workspaceID uint64, ids []uint64) (map[uint64]entities.User, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.workspace_id = $1 AND u.id = ANY($2)`, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make(map[uint64]entities.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users[u.ID] = *u
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByEmail(ctx context.Context, workspaceID uint64, email string) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.workspace_id = $1 AND u.email = $2`, workspaceID, email))
}

func (r *UserRepository) FindByRoles(ctx context.Context, workspaceID uint64, roles []string) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.workspace_id = $1 AND u.role = ANY($2) AND u.active`,
		workspaceID, roles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user entities.User) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO users (workspace_id, full_name, email, password, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING id
	`, user.WorkspaceID, user.FullName, user.Email, user.Password, user.Role).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *UserRepository) Update(ctx context.Context, workspaceID, id uint64, user entities.User) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE users SET full_name = $1, email = $2, role = $3, active = $4, updated_at = NOW()
		WHERE workspace_id = $5 AND id = $6
	`, user.FullName, user.Email, user.Role, user.Active, workspaceID, id)
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET active = FALSE, updated_at = NOW() WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
