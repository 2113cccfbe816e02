package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"apparel-erp/internal/entities"
	apperrors "apparel-erp/pkg/errors"
)

type WorkspaceRepositoryInterface interface {
	GetWorkspaces(ctx context.Context, limit, offset uint64) ([]entities.Workspace, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Workspace, error)
	FindBySlug(ctx context.Context, slug string) (*entities.Workspace, error)
	Create(ctx context.Context, ws entities.Workspace) (uint64, error)
	Update(ctx context.Context, id uint64, name string) error
	Delete(ctx context.Context, id uint64) error
}

type WorkspaceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkspaceRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkspaceRepositoryInterface {
	return &WorkspaceRepository{storage: storage, logger: logger}
}

func scanWorkspace(row pgx.Row) (*entities.Workspace, error) {
	var w entities.Workspace
	err := row.Scan(&w.ID, &w.Name, &w.Slug, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkspaceRepository) GetWorkspaces(ctx context.Context, limit, offset uint64) ([]entities.Workspace, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM workspaces`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM workspaces ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var workspaces []entities.Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, 0, err
		}
		workspaces = append(workspaces, *w)
	}
	return workspaces, total, rows.Err()
}

func (r *WorkspaceRepository) FindByID(ctx context.Context, id uint64) (*entities.Workspace, error) {
	return scanWorkspace(r.storage.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM workspaces WHERE id = $1`, id))
}

func (r *WorkspaceRepository) FindBySlug(ctx context.Context, slug string) (*entities.Workspace, error) {
	return scanWorkspace(r.storage.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM workspaces WHERE slug = $1`, slug))
}

func (r *WorkspaceRepository) Create(ctx context.Context, ws entities.Workspace) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO workspaces (name, slug, created_at, updated_at) VALUES ($1, $2, NOW(), NOW()) RETURNING id`,
		ws.Name, ws.Slug).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *WorkspaceRepository) Update(ctx context.Context, id uint64, name string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE workspaces SET name = $1, updated_at = NOW() WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
