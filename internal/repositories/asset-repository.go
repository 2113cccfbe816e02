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

var assetMap = map[string]string{
	"id":         "a.id",
	"code":       "a.code",
	"name":       "a.name",
	"category":   "a.category",
	"status":     "a.status",
	"created_at": "a.created_at",
}

type AssetRepositoryInterface interface {
	GetAssets(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Asset, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Asset, error)
	Create(ctx context.Context, tx pgx.Tx, asset entities.Asset) (uint64, error)
	Update(ctx context.Context, workspaceID, id uint64, asset entities.Asset) error
	UpdateStatus(ctx context.Context, workspaceID, id uint64, status string) error
}

type AssetRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAssetRepository(storage *pgxpool.Pool, logger *zap.Logger) AssetRepositoryInterface {
	return &AssetRepository{storage: storage, logger: logger}
}

const assetColumns = `a.id, a.workspace_id, a.code, a.name, a.category, a.location, a.status,
	a.purchase_date, a.created_at, a.updated_at`

func scanAsset(row pgx.Row) (*entities.Asset, error) {
	var a entities.Asset
	err := row.Scan(&a.ID, &a.WorkspaceID, &a.Code, &a.Name, &a.Category, &a.Location, &a.Status,
		&a.PurchaseDate, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) GetAssets(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Asset, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"a.code": pat},
				sq.ILike{"a.name": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(a.id)").From("assets AS a").Where(sq.Eq{"a.workspace_id": workspaceID})
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, assetMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Asset{}, 0, nil
	}

	baseBuilder := psql.Select(assetColumns).From("assets AS a").Where(sq.Eq{"a.workspace_id": workspaceID})
	baseBuilder = applySearch(baseBuilder)
	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("a.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, assetMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	assets := make([]entities.Asset, 0, filter.Limit)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, *a)
	}
	return assets, total, rows.Err()
}

func (r *AssetRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Asset, error) {
	return scanAsset(r.storage.QueryRow(ctx,
		`SELECT `+assetColumns+` FROM assets a WHERE a.workspace_id = $1 AND a.id = $2`, workspaceID, id))
}

func (r *AssetRepository) Create(ctx context.Context, tx pgx.Tx, asset entities.Asset) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO assets (workspace_id, code, name, category, location, status, purchase_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`, asset.WorkspaceID, asset.Code, asset.Name, asset.Category, asset.Location, asset.Status, asset.PurchaseDate).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *AssetRepository) Update(ctx context.Context, workspaceID, id uint64, asset entities.Asset) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE assets SET name = $1, category = $2, location = $3, status = $4, purchase_date = $5, updated_at = NOW()
		WHERE workspace_id = $6 AND id = $7
	`, asset.Name, asset.Category, asset.Location, asset.Status, asset.PurchaseDate, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetRepository) UpdateStatus(ctx context.Context, workspaceID, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE assets SET status = $1, updated_at = NOW() WHERE workspace_id = $2 AND id = $3`,
		status, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
