package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"apparel-erp/internal/entities"
	apperrors "apparel-erp/pkg/errors"
	"apparel-erp/pkg/types"
)

type VehicleRepositoryInterface interface {
	GetVehicles(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Vehicle, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Vehicle, error)
	Create(ctx context.Context, vehicle entities.Vehicle) (uint64, error)
	Update(ctx context.Context, workspaceID, id uint64, vehicle entities.Vehicle) error
	Delete(ctx context.Context, workspaceID, id uint64) error
}

type VehicleRepository struct {
	storage *pgxpool.Pool
}

func NewVehicleRepository(storage *pgxpool.Pool) VehicleRepositoryInterface {
	return &VehicleRepository{storage: storage}
}

const vehicleColumns = `id, workspace_id, plate_no, model, capacity_kg, active, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entities.Vehicle, error) {
	var v entities.Vehicle
	err := row.Scan(&v.ID, &v.WorkspaceID, &v.PlateNo, &v.Model, &v.CapacityKg, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetVehicles(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Vehicle, uint64, error) {
	var total uint64
	pat := "%" + filter.Search + "%"
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM vehicles WHERE workspace_id = $1 AND ($2 = '%%' OR plate_no ILIKE $2 OR model ILIKE $2)`,
		workspaceID, pat).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles
		 WHERE workspace_id = $1 AND ($2 = '%%' OR plate_no ILIKE $2 OR model ILIKE $2)
		 ORDER BY id DESC LIMIT $3 OFFSET $4`,
		workspaceID, pat, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles := make([]entities.Vehicle, 0, filter.Limit)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, total, rows.Err()
}

func (r *VehicleRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Vehicle, error) {
	return scanVehicle(r.storage.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle entities.Vehicle) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO vehicles (workspace_id, plate_no, model, capacity_kg, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		RETURNING id
	`, vehicle.WorkspaceID, vehicle.PlateNo, vehicle.Model, vehicle.CapacityKg).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *VehicleRepository) Update(ctx context.Context, workspaceID, id uint64, vehicle entities.Vehicle) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE vehicles SET plate_no = $1, model = $2, capacity_kg = $3, active = $4, updated_at = NOW()
		WHERE workspace_id = $5 AND id = $6
	`, vehicle.PlateNo, vehicle.Model, vehicle.CapacityKg, vehicle.Active, workspaceID, id)
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

func (r *VehicleRepository) Delete(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE vehicles SET active = FALSE, updated_at = NOW() WHERE workspace_id = $1 AND id = $2`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
