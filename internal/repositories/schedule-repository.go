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

type ScheduleRepositoryInterface interface {
	GetSchedules(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceSchedule, error)
	FindDue(ctx context.Context, workspaceID uint64) ([]entities.MaintenanceSchedule, error)
	Create(ctx context.Context, schedule entities.MaintenanceSchedule) (uint64, error)
	Update(ctx context.Context, workspaceID, id uint64, schedule entities.MaintenanceSchedule) error
	Advance(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error
}

type ScheduleRepository struct {
	storage *pgxpool.Pool
}

func NewScheduleRepository(storage *pgxpool.Pool) ScheduleRepositoryInterface {
	return &ScheduleRepository{storage: storage}
}

const scheduleColumns = `s.id, s.workspace_id, s.asset_id, s.title, s.interval_days,
	s.last_done_at, s.next_due_at, s.active, s.created_at, s.updated_at,
	COALESCE(a.code, ''), COALESCE(a.name, '')`

func scanSchedule(row pgx.Row) (*entities.MaintenanceSchedule, error) {
	var s entities.MaintenanceSchedule
	var assetCode, assetName string
	err := row.Scan(&s.ID, &s.WorkspaceID, &s.AssetID, &s.Title, &s.IntervalDays,
		&s.LastDoneAt, &s.NextDueAt, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		&assetCode, &assetName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if assetCode != "" {
		s.Asset = &entities.Asset{ID: s.AssetID, Code: assetCode, Name: assetName}
	}
	return &s, nil
}

func (r *ScheduleRepository) GetSchedules(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.MaintenanceSchedule, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM maintenance_schedules WHERE workspace_id = $1`, workspaceID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM maintenance_schedules s LEFT JOIN assets a ON s.asset_id = a.id
		WHERE s.workspace_id = $1
		ORDER BY s.next_due_at LIMIT $2 OFFSET $3
	`, workspaceID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	schedules := make([]entities.MaintenanceSchedule, 0, filter.Limit)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, total, rows.Err()
}

func (r *ScheduleRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.MaintenanceSchedule, error) {
	return scanSchedule(r.storage.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM maintenance_schedules s LEFT JOIN assets a ON s.asset_id = a.id
		WHERE s.workspace_id = $1 AND s.id = $2
	`, workspaceID, id))
}

// FindDue lists active schedules whose next_due_at has passed; the
// maintenance service turns each into a generated work order.
func (r *ScheduleRepository) FindDue(ctx context.Context, workspaceID uint64) ([]entities.MaintenanceSchedule, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM maintenance_schedules s LEFT JOIN assets a ON s.asset_id = a.id
		WHERE s.workspace_id = $1 AND s.active AND s.next_due_at <= NOW()
		ORDER BY s.next_due_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []entities.MaintenanceSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, rows.Err()
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule entities.MaintenanceSchedule) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO maintenance_schedules (workspace_id, asset_id, title, interval_days,
			next_due_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING id
	`, schedule.WorkspaceID, schedule.AssetID, schedule.Title, schedule.IntervalDays,
		schedule.NextDueAt).Scan(&newID)
	return newID, err
}

func (r *ScheduleRepository) Update(ctx context.Context, workspaceID, id uint64, schedule entities.MaintenanceSchedule) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE maintenance_schedules SET title = $1, interval_days = $2, next_due_at = $3, active = $4, updated_at = NOW()
		WHERE workspace_id = $5 AND id = $6
	`, schedule.Title, schedule.IntervalDays, schedule.NextDueAt, schedule.Active, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Advance marks the schedule done now and pushes next_due_at one
// interval forward from the completion time, not from the old due date.
func (r *ScheduleRepository) Advance(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	result, err := tx.Exec(ctx, `
		UPDATE maintenance_schedules
		SET last_done_at = NOW(), next_due_at = NOW() + (interval_days || ' days')::interval, updated_at = NOW()
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
