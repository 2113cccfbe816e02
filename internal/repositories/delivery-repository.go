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

type DeliveryRepositoryInterface interface {
	GetDeliveries(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Delivery, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Delivery, error)
	Create(ctx context.Context, tx pgx.Tx, delivery entities.Delivery) (uint64, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error
	MarkDelivered(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error

	GetStops(ctx context.Context, deliveryID uint64) ([]entities.DeliveryStop, error)
	CreateStops(ctx context.Context, tx pgx.Tx, deliveryID uint64, stops []entities.DeliveryStop) error
	ReorderStops(ctx context.Context, tx pgx.Tx, deliveryID uint64, order map[uint64]int) error

	OnTimeStats(ctx context.Context, workspaceID uint64) (delivered int, onTime int, err error)
}

type DeliveryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDeliveryRepository(storage *pgxpool.Pool, logger *zap.Logger) DeliveryRepositoryInterface {
	return &DeliveryRepository{storage: storage, logger: logger}
}

const deliveryColumns = `id, workspace_id, order_id, vehicle_id, driver_name, status,
	scheduled_at, delivered_at, created_at, updated_at`

func scanDelivery(row pgx.Row) (*entities.Delivery, error) {
	var d entities.Delivery
	err := row.Scan(&d.ID, &d.WorkspaceID, &d.OrderID, &d.VehicleID, &d.DriverName, &d.Status,
		&d.ScheduledAt, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepository) GetDeliveries(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Delivery, uint64, error) {
	where := `workspace_id = $1`
	args := []interface{}{workspaceID}
	if v, ok := filter.Filter["status"]; ok {
		args = append(args, v)
		where += ` AND status = $2`
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM deliveries WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE ` + where + ` ORDER BY scheduled_at DESC`
	if len(args) == 1 {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $3 OFFSET $4`
	}
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	deliveries := make([]entities.Delivery, 0, filter.Limit)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, 0, err
		}
		deliveries = append(deliveries, *d)
	}
	return deliveries, total, rows.Err()
}

func (r *DeliveryRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Delivery, error) {
	d, err := scanDelivery(r.storage.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
	if err != nil {
		return nil, err
	}
	stops, err := r.GetStops(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Stops = stops
	return d, nil
}

func (r *DeliveryRepository) Create(ctx context.Context, tx pgx.Tx, delivery entities.Delivery) (uint64, error) {
	var newID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO deliveries (workspace_id, order_id, vehicle_id, driver_name, status, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, delivery.WorkspaceID, delivery.OrderID, delivery.VehicleID, delivery.DriverName,
		delivery.Status, delivery.ScheduledAt).Scan(&newID)
	return newID, err
}

func (r *DeliveryRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, workspaceID, id uint64, status string) error {
	result, err := tx.Exec(ctx,
		`UPDATE deliveries SET status = $1, updated_at = NOW() WHERE workspace_id = $2 AND id = $3`,
		status, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepository) MarkDelivered(ctx context.Context, tx pgx.Tx, workspaceID, id uint64) error {
	result, err := tx.Exec(ctx, `
		UPDATE deliveries SET status = 'DELIVERED', delivered_at = NOW(), updated_at = NOW()
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

func (r *DeliveryRepository) GetStops(ctx context.Context, deliveryID uint64) ([]entities.DeliveryStop, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, delivery_id, seq, address, lat, lng
		FROM delivery_stops WHERE delivery_id = $1 ORDER BY seq
	`, deliveryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []entities.DeliveryStop
	for rows.Next() {
		var s entities.DeliveryStop
		if err := rows.Scan(&s.ID, &s.DeliveryID, &s.Seq, &s.Address, &s.Lat, &s.Lng); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (r *DeliveryRepository) CreateStops(ctx context.Context, tx pgx.Tx, deliveryID uint64, stops []entities.DeliveryStop) error {
	for _, s := range stops {
		_, err := tx.Exec(ctx, `
			INSERT INTO delivery_stops (delivery_id, seq, address, lat, lng)
			VALUES ($1, $2, $3, $4, $5)
		`, deliveryID, s.Seq, s.Address, s.Lat, s.Lng)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReorderStops rewrites seq for each stop id after route planning.
func (r *DeliveryRepository) ReorderStops(ctx context.Context, tx pgx.Tx, deliveryID uint64, order map[uint64]int) error {
	for stopID, seq := range order {
		result, err := tx.Exec(ctx,
			`UPDATE delivery_stops SET seq = $1 WHERE delivery_id = $2 AND id = $3`,
			seq, deliveryID, stopID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

func (r *DeliveryRepository) OnTimeStats(ctx context.Context, workspaceID uint64) (int, int, error) {
	var delivered, onTime int
	err := r.storage.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'DELIVERED'),
			COUNT(*) FILTER (WHERE status = 'DELIVERED' AND delivered_at <= scheduled_at)
		FROM deliveries WHERE workspace_id = $1
	`, workspaceID).Scan(&delivered, &onTime)
	return delivered, onTime, err
}
