package repositories

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"apparel-erp/internal/entities"
	"apparel-erp/pkg/types"
)

// AuditRepositoryInterface is append-only. There is no update or delete.
type AuditRepositoryInterface interface {
	Create(ctx context.Context, log entities.AuditLog) (uint64, error)
	GetLogs(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.AuditLog, uint64, error)
}

type AuditRepository struct {
	storage *pgxpool.Pool
}

func NewAuditRepository(storage *pgxpool.Pool) AuditRepositoryInterface {
	return &AuditRepository{storage: storage}
}

func (r *AuditRepository) Create(ctx context.Context, log entities.AuditLog) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO audit_logs (workspace_id, actor_id, entity_type, entity_id, action, before, after, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`, log.WorkspaceID, log.ActorID, log.EntityType, log.EntityID, log.Action,
		log.Before, log.After, log.BatchID).Scan(&newID)
	return newID, err
}

func (r *AuditRepository) GetLogs(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.AuditLog, uint64, error) {
	where := `workspace_id = $1`
	args := []interface{}{workspaceID}

	if v, ok := filter.Filter["entity_type"]; ok {
		args = append(args, v)
		where += ` AND entity_type = $2`
	}
	if v, ok := filter.Filter["entity_id"]; ok {
		args = append(args, v)
		switch len(args) {
		case 2:
			where += ` AND entity_id = $2`
		case 3:
			where += ` AND entity_id = $3`
		}
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT id, workspace_id, actor_id, entity_type, entity_id, action, before, after, batch_id, created_at
		FROM audit_logs WHERE ` + where +
		` ORDER BY id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := make([]entities.AuditLog, 0, filter.Limit)
	for rows.Next() {
		var l entities.AuditLog
		if err := rows.Scan(&l.ID, &l.WorkspaceID, &l.ActorID, &l.EntityType, &l.EntityID,
			&l.Action, &l.Before, &l.After, &l.BatchID, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
