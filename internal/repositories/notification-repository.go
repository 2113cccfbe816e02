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

type NotificationRepositoryInterface interface {
	GetTemplates(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.NotificationTemplate, uint64, error)
	FindTemplate(ctx context.Context, workspaceID, id uint64) (*entities.NotificationTemplate, error)
	FindTemplateByName(ctx context.Context, workspaceID uint64, name string) (*entities.NotificationTemplate, error)
	CreateTemplate(ctx context.Context, tpl entities.NotificationTemplate) (uint64, error)
	UpdateTemplate(ctx context.Context, workspaceID, id uint64, tpl entities.NotificationTemplate) error

	CreateNotification(ctx context.Context, n entities.Notification) (uint64, error)
	GetForRecipient(ctx context.Context, workspaceID, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error)
	MarkRead(ctx context.Context, workspaceID, recipientID, id uint64) error
	UnreadCount(ctx context.Context, workspaceID, recipientID uint64) (int, error)
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

const templateColumns = `id, workspace_id, name, subject, body, created_at, updated_at`

func scanTemplate(row pgx.Row) (*entities.NotificationTemplate, error) {
	var t entities.NotificationTemplate
	err := row.Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *NotificationRepository) GetTemplates(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.NotificationTemplate, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notification_templates WHERE workspace_id = $1`, workspaceID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT `+templateColumns+` FROM notification_templates
		 WHERE workspace_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		workspaceID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	templates := make([]entities.NotificationTemplate, 0, filter.Limit)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		templates = append(templates, *t)
	}
	return templates, total, rows.Err()
}

func (r *NotificationRepository) FindTemplate(ctx context.Context, workspaceID, id uint64) (*entities.NotificationTemplate, error) {
	return scanTemplate(r.storage.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM notification_templates WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
}

func (r *NotificationRepository) FindTemplateByName(ctx context.Context, workspaceID uint64, name string) (*entities.NotificationTemplate, error) {
	return scanTemplate(r.storage.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM notification_templates WHERE workspace_id = $1 AND name = $2`, workspaceID, name))
}

func (r *NotificationRepository) CreateTemplate(ctx context.Context, tpl entities.NotificationTemplate) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO notification_templates (workspace_id, name, subject, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`, tpl.WorkspaceID, tpl.Name, tpl.Subject, tpl.Body).Scan(&newID)
	if isUniqueViolation(err) {
		return 0, apperrors.ErrConflict
	}
	return newID, err
}

func (r *NotificationRepository) UpdateTemplate(ctx context.Context, workspaceID, id uint64, tpl entities.NotificationTemplate) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE notification_templates SET subject = $1, body = $2, updated_at = NOW()
		WHERE workspace_id = $3 AND id = $4
	`, tpl.Subject, tpl.Body, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n entities.Notification) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO notifications (workspace_id, template_id, recipient_id, subject, body, status, event_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`, n.WorkspaceID, n.TemplateID, n.RecipientID, n.Subject, n.Body, n.Status, n.EventID).Scan(&newID)
	return newID, err
}

func (r *NotificationRepository) GetForRecipient(ctx context.Context, workspaceID, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	var total uint64
	if err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE workspace_id = $1 AND recipient_id = $2`,
		workspaceID, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, `
		SELECT id, workspace_id, template_id, recipient_id, subject, body, status, event_id, read_at, created_at
		FROM notifications
		WHERE workspace_id = $1 AND recipient_id = $2
		ORDER BY id DESC LIMIT $3 OFFSET $4
	`, workspaceID, recipientID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0, filter.Limit)
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.WorkspaceID, &n.TemplateID, &n.RecipientID, &n.Subject,
			&n.Body, &n.Status, &n.EventID, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	return notifications, total, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, workspaceID, recipientID, id uint64) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE notifications SET read_at = NOW()
		WHERE workspace_id = $1 AND recipient_id = $2 AND id = $3 AND read_at IS NULL
	`, workspaceID, recipientID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, workspaceID, recipientID uint64) (int, error) {
	var count int
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE workspace_id = $1 AND recipient_id = $2 AND read_at IS NULL`,
		workspaceID, recipientID).Scan(&count)
	return count, err
}
