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

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Client, uint64, error)
	FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Client, error)
	Create(ctx context.Context, client entities.Client) (uint64, error)
	Update(ctx context.Context, workspaceID, id uint64, client entities.Client) error
	Delete(ctx context.Context, workspaceID, id uint64) error
}

type ClientRepository struct {
	storage *pgxpool.Pool
}

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &ClientRepository{storage: storage}
}

const clientColumns = `id, workspace_id, name, contact_name, email, phone_number, address, created_at, updated_at`

func scanClient(row pgx.Row) (*entities.Client, error) {
	var c entities.Client
	err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.ContactName, &c.Email, &c.PhoneNumber, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetClients(ctx context.Context, workspaceID uint64, filter types.Filter) ([]entities.Client, uint64, error) {
	var total uint64
	pat := "%" + filter.Search + "%"
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE workspace_id = $1 AND ($2 = '%%' OR name ILIKE $2)`,
		workspaceID, pat).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE workspace_id = $1 AND ($2 = '%%' OR name ILIKE $2)
		 ORDER BY id DESC LIMIT $3 OFFSET $4`,
		workspaceID, pat, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clients := make([]entities.Client, 0, filter.Limit)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, *c)
	}
	return clients, total, rows.Err()
}

func (r *ClientRepository) FindByID(ctx context.Context, workspaceID, id uint64) (*entities.Client, error) {
	return scanClient(r.storage.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE workspace_id = $1 AND id = $2`, workspaceID, id))
}

func (r *ClientRepository) Create(ctx context.Context, client entities.Client) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO clients (workspace_id, name, contact_name, email, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, client.WorkspaceID, client.Name, client.ContactName, client.Email, client.PhoneNumber, client.Address).Scan(&newID)
	return newID, err
}

func (r *ClientRepository) Update(ctx context.Context, workspaceID, id uint64, client entities.Client) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE clients SET name = $1, contact_name = $2, email = $3, phone_number = $4, address = $5, updated_at = NOW()
		WHERE workspace_id = $6 AND id = $7
	`, client.Name, client.ContactName, client.Email, client.PhoneNumber, client.Address, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, workspaceID, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`DELETE FROM clients WHERE workspace_id = $1 AND id = $2`, workspaceID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
