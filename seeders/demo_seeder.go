package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"apparel-erp/pkg/constants"
)

const (
	demoWorkspaceName = "Demo Apparel Factory"
	demoWorkspaceSlug = "demo"
	demoAdminEmail    = "admin@demo.local"
	demoAdminPassword = "admin123"
)

// SeedDemoWorkspace creates the demo tenant with an admin user and a
// small set of master data. Safe to run repeatedly.
func SeedDemoWorkspace(db *pgxpool.Pool) error {
	ctx := context.Background()

	workspaceID, err := ensureWorkspace(ctx, db)
	if err != nil {
		return err
	}
	if err := ensureAdmin(ctx, db, workspaceID); err != nil {
		return err
	}
	if err := seedMasterData(ctx, db, workspaceID); err != nil {
		return err
	}

	log.Printf("demo workspace ready (slug=%s, admin=%s)", demoWorkspaceSlug, demoAdminEmail)
	return nil
}

func ensureWorkspace(ctx context.Context, db *pgxpool.Pool) (uint64, error) {
	var id uint64
	err := db.QueryRow(ctx, "SELECT id FROM workspaces WHERE slug = $1", demoWorkspaceSlug).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("lookup demo workspace: %w", err)
	}

	err = db.QueryRow(ctx,
		"INSERT INTO workspaces (name, slug) VALUES ($1, $2) RETURNING id",
		demoWorkspaceName, demoWorkspaceSlug,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert demo workspace: %w", err)
	}
	return id, nil
}

func ensureAdmin(ctx context.Context, db *pgxpool.Pool, workspaceID uint64) error {
	var id uint64
	err := db.QueryRow(ctx,
		"SELECT id FROM users WHERE workspace_id = $1 AND email = $2",
		workspaceID, demoAdminEmail,
	).Scan(&id)
	if err == nil {
		log.Println("demo admin already exists, skipping")
		return nil
	}
	if err != pgx.ErrNoRows {
		return fmt.Errorf("lookup demo admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (workspace_id, full_name, email, password, role, active)
		VALUES ($1, 'Demo Admin', $2, $3, $4, TRUE)
	`, workspaceID, demoAdminEmail, string(hash), constants.RoleAdmin)
	if err != nil {
		return fmt.Errorf("insert demo admin: %w", err)
	}
	return nil
}

func seedMasterData(ctx context.Context, db *pgxpool.Pool, workspaceID uint64) error {
	var clientCount int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM clients WHERE workspace_id = $1", workspaceID).Scan(&clientCount); err != nil {
		return fmt.Errorf("count clients: %w", err)
	}
	if clientCount > 0 {
		log.Println("demo master data already present, skipping")
		return nil
	}

	_, err := db.Exec(ctx, `
		INSERT INTO clients (workspace_id, name, contact_name, email) VALUES
		($1, 'Northwind Retail', 'Dana Cole', 'dana@northwind.example'),
		($1, 'Atlas Sportswear', 'Iman Karimov', 'iman@atlas.example')
	`, workspaceID)
	if err != nil {
		return fmt.Errorf("insert demo clients: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO employees (workspace_id, full_name, department, position, pay_scheme, base_salary, piece_rate) VALUES
		($1, 'Zarina Rahimova', 'SEWING', 'Operator', 'PIECE_RATE', 0, 0.85),
		($1, 'Farid Nazarov', 'CUTTING', 'Operator', 'PIECE_RATE', 0, 0.60),
		($1, 'Malika Saidova', 'QC', 'Inspector', 'SALARIED', 5200, 0)
	`, workspaceID)
	if err != nil {
		return fmt.Errorf("insert demo employees: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO assets (workspace_id, code, name, category, status) VALUES
		($1, 'AST-SEED-0001', 'Juki DDL-8700 Sewing Station', 'SEWING', 'ACTIVE'),
		($1, 'AST-SEED-0002', 'Eastman Blue Streak Cutter', 'CUTTING', 'ACTIVE')
	`, workspaceID)
	if err != nil {
		return fmt.Errorf("insert demo assets: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO vehicles (workspace_id, plate_no, model, capacity_kg) VALUES
		($1, '0101AB01', 'Isuzu NPR 75', 3500)
	`, workspaceID)
	if err != nil {
		return fmt.Errorf("insert demo vehicle: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO notification_templates (workspace_id, name, subject, body) VALUES
		($1, 'order_status_changed', 'Order {{po_number}} update', 'Order {{po_number}} moved to {{status}}.'),
		($1, 'delivery_scheduled', 'Delivery scheduled', 'A delivery for order {{po_number}} is scheduled at {{scheduled_at}}.')
	`, workspaceID)
	if err != nil {
		return fmt.Errorf("insert demo templates: %w", err)
	}

	return nil
}
