package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// tableSpec names one legacy table and the column order it is copied in.
// Source and target schemas share table and column names.
type tableSpec struct {
	Name    string
	Columns []string
}

// legacyTables is the copy order; parents before children so foreign
// keys resolve.
var legacyTables = []tableSpec{
	{"workspaces", []string{"id", "name", "slug", "created_at", "updated_at"}},
	{"users", []string{"id", "workspace_id", "full_name", "email", "password", "role", "active", "created_at", "updated_at"}},
	{"clients", []string{"id", "workspace_id", "name", "contact_name", "email", "phone_number", "address", "created_at", "updated_at"}},
	{"orders", []string{"id", "workspace_id", "client_id", "po_number", "product_type", "description", "total_qty", "unit_price", "total_value", "status", "target_delivery_date", "actual_delivery_date", "created_at", "updated_at"}},
	{"employees", []string{"id", "workspace_id", "user_id", "full_name", "department", "position", "pay_scheme", "base_salary", "piece_rate", "hired_at", "active", "created_at", "updated_at"}},
	{"assets", []string{"id", "workspace_id", "code", "name", "category", "location", "status", "purchase_date", "created_at", "updated_at"}},
	{"vehicles", []string{"id", "workspace_id", "plate_no", "model", "capacity_kg", "active", "created_at", "updated_at"}},
}

// inserter is the write side of a copy; the production implementation
// targets Postgres.
type inserter interface {
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]interface{}) error
	InsertRow(ctx context.Context, table string, columns []string, row []interface{}) error
}

// copyRows pushes rows in batches. A failed batch falls back to
// row-by-row inserts so one bad row does not sink the whole table.
func copyRows(ctx context.Context, ins inserter, spec tableSpec, rows [][]interface{}, batchSize int, logger *zap.Logger) (inserted, failed int) {
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		if err := ins.InsertBatch(ctx, spec.Name, spec.Columns, batch); err == nil {
			inserted += len(batch)
			continue
		}

		for _, row := range batch {
			if err := ins.InsertRow(ctx, spec.Name, spec.Columns, row); err != nil {
				failed++
				logger.Warn("row insert failed",
					zap.String("table", spec.Name),
					zap.Error(err),
				)
				continue
			}
			inserted++
		}
	}
	return inserted, failed
}

// buildInsert renders a multi-row INSERT with positional placeholders.
func buildInsert(table string, columns []string, rowCount int) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	n := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", n)
			n++
		}
		sb.WriteString(")")
	}
	return sb.String()
}

func flattenRows(rows [][]interface{}) []interface{} {
	var args []interface{}
	for _, row := range rows {
		args = append(args, row...)
	}
	return args
}
