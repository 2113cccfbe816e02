package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
	"go.uber.org/zap"

	"apparel-erp/pkg/config"
	"apparel-erp/pkg/database/postgresql"
	applogger "apparel-erp/pkg/logger"
)

const defaultBatchSize = 500

// Copies the legacy SQLite database into Postgres table by table. After
// each table the source and target row counts are compared; a mismatch
// is logged as a warning, not an error, so a partial import still
// finishes.
func main() {
	sqlitePath := flag.String("sqlite", "", "path to the legacy SQLite database (overrides SQLITE_PATH)")
	batchSize := flag.Int("batch", defaultBatchSize, "rows per insert batch")
	flag.Parse()

	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()
	ctx := context.Background()

	srcPath := cfg.Legacy.SQLitePath
	if *sqlitePath != "" {
		srcPath = *sqlitePath
	}

	src, err := sql.Open("sqlite", srcPath)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}
	defer src.Close()

	dst := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dst.Close()

	ins := &pgxInserter{pool: dst}

	for _, spec := range legacyTables {
		rows, err := readTable(ctx, src, spec)
		if err != nil {
			logger.Error("failed to read source table", zap.String("table", spec.Name), zap.Error(err))
			continue
		}

		inserted, failed := copyRows(ctx, ins, spec, rows, *batchSize, logger)

		targetCount, err := countRows(ctx, dst, spec.Name)
		if err != nil {
			logger.Error("failed to count target rows", zap.String("table", spec.Name), zap.Error(err))
			continue
		}
		if targetCount != len(rows) {
			logger.Warn("row count mismatch after copy",
				zap.String("table", spec.Name),
				zap.Int("source", len(rows)),
				zap.Int("target", targetCount),
			)
		}
		logger.Info("table copied",
			zap.String("table", spec.Name),
			zap.Int("inserted", inserted),
			zap.Int("failed", failed),
		)
	}

	// Bump sequences past imported ids so new inserts do not collide.
	for _, spec := range legacyTables {
		if err := resetSequence(ctx, dst, spec.Name); err != nil {
			logger.Warn("failed to reset sequence", zap.String("table", spec.Name), zap.Error(err))
		}
	}
}

func readTable(ctx context.Context, src *sql.DB, spec tableSpec) ([][]interface{}, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(spec.Columns, ", "), spec.Name)
	rows, err := src.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(spec.Columns))
		ptrs := make([]interface{}, len(spec.Columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, rows.Err()
}

func countRows(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	return count, err
}

func resetSequence(ctx context.Context, pool *pgxpool.Pool, table string) error {
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
		table, table,
	)
	_, err := pool.Exec(ctx, query)
	return err
}

type pgxInserter struct {
	pool *pgxpool.Pool
}

func (p *pgxInserter) InsertBatch(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	query := buildInsert(table, columns, len(rows))
	_, err := p.pool.Exec(ctx, query, flattenRows(rows)...)
	return err
}

func (p *pgxInserter) InsertRow(ctx context.Context, table string, columns []string, row []interface{}) error {
	query := buildInsert(table, columns, 1)
	_, err := p.pool.Exec(ctx, query, row...)
	return err
}
