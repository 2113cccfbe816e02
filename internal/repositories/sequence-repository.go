package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SequenceRepositoryInterface issues monotonically increasing document
// codes per workspace, kind and year (e.g. WO-2025-0001, AST-2025-0001).
type SequenceRepositoryInterface interface {
	NextCode(ctx context.Context, q Querier, workspaceID uint64, kind string) (string, error)
}

type SequenceRepository struct {
	storage *pgxpool.Pool
}

func NewSequenceRepository(storage *pgxpool.Pool) SequenceRepositoryInterface {
	return &SequenceRepository{storage: storage}
}

// NextCode bumps the counter atomically; the upsert keeps concurrent
// callers from ever receiving the same value. Pass a transaction to
// roll the counter back together with the row that consumed it.
func (r *SequenceRepository) NextCode(ctx context.Context, q Querier, workspaceID uint64, kind string) (string, error) {
	if q == nil {
		q = r.storage
	}
	year := time.Now().Year()

	var next int
	err := q.QueryRow(ctx, `
		INSERT INTO code_sequences (workspace_id, kind, year, counter)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (workspace_id, kind, year)
		DO UPDATE SET counter = code_sequences.counter + 1
		RETURNING counter
	`, workspaceID, kind, year).Scan(&next)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", kind, year, next), nil
}
