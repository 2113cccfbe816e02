package repositories

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The sequence tests hit a real database because the uniqueness
// guarantee lives in the upsert itself. They are skipped unless
// TEST_DATABASE_URL points at a migrated database.
func sequenceTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createSequenceTestWorkspace(t *testing.T, pool *pgxpool.Pool) uint64 {
	t.Helper()
	ctx := context.Background()
	slug := fmt.Sprintf("seq-test-%d", time.Now().UnixNano())

	var id uint64
	err := pool.QueryRow(ctx,
		"INSERT INTO workspaces (name, slug) VALUES ($1, $1) RETURNING id", slug,
	).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, "DELETE FROM code_sequences WHERE workspace_id = $1", id)
		_, _ = pool.Exec(ctx, "DELETE FROM workspaces WHERE id = $1", id)
	})
	return id
}

func TestNextCodeMonotonic(t *testing.T) {
	pool := sequenceTestPool(t)
	workspaceID := createSequenceTestWorkspace(t, pool)
	repo := NewSequenceRepository(pool)
	ctx := context.Background()
	year := time.Now().Year()

	for i := 1; i <= 5; i++ {
		code, err := repo.NextCode(ctx, nil, workspaceID, "WO")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("WO-%d-%04d", year, i), code)
	}
}

func TestNextCodeIndependentPerWorkspaceAndKind(t *testing.T) {
	pool := sequenceTestPool(t)
	first := createSequenceTestWorkspace(t, pool)
	second := createSequenceTestWorkspace(t, pool)
	repo := NewSequenceRepository(pool)
	ctx := context.Background()
	year := time.Now().Year()

	code, err := repo.NextCode(ctx, nil, first, "WO")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("WO-%d-0001", year), code)

	code, err = repo.NextCode(ctx, nil, second, "WO")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("WO-%d-0001", year), code,
		"counters do not leak across workspaces")

	code, err = repo.NextCode(ctx, nil, first, "AST")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("AST-%d-0001", year), code,
		"counters do not leak across kinds")
}

func TestNextCodeConcurrentCallers(t *testing.T) {
	pool := sequenceTestPool(t)
	workspaceID := createSequenceTestWorkspace(t, pool)
	repo := NewSequenceRepository(pool)
	ctx := context.Background()

	const callers = 20
	codes := make(chan string, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			code, err := repo.NextCode(ctx, nil, workspaceID, "INV")
			if err != nil {
				errs <- err
				return
			}
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent NextCode failed: %v", err)
	}

	seen := make(map[string]bool, callers)
	for code := range codes {
		assert.False(t, seen[code], "code %s issued twice", code)
		seen[code] = true
	}
	assert.Len(t, seen, callers)

	var counter int
	err := pool.QueryRow(ctx,
		"SELECT counter FROM code_sequences WHERE workspace_id = $1 AND kind = 'INV'",
		workspaceID,
	).Scan(&counter)
	require.NoError(t, err)
	assert.Equal(t, callers, counter, "no increments were lost")
}
