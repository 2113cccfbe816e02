package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInserter struct {
	batches    [][][]interface{}
	rows       [][]interface{}
	failBatch  bool
	failRowsAt map[int]bool
	rowCalls   int
}

func (f *fakeInserter) InsertBatch(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if f.failBatch {
		return errors.New("batch rejected")
	}
	f.batches = append(f.batches, rows)
	return nil
}

func (f *fakeInserter) InsertRow(ctx context.Context, table string, columns []string, row []interface{}) error {
	f.rowCalls++
	if f.failRowsAt[f.rowCalls] {
		return errors.New("row rejected")
	}
	f.rows = append(f.rows, row)
	return nil
}

func sampleRows(n int) [][]interface{} {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{int64(i + 1), "name"}
	}
	return rows
}

var testSpec = tableSpec{Name: "clients", Columns: []string{"id", "name"}}

func TestCopyRowsBatches(t *testing.T) {
	ins := &fakeInserter{}

	inserted, failed := copyRows(context.Background(), ins, testSpec, sampleRows(5), 2, zap.NewNop())

	assert.Equal(t, 5, inserted)
	assert.Equal(t, 0, failed)
	require.Len(t, ins.batches, 3, "5 rows at batch size 2 is 3 batches")
	assert.Len(t, ins.batches[2], 1)
	assert.Zero(t, ins.rowCalls, "no per-row fallback when batches succeed")
}

func TestCopyRowsFallsBackPerRow(t *testing.T) {
	ins := &fakeInserter{
		failBatch:  true,
		failRowsAt: map[int]bool{2: true},
	}

	inserted, failed := copyRows(context.Background(), ins, testSpec, sampleRows(3), 10, zap.NewNop())

	assert.Equal(t, 2, inserted)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, ins.rowCalls, "every row of a failed batch is retried individually")
}

func TestCopyRowsEmptyInput(t *testing.T) {
	ins := &fakeInserter{}

	inserted, failed := copyRows(context.Background(), ins, testSpec, nil, 100, zap.NewNop())

	assert.Zero(t, inserted)
	assert.Zero(t, failed)
	assert.Empty(t, ins.batches)
}

func TestBuildInsertPlaceholders(t *testing.T) {
	query := buildInsert("clients", []string{"id", "name"}, 2)

	assert.Equal(t,
		"INSERT INTO clients (id, name) VALUES ($1, $2), ($3, $4)",
		query)
}

func TestBuildInsertSingleRow(t *testing.T) {
	query := buildInsert("workspaces", []string{"id", "name", "slug"}, 1)

	assert.Equal(t,
		"INSERT INTO workspaces (id, name, slug) VALUES ($1, $2, $3)",
		query)
}

func TestFlattenRows(t *testing.T) {
	args := flattenRows([][]interface{}{{1, "a"}, {2, "b"}})

	assert.Equal(t, []interface{}{1, "a", 2, "b"}, args)
}

func TestLegacyTablesParentFirst(t *testing.T) {
	position := make(map[string]int, len(legacyTables))
	for i, spec := range legacyTables {
		position[spec.Name] = i
	}

	assert.Less(t, position["workspaces"], position["users"])
	assert.Less(t, position["clients"], position["orders"])
	assert.Less(t, position["workspaces"], position["vehicles"])
}
