package bd

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparel-erp/pkg/types"
)

var orderAllowed = map[string]string{
	"status":    "o.status",
	"client_id": "o.client_id",
	"po_number": "o.po_number",
}

func baseQuery() sq.SelectBuilder {
	return sq.Select("o.id").From("orders o").PlaceholderFormat(sq.Dollar)
}

func TestApplyListParamsFilter(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"status": "CONFIRMED"},
	}

	query, args, err := ApplyListParams(baseQuery(), filter, orderAllowed).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.status = $1")
	assert.Equal(t, []interface{}{"CONFIRMED"}, args)
}

func TestApplyListParamsCommaValueBecomesIn(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"status": "DRAFT,CONFIRMED"},
	}

	query, args, err := ApplyListParams(baseQuery(), filter, orderAllowed).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.status IN ($1,$2)")
	assert.Equal(t, []interface{}{"DRAFT", "CONFIRMED"}, args)
}

func TestApplyListParamsIgnoresUnknownFields(t *testing.T) {
	filter := types.Filter{
		Filter: map[string]interface{}{"password": "x"},
		Sort:   map[string]string{"password": "asc"},
	}

	query, args, err := ApplyListParams(baseQuery(), filter, orderAllowed).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT o.id FROM orders o", query)
	assert.Empty(t, args)
}

func TestApplyListParamsSort(t *testing.T) {
	filter := types.Filter{
		Sort: map[string]string{"po_number": "desc"},
	}

	query, _, err := ApplyListParams(baseQuery(), filter, orderAllowed).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY o.po_number DESC")
}

func TestApplyListParamsPagination(t *testing.T) {
	filter := types.Filter{
		WithPagination: true,
		Limit:          25,
		Offset:         50,
	}

	query, _, err := ApplyListParams(baseQuery(), filter, orderAllowed).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "LIMIT 25")
	assert.Contains(t, query, "OFFSET 50")
}

func TestApplyListParamsNoPagination(t *testing.T) {
	filter := types.Filter{
		WithPagination: false,
		Limit:          25,
	}

	query, _, err := ApplyListParams(baseQuery(), filter, orderAllowed).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "LIMIT")
}
