package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Search)
	assert.Empty(t, filter.Filter)
	assert.Empty(t, filter.Sort)
}

func TestParseFilterFromQueryLimitClamped(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "100000")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQueryInvalidLimitFallsBack(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0"} {
		values := url.Values{}
		values.Set("limit", bad)

		filter := ParseFilterFromQuery(values)
		assert.Equal(t, DefaultLimit, filter.Limit, "limit=%q", bad)
	}
}

func TestParseFilterFromQueryPageComputesOffset(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "20")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 40, filter.Offset)
}

func TestParseFilterFromQueryExplicitOffsetWins(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "20")
	values.Set("offset", "5")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, 5, filter.Offset)
}

func TestParseFilterFromQueryFilterAndSort(t *testing.T) {
	values := url.Values{}
	values.Set("search", "atlas")
	values.Set("filter[status]", "CONFIRMED")
	values.Set("sort[created_at]", "desc")
	values.Set("sort[name]", "sideways")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "atlas", filter.Search)
	assert.Equal(t, "CONFIRMED", filter.Filter["status"])
	assert.Equal(t, "desc", filter.Sort["created_at"])
	assert.NotContains(t, filter.Sort, "name", "invalid sort direction is dropped")
}

func TestParseFilterFromQueryCommaSeparatedFilter(t *testing.T) {
	values := url.Values{}
	values.Set("filter[status]", "DRAFT,CONFIRMED")

	filter := ParseFilterFromQuery(values)
	assert.Equal(t, "DRAFT,CONFIRMED", filter.Filter["status"])
}

func TestParseFilterFromQueryWithPaginationFalse(t *testing.T) {
	values := url.Values{}
	values.Set("withPagination", "false")

	filter := ParseFilterFromQuery(values)
	assert.False(t, filter.WithPagination)
}
