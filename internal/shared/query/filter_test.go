package query

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemt-rides/internal/shared/apperrors"
)

var testSpec = Spec{
	Filterable:  map[string]string{"status": "status"},
	UUIDFilter:  map[string]string{"ride_id": "ride_id"},
	BoolFilter:  map[string]string{"is_active": "is_active"},
	Searchable:  []string{"first_name", "email"},
	DateColumn:  "created_at",
	DefaultSort: "created_at DESC",
}

func TestBuildExactMatchFilter(t *testing.T) {
	params := url.Values{}
	params.Set("status", "active")

	c, err := testSpec.Build(params)
	require.NoError(t, err)

	assert.Equal(t, []string{"status = $1"}, c.Where)
	assert.Equal(t, []interface{}{"active"}, c.Args)
	assert.Equal(t, "created_at DESC", c.OrderBy)
}

func TestBuildUnknownParamsIgnored(t *testing.T) {
	params := url.Values{}
	params.Set("favorite_color", "blue")
	params.Set("sort_by", "whatever")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	assert.Empty(t, c.Where)
	assert.Empty(t, c.Args)
}

func TestBuildDateRange(t *testing.T) {
	params := url.Values{}
	params.Set("start_date", "2025-01-01")
	params.Set("end_date", "2025-01-31")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	require.Len(t, c.Where, 2)
	require.Len(t, c.Args, 2)

	start := c.Args[0].(time.Time)
	end := c.Args[1].(time.Time)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	// A bare end_date is inclusive through end of day, so the bound is
	// the following midnight, exclusive.
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), end)
	assert.Contains(t, c.Where[0], ">=")
	assert.Equal(t, "created_at < $2", c.Where[1])
}

func TestBuildTimestampEndDateInclusive(t *testing.T) {
	// An RFC3339 end_date names an exact instant; a row created at that
	// very instant must still match, so the bound is <= rather than <.
	params := url.Values{}
	params.Set("end_date", "2025-01-31T17:45:00Z")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	require.Len(t, c.Where, 1)
	require.Len(t, c.Args, 1)

	assert.Equal(t, "created_at <= $1", c.Where[0])
	assert.Equal(t, time.Date(2025, 1, 31, 17, 45, 0, 0, time.UTC), c.Args[0].(time.Time))
}

func TestBuildRFC3339Dates(t *testing.T) {
	params := url.Values{}
	params.Set("start_date", "2025-01-01T08:30:00Z")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	require.Len(t, c.Args, 1)
	assert.Equal(t, time.Date(2025, 1, 1, 8, 30, 0, 0, time.UTC), c.Args[0].(time.Time))
}

func TestBuildMalformedDateFails(t *testing.T) {
	params := url.Values{}
	params.Set("start_date", "January 1st")

	_, err := testSpec.Build(params)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "start_date")
}

func TestBuildMalformedUUIDFails(t *testing.T) {
	params := url.Values{}
	params.Set("ride_id", "123")

	_, err := testSpec.Build(params)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "ride_id")
}

func TestBuildBoolFilter(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "TRUE"} {
		params := url.Values{}
		params.Set("is_active", v)

		c, err := testSpec.Build(params)
		require.NoError(t, err)
		require.Len(t, c.Args, 1)
		assert.Equal(t, true, c.Args[0], "value %q", v)
	}

	params := url.Values{}
	params.Set("is_active", "maybe")
	_, err := testSpec.Build(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is_active")
}

func TestBuildSearchCoversWhitelist(t *testing.T) {
	params := url.Values{}
	params.Set("search", "john")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	require.Len(t, c.Where, 1)

	clause := c.Where[0]
	assert.Contains(t, clause, "first_name ILIKE")
	assert.Contains(t, clause, "email ILIKE")
	assert.Contains(t, clause, " OR ")
	assert.Equal(t, []interface{}{"%john%", "%john%"}, c.Args)
}

func TestBuildSearchEscapesLikeMetacharacters(t *testing.T) {
	params := url.Values{}
	params.Set("search", "50%_off")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	require.Len(t, c.Args, 2)
	assert.Equal(t, `%50\%\_off%`, c.Args[0])
}

func TestClausesAndNumbersPlaceholders(t *testing.T) {
	c := &Clauses{}
	c.And("status = %s", "active")
	c.And("lat BETWEEN %s AND %s", 1.0, 2.0)

	assert.Equal(t, []string{"status = $1", "lat BETWEEN $2 AND $3"}, c.Where)
	assert.Equal(t, " WHERE status = $1 AND lat BETWEEN $2 AND $3", c.WhereSQL())

	tail := c.LimitOffset(20, 40)
	assert.Equal(t, " LIMIT $4 OFFSET $5", tail)
	assert.Equal(t, []interface{}{"active", 1.0, 2.0, 20, 40}, c.Args)
}

func TestWhereSQLEmpty(t *testing.T) {
	c := &Clauses{}
	assert.Equal(t, "", c.WhereSQL())
}

func TestBuildComposesFilterSearchSort(t *testing.T) {
	params := url.Values{}
	params.Set("status", "active")
	params.Set("search", "note")

	c, err := testSpec.Build(params)
	require.NoError(t, err)
	require.Len(t, c.Where, 2)

	// Filters come before the search group; the sort stays default.
	assert.Equal(t, "status = $1", c.Where[0])
	assert.True(t, strings.HasPrefix(c.Where[1], "("))
	assert.Equal(t, "created_at DESC", c.OrderBy)
}
