package repositories

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		want   Pagination
	}{
		{"defaults", PaginationParams{}, Pagination{Limit: 10, Offset: 0, Page: 1}},
		{"third page", PaginationParams{Page: 3, Limit: 20}, Pagination{Limit: 20, Offset: 40, Page: 3}},
		{"negative page", PaginationParams{Page: -2, Limit: 5}, Pagination{Limit: 5, Offset: 0, Page: 1}},
		{"zero limit", PaginationParams{Page: 2, Limit: 0}, Pagination{Limit: 10, Offset: 10, Page: 2}},
		{"limit capped", PaginationParams{Page: 2, Limit: 1000}, Pagination{Limit: 100, Offset: 100, Page: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPagination(tt.params))
		})
	}
}

func TestBuildPaginationHugePageDoesNotWrap(t *testing.T) {
	p := BuildPagination(PaginationParams{Page: 184467440737095518, Limit: 100})

	assert.Equal(t, 100, p.Limit)
	assert.Greater(t, p.Offset, 0)
	assert.Equal(t, (p.Page-1)*p.Limit, p.Offset)
	assert.LessOrEqual(t, p.Page, math.MaxInt/100+1)

	p = BuildPagination(PaginationParams{Page: math.MaxInt, Limit: 1})
	assert.Equal(t, math.MaxInt-1, p.Offset)
}

func TestOrderClause(t *testing.T) {
	cols := SortColumns{
		"id":        "posts.id",
		"createdAt": "posts.created_at",
	}

	assert.Equal(t, "posts.created_at DESC", cols.OrderClause("createdAt", Desc))
	assert.Equal(t, "posts.created_at ASC", cols.OrderClause("created_at", Asc))
	assert.Equal(t, "posts.created_at DESC", cols.OrderClause("createdAt", "DESC"))

	// Unknown and hostile keys never reach the SQL
	assert.Equal(t, "posts.id ASC", cols.OrderClause("password", Asc))
	assert.Equal(t, "posts.id ASC", cols.OrderClause("id; DROP TABLE users", "sideways"))
	assert.Equal(t, "posts.id ASC", cols.OrderClause("", ""))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, Desc, ParseSortOrder("desc"))
	assert.Equal(t, Desc, ParseSortOrder("Desc"))
	assert.Equal(t, Asc, ParseSortOrder("asc"))
	assert.Equal(t, Asc, ParseSortOrder("random"))
	assert.Equal(t, Asc, ParseSortOrder(""))
}

func TestSnakeToCamel(t *testing.T) {
	assert.Equal(t, "createdAt", snakeToCamel("created_at"))
	assert.Equal(t, "authorId", snakeToCamel("author_id"))
	assert.Equal(t, "name", snakeToCamel("name"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.False(t, IsNotFound(ErrCategoryCycle))
	assert.False(t, IsNotFound(nil))
}

func TestUpdateMapsOnlyCarryProvidedFields(t *testing.T) {
	name := "Renamed"
	m := UserUpdate{Name: &name}.toMap()
	assert.Equal(t, "Renamed", m["name"])
	assert.Contains(t, m, "updated_at")
	assert.NotContains(t, m, "email")
	assert.NotContains(t, m, "password")

	parent := uint(7)
	m = CategoryUpdate{ParentID: &parent}.toMap()
	assert.Equal(t, uint(7), m["parent_id"])

	m = CategoryUpdate{ParentID: &parent, ClearParent: true}.toMap()
	assert.Contains(t, m, "parent_id")
	assert.Nil(t, m["parent_id"])

	m = CategoryUpdate{}.toMap()
	assert.NotContains(t, m, "parent_id")
}
