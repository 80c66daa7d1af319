package repositories

import (
	"context"
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("record not found")

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// PaginationParams is embedded in every entity filter.
type PaginationParams struct {
	Page    int
	Limit   int
	OrderBy string
	Order   SortOrder
}

type Pagination struct {
	Limit  int
	Offset int
	Page   int
}

type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type PaginatedResult[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// IsNotFound reports whether err is a missing-row error from any repository.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Finder is the lookup capability shared by every entity repository.
type Finder[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
}

// BuildPagination normalizes page/limit and derives the row offset.
func BuildPagination(params PaginationParams) Pagination {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// Keep (page-1)*limit inside int
	if page-1 > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	return Pagination{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Page:   page,
	}
}

// SortColumns maps accepted sort keys to qualified column names.
type SortColumns map[string]string

// OrderClause resolves a caller-supplied sort key against the allow-list.
// Keys may be camelCase or snake_case. Unknown keys fall back to "id";
// anything but "desc" sorts ascending.
func (s SortColumns) OrderClause(orderBy string, order SortOrder) string {
	column, ok := s[orderBy]
	if !ok {
		column, ok = s[snakeToCamel(orderBy)]
	}
	if !ok {
		column = s["id"]
	}
	direction := "ASC"
	if strings.EqualFold(string(order), string(Desc)) {
		direction = "DESC"
	}
	return column + " " + direction
}

// ParseSortOrder turns a query string value into a SortOrder.
func ParseSortOrder(v string) SortOrder {
	if strings.EqualFold(v, string(Desc)) {
		return Desc
	}
	return Asc
}

func snakeToCamel(key string) string {
	parts := strings.Split(key, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func likePattern(search string) string {
	return "%" + search + "%"
}

// ParentFilter narrows self-referencing rows by their parent column.
// RootOnly selects rows whose parent is NULL; otherwise ID must match.
type ParentFilter struct {
	ID       uint
	RootOnly bool
}

func (p *ParentFilter) scope(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db
		}
		if p.RootOnly {
			return db.Where(column + " IS NULL")
		}
		return db.Where(column+" = ?", p.ID)
	}
}
