package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snap-point/blog-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCategoryCycle is returned when a parent change would make a category its own ancestor.
var ErrCategoryCycle = errors.New("category cannot be its own ancestor")

// maxCategoryDepth bounds the ancestor walk in case the stored tree already contains a cycle.
const maxCategoryDepth = 1000

var categorySortColumns = SortColumns{
	"id":        "categories.id",
	"name":      "categories.name",
	"slug":      "categories.slug",
	"parentId":  "categories.parent_id",
	"createdAt": "categories.created_at",
	"updatedAt": "categories.updated_at",
}

type CategoryFilter struct {
	PaginationParams
	Search string
	Parent *ParentFilter
}

type CategoryUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parentId"`
	ClearParent bool    `json:"clearParent"`
}

func (u CategoryUpdate) toMap() map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.ClearParent {
		updates["parent_id"] = nil
	} else if u.ParentID != nil {
		updates["parent_id"] = *u.ParentID
	}
	return updates
}

type CategorySummary struct {
	models.Category
	PostCount  int64 `json:"postCount"`
	ChildCount int64 `json:"childCount"`
}

type CategoryParent struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryDetail struct {
	CategorySummary
	Parent *CategoryParent `json:"parent"`
}

type CategoryRepository interface {
	Finder[CategoryDetail]
	FindAll(ctx context.Context, filter CategoryFilter) (*PaginatedResult[CategorySummary], error)
	GetHierarchy(ctx context.Context) ([]HierarchyNode, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, changes CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id uint) (*models.Category, error)
}

var _ CategoryRepository = (*PostgresCategoryRepository)(nil)

type PostgresCategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{DB: db}
}

func (r *PostgresCategoryRepository) FindAll(ctx context.Context, filter CategoryFilter) (*PaginatedResult[CategorySummary], error) {
	page := BuildPagination(filter.PaginationParams)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Where("(categories.name LIKE ? OR categories.description LIKE ?)", pattern, pattern)
		}
		return db.Scopes(filter.Parent.scope("categories.parent_id"))
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	categories := make([]CategorySummary, 0, page.Limit)
	err := r.DB.WithContext(ctx).
		Model(&models.Category{}).
		Select(`
			categories.*,
			COUNT(DISTINCT post_categories.post_id) AS post_count,
			COUNT(DISTINCT children.id) AS child_count
		`).
		Joins("LEFT JOIN post_categories ON post_categories.category_id = categories.id").
		Joins("LEFT JOIN categories AS children ON children.parent_id = categories.id").
		Scopes(scope).
		Group("categories.id").
		Order(categorySortColumns.OrderClause(filter.OrderBy, filter.Order)).
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &PaginatedResult[CategorySummary]{
		Data: categories,
		Meta: Meta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

func (r *PostgresCategoryRepository) FindByID(ctx context.Context, id uint) (*CategoryDetail, error) {
	var rows []struct {
		CategorySummary
		ParentRefID *uint
		ParentName  *string
		ParentSlug  *string
	}

	err := r.DB.WithContext(ctx).
		Model(&models.Category{}).
		Select(`
			categories.*,
			COUNT(DISTINCT post_categories.post_id) AS post_count,
			COUNT(DISTINCT children.id) AS child_count,
			parent_category.id AS parent_ref_id,
			parent_category.name AS parent_name,
			parent_category.slug AS parent_slug
		`).
		Joins("LEFT JOIN post_categories ON post_categories.category_id = categories.id").
		Joins("LEFT JOIN categories AS children ON children.parent_id = categories.id").
		Joins("LEFT JOIN categories AS parent_category ON parent_category.id = categories.parent_id").
		Where("categories.id = ?", id).
		Group("categories.id, parent_category.id").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	row := rows[0]
	detail := &CategoryDetail{CategorySummary: row.CategorySummary}
	if row.ParentRefID != nil {
		detail.Parent = &CategoryParent{ID: *row.ParentRefID}
		if row.ParentName != nil {
			detail.Parent.Name = *row.ParentName
		}
		if row.ParentSlug != nil {
			detail.Parent.Slug = *row.ParentSlug
		}
	}
	return detail, nil
}

// GetHierarchy returns every category reachable from a root with its level and path.
func (r *PostgresCategoryRepository) GetHierarchy(ctx context.Context) ([]HierarchyNode, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).
		Select("id", "name", "slug", "parent_id").
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return BuildHierarchy(categories), nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, id uint, changes CategoryUpdate) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if changes.ParentID != nil && !changes.ClearParent {
			if err := ensureNotAncestor(tx, id, *changes.ParentID); err != nil {
				return err
			}
		}

		res := tx.Model(&category).
			Clauses(clause.Returning{}).
			Where("id = ?", id).
			Updates(changes.toMap())
		if res.Error != nil {
			return fmt.Errorf("failed to update category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete promotes the category's children to roots and drops its post links
// before removing the row, all in one transaction.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Category{}).
			Where("parent_id = ?", id).
			UpdateColumn("parent_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to reparent child categories: %w", err)
		}

		if err := tx.Where("category_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete post categories: %w", err)
		}

		res := tx.Clauses(clause.Returning{}).Where("id = ?", id).Delete(&category)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ensureNotAncestor walks up from parentID and fails if it meets id.
func ensureNotAncestor(tx *gorm.DB, id, parentID uint) error {
	current := parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		if current == id {
			return ErrCategoryCycle
		}

		var parent models.Category
		err := tx.Select("id", "parent_id").Where("id = ?", current).Take(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown parent; the foreign key rejects it on update.
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load category ancestor: %w", err)
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return ErrCategoryCycle
}
