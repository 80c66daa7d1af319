package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/snap-point/blog-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var commentSortColumns = SortColumns{
	"id":        "comments.id",
	"postId":    "comments.post_id",
	"authorId":  "comments.author_id",
	"parentId":  "comments.parent_id",
	"createdAt": "comments.created_at",
	"updatedAt": "comments.updated_at",
}

type CommentFilter struct {
	PaginationParams
	PostID   uint
	AuthorID uint
	Parent   *ParentFilter
}

type CommentUpdate struct {
	Content *string `json:"content"`
}

type CommentSummary struct {
	models.Comment
	Author     AuthorSummary `json:"author"`
	ReplyCount int64         `json:"replyCount"`
}

type CommentRepository interface {
	Finder[CommentSummary]
	FindAll(ctx context.Context, filter CommentFilter) (*PaginatedResult[CommentSummary], error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, id uint, changes CommentUpdate) (*models.Comment, error)
	Delete(ctx context.Context, id uint) (*models.Comment, error)
}

var _ CommentRepository = (*PostgresCommentRepository)(nil)

type PostgresCommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{DB: db}
}

type commentRow struct {
	models.Comment
	AuthorName string
	ReplyCount int64
}

func (row commentRow) summary() CommentSummary {
	return CommentSummary{
		Comment:    row.Comment,
		Author:     AuthorSummary{ID: row.AuthorID, Name: row.AuthorName},
		ReplyCount: row.ReplyCount,
	}
}

// withReplies selects a comment, its author's name and its direct reply count.
func withReplies(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Comment{}).
		Select(`
			comments.*,
			users.name AS author_name,
			COUNT(replies.id) AS reply_count
		`).
		Joins("LEFT JOIN users ON users.id = comments.author_id").
		Joins("LEFT JOIN comments AS replies ON replies.parent_id = comments.id").
		Group("comments.id, users.id")
}

func (r *PostgresCommentRepository) FindAll(ctx context.Context, filter CommentFilter) (*PaginatedResult[CommentSummary], error) {
	page := BuildPagination(filter.PaginationParams)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.PostID != 0 {
			db = db.Where("comments.post_id = ?", filter.PostID)
		}
		if filter.AuthorID != 0 {
			db = db.Where("comments.author_id = ?", filter.AuthorID)
		}
		return db.Scopes(filter.Parent.scope("comments.parent_id"))
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Comment{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	var rows []commentRow
	err := r.DB.WithContext(ctx).
		Scopes(withReplies, scope).
		Order(commentSortColumns.OrderClause(filter.OrderBy, filter.Order)).
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]CommentSummary, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.summary())
	}

	return &PaginatedResult[CommentSummary]{
		Data: comments,
		Meta: Meta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

func (r *PostgresCommentRepository) FindByID(ctx context.Context, id uint) (*CommentSummary, error) {
	var rows []commentRow
	err := r.DB.WithContext(ctx).
		Scopes(withReplies).
		Where("comments.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	summary := rows[0].summary()
	return &summary, nil
}

func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// Update always marks the comment as edited, even when the content is unchanged.
func (r *PostgresCommentRepository) Update(ctx context.Context, id uint, changes CommentUpdate) (*models.Comment, error) {
	updates := map[string]interface{}{
		"is_edited":  true,
		"updated_at": time.Now(),
	}
	if changes.Content != nil {
		updates["content"] = *changes.Content
	}

	var comment models.Comment
	res := r.DB.WithContext(ctx).
		Model(&comment).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &comment, nil
}

// Delete promotes direct replies to top-level comments, then removes the row.
// Both statements share a transaction so a reply never points at a deleted parent.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Comment{}).
			Where("parent_id = ?", id).
			UpdateColumn("parent_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to reparent replies: %w", err)
		}

		res := tx.Clauses(clause.Returning{}).Where("id = ?", id).Delete(&comment)
		if res.Error != nil {
			return fmt.Errorf("failed to delete comment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
