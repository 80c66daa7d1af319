package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/snap-point/blog-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var postSortColumns = SortColumns{
	"id":          "posts.id",
	"title":       "posts.title",
	"slug":        "posts.slug",
	"status":      "posts.status",
	"authorId":    "posts.author_id",
	"publishedAt": "posts.published_at",
	"createdAt":   "posts.created_at",
	"updatedAt":   "posts.updated_at",
}

type PostFilter struct {
	PaginationParams
	Search     string
	AuthorID   uint
	CategoryID uint
	Status     models.PostStatus
}

type PostUpdate struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	Content     *string            `json:"content"`
	Excerpt     *string            `json:"excerpt"`
	CoverImage  *string            `json:"coverImage"`
	Status      *models.PostStatus `json:"status"`
	PublishedAt *time.Time         `json:"publishedAt"`
}

func (u PostUpdate) toMap() map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	if u.Excerpt != nil {
		updates["excerpt"] = *u.Excerpt
	}
	if u.CoverImage != nil {
		updates["cover_image"] = *u.CoverImage
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	if u.PublishedAt != nil {
		updates["published_at"] = *u.PublishedAt
	}
	return updates
}

type AuthorSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PostSummary is a list row with aggregate counts of related rows.
type PostSummary struct {
	models.Post
	Author        AuthorSummary `json:"author"`
	CategoryCount int64         `json:"categoryCount"`
	CommentCount  int64         `json:"commentCount"`
	LikeCount     int64         `json:"likeCount"`
}

type PostDetail struct {
	models.Post
	Author     AuthorSummary `json:"author"`
	Categories []CategoryRef `json:"categories"`
}

type PostRepository interface {
	Finder[PostDetail]
	FindAll(ctx context.Context, filter PostFilter) (*PaginatedResult[PostSummary], error)
	Create(ctx context.Context, post *models.Post, categoryIDs []uint) error
	Update(ctx context.Context, id uint, changes PostUpdate, categoryIDs []uint) (*models.Post, error)
	Delete(ctx context.Context, id uint) (*models.Post, error)
	UpdateMetadata(ctx context.Context, id uint, patch models.PostMetadataPatch) (*models.Post, error)
	Like(ctx context.Context, postID, userID uint) error
	Unlike(ctx context.Context, postID, userID uint) (bool, error)
}

var _ PostRepository = (*PostgresPostRepository)(nil)

type PostgresPostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{DB: db}
}

func (r *PostgresPostRepository) FindAll(ctx context.Context, filter PostFilter) (*PaginatedResult[PostSummary], error) {
	page := BuildPagination(filter.PaginationParams)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Where("(posts.title LIKE ? OR posts.content LIKE ?)", pattern, pattern)
		}
		if filter.AuthorID != 0 {
			db = db.Where("posts.author_id = ?", filter.AuthorID)
		}
		if filter.CategoryID != 0 {
			// Filter through a subquery so the category count still covers every link.
			db = db.Where("posts.id IN (SELECT post_id FROM post_categories WHERE category_id = ?)", filter.CategoryID)
		}
		if filter.Status != "" {
			db = db.Where("posts.status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	var rows []struct {
		models.Post
		AuthorName    string
		AuthorEmail   string
		CategoryCount int64
		CommentCount  int64
		LikeCount     int64
	}

	err := r.DB.WithContext(ctx).
		Model(&models.Post{}).
		Select(`
			posts.*,
			users.name AS author_name,
			users.email AS author_email,
			COUNT(DISTINCT post_categories.category_id) AS category_count,
			COUNT(DISTINCT comments.id) AS comment_count,
			COUNT(DISTINCT likes.user_id) AS like_count
		`).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN post_categories ON post_categories.post_id = posts.id").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Scopes(scope).
		Group("posts.id, users.id").
		Order(postSortColumns.OrderClause(filter.OrderBy, filter.Order)).
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]PostSummary, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, PostSummary{
			Post:          row.Post,
			Author:        AuthorSummary{ID: row.AuthorID, Name: row.AuthorName, Email: row.AuthorEmail},
			CategoryCount: row.CategoryCount,
			CommentCount:  row.CommentCount,
			LikeCount:     row.LikeCount,
		})
	}

	return &PaginatedResult[PostSummary]{
		Data: posts,
		Meta: Meta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

func (r *PostgresPostRepository) FindByID(ctx context.Context, id uint) (*PostDetail, error) {
	var rows []struct {
		models.Post
		AuthorName  string
		AuthorEmail string
		Categories  datatypes.JSON
	}

	err := r.DB.WithContext(ctx).
		Model(&models.Post{}).
		Select(`
			posts.*,
			users.name AS author_name,
			users.email AS author_email,
			COALESCE(
				jsonb_agg(DISTINCT jsonb_build_object('id', categories.id, 'name', categories.name))
					FILTER (WHERE categories.id IS NOT NULL),
				'[]'::jsonb
			) AS categories
		`).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN post_categories ON post_categories.post_id = posts.id").
		Joins("LEFT JOIN categories ON categories.id = post_categories.category_id").
		Where("posts.id = ?", id).
		Group("posts.id, users.id").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	row := rows[0]
	categories := make([]CategoryRef, 0)
	if len(row.Categories) > 0 {
		if err := json.Unmarshal(row.Categories, &categories); err != nil {
			return nil, fmt.Errorf("failed to decode post categories: %w", err)
		}
	}

	return &PostDetail{
		Post:       row.Post,
		Author:     AuthorSummary{ID: row.AuthorID, Name: row.AuthorName, Email: row.AuthorEmail},
		Categories: categories,
	}, nil
}

// Create inserts the post and its category links in one transaction.
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		return linkCategories(tx, post.ID, categoryIDs)
	})
}

// Update changes the post and, when categoryIDs is non-nil, replaces its
// whole set of category links. An empty non-nil slice clears them.
func (r *PostgresPostRepository) Update(ctx context.Context, id uint, changes PostUpdate, categoryIDs []uint) (*models.Post, error) {
	var post models.Post
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&post).
			Clauses(clause.Returning{}).
			Where("id = ?", id).
			Updates(changes.toMap())
		if res.Error != nil {
			return fmt.Errorf("failed to update post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if categoryIDs == nil {
			return nil
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return fmt.Errorf("failed to clear post categories: %w", err)
		}
		return linkCategories(tx, id, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post together with its category links, likes and comments.
func (r *PostgresPostRepository) Delete(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete post categories: %w", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		// Single statement, so replies referencing sibling comments go in the same pass.
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}

		res := tx.Clauses(clause.Returning{}).Where("id = ?", id).Delete(&post)
		if res.Error != nil {
			return fmt.Errorf("failed to delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateMetadata merges patch into the stored metadata with jsonb ||, so
// top-level keys in patch overwrite and every other key is kept.
func (r *PostgresPostRepository) UpdateMetadata(ctx context.Context, id uint, patch models.PostMetadataPatch) (*models.Post, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	var post models.Post
	res := r.DB.WithContext(ctx).
		Model(&post).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"metadata":   gorm.Expr("COALESCE(metadata, '{}'::jsonb) || ?::jsonb", string(raw)),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update post metadata: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &post, nil
}

// Like records that userID likes postID; liking twice is a no-op.
func (r *PostgresPostRepository) Like(ctx context.Context, postID, userID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	err := r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepository) Unlike(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to unlike post: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// linkCategories inserts one post_categories row per distinct id.
// Repeated ids collapse onto the composite key instead of failing.
func linkCategories(tx *gorm.DB, postID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	ids := make(pq.Int64Array, len(categoryIDs))
	for i, id := range categoryIDs {
		ids[i] = int64(id)
	}

	err := tx.Exec(`
		INSERT INTO post_categories (post_id, category_id, created_at)
		SELECT ?, ids.category_id, NOW()
		FROM unnest(?::bigint[]) AS ids(category_id)
		ON CONFLICT (post_id, category_id) DO NOTHING
	`, postID, ids).Error
	if err != nil {
		return fmt.Errorf("failed to link post categories: %w", err)
	}
	return nil
}
