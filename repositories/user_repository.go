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

// userColumns is the public projection of a user; password is never selected.
var userColumns = []string{
	"id", "email", "name", "role", "avatar_url", "bio",
	"is_active", "last_login", "created_at", "updated_at",
}

var userSortColumns = SortColumns{
	"id":        "id",
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"lastLogin": "last_login",
}

type UserFilter struct {
	PaginationParams
	Search string
}

type UserUpdate struct {
	Name      *string          `json:"name"`
	Email     *string          `json:"email"`
	Password  *string          `json:"password"`
	Role      *models.UserRole `json:"role"`
	AvatarURL *string          `json:"avatarUrl"`
	Bio       *string          `json:"bio"`
	IsActive  *bool            `json:"isActive"`
}

func (u UserUpdate) toMap() map[string]interface{} {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Password != nil {
		updates["password"] = *u.Password
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.AvatarURL != nil {
		updates["avatar_url"] = *u.AvatarURL
	}
	if u.Bio != nil {
		updates["bio"] = *u.Bio
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

type UserStats struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Likes    int64 `json:"likes"`
}

type UserRepository interface {
	Finder[models.User]
	FindAll(ctx context.Context, filter UserFilter) (*PaginatedResult[models.User], error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, changes UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uint) (bool, error)
	GetUserStats(ctx context.Context, id uint) (*UserStats, error)
}

var _ UserRepository = (*PostgresUserRepository)(nil)

type PostgresUserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func (r *PostgresUserRepository) FindAll(ctx context.Context, filter UserFilter) (*PaginatedResult[models.User], error) {
	page := BuildPagination(filter.PaginationParams)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			db = db.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
		}
		return db
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	users := make([]models.User, 0, page.Limit)
	err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Select(userColumns).
		Scopes(scope).
		Order(userSortColumns.OrderClause(filter.OrderBy, filter.Order)).
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &PaginatedResult[models.User]{
		Data: users,
		Meta: Meta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Select(userColumns).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// Create inserts the user; id, role, is_active and timestamps are filled in from the database.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, id uint, changes UserUpdate) (*models.User, error) {
	var user models.User
	res := r.DB.WithContext(ctx).
		Model(&user).
		Clauses(clause.Returning{Columns: returningColumns(userColumns)}).
		Where("id = ?", id).
		Updates(changes.toMap())
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Delete reports whether a row was actually removed.
func (r *PostgresUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetUserStats runs three independent counts; they are not read in one snapshot.
func (r *PostgresUserRepository) GetUserStats(ctx context.Context, id uint) (*UserStats, error) {
	var stats UserStats
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.Post{}).Where("author_id = ?", id).Count(&stats.Posts).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	if err := db.Model(&models.Comment{}).Where("author_id = ?", id).Count(&stats.Comments).Error; err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	if err := db.Model(&models.Like{}).Where("user_id = ?", id).Count(&stats.Likes).Error; err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &stats, nil
}

func returningColumns(names []string) []clause.Column {
	columns := make([]clause.Column, len(names))
	for i, name := range names {
		columns[i] = clause.Column{Name: name}
	}
	return columns
}
