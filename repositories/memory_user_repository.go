package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/snap-point/blog-api/models"
)

var _ UserRepository = (*InMemoryUserRepository)(nil)

// InMemoryUserRepository keeps users in a map. It backs `serve --in-memory`
// and the handler tests; it has no posts, comments or likes, so stats are zero.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[uint]models.User), nextID: 1}
}

func (r *InMemoryUserRepository) FindAll(ctx context.Context, filter UserFilter) (*PaginatedResult[models.User], error) {
	page := BuildPagination(filter.PaginationParams)

	r.mu.RLock()
	matched := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Search == "" || strings.Contains(u.Name, filter.Search) || strings.Contains(u.Email, filter.Search) {
			matched = append(matched, public(u))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	less := userLess(filter.OrderBy)
	desc := filter.Order == Desc
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	data := make([]models.User, 0, page.Limit)
	for i := page.Offset; i >= 0 && i < len(matched) && len(data) < page.Limit; i++ {
		data = append(data, matched[i])
	}

	return &PaginatedResult[models.User]{
		Data: data,
		Meta: Meta{Total: int64(len(matched)), Page: page.Page, Limit: page.Limit},
	}, nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u = public(u)
	return &u, nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			u = public(u)
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// Create stores a copy of user and fills in the id, defaults and timestamps.
func (r *InMemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.ID = r.nextID
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now

	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) Update(ctx context.Context, id uint, changes UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if changes.Name != nil {
		u.Name = *changes.Name
	}
	if changes.Email != nil {
		u.Email = *changes.Email
	}
	if changes.Password != nil {
		u.Password = *changes.Password
	}
	if changes.Role != nil {
		u.Role = *changes.Role
	}
	if changes.AvatarURL != nil {
		u.AvatarURL = changes.AvatarURL
	}
	if changes.Bio != nil {
		u.Bio = changes.Bio
	}
	if changes.IsActive != nil {
		u.IsActive = *changes.IsActive
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u

	u = public(u)
	return &u, nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *InMemoryUserRepository) GetUserStats(ctx context.Context, id uint) (*UserStats, error) {
	return &UserStats{}, nil
}

// PasswordHash returns the stored hash for id, or "" when the user is unknown.
func (r *InMemoryUserRepository) PasswordHash(id uint) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id].Password
}

func public(u models.User) models.User {
	u.Password = ""
	return u
}

func userLess(orderBy string) func(a, b models.User) bool {
	column, ok := userSortColumns[orderBy]
	if !ok {
		column = userSortColumns[snakeToCamel(orderBy)]
	}
	switch column {
	case "name":
		return func(a, b models.User) bool { return a.Name < b.Name }
	case "email":
		return func(a, b models.User) bool { return a.Email < b.Email }
	case "role":
		return func(a, b models.User) bool { return a.Role < b.Role }
	case "created_at":
		return func(a, b models.User) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updated_at":
		return func(a, b models.User) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	}
	return func(a, b models.User) bool { return a.ID < b.ID }
}
