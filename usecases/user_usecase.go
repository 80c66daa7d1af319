package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/snap-point/blog-api/models"
	"github.com/snap-point/blog-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned when another user already has the email.
var ErrEmailTaken = errors.New("email already in use")

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUseCase forwards to the user repository, hashing passwords on the way in.
type UserUseCase struct {
	repo repositories.UserRepository
}

func NewUserUseCase(repo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func (uc *UserUseCase) GetAllUsers(ctx context.Context, filter repositories.UserFilter) (*repositories.PaginatedResult[models.User], error) {
	return uc.repo.FindAll(ctx, filter)
}

func (uc *UserUseCase) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return uc.repo.FindByEmail(ctx, email)
}

func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := uc.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (uc *UserUseCase) UpdateUser(ctx context.Context, id uint, changes repositories.UserUpdate) (*models.User, error) {
	if changes.Email != nil {
		if err := uc.ensureEmailFree(ctx, *changes.Email, id); err != nil {
			return nil, err
		}
	}
	if changes.Password != nil {
		hashed, err := hashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		changes.Password = &hashed
	}
	return uc.repo.Update(ctx, id, changes)
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, id uint) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) GetUserStats(ctx context.Context, id uint) (*repositories.UserStats, error) {
	if _, err := uc.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.GetUserStats(ctx, id)
}

// ensureEmailFree fails with ErrEmailTaken when a user other than self owns email.
// The unique index still guards against a concurrent insert.
func (uc *UserUseCase) ensureEmailFree(ctx context.Context, email string, self uint) error {
	existing, err := uc.GetUserByEmail(ctx, email)
	if repositories.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != self {
		return ErrEmailTaken
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}
