package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/snap-point/blog-api/repositories"
	"github.com/snap-point/blog-api/usecases"
	"github.com/snap-point/blog-api/utils"
)

type UserController struct {
	UseCase *usecases.UserUseCase
}

func NewUserController(useCase *usecases.UserUseCase) *UserController {
	return &UserController{UseCase: useCase}
}

// GetAll godoc
// @Summary List users
// @Description Returns a page of users, optionally filtered by a name/email substring
// @Tags users
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param limit query integer false "Items per page (default: 10)"
// @Param search query string false "Substring of name or email"
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (uc *UserController) GetAll(c *gin.Context) {
	var query ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	users, err := uc.UseCase.GetAllUsers(c.Request.Context(), repositories.UserFilter{
		PaginationParams: repositories.PaginationParams{
			Page:    query.Page,
			Limit:   query.Limit,
			OrderBy: query.OrderBy,
			Order:   repositories.ParseSortOrder(query.Order),
		},
		Search: query.Search,
	})
	if err != nil {
		uc.fail(c, "Failed to fetch users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetByID godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path integer true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id} [get]
func (uc *UserController) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user id"})
		return
	}

	user, err := uc.UseCase.GetUserByID(c.Request.Context(), id)
	if err != nil {
		uc.fail(c, "Failed to fetch user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetStats godoc
// @Summary Get a user's activity counts
// @Description Counts of posts authored, comments written and likes given
// @Tags users
// @Produce json
// @Param id path integer true "User ID"
// @Success 200 {object} repositories.UserStats
// @Router /users/{id}/stats [get]
func (uc *UserController) GetStats(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user id"})
		return
	}

	stats, err := uc.UseCase.GetUserStats(c.Request.Context(), id)
	if err != nil {
		uc.fail(c, "Failed to fetch user stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body usecases.CreateUserInput true "New user"
// @Success 201 {object} models.User
// @Router /users [post]
func (uc *UserController) Create(c *gin.Context) {
	var input usecases.CreateUserInput
	// The validation middleware already consumed the body
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := uc.UseCase.CreateUser(c.Request.Context(), input)
	if err != nil {
		uc.fail(c, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user
// @Description Applies the provided fields only
// @Tags users
// @Accept json
// @Produce json
// @Param id path integer true "User ID"
// @Param user body repositories.UserUpdate true "Fields to change"
// @Success 200 {object} models.User
// @Router /users/{id} [put]
func (uc *UserController) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user id"})
		return
	}

	var changes repositories.UserUpdate
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if changes.Role != nil && !changes.Role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Role must be one of admin, user, moderator"})
		return
	}

	user, err := uc.UseCase.UpdateUser(c.Request.Context(), id, changes)
	if err != nil {
		uc.fail(c, "Failed to update user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path integer true "User ID"
// @Success 200 {object} MessageResponse
// @Router /users/{id} [delete]
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user id"})
		return
	}

	deleted, err := uc.UseCase.DeleteUser(c.Request.Context(), id)
	if err != nil {
		uc.fail(c, "Failed to delete user", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// fail maps a use-case error to a status: missing rows become 404, a duplicate
// email 409, anything else is logged and 500.
func (uc *UserController) fail(c *gin.Context, message string, err error) {
	if repositories.IsNotFound(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		return
	}
	if errors.Is(err, usecases.ErrEmailTaken) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already in use"})
		return
	}
	log.Printf("%s request_id=%s: %v", message, utils.GetRequestID(c), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
