package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/blog-api/models"
	"github.com/snap-point/blog-api/repositories"
	"github.com/snap-point/blog-api/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenRepo fails every lookup the way a lost database connection would.
type brokenRepo struct {
	repositories.UserRepository
}

func (brokenRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func setup(repo repositories.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return routes.NewRouter(repo)
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createUser(t *testing.T, r *gin.Engine, name, email string) {
	t.Helper()
	w := perform(r, http.MethodPost, "/users", `{"name":"`+name+`","email":"`+email+`","password":"pw"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateAndFetchUser(t *testing.T) {
	repo := repositories.NewInMemoryUserRepository()
	r := setup(repo)

	w := perform(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "s3cret")

	var created models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotEqual(t, "s3cret", repo.PasswordHash(1))

	w = perform(r, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"alice@example.com"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateUserValidation(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())

	w := perform(r, http.MethodPost, "/users", `{"email":"alice@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required and must be a string")

	w = perform(r, http.MethodPost, "/users", `{"name":"Alice","email":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Valid email is required")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())
	createUser(t, r, "Alice", "alice@example.com")

	w := perform(r, http.MethodPost, "/users", `{"name":"Again","email":"alice@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already in use")
}

func TestListUsersPaginates(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())
	for _, name := range []string{"Ann", "Ben", "Cid", "Dee", "Eve"} {
		createUser(t, r, name, strings.ToLower(name)+"@example.com")
	}

	w := perform(r, http.MethodGet, "/users?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	var result repositories.PaginatedResult[models.User]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.EqualValues(t, 5, result.Meta.Total)
	assert.Equal(t, 2, result.Meta.Page)
	assert.Equal(t, 2, result.Meta.Limit)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "Cid", result.Data[0].Name)

	w = perform(r, http.MethodGet, "/users?orderBy=name&order=desc&limit=1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Eve", result.Data[0].Name)

	w = perform(r, http.MethodGet, "/users?search=Eve", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.EqualValues(t, 1, result.Meta.Total)
}

func TestGetUserErrors(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())

	w := perform(r, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/users/42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	w = perform(setup(brokenRepo{}), http.MethodGet, "/users/42", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestUpdateUser(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())
	createUser(t, r, "Alice", "alice@example.com")

	w := perform(r, http.MethodPut, "/users/1", `{"name":"Alicia","role":"moderator"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alicia"`)
	assert.Contains(t, w.Body.String(), `"role":"moderator"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = perform(r, http.MethodPut, "/users/1", `{"role":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPut, "/users/9", `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())
	createUser(t, r, "Alice", "alice@example.com")

	w := perform(r, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, w.Body.String())

	w = perform(r, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserStats(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())
	createUser(t, r, "Alice", "alice@example.com")

	w := perform(r, http.MethodGet, "/users/1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"posts":0,"comments":0,"likes":0}`, w.Body.String())

	w = perform(r, http.MethodGet, "/users/2/stats", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	w := perform(setup(repositories.NewInMemoryUserRepository()), http.MethodGet, "/posts", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, w.Body.String())
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	r := setup(repositories.NewInMemoryUserRepository())

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "http://frontend.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://frontend.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
