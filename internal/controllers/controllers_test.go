package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub-be/internal/jwt"
	"taskhub-be/internal/middleware"
	"taskhub-be/internal/service"
)

type testEnv struct {
	router     *gin.Engine
	jwtService *jwt.JWTService
}

// newTestEnv wires the full controller stack over in-memory fakes, with
// the same route layout as main.go
func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	jwtService := jwt.NewJWTService("controllers-test-secret", time.Hour)

	// Auth and profile share one user store
	userRepo := service.NewFakeUserRepository()
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, nil)
	taskService := service.NewTaskService(service.NewFakeTaskRepository())
	todoService := service.NewTodoService(service.NewFakeTodoRepository())

	authController := NewAuthController(authService)
	userController := NewUserController(userService)
	taskController := NewTaskController(taskService)
	todoController := NewTodoController(todoService)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/auth/signup", authController.Signup)
	api.POST("/auth/login", authController.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/users/me", userController.GetMe)
		protected.PUT("/users/me", userController.UpdateMe)
		protected.DELETE("/users/me", userController.DeleteMe)

		protected.GET("/tasks", taskController.List)
		protected.POST("/tasks", taskController.Create)
		protected.POST("/tasks/bulk", taskController.Bulk)
		protected.GET("/tasks/:id", taskController.Get)
		protected.PUT("/tasks/:id", taskController.Update)
		protected.PATCH("/tasks/:id/complete", taskController.SetCompletion)
		protected.DELETE("/tasks/:id", taskController.Delete)

		protected.GET("/todos", todoController.List)
		protected.POST("/todos", todoController.Create)
		protected.POST("/todos/bulk", todoController.Bulk)
		protected.GET("/todos/:id", todoController.Get)
		protected.PUT("/todos/:id", todoController.Update)
		protected.PATCH("/todos/:id/toggle", todoController.Toggle)
		protected.DELETE("/todos/:id", todoController.Delete)
	}

	return &testEnv{router: router, jwtService: jwtService}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) signup(t *testing.T, email, name string) string {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    email,
		"name":     name,
		"password": "longenough1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestSignupAndDuplicate(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    "a@x.com",
		"name":     "A",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    "a@x.com",
		"name":     "Another A",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, w))
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    "not-an-email",
		"name":     "A",
		"password": "longenough1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    "a@x.com",
		"name":     "A",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv()
	env.signup(t, "a@x.com", "A")

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTHENTICATION_FAILED", errorCode(t, w))
}

func TestTaskOwnershipAcrossUsers(t *testing.T) {
	env := newTestEnv()
	tokenA := env.signup(t, "a@x.com", "A")
	tokenB := env.signup(t, "b@x.com", "B")

	w := env.do(t, http.MethodPost, "/api/v1/tasks", tokenA, gin.H{
		"title":       "T1",
		"description": "d",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var task struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	// B cannot see A's task by id; the response is the same as for a
	// task that does not exist
	w = env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, tokenB, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "T1")

	w = env.do(t, http.MethodGet, "/api/v1/tasks/does-not-exist", tokenB, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", errorCode(t, w))

	// A still can
	w = env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestTaskCompleteEndpoint(t *testing.T) {
	env := newTestEnv()
	token := env.signup(t, "a@x.com", "A")

	w := env.do(t, http.MethodPost, "/api/v1/tasks", token, gin.H{"title": "T1"})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ID        string    `json:"id"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPatch, "/api/v1/tasks/"+created.ID+"/complete", token, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)

	var completed struct {
		Completed bool      `json:"completed"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	assert.True(t, completed.Completed)
	assert.True(t, completed.UpdatedAt.After(created.UpdatedAt))
}

func TestExpiredTokenRejectedOnProtectedRoutes(t *testing.T) {
	env := newTestEnv()
	env.signup(t, "a@x.com", "A")

	// Mint an already-expired token for an existing identity
	expired, err := env.jwtService.GenerateTokenWithTTL("some-user", "a@x.com", "A", -time.Minute)
	require.NoError(t, err)

	for _, path := range []string{"/api/v1/tasks", "/api/v1/todos", "/api/v1/users/me"} {
		w := env.do(t, http.MethodGet, path, expired, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "AUTHENTICATION_FAILED", errorCode(t, w))
	}
}

func TestTodoCrudFlow(t *testing.T) {
	env := newTestEnv()
	token := env.signup(t, "a@x.com", "A")

	w := env.do(t, http.MethodPost, "/api/v1/todos", token, gin.H{
		"title":    "T1",
		"priority": "high",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var todo struct {
		ID       string `json:"id"`
		Priority string `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todo))
	assert.Equal(t, "high", todo.Priority)

	w = env.do(t, http.MethodPatch, "/api/v1/todos/"+todo.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var toggled struct {
		Completed bool `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Completed)

	// An unknown priority in the body never reaches the service
	w = env.do(t, http.MethodPost, "/api/v1/todos", token, gin.H{
		"title":    "T2",
		"priority": "urgent",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/todos/"+todo.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/todos/"+todo.ID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkEndpointCounts(t *testing.T) {
	env := newTestEnv()
	tokenA := env.signup(t, "a@x.com", "A")
	tokenB := env.signup(t, "b@x.com", "B")

	var ids []string
	for _, title := range []string{"one", "two"} {
		w := env.do(t, http.MethodPost, "/api/v1/tasks", tokenA, gin.H{"title": title})
		require.Equal(t, http.StatusOK, w.Code)
		var task struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		ids = append(ids, task.ID)
	}

	w := env.do(t, http.MethodPost, "/api/v1/tasks", tokenB, gin.H{"title": "theirs"})
	require.Equal(t, http.StatusOK, w.Code)
	var foreign struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &foreign))

	w = env.do(t, http.MethodPost, "/api/v1/tasks/bulk", tokenA, gin.H{
		"operation": "complete",
		"ids":       append(ids, foreign.ID),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success       bool  `json:"success"`
		AffectedCount int64 `json:"affected_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.AffectedCount)

	// B's task is untouched
	w = env.do(t, http.MethodGet, "/api/v1/tasks/"+foreign.ID, tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":false`)
}

func TestProfileRoundTrip(t *testing.T) {
	env := newTestEnv()
	token := env.signup(t, "a@x.com", "A")

	w := env.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = env.do(t, http.MethodPut, "/api/v1/users/me", token, gin.H{"name": "New A"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"New A"`)

	w = env.do(t, http.MethodDelete, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":false`)
}
