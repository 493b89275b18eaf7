package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dto "task-assign-system.com/task-assign-system/internal/data_models"
	middleware "task-assign-system.com/task-assign-system/internal/http/middlewares"
	model "task-assign-system.com/task-assign-system/internal/models"
	repository "task-assign-system.com/task-assign-system/internal/repositories"
	"task-assign-system.com/task-assign-system/internal/services"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T, rateLimit int) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))

	users := repository.NewUserRepository(db)
	for _, u := range []model.User{
		{ID: "alice", Name: "Alice", Email: "alice@example.com"},
		{ID: "bob", Name: "Bob", Email: "bob@example.com"},
	} {
		u := u
		require.NoError(t, users.Create(context.Background(), &u))
	}

	appLogger := log.New(io.Discard)
	svc := services.NewTaskService(repository.NewTaskRepository(db), users, appLogger)

	e := NewServer(appLogger)
	Register(e, NewHandler(svc), testSecret, rateLimit)
	return e
}

func bearer(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(t *testing.T, e *echo.Echo, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(echo.HeaderAuthorization, bearer(t, userID))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
}

func createTask(t *testing.T, e *echo.Echo, creator, assignee string) model.TaskView {
	t.Helper()

	rec := do(t, e, http.MethodPost, "/tasks", creator, dto.CreateTaskRequest{
		Title:       "Fix bug",
		Description: "Crash on save",
		DueDate:     tomorrow(),
		Priority:    "high",
		AssignedTo:  assignee,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task model.TaskView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, 100)

	rec := do(t, e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTasksRequireBearerToken(t *testing.T) {
	e := newTestServer(t, 100)

	rec := do(t, e, http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing or invalid bearer token", decodeError(t, rec))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTask(t *testing.T) {
	e := newTestServer(t, 100)

	task := createTask(t, e, "alice", "bob")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "pending", string(task.Status))
	require.NotNil(t, task.CreatedBy)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "alice", task.CreatedBy.ID)
	assert.Equal(t, "Bob", task.AssignedTo.Name)
	assert.Equal(t, "bob@example.com", task.AssignedTo.Email)
}

func TestCreateTaskInvalidInput(t *testing.T) {
	e := newTestServer(t, 100)

	tests := []struct {
		name string
		body any
	}{
		{"missing fields", dto.CreateTaskRequest{Title: "only title"}},
		{"malformed date", dto.CreateTaskRequest{Title: "t", Description: "d", DueDate: "19/10/2026", Priority: "low", AssignedTo: "bob"}},
		{"past date", dto.CreateTaskRequest{Title: "t", Description: "d", DueDate: "2001-01-01", Priority: "low", AssignedTo: "bob"}},
		{"unknown assignee", dto.CreateTaskRequest{Title: "t", Description: "d", DueDate: tomorrow(), Priority: "low", AssignedTo: "nobody"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/tasks", "alice", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, bearer(t, "alice"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON payload", decodeError(t, rec))
}

func TestTaskLifecycle(t *testing.T) {
	e := newTestServer(t, 100)
	task := createTask(t, e, "alice", "bob")
	path := "/tasks/" + task.ID

	rec := do(t, e, http.MethodPatch, path+"/status", "bob", dto.UpdateTaskStatusRequest{Status: "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated model.TaskView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "completed", string(updated.Status))
	assert.Equal(t, task.Title, updated.Title)

	rec = do(t, e, http.MethodPatch, path+"/status", "bob", dto.UpdateTaskStatusRequest{Status: "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPut, path, "alice", dto.UpdateTaskRequest{
		Title:       "Fix bug fast",
		Description: "Crash on save",
		DueDate:     tomorrow(),
		Priority:    "medium",
		Status:      "pending",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodDelete, path, "bob", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodDelete, path, "alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, path, "alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task not found", decodeError(t, rec))
}

func TestGetTaskForbiddenForOutsider(t *testing.T) {
	e := newTestServer(t, 100)
	task := createTask(t, e, "alice", "alice")

	rec := do(t, e, http.MethodGet, "/tasks/"+task.ID, "bob", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdatePayloadErrorsAfterAccessChecks(t *testing.T) {
	e := newTestServer(t, 100)
	task := createTask(t, e, "alice", "alice")
	path := "/tasks/" + task.ID

	badDate := dto.UpdateTaskRequest{Title: "t", Description: "d", DueDate: "garbage", Priority: "low", Status: "pending"}

	rec := do(t, e, http.MethodPut, "/tasks/does-not-exist", "bob", badDate)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPut, path, "bob", badDate)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPut, path, "alice", badDate)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "due date must be YYYY-MM-DD or RFC 3339", decodeError(t, rec))

	for _, target := range []string{path, path + "/status"} {
		method := http.MethodPut
		if target != path {
			method = http.MethodPatch
		}

		req := httptest.NewRequest(method, target, strings.NewReader("{not json"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, bearer(t, "bob"))
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}
}

func TestListTaskScopes(t *testing.T) {
	e := newTestServer(t, 100)

	createTask(t, e, "alice", "alice")
	createTask(t, e, "alice", "bob")
	createTask(t, e, "bob", "alice")
	createTask(t, e, "bob", "alice")

	tests := []struct {
		path  string
		total int64
		pages int64
	}{
		{"/tasks", 4, 2},
		{"/tasks/assigned", 2, 1},
		{"/tasks/created", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, e, http.MethodGet, tt.path, "alice", nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var page model.TaskPage
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.pages, page.Pages)
			assert.Equal(t, 1, page.Page)
			assert.Equal(t, len(page.Tasks), page.Count)
		})
	}

	rec := do(t, e, http.MethodGet, "/tasks?page=2&limit=3", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page model.TaskPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.Count)
}

func TestRateLimitPerRequester(t *testing.T) {
	e := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		rec := do(t, e, http.MethodGet, "/tasks", "alice", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, e, http.MethodGet, "/tasks", "alice", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = do(t, e, http.MethodGet, "/tasks", "bob", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
