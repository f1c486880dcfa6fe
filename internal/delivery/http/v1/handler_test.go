package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ndanylov/taskdeck/internal/models"
	"github.com/ndanylov/taskdeck/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))

	logger := zerolog.Nop()
	authService := services.NewAuthService(logger, db, "taskdeck-test", []byte("test-signing-key"), time.Hour)
	taskService := services.NewTaskService(logger, db)

	router := gin.New()
	RegisterRoutes(router, New(logger, authService, taskService))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signupUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]any{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func createTask(t *testing.T, router *gin.Engine, token string, body map[string]any) map[string]any {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/tasks", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	task, ok := decodeJSON(t, w)["task"].(map[string]any)
	require.True(t, ok)
	return task
}

func validationFields(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	body := decodeJSON(t, w)
	require.Equal(t, "Validation failed", body["error"])

	details, ok := body["details"].([]any)
	require.True(t, ok)

	fields := make(map[string]string, len(details))
	for _, d := range details {
		detail, ok := d.(map[string]any)
		require.True(t, ok)
		fields[detail["field"].(string)] = detail["message"].(string)
	}
	return fields
}
