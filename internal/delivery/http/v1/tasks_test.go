package v1

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	noHeader := doJSON(t, router, http.MethodGet, "/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, noHeader.Code)

	badToken := doJSON(t, router, http.MethodGet, "/tasks", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, badToken.Code)

	expired := doJSON(t, router, http.MethodPost, "/tasks", "", map[string]any{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, expired.Code)
}

func TestHandleCreateTask(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "alice@example.com")

	task := createTask(t, router, token, map[string]any{
		"title":       "Buy groceries",
		"description": "Milk and bread",
	})
	assert.NotEmpty(t, task["id"])
	assert.Equal(t, "Buy groceries", task["title"])
	assert.Equal(t, "Milk and bread", task["description"])
	assert.Equal(t, "PENDING", task["status"])
	assert.NotEmpty(t, task["userId"])

	// Absent description serializes as null, not "".
	bare := createTask(t, router, token, map[string]any{"title": "No description"})
	assert.Nil(t, bare["description"])
}

func TestHandleCreateTask_Validation(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "alice@example.com")

	missingTitle := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, missingTitle.Code)
	assert.Equal(t, "Title is required", validationFields(t, missingTitle)["title"])

	tooLongTitle := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]any{
		"title": strings.Repeat("a", 101),
	})
	require.Equal(t, http.StatusBadRequest, tooLongTitle.Code)
	assert.Equal(t, "Title must be 100 characters or less", validationFields(t, tooLongTitle)["title"])

	// Boundary values pass.
	createTask(t, router, token, map[string]any{"title": strings.Repeat("a", 100)})
	createTask(t, router, token, map[string]any{
		"title":       "With max description",
		"description": strings.Repeat("d", 500),
	})

	tooLongDescription := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]any{
		"title":       "ok",
		"description": strings.Repeat("d", 501),
	})
	require.Equal(t, http.StatusBadRequest, tooLongDescription.Code)
	assert.Equal(t, "Description must be 500 characters or less",
		validationFields(t, tooLongDescription)["description"])
}

func TestHandleGetTasks_NewestFirstRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "alice@example.com")

	createTask(t, router, token, map[string]any{"title": "first"})
	time.Sleep(5 * time.Millisecond)
	latest := createTask(t, router, token, map[string]any{"title": "second"})

	w := doJSON(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks, ok := decodeJSON(t, w)["tasks"].([]any)
	require.True(t, ok)
	require.Len(t, tasks, 2)

	head := tasks[0].(map[string]any)
	assert.Equal(t, latest["id"], head["id"])
	assert.Equal(t, "second", head["title"])
}

func TestHandleGetTasks_Isolation(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signupUser(t, router, "alice@example.com")
	bobToken := signupUser(t, router, "bob@example.com")

	createTask(t, router, aliceToken, map[string]any{"title": "alice's task"})

	w := doJSON(t, router, http.MethodGet, "/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks, ok := decodeJSON(t, w)["tasks"].([]any)
	require.True(t, ok)
	assert.Empty(t, tasks)
}

func TestHandleUpdateTask_Partial(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "alice@example.com")

	task := createTask(t, router, token, map[string]any{
		"title":       "Original",
		"description": "Keep me",
	})
	id := task["id"].(string)

	w := doJSON(t, router, http.MethodPut, "/tasks/"+id, token, map[string]any{
		"status": "COMPLETED",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated, ok := decodeJSON(t, w)["task"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "COMPLETED", updated["status"])
	assert.Equal(t, "Original", updated["title"])
	assert.Equal(t, "Keep me", updated["description"])
}

func TestHandleUpdateTask_Validation(t *testing.T) {
	router := newTestRouter(t)
	token := signupUser(t, router, "alice@example.com")

	task := createTask(t, router, token, map[string]any{"title": "task"})
	id := task["id"].(string)

	emptyTitle := doJSON(t, router, http.MethodPut, "/tasks/"+id, token, map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, emptyTitle.Code)
	assert.Equal(t, "Title is required", validationFields(t, emptyTitle)["title"])

	badStatus := doJSON(t, router, http.MethodPut, "/tasks/"+id, token, map[string]any{"status": "DONE"})
	require.Equal(t, http.StatusBadRequest, badStatus.Code)
	assert.Equal(t, "Status must be either PENDING or COMPLETED",
		validationFields(t, badStatus)["status"])
}

func TestHandleUpdateTask_NotFoundIndistinguishable(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signupUser(t, router, "alice@example.com")
	bobToken := signupUser(t, router, "bob@example.com")

	task := createTask(t, router, aliceToken, map[string]any{"title": "alice's task"})
	id := task["id"].(string)

	notOwned := doJSON(t, router, http.MethodPut, "/tasks/"+id, bobToken, map[string]any{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusNotFound, notOwned.Code)

	nonexistent := doJSON(t, router, http.MethodPut, "/tasks/no-such-id", bobToken, map[string]any{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusNotFound, nonexistent.Code)

	// "Not yours" and "doesn't exist" must be byte-identical.
	assert.Equal(t, notOwned.Body.String(), nonexistent.Body.String())
}

func TestHandleDeleteTask(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signupUser(t, router, "alice@example.com")
	bobToken := signupUser(t, router, "bob@example.com")

	task := createTask(t, router, aliceToken, map[string]any{"title": "to delete"})
	id := task["id"].(string)

	notOwned := doJSON(t, router, http.MethodDelete, "/tasks/"+id, bobToken, nil)
	require.Equal(t, http.StatusNotFound, notOwned.Code)

	deleted := doJSON(t, router, http.MethodDelete, "/tasks/"+id, aliceToken, nil)
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, "Task deleted successfully", decodeJSON(t, deleted)["message"])

	again := doJSON(t, router, http.MethodDelete, "/tasks/"+id, aliceToken, nil)
	require.Equal(t, http.StatusNotFound, again.Code)
	assert.Equal(t, notOwned.Body.String(), again.Body.String())
}
