package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/internal/service"
	"github.com/Novip1906/join/internal/storage"
	"github.com/Novip1906/join/pkg/logging"
)

type apiClient struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()

	cfg := config.Default()
	cfg.JWT.BcryptCost = 4
	log := logging.Discard()
	db := storage.NewMemoryStorage()

	g, err := New(log, Services{
		Auth:     service.NewAuthService(cfg.JWT, cfg.Params, log, db, storage.NewMemoryRevocations()),
		Board:    service.NewBoardService(cfg.Params, log, db, nil, nil),
		Contacts: service.NewContactsService(cfg.Params, log, db, nil),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(g.Handler())
	t.Cleanup(srv.Close)
	return &apiClient{t: t, srv: srv}
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.srv.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *apiClient) loginAsGuest() {
	c.t.Helper()
	var res service.LoginResult
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/api/v1/auth/guest", nil, &res))
	require.NotEmpty(c.t, res.Token)
	c.token = res.Token
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	api := newAPI(t)

	var body errorBody
	code := api.do(http.MethodGet, "/api/v1/board", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "authorization header required", body.Message)

	api.token = "garbage"
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/tasks", nil, nil))
}

func TestSignupLoginLogout(t *testing.T) {
	api := newAPI(t)

	signup := service.SignupInput{Name: "Sofia Müller", Email: "sofia@example.com", Password: "secret123", ConfirmPassword: "secret123", AcceptPolicy: true}
	var user service.UserView
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/auth/signup", signup, &user))
	assert.Equal(t, "SM", user.Initials)

	var dup errorBody
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/v1/auth/signup", signup, &dup))
	assert.Equal(t, service.ErrUserExistsMessage, dup.Message)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/api/v1/auth/login", loginRequest{Email: "sofia@example.com", Password: "wrong-one"}, nil))

	var res service.LoginResult
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/auth/login", loginRequest{Email: "sofia@example.com", Password: "secret123"}, &res))
	api.token = res.Token

	var me service.UserView
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/auth/me", nil, &me))
	assert.Equal(t, "Sofia Müller", me.Name)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/v1/auth/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/v1/auth/me", nil, nil))
}

func TestBoardFlow(t *testing.T) {
	api := newAPI(t)
	api.loginAsGuest()

	var contact models.Contact
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/contacts",
		service.ContactInput{Name: "Anja Schulz", Email: "anja@example.com"}, &contact))

	var task models.Task
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/tasks", service.TaskInput{
		Title:      "Kochwelt Page",
		DueDate:    "2999-01-01",
		Category:   models.CategoryUserStory,
		Prio:       "urgent",
		AssignedTo: []string{contact.Id},
		Subtasks:   []service.SubtaskInput{{Description: "Design"}},
	}, &task))
	assert.Equal(t, models.StatusToDo, task.Status)
	assert.Contains(t, task.AssignedTo, contact.Id)

	taskPath := "/api/v1/tasks/" + jsonNumber(task.Id)

	var moved models.Task
	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, taskPath+"/status", moveRequest{Status: "awaitFeedback"}, &moved))
	assert.Equal(t, models.StatusAwaitFeedback, moved.Status)

	var board service.Board
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/board", nil, &board))
	require.Len(t, board.Columns, 4)
	assert.Empty(t, board.Columns[0].Tasks)
	require.Len(t, board.Columns[2].Tasks, 1)
	assert.Equal(t, task.Id, board.Columns[2].Tasks[0].Id)

	var found service.Board
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/search?q=kochwelt", nil, &found))
	assert.Len(t, found.Columns[2].Tasks, 1)
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/search?q=nothing", nil, &found))
	assert.Empty(t, found.Columns[2].Tasks)

	var sum service.Summary
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/v1/summary", nil, &sum))
	assert.Equal(t, 1, sum.AwaitFeedback)
	assert.Equal(t, 1, sum.Urgent)
	assert.Equal(t, "2999-01-01", sum.UpcomingDeadline)

	var sub models.Subtask
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, taskPath+"/subtasks", subtaskRequest{Description: "Build"}, &sub))
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, taskPath+"/subtasks/"+sub.Id+"/toggle", nil, &sub))
	assert.True(t, sub.IsChecked)

	var deleted service.DeleteContactResult
	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/v1/contacts/"+contact.Id, nil, &deleted))
	assert.Equal(t, 1, deleted.TasksUpdated)

	var got models.Task
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, taskPath, nil, &got))
	assert.Empty(t, got.AssignedTo)
	assert.Len(t, got.Subtasks, 2)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, taskPath, nil, nil))

	var missing errorBody
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, taskPath, nil, &missing))
	assert.Equal(t, service.ErrTaskNotFoundMessage, missing.Message)
}

func TestInvalidInputIsBadRequest(t *testing.T) {
	api := newAPI(t)
	api.loginAsGuest()

	var body errorBody
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/v1/tasks/abc", nil, &body))
	assert.Equal(t, errInvalidTaskIdMessage, body.Message)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/api/v1/tasks", service.TaskInput{Title: "no date"}, &body))
	assert.Equal(t, service.ErrInvalidDueDateMessage, body.Message)
}

func TestHealthAndDocs(t *testing.T) {
	api := newAPI(t)

	var health map[string]string
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", nil, &health))
	assert.Equal(t, "ok", health["status"])

	var doc map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/swagger/doc.json", nil, &doc))
	assert.Equal(t, "/api/v1", doc["basePath"])
}

func jsonNumber(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}
