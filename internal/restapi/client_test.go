package restapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/bizpilot/internal/domain/account"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/resource"
	"github.com/rpggio/bizpilot/internal/restapi"
	"github.com/rpggio/bizpilot/internal/testserver"
	"github.com/stretchr/testify/require"
)

type tasks = restapi.Collection[task.Task, task.Draft, task.Patch]

func newTasks(t *testing.T, baseURL, token string) *tasks {
	t.Helper()
	client, err := restapi.New(restapi.Config{BaseURL: baseURL, Token: token, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return restapi.NewCollection[task.Task, task.Draft, task.Patch](client, task.ResourceName)
}

func TestCollection_List(t *testing.T) {
	ts := testserver.New(t, "")
	ts.Seed("tasks",
		map[string]any{"id": 1, "title": "A", "priority": "high", "status": "pending"},
		map[string]any{"id": 2, "title": "B", "priority": "low", "status": "completed"},
	)

	items, err := newTasks(t, ts.URL(), "").List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []task.Task{
		{ID: "1", Title: "A", Priority: task.PriorityHigh, Status: task.StatusPending},
		{ID: "2", Title: "B", Priority: task.PriorityLow, Status: task.StatusCompleted},
	}, items)
}

func TestCollection_CreateReturnsEntity(t *testing.T) {
	ts := testserver.New(t, "")

	created, err := newTasks(t, ts.URL(), "").Create(context.Background(), task.Draft{Title: "B", Priority: task.PriorityMedium, Status: task.StatusPending})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, "B", created.Title)
	require.NotEmpty(t, created.ID)

	reqs := ts.RequestsTo(http.MethodPost, "/tasks")
	require.Len(t, reqs, 1)
	require.JSONEq(t, `{"title":"B","priority":"medium","status":"pending"}`, reqs[0].Body)
}

func TestCollection_CreateWithoutBody(t *testing.T) {
	ts := testserver.New(t, "")
	ts.OmitCreatedBody(true)

	created, err := newTasks(t, ts.URL(), "").Create(context.Background(), task.Draft{Title: "B"})
	require.NoError(t, err)
	require.Nil(t, created)
}

func TestCollection_UpdateSendsOnlySetFields(t *testing.T) {
	ts := testserver.New(t, "")
	ts.Seed("tasks", map[string]any{"id": 1, "title": "A", "status": "pending"})

	completed := task.StatusCompleted
	updated, err := newTasks(t, ts.URL(), "").Update(context.Background(), "1", task.Patch{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, updated.Status)

	reqs := ts.RequestsTo(http.MethodPut, "/tasks/1")
	require.Len(t, reqs, 1)
	require.JSONEq(t, `{"status":"completed"}`, reqs[0].Body)
}

func TestCollection_DeleteMissingIsNotAnError(t *testing.T) {
	ts := testserver.New(t, "")
	ts.Seed("tasks", map[string]any{"id": 1, "title": "A"})
	remote := newTasks(t, ts.URL(), "")

	require.NoError(t, remote.Delete(context.Background(), "1"))
	require.NoError(t, remote.Delete(context.Background(), "1"))
	require.Empty(t, ts.Collection("tasks"))
}

func TestCollection_RejectsIDsThatEscapeTheItemPath(t *testing.T) {
	ts := testserver.New(t, "")
	ts.Seed("tasks", map[string]any{"id": 1, "title": "A", "status": "pending"})
	remote := newTasks(t, ts.URL(), "")
	completed := task.StatusCompleted

	for _, id := range []resource.ID{".", "..", ""} {
		err := remote.Delete(context.Background(), id)
		require.ErrorIs(t, err, resource.ErrValidation, "delete %q", id)

		_, err = remote.Update(context.Background(), id, task.Patch{Status: &completed})
		require.ErrorIs(t, err, resource.ErrValidation, "update %q", id)
	}
	require.Empty(t, ts.Requests())
	require.Len(t, ts.Collection("tasks"), 1)

	require.NoError(t, remote.Delete(context.Background(), "a/.."))
	reqs := ts.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "/tasks/a/..", reqs[0].Path)
}

func TestCollection_ServerErrorCarriesMessage(t *testing.T) {
	ts := testserver.New(t, "")
	ts.Fail(http.MethodGet, "/tasks", http.StatusInternalServerError, "database unavailable")

	_, err := newTasks(t, ts.URL(), "").List(context.Background())
	var netErr *resource.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
	require.Equal(t, "database unavailable", netErr.Message)
	require.Equal(t, http.MethodGet, netErr.Method)
}

func TestCollection_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTasks(t, url, "").List(context.Background())
	require.ErrorIs(t, err, resource.ErrNetwork)
}

func TestCollection_RejectsNonArrayList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tasks":[]}`))
	}))
	t.Cleanup(server.Close)

	_, err := newTasks(t, server.URL, "").List(context.Background())
	require.ErrorIs(t, err, resource.ErrNetwork)
}

func TestClient_Headers(t *testing.T) {
	var auth, requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	items, err := newTasks(t, server.URL, "secret").List(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, "Bearer secret", auth)
	require.NotEmpty(t, requestID)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := restapi.New(restapi.Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = restapi.NewCollection[task.Task, task.Draft, task.Patch](client, task.ResourceName).List(context.Background())
	require.ErrorIs(t, err, resource.ErrNetwork)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := restapi.New(restapi.Config{BaseURL: "localhost:5000"})
	require.Error(t, err)
}

func TestAccounts_Signup(t *testing.T) {
	ts := testserver.New(t, "")
	client, err := restapi.New(restapi.Config{BaseURL: ts.URL()})
	require.NoError(t, err)
	accounts := restapi.NewAccounts(client)

	req := account.SignupRequest{FullName: "Asha Rao", Email: "asha@example.com", Role: account.RoleOwner, Password: "s3cret-pass"}
	require.NoError(t, accounts.Signup(context.Background(), req))

	reqs := ts.RequestsTo(http.MethodPost, "/users/signup")
	require.Len(t, reqs, 1)
	require.JSONEq(t, `{"fullName":"Asha Rao","email":"asha@example.com","role":"owner","password":"s3cret-pass"}`, reqs[0].Body)

	err = accounts.Signup(context.Background(), req)
	var netErr *resource.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, http.StatusConflict, netErr.StatusCode)
	require.Equal(t, "User already exists", netErr.Message)
}
