package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/bizpilot/internal/app"
	"github.com/rpggio/bizpilot/internal/mcp"
	"github.com/rpggio/bizpilot/internal/restapi"
	"github.com/rpggio/bizpilot/internal/sqlite"
	"github.com/rpggio/bizpilot/internal/testserver"
	"github.com/rpggio/bizpilot/internal/transport"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const apiKey = "functional-key"

type stack struct {
	backend *testserver.TestServer
	server  *httptest.Server
}

// newStack runs the HTTP surface against a fake backend, the way main wires
// it in http mode with auth enabled.
func newStack(t *testing.T) *stack {
	t.Helper()

	backend := testserver.New(t, "backend-token")
	api, err := restapi.New(restapi.Config{BaseURL: backend.URL(), Token: "backend-token", Timeout: 2 * time.Second})
	require.NoError(t, err)

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	state := app.New(app.Deps{API: api, DB: db})
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Tasks:        state.Tasks,
			Clients:      state.Clients,
			Transactions: state.Transactions,
			Accounts:     state.Accounts,
			Dashboard:    state,
		},
		Version: "functional",
	})

	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	router := transport.NewServer(handler, transport.AuthMiddleware(transport.NewStaticKeys(apiKey)), nil)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &stack{backend: backend, server: server}
}

func (s *stack) connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey}),
			Base:   http.DefaultTransport,
		},
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   s.server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) bool {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out), text.Text)
	}
	return res.IsError
}

func TestHealthIsPublic(t *testing.T) {
	s := newStack(t)

	resp, err := http.Get(s.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMCPRequiresAPIKey(t *testing.T) {
	s := newStack(t)

	post := func(authorization string) int {
		req, err := http.NewRequest(http.MethodPost, s.server.URL+"/mcp", strings.NewReader(`{"jsonrpc":"2.0","method":"ping","id":1}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusUnauthorized, post(""))
	require.Equal(t, http.StatusUnauthorized, post("Bearer wrong"))
}

func TestTaskWorkflowOverHTTP(t *testing.T) {
	s := newStack(t)
	s.backend.Seed("tasks", map[string]any{"id": 1, "title": "Follow up", "priority": "high", "status": "pending"})
	session := s.connect(t)

	var listed mcp.TaskListResult
	require.False(t, callTool(t, session, "list_tasks", nil, &listed))
	require.Len(t, listed.Items, 1)

	var created mcp.TaskResult
	require.False(t, callTool(t, session, "create_task", map[string]any{"title": "Prepare quote", "priority": "high"}, &created))
	require.NotEmpty(t, created.Task.ID)

	require.False(t, callTool(t, session, "list_tasks", nil, &listed))
	require.Len(t, listed.Items, 2)
	require.Equal(t, created.Task.ID, listed.Items[0].ID)

	var toggled mcp.TaskResult
	require.False(t, callTool(t, session, "toggle_task_status", map[string]any{"id": "1"}, &toggled))
	require.Equal(t, "completed", string(toggled.Task.Status))

	for _, req := range s.backend.Requests() {
		require.Equal(t, "Bearer backend-token", req.Authorization)
	}
}

func TestErrorsOverHTTP(t *testing.T) {
	s := newStack(t)
	session := s.connect(t)

	var apiErr mcp.APIError
	require.True(t, callTool(t, session, "create_client", map[string]any{"name": "Ada"}, &apiErr))
	require.Equal(t, mcp.CodeValidationFailed, apiErr.Code)

	s.backend.Fail(http.MethodPost, "/transactions", http.StatusInternalServerError, "ledger locked")
	require.True(t, callTool(t, session, "create_transaction", map[string]any{
		"description": "Consulting", "amount": 100, "date": "2025-12-01",
	}, &apiErr))
	require.Equal(t, mcp.CodeNetworkError, apiErr.Code)
	require.Contains(t, apiErr.Message, "ledger locked")

	var status mcp.SyncStatusResult
	require.False(t, callTool(t, session, "get_sync_status", nil, &status))
	for _, c := range status.Collections {
		require.Zero(t, c.Count, c.Resource)
	}
}
