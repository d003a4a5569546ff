package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/bizpilot/internal/app"
	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/rpggio/bizpilot/internal/resource"
	"github.com/rpggio/bizpilot/internal/restapi"
	"github.com/rpggio/bizpilot/internal/sqlite"
	"github.com/rpggio/bizpilot/internal/testserver"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	backend *testserver.TestServer
	db      *sqlite.DB
	app     *app.App
}

func openDB(t *testing.T, dsn string) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newApp(t *testing.T, backend *testserver.TestServer, db *sqlite.DB) *app.App {
	t.Helper()
	api, err := restapi.New(restapi.Config{BaseURL: backend.URL(), Timeout: 2 * time.Second})
	require.NoError(t, err)
	return app.New(app.Deps{API: api, DB: db})
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	backend := testserver.New(t, "")
	db := openDB(t, dsn)
	return &testEnv{backend: backend, db: db, app: newApp(t, backend, db)}
}

func TestIntegration_UpdateSendsOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.Seed("tasks",
		map[string]any{"id": 1, "title": "Follow up", "priority": "high", "status": "pending"},
		map[string]any{"id": 2, "title": "Report", "priority": "low", "status": "waiting"},
	)

	_, err := env.app.Tasks.List(ctx)
	require.NoError(t, err)

	status := task.StatusCompleted
	updated, err := env.app.Tasks.Update(ctx, "1", task.Patch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, updated.Status)

	puts := env.backend.RequestsTo(http.MethodPut, "/tasks/1")
	require.Len(t, puts, 1)
	require.JSONEq(t, `{"status":"completed"}`, puts[0].Body)

	other, ok := env.app.Tasks.Get("2")
	require.True(t, ok)
	require.Equal(t, task.StatusWaiting, other.Status)
	require.Len(t, env.backend.Requests(), 2)
}

func TestIntegration_CreateThenListOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	created, err := env.app.Clients.Create(ctx, client.Draft{Name: "Ada", Company: "AE", Email: "ada@example.com"})
	require.NoError(t, err)
	require.Equal(t, client.StatusActive, created.Status)

	// Visible before any list.
	require.Len(t, env.app.Clients.Snapshot(), 1)

	items, err := env.app.Clients.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, c := range items {
		if c.ID == created.ID {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestIntegration_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.Seed("transactions",
		map[string]any{"id": 7, "description": "Fee", "type": "expense", "amount": 12.5, "date": "2025-12-01"},
	)
	_, err := env.app.Transactions.List(ctx)
	require.NoError(t, err)

	require.NoError(t, env.app.Transactions.Delete(ctx, "7"))
	require.NoError(t, env.app.Transactions.Delete(ctx, "7"))

	items, err := env.app.Transactions.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestIntegration_PlaceholderUntilList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.OmitCreatedBody(true)

	created, err := env.app.Transactions.Create(ctx, transaction.Draft{
		Description: "Consulting",
		Amount:      transaction.MustAmount("1250.50"),
		Date:        civil.MustParse("2025-12-28"),
	})
	require.NoError(t, err)
	require.True(t, created.ID.IsPlaceholder())
	require.Equal(t, transaction.TypeIncome, created.Type)
	require.True(t, env.app.Transactions.Status().Stale)

	items, err := env.app.Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, items[0].ID.IsPlaceholder())
	require.Equal(t, "1250.5", items[0].Amount.String())
	require.False(t, env.app.Transactions.Status().Stale)
}

func TestIntegration_ValidationSendsNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.app.Tasks.Create(ctx, task.Draft{Title: " "})
	require.ErrorIs(t, err, resource.ErrValidation)
	_, err = env.app.Clients.Create(ctx, client.Draft{Name: "Ada"})
	require.ErrorIs(t, err, resource.ErrValidation)
	_, err = env.app.Transactions.Create(ctx, transaction.Draft{Description: "Fee"})
	require.ErrorIs(t, err, resource.ErrValidation)

	require.Empty(t, env.backend.Requests())

	failed := journal.OutcomeValidationFailed
	entries, err := env.app.RecentActivity(ctx, journal.ListOptions{Outcome: &failed})
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestIntegration_NetworkFailureKeepsLocalState(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.backend.Seed("tasks", map[string]any{"id": 1, "title": "Follow up", "priority": "high", "status": "pending"})
	_, err := env.app.Tasks.List(ctx)
	require.NoError(t, err)

	env.backend.Fail(http.MethodPut, "/tasks/1", http.StatusInternalServerError, "write failed")
	_, err = env.app.Tasks.ToggleStatus(ctx, "1")
	require.ErrorIs(t, err, resource.ErrNetwork)

	current, ok := env.app.Tasks.Get("1")
	require.True(t, ok)
	require.Equal(t, task.StatusPending, current.Status)

	env.backend.Recover()
	toggled, err := env.app.Tasks.ToggleStatus(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, toggled.Status)
	toggled, err = env.app.Tasks.ToggleStatus(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, task.StatusPending, toggled.Status)
}

func TestIntegration_RestartRestoresSnapshots(t *testing.T) {
	ctx := context.Background()
	backend := testserver.New(t, "")
	backend.Seed("tasks", map[string]any{"id": 1, "title": "Follow up", "priority": "high", "status": "pending"})
	backend.Seed("clients", map[string]any{"id": 2, "name": "Ada", "company": "AE", "email": "ada@example.com", "status": "active"})

	path := filepath.Join(t.TempDir(), "bizpilot.db")
	first := newApp(t, backend, openDB(t, path))
	require.NoError(t, first.Refresh(ctx))

	backend.Fail(http.MethodGet, "/tasks", http.StatusServiceUnavailable, "maintenance")
	second := newApp(t, backend, openDB(t, path))
	require.NoError(t, second.Restore(ctx))

	require.Len(t, second.Tasks.Snapshot(), 1)
	require.Len(t, second.Clients.Snapshot(), 1)
	require.True(t, second.Tasks.Status().Stale)

	require.Error(t, second.Refresh(ctx))
	require.True(t, second.Tasks.Status().Stale)
	require.False(t, second.Clients.Status().Stale)
	require.Len(t, second.Tasks.Snapshot(), 1)
}
