package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/restapi"
	"github.com/rpggio/bizpilot/internal/sqlite"
	"github.com/rpggio/bizpilot/internal/testserver"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newApp(t *testing.T, ts *testserver.TestServer, db *sqlite.DB) *App {
	t.Helper()
	api, err := restapi.New(restapi.Config{BaseURL: ts.URL(), Timeout: 2 * time.Second})
	require.NoError(t, err)
	now := func() time.Time { return time.Date(2025, 12, 29, 12, 0, 0, 0, time.UTC) }
	return New(Deps{API: api, DB: db, Now: now})
}

func seed(ts *testserver.TestServer) {
	ts.Seed("tasks",
		map[string]any{"id": 1, "title": "Follow up", "dueDate": "2025-12-29", "priority": "high", "status": "pending"},
		map[string]any{"id": 2, "title": "Monthly report", "dueDate": "2025-12-20", "priority": "high", "status": "completed"},
	)
	ts.Seed("clients", map[string]any{"id": 3, "name": "Ada", "company": "AE", "email": "ada@example.com", "status": "prospect"})
	ts.Seed("transactions",
		map[string]any{"id": 4, "description": "Payment", "type": "income", "amount": 5000, "date": "2025-12-28"},
		map[string]any{"id": 5, "description": "Supplies", "type": "expense", "amount": 245.5, "date": "2025-12-27"},
	)
}

func TestApp_RefreshAndSummary(t *testing.T) {
	ts := testserver.New(t, "")
	seed(ts)
	a := newApp(t, ts, newDB(t))

	require.NoError(t, a.Refresh(context.Background()))

	summary := a.Summary()
	require.Equal(t, 2, summary.Tasks.Total)
	require.Equal(t, 1, summary.Tasks.DueToday)
	require.Equal(t, 1, summary.Clients.Prospect)
	require.Equal(t, "4754.5", summary.Finance.Net.String())

	for _, status := range a.SyncStatus() {
		require.False(t, status.Stale, status.Resource)
	}
}

func TestApp_RefreshPartialFailure(t *testing.T) {
	ts := testserver.New(t, "")
	seed(ts)
	ts.Fail(http.MethodGet, "/clients", http.StatusBadGateway, "upstream down")
	a := newApp(t, ts, newDB(t))

	err := a.Refresh(context.Background())
	require.Error(t, err)
	require.Len(t, a.Tasks.Snapshot(), 2)
	require.Empty(t, a.Clients.Snapshot())
}

func TestApp_RestoreFromSnapshots(t *testing.T) {
	ts := testserver.New(t, "")
	seed(ts)
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, newApp(t, ts, db).Refresh(ctx))

	restarted := newApp(t, ts, db)
	require.NoError(t, restarted.Restore(ctx))
	require.Len(t, restarted.Tasks.Snapshot(), 2)
	require.Len(t, restarted.Transactions.Snapshot(), 2)
	require.True(t, restarted.Tasks.Status().Stale)
}

func TestApp_RecentActivity(t *testing.T) {
	ts := testserver.New(t, "")
	seed(ts)
	a := newApp(t, ts, newDB(t))
	ctx := context.Background()

	require.NoError(t, a.Refresh(ctx))
	require.NoError(t, a.Tasks.Delete(ctx, "1"))

	entries, err := a.RecentActivity(ctx, journal.ListOptions{Resource: "tasks"})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.Equal(t, journal.OpDelete, entries[0].Operation)
	require.Equal(t, "1", entries[0].EntityID)
}

func TestApp_WithoutDatabase(t *testing.T) {
	ts := testserver.New(t, "")
	api, err := restapi.New(restapi.Config{BaseURL: ts.URL()})
	require.NoError(t, err)
	a := New(Deps{API: api})

	require.NoError(t, a.Restore(context.Background()))
	entries, err := a.RecentActivity(context.Background(), journal.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, entries)
}
