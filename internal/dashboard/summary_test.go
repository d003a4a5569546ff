package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/stretchr/testify/require"
)

func date(s string) *civil.Date {
	d := civil.MustParse(s)
	return &d
}

func TestSummarize(t *testing.T) {
	today := civil.MustParse("2025-12-29")
	tasks := []task.Task{
		{ID: "1", Title: "Follow up", DueDate: date("2025-12-29"), Status: task.StatusPending},
		{ID: "2", Title: "Update contacts", DueDate: date("2025-12-30"), Status: task.StatusInProgress},
		{ID: "3", Title: "Monthly report", DueDate: date("2025-12-20"), Status: task.StatusCompleted},
		{ID: "4", Title: "Old invoice", DueDate: date("2025-12-01"), Status: task.StatusWaiting},
		{ID: "5", Title: "Someday", Status: task.StatusScheduled},
	}
	clients := []client.Client{
		{ID: "a", Status: client.StatusActive},
		{ID: "b", Status: client.StatusActive},
		{ID: "c", Status: client.StatusProspect},
	}
	txs := []transaction.Transaction{
		{ID: "1", Type: transaction.TypeIncome, Amount: transaction.MustAmount("5000")},
		{ID: "2", Type: transaction.TypeExpense, Amount: transaction.MustAmount("245.50")},
		{ID: "3", Type: transaction.TypeExpense, Amount: transaction.MustAmount("1200")},
	}

	got := Summarize(tasks, clients, txs, today)

	require.Equal(t, 5, got.Tasks.Total)
	require.Equal(t, 1, got.Tasks.Completed)
	require.Equal(t, 4, got.Tasks.Pending)
	require.Equal(t, 1, got.Tasks.DueToday)
	require.Equal(t, 1, got.Tasks.Overdue)
	require.Equal(t, 1, got.Tasks.ByStatus[task.StatusWaiting])

	require.Equal(t, ClientSummary{Total: 3, Active: 2, Prospect: 1}, got.Clients)

	require.Equal(t, 3, got.Finance.Transactions)
	require.Equal(t, "5000", got.Finance.Income.String())
	require.Equal(t, "1445.5", got.Finance.Expense.String())
	require.Equal(t, "3554.5", got.Finance.Net.String())
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, nil, nil, civil.MustParse("2025-12-29"))
	require.Zero(t, got.Tasks.Total)
	require.Len(t, got.Tasks.ByStatus, len(task.Statuses))

	body, err := json.Marshal(got.Finance)
	require.NoError(t, err)
	require.JSONEq(t, `{"transactions":0,"income":0,"expense":0,"net":0}`, string(body))
}
