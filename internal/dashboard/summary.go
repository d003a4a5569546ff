// Package dashboard projects the local collections onto the figures the
// dashboard shows. It never calls the remote.
package dashboard

import (
	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Summary is the dashboard projection.
type Summary struct {
	Tasks   TaskSummary    `json:"tasks"`
	Clients ClientSummary  `json:"clients"`
	Finance FinanceSummary `json:"finance"`
}

type TaskSummary struct {
	Total     int                 `json:"total"`
	ByStatus  map[task.Status]int `json:"by_status"`
	Completed int                 `json:"completed"`
	Pending   int                 `json:"pending"`
	DueToday  int                 `json:"due_today"`
	Overdue   int                 `json:"overdue"`
}

type ClientSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Prospect int `json:"prospect"`
}

// FinanceSummary totals are in the currency of the amounts; no conversion
// is done.
type FinanceSummary struct {
	Transactions int                `json:"transactions"`
	Income       transaction.Amount `json:"income"`
	Expense      transaction.Amount `json:"expense"`
	Net          transaction.Amount `json:"net"`
}

// Summarize computes the dashboard figures. today decides which open tasks
// are due or overdue.
func Summarize(tasks []task.Task, clients []client.Client, txs []transaction.Transaction, today civil.Date) Summary {
	var out Summary

	out.Tasks.Total = len(tasks)
	out.Tasks.ByStatus = make(map[task.Status]int, len(task.Statuses))
	for _, st := range task.Statuses {
		out.Tasks.ByStatus[st] = 0
	}
	for _, t := range tasks {
		out.Tasks.ByStatus[t.Status]++
		if t.Status == task.StatusCompleted {
			out.Tasks.Completed++
			continue
		}
		out.Tasks.Pending++
		if t.DueDate == nil || t.DueDate.IsZero() {
			continue
		}
		switch {
		case *t.DueDate == today:
			out.Tasks.DueToday++
		case t.DueDate.Before(today):
			out.Tasks.Overdue++
		}
	}

	out.Clients.Total = len(clients)
	for _, c := range clients {
		switch c.Status {
		case client.StatusActive:
			out.Clients.Active++
		case client.StatusProspect:
			out.Clients.Prospect++
		}
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			income = income.Add(tx.Amount.Decimal)
		case transaction.TypeExpense:
			expense = expense.Add(tx.Amount.Decimal)
		}
	}
	out.Finance = FinanceSummary{
		Transactions: len(txs),
		Income:       transaction.Amount{Decimal: income},
		Expense:      transaction.Amount{Decimal: expense},
		Net:          transaction.Amount{Decimal: income.Sub(expense)},
	}
	return out
}
