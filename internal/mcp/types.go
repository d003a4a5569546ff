package mcp

import (
	"github.com/rpggio/bizpilot/internal/dashboard"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/rpggio/bizpilot/internal/resource"
)

type ListParams struct{}

type IDParams struct {
	ID string `json:"id" jsonschema:"Entity id as returned by the list tool"`
}

type CreateTaskParams struct {
	Title       string `json:"title,omitempty" jsonschema:"Task title (required)"`
	Description string `json:"description,omitempty" jsonschema:"Free-form description"`
	DueDate     string `json:"dueDate,omitempty" jsonschema:"Due date as YYYY-MM-DD"`
	Priority    string `json:"priority,omitempty" jsonschema:"high, medium or low (default medium)"`
	Status      string `json:"status,omitempty" jsonschema:"pending, in-progress, scheduled, waiting or completed (default pending)"`
}

type UpdateTaskParams struct {
	ID          string  `json:"id" jsonschema:"Task id"`
	Title       *string `json:"title,omitempty" jsonschema:"New title"`
	Description *string `json:"description,omitempty" jsonschema:"New description"`
	DueDate     *string `json:"dueDate,omitempty" jsonschema:"New due date as YYYY-MM-DD"`
	Priority    *string `json:"priority,omitempty" jsonschema:"New priority"`
	Status      *string `json:"status,omitempty" jsonschema:"New status"`
}

type CreateClientParams struct {
	Name    string `json:"name,omitempty" jsonschema:"Contact name (required)"`
	Company string `json:"company,omitempty" jsonschema:"Company name (required)"`
	Email   string `json:"email,omitempty" jsonschema:"Contact email (required)"`
	Phone   string `json:"phone,omitempty" jsonschema:"Contact phone"`
	Address string `json:"address,omitempty" jsonschema:"Postal address"`
	Status  string `json:"status,omitempty" jsonschema:"active or prospect (default active)"`
}

type CreateTransactionParams struct {
	Description string `json:"description,omitempty" jsonschema:"What the money was for (required)"`
	Type        string `json:"type,omitempty" jsonschema:"income or expense (default income)"`
	Amount      any    `json:"amount,omitempty" jsonschema:"Positive amount as a number or decimal string"`
	Date        string `json:"date,omitempty" jsonschema:"Transaction date as YYYY-MM-DD (required)"`
}

type SignupParams struct {
	FullName         string `json:"fullName,omitempty" jsonschema:"Full name (required)"`
	Email            string `json:"email,omitempty" jsonschema:"Email address (required)"`
	Role             string `json:"role,omitempty" jsonschema:"owner or employee (required)"`
	Password         string `json:"password,omitempty" jsonschema:"At least 8 characters; omit with generate_password"`
	GeneratePassword bool   `json:"generate_password,omitempty" jsonschema:"Generate a random password and return it"`
}

type DashboardParams struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"Reload every collection before summarizing"`
}

type RecentActivityParams struct {
	Resource  string `json:"resource,omitempty" jsonschema:"tasks, clients, transactions or users"`
	Operation string `json:"operation,omitempty" jsonschema:"list, create, update, delete or signup"`
	Outcome   string `json:"outcome,omitempty" jsonschema:"ok, validation_failed, network_failed, not_found or superseded"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum entries (default 50)"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Entries to skip"`
}

type TaskListResult struct {
	Items []task.Task     `json:"items"`
	Sync  resource.Status `json:"sync"`
}

type ClientListResult struct {
	Items []client.Client `json:"items"`
	Sync  resource.Status `json:"sync"`
}

type TransactionListResult struct {
	Items []transaction.Transaction `json:"items"`
	Sync  resource.Status           `json:"sync"`
}

type TaskResult struct {
	Task task.Task       `json:"task"`
	Sync resource.Status `json:"sync"`
}

type ClientResult struct {
	Client client.Client   `json:"client"`
	Sync   resource.Status `json:"sync"`
}

type TransactionResult struct {
	Transaction transaction.Transaction `json:"transaction"`
	Sync        resource.Status         `json:"sync"`
}

type DeleteResult struct {
	Deleted resource.ID `json:"deleted"`
}

type SignupResult struct {
	Email             string `json:"email"`
	Role              string `json:"role"`
	GeneratedPassword string `json:"generated_password,omitempty"`
}

type DashboardResult struct {
	Summary      dashboard.Summary `json:"summary"`
	Sync         []resource.Status `json:"sync"`
	RefreshError *APIError         `json:"refresh_error,omitempty"`
}

type SyncStatusResult struct {
	Collections []resource.Status `json:"collections"`
}

type RecentActivityResult struct {
	Entries []journal.Entry `json:"entries"`
}
