package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/bizpilot/internal/domain/account"
	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/rpggio/bizpilot/internal/resource"
	"github.com/shopspring/decimal"
)

// registerTools adds every tool backed by svc.
func registerTools(server *sdkmcp.Server, svc Services) {
	// Tasks
	addTool(server, "list_tasks", "Reload tasks from the backend and return them in server order",
		func(ctx context.Context, _ ListParams) (any, error) {
			items, err := svc.Tasks.List(ctx)
			if err != nil {
				return nil, err
			}
			return TaskListResult{Items: items, Sync: svc.Tasks.Status()}, nil
		})
	addTool(server, "create_task", "Create a task; priority defaults to medium and status to pending",
		func(ctx context.Context, in CreateTaskParams) (any, error) {
			draft, err := in.draft()
			if err != nil {
				return nil, err
			}
			created, err := svc.Tasks.Create(ctx, draft)
			if err != nil {
				return nil, err
			}
			return TaskResult{Task: created, Sync: svc.Tasks.Status()}, nil
		})
	addTool(server, "update_task", "Update selected fields of a task; omitted fields are left unchanged",
		func(ctx context.Context, in UpdateTaskParams) (any, error) {
			id, err := parseID(task.ResourceName, in.ID)
			if err != nil {
				return nil, err
			}
			patch, err := in.patch()
			if err != nil {
				return nil, err
			}
			updated, err := svc.Tasks.Update(ctx, id, patch)
			if err != nil {
				return nil, err
			}
			return TaskResult{Task: updated, Sync: svc.Tasks.Status()}, nil
		})
	addTool(server, "toggle_task_status", "Mark a pending task completed; any other status goes back to pending",
		func(ctx context.Context, in IDParams) (any, error) {
			id, err := parseID(task.ResourceName, in.ID)
			if err != nil {
				return nil, err
			}
			updated, err := svc.Tasks.ToggleStatus(ctx, id)
			if err != nil {
				return nil, err
			}
			return TaskResult{Task: updated, Sync: svc.Tasks.Status()}, nil
		})
	addTool(server, "delete_task", "Delete a task; deleting a missing task succeeds",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleteByID(ctx, task.ResourceName, in.ID, svc.Tasks.Delete)
		})

	// Clients
	addTool(server, "list_clients", "Reload clients from the backend and return them in server order",
		func(ctx context.Context, _ ListParams) (any, error) {
			items, err := svc.Clients.List(ctx)
			if err != nil {
				return nil, err
			}
			return ClientListResult{Items: items, Sync: svc.Clients.Status()}, nil
		})
	addTool(server, "create_client", "Create a client; status defaults to active",
		func(ctx context.Context, in CreateClientParams) (any, error) {
			created, err := svc.Clients.Create(ctx, in.draft())
			if err != nil {
				return nil, err
			}
			return ClientResult{Client: created, Sync: svc.Clients.Status()}, nil
		})
	addTool(server, "delete_client", "Delete a client; deleting a missing client succeeds",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleteByID(ctx, client.ResourceName, in.ID, svc.Clients.Delete)
		})

	// Transactions
	addTool(server, "list_transactions", "Reload transactions from the backend and return them in server order",
		func(ctx context.Context, _ ListParams) (any, error) {
			items, err := svc.Transactions.List(ctx)
			if err != nil {
				return nil, err
			}
			return TransactionListResult{Items: items, Sync: svc.Transactions.Status()}, nil
		})
	addTool(server, "create_transaction", "Record income or an expense; type defaults to income",
		func(ctx context.Context, in CreateTransactionParams) (any, error) {
			draft, err := in.draft()
			if err != nil {
				return nil, err
			}
			created, err := svc.Transactions.Create(ctx, draft)
			if err != nil {
				return nil, err
			}
			return TransactionResult{Transaction: created, Sync: svc.Transactions.Status()}, nil
		})
	addTool(server, "delete_transaction", "Delete a transaction; deleting a missing transaction succeeds",
		func(ctx context.Context, in IDParams) (any, error) {
			return deleteByID(ctx, transaction.ResourceName, in.ID, svc.Transactions.Delete)
		})

	// Accounts
	addTool(server, "signup", "Register a new user with the backend",
		func(ctx context.Context, in SignupParams) (any, error) {
			req := account.SignupRequest{
				FullName: in.FullName,
				Email:    strings.TrimSpace(in.Email),
				Role:     account.Role(in.Role),
				Password: in.Password,
			}
			var generated string
			if in.GeneratePassword && req.Password == "" {
				pw, err := account.GeneratePassword(account.DefaultPasswordLength)
				if err != nil {
					return nil, err
				}
				req.Password, generated = pw, pw
			}
			if err := svc.Accounts.Signup(ctx, req); err != nil {
				return nil, err
			}
			return SignupResult{Email: req.Email, Role: string(req.Role), GeneratedPassword: generated}, nil
		})

	// Orientation
	addTool(server, "get_dashboard_summary", "Summarize tasks, clients and finances from the local collections",
		func(ctx context.Context, in DashboardParams) (any, error) {
			var out DashboardResult
			if in.Refresh {
				out.RefreshError = MapError(svc.Dashboard.Refresh(ctx))
			}
			out.Summary = svc.Dashboard.Summary()
			out.Sync = svc.Dashboard.SyncStatus()
			return out, nil
		})
	addTool(server, "get_sync_status", "Report item count, last sync time and staleness of each collection",
		func(_ context.Context, _ ListParams) (any, error) {
			return SyncStatusResult{Collections: svc.Dashboard.SyncStatus()}, nil
		})
	addTool(server, "get_recent_activity", "List the sync journal, newest first",
		func(ctx context.Context, in RecentActivityParams) (any, error) {
			opts := journal.ListOptions{
				Resource: strings.TrimSpace(in.Resource),
				Limit:    in.Limit,
				Offset:   in.Offset,
			}
			if in.Operation != "" {
				op := journal.Operation(in.Operation)
				opts.Operation = &op
			}
			if in.Outcome != "" {
				outcome := journal.Outcome(in.Outcome)
				opts.Outcome = &outcome
			}
			entries, err := svc.Dashboard.RecentActivity(ctx, opts)
			if err != nil {
				return nil, err
			}
			if entries == nil {
				entries = []journal.Entry{}
			}
			return RecentActivityResult{Entries: entries}, nil
		})
}

// addTool registers a typed tool whose result is rendered as JSON text.
// Errors become tool errors carrying an APIError body.
func addTool[In any](server *sdkmcp.Server, name, description string, h func(context.Context, In) (any, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := h(ctx, in)
			if err != nil {
				return errorResult(err)
			}
			return jsonResult(out)
		})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(err error) (*sdkmcp.CallToolResult, any, error) {
	data, mErr := json.Marshal(MapError(err))
	if mErr != nil {
		return nil, nil, fmt.Errorf("encoding tool error: %w", mErr)
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func deleteByID(ctx context.Context, resourceName, raw string, del func(context.Context, resource.ID) error) (any, error) {
	id, err := parseID(resourceName, raw)
	if err != nil {
		return nil, err
	}
	if err := del(ctx, id); err != nil {
		return nil, err
	}
	return DeleteResult{Deleted: id}, nil
}

func parseID(resourceName, raw string) (resource.ID, error) {
	id := strings.TrimSpace(raw)
	switch id {
	case "":
		return "", invalidArgument(resourceName, "id", "is required")
	case ".", "..":
		return "", invalidArgument(resourceName, "id", "is not a valid id")
	}
	return resource.ID(id), nil
}

func parseDate(resourceName, field, raw string) (civil.Date, error) {
	d, err := civil.Parse(strings.TrimSpace(raw))
	if err != nil {
		return civil.Date{}, invalidArgument(resourceName, field, "must be a date as YYYY-MM-DD")
	}
	return d, nil
}

// parseAmount accepts a JSON number or a decimal string. A missing amount is
// left zero for draft validation to reject.
func parseAmount(v any) (transaction.Amount, error) {
	switch amount := v.(type) {
	case nil:
		return transaction.Amount{}, nil
	case float64:
		return transaction.Amount{Decimal: decimal.NewFromFloat(amount)}, nil
	case json.Number:
		return transaction.NewAmount(amount.String())
	case string:
		if strings.TrimSpace(amount) == "" {
			return transaction.Amount{}, nil
		}
		return transaction.NewAmount(strings.TrimSpace(amount))
	default:
		return transaction.Amount{}, fmt.Errorf("unsupported amount type %T", v)
	}
}

func (p CreateTaskParams) draft() (task.Draft, error) {
	d := task.Draft{
		Title:       p.Title,
		Description: p.Description,
		Priority:    task.Priority(p.Priority),
		Status:      task.Status(p.Status),
	}
	if p.DueDate != "" {
		due, err := parseDate(task.ResourceName, "dueDate", p.DueDate)
		if err != nil {
			return task.Draft{}, err
		}
		d.DueDate = &due
	}
	return d, nil
}

func (p UpdateTaskParams) patch() (task.Patch, error) {
	patch := task.Patch{
		Title:       p.Title,
		Description: p.Description,
	}
	if p.DueDate != nil {
		due, err := parseDate(task.ResourceName, "dueDate", *p.DueDate)
		if err != nil {
			return task.Patch{}, err
		}
		patch.DueDate = &due
	}
	if p.Priority != nil {
		priority := task.Priority(*p.Priority)
		patch.Priority = &priority
	}
	if p.Status != nil {
		status := task.Status(*p.Status)
		patch.Status = &status
	}
	return patch, nil
}

func (p CreateClientParams) draft() client.Draft {
	return client.Draft{
		Name:    p.Name,
		Company: p.Company,
		Email:   strings.TrimSpace(p.Email),
		Phone:   p.Phone,
		Address: p.Address,
		Status:  client.Status(p.Status),
	}
}

func (p CreateTransactionParams) draft() (transaction.Draft, error) {
	amount, err := parseAmount(p.Amount)
	if err != nil {
		return transaction.Draft{}, invalidArgument(transaction.ResourceName, "amount", "must be a number")
	}
	d := transaction.Draft{
		Description: p.Description,
		Type:        transaction.Type(p.Type),
		Amount:      amount,
	}
	if p.Date != "" {
		date, err := parseDate(transaction.ResourceName, "date", p.Date)
		if err != nil {
			return transaction.Draft{}, err
		}
		d.Date = date
	}
	return d, nil
}
