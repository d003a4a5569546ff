package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/bizpilot/internal/dashboard"
	"github.com/rpggio/bizpilot/internal/domain/account"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/rpggio/bizpilot/internal/resource"
)

// TaskService defines task operations needed by MCP.
type TaskService interface {
	List(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, draft task.Draft) (task.Task, error)
	Update(ctx context.Context, id resource.ID, patch task.Patch) (task.Task, error)
	ToggleStatus(ctx context.Context, id resource.ID) (task.Task, error)
	Delete(ctx context.Context, id resource.ID) error
	Status() resource.Status
}

// ClientService defines client operations needed by MCP.
type ClientService interface {
	List(ctx context.Context) ([]client.Client, error)
	Create(ctx context.Context, draft client.Draft) (client.Client, error)
	Delete(ctx context.Context, id resource.ID) error
	Status() resource.Status
}

// TransactionService defines transaction operations needed by MCP.
type TransactionService interface {
	List(ctx context.Context) ([]transaction.Transaction, error)
	Create(ctx context.Context, draft transaction.Draft) (transaction.Transaction, error)
	Delete(ctx context.Context, id resource.ID) error
	Status() resource.Status
}

// AccountService defines account operations needed by MCP.
type AccountService interface {
	Signup(ctx context.Context, req account.SignupRequest) error
}

// DashboardService defines the read-only projections needed by MCP.
type DashboardService interface {
	Refresh(ctx context.Context) error
	Summary() dashboard.Summary
	SyncStatus() []resource.Status
	RecentActivity(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tasks        TaskService
	Clients      ClientService
	Transactions TransactionService
	Accounts     AccountService
	Dashboard    DashboardService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "bizpilot",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
