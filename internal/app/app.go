// Package app owns the state of one running process: the three resource
// services, signup and the journal. main builds exactly one App.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/bizpilot/internal/dashboard"
	"github.com/rpggio/bizpilot/internal/domain/account"
	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/domain/client"
	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/domain/task"
	"github.com/rpggio/bizpilot/internal/domain/transaction"
	"github.com/rpggio/bizpilot/internal/resource"
	"github.com/rpggio/bizpilot/internal/restapi"
	"github.com/rpggio/bizpilot/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// Deps are the collaborators App is built from.
type Deps struct {
	API *restapi.Client
	// DB enables snapshots and the journal when set.
	DB     *sqlite.DB
	Logger *slog.Logger
	Now    func() time.Time
}

// App is the state container.
type App struct {
	Tasks        *task.Service
	Clients      *client.Service
	Transactions *transaction.Service
	Accounts     *account.Service
	// Journal is nil when no database is configured.
	Journal *journal.Service

	logger *slog.Logger
	now    func() time.Time
}

// New wires the services.
func New(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	a := &App{logger: logger, now: now}

	opts := []resource.Option{resource.WithClock(now)}
	var j resource.Journal
	if deps.DB != nil {
		a.Journal = journal.NewService(sqlite.NewJournalRepository(deps.DB), logger)
		j = a.Journal
		opts = append(opts,
			resource.WithSnapshots(sqlite.NewSnapshotRepository(deps.DB)),
			resource.WithJournal(a.Journal),
		)
	}

	a.Tasks = task.NewService(
		restapi.NewCollection[task.Task, task.Draft, task.Patch](deps.API, task.ResourceName),
		logger, opts...)
	a.Clients = client.NewService(
		restapi.NewCollection[client.Client, client.Draft, client.Patch](deps.API, client.ResourceName),
		logger, opts...)
	a.Transactions = transaction.NewService(
		restapi.NewCollection[transaction.Transaction, transaction.Draft, transaction.Patch](deps.API, transaction.ResourceName),
		logger, opts...)
	a.Accounts = account.NewService(restapi.NewAccounts(deps.API), j, logger)

	return a
}

// Restore seeds every collection from its saved snapshot.
func (a *App) Restore(ctx context.Context) error {
	return errors.Join(
		a.Tasks.Restore(ctx),
		a.Clients.Restore(ctx),
		a.Transactions.Restore(ctx),
	)
}

// Refresh reloads the three collections concurrently. Each collection is
// replaced independently; a failure of one leaves the others refreshed.
func (a *App) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := a.Tasks.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.Clients.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := a.Transactions.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("refreshing collections: %w", err)
	}
	return nil
}

// Summary projects the local collections without a remote call.
func (a *App) Summary() dashboard.Summary {
	return dashboard.Summarize(
		a.Tasks.Snapshot(),
		a.Clients.Snapshot(),
		a.Transactions.Snapshot(),
		civil.DateOf(a.now()),
	)
}

// SyncStatus reports staleness of every collection.
func (a *App) SyncStatus() []resource.Status {
	return []resource.Status{
		a.Tasks.Status(),
		a.Clients.Status(),
		a.Transactions.Status(),
	}
}

// RecentActivity lists journal entries, newest first.
func (a *App) RecentActivity(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	if a.Journal == nil {
		return []journal.Entry{}, nil
	}
	return a.Journal.GetRecentActivity(ctx, opts)
}
