package transaction

import (
	"context"
	"log/slog"

	"github.com/rpggio/bizpilot/internal/resource"
)

// ResourceName is the remote collection path segment.
const ResourceName = "transactions"

// Remote is the transactions collection contract.
type Remote = resource.Remote[Transaction, Draft, Patch]

// Service handles transaction operations against the local collection.
type Service struct {
	sync *resource.Synchronizer[Transaction, Draft, Patch]
}

// NewService creates a new transaction service.
func NewService(remote Remote, logger *slog.Logger, opts ...resource.Option) *Service {
	if logger != nil {
		opts = append([]resource.Option{resource.WithLogger(logger)}, opts...)
	}
	return &Service{sync: resource.New[Transaction, Draft, Patch](ResourceName, remote, opts...)}
}

func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.sync.List(ctx)
}

// Create records a transaction. Type defaults to income.
func (s *Service) Create(ctx context.Context, draft Draft) (Transaction, error) {
	if draft.Type == "" {
		draft.Type = TypeIncome
	}
	return s.sync.Create(ctx, draft)
}

func (s *Service) Delete(ctx context.Context, id resource.ID) error {
	return s.sync.Delete(ctx, id)
}

func (s *Service) Snapshot() []Transaction {
	return s.sync.Snapshot()
}

func (s *Service) Status() resource.Status {
	return s.sync.Status()
}

func (s *Service) Restore(ctx context.Context) error {
	return s.sync.Restore(ctx)
}
