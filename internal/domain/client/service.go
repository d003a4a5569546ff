package client

import (
	"context"
	"log/slog"

	"github.com/rpggio/bizpilot/internal/resource"
)

// ResourceName is the remote collection path segment.
const ResourceName = "clients"

// Remote is the clients collection contract.
type Remote = resource.Remote[Client, Draft, Patch]

// Service handles client operations against the local collection.
type Service struct {
	sync *resource.Synchronizer[Client, Draft, Patch]
}

// NewService creates a new client service.
func NewService(remote Remote, logger *slog.Logger, opts ...resource.Option) *Service {
	if logger != nil {
		opts = append([]resource.Option{resource.WithLogger(logger)}, opts...)
	}
	return &Service{sync: resource.New[Client, Draft, Patch](ResourceName, remote, opts...)}
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.sync.List(ctx)
}

// Create creates a client. Status defaults to active.
func (s *Service) Create(ctx context.Context, draft Draft) (Client, error) {
	if draft.Status == "" {
		draft.Status = StatusActive
	}
	return s.sync.Create(ctx, draft)
}

func (s *Service) Delete(ctx context.Context, id resource.ID) error {
	return s.sync.Delete(ctx, id)
}

func (s *Service) Snapshot() []Client {
	return s.sync.Snapshot()
}

func (s *Service) Status() resource.Status {
	return s.sync.Status()
}

func (s *Service) Restore(ctx context.Context) error {
	return s.sync.Restore(ctx)
}
