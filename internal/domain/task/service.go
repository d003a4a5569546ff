package task

import (
	"context"
	"log/slog"

	"github.com/rpggio/bizpilot/internal/resource"
)

// ResourceName is the remote collection path segment.
const ResourceName = "tasks"

// Remote is the tasks collection contract.
type Remote = resource.Remote[Task, Draft, Patch]

// Service handles task operations against the local collection.
type Service struct {
	sync   *resource.Synchronizer[Task, Draft, Patch]
	logger *slog.Logger
}

// NewService creates a new task service.
func NewService(remote Remote, logger *slog.Logger, opts ...resource.Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = append([]resource.Option{resource.WithLogger(logger)}, opts...)
	return &Service{
		sync:   resource.New[Task, Draft, Patch](ResourceName, remote, opts...),
		logger: logger,
	}
}

// List reloads tasks from the remote collection.
func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.sync.List(ctx)
}

// Create creates a task. Priority defaults to medium and status to pending.
func (s *Service) Create(ctx context.Context, draft Draft) (Task, error) {
	if draft.Priority == "" {
		draft.Priority = PriorityMedium
	}
	if draft.Status == "" {
		draft.Status = StatusPending
	}
	return s.sync.Create(ctx, draft)
}

// Update applies a partial update to a task.
func (s *Service) Update(ctx context.Context, id resource.ID, patch Patch) (Task, error) {
	return s.sync.Update(ctx, id, patch)
}

// ToggleStatus completes a pending task and moves any other task back to
// pending.
func (s *Service) ToggleStatus(ctx context.Context, id resource.ID) (Task, error) {
	current, ok := s.sync.Get(id)
	if !ok {
		return Task{}, &resource.NotFoundError{Resource: ResourceName, ID: id}
	}
	next := NextStatus(current.Status)
	s.logger.Debug("toggling task status", "id", id, "from", current.Status, "to", next)
	return s.sync.Update(ctx, id, Patch{Status: &next})
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id resource.ID) error {
	return s.sync.Delete(ctx, id)
}

// Get returns a task from the local collection.
func (s *Service) Get(id resource.ID) (Task, bool) {
	return s.sync.Get(id)
}

// Snapshot returns the local collection without a remote call.
func (s *Service) Snapshot() []Task {
	return s.sync.Snapshot()
}

func (s *Service) Status() resource.Status {
	return s.sync.Status()
}

// Restore seeds the local collection from the last saved snapshot.
func (s *Service) Restore(ctx context.Context) error {
	return s.sync.Restore(ctx)
}
