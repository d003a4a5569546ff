package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/repository"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Status describes how the local collection relates to the remote one.
type Status struct {
	Resource string    `json:"resource"`
	Stale    bool      `json:"stale"`
	SyncedAt time.Time `json:"synced_at,omitzero"`
	Count    int       `json:"count"`
}

// Synchronizer keeps an ordered local collection consistent with one remote
// collection.
//
// Mutations of the same kind run one at a time. Concurrent List calls share
// a single request. Every applied mutation bumps the collection version; a
// List response is applied only when the version has not moved since the
// request was sent, so a slow reload never overwrites a newer mutation.
type Synchronizer[T Entity, D Draft[T], P Patch[T]] struct {
	name      string
	remote    Remote[T, D, P]
	snapshots SnapshotStore
	journal   Journal
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	items    []T
	version  uint64
	synced   bool
	stale    bool
	syncedAt time.Time

	lists   singleflight.Group
	creates *semaphore.Weighted
	updates *semaphore.Weighted
	deletes *semaphore.Weighted
}

// New creates a synchronizer for the named resource.
func New[T Entity, D Draft[T], P Patch[T]](name string, remote Remote[T, D, P], opts ...Option) *Synchronizer[T, D, P] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Synchronizer[T, D, P]{
		name:      name,
		remote:    remote,
		snapshots: o.snapshots,
		journal:   o.journal,
		logger:    o.logger.With("resource", name),
		now:       o.now,
		stale:     true,
		creates:   semaphore.NewWeighted(1),
		updates:   semaphore.NewWeighted(1),
		deletes:   semaphore.NewWeighted(1),
	}
}

// Name returns the resource name.
func (s *Synchronizer[T, D, P]) Name() string {
	return s.name
}

// List fetches the remote collection and replaces the local one wholesale.
// On failure the local collection is left unchanged.
//
// Concurrent callers share one fetch. The fetch is detached from any single
// caller's cancellation and bounded by the remote's own timeout; each caller
// still stops waiting when its own ctx is done.
func (s *Synchronizer[T, D, P]) List(ctx context.Context) ([]T, error) {
	shared := ctx
	if ctx.Done() != nil {
		shared = context.WithoutCancel(ctx)
	}
	ch := s.lists.DoChan(s.name, func() (any, error) {
		return s.fetch(shared)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]T)), nil
	case <-ctx.Done():
		return nil, AsNetworkError("list", ctx.Err())
	}
}

func (s *Synchronizer[T, D, P]) fetch(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	token := s.version
	s.mu.RUnlock()

	items, err := s.remote.List(ctx)
	if err != nil {
		err = AsNetworkError("list", err)
		s.record(ctx, journal.OpList, "", err)
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	if s.version != token {
		current := slices.Clone(s.items)
		s.mu.Unlock()
		s.logger.Debug("dropping superseded list response", "items", len(items))
		s.log(ctx, journal.OpList, "", journal.OutcomeSuperseded, "mutation applied while list was in flight")
		return current, nil
	}
	s.items = slices.Clone(items)
	s.synced = true
	s.stale = false
	s.syncedAt = s.now()
	syncedAt := s.syncedAt
	s.mu.Unlock()

	s.saveSnapshot(ctx, items, syncedAt)
	s.record(ctx, journal.OpList, "", nil)
	return items, nil
}

// Create validates the draft, sends it, and inserts the created entity at
// the front of the local collection. A server that acknowledges without
// returning the entity gets a placeholder, and the collection stays stale
// until the next List.
func (s *Synchronizer[T, D, P]) Create(ctx context.Context, draft D) (T, error) {
	var zero T
	if err := draft.Validate(); err != nil {
		err = s.validationError(err)
		s.record(ctx, journal.OpCreate, "", err)
		return zero, err
	}

	if err := s.creates.Acquire(ctx, 1); err != nil {
		return zero, AsNetworkError("create", err)
	}
	defer s.creates.Release(1)

	created, err := s.remote.Create(ctx, draft)
	if err != nil {
		err = AsNetworkError("create", err)
		s.record(ctx, journal.OpCreate, "", err)
		return zero, err
	}

	entity, placeholder := zero, false
	if created != nil && (*created).EntityID() != "" {
		entity = *created
	} else {
		entity = draft.Placeholder(NewPlaceholderID())
		placeholder = true
	}

	s.mu.Lock()
	s.items = upsertFront(s.items, entity)
	s.version++
	if placeholder {
		s.stale = true
	}
	s.mu.Unlock()

	s.record(ctx, journal.OpCreate, entity.EntityID(), nil)
	return entity, nil
}

// Update sends the patch and applies the result to the local entry. The
// request is sent even when the id is not local since the remote is
// authoritative; the caller then gets a NotFoundError.
func (s *Synchronizer[T, D, P]) Update(ctx context.Context, id ID, patch P) (T, error) {
	var zero T
	if err := patch.Validate(); err != nil {
		err = s.validationError(err)
		s.record(ctx, journal.OpUpdate, id, err)
		return zero, err
	}

	if err := s.updates.Acquire(ctx, 1); err != nil {
		return zero, AsNetworkError("update", err)
	}
	defer s.updates.Release(1)

	updated, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		err = AsNetworkError("update", err)
		s.record(ctx, journal.OpUpdate, id, err)
		return zero, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		err := &NotFoundError{Resource: s.name, ID: id}
		s.record(ctx, journal.OpUpdate, id, err)
		return zero, err
	}
	entity := patch.Apply(s.items[idx])
	if updated != nil && (*updated).EntityID() == id {
		entity = *updated
	}
	s.items[idx] = entity
	s.version++
	s.mu.Unlock()

	s.record(ctx, journal.OpUpdate, id, nil)
	return entity, nil
}

// Delete removes the entity remotely, then locally. Deleting an id that is
// already gone is not an error.
func (s *Synchronizer[T, D, P]) Delete(ctx context.Context, id ID) error {
	if err := s.deletes.Acquire(ctx, 1); err != nil {
		return AsNetworkError("delete", err)
	}
	defer s.deletes.Release(1)

	if err := s.remote.Delete(ctx, id); err != nil {
		err = AsNetworkError("delete", err)
		s.record(ctx, journal.OpDelete, id, err)
		return err
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
	}
	s.version++
	s.mu.Unlock()

	s.record(ctx, journal.OpDelete, id, nil)
	return nil
}

// Get returns the local entity with the given id.
func (s *Synchronizer[T, D, P]) Get(id ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the local collection.
func (s *Synchronizer[T, D, P]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Status reports staleness of the local collection.
func (s *Synchronizer[T, D, P]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Resource: s.name,
		Stale:    s.stale,
		SyncedAt: s.syncedAt,
		Count:    len(s.items),
	}
}

// Restore seeds an untouched collection from the snapshot store. The
// restored collection is stale until the next List.
func (s *Synchronizer[T, D, P]) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	payload, syncedAt, err := s.snapshots.Load(ctx, s.name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s snapshot: %w", s.name, err)
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return fmt.Errorf("decoding %s snapshot: %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.synced || s.version != 0 {
		return nil
	}
	s.items = items
	s.stale = true
	s.syncedAt = syncedAt
	return nil
}

func (s *Synchronizer[T, D, P]) indexOf(id ID) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return item.EntityID() == id
	})
}

func (s *Synchronizer[T, D, P]) validationError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		if verr.Resource == "" {
			verr.Resource = s.name
		}
		return verr
	}
	return &ValidationError{Resource: s.name, Fields: []FieldError{{Field: "draft", Message: err.Error()}}}
}

func (s *Synchronizer[T, D, P]) saveSnapshot(ctx context.Context, items []T, syncedAt time.Time) {
	if s.snapshots == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("encoding snapshot failed", "error", err)
		return
	}
	if err := s.snapshots.Save(ctx, s.name, payload, len(items), syncedAt); err != nil {
		s.logger.Warn("saving snapshot failed", "error", err)
	}
}

func (s *Synchronizer[T, D, P]) record(ctx context.Context, op journal.Operation, id ID, err error) {
	outcome, detail := journal.OutcomeOK, ""
	switch {
	case err == nil:
	case errors.Is(err, ErrValidation):
		outcome, detail = journal.OutcomeValidationFailed, err.Error()
	case errors.Is(err, ErrNotFound):
		outcome, detail = journal.OutcomeNotFound, err.Error()
	default:
		outcome, detail = journal.OutcomeNetworkFailed, err.Error()
	}
	if err != nil {
		s.logger.Debug("operation failed", "op", op, "id", id, "error", err)
	}
	s.log(ctx, op, id, outcome, detail)
}

func (s *Synchronizer[T, D, P]) log(ctx context.Context, op journal.Operation, id ID, outcome journal.Outcome, detail string) {
	if s.journal == nil {
		return
	}
	entry := &journal.Entry{
		Resource:  s.name,
		Operation: op,
		EntityID:  string(id),
		Outcome:   outcome,
		Detail:    detail,
		CreatedAt: s.now(),
	}
	if err := s.journal.Log(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("journal write failed", "op", op, "error", err)
	}
}

// upsertFront replaces the entry with the same id in place, or prepends.
func upsertFront[T Entity](items []T, entity T) []T {
	id := entity.EntityID()
	if idx := slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id }); idx >= 0 {
		out := slices.Clone(items)
		out[idx] = entity
		return out
	}
	return append([]T{entity}, items...)
}
