package resource

import (
	"log/slog"
	"time"
)

// Option configures a Synchronizer.
type Option func(*options)

type options struct {
	snapshots SnapshotStore
	journal   Journal
	logger    *slog.Logger
	now       func() time.Time
}

// WithSnapshots persists every successful list and enables Restore.
func WithSnapshots(store SnapshotStore) Option {
	return func(o *options) { o.snapshots = store }
}

// WithJournal records the outcome of every operation.
func WithJournal(j Journal) Option {
	return func(o *options) { o.journal = j }
}

// WithLogger sets the logger; nil discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NoPatch is the patch type of resources whose remote has no update.
type NoPatch[T any] struct{}

func (NoPatch[T]) Validate() error { return nil }

func (NoPatch[T]) Apply(entity T) T { return entity }
