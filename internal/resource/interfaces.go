package resource

import (
	"context"
	"time"

	"github.com/rpggio/bizpilot/internal/domain/journal"
)

// Entity is a record with server-assigned identity.
type Entity interface {
	EntityID() ID
}

// Draft is a client-built payload for create. Placeholder builds the local
// entity used when the server acknowledges a create without returning it.
type Draft[T any] interface {
	Validate() error
	Placeholder(id ID) T
}

// Patch is a partial update. Apply must leave fields it does not set alone.
type Patch[T any] interface {
	Validate() error
	Apply(entity T) T
}

// Remote is the CRUD contract of one remote collection. Create and Update
// return nil when the server acknowledged without an entity body.
type Remote[T any, D any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft D) (*T, error)
	Update(ctx context.Context, id ID, patch P) (*T, error)
	Delete(ctx context.Context, id ID) error
}

// SnapshotStore persists the last reconciled collection of a resource.
type SnapshotStore interface {
	Save(ctx context.Context, resource string, payload []byte, count int, syncedAt time.Time) error
	Load(ctx context.Context, resource string) ([]byte, time.Time, error)
}

// Journal records operation outcomes.
type Journal interface {
	Log(ctx context.Context, entry *journal.Entry) error
}
