package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/bizpilot/internal/repository"
)

// SnapshotRepository implements resource.SnapshotStore for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save replaces the stored snapshot of a resource.
func (r *SnapshotRepository) Save(ctx context.Context, resource string, payload []byte, count int, syncedAt time.Time) error {
	if resource == "" {
		return repository.ErrInvalidInput
	}
	query := `
		INSERT INTO snapshots (resource, payload, item_count, synced_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(resource) DO UPDATE SET
			payload = excluded.payload,
			item_count = excluded.item_count,
			synced_at = excluded.synced_at
	`
	if _, err := r.db.ExecContext(ctx, query, resource, string(payload), count, syncedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot of a resource, or repository.ErrNotFound.
func (r *SnapshotRepository) Load(ctx context.Context, resource string) ([]byte, time.Time, error) {
	var payload string
	var syncedAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, synced_at FROM snapshots WHERE resource = ?`, resource,
	).Scan(&payload, &syncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, repository.ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return []byte(payload), syncedAt, nil
}
