package mocks

import (
	"context"
	"time"

	"github.com/rpggio/bizpilot/internal/domain/account"
	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/resource"
	"github.com/stretchr/testify/mock"
)

// Remote is a mock for resource.Remote.
type Remote[T any, D any, P any] struct {
	mock.Mock
}

func (m *Remote[T, D, P]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]T); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Remote[T, D, P]) Create(ctx context.Context, draft D) (*T, error) {
	args := m.Called(ctx, draft)
	if created, ok := args.Get(0).(*T); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Remote[T, D, P]) Update(ctx context.Context, id resource.ID, patch P) (*T, error) {
	args := m.Called(ctx, id, patch)
	if updated, ok := args.Get(0).(*T); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Remote[T, D, P]) Delete(ctx context.Context, id resource.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// SnapshotStore is a mock for resource.SnapshotStore.
type SnapshotStore struct {
	mock.Mock
}

func (m *SnapshotStore) Save(ctx context.Context, name string, payload []byte, count int, syncedAt time.Time) error {
	args := m.Called(ctx, name, payload, count, syncedAt)
	return args.Error(0)
}

func (m *SnapshotStore) Load(ctx context.Context, name string) ([]byte, time.Time, error) {
	args := m.Called(ctx, name)
	payload, _ := args.Get(0).([]byte)
	syncedAt, _ := args.Get(1).(time.Time)
	return payload, syncedAt, args.Error(2)
}

// JournalRepository is a mock for journal.Repository.
type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) Log(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *JournalRepository) List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	args := m.Called(ctx, opts)
	if entries, ok := args.Get(0).([]journal.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// Journal is a mock for resource.Journal.
type Journal struct {
	mock.Mock
}

func (m *Journal) Log(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// AccountRemote is a mock for account.Remote.
type AccountRemote struct {
	mock.Mock
}

func (m *AccountRemote) Signup(ctx context.Context, req account.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
