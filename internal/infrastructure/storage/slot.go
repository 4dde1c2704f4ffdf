// Package storage provides the persisted key/value slots the session token
// is kept in between runs.
package storage

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/secondhand/console/internal/infrastructure/config"
)

// Slot is a single persisted value. Load returns "" when nothing is stored.
type Slot interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the slot selected by cfg.Session.Store.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Slot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := cfg.Session.Key

	var (
		slot Slot
		err  error
	)
	switch cfg.Session.Store {
	case config.StoreFile:
		slot = NewFileSlot(cfg.Session.FilePath, key)
	case config.StoreSQLite:
		slot, err = NewSQLiteSlot(cfg.Session.SQLitePath, key)
	case config.StoreRedis:
		slot, err = NewRedisSlot(ctx, cfg.Redis, key)
	case config.StoreMemory:
		slot = NewMemorySlot()
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("session slot opened",
		zap.String("store", cfg.Session.Store),
		zap.String("key", key),
	)
	return slot, nil
}

// MemorySlot keeps the value in process memory only.
type MemorySlot struct {
	mu    sync.Mutex
	value string
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemorySlot) Save(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	return nil
}

func (m *MemorySlot) Clear(ctx context.Context) error {
	return m.Save(ctx, "")
}

func (m *MemorySlot) Close() error { return nil }
