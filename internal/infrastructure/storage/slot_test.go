package storage

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondhand/console/internal/infrastructure/config"
)

// exerciseSlot runs the contract every slot must satisfy.
func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	v, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, v, "a fresh slot is empty")

	require.NoError(t, slot.Save(ctx, "tok123"))
	v, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok123", v)

	require.NoError(t, slot.Save(ctx, "tok456"))
	v, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok456", v, "save overwrites")

	require.NoError(t, slot.Clear(ctx))
	v, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, slot.Clear(ctx), "clearing an empty slot is not an error")
}

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot()
	exerciseSlot(t, slot)
	assert.NoError(t, slot.Close())
}

func TestFileSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	exerciseSlot(t, NewFileSlot(path, "token"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clearing the last key removes the file")
}

func TestFileSlotSharedFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	a := NewFileSlot(path, "token")
	b := NewFileSlot(path, "admin_token")
	require.NoError(t, a.Save(ctx, "user-tok"))
	require.NoError(t, b.Save(ctx, "admin-tok"))

	require.NoError(t, a.Clear(ctx))
	v, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin-tok", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewFileSlot(path, "admin_token")
	v, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin-tok", v)
}

func TestFileSlotCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSlot(path, "token").Load(context.Background())
	assert.ErrorContains(t, err, "parsing session file")
}

func TestSQLiteSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	slot, err := NewSQLiteSlot(path, "token")
	require.NoError(t, err)
	exerciseSlot(t, slot)

	require.NoError(t, slot.Save(context.Background(), "persisted"))
	require.NoError(t, slot.Close())

	reopened, err := NewSQLiteSlot(path, "token")
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)
}

func TestRedisSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	slot := NewRedisSlotWithClient(client, "console:session:", "token")
	assert.Equal(t, "console:session:token", slot.Key())

	exerciseSlot(t, slot)

	require.NoError(t, slot.Save(context.Background(), "shared"))
	stored, err := mr.Get("console:session:token")
	require.NoError(t, err)
	assert.Equal(t, "shared", stored)

	require.NoError(t, slot.Close())
}

func TestRedisSlotServerError(t *testing.T) {
	mr := miniredis.RunT(t)
	slot := NewRedisSlotWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "", "token")
	defer slot.Close()

	mr.SetError("LOADING")
	_, err := slot.Load(context.Background())
	assert.ErrorContains(t, err, "loading session")
	assert.ErrorContains(t, slot.Save(context.Background(), "x"), "saving session")
	assert.ErrorContains(t, slot.Clear(context.Background()), "clearing session")
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{
		Session: config.SessionConfig{Store: config.StoreRedis, Key: "token"},
		Redis:   config.RedisConfig{Host: mr.Host(), Port: port, KeyPrefix: "console:session:"},
	}
	slot, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer slot.Close()

	exerciseSlot(t, slot)
}

func TestRedisSlotUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisSlot(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1}, "token")
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		store   string
		wantErr bool
	}{
		{config.StoreMemory, false},
		{config.StoreFile, false},
		{config.StoreSQLite, false},
		{"etcd", true},
	}
	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			cfg := &config.Config{Session: config.SessionConfig{
				Store:      tt.store,
				Key:        "token",
				FilePath:   filepath.Join(dir, "session.json"),
				SQLitePath: filepath.Join(dir, "session.db"),
			}}
			slot, err := Open(ctx, cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer slot.Close()
			exerciseSlot(t, slot)
		})
	}
}
