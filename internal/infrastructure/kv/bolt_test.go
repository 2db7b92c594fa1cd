package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newBoltStore(t)

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":1}`), value)

	// overwrite is a full replace
	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":2}`)))
	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":2}`), value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, ErrKeyNotFound)

	// deleting a missing key is a no-op
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestBoltStorePing(t *testing.T) {
	store := newBoltStore(t)
	require.NoError(t, store.Ping(context.Background()))
}

func TestBoltStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := OpenBolt(path, "")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "persisted", []byte("value")))
	require.NoError(t, store.Close())

	reopened, err := OpenBolt(path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, err := reopened.Get(ctx, "persisted")
	require.NoError(t, err)
	require.Equal(t, []byte("value"), value)
}
