package selfenc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storageContract exercises the behavior every Storage backend must share.
func storageContract(t *testing.T, storage Storage) {
	ctx := context.Background()

	_, err := storage.Get(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrChunkNotFound)

	require.NoError(t, storage.Put(ctx, "deadbeef", []byte("sealed bytes")))
	data, err := storage.Get(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed bytes"), data)

	// idempotent re-put
	require.NoError(t, storage.Put(ctx, "deadbeef", []byte("sealed bytes")))

	require.NoError(t, storage.Delete(ctx, "deadbeef"))
	_, err = storage.Get(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrChunkNotFound)

	// deleting an absent name is not an error
	assert.NoError(t, storage.Delete(ctx, "deadbeef"))
}

func TestMemStorage(t *testing.T) {
	storage := NewMemStorage()
	storageContract(t, storage)
	assert.Equal(t, 2, storage.NumPuts())
	assert.Equal(t, 0, storage.NumEntries())
}

func TestMemStorageIsolation(t *testing.T) {
	ctx := context.Background()
	storage := NewMemStorage()
	buf := []byte("mutable")
	require.NoError(t, storage.Put(ctx, "k", buf))
	buf[0] = 'X'

	data, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), data)
}

func TestPOSIXStorage(t *testing.T) {
	storage, err := NewPOSIXStorage(t.TempDir())
	require.NoError(t, err)
	storageContract(t, storage)
}

func TestPOSIXStorageSharding(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage, err := NewPOSIXStorage(dir)
	require.NoError(t, err)

	name := ChunkName(calcPreHash([]byte("payload")))
	require.NoError(t, storage.Put(ctx, name, []byte("payload")))

	// the chunk lands in a shard directory named after its first hex byte
	data, err := storage.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
	assert.FileExists(t, storage.getLocalPath(name))
	assert.Contains(t, storage.getLocalPath(name), name[:2])
}
