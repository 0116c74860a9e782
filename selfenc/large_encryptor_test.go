package selfenc

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func largeRoundTrip(t *testing.T, rng *rand.Rand, size int, wantChunks int) {
	data := randBytes(rng, size)
	storage := NewMemStorage()

	encryptor, err := NewLargeEncryptor(storage, nil, testCompressor(t))
	require.NoError(t, err)

	// feed in uneven slices to exercise the chunk-rolling path
	rest := data
	for len(rest) > 0 {
		n := 1 + rng.Intn(MaxChunkSize)
		if n > len(rest) {
			n = len(rest)
		}
		encryptor, err = encryptor.Write(rest[:n])
		require.NoError(t, err)
		rest = rest[n:]
	}
	assert.Equal(t, uint64(size), encryptor.Len())

	dm, returned, err := encryptor.Close(context.Background())
	require.NoError(t, err)
	assert.True(t, dm.IsChunked())
	assert.Len(t, dm.Chunks, wantChunks)
	assert.Equal(t, wantChunks, storage.NumPuts())
	assert.Equal(t, uint64(size), dm.Len())
	for _, c := range dm.Chunks {
		assert.GreaterOrEqual(t, c.SrcSize, uint64(MinChunkSize))
		assert.LessOrEqual(t, c.SrcSize, uint64(MaxChunkSize))
	}

	reader, err := NewSelfEncryptor(returned, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data, fetched)
}

func TestLargeEncryptor(t *testing.T) {
	rng := rand.New(rand.NewSource(49))

	// one byte over the medium tier: the trailing byte is rebalanced into a
	// MinChunkSize final chunk
	largeRoundTrip(t, rng, MediumMax+1, 4)
	// exact chunk multiple: no partial chunk at close
	largeRoundTrip(t, rng, 4*MaxChunkSize, 4)
	// healthy partial chunk
	largeRoundTrip(t, rng, 4*MaxChunkSize+512*1024, 5)
}

func TestLargeEncryptorSeeded(t *testing.T) {
	rng := rand.New(rand.NewSource(50))
	data := randBytes(rng, MediumMax+2*MinChunkSize)

	// seed with the carried-over buffer of a promoted medium tier
	encryptor, err := NewLargeEncryptor(NewMemStorage(), data[:MediumMax], testCompressor(t))
	require.NoError(t, err)
	encryptor, err = encryptor.Write(data[MediumMax:])
	require.NoError(t, err)

	dm, storage, err := encryptor.Close(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(len(data)), dm.Len())

	reader, err := NewSelfEncryptor(storage, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data, fetched)
}

func TestLargeEncryptorConsumed(t *testing.T) {
	encryptor, err := NewLargeEncryptor(NewMemStorage(), nil, testCompressor(t))
	require.NoError(t, err)
	next, err := encryptor.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Panics(t, func() { encryptor.Len() })
	assert.Equal(t, uint64(3), next.Len())
}
