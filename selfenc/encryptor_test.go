package selfenc

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// facadeRoundTrip writes data through the tier façade in random pieces and
// verifies the reconstruction.
func facadeRoundTrip(t *testing.T, rng *rand.Rand, data []byte, wantChunked bool) {
	storage := NewMemStorage()
	encryptor, err := NewEncryptor(storage, nil, "snappy")
	require.NoError(t, err)

	for _, piece := range makeRandomPieces(rng, data) {
		require.NoError(t, encryptor.Write(piece))
	}
	assert.Equal(t, uint64(len(data)), encryptor.Len())

	dm, returned, err := encryptor.Close(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wantChunked, dm.IsChunked())
	assert.Equal(t, uint64(len(data)), dm.Len())
	if !wantChunked {
		assert.Equal(t, 0, storage.NumPuts())
	}

	reader, err := NewSelfEncryptor(returned, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data, append([]byte{}, fetched...))
}

func TestEncryptorTiers(t *testing.T) {
	rng := rand.New(rand.NewSource(51))

	testCases := []struct {
		name        string
		size        int
		wantChunked bool
	}{
		{"Empty", 0, false},
		{"One Byte", 1, false},
		{"Largest Inline", SmallMax, false},
		{"Smallest Chunked", SmallMax + 1, true},
		{"Medium", 64 * 1024, true},
		{"Largest Medium", MediumMax, true},
		{"Smallest Large", MediumMax + 1, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			facadeRoundTrip(t, rng, randBytes(rng, tc.size), tc.wantChunked)
		})
	}
}

// The threshold is exact: SmallMax bytes stay inline, one more byte flips
// the payload into three stored chunks.
func TestEncryptorThresholdExact(t *testing.T) {
	rng := rand.New(rand.NewSource(52))

	storage := NewMemStorage()
	encryptor, err := NewEncryptor(storage, nil, "snappy")
	require.NoError(t, err)
	require.NoError(t, encryptor.Write(randBytes(rng, SmallMax)))
	dm, _, err := encryptor.Close(context.Background())
	require.NoError(t, err)
	assert.False(t, dm.IsChunked())
	assert.Equal(t, 0, storage.NumPuts())

	storage = NewMemStorage()
	encryptor, err = NewEncryptor(storage, nil, "snappy")
	require.NoError(t, err)
	require.NoError(t, encryptor.Write(randBytes(rng, SmallMax+1)))
	dm, _, err = encryptor.Close(context.Background())
	require.NoError(t, err)
	assert.True(t, dm.IsChunked())
	assert.Equal(t, 3, storage.NumPuts())
}

// Promotion must carry the buffered bytes forward unchanged and in order.
func TestEncryptorPromotionKeepsOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	data := randBytes(rng, 4*MinChunkSize)

	encryptor, err := NewEncryptor(NewMemStorage(), nil, "snappy")
	require.NoError(t, err)
	// stay in the small tier across several writes, then cross the line
	require.NoError(t, encryptor.Write(data[:1000]))
	require.NoError(t, encryptor.Write(data[1000:2000]))
	require.NoError(t, encryptor.Write(data[2000:]))

	dm, storage, err := encryptor.Close(context.Background())
	require.NoError(t, err)
	require.True(t, dm.IsChunked())

	reader, err := NewSelfEncryptor(storage, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, fetched))
}

// A single oversized write may skip the medium tier entirely.
func TestEncryptorSmallToLargeJump(t *testing.T) {
	rng := rand.New(rand.NewSource(54))
	data := randBytes(rng, MediumMax+MinChunkSize)

	encryptor, err := NewEncryptor(NewMemStorage(), nil, "snappy")
	require.NoError(t, err)
	require.NoError(t, encryptor.Write(data[:100]))
	require.NoError(t, encryptor.Write(data[100:]))

	dm, storage, err := encryptor.Close(context.Background())
	require.NoError(t, err)
	require.True(t, dm.IsChunked())
	assert.Greater(t, len(dm.Chunks), 3)

	reader, err := NewSelfEncryptor(storage, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, fetched))
}

func TestEncryptorSeededResume(t *testing.T) {
	rng := rand.New(rand.NewSource(55))
	data := randBytes(rng, 1500)

	// first session stays inline
	encryptor, err := NewEncryptor(NewMemStorage(), nil, "snappy")
	require.NoError(t, err)
	require.NoError(t, encryptor.Write(data[:700]))
	dm, storage, err := encryptor.Close(context.Background())
	require.NoError(t, err)

	// second session resumes from the inline content
	encryptor, err = NewEncryptor(storage, dm.Content, "snappy")
	require.NoError(t, err)
	require.NoError(t, encryptor.Write(data[700:]))
	dm, storage, err = encryptor.Close(context.Background())
	require.NoError(t, err)

	reader, err := NewSelfEncryptor(storage, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, data, fetched)
}

func TestEncryptorReadFrom(t *testing.T) {
	rng := rand.New(rand.NewSource(56))
	data := randBytes(rng, 2*MaxChunkSize+MediumMax)

	encryptor, err := NewEncryptor(NewMemStorage(), nil, "zlib")
	require.NoError(t, err)
	n, err := encryptor.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	dm, storage, err := encryptor.Close(context.Background())
	require.NoError(t, err)

	reader, err := NewSelfEncryptor(storage, &dm)
	require.NoError(t, err)
	fetched, err := reader.ReadAll(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, fetched))
}

func TestEncryptorBadCompression(t *testing.T) {
	_, err := NewEncryptor(NewMemStorage(), nil, "lz4")
	assert.Error(t, err)
}
