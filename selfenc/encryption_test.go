package selfenc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealUnsealRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(70))
	compressor := testCompressor(t)

	chunks := [][]byte{
		randBytes(rng, MinChunkSize),
		randBytes(rng, 2*MinChunkSize),
		randBytes(rng, MinChunkSize+17),
	}
	preHashes := calcPreHashes(chunks)

	for i, chunk := range chunks {
		sealed, hash, err := sealChunk(chunk, preHashes, i, compressor)
		require.NoError(t, err)
		assert.Len(t, hash, HashSize)
		assert.NotEqual(t, chunk, sealed)

		data, err := unsealChunk(sealed, preHashes, i, compressor)
		require.NoError(t, err)
		assert.Equal(t, chunk, data)
	}
}

// Sibling-derived keys: changing any chunk's plaintext changes the keys of
// the chunks that depend on it, so a stale sibling pre-hash must fail.
func TestSealKeysDependOnSiblings(t *testing.T) {
	rng := rand.New(rand.NewSource(71))
	compressor := testCompressor(t)

	chunks := [][]byte{
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
	}
	preHashes := calcPreHashes(chunks)
	sealed, _, err := sealChunk(chunks[0], preHashes, 0, compressor)
	require.NoError(t, err)

	tampered := make([][]byte, len(preHashes))
	copy(tampered, preHashes)
	tampered[2] = calcPreHash([]byte("someone else's chunk"))

	_, err = unsealChunk(sealed, tampered, 0, compressor)
	assert.Error(t, err)
}

func TestUnsealRejectsCorruptedChunk(t *testing.T) {
	rng := rand.New(rand.NewSource(72))
	compressor := testCompressor(t)

	chunks := [][]byte{
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
	}
	preHashes := calcPreHashes(chunks)
	sealed, _, err := sealChunk(chunks[1], preHashes, 1, compressor)
	require.NoError(t, err)

	sealed[len(sealed)/2] ^= 0xff
	_, err = unsealChunk(sealed, preHashes, 1, compressor)
	assert.Error(t, err)
}

// Convergence: the same plaintext in the same position seals to the same
// bytes, so identical payloads share chunk names.
func TestSealIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(73))
	compressor := testCompressor(t)

	chunks := [][]byte{
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
	}
	preHashes := calcPreHashes(chunks)

	sealedA, hashA, err := sealChunk(chunks[0], preHashes, 0, compressor)
	require.NoError(t, err)
	sealedB, hashB, err := sealChunk(chunks[0], preHashes, 0, compressor)
	require.NoError(t, err)
	assert.Equal(t, sealedA, sealedB)
	assert.Equal(t, hashA, hashB)
}

func TestChunkKeyDistinctPerIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(74))
	chunks := [][]byte{
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
		randBytes(rng, MinChunkSize),
	}
	preHashes := calcPreHashes(chunks)

	k0 := chunkKey(preHashes, 0)
	k1 := chunkKey(preHashes, 1)
	k2 := chunkKey(preHashes, 2)
	assert.NotEqual(t, k0, k1)
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k0, k2)
}
