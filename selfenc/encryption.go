// Copyright 2025 zhengshuai.xiao@outlook.com
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
package selfenc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"github.com/zhengshuai-xiao/SelfEncS/internal/compression"
)

// The sealing scheme is convergent: a chunk's AES key is derived from the
// plaintext pre-hashes of its two preceding siblings (wrapping), and its
// nonce from its own pre-hash. No key material exists outside the DataMap,
// and every chunk needs two distinct siblings, which is why a chunked
// payload has at least three chunks.

// calcPreHash computes the SHA-256 pre-hash of a plaintext chunk.
func calcPreHash(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// calcPreHashes computes pre-hashes for all chunks of a payload.
func calcPreHashes(chunks [][]byte) [][]byte {
	preHashes := make([][]byte, len(chunks))
	for i := range chunks {
		preHashes[i] = calcPreHash(chunks[i])
	}
	return preHashes
}

// chunkKey derives the AES-256 key for chunk i from its sibling pre-hashes.
func chunkKey(preHashes [][]byte, i int) []byte {
	n := len(preHashes)
	h := sha256.New()
	h.Write(preHashes[(i+n-1)%n])
	h.Write(preHashes[(i+n-2)%n])
	return h.Sum(nil)
}

func chunkCipher(preHashes [][]byte, i int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(chunkKey(preHashes, i))
	if err != nil {
		return nil, fmt.Errorf("failed to init chunk cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to init GCM: %w", err)
	}
	return gcm, nil
}

// sealChunk compresses and encrypts chunk i, returning the sealed bytes and
// their SHA-256 hash (the storage name).
func sealChunk(data []byte, preHashes [][]byte, i int, compressor compression.Compressor) (sealed []byte, hash []byte, err error) {
	compressed, err := compressor.Compress(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compress chunk %d: %w", i, err)
	}
	gcm, err := chunkCipher(preHashes, i)
	if err != nil {
		return nil, nil, err
	}
	// The key is content-derived and unique per (payload, index), so the
	// deterministic nonce is never reused under the same key.
	nonce := preHashes[i][:nonceSize]
	sealed = gcm.Seal(nil, nonce, compressed, nil)
	h := sha256.Sum256(sealed)
	return sealed, h[:], nil
}

// unsealChunk decrypts and decompresses a sealed chunk and verifies the
// plaintext against its recorded pre-hash.
func unsealChunk(sealed []byte, preHashes [][]byte, i int, compressor compression.Compressor) ([]byte, error) {
	gcm, err := chunkCipher(preHashes, i)
	if err != nil {
		return nil, err
	}
	nonce := preHashes[i][:nonceSize]
	compressed, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt chunk %d: %w", i, err)
	}
	data, err := compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress chunk %d: %w", i, err)
	}
	if !bytes.Equal(calcPreHash(data), preHashes[i]) {
		return nil, fmt.Errorf("chunk %d failed its integrity check", i)
	}
	return data, nil
}
