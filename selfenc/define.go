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
	"github.com/zhengshuai-xiao/SelfEncS/internal"
)

const (
	// MinChunkSize is the smallest chunk the chunked tiers will produce.
	MinChunkSize = 1024
	// MaxChunkSize is the largest chunk the chunked tiers will produce.
	MaxChunkSize = 1 << 20

	// SmallMax is the largest payload that is stored inline in the DataMap.
	// Every chunk key is derived from two sibling chunks, so a valid chunked
	// representation needs at least three chunks of MinChunkSize each;
	// anything below that stays inline. The -1 is load-bearing: a payload of
	// exactly 3*MinChunkSize is the smallest that can be chunked.
	SmallMax = 3*MinChunkSize - 1

	// MediumMax is the largest payload the three-chunk tier accepts.
	MediumMax = 3 * MaxChunkSize

	// HashSize is the size of chunk hashes and pre-hashes (SHA-256).
	HashSize = 32

	// nonceSize is the AES-GCM nonce length, taken from a chunk's pre-hash.
	nonceSize = 12
)

var logger = internal.GetLogger("SelfEncS")

// ChunkDetail is the per-chunk record kept in a chunked DataMap.
type ChunkDetail struct {
	Index   uint32
	SrcSize uint64
	// PreHash is the SHA-256 of the plaintext chunk. It is the key material
	// for sibling chunks and the integrity check on read-back.
	PreHash []byte
	// Hash is the SHA-256 of the sealed chunk; its hex form is the name the
	// chunk is stored under.
	Hash []byte
}

// ChunkName returns the storage name for a sealed-chunk hash.
func ChunkName(hash []byte) string {
	return internal.StringToHex(string(hash))
}
