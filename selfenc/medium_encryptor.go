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
	"context"
	"fmt"

	"github.com/zhengshuai-xiao/SelfEncS/internal/compression"
)

// MediumEncryptor handles payloads above SmallMax and up to MediumMax. It
// buffers everything in memory and splits the buffer into exactly three
// near-equal chunks at Close. Like the small tier, mutating calls consume
// the receiver.
type MediumEncryptor struct {
	storage    Storage
	buffer     []byte
	compressor compression.Compressor
	consumed   bool
}

// NewMediumEncryptor wraps storage and a buffer seeded with data, typically
// the carried-over buffer of a promoted SmallEncryptor. The caller must keep
// len(data) within MediumMax.
func NewMediumEncryptor(storage Storage, data []byte, compressor compression.Compressor) (*MediumEncryptor, error) {
	if len(data) > MediumMax {
		panic("selfenc: medium tier seeded beyond capacity")
	}
	if compressor == nil {
		return nil, fmt.Errorf("medium tier needs a compressor")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MediumEncryptor{storage: storage, buffer: buf, compressor: compressor}, nil
}

// Write appends data to the internal buffer. The caller must keep
// Len()+len(data) within MediumMax. No chunks are generated by this call.
func (e *MediumEncryptor) Write(data []byte) (*MediumEncryptor, error) {
	e.use()
	if uint64(len(e.buffer))+uint64(len(data)) > MediumMax {
		panic("selfenc: medium tier write exceeds capacity")
	}
	next := &MediumEncryptor{
		storage:    e.storage,
		buffer:     append(e.buffer, data...),
		compressor: e.compressor,
	}
	e.storage = nil
	e.buffer = nil
	return next, nil
}

// Close splits the buffer into three chunks, seals them, stores them, and
// returns the chunked DataMap together with the Storage.
func (e *MediumEncryptor) Close(ctx context.Context) (DataMap, Storage, error) {
	e.use()
	storage := e.storage
	buffer := e.buffer
	e.storage = nil
	e.buffer = nil

	if len(buffer) <= SmallMax {
		panic("selfenc: medium tier closed below the small tier threshold")
	}

	// Each chunk gets len/3 bytes, the remainder goes to the last one. The
	// buffer is above SmallMax, so every chunk is at least MinChunkSize.
	third := len(buffer) / 3
	chunks := [][]byte{
		buffer[:third],
		buffer[third : 2*third],
		buffer[2*third:],
	}
	dm, err := sealAndStore(ctx, storage, chunks, e.compressor)
	if err != nil {
		return DataMap{}, storage, err
	}
	return dm, storage, nil
}

// Len returns the number of buffered bytes.
func (e *MediumEncryptor) Len() uint64 {
	e.live()
	return uint64(len(e.buffer))
}

// IsEmpty reports whether nothing has been buffered.
func (e *MediumEncryptor) IsEmpty() bool {
	e.live()
	return len(e.buffer) == 0
}

// takeover consumes the encryptor and hands its buffered bytes and Storage
// to the caller, in accumulation order. Used when promoting to the large
// tier.
func (e *MediumEncryptor) takeover() ([]byte, Storage) {
	e.use()
	buffer, storage := e.buffer, e.storage
	e.storage = nil
	e.buffer = nil
	return buffer, storage
}

func (e *MediumEncryptor) live() {
	if e.consumed {
		panic("selfenc: use of consumed MediumEncryptor")
	}
}

func (e *MediumEncryptor) use() {
	e.live()
	e.consumed = true
}

// sealAndStore seals every chunk and puts it to storage under its sealed
// hash, returning the resulting chunked DataMap.
func sealAndStore(ctx context.Context, storage Storage, chunks [][]byte, compressor compression.Compressor) (DataMap, error) {
	if len(chunks) < 3 {
		panic("selfenc: chunked DataMap needs at least three chunks")
	}
	preHashes := calcPreHashes(chunks)
	details := make([]ChunkDetail, len(chunks))
	for i, chunk := range chunks {
		sealed, hash, err := sealChunk(chunk, preHashes, i, compressor)
		if err != nil {
			return DataMap{}, err
		}
		name := ChunkName(hash)
		if err := storage.Put(ctx, name, sealed); err != nil {
			return DataMap{}, fmt.Errorf("failed to store chunk %d (%s): %w", i, name, err)
		}
		logger.Tracef("stored chunk %d: %d -> %d bytes, name %s", i, len(chunk), len(sealed), name)
		details[i] = ChunkDetail{
			Index:   uint32(i),
			SrcSize: uint64(len(chunk)),
			PreHash: preHashes[i],
			Hash:    hash,
		}
	}
	return DataMap{Chunks: details, Compression: compressor.Type()}, nil
}
