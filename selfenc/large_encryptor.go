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

// LargeEncryptor handles payloads above MediumMax. Incoming bytes are cut
// into MaxChunkSize chunks as they arrive; sealing is deferred to Close
// because every chunk key depends on the full pre-hash list. Mutating calls
// consume the receiver.
type LargeEncryptor struct {
	storage    Storage
	chunks     [][]byte // completed MaxChunkSize chunks
	partial    []byte   // trailing bytes of the next chunk
	total      uint64
	compressor compression.Compressor
	consumed   bool
}

// NewLargeEncryptor wraps storage and a buffer seeded with data, typically
// the carried-over buffer of a promoted small or medium tier.
func NewLargeEncryptor(storage Storage, data []byte, compressor compression.Compressor) (*LargeEncryptor, error) {
	if compressor == nil {
		return nil, fmt.Errorf("large tier needs a compressor")
	}
	e := &LargeEncryptor{storage: storage, compressor: compressor}
	e.absorb(data)
	return e, nil
}

func (e *LargeEncryptor) absorb(data []byte) {
	e.total += uint64(len(data))
	for len(data) > 0 {
		need := MaxChunkSize - len(e.partial)
		if need > len(data) {
			e.partial = append(e.partial, data...)
			return
		}
		chunk := append(e.partial, data[:need]...)
		e.chunks = append(e.chunks, chunk)
		e.partial = nil
		data = data[need:]
	}
}

// Write appends data, rolling full chunks off as they complete. No sealing
// or storage I/O happens until Close.
func (e *LargeEncryptor) Write(data []byte) (*LargeEncryptor, error) {
	e.use()
	next := &LargeEncryptor{
		storage:    e.storage,
		chunks:     e.chunks,
		partial:    e.partial,
		total:      e.total,
		compressor: e.compressor,
	}
	next.absorb(data)
	e.storage = nil
	e.chunks = nil
	e.partial = nil
	return next, nil
}

// Close seals and stores all accumulated chunks and returns the chunked
// DataMap together with the Storage.
func (e *LargeEncryptor) Close(ctx context.Context) (DataMap, Storage, error) {
	e.use()
	storage := e.storage
	chunks := e.chunks
	partial := e.partial
	e.storage = nil
	e.chunks = nil
	e.partial = nil

	if len(partial) > 0 {
		// A trailing chunk below MinChunkSize borrows bytes from its
		// predecessor so every stored chunk honors the minimum size.
		if len(partial) < MinChunkSize && len(chunks) > 0 {
			last := chunks[len(chunks)-1]
			borrow := MinChunkSize - len(partial)
			rebalanced := make([]byte, 0, MinChunkSize)
			rebalanced = append(rebalanced, last[len(last)-borrow:]...)
			rebalanced = append(rebalanced, partial...)
			chunks[len(chunks)-1] = last[:len(last)-borrow]
			partial = rebalanced
		}
		chunks = append(chunks, partial)
	}

	if len(chunks) < 3 {
		panic("selfenc: large tier closed below the medium tier threshold")
	}

	dm, err := sealAndStore(ctx, storage, chunks, e.compressor)
	if err != nil {
		return DataMap{}, storage, err
	}
	return dm, storage, nil
}

// Len returns the number of accumulated bytes.
func (e *LargeEncryptor) Len() uint64 {
	e.live()
	return e.total
}

// IsEmpty reports whether nothing has been accumulated.
func (e *LargeEncryptor) IsEmpty() bool {
	e.live()
	return e.total == 0
}

func (e *LargeEncryptor) live() {
	if e.consumed {
		panic("selfenc: use of consumed LargeEncryptor")
	}
}

func (e *LargeEncryptor) use() {
	e.live()
	e.consumed = true
}
