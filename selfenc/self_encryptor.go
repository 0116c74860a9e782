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

// SelfEncryptor is the read-side façade: given a DataMap and the Storage its
// chunks live in, it serves arbitrary offset/length ranges of the original
// payload. Unsealed chunks are cached per instance, so sequential reads do
// not refetch.
type SelfEncryptor struct {
	storage    Storage
	dm         *DataMap
	compressor compression.Compressor
	preHashes  [][]byte
	cache      map[int][]byte
}

// NewSelfEncryptor wraps storage and dataMap for reading.
func NewSelfEncryptor(storage Storage, dataMap *DataMap) (*SelfEncryptor, error) {
	if dataMap == nil {
		return nil, fmt.Errorf("nil DataMap")
	}
	if err := dataMap.validate(); err != nil {
		return nil, err
	}
	e := &SelfEncryptor{storage: storage, dm: dataMap}
	if dataMap.IsChunked() {
		compressor, err := compression.GetCompressorViaType(dataMap.Compression)
		if err != nil {
			return nil, fmt.Errorf("DataMap carries unknown compression %d: %w", dataMap.Compression, err)
		}
		e.compressor = compressor
		e.preHashes = make([][]byte, len(dataMap.Chunks))
		for i, c := range dataMap.Chunks {
			e.preHashes[i] = c.PreHash
		}
		e.cache = make(map[int][]byte)
	}
	return e, nil
}

// Len returns the length of the original payload.
func (e *SelfEncryptor) Len() uint64 {
	return e.dm.Len()
}

// Read returns up to length bytes of the original payload starting at
// offset. Ranges past the end are clamped; an offset at or beyond the end
// yields an empty slice.
func (e *SelfEncryptor) Read(ctx context.Context, offset, length uint64) ([]byte, error) {
	size := e.dm.Len()
	if offset >= size || length == 0 {
		return []byte{}, nil
	}
	end := offset + length
	if end > size || end < offset { // clamp, and guard overflow
		end = size
	}

	if !e.dm.IsChunked() {
		out := make([]byte, end-offset)
		copy(out, e.dm.Content[offset:end])
		return out, nil
	}

	out := make([]byte, 0, end-offset)
	var chunkStart uint64
	for i, c := range e.dm.Chunks {
		chunkEnd := chunkStart + c.SrcSize
		if chunkEnd <= offset {
			chunkStart = chunkEnd
			continue
		}
		if chunkStart >= end {
			break
		}
		data, err := e.chunkData(ctx, i)
		if err != nil {
			return nil, err
		}
		from := uint64(0)
		if offset > chunkStart {
			from = offset - chunkStart
		}
		to := c.SrcSize
		if end < chunkEnd {
			to = end - chunkStart
		}
		out = append(out, data[from:to]...)
		chunkStart = chunkEnd
	}
	return out, nil
}

// ReadAll returns the whole payload.
func (e *SelfEncryptor) ReadAll(ctx context.Context) ([]byte, error) {
	return e.Read(ctx, 0, e.dm.Len())
}

// chunkData fetches and unseals chunk i, serving repeats from the cache.
func (e *SelfEncryptor) chunkData(ctx context.Context, i int) ([]byte, error) {
	if data, ok := e.cache[i]; ok {
		return data, nil
	}
	c := e.dm.Chunks[i]
	name := ChunkName(c.Hash)
	sealed, err := e.storage.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chunk %d (%s): %w", i, name, err)
	}
	data, err := unsealChunk(sealed, e.preHashes, i, e.compressor)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != c.SrcSize {
		return nil, fmt.Errorf("chunk %d decoded to %d bytes, DataMap says %d", i, len(data), c.SrcSize)
	}
	e.cache[i] = data
	return data, nil
}
