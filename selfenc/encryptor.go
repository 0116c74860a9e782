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
	"io"

	"github.com/zhengshuai-xiao/SelfEncS/internal/compression"
)

// Encryptor is the write-side façade over the size tiers. It starts in the
// small tier and promotes to medium and large as the payload grows, carrying
// the buffered bytes forward in accumulation order. Unlike the tiers it
// wraps, the façade is a stable handle: Write mutates it in place.
type Encryptor struct {
	small      *SmallEncryptor
	medium     *MediumEncryptor
	large      *LargeEncryptor
	compressor compression.Compressor
	closed     bool
}

// NewEncryptor creates an encryptor over storage, optionally seeded with the
// inline content of a previous DataMap. compressionStr selects the codec
// chunks are compressed with before sealing ("snappy" or "zlib").
func NewEncryptor(storage Storage, seed []byte, compressionStr string) (*Encryptor, error) {
	compressor, err := compression.GetCompressorViaString(compressionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid compression %q: %w", compressionStr, err)
	}
	e := &Encryptor{compressor: compressor}
	switch {
	case len(seed) <= SmallMax:
		e.small, err = NewSmallEncryptor(storage, seed)
	case len(seed) <= MediumMax:
		e.medium, err = NewMediumEncryptor(storage, seed, compressor)
	default:
		e.large, err = NewLargeEncryptor(storage, seed, compressor)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Len returns the number of bytes written so far.
func (e *Encryptor) Len() uint64 {
	switch {
	case e.small != nil:
		return e.small.Len()
	case e.medium != nil:
		return e.medium.Len()
	default:
		return e.large.Len()
	}
}

// Write appends data, promoting to a larger tier first when the write would
// cross the current tier's capacity. The buffered bytes are handed to the
// next tier's constructor unchanged and in order.
func (e *Encryptor) Write(data []byte) error {
	if e.closed {
		panic("selfenc: write on closed Encryptor")
	}
	total := e.Len() + uint64(len(data))

	if e.small != nil && total > SmallMax {
		// Close on the small tier yields its buffer as inline content and
		// the untouched storage; exactly what the next tier needs as seed.
		dm, storage, err := e.small.Close()
		if err != nil {
			return err
		}
		e.small = nil
		if total <= MediumMax {
			e.medium, err = NewMediumEncryptor(storage, dm.Content, e.compressor)
		} else {
			e.large, err = NewLargeEncryptor(storage, dm.Content, e.compressor)
		}
		if err != nil {
			return err
		}
	}
	if e.medium != nil && total > MediumMax {
		buffer, storage := e.medium.takeover()
		e.medium = nil
		large, err := NewLargeEncryptor(storage, buffer, e.compressor)
		if err != nil {
			return err
		}
		e.large = large
	}

	var err error
	switch {
	case e.small != nil:
		e.small, err = e.small.Write(data)
	case e.medium != nil:
		e.medium, err = e.medium.Write(data)
	default:
		e.large, err = e.large.Write(data)
	}
	return err
}

// ReadFrom consumes r to EOF, writing it through the tiers in MaxChunkSize
// slices.
func (e *Encryptor) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	buf := make([]byte, MaxChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := e.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Close finalises the active tier and returns its DataMap together with the
// Storage. The encryptor must not be used afterwards.
func (e *Encryptor) Close(ctx context.Context) (DataMap, Storage, error) {
	if e.closed {
		panic("selfenc: close on closed Encryptor")
	}
	e.closed = true
	switch {
	case e.small != nil:
		return e.small.Close()
	case e.medium != nil:
		return e.medium.Close(ctx)
	default:
		return e.large.Close(ctx)
	}
}
