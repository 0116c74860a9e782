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

// SmallEncryptor is the tier for data which is too small to split into three
// chunks. It never makes any calls to its Storage; the handle is held only so
// it can be passed on to a MediumEncryptor or LargeEncryptor if the payload
// outgrows this tier.
//
// Every mutating call consumes the receiver and returns the successor
// instance; the consumed instance panics on any further use. The error
// returns are always nil here and exist to keep the signatures uniform with
// the chunked tiers, which do real storage I/O.
type SmallEncryptor struct {
	storage  Storage
	buffer   []byte
	consumed bool
}

// NewSmallEncryptor wraps storage and a buffer seeded with data, which may
// come from the inline content of an existing DataMap. The caller must keep
// len(data) within SmallMax.
func NewSmallEncryptor(storage Storage, data []byte) (*SmallEncryptor, error) {
	if len(data) > SmallMax {
		panic("selfenc: small tier seeded beyond capacity")
	}
	buf := make([]byte, len(data), SmallMax)
	copy(buf, data)
	return &SmallEncryptor{storage: storage, buffer: buf}, nil
}

// Write appends data to the internal buffer. The caller must keep
// Len()+len(data) within SmallMax; crossing the threshold means the payload
// belongs to a larger tier. No chunks are generated by this call.
func (e *SmallEncryptor) Write(data []byte) (*SmallEncryptor, error) {
	e.use()
	if uint64(len(e.buffer))+uint64(len(data)) > SmallMax {
		panic("selfenc: small tier write exceeds capacity")
	}
	next := &SmallEncryptor{
		storage: e.storage,
		buffer:  append(e.buffer, data...),
	}
	e.storage = nil
	e.buffer = nil
	return next, nil
}

// Close finalises the encryptor, returning the buffered bytes as an inline
// DataMap together with the untouched Storage. No chunks are generated by
// this call.
func (e *SmallEncryptor) Close() (DataMap, Storage, error) {
	e.use()
	dm := DataMap{Content: e.buffer}
	storage := e.storage
	e.storage = nil
	e.buffer = nil
	return dm, storage, nil
}

// Len returns the number of buffered bytes.
func (e *SmallEncryptor) Len() uint64 {
	e.live()
	return uint64(len(e.buffer))
}

// IsEmpty reports whether nothing has been buffered.
func (e *SmallEncryptor) IsEmpty() bool {
	e.live()
	return len(e.buffer) == 0
}

func (e *SmallEncryptor) live() {
	if e.consumed {
		panic("selfenc: use of consumed SmallEncryptor")
	}
}

func (e *SmallEncryptor) use() {
	e.live()
	e.consumed = true
}
