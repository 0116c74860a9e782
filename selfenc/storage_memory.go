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
	"sync"
)

// MemStorage is a map-backed Storage. It counts operations, which makes it
// the instrumented stub the tests use to prove the small tier never touches
// its backend.
type MemStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
	puts    int
	gets    int
	deletes int
}

func NewMemStorage() *MemStorage {
	return &MemStorage{entries: make(map[string][]byte)}
}

func (s *MemStorage) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.entries[name] = buf
	s.puts++
	return nil
}

func (s *MemStorage) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	data, ok := s.entries[name]
	if !ok {
		return nil, ErrChunkNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *MemStorage) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
	s.deletes++
	return nil
}

// NumPuts returns how many Put calls the storage has served.
func (s *MemStorage) NumPuts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

// NumGets returns how many Get calls the storage has served.
func (s *MemStorage) NumGets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

// NumEntries returns how many chunks are currently stored.
func (s *MemStorage) NumEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
