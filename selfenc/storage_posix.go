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
	"os"
	"path/filepath"

	"github.com/zhengshuai-xiao/SelfEncS/internal"
)

// POSIXStorage keeps sealed chunks as files under a local directory, sharded
// by the first byte of the chunk name to keep directories small.
type POSIXStorage struct {
	root string
}

func NewPOSIXStorage(root string) (*POSIXStorage, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create chunk directory %s: %w", root, err)
	}
	return &POSIXStorage{root: root}, nil
}

func (s *POSIXStorage) getLocalPath(name string) string {
	shard := "00"
	if len(name) >= 2 {
		shard = name[:2]
	}
	return filepath.Join(s.root, shard, name)
}

func (s *POSIXStorage) Put(ctx context.Context, name string, data []byte) error {
	localPath := s.getLocalPath(name)
	if err := os.MkdirAll(filepath.Dir(localPath), 0750); err != nil {
		return fmt.Errorf("failed to create chunk parent directory: %w", err)
	}
	filer, err := os.OpenFile(localPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", localPath, err)
	}
	defer filer.Close()

	if _, err := internal.WriteAll(filer, data); err != nil {
		return err
	}
	return nil
}

func (s *POSIXStorage) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.getLocalPath(name))
	if os.IsNotExist(err) {
		return nil, ErrChunkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk %s: %w", name, err)
	}
	return data, nil
}

func (s *POSIXStorage) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.getLocalPath(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
