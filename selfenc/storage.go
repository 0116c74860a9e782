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
	"errors"
)

// ErrChunkNotFound is returned by Storage.Get for names that were never put.
var ErrChunkNotFound = errors.New("chunk not found")

// Storage persists sealed chunks under content-derived names. Puts are
// idempotent: a name is the hash of its content, so writing the same name
// twice writes the same bytes.
type Storage interface {
	// Put stores data under name.
	Put(ctx context.Context, name string, data []byte) error
	// Get retrieves the data stored under name, or ErrChunkNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes the data stored under name. Deleting an absent name is
	// not an error.
	Delete(ctx context.Context, name string) error
}
