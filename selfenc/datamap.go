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
	"fmt"
	"os"
	"strings"

	"github.com/zhengshuai-xiao/SelfEncS/internal"
	"github.com/zhengshuai-xiao/SelfEncS/internal/compression"
)

// DataMap is the self-describing record from which the original content is
// reconstructed. It is a tagged union: either the content is small enough to
// be held inline, or it is a list of sealed chunks held by a Storage backend.
// Both empty means a zero-length payload.
type DataMap struct {
	// Content holds the raw bytes of payloads up to SmallMax, verbatim.
	Content []byte
	// Chunks describes the sealed chunks of larger payloads, in order.
	Chunks []ChunkDetail
	// Compression is the codec the chunks were compressed with before
	// sealing. Meaningless for inline maps.
	Compression compression.CompressionType
}

// IsChunked reports whether the map refers to stored chunks rather than
// inline content.
func (m *DataMap) IsChunked() bool {
	return len(m.Chunks) > 0
}

// Len returns the length of the original payload.
func (m *DataMap) Len() uint64 {
	if m.IsChunked() {
		var total uint64
		for _, c := range m.Chunks {
			total += c.SrcSize
		}
		return total
	}
	return uint64(len(m.Content))
}

func (m *DataMap) validate() error {
	if len(m.Content) > 0 && len(m.Chunks) > 0 {
		return fmt.Errorf("DataMap holds both inline content and chunks")
	}
	if len(m.Content) > SmallMax {
		return fmt.Errorf("inline content of %d bytes exceeds the %d byte limit", len(m.Content), SmallMax)
	}
	for i, c := range m.Chunks {
		if int(c.Index) != i {
			return fmt.Errorf("chunk %d is out of order (index %d)", i, c.Index)
		}
		if len(c.PreHash) != HashSize || len(c.Hash) != HashSize {
			return fmt.Errorf("chunk %d carries malformed hashes", i)
		}
	}
	return nil
}

// Summary renders a short human-readable description for the CLI.
func (m *DataMap) Summary() string {
	var b strings.Builder
	if !m.IsChunked() {
		fmt.Fprintf(&b, "inline DataMap: %s\n", internal.FormatBytes(m.Len()))
		return b.String()
	}
	fmt.Fprintf(&b, "chunked DataMap: %s in %d chunks\n", internal.FormatBytes(m.Len()), len(m.Chunks))
	for _, c := range m.Chunks {
		fmt.Fprintf(&b, "  chunk %4d: %8d bytes, name %s\n", c.Index, c.SrcSize, ChunkName(c.Hash))
	}
	return b.String()
}

// mapFileVersion is bumped whenever the serialized layout changes. Readers
// accept files up to their own version.
const mapFileVersion = "1.0.0"

// dataMapFile is the on-disk envelope around a serialized DataMap.
type dataMapFile struct {
	Version  string
	Checksum uint32
	Payload  string
}

// DumpDataMap serializes a DataMap to a versioned, checksummed file.
func DumpDataMap(m *DataMap, path string) error {
	if err := m.validate(); err != nil {
		return err
	}
	payload, err := internal.SerializeToString(m)
	if err != nil {
		return err
	}
	envelope := dataMapFile{
		Version:  mapFileVersion,
		Checksum: internal.CalculateCRC32([]byte(payload)),
		Payload:  payload,
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open DataMap file for writing: %w", err)
	}
	defer file.Close()

	return internal.SerializeToFile(envelope, file)
}

// LoadDataMap deserializes a DataMap from a file.
func LoadDataMap(path string) (*DataMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DataMap file: %w", err)
	}
	defer file.Close()

	var envelope dataMapFile
	if err := internal.DeserializeFromFile(file, &envelope); err != nil {
		return nil, fmt.Errorf("corrupted DataMap file %s: %w", path, err)
	}
	fileVer := internal.Parse(envelope.Version)
	if fileVer == nil {
		return nil, fmt.Errorf("DataMap file %s carries malformed format version %q", path, envelope.Version)
	}
	cmp, err := internal.CompareVersions(fileVer, internal.Parse(mapFileVersion))
	if err != nil {
		return nil, err
	}
	if cmp > 0 {
		return nil, fmt.Errorf("DataMap file %s has format version %s, newer than the supported %s",
			path, envelope.Version, mapFileVersion)
	}
	if !internal.VerifyCRC32([]byte(envelope.Payload), envelope.Checksum) {
		return nil, fmt.Errorf("corrupted DataMap file %s: checksum mismatch", path)
	}

	m := &DataMap{}
	if err := internal.DeserializeFromString(envelope.Payload, m); err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("corrupted DataMap file %s: %w", path, err)
	}
	return m, nil
}
