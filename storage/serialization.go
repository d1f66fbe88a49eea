// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/asha/core"
)

const float32Size = 4

// MarshalVector serializes an embedding vector to bytes.
// Layout: varint length followed by fixed-width float32 values.
func MarshalVector(vector []float32) []byte {
	size := varint.Int.Size(len(vector))
	for _, v := range vector {
		size += raw.Float32.Size(v)
	}
	buf := make([]byte, size)
	n := varint.Int.Marshal(len(vector), buf)
	for _, v := range vector {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	length, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if length < 0 || length*float32Size > len(data)-n {
		return nil, fmt.Errorf("%w: vector of length %d in %d bytes", ErrTruncatedData, length, len(data))
	}

	vector := make([]float32, length)
	for i := range vector {
		v, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
		}
		vector[i] = v
		n += m
	}
	return vector, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(manifest *Manifest) []byte {
	builtAt := manifest.BuiltAt.UnixMicro()
	size := ord.String.Size(manifest.ModelID) +
		varint.Int.Size(manifest.Dimension) +
		varint.Int.Size(manifest.Units) +
		varint.Uint64.Size(uint64(manifest.CorpusHash)) +
		varint.Int64.Size(builtAt)

	buf := make([]byte, size)
	n := ord.String.Marshal(manifest.ModelID, buf)
	n += varint.Int.Marshal(manifest.Dimension, buf[n:])
	n += varint.Int.Marshal(manifest.Units, buf[n:])
	n += varint.Uint64.Marshal(uint64(manifest.CorpusHash), buf[n:])
	varint.Int64.Marshal(builtAt, buf[n:])
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	var (
		manifest Manifest
		n, m     int
		err      error
	)

	if manifest.ModelID, m, err = ord.String.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: model id: %w", ErrSerializationFailed, err)
	}
	n += m
	if manifest.Dimension, m, err = varint.Int.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: dimension: %w", ErrSerializationFailed, err)
	}
	n += m
	if manifest.Units, m, err = varint.Int.Unmarshal(data[n:]); err != nil {
		return nil, fmt.Errorf("%w: units: %w", ErrSerializationFailed, err)
	}
	n += m
	hash, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: corpus hash: %w", ErrSerializationFailed, err)
	}
	manifest.CorpusHash = core.ContentHash(hash)
	n += m
	builtAt, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: built at: %w", ErrSerializationFailed, err)
	}
	manifest.BuiltAt = time.UnixMicro(builtAt).UTC()

	return &manifest, nil
}
