// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package media

import (
	"cmp"
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/MKhiriev/sealed-chat/models"
)

// DefaultChunkSize is the size of every chunk except possibly the last one.
const DefaultChunkSize = 512 * 1024

// ChunkBuffer splits buffer into consecutive chunks of chunkSize bytes with
// indices 0..N-1. A non-positive chunkSize selects [DefaultChunkSize]. An
// empty buffer yields no chunks.
func ChunkBuffer(buffer []byte, chunkSize int) []models.MediaChunk {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	chunks := make([]models.MediaChunk, 0, ChunkCount(len(buffer), chunkSize))
	for i, offset := 0, 0; offset < len(buffer); i, offset = i+1, offset+chunkSize {
		end := min(offset+chunkSize, len(buffer))
		chunks = append(chunks, models.MediaChunk{
			Index: i,
			Data:  base64.StdEncoding.EncodeToString(buffer[offset:end]),
		})
	}

	return chunks
}

// ChunkCount returns the number of chunks ChunkBuffer produces for size bytes.
func ChunkCount(size, chunkSize int) int {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if size <= 0 {
		return 0
	}
	return (size + chunkSize - 1) / chunkSize
}

// CombineChunks reassembles a buffer from chunks in any order. The indices
// must form exactly 0..N-1: gaps, repeats, negative indices and undecodable
// data are reported instead of producing a corrupt buffer.
func CombineChunks(chunks []models.MediaChunk) ([]byte, error) {
	sorted := slices.Clone(chunks)
	slices.SortFunc(sorted, func(a, b models.MediaChunk) int {
		return cmp.Compare(a.Index, b.Index)
	})

	decoded := make([][]byte, len(sorted))
	total := 0
	for i, chunk := range sorted {
		switch {
		case chunk.Index < 0:
			return nil, fmt.Errorf("%w: negative index %d", ErrInvalidChunk, chunk.Index)
		case i > 0 && chunk.Index == sorted[i-1].Index:
			return nil, fmt.Errorf("%w: index %d", ErrDuplicateChunk, chunk.Index)
		case chunk.Index != i:
			return nil, fmt.Errorf("%w: index %d", ErrMissingChunk, i)
		}

		b, err := base64.StdEncoding.DecodeString(chunk.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: index %d: %w", ErrInvalidChunk, chunk.Index, err)
		}
		decoded[i] = b
		total += len(b)
	}

	buffer := make([]byte, 0, total)
	for _, b := range decoded {
		buffer = append(buffer, b...)
	}

	return buffer, nil
}

// CombineChunksExpect is CombineChunks with the chunk count recorded in the
// message metadata checked as well. A truncated set is reported as a missing
// chunk at the first absent index.
func CombineChunksExpect(chunks []models.MediaChunk, expected int) ([]byte, error) {
	buffer, err := CombineChunks(chunks)
	if err != nil {
		return nil, err
	}

	switch {
	case len(chunks) < expected:
		return nil, fmt.Errorf("%w: index %d", ErrMissingChunk, len(chunks))
	case len(chunks) > expected:
		return nil, fmt.Errorf("%w: got %d, want %d", ErrChunkCount, len(chunks), expected)
	}

	return buffer, nil
}
