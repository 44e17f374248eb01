// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package media

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sealed-chat/models"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestChunkBuffer_Sizes(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		chunkSize  int
		wantChunks int
		lastLen    int
	}{
		{name: "empty", size: 0, chunkSize: DefaultChunkSize, wantChunks: 0},
		{name: "one byte", size: 1, chunkSize: DefaultChunkSize, wantChunks: 1, lastLen: 1},
		{name: "exact multiple", size: 2 * DefaultChunkSize, chunkSize: DefaultChunkSize, wantChunks: 2, lastLen: DefaultChunkSize},
		{name: "1.2 MB", size: 1_200_000, chunkSize: DefaultChunkSize, wantChunks: 3, lastLen: 1_200_000 - 2*DefaultChunkSize},
		{name: "default on zero", size: DefaultChunkSize + 1, chunkSize: 0, wantChunks: 2, lastLen: 1},
		{name: "small chunks", size: 10, chunkSize: 3, wantChunks: 4, lastLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkBuffer(randomBytes(t, tt.size), tt.chunkSize)
			require.Len(t, chunks, tt.wantChunks)
			assert.Equal(t, tt.wantChunks, ChunkCount(tt.size, tt.chunkSize))

			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
			}
			if tt.wantChunks > 0 {
				last, err := base64.StdEncoding.DecodeString(chunks[len(chunks)-1].Data)
				require.NoError(t, err)
				assert.Len(t, last, tt.lastLen)
			}
		})
	}
}

func TestChunkBuffer_Deterministic(t *testing.T) {
	buf := randomBytes(t, 1000)
	assert.Equal(t, ChunkBuffer(buf, 100), ChunkBuffer(buf, 100))
}

func TestCombineChunks_RoundTrip(t *testing.T) {
	buf := randomBytes(t, 1_200_000)
	chunks := ChunkBuffer(buf, DefaultChunkSize)

	got, err := CombineChunks(chunks)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(buf, got))
}

func TestCombineChunks_OutOfOrder(t *testing.T) {
	buf := randomBytes(t, 1000)
	chunks := ChunkBuffer(buf, 300)
	shuffled := []models.MediaChunk{chunks[2], chunks[0], chunks[3], chunks[1]}

	got, err := CombineChunks(shuffled)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
	assert.Equal(t, 2, shuffled[0].Index, "input slice must not be reordered")
}

func TestCombineChunks_Empty(t *testing.T) {
	got, err := CombineChunks(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCombineChunks_Errors(t *testing.T) {
	chunks := ChunkBuffer(randomBytes(t, 1000), 300)

	tests := []struct {
		name    string
		chunks  []models.MediaChunk
		wantErr error
	}{
		{
			name:    "gap",
			chunks:  []models.MediaChunk{chunks[0], chunks[1], chunks[3]},
			wantErr: ErrMissingChunk,
		},
		{
			name:    "missing first",
			chunks:  chunks[1:],
			wantErr: ErrMissingChunk,
		},
		{
			name:    "duplicate",
			chunks:  []models.MediaChunk{chunks[0], chunks[1], chunks[1], chunks[2]},
			wantErr: ErrDuplicateChunk,
		},
		{
			name:    "negative index",
			chunks:  []models.MediaChunk{{Index: -1, Data: chunks[0].Data}, chunks[0]},
			wantErr: ErrInvalidChunk,
		},
		{
			name: "extreme indices",
			chunks: []models.MediaChunk{
				{Index: math.MaxInt, Data: chunks[1].Data},
				chunks[0],
				{Index: math.MinInt, Data: chunks[2].Data},
			},
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "bad base64",
			chunks:  []models.MediaChunk{chunks[0], {Index: 1, Data: "%%%"}},
			wantErr: ErrInvalidChunk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CombineChunks(tt.chunks)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCombineChunksExpect(t *testing.T) {
	buf := randomBytes(t, 1000)
	chunks := ChunkBuffer(buf, 300)

	got, err := CombineChunksExpect(chunks, 4)
	require.NoError(t, err)
	assert.Equal(t, buf, got)

	_, err = CombineChunksExpect(chunks[:3], 4)
	require.ErrorIs(t, err, ErrMissingChunk)

	_, err = CombineChunksExpect(chunks, 3)
	require.ErrorIs(t, err, ErrChunkCount)
}
