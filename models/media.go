// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// MediaChunk is one fixed-size slice of an (encrypted) media blob. Data is
// the standard base64 encoding of the slice bytes; the blob is the
// concatenation of all chunks ordered by Index.
type MediaChunk struct {
	Index int    `json:"index"`
	Data  string `json:"data"`
}

// ChunkKind selects which chunk set of an owner a chunk belongs to.
type ChunkKind string

const (
	// ChunkMedia is the encrypted media of a message.
	ChunkMedia ChunkKind = "media"
	// ChunkThumbnail is the encrypted thumbnail of a video message.
	ChunkThumbnail ChunkKind = "thumbnail"
	// ChunkPublic is unencrypted public media such as avatars.
	ChunkPublic ChunkKind = "public"
)

// ParseChunkKind validates s as a [ChunkKind].
func ParseChunkKind(s string) (ChunkKind, error) {
	switch k := ChunkKind(s); k {
	case ChunkMedia, ChunkThumbnail, ChunkPublic:
		return k, nil
	default:
		return "", fmt.Errorf("unknown chunk kind %q", s)
	}
}

// ChunkSet identifies the chunks of one owner and kind. OwnerID is a message
// id for media and thumbnails and a file id for public media. ChatID is
// empty for public media.
type ChunkSet struct {
	OwnerID string    `json:"owner_id"`
	Kind    ChunkKind `json:"kind"`
	ChatID  string    `json:"chat_id,omitempty"`
}

// UploadChunksRequest stores chunks of a single chunk set. UploadedBy is set
// by the server from the authenticated user; only that user may write more
// chunks into the set later.
type UploadChunksRequest struct {
	Set        ChunkSet     `json:"set"`
	Chunks     []MediaChunk `json:"chunks"`
	UploadedBy string       `json:"-"`
}

// PublicMediaRef builds the reference string returned for public uploads.
func PublicMediaRef(fileID string) string {
	return "store://" + fileID
}
