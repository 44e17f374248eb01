// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/MKhiriev/sealed-chat/internal/media"
	"github.com/MKhiriev/sealed-chat/models"
)

// Field names understood by [MediaValidator].
const (
	FieldOwnerID = "owner_id"
	FieldKind    = "kind"
	FieldChunks  = "chunks"
)

// MaxChunksPerRequest bounds a single upload request.
const MaxChunksPerRequest = 8

// maxEncodedChunk is the base64 length of a full chunk.
var maxEncodedChunk = base64.StdEncoding.EncodedLen(media.DefaultChunkSize)

// MediaValidator validates chunk sets and chunk uploads.
type MediaValidator struct{}

// NewMediaValidator constructs a [MediaValidator].
func NewMediaValidator() Validator {
	return &MediaValidator{}
}

func (v *MediaValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ChunkSet:
		return v.validateChunkSet(ctx, value, fields...)
	case *models.ChunkSet:
		return v.validateChunkSet(ctx, *value, fields...)

	case models.UploadChunksRequest:
		return v.validateUpload(ctx, value, fields...)
	case *models.UploadChunksRequest:
		return v.validateUpload(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *MediaValidator) validateChunkSet(ctx context.Context, set models.ChunkSet, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldKind, FieldChatID}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if set.OwnerID == "" || strings.Contains(set.OwnerID, "/") {
				return ErrInvalidOwnerID
			}
		case FieldKind:
			if _, err := models.ParseChunkKind(string(set.Kind)); err != nil {
				return ErrInvalidChunkKind
			}
		case FieldChatID:
			// public media is not bound to a chat
			if (set.Kind == models.ChunkPublic) != (set.ChatID == "") {
				return ErrInvalidChatID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MediaValidator) validateUpload(ctx context.Context, req models.UploadChunksRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldKind, FieldChatID, FieldChunks}
	}

	var setFields []string
	for _, f := range fields {
		if f == FieldChunks {
			if err := validateChunks(req.Chunks); err != nil {
				return err
			}
			continue
		}
		setFields = append(setFields, f)
	}

	if len(setFields) == 0 {
		return nil
	}
	return v.validateChunkSet(ctx, req.Set, setFields...)
}

func validateChunks(chunks []models.MediaChunk) error {
	if len(chunks) == 0 {
		return ErrNoChunks
	}
	if len(chunks) > MaxChunksPerRequest {
		return ErrTooManyChunks
	}

	seen := make(map[int]struct{}, len(chunks))
	for _, c := range chunks {
		if c.Index < 0 || c.Data == "" || len(c.Data) > maxEncodedChunk {
			return ErrInvalidChunk
		}
		if _, ok := seen[c.Index]; ok {
			return ErrInvalidChunk
		}
		seen[c.Index] = struct{}{}
	}

	return nil
}
