// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package media

import "errors"

var (
	ErrMissingChunk   = errors.New("missing chunk")
	ErrDuplicateChunk = errors.New("duplicate chunk")
	ErrInvalidChunk   = errors.New("invalid chunk")
	ErrChunkCount     = errors.New("unexpected chunk count")

	ErrFileTooLarge    = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty")
)
