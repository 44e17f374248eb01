// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/validators"
	"github.com/MKhiriev/sealed-chat/models"
)

type MediaValidationService struct {
	inner     MediaService
	validator validators.Validator
}

func NewMediaValidationService() MediaServiceWrapper {
	return &MediaValidationService{
		validator: validators.NewMediaValidator(),
	}
}

func (v *MediaValidationService) UploadChunks(ctx context.Context, userID string, req models.UploadChunksRequest) error {
	if userID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UploadChunks(ctx, userID, req)
}

func (v *MediaValidationService) DownloadChunks(ctx context.Context, userID string, set models.ChunkSet) ([]models.MediaChunk, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, set); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DownloadChunks(ctx, userID, set)
}

func (v *MediaValidationService) Wrap(wrapped MediaService) MediaService {
	v.inner = wrapped
	return v
}
