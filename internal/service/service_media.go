// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
)

type mediaService struct {
	chatRepository  store.ChatRepository
	chunkRepository store.ChunkRepository

	logger *logger.Logger
}

func NewMediaService(chatRepository store.ChatRepository, chunkRepository store.ChunkRepository, logger *logger.Logger) MediaService {
	return &mediaService{
		chatRepository:  chatRepository,
		chunkRepository: chunkRepository,
		logger:          logger,
	}
}

// UploadChunks stores chunks of one set. Uploads of the same set may be
// split over many requests and may arrive in any order, but always from the
// user that uploaded the first chunk.
func (s *mediaService) UploadChunks(ctx context.Context, userID string, req models.UploadChunksRequest) error {
	log := logger.FromContext(ctx)

	if err := s.checkAccess(ctx, userID, req.Set); err != nil {
		return err
	}
	req.UploadedBy = userID

	if err := s.chunkRepository.SaveChunks(ctx, req); err != nil {
		log.Err(err).Str("func", "*mediaService.UploadChunks").
			Str("owner_id", req.Set.OwnerID).
			Str("kind", string(req.Set.Kind)).
			Msg("error saving chunks")
		return fmt.Errorf("error saving chunks: %w", err)
	}

	log.Debug().Str("owner_id", req.Set.OwnerID).Str("kind", string(req.Set.Kind)).Int("chunks", len(req.Chunks)).Msg("chunks stored")
	return nil
}

// DownloadChunks returns the chunks of a set ordered by index, or
// ErrMediaNotFound if nothing was uploaded under it.
func (s *mediaService) DownloadChunks(ctx context.Context, userID string, set models.ChunkSet) ([]models.MediaChunk, error) {
	if err := s.checkAccess(ctx, userID, set); err != nil {
		return nil, err
	}

	chunks, err := s.chunkRepository.GetChunks(ctx, set)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mediaService.DownloadChunks").Str("owner_id", set.OwnerID).Msg("error loading chunks")
		return nil, fmt.Errorf("error loading chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, ErrMediaNotFound
	}

	return chunks, nil
}

func (s *mediaService) checkAccess(ctx context.Context, userID string, set models.ChunkSet) error {
	if set.Kind == models.ChunkPublic {
		return nil
	}

	_, err := requireMember(ctx, s.chatRepository, set.ChatID, userID)
	return err
}
