// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

// chunkRepository is the SQL implementation of [ChunkRepository]. Chunks of
// all kinds share the "media_chunks" table.
type chunkRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChunkRepository constructs a [ChunkRepository] backed by db.
func NewChunkRepository(db *DB, logger *logger.Logger) ChunkRepository {
	logger.Debug().Msg("creating chunk repository")
	return &chunkRepository{
		db:     db,
		logger: logger,
	}
}

// SaveChunks upserts every chunk of the request in one transaction.
// Re-uploading a chunk replaces its data if the same user uploaded it.
func (r *chunkRepository) SaveChunks(ctx context.Context, req models.UploadChunksRequest) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		for _, chunk := range req.Chunks {
			affected, err := r.db.exec(ctx, tx, r.db.upsertChunkQuery(req, chunk, now))
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrChunkSetConflict
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*chunkRepository.SaveChunks").
			Str("owner_id", req.Set.OwnerID).
			Str("kind", string(req.Set.Kind)).
			Msg("error saving chunks")
		return err
	}

	return nil
}

// GetChunks returns the chunks of set ordered by index.
func (r *chunkRepository) GetChunks(ctx context.Context, set models.ChunkSet) ([]models.MediaChunk, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db, r.db.selectChunksQuery(set))
	if err != nil {
		log.Err(err).Str("func", "*chunkRepository.GetChunks").Str("owner_id", set.OwnerID).Msg("error querying chunks")
		return nil, err
	}
	defer rows.Close()

	chunks := make([]models.MediaChunk, 0)
	for rows.Next() {
		var chunk models.MediaChunk
		if err = rows.Scan(&chunk.Index, &chunk.Data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		chunks = append(chunks, chunk)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return chunks, nil
}

// DeleteChunks removes every chunk of set.
func (r *chunkRepository) DeleteChunks(ctx context.Context, set models.ChunkSet) error {
	if _, err := r.db.exec(ctx, r.db, r.db.deleteChunksQuery(set)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chunkRepository.DeleteChunks").Str("owner_id", set.OwnerID).Msg("error deleting chunks")
		return err
	}

	return nil
}

// ListOrphanChunkSets returns up to limit sets left behind by uploads whose
// message was never sent.
func (r *chunkRepository) ListOrphanChunkSets(ctx context.Context, olderThan time.Time, limit int) ([]models.ChunkSet, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db, r.db.selectOrphanChunkSetsQuery(olderThan.UTC(), limit))
	if err != nil {
		log.Err(err).Str("func", "*chunkRepository.ListOrphanChunkSets").Msg("error querying orphan chunks")
		return nil, err
	}
	defer rows.Close()

	sets := make([]models.ChunkSet, 0)
	for rows.Next() {
		var (
			set  models.ChunkSet
			kind string
		)
		if err = rows.Scan(&set.OwnerID, &kind, &set.ChatID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		set.Kind = models.ChunkKind(kind)
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sets, nil
}
