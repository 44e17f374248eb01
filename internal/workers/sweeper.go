// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
)

// sweepBatch bounds the number of sets removed per repository round trip.
const sweepBatch = 100

// OrphanChunkSweeper deletes media and thumbnail chunk sets that no message
// references. Such sets are left behind when a media upload fails after some
// chunks were stored, since the message metadata is only sent last.
type OrphanChunkSweeper struct {
	chunks   store.ChunkRepository
	ttl      time.Duration
	interval time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewOrphanChunkSweeper sweeps every interval; sets younger than ttl are
// kept, since their upload may still be in progress.
func NewOrphanChunkSweeper(chunks store.ChunkRepository, ttl, interval time.Duration, logger *logger.Logger) *OrphanChunkSweeper {
	return &OrphanChunkSweeper{
		chunks:   chunks,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *OrphanChunkSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Dur("ttl", s.ttl).Msg("orphan chunk sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("orphan chunk sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Err(err).Str("func", "*OrphanChunkSweeper.Run").Msg("sweeping orphan chunks failed")
			}
		}
	}
}

// Sweep removes every orphan set older than the ttl and returns how many
// were removed. A set that fails to delete is logged and skipped.
func (s *OrphanChunkSweeper) Sweep(ctx context.Context) (int, error) {
	olderThan := s.now().Add(-s.ttl)
	deleted := 0

	for {
		sets, err := s.chunks.ListOrphanChunkSets(ctx, olderThan, sweepBatch)
		if err != nil {
			return deleted, err
		}

		removed := 0
		for _, set := range sets {
			if err = s.chunks.DeleteChunks(ctx, set); err != nil {
				s.logger.Err(err).
					Str("func", "*OrphanChunkSweeper.Sweep").
					Str("owner_id", set.OwnerID).
					Str("kind", string(set.Kind)).
					Msg("deleting orphan chunk set failed")
				continue
			}
			removed++
		}
		deleted += removed

		// a short page is the last one; a page with no progress would repeat
		if len(sets) < sweepBatch || removed == 0 {
			break
		}
	}

	if deleted > 0 {
		s.logger.Info().Int("deleted", deleted).Msg("orphan chunk sets removed")
	}

	return deleted, nil
}
