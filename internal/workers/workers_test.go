// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/mock"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type countingWorker struct {
	runs atomic.Int32
}

func (w *countingWorker) Run(ctx context.Context) {
	w.runs.Add(1)
	<-ctx.Done()
}

func TestWorkers_RunAllUntilCancelled(t *testing.T) {
	w1, w2 := &countingWorker{}, &countingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}

func TestWorkers_RunEmpty(t *testing.T) {
	(&Workers{}).Run(context.Background())
}

func newTestSweeper(t *testing.T) (*OrphanChunkSweeper, *mock.MockChunkRepository, time.Time) {
	t.Helper()
	chunks := mock.NewMockChunkRepository(gomock.NewController(t))
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	s := NewOrphanChunkSweeper(chunks, time.Hour, time.Minute, logger.Nop())
	s.now = func() time.Time { return now }
	return s, chunks, now
}

func orphanSets(n int) []models.ChunkSet {
	sets := make([]models.ChunkSet, n)
	for i := range sets {
		sets[i] = models.ChunkSet{OwnerID: fmt.Sprintf("m%d", i), Kind: models.ChunkMedia, ChatID: "c1"}
	}
	return sets
}

func TestSweep_DeletesOrphansOlderThanTTL(t *testing.T) {
	s, chunks, now := newTestSweeper(t)

	sets := orphanSets(2)
	chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), now.Add(-time.Hour), sweepBatch).Return(sets, nil)
	for _, set := range sets {
		chunks.EXPECT().DeleteChunks(gomock.Any(), set).Return(nil)
	}

	deleted, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestSweep_PagesThroughFullBatches(t *testing.T) {
	s, chunks, _ := newTestSweeper(t)

	gomock.InOrder(
		chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), gomock.Any(), sweepBatch).Return(orphanSets(sweepBatch), nil),
		chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), gomock.Any(), sweepBatch).Return(orphanSets(3), nil),
	)
	chunks.EXPECT().DeleteChunks(gomock.Any(), gomock.Any()).Return(nil).Times(sweepBatch + 3)

	deleted, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, sweepBatch+3, deleted)
}

func TestSweep_SkipsFailedDeletes(t *testing.T) {
	s, chunks, _ := newTestSweeper(t)

	sets := orphanSets(3)
	chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), gomock.Any(), gomock.Any()).Return(sets, nil)
	chunks.EXPECT().DeleteChunks(gomock.Any(), sets[0]).Return(nil)
	chunks.EXPECT().DeleteChunks(gomock.Any(), sets[1]).Return(errors.New("locked"))
	chunks.EXPECT().DeleteChunks(gomock.Any(), sets[2]).Return(nil)

	deleted, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestSweep_StopsWhenNothingCanBeDeleted(t *testing.T) {
	s, chunks, _ := newTestSweeper(t)

	chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), gomock.Any(), gomock.Any()).Return(orphanSets(sweepBatch), nil).Times(1)
	chunks.EXPECT().DeleteChunks(gomock.Any(), gomock.Any()).Return(errors.New("read only")).Times(sweepBatch)

	deleted, err := s.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSweep_ListFails(t *testing.T) {
	s, chunks, _ := newTestSweeper(t)
	chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := s.Sweep(context.Background())

	assert.Error(t, err)
}

func TestOrphanChunkSweeper_RunSweepsOnTick(t *testing.T) {
	chunks := mock.NewMockChunkRepository(gomock.NewController(t))
	s := NewOrphanChunkSweeper(chunks, time.Hour, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	chunks.EXPECT().ListOrphanChunkSets(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time, int) ([]models.ChunkSet, error) {
			if calls.Add(1) == 2 {
				cancel()
			}
			return nil, nil
		}).MinTimes(2)

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
