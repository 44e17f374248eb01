// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/media"
	"github.com/MKhiriev/sealed-chat/internal/mock"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testChunkSize = 64

// chunkStore keeps uploaded chunks the way the server does, keyed by set.
type chunkStore struct {
	mu       sync.Mutex
	sets     map[models.ChunkSet][]models.MediaChunk
	requests int
}

func newChunkStore() *chunkStore {
	return &chunkStore{sets: make(map[models.ChunkSet][]models.MediaChunk)}
}

func (s *chunkStore) upload(_ context.Context, req models.UploadChunksRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	s.sets[req.Set] = append(s.sets[req.Set], req.Chunks...)
	return nil
}

func (s *chunkStore) download(_ context.Context, set models.ChunkSet) ([]models.MediaChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunks, ok := s.sets[set]
	if !ok {
		return nil, adapterError(adapter.ErrNotFound, app.MsgMediaNotFound)
	}
	return slices.Clone(chunks), nil
}

func newTestClientMediaService(t *testing.T) (ClientMediaService, *mock.MockServerAdapter, *chunkStore) {
	t.Helper()
	server := mock.NewMockServerAdapter(gomock.NewController(t))

	key, err := newTestChatCrypto().GenerateChatKey()
	require.NoError(t, err)
	cache := NewKeyCache()
	cache.Put(groupID, alice, key)
	cache.Put(groupID, bob, key)
	keys := NewClientChatService(server, newTestChatCrypto(), cache, logger.Nop())

	svc := NewClientMediaService(server, newTestChatCrypto(), keys, 3, logger.Nop())
	svc.(*clientMediaService).chunkSize = testChunkSize

	chunks := newChunkStore()
	server.EXPECT().UploadChunks(gomock.Any(), gomock.Any()).DoAndReturn(chunks.upload).AnyTimes()
	server.EXPECT().DownloadChunks(gomock.Any(), gomock.Any()).DoAndReturn(chunks.download).AnyTimes()

	return svc, server, chunks
}

func TestClientMediaService_SendAndDownloadImage(t *testing.T) {
	svc, server, chunks := newTestClientMediaService(t)
	ctx := context.Background()
	data := bytes.Repeat([]byte("0123456789"), 50)

	var sent models.Message
	server.EXPECT().SendMessage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.Message) (models.Message, error) {
			// metadata goes last, after every chunk
			chunks.mu.Lock()
			stored := len(chunks.sets[models.ChunkSet{OwnerID: msg.MessageID, Kind: models.ChunkMedia, ChatID: groupID}])
			chunks.mu.Unlock()
			assert.Equal(t, msg.Media.ChunkCount, stored)

			sent = msg
			return msg, nil
		},
	)

	var (
		mu      sync.Mutex
		reports []int
	)
	progress := func(p int) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, p)
	}

	_, err := svc.SendMediaMessage(ctx, alice, groupID, MediaUpload{
		File:    crypto.File{Name: "pic.png", MimeType: "image/png", Data: data},
		Caption: "look",
	}, progress)
	require.NoError(t, err)

	require.NotNil(t, sent.Media)
	assert.Equal(t, models.MessageImage, sent.Type)
	assert.Equal(t, media.ChunkCount(len(data)+16, testChunkSize), sent.Media.ChunkCount)
	assert.False(t, sent.Media.ThumbnailAvailable)
	assert.True(t, sent.HasText())
	assert.Equal(t, sent.Media.ChunkCount, chunks.requests, "one chunk per request")

	require.Len(t, reports, sent.Media.ChunkCount)
	assert.True(t, slices.IsSorted(reports))
	assert.Equal(t, 100, reports[len(reports)-1])

	for _, c := range chunks.sets[models.ChunkSet{OwnerID: sent.MessageID, Kind: models.ChunkMedia, ChatID: groupID}] {
		assert.NotContains(t, c.Data, "MDEyMzQ1Njc4OQ", "chunks hold ciphertext only")
	}

	file, err := svc.DownloadMedia(ctx, bob, sent)
	require.NoError(t, err)
	assert.Equal(t, data, file.Data)
	assert.Equal(t, "image/png", file.MimeType)

	_, err = svc.DownloadThumbnail(ctx, bob, sent)
	assert.ErrorIs(t, err, ErrNoThumbnail)
}

func TestClientMediaService_VideoWithThumbnail(t *testing.T) {
	svc, server, _ := newTestClientMediaService(t)
	ctx := context.Background()
	thumb := []byte("tiny thumbnail")

	var sent models.Message
	server.EXPECT().SendMessage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.Message) (models.Message, error) {
			sent = msg
			return msg, nil
		},
	)

	_, err := svc.SendMediaMessage(ctx, alice, groupID, MediaUpload{
		File:      crypto.File{MimeType: "video/mp4", Data: bytes.Repeat([]byte{7}, 300)},
		Thumbnail: &crypto.File{MimeType: "image/jpeg", Data: thumb},
	}, nil)
	require.NoError(t, err)

	require.True(t, sent.Media.ThumbnailAvailable)
	assert.Positive(t, sent.Media.ThumbnailChunkCount)
	assert.NotEmpty(t, sent.Media.ThumbnailIV)
	assert.False(t, sent.HasText())

	got, err := svc.DownloadThumbnail(ctx, bob, sent)
	require.NoError(t, err)
	assert.Equal(t, thumb, got)
}

func TestClientMediaService_SendMediaMessage_Rejected(t *testing.T) {
	svc, _, chunks := newTestClientMediaService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		upload  MediaUpload
		wantErr error
	}{
		{
			name:    "empty file",
			upload:  MediaUpload{File: crypto.File{MimeType: "image/png"}},
			wantErr: media.ErrEmptyFile,
		},
		{
			name:    "unsupported type",
			upload:  MediaUpload{File: crypto.File{MimeType: "application/pdf", Data: []byte("x")}},
			wantErr: media.ErrUnsupportedType,
		},
		{
			name: "thumbnail on an image",
			upload: MediaUpload{
				File:      crypto.File{MimeType: "image/png", Data: []byte("x")},
				Thumbnail: &crypto.File{MimeType: "image/png", Data: []byte("y")},
			},
			wantErr: ErrInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendMediaMessage(ctx, alice, groupID, tt.upload, nil)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, chunks.requests)
}

func TestClientMediaService_FailedChunkAbortsSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)

	key, err := newTestChatCrypto().GenerateChatKey()
	require.NoError(t, err)
	cache := NewKeyCache()
	cache.Put(groupID, alice, key)
	keys := NewClientChatService(server, newTestChatCrypto(), cache, logger.Nop())
	svc := NewClientMediaService(server, newTestChatCrypto(), keys, 2, logger.Nop())
	svc.(*clientMediaService).chunkSize = testChunkSize

	server.EXPECT().UploadChunks(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UploadChunksRequest) error {
			if req.Chunks[0].Index == 2 {
				return adapterError(adapter.ErrForbidden, app.MsgNotChatMember)
			}
			return nil
		},
	).AnyTimes()

	_, err = svc.SendMediaMessage(context.Background(), alice, groupID, MediaUpload{
		File: crypto.File{MimeType: "image/gif", Data: bytes.Repeat([]byte{1}, 500)},
	}, nil)

	assert.ErrorIs(t, err, ErrNotChatMember)
}

func TestClientMediaService_DownloadMedia_MissingChunk(t *testing.T) {
	svc, server, chunks := newTestClientMediaService(t)
	ctx := context.Background()

	var sent models.Message
	server.EXPECT().SendMessage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.Message) (models.Message, error) {
			sent = msg
			return msg, nil
		},
	)

	_, err := svc.SendMediaMessage(ctx, alice, groupID, MediaUpload{
		File: crypto.File{MimeType: "image/png", Data: bytes.Repeat([]byte{9}, 400)},
	}, nil)
	require.NoError(t, err)

	set := models.ChunkSet{OwnerID: sent.MessageID, Kind: models.ChunkMedia, ChatID: groupID}
	chunks.mu.Lock()
	chunks.sets[set] = slices.DeleteFunc(chunks.sets[set], func(c models.MediaChunk) bool { return c.Index == 1 })
	chunks.mu.Unlock()

	_, err = svc.DownloadMedia(ctx, bob, sent)
	assert.Error(t, err)

	_, err = svc.DownloadMedia(ctx, bob, models.Message{MessageID: "m-1", ChatID: groupID})
	assert.ErrorIs(t, err, ErrNoMedia)
}

func TestClientMediaService_PublicRoundTrip(t *testing.T) {
	svc, _, chunks := newTestClientMediaService(t)
	ctx := context.Background()
	avatar := bytes.Repeat([]byte("avatar"), 40)

	ref, err := svc.UploadPublic(ctx, crypto.File{MimeType: "image/png", Data: avatar}, nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "store://"))

	fileID := strings.TrimPrefix(ref, "store://")
	stored := chunks.sets[models.ChunkSet{OwnerID: fileID, Kind: models.ChunkPublic}]
	assert.Len(t, stored, media.ChunkCount(len(avatar), testChunkSize))

	got, err := svc.DownloadPublic(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, avatar, got)
}

func TestClientMediaService_DownloadPublic_BadRef(t *testing.T) {
	svc, _, _ := newTestClientMediaService(t)

	for _, ref := range []string{"", "store://", "http://host/file", "store://a/b"} {
		_, err := svc.DownloadPublic(context.Background(), ref)
		assert.ErrorIs(t, err, ErrInvalidMediaRef, fmt.Sprintf("ref %q", ref))
	}

	_, err := svc.DownloadPublic(context.Background(), "store://missing")
	assert.ErrorIs(t, err, ErrMediaNotFound)
}
