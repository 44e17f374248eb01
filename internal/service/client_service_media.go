// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/media"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"golang.org/x/sync/errgroup"
)

const (
	defaultUploadConcurrency = 4
	publicMediaPrefix        = "store://"
)

type clientMediaService struct {
	adapter     adapter.ServerAdapter
	chatCrypto  crypto.ChatCryptoService
	keys        ChatKeyProvider
	idGenerator *utils.UUIDGenerator

	chunkSize   int
	concurrency int

	logger *logger.Logger
}

// NewClientMediaService constructs the media pipeline. concurrency bounds
// the number of chunk uploads in flight.
func NewClientMediaService(serverAdapter adapter.ServerAdapter, chatCrypto crypto.ChatCryptoService, keys ChatKeyProvider, concurrency int, logger *logger.Logger) ClientMediaService {
	if concurrency <= 0 {
		concurrency = defaultUploadConcurrency
	}

	return &clientMediaService{
		adapter:     serverAdapter,
		chatCrypto:  chatCrypto,
		keys:        keys,
		idGenerator: utils.NewUUIDGenerator(),
		chunkSize:   media.DefaultChunkSize,
		concurrency: concurrency,
		logger:      logger,
	}
}

// SendMediaMessage uploads the encrypted chunks first and the message
// metadata last, under a message id generated here. A failed chunk upload
// aborts the send without retry; the chunks already stored are collected by
// the server's orphan sweeper.
func (s *clientMediaService) SendMediaMessage(ctx context.Context, me, chatID string, upload MediaUpload, progress ProgressFunc) (models.Message, error) {
	file := upload.File
	if err := media.ValidateFile(int64(len(file.Data)), file.MimeType); err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	msgType, err := media.MessageTypeOf(file.MimeType)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if upload.Thumbnail != nil && msgType != models.MessageVideo {
		return models.Message{}, fmt.Errorf("%w: thumbnails are only supported for videos", ErrInvalidDataProvided)
	}

	chatKey, err := s.keys.GetChatKey(ctx, chatID, me)
	if err != nil {
		return models.Message{}, err
	}

	messageID := s.idGenerator.Generate()

	encrypted, err := s.chatCrypto.EncryptFile(file, chatKey)
	if err != nil {
		return models.Message{}, fmt.Errorf("error encrypting media: %w", err)
	}
	mediaChunks := media.ChunkBuffer(encrypted.Buffer, s.chunkSize)

	info := &models.MediaInfo{
		MimeType:   file.MimeType,
		MediaIV:    encrypted.IV,
		ChunkCount: len(mediaChunks),
	}
	uploads := []models.UploadChunksRequest{{
		Set:    models.ChunkSet{OwnerID: messageID, Kind: models.ChunkMedia, ChatID: chatID},
		Chunks: mediaChunks,
	}}

	if upload.Thumbnail != nil {
		thumb, err := s.chatCrypto.EncryptFile(*upload.Thumbnail, chatKey)
		if err != nil {
			return models.Message{}, fmt.Errorf("error encrypting thumbnail: %w", err)
		}
		thumbChunks := media.ChunkBuffer(thumb.Buffer, s.chunkSize)

		info.ThumbnailAvailable = true
		info.ThumbnailIV = thumb.IV
		info.ThumbnailChunkCount = len(thumbChunks)
		uploads = append(uploads, models.UploadChunksRequest{
			Set:    models.ChunkSet{OwnerID: messageID, Kind: models.ChunkThumbnail, ChatID: chatID},
			Chunks: thumbChunks,
		})
	}

	if err = s.uploadChunks(ctx, uploads, progress); err != nil {
		return models.Message{}, err
	}

	msg := models.Message{
		MessageID: messageID,
		ChatID:    chatID,
		Type:      msgType,
		ReplyTo:   upload.ReplyTo,
		Media:     info,
	}
	if upload.Caption != "" {
		caption, err := s.chatCrypto.EncryptMessage(upload.Caption, chatKey)
		if err != nil {
			return models.Message{}, fmt.Errorf("error encrypting caption: %w", err)
		}
		msg.Ciphertext = caption.Ciphertext
		msg.IV = caption.IV
	}

	saved, err := s.adapter.SendMessage(ctx, msg)
	if err != nil {
		return models.Message{}, fmt.Errorf("error sending media message: %w", mapAdapterError(err))
	}

	s.logger.Info().Str("chat_id", chatID).Str("message_id", messageID).Int("chunks", info.ChunkCount).Msg("media message sent")
	return saved, nil
}

// uploadChunks sends every chunk in its own request, at most s.concurrency
// at a time, and reports progress after each completed chunk. Ordering is
// carried by the chunk index alone.
func (s *clientMediaService) uploadChunks(ctx context.Context, uploads []models.UploadChunksRequest, progress ProgressFunc) error {
	total := 0
	for _, u := range uploads {
		total += len(u.Chunks)
	}
	if total == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		if progress != nil {
			progress(done * 100 / total)
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, u := range uploads {
		for _, chunk := range u.Chunks {
			req := models.UploadChunksRequest{Set: u.Set, Chunks: []models.MediaChunk{chunk}}
			g.Go(func() error {
				if err := s.adapter.UploadChunks(gCtx, req); err != nil {
					return fmt.Errorf("error uploading %s chunk %d: %w", req.Set.Kind, chunk.Index, mapAdapterError(err))
				}
				report()
				return nil
			})
		}
	}

	return g.Wait()
}

func (s *clientMediaService) DownloadMedia(ctx context.Context, me string, msg models.Message) (crypto.File, error) {
	if msg.Media == nil {
		return crypto.File{}, ErrNoMedia
	}

	set := models.ChunkSet{OwnerID: msg.MessageID, Kind: models.ChunkMedia, ChatID: msg.ChatID}
	data, err := s.downloadAndDecrypt(ctx, me, set, msg.Media.ChunkCount, msg.Media.MediaIV)
	if err != nil {
		return crypto.File{}, err
	}

	return crypto.File{Name: msg.MessageID, MimeType: msg.Media.MimeType, Data: data}, nil
}

func (s *clientMediaService) DownloadThumbnail(ctx context.Context, me string, msg models.Message) ([]byte, error) {
	if msg.Media == nil || !msg.Media.ThumbnailAvailable {
		return nil, ErrNoThumbnail
	}

	set := models.ChunkSet{OwnerID: msg.MessageID, Kind: models.ChunkThumbnail, ChatID: msg.ChatID}
	return s.downloadAndDecrypt(ctx, me, set, msg.Media.ThumbnailChunkCount, msg.Media.ThumbnailIV)
}

func (s *clientMediaService) downloadAndDecrypt(ctx context.Context, me string, set models.ChunkSet, chunkCount int, iv string) ([]byte, error) {
	chatKey, err := s.keys.GetChatKey(ctx, set.ChatID, me)
	if err != nil {
		return nil, err
	}

	chunks, err := s.adapter.DownloadChunks(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("error downloading %s chunks: %w", set.Kind, mapAdapterError(err))
	}

	buffer, err := media.CombineChunksExpect(chunks, chunkCount)
	if err != nil {
		return nil, fmt.Errorf("error reassembling %s: %w", set.Kind, err)
	}

	plaintext, err := s.chatCrypto.DecryptBuffer(buffer, iv, chatKey)
	if err != nil {
		return nil, fmt.Errorf("error decrypting %s: %w", set.Kind, err)
	}

	return plaintext, nil
}

func (s *clientMediaService) UploadPublic(ctx context.Context, file crypto.File, progress ProgressFunc) (string, error) {
	if err := media.ValidateFile(int64(len(file.Data)), file.MimeType); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	fileID := s.idGenerator.Generate()
	upload := models.UploadChunksRequest{
		Set:    models.ChunkSet{OwnerID: fileID, Kind: models.ChunkPublic},
		Chunks: media.ChunkBuffer(file.Data, s.chunkSize),
	}
	if err := s.uploadChunks(ctx, []models.UploadChunksRequest{upload}, progress); err != nil {
		return "", err
	}

	return models.PublicMediaRef(fileID), nil
}

func (s *clientMediaService) DownloadPublic(ctx context.Context, ref string) ([]byte, error) {
	fileID, ok := strings.CutPrefix(ref, publicMediaPrefix)
	if !ok || fileID == "" || strings.Contains(fileID, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMediaRef, ref)
	}

	chunks, err := s.adapter.DownloadChunks(ctx, models.ChunkSet{OwnerID: fileID, Kind: models.ChunkPublic})
	if err != nil {
		return nil, fmt.Errorf("error downloading public media: %w", mapAdapterError(err))
	}

	data, err := media.CombineChunks(chunks)
	if err != nil {
		return nil, fmt.Errorf("error reassembling public media: %w", err)
	}

	return data, nil
}
