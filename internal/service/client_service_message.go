// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

type clientMessageService struct {
	adapter     adapter.ServerAdapter
	chatCrypto  crypto.ChatCryptoService
	keys        ChatKeyProvider
	idGenerator *utils.UUIDGenerator

	logger *logger.Logger
}

func NewClientMessageService(serverAdapter adapter.ServerAdapter, chatCrypto crypto.ChatCryptoService, keys ChatKeyProvider, logger *logger.Logger) ClientMessageService {
	return &clientMessageService{
		adapter:     serverAdapter,
		chatCrypto:  chatCrypto,
		keys:        keys,
		idGenerator: utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

func (s *clientMessageService) SendMessage(ctx context.Context, me, chatID, text, replyTo string) (models.Message, error) {
	chatKey, err := s.keys.GetChatKey(ctx, chatID, me)
	if err != nil {
		return models.Message{}, err
	}

	encrypted, err := s.chatCrypto.EncryptMessage(text, chatKey)
	if err != nil {
		return models.Message{}, fmt.Errorf("error encrypting message: %w", err)
	}

	msg := models.Message{
		MessageID:  s.idGenerator.Generate(),
		ChatID:     chatID,
		Type:       models.MessageText,
		Ciphertext: encrypted.Ciphertext,
		IV:         encrypted.IV,
		ReplyTo:    replyTo,
	}

	saved, err := s.adapter.SendMessage(ctx, msg)
	if err != nil {
		return models.Message{}, fmt.Errorf("error sending message: %w", mapAdapterError(err))
	}

	return saved, nil
}

func (s *clientMessageService) ListMessages(ctx context.Context, me, chatID string) ([]models.DecryptedMessage, error) {
	messages, err := s.adapter.ListMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", mapAdapterError(err))
	}

	// without a key every text degrades to the placeholder
	chatKey, err := s.keys.GetChatKey(ctx, chatID, me)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "*clientMessageService.ListMessages").Str("chat_id", chatID).Msg("chat key unavailable")
		chatKey = nil
	}

	decrypted := make([]models.DecryptedMessage, 0, len(messages))
	for _, msg := range messages {
		out := models.DecryptedMessage{Message: msg}
		if msg.HasText() {
			text, err := crypto.DecryptMessageOrPlaceholder(s.chatCrypto, msg.Ciphertext, msg.IV, chatKey)
			if err != nil {
				s.logger.Warn().Err(err).Str("chat_id", chatID).Str("message_id", msg.MessageID).Msg("message could not be decrypted")
			}
			out.Text = text
		}
		decrypted = append(decrypted, out)
	}

	return decrypted, nil
}

func (s *clientMessageService) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	if err := s.adapter.DeleteMessage(ctx, chatID, messageID); err != nil {
		return fmt.Errorf("error deleting message: %w", mapAdapterError(err))
	}

	return nil
}

func (s *clientMessageService) ClearChat(ctx context.Context, chatID string) (int64, error) {
	deleted, err := s.adapter.ClearChat(ctx, chatID)
	if err != nil {
		return 0, fmt.Errorf("error clearing chat: %w", mapAdapterError(err))
	}

	return deleted, nil
}

func (s *clientMessageService) HideMessage(ctx context.Context, chatID, messageID string) error {
	if err := s.adapter.HideMessage(ctx, chatID, messageID); err != nil {
		return fmt.Errorf("error hiding message: %w", mapAdapterError(err))
	}

	return nil
}

func (s *clientMessageService) ClearHistory(ctx context.Context, chatID string) error {
	if err := s.adapter.ClearHistory(ctx, chatID); err != nil {
		return fmt.Errorf("error clearing history: %w", mapAdapterError(err))
	}

	return nil
}

func (s *clientMessageService) MarkDelivered(ctx context.Context, me, chatID string, messages []models.DecryptedMessage) (int, error) {
	marked := 0
	for _, msg := range messages {
		if msg.SenderID == me || slices.Contains(msg.DeliveredTo, me) {
			continue
		}
		if err := s.adapter.MarkReceipt(ctx, chatID, msg.MessageID, models.ReceiptDelivered); err != nil {
			return marked, fmt.Errorf("error marking message %s delivered: %w", msg.MessageID, mapAdapterError(err))
		}
		marked++
	}

	return marked, nil
}

func (s *clientMessageService) MarkChatRead(ctx context.Context, me, chatID string) (int, error) {
	messages, err := s.adapter.ListMessages(ctx, chatID)
	if err != nil {
		return 0, fmt.Errorf("error listing messages: %w", mapAdapterError(err))
	}

	marked := 0
	for _, msg := range messages {
		if msg.SenderID == me || slices.Contains(msg.ReadBy, me) {
			continue
		}
		if err = s.adapter.MarkReceipt(ctx, chatID, msg.MessageID, models.ReceiptRead); err != nil {
			return marked, fmt.Errorf("error marking message %s read: %w", msg.MessageID, mapAdapterError(err))
		}
		marked++
	}

	if err = s.adapter.MarkChatRead(ctx, chatID); err != nil {
		return marked, fmt.Errorf("error resetting unread counter: %w", mapAdapterError(err))
	}

	s.logger.Debug().Str("chat_id", chatID).Int("marked", marked).Msg("chat marked read")
	return marked, nil
}
