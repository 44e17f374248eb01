// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

type messageService struct {
	chatRepository    store.ChatRepository
	messageRepository store.MessageRepository
	idGenerator       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewMessageService(chatRepository store.ChatRepository, messageRepository store.MessageRepository, logger *logger.Logger) MessageService {
	return &messageService{
		chatRepository:    chatRepository,
		messageRepository: messageRepository,
		idGenerator:       utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

// SendMessage stores an already encrypted message sent by userID. The sender
// and the creation time are always set by the server. A text message without
// an id gets a UUIDv7; media messages arrive with the id their chunks were
// uploaded under.
func (s *messageService) SendMessage(ctx context.Context, userID string, msg models.Message) (models.Message, error) {
	log := logger.FromContext(ctx)

	if _, err := requireMember(ctx, s.chatRepository, msg.ChatID, userID); err != nil {
		return models.Message{}, err
	}

	if msg.MessageID == "" {
		msg.MessageID = s.idGenerator.Generate()
	}
	msg.SenderID = userID
	msg.CreatedAt = time.Now().UTC()

	saved, err := s.messageRepository.SaveMessage(ctx, msg)
	if err != nil {
		log.Err(err).Str("func", "*messageService.SendMessage").Str("chat_id", msg.ChatID).Msg("error saving message")
		return models.Message{}, fmt.Errorf("error saving message: %w", err)
	}

	log.Debug().Str("chat_id", saved.ChatID).Str("message_id", saved.MessageID).Str("type", string(saved.Type)).Msg("message stored")
	return saved, nil
}

// ListMessages returns the messages of a chat that userID has neither
// deleted for themself nor cleared.
func (s *messageService) ListMessages(ctx context.Context, userID, chatID string) ([]models.Message, error) {
	chat, err := requireMember(ctx, s.chatRepository, chatID, userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepository.ListMessages(ctx, chatID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageService.ListMessages").Str("chat_id", chatID).Msg("error listing messages")
		return nil, fmt.Errorf("error listing messages: %w", err)
	}

	clearedAt := chat.ClearedAt[userID]
	visible := make([]models.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.VisibleTo(userID, clearedAt) {
			msg.HiddenFor = nil
			visible = append(visible, msg)
		}
	}

	return visible, nil
}

// DeleteMessage deletes a message and its media of a chat userID belongs to.
func (s *messageService) DeleteMessage(ctx context.Context, userID, chatID, messageID string) error {
	if _, err := requireMember(ctx, s.chatRepository, chatID, userID); err != nil {
		return err
	}

	if err := s.messageRepository.DeleteMessage(ctx, chatID, messageID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageService.DeleteMessage").Str("message_id", messageID).Msg("error deleting message")
		return fmt.Errorf("error deleting message: %w", err)
	}

	return nil
}

// ClearChat deletes every message of a chat. Any member may clear a direct
// chat; groups are cleared by admins only.
func (s *messageService) ClearChat(ctx context.Context, userID, chatID string) (int64, error) {
	log := logger.FromContext(ctx)

	chat, err := requireMember(ctx, s.chatRepository, chatID, userID)
	if err != nil {
		return 0, err
	}
	if chat.IsGroup && !chat.IsAdmin(userID) {
		return 0, ErrNotChatAdmin
	}

	deleted, err := s.messageRepository.ClearChat(ctx, chatID)
	if err != nil {
		log.Err(err).Str("func", "*messageService.ClearChat").Str("chat_id", chatID).Msg("error clearing chat")
		return 0, fmt.Errorf("error clearing chat: %w", err)
	}

	log.Info().Str("chat_id", chatID).Int64("deleted", deleted).Msg("chat cleared")
	return deleted, nil
}

// ClearHistory hides every current message of a chat from userID only.
// Other members keep their history.
func (s *messageService) ClearHistory(ctx context.Context, userID, chatID string) error {
	if _, err := requireMember(ctx, s.chatRepository, chatID, userID); err != nil {
		return err
	}

	if err := s.chatRepository.ClearHistory(ctx, chatID, userID, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageService.ClearHistory").Str("chat_id", chatID).Msg("error clearing history")
		return fmt.Errorf("error clearing history: %w", err)
	}

	return nil
}

// HideMessage deletes a message for userID only.
func (s *messageService) HideMessage(ctx context.Context, userID, chatID, messageID string) error {
	if _, err := requireMember(ctx, s.chatRepository, chatID, userID); err != nil {
		return err
	}

	if err := s.messageRepository.HideMessage(ctx, chatID, messageID, userID, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageService.HideMessage").Str("message_id", messageID).Msg("error hiding message")
		return fmt.Errorf("error hiding message: %w", err)
	}

	return nil
}

// MarkReceipt records that userID received or read a message.
func (s *messageService) MarkReceipt(ctx context.Context, userID, chatID, messageID string, kind models.ReceiptKind) error {
	if _, err := requireMember(ctx, s.chatRepository, chatID, userID); err != nil {
		return err
	}

	if err := s.messageRepository.MarkReceipt(ctx, chatID, messageID, userID, kind, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*messageService.MarkReceipt").Str("message_id", messageID).Msg("error saving receipt")
		return fmt.Errorf("error saving receipt: %w", err)
	}

	return nil
}
