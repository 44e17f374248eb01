// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
)

type chatService struct {
	userRepository store.UserRepository
	chatRepository store.ChatRepository

	logger *logger.Logger
}

// NewChatService constructs a ChatService on top of the user and chat
// repositories. Requests are expected to be validated by the wrapper
// returned from NewChatValidationService.
func NewChatService(userRepository store.UserRepository, chatRepository store.ChatRepository, logger *logger.Logger) ChatService {
	return &chatService{
		userRepository: userRepository,
		chatRepository: chatRepository,
		logger:         logger,
	}
}

// CreateChat stores a chat created by userID together with the wrapped key
// of every member.
//
// Creating a direct chat that already exists is not an error: the existing
// chat is returned and the submitted keys are discarded. A group always
// starts with its creator as the only admin.
func (s *chatService) CreateChat(ctx context.Context, userID string, req models.CreateChatRequest) (models.Chat, error) {
	log := logger.FromContext(ctx)

	chat := req.Chat
	chat.CreatedBy = userID
	chat.CreatedAt = time.Now().UTC()
	chat.LastMessageAt = nil
	chat.Admins = nil
	if chat.IsGroup {
		chat.Admins = []string{userID}
	}

	for _, memberID := range chat.Members {
		if _, err := s.userRepository.FindUserByID(ctx, memberID); err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Warn().Str("chat_id", chat.ChatID).Str("member", memberID).Msg("unknown chat member")
				return models.Chat{}, fmt.Errorf("%w: %s", ErrUnknownMember, memberID)
			}
			log.Err(err).Str("func", "*chatService.CreateChat").Msg("error looking up chat member")
			return models.Chat{}, fmt.Errorf("error looking up chat member: %w", err)
		}
	}

	keys := make([]models.WrappedKey, len(req.Keys))
	for i, key := range req.Keys {
		key.ChatID = chat.ChatID
		keys[i] = key
	}

	created, err := s.chatRepository.CreateChat(ctx, models.CreateChatRequest{Chat: chat, Keys: keys})
	if errors.Is(err, store.ErrChatAlreadyExists) && !chat.IsGroup {
		log.Debug().Str("chat_id", chat.ChatID).Msg("direct chat already exists")
		return requireMember(ctx, s.chatRepository, chat.ChatID, userID)
	}
	if err != nil {
		log.Err(err).Str("func", "*chatService.CreateChat").Str("chat_id", chat.ChatID).Msg("error creating chat")
		return models.Chat{}, fmt.Errorf("error creating chat: %w", err)
	}

	log.Info().Str("chat_id", created.ChatID).Bool("is_group", created.IsGroup).Int("members", len(created.Members)).Msg("chat created")
	return created, nil
}

func (s *chatService) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	chats, err := s.chatRepository.ListChats(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.ListChats").Msg("error listing chats")
		return nil, fmt.Errorf("error listing chats: %w", err)
	}

	return chats, nil
}

func (s *chatService) GetChat(ctx context.Context, userID, chatID string) (models.Chat, error) {
	return requireMember(ctx, s.chatRepository, chatID, userID)
}

// GetWrappedKey returns the caller's own wrapped key, and only while the
// caller is a member.
func (s *chatService) GetWrappedKey(ctx context.Context, userID, chatID string) (models.WrappedKey, error) {
	if _, err := requireMember(ctx, s.chatRepository, chatID, userID); err != nil {
		return models.WrappedKey{}, err
	}

	key, err := s.chatRepository.GetWrappedKey(ctx, chatID, userID)
	if err != nil {
		return models.WrappedKey{}, fmt.Errorf("error getting wrapped key: %w", err)
	}

	return key, nil
}

// AddMember adds req.UserID to a group. Only admins may add members.
func (s *chatService) AddMember(ctx context.Context, userID string, req models.AddMemberRequest) error {
	log := logger.FromContext(ctx)

	chat, err := requireGroupAdmin(ctx, s.chatRepository, req.ChatID, userID)
	if err != nil {
		return err
	}
	if chat.HasMember(req.UserID) {
		return store.ErrMemberAlreadyExists
	}

	if _, err = s.userRepository.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return fmt.Errorf("%w: %s", ErrUnknownMember, req.UserID)
		}
		return fmt.Errorf("error looking up new member: %w", err)
	}

	req.Key.ChatID = req.ChatID
	req.Key.UserID = req.UserID
	if err = s.chatRepository.AddMember(ctx, req); err != nil {
		log.Err(err).Str("func", "*chatService.AddMember").Str("chat_id", req.ChatID).Msg("error adding member")
		return fmt.Errorf("error adding member: %w", err)
	}

	log.Info().Str("chat_id", req.ChatID).Str("member", req.UserID).Msg("member added")
	return nil
}

// RemoveMember removes req.UserID from a group. Admins may remove anyone;
// every member may remove themself.
func (s *chatService) RemoveMember(ctx context.Context, userID string, req models.RemoveMemberRequest) error {
	log := logger.FromContext(ctx)

	chat, err := requireMember(ctx, s.chatRepository, req.ChatID, userID)
	if err != nil {
		return err
	}
	if !chat.IsGroup {
		return ErrDirectChatMembership
	}
	if req.UserID != userID && !chat.IsAdmin(userID) {
		return ErrNotChatAdmin
	}
	if !chat.HasMember(req.UserID) {
		return store.ErrMemberNotFound
	}

	if err = s.chatRepository.RemoveMember(ctx, req); err != nil {
		log.Err(err).Str("func", "*chatService.RemoveMember").Str("chat_id", req.ChatID).Msg("error removing member")
		return fmt.Errorf("error removing member: %w", err)
	}

	log.Info().Str("chat_id", req.ChatID).Str("member", req.UserID).Msg("member removed")
	return nil
}

func (s *chatService) MakeAdmin(ctx context.Context, userID, chatID, memberID string) error {
	chat, err := requireGroupAdmin(ctx, s.chatRepository, chatID, userID)
	if err != nil {
		return err
	}
	if !chat.HasMember(memberID) {
		return store.ErrMemberNotFound
	}

	if err = s.chatRepository.MakeAdmin(ctx, chatID, memberID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.MakeAdmin").Str("chat_id", chatID).Msg("error granting admin")
		return fmt.Errorf("error granting admin: %w", err)
	}

	return nil
}

// UpdateChat edits the name, description or photo of a group. Only admins
// may edit a group; direct chats have no editable metadata.
func (s *chatService) UpdateChat(ctx context.Context, userID, chatID string, req models.UpdateChatRequest) (models.Chat, error) {
	log := logger.FromContext(ctx)

	if _, err := requireGroupAdmin(ctx, s.chatRepository, chatID, userID); err != nil {
		return models.Chat{}, err
	}

	chat, err := s.chatRepository.UpdateChat(ctx, chatID, req)
	if err != nil {
		log.Err(err).Str("func", "*chatService.UpdateChat").Str("chat_id", chatID).Msg("error updating chat")
		return models.Chat{}, fmt.Errorf("error updating chat: %w", err)
	}

	log.Info().Str("chat_id", chatID).Msg("chat updated")
	return chat, nil
}

// SearchGroups looks groups up by a prefix of their name. Only public
// metadata is returned, whether or not userID is a member.
func (s *chatService) SearchGroups(ctx context.Context, userID string, req models.SearchRequest) ([]models.Chat, error) {
	chats, err := s.chatRepository.SearchGroups(ctx, req.Query, searchLimit(req.Limit))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.SearchGroups").Msg("error searching groups")
		return nil, fmt.Errorf("error searching groups: %w", err)
	}

	found := make([]models.Chat, len(chats))
	for i, chat := range chats {
		found[i] = chat.Public()
	}
	return found, nil
}

// MarkChatRead resets the unread counter of userID.
func (s *chatService) MarkChatRead(ctx context.Context, userID, chatID string) error {
	if _, err := requireMember(ctx, s.chatRepository, chatID, userID); err != nil {
		return err
	}

	if err := s.chatRepository.ResetUnread(ctx, chatID, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.MarkChatRead").Str("chat_id", chatID).Msg("error resetting unread")
		return fmt.Errorf("error resetting unread count: %w", err)
	}

	return nil
}
