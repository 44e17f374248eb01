// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

type clientChatService struct {
	adapter     adapter.ServerAdapter
	chatCrypto  crypto.ChatCryptoService
	keyCache    *KeyCache
	idGenerator *utils.UUIDGenerator

	logger *logger.Logger
}

func NewClientChatService(serverAdapter adapter.ServerAdapter, chatCrypto crypto.ChatCryptoService, keyCache *KeyCache, logger *logger.Logger) ClientChatService {
	return &clientChatService{
		adapter:     serverAdapter,
		chatCrypto:  chatCrypto,
		keyCache:    keyCache,
		idGenerator: utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

func (c *clientChatService) CreateDirectChat(ctx context.Context, me, otherLogin string) (models.Chat, error) {
	other, err := c.adapter.FindUser(ctx, otherLogin)
	if err != nil {
		return models.Chat{}, fmt.Errorf("error resolving %q: %w", otherLogin, mapAdapterError(err))
	}
	if other.UserID == me {
		return models.Chat{}, ErrSelfChat
	}

	chatID := models.DirectChatID(me, other.UserID)
	existing, err := c.adapter.GetChat(ctx, chatID)
	if err == nil {
		c.logger.Debug().Str("chat_id", chatID).Msg("direct chat already exists")
		return existing, nil
	}
	if err = mapAdapterError(err); !errors.Is(err, store.ErrChatNotFound) {
		return models.Chat{}, fmt.Errorf("error looking up direct chat: %w", err)
	}

	chat := models.Chat{
		ChatID:  chatID,
		Members: []string{me, other.UserID},
	}

	// a concurrent creation on the other side wins; its key is fetched
	// lazily, so nothing is cached here
	created, _, err := c.createChat(ctx, chat)
	if err != nil {
		return models.Chat{}, err
	}

	return created, nil
}

func (c *clientChatService) CreateGroupChat(ctx context.Context, me, name, description string, memberLogins []string) (models.Chat, error) {
	members := []string{me}
	seen := map[string]struct{}{me: {}}
	for _, login := range memberLogins {
		user, err := c.adapter.FindUser(ctx, login)
		if err != nil {
			return models.Chat{}, fmt.Errorf("error resolving %q: %w", login, mapAdapterError(err))
		}
		if _, ok := seen[user.UserID]; ok {
			continue
		}
		seen[user.UserID] = struct{}{}
		members = append(members, user.UserID)
	}
	if len(members) < 2 {
		return models.Chat{}, ErrTooFewMembers
	}

	chat := models.Chat{
		ChatID:      c.idGenerator.Generate(),
		IsGroup:     true,
		Name:        name,
		Description: description,
		Members:     members,
	}

	created, chatKey, err := c.createChat(ctx, chat)
	if err != nil {
		return models.Chat{}, err
	}

	c.keyCache.Put(created.ChatID, me, chatKey)
	return created, nil
}

// createChat generates the chat key and wraps it for every member before
// anything is sent.
func (c *clientChatService) createChat(ctx context.Context, chat models.Chat) (models.Chat, crypto.ChatKey, error) {
	chatKey, err := c.chatCrypto.GenerateChatKey()
	if err != nil {
		return models.Chat{}, nil, fmt.Errorf("error generating chat key: %w", err)
	}

	keys := make([]models.WrappedKey, 0, len(chat.Members))
	for _, memberID := range chat.Members {
		wrapped, err := c.chatCrypto.WrapKeyForUser(chatKey, memberID)
		if err != nil {
			return models.Chat{}, nil, fmt.Errorf("error wrapping chat key for %s: %w", memberID, err)
		}
		wrapped.ChatID = chat.ChatID
		keys = append(keys, wrapped)
	}

	created, err := c.adapter.CreateChat(ctx, models.CreateChatRequest{Chat: chat, Keys: keys})
	if err != nil {
		return models.Chat{}, nil, fmt.Errorf("error creating chat: %w", mapAdapterError(err))
	}

	c.logger.Info().Str("chat_id", created.ChatID).Int("members", len(created.Members)).Msg("chat created")
	return created, chatKey, nil
}

func (c *clientChatService) ListChats(ctx context.Context) ([]models.Chat, error) {
	chats, err := c.adapter.ListChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing chats: %w", mapAdapterError(err))
	}

	return chats, nil
}

func (c *clientChatService) GetChat(ctx context.Context, chatID string) (models.Chat, error) {
	chat, err := c.adapter.GetChat(ctx, chatID)
	if err != nil {
		return models.Chat{}, fmt.Errorf("error getting chat: %w", mapAdapterError(err))
	}

	return chat, nil
}

// GetChatKey returns the chat key from the cache, or fetches the caller's
// wrapped key from the server and unwraps it.
func (c *clientChatService) GetChatKey(ctx context.Context, chatID, userID string) (crypto.ChatKey, error) {
	return c.keyCache.GetOrLoad(ctx, chatID, userID, func(ctx context.Context) (crypto.ChatKey, error) {
		wrapped, err := c.adapter.GetWrappedKey(ctx, chatID)
		if err != nil {
			return nil, fmt.Errorf("error fetching wrapped key: %w", mapAdapterError(err))
		}

		chatKey, err := c.chatCrypto.UnwrapKeyForUser(wrapped, userID)
		if err != nil {
			return nil, fmt.Errorf("error unwrapping chat key: %w", err)
		}

		return chatKey, nil
	})
}

func (c *clientChatService) AddParticipant(ctx context.Context, me, chatID, login string) error {
	user, err := c.adapter.FindUser(ctx, login)
	if err != nil {
		return fmt.Errorf("error resolving %q: %w", login, mapAdapterError(err))
	}

	chatKey, err := c.GetChatKey(ctx, chatID, me)
	if err != nil {
		return err
	}

	wrapped, err := c.chatCrypto.WrapKeyForUser(chatKey, user.UserID)
	if err != nil {
		return fmt.Errorf("error wrapping chat key for %s: %w", user.UserID, err)
	}
	wrapped.ChatID = chatID

	req := models.AddMemberRequest{ChatID: chatID, UserID: user.UserID, Key: wrapped}
	if err = c.adapter.AddMember(ctx, req); err != nil {
		return fmt.Errorf("error adding participant: %w", mapAdapterError(err))
	}

	c.logger.Info().Str("chat_id", chatID).Str("member", user.UserID).Msg("participant added")
	return nil
}

func (c *clientChatService) RemoveParticipant(ctx context.Context, chatID, login string) error {
	user, err := c.adapter.FindUser(ctx, login)
	if err != nil {
		return fmt.Errorf("error resolving %q: %w", login, mapAdapterError(err))
	}

	if err = c.adapter.RemoveMember(ctx, chatID, user.UserID); err != nil {
		return fmt.Errorf("error removing participant: %w", mapAdapterError(err))
	}
	c.keyCache.Drop(chatID, user.UserID)

	c.logger.Info().Str("chat_id", chatID).Str("member", user.UserID).Msg("participant removed")
	return nil
}

func (c *clientChatService) MakeAdmin(ctx context.Context, chatID, login string) error {
	user, err := c.adapter.FindUser(ctx, login)
	if err != nil {
		return fmt.Errorf("error resolving %q: %w", login, mapAdapterError(err))
	}

	if err = c.adapter.MakeAdmin(ctx, chatID, user.UserID); err != nil {
		return fmt.Errorf("error granting admin: %w", mapAdapterError(err))
	}

	return nil
}

func (c *clientChatService) IsAdmin(ctx context.Context, chatID, userID string) (bool, error) {
	chat, err := c.GetChat(ctx, chatID)
	if err != nil {
		return false, err
	}

	return chat.IsAdmin(userID), nil
}

func (c *clientChatService) UpdateGroup(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error) {
	chat, err := c.adapter.UpdateChat(ctx, chatID, req)
	if err != nil {
		return models.Chat{}, fmt.Errorf("error updating group: %w", mapAdapterError(err))
	}

	c.logger.Info().Str("chat_id", chatID).Msg("group updated")
	return chat, nil
}

func (c *clientChatService) SearchGroups(ctx context.Context, query string, limit int) ([]models.Chat, error) {
	groups, err := c.adapter.SearchGroups(ctx, models.SearchRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("error searching groups: %w", mapAdapterError(err))
	}

	return groups, nil
}
