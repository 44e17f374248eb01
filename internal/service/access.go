// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
)

// requireMember loads the chat and checks that userID is a current member.
func requireMember(ctx context.Context, chats store.ChatRepository, chatID, userID string) (models.Chat, error) {
	chat, err := chats.GetChat(ctx, chatID)
	if err != nil {
		return models.Chat{}, fmt.Errorf("error getting chat: %w", err)
	}
	if !chat.HasMember(userID) {
		return models.Chat{}, ErrNotChatMember
	}

	return chat, nil
}

// requireGroupAdmin is requireMember plus the group admin check.
func requireGroupAdmin(ctx context.Context, chats store.ChatRepository, chatID, userID string) (models.Chat, error) {
	chat, err := requireMember(ctx, chats, chatID, userID)
	if err != nil {
		return models.Chat{}, err
	}
	if !chat.IsGroup {
		return models.Chat{}, ErrDirectChatMembership
	}
	if !chat.IsAdmin(userID) {
		return models.Chat{}, ErrNotChatAdmin
	}

	return chat, nil
}
