// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/validators"
	"github.com/MKhiriev/sealed-chat/models"
)

// ChatValidationService rejects malformed chat requests before they reach
// the wrapped ChatService.
type ChatValidationService struct {
	inner     ChatService
	validator validators.Validator
	search    validators.Validator
}

func NewChatValidationService() ChatServiceWrapper {
	return &ChatValidationService{
		validator: validators.NewChatValidator(),
		search:    validators.NewUserValidator(),
	}
}

func (v *ChatValidationService) CreateChat(ctx context.Context, userID string, req models.CreateChatRequest) (models.Chat, error) {
	if userID == "" {
		return models.Chat{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}

	// the creator is whoever is authenticated
	req.Chat.CreatedBy = userID
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Chat{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateChat(ctx, userID, req)
}

func (v *ChatValidationService) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}

	return v.inner.ListChats(ctx, userID)
}

func (v *ChatValidationService) GetChat(ctx context.Context, userID, chatID string) (models.Chat, error) {
	if err := v.validateIDs(ctx, chatID, userID); err != nil {
		return models.Chat{}, err
	}

	return v.inner.GetChat(ctx, userID, chatID)
}

func (v *ChatValidationService) GetWrappedKey(ctx context.Context, userID, chatID string) (models.WrappedKey, error) {
	if err := v.validateIDs(ctx, chatID, userID); err != nil {
		return models.WrappedKey{}, err
	}

	return v.inner.GetWrappedKey(ctx, userID, chatID)
}

func (v *ChatValidationService) AddMember(ctx context.Context, userID string, req models.AddMemberRequest) error {
	if userID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.AddMember(ctx, userID, req)
}

func (v *ChatValidationService) RemoveMember(ctx context.Context, userID string, req models.RemoveMemberRequest) error {
	if userID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RemoveMember(ctx, userID, req)
}

func (v *ChatValidationService) MakeAdmin(ctx context.Context, userID, chatID, memberID string) error {
	if err := v.validateIDs(ctx, chatID, userID); err != nil {
		return err
	}
	if err := v.validateIDs(ctx, chatID, memberID); err != nil {
		return err
	}

	return v.inner.MakeAdmin(ctx, userID, chatID, memberID)
}

func (v *ChatValidationService) UpdateChat(ctx context.Context, userID, chatID string, req models.UpdateChatRequest) (models.Chat, error) {
	if err := v.validateIDs(ctx, chatID, userID); err != nil {
		return models.Chat{}, err
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Chat{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateChat(ctx, userID, chatID, req)
}

func (v *ChatValidationService) SearchGroups(ctx context.Context, userID string, req models.SearchRequest) ([]models.Chat, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.search.Validate(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SearchGroups(ctx, userID, req)
}

func (v *ChatValidationService) MarkChatRead(ctx context.Context, userID, chatID string) error {
	if err := v.validateIDs(ctx, chatID, userID); err != nil {
		return err
	}

	return v.inner.MarkChatRead(ctx, userID, chatID)
}

// validateIDs checks a (chat, user) pair using the remove member rules,
// which need nothing but the two ids.
func (v *ChatValidationService) validateIDs(ctx context.Context, chatID, userID string) error {
	req := models.RemoveMemberRequest{ChatID: chatID, UserID: userID}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return nil
}

func (v *ChatValidationService) Wrap(wrapped ChatService) ChatService {
	v.inner = wrapped
	return v
}
