// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/validators"
	"github.com/MKhiriev/sealed-chat/models"
)

// MessageValidationService makes sure nothing but ciphertext and well formed
// media metadata reaches the wrapped MessageService.
type MessageValidationService struct {
	inner     MessageService
	validator validators.Validator
}

func NewMessageValidationService() MessageServiceWrapper {
	return &MessageValidationService{
		validator: validators.NewMessageValidator(),
	}
}

func (v *MessageValidationService) SendMessage(ctx context.Context, userID string, msg models.Message) (models.Message, error) {
	if userID == "" {
		return models.Message{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}

	fields := []string{validators.FieldMessageID, validators.FieldChatID, validators.FieldType, validators.FieldCiphertext, validators.FieldMedia}
	// text messages may leave the id to the server
	if msg.MessageID == "" && msg.Type == models.MessageText {
		fields = fields[1:]
	}
	if err := v.validator.Validate(ctx, msg, fields...); err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.SendMessage(ctx, userID, msg)
}

func (v *MessageValidationService) ListMessages(ctx context.Context, userID, chatID string) ([]models.Message, error) {
	if err := v.validateChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	return v.inner.ListMessages(ctx, userID, chatID)
}

func (v *MessageValidationService) DeleteMessage(ctx context.Context, userID, chatID, messageID string) error {
	if err := v.validateMessageRef(ctx, userID, chatID, messageID); err != nil {
		return err
	}

	return v.inner.DeleteMessage(ctx, userID, chatID, messageID)
}

func (v *MessageValidationService) ClearChat(ctx context.Context, userID, chatID string) (int64, error) {
	if err := v.validateChat(ctx, userID, chatID); err != nil {
		return 0, err
	}

	return v.inner.ClearChat(ctx, userID, chatID)
}

func (v *MessageValidationService) ClearHistory(ctx context.Context, userID, chatID string) error {
	if err := v.validateChat(ctx, userID, chatID); err != nil {
		return err
	}

	return v.inner.ClearHistory(ctx, userID, chatID)
}

func (v *MessageValidationService) HideMessage(ctx context.Context, userID, chatID, messageID string) error {
	if err := v.validateMessageRef(ctx, userID, chatID, messageID); err != nil {
		return err
	}

	return v.inner.HideMessage(ctx, userID, chatID, messageID)
}

func (v *MessageValidationService) MarkReceipt(ctx context.Context, userID, chatID, messageID string, kind models.ReceiptKind) error {
	if err := v.validateMessageRef(ctx, userID, chatID, messageID); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, models.ReceiptRequest{Kind: kind}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.MarkReceipt(ctx, userID, chatID, messageID, kind)
}

func (v *MessageValidationService) validateMessageRef(ctx context.Context, userID, chatID, messageID string) error {
	if err := v.validateChat(ctx, userID, chatID); err != nil {
		return err
	}
	if err := v.validator.Validate(ctx, models.Message{MessageID: messageID}, validators.FieldMessageID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return nil
}

func (v *MessageValidationService) validateChat(ctx context.Context, userID, chatID string) error {
	if userID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	if err := v.validator.Validate(ctx, models.Message{ChatID: chatID}, validators.FieldChatID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return nil
}

func (v *MessageValidationService) Wrap(wrapped MessageService) MessageService {
	v.inner = wrapped
	return v
}
