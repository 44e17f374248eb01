// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

// Field names understood by [MessageValidator].
const (
	FieldMessageID  = "message_id"
	FieldType       = "type"
	FieldCiphertext = "ciphertext"
	FieldMedia      = "media"
)

// MessageValidator validates messages before they are stored. A message
// never carries plaintext: text messages need ciphertext and IV, media
// messages need media metadata and may carry an encrypted caption.
type MessageValidator struct{}

// NewMessageValidator constructs a [MessageValidator].
func NewMessageValidator() Validator {
	return &MessageValidator{}
}

func (v *MessageValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Message:
		return v.validateMessage(ctx, value, fields...)
	case *models.Message:
		return v.validateMessage(ctx, *value, fields...)
	case models.ReceiptRequest:
		switch value.Kind {
		case models.ReceiptDelivered, models.ReceiptRead:
			return nil
		default:
			return ErrInvalidReceipt
		}
	default:
		return ErrUnsupportedType
	}
}

func (v *MessageValidator) validateMessage(ctx context.Context, msg models.Message, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMessageID, FieldChatID, FieldType, FieldCiphertext, FieldMedia}
	}

	for _, f := range fields {
		switch f {
		case FieldMessageID:
			if !utils.IsUUID(msg.MessageID) {
				return ErrInvalidMessageID
			}
		case FieldChatID:
			if msg.ChatID == "" {
				return ErrInvalidChatID
			}
		case FieldType:
			switch msg.Type {
			case models.MessageText, models.MessageImage, models.MessageVideo:
			default:
				return ErrInvalidMessageType
			}
		case FieldCiphertext:
			if msg.Type == models.MessageText && !msg.HasText() {
				return ErrEmptyCiphertext
			}
			// a caption is optional but comes as a pair
			if (msg.Ciphertext == "") != (msg.IV == "") {
				return ErrEmptyCiphertext
			}
		case FieldMedia:
			if err := validateMedia(msg); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateMedia(msg models.Message) error {
	if msg.Type == models.MessageText {
		if msg.Media != nil {
			return ErrPlaintextPresent
		}
		return nil
	}

	media := msg.Media
	if media == nil || media.MediaIV == "" || media.ChunkCount <= 0 {
		return ErrInvalidMedia
	}
	if !strings.HasPrefix(media.MimeType, string(msg.Type)+"/") {
		return ErrInvalidMedia
	}

	if !media.ThumbnailAvailable {
		if media.ThumbnailIV != "" || media.ThumbnailChunkCount != 0 {
			return ErrInvalidThumbnail
		}
		return nil
	}
	if msg.Type != models.MessageVideo || media.ThumbnailIV == "" || media.ThumbnailChunkCount <= 0 {
		return ErrInvalidThumbnail
	}

	return nil
}
