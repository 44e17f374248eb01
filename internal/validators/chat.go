// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

// Field names understood by [ChatValidator].
const (
	FieldChatID      = "chat_id"
	FieldUserID      = "user_id"
	FieldMembers     = "members"
	FieldGroupName   = "group_name"
	FieldCreatedBy   = "created_by"
	FieldKeys        = "keys"
	FieldKey         = "key"
	FieldDescription = "description"
)

const maxDescriptionLength = 1024

// ChatValidator validates chat creation and membership requests.
//
// A direct chat has exactly two distinct members and the id produced by
// [models.DirectChatID]. A group has a name, a UUID id and at least two
// distinct members. Every member must receive exactly one wrapped key.
type ChatValidator struct{}

// NewChatValidator constructs a [ChatValidator].
func NewChatValidator() Validator {
	return &ChatValidator{}
}

func (v *ChatValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateChatRequest:
		return v.validateCreateChat(ctx, value, fields...)
	case *models.CreateChatRequest:
		return v.validateCreateChat(ctx, *value, fields...)

	case models.AddMemberRequest:
		return v.validateAddMember(ctx, value, fields...)
	case *models.AddMemberRequest:
		return v.validateAddMember(ctx, *value, fields...)

	case models.RemoveMemberRequest:
		return v.validateRemoveMember(ctx, value, fields...)
	case *models.RemoveMemberRequest:
		return v.validateRemoveMember(ctx, *value, fields...)

	case models.UpdateChatRequest:
		return v.validateUpdateChat(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ChatValidator) validateCreateChat(ctx context.Context, req models.CreateChatRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMembers, FieldChatID, FieldGroupName, FieldCreatedBy, FieldKeys}
	}

	chat := req.Chat
	for _, f := range fields {
		switch f {
		case FieldMembers:
			if err := validateMembers(chat); err != nil {
				return err
			}
		case FieldChatID:
			if chat.IsGroup {
				if !utils.IsUUID(chat.ChatID) {
					return ErrInvalidChatID
				}
				continue
			}
			if len(chat.Members) != 2 || chat.ChatID != models.DirectChatID(chat.Members[0], chat.Members[1]) {
				return ErrInvalidChatID
			}
		case FieldGroupName:
			if chat.IsGroup && chat.Name == "" {
				return ErrEmptyGroupName
			}
		case FieldCreatedBy:
			if chat.CreatedBy == "" || !chat.HasMember(chat.CreatedBy) {
				return ErrCreatorNotMember
			}
		case FieldKeys:
			if err := validateKeys(chat, req.Keys); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateMembers(chat models.Chat) error {
	seen := make(map[string]struct{}, len(chat.Members))
	for _, m := range chat.Members {
		if m == "" {
			return ErrInvalidUserID
		}
		if _, ok := seen[m]; ok {
			if !chat.IsGroup {
				return ErrSelfChat
			}
			return ErrDuplicateMember
		}
		seen[m] = struct{}{}
	}

	if chat.IsGroup && len(seen) < 2 {
		return ErrInvalidMembers
	}
	if !chat.IsGroup && len(seen) != 2 {
		return ErrInvalidMembers
	}

	for _, a := range chat.Admins {
		if _, ok := seen[a]; !ok {
			return ErrInvalidMembers
		}
	}

	return nil
}

func validateKeys(chat models.Chat, keys []models.WrappedKey) error {
	if len(keys) != len(chat.Members) {
		return ErrKeysMismatchMembers
	}

	covered := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k.Empty() {
			return ErrInvalidWrappedKey
		}
		if k.ChatID != "" && k.ChatID != chat.ChatID {
			return ErrInvalidWrappedKey
		}
		if !chat.HasMember(k.UserID) {
			return ErrKeysMismatchMembers
		}
		if _, ok := covered[k.UserID]; ok {
			return ErrKeysMismatchMembers
		}
		covered[k.UserID] = struct{}{}
	}

	return nil
}

func (v *ChatValidator) validateAddMember(ctx context.Context, req models.AddMemberRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChatID, FieldUserID, FieldKey}
	}

	for _, f := range fields {
		switch f {
		case FieldChatID:
			if req.ChatID == "" {
				return ErrInvalidChatID
			}
		case FieldUserID:
			if req.UserID == "" {
				return ErrInvalidUserID
			}
		case FieldKey:
			if req.Key.Empty() {
				return ErrInvalidWrappedKey
			}
			if req.Key.UserID != "" && req.Key.UserID != req.UserID {
				return ErrInvalidWrappedKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ChatValidator) validateRemoveMember(ctx context.Context, req models.RemoveMemberRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChatID, FieldUserID}
	}

	for _, f := range fields {
		switch f {
		case FieldChatID:
			if req.ChatID == "" {
				return ErrInvalidChatID
			}
		case FieldUserID:
			if req.UserID == "" {
				return ErrInvalidUserID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ChatValidator) validateUpdateChat(req models.UpdateChatRequest, fields ...string) error {
	if req.Empty() {
		return ErrNothingToUpdate
	}
	if len(fields) == 0 {
		fields = []string{FieldGroupName, FieldDescription, FieldPhotoURL}
	}

	for _, f := range fields {
		switch f {
		case FieldGroupName:
			if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
				return ErrEmptyGroupName
			}
			if req.Name != nil && !validDisplayName(*req.Name) {
				return ErrInvalidName
			}
		case FieldDescription:
			if req.Description != nil && utf8.RuneCountInString(*req.Description) > maxDescriptionLength {
				return ErrInvalidDescription
			}
		case FieldPhotoURL:
			if req.PhotoURL != nil && !validPhotoURL(*req.PhotoURL) {
				return ErrInvalidPhotoURL
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
