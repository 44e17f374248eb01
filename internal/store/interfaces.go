// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/sealed-chat/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser stores a new user. Returns [ErrLoginAlreadyExists] when the
	// login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByLogin returns [ErrNoUserWasFound] when no user has login.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when no user has userID.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// UpdateProfile sets the non-nil fields of req and returns the user.
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error)
	// SearchUsers returns at most limit users whose name or login starts
	// with prefix, ignoring case.
	SearchUsers(ctx context.Context, prefix string, limit int) ([]models.User, error)
}

// ChatRepository persists chats, their membership and the wrapped chat keys.
// Every method that touches both membership and keys applies the changes
// atomically.
type ChatRepository interface {
	// CreateChat stores the chat, its members and all wrapped keys.
	// Returns [ErrChatAlreadyExists] if a chat with the same id exists.
	CreateChat(ctx context.Context, req models.CreateChatRequest) (models.Chat, error)
	// GetChat returns [ErrChatNotFound] for unknown chats.
	GetChat(ctx context.Context, chatID string) (models.Chat, error)
	// ListChats returns the chats userID is a member of, most recently
	// active first.
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	// AddMember appends the member and stores the member's wrapped key.
	AddMember(ctx context.Context, req models.AddMemberRequest) error
	// RemoveMember removes the member (and admin flag) and deletes exactly
	// that member's wrapped key.
	RemoveMember(ctx context.Context, req models.RemoveMemberRequest) error
	// MakeAdmin flags an existing member as admin.
	MakeAdmin(ctx context.Context, chatID, userID string) error
	// UpdateChat sets the non-nil fields of req and returns the chat.
	UpdateChat(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error)
	// SearchGroups returns at most limit groups whose name starts with
	// prefix, ignoring case, without their membership.
	SearchGroups(ctx context.Context, prefix string, limit int) ([]models.Chat, error)
	// ResetUnread zeroes the unread counter of a member. Returns
	// [ErrMemberNotFound] for non-members.
	ResetUnread(ctx context.Context, chatID, userID string) error
	// ClearHistory hides the messages created up to at from one member.
	ClearHistory(ctx context.Context, chatID, userID string, at time.Time) error
	// GetWrappedKey returns [ErrKeyNotFound] if userID has no key for chatID.
	GetWrappedKey(ctx context.Context, chatID, userID string) (models.WrappedKey, error)
}

// MessageRepository persists encrypted messages and their receipts.
type MessageRepository interface {
	// SaveMessage stores msg and bumps the chat's last message time, the
	// unread counters of the other members and the direct chat streak.
	SaveMessage(ctx context.Context, msg models.Message) (models.Message, error)
	// ListMessages returns the messages of a chat ordered by creation time,
	// with their receipts.
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
	// MarkReceipt records a delivered or read receipt. Returns
	// [ErrMessageNotFound] for unknown messages.
	MarkReceipt(ctx context.Context, chatID, messageID, userID string, kind models.ReceiptKind, at time.Time) error
	// HideMessage deletes a message for userID only.
	HideMessage(ctx context.Context, chatID, messageID, userID string, at time.Time) error
	// DeleteMessage deletes the message together with its chunk sets.
	DeleteMessage(ctx context.Context, chatID, messageID string) error
	// ClearChat deletes every message and chunk of a chat and returns the
	// number of deleted messages.
	ClearChat(ctx context.Context, chatID string) (int64, error)
}

// ChunkRepository persists media chunks.
type ChunkRepository interface {
	// SaveChunks upserts chunks of one set. Returns [ErrChunkSetConflict]
	// if the set already belongs to another chat or another uploader.
	SaveChunks(ctx context.Context, req models.UploadChunksRequest) error
	// GetChunks returns the chunks of a set ordered by index.
	GetChunks(ctx context.Context, set models.ChunkSet) ([]models.MediaChunk, error)
	// DeleteChunks removes a whole set.
	DeleteChunks(ctx context.Context, set models.ChunkSet) error
	// ListOrphanChunkSets returns media and thumbnail sets that no message
	// references and that were last written before olderThan.
	ListOrphanChunkSets(ctx context.Context, olderThan time.Time, limit int) ([]models.ChunkSet, error)
}

// ErrorClassificator decides how a driver error should be handled.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
