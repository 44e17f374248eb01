// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the client to talk to the
// sealed-chat server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrNotFound] for 404). The message
// sent by the server follows the sentinel.
package adapter

import (
	"context"

	"github.com/MKhiriev/sealed-chat/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sealed-chat
// server. Everything passed through it is either public metadata or already
// encrypted by the client.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and stores the returned bearer token.
	// The returned user carries the server-assigned id.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with login and password and stores the returned
	// bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// FindUser resolves a login to the public part of an account.
	FindUser(ctx context.Context, login string) (models.User, error)

	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)
	SearchUsers(ctx context.Context, req models.SearchRequest) ([]models.User, error)

	CreateChat(ctx context.Context, req models.CreateChatRequest) (models.Chat, error)
	ListChats(ctx context.Context) ([]models.Chat, error)
	GetChat(ctx context.Context, chatID string) (models.Chat, error)
	UpdateChat(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error)
	SearchGroups(ctx context.Context, req models.SearchRequest) ([]models.Chat, error)

	// MarkChatRead resets the unread counter of the authenticated user.
	MarkChatRead(ctx context.Context, chatID string) error

	// GetWrappedKey returns the chat key wrapped for the authenticated user.
	GetWrappedKey(ctx context.Context, chatID string) (models.WrappedKey, error)

	AddMember(ctx context.Context, req models.AddMemberRequest) error
	RemoveMember(ctx context.Context, chatID, userID string) error
	MakeAdmin(ctx context.Context, chatID, userID string) error

	SendMessage(ctx context.Context, msg models.Message) (models.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID string) error
	ClearChat(ctx context.Context, chatID string) (int64, error)

	// ClearHistory and HideMessage only change what the authenticated user
	// sees.
	ClearHistory(ctx context.Context, chatID string) error
	HideMessage(ctx context.Context, chatID, messageID string) error

	MarkReceipt(ctx context.Context, chatID, messageID string, kind models.ReceiptKind) error

	// UploadChunks sends chunks of one set. Public sets go to the public
	// media endpoint, the others to the chat they belong to.
	UploadChunks(ctx context.Context, req models.UploadChunksRequest) error

	// DownloadChunks returns the chunks of a set as stored by the server.
	DownloadChunks(ctx context.Context, set models.ChunkSet) ([]models.MediaChunk, error)
}
