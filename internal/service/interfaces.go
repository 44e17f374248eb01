// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/sealed-chat/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers users, checks credentials and issues tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// UserService reads and edits profiles and looks users up. Every returned
// user is stripped of credential material.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error)
	SearchUsers(ctx context.Context, userID string, req models.SearchRequest) ([]models.User, error)
}

// ChatService manages chats on behalf of the authenticated user userID.
// It never sees a chat key: it stores the wrapped keys it is given and hands
// every member back only their own.
type ChatService interface {
	CreateChat(ctx context.Context, userID string, req models.CreateChatRequest) (models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	GetChat(ctx context.Context, userID, chatID string) (models.Chat, error)
	GetWrappedKey(ctx context.Context, userID, chatID string) (models.WrappedKey, error)
	AddMember(ctx context.Context, userID string, req models.AddMemberRequest) error
	RemoveMember(ctx context.Context, userID string, req models.RemoveMemberRequest) error
	MakeAdmin(ctx context.Context, userID, chatID, memberID string) error
	UpdateChat(ctx context.Context, userID, chatID string, req models.UpdateChatRequest) (models.Chat, error)
	SearchGroups(ctx context.Context, userID string, req models.SearchRequest) ([]models.Chat, error)
	MarkChatRead(ctx context.Context, userID, chatID string) error
}

// MessageService stores and lists encrypted messages of chats userID is a
// member of. Messages hidden or cleared by userID are not listed to them.
type MessageService interface {
	SendMessage(ctx context.Context, userID string, msg models.Message) (models.Message, error)
	ListMessages(ctx context.Context, userID, chatID string) ([]models.Message, error)
	DeleteMessage(ctx context.Context, userID, chatID, messageID string) error
	ClearChat(ctx context.Context, userID, chatID string) (int64, error)
	ClearHistory(ctx context.Context, userID, chatID string) error
	HideMessage(ctx context.Context, userID, chatID, messageID string) error
	MarkReceipt(ctx context.Context, userID, chatID, messageID string, kind models.ReceiptKind) error
}

// MediaService stores media chunk sets. Chat bound sets are readable and
// writable by chat members only; public sets by any authenticated user.
type MediaService interface {
	UploadChunks(ctx context.Context, userID string, req models.UploadChunksRequest) error
	DownloadChunks(ctx context.Context, userID string, set models.ChunkSet) ([]models.MediaChunk, error)
}

// AppInfoService reports build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
