// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/models"
)

// ClientAuthService registers and logs in users and keeps the session
// between CLI invocations.
type ClientAuthService interface {
	// Register creates an account, stores the session and returns it.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates with the server and stores the session.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Restore loads the stored session and hands its token to the adapter.
	// Returns ErrNotLoggedIn if there is none.
	Restore(ctx context.Context) (models.Session, error)

	// Logout forgets the stored session.
	Logout(ctx context.Context) error
}

// ClientUserService reads and edits the profile of the logged in user and
// looks other users up.
type ClientUserService interface {
	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
}

// ChatKeyProvider returns the plaintext chat key of a chat for userID.
type ChatKeyProvider interface {
	GetChatKey(ctx context.Context, chatID, userID string) (crypto.ChatKey, error)
}

// ClientChatService creates chats, distributes chat keys to members and
// manages membership. All key material is produced and wrapped locally.
type ClientChatService interface {
	ChatKeyProvider

	// CreateDirectChat opens the direct chat between me and the user with
	// otherLogin. If the chat already exists it is returned as is and no
	// key is generated.
	CreateDirectChat(ctx context.Context, me, otherLogin string) (models.Chat, error)

	// CreateGroupChat creates a group of me and the users with memberLogins.
	// Logins are deduplicated; fewer than two unique members is rejected.
	CreateGroupChat(ctx context.Context, me, name, description string, memberLogins []string) (models.Chat, error)

	ListChats(ctx context.Context) ([]models.Chat, error)
	GetChat(ctx context.Context, chatID string) (models.Chat, error)

	// AddParticipant wraps the chat key for the user with login and adds
	// them. If the key cannot be obtained or wrapped nothing is sent.
	AddParticipant(ctx context.Context, me, chatID, login string) error

	// RemoveParticipant removes the user with login and drops their cached
	// key.
	RemoveParticipant(ctx context.Context, chatID, login string) error

	MakeAdmin(ctx context.Context, chatID, login string) error
	IsAdmin(ctx context.Context, chatID, userID string) (bool, error)

	// UpdateGroup edits the name, description or photo of a group. Only
	// admins may do so.
	UpdateGroup(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error)
	SearchGroups(ctx context.Context, query string, limit int) ([]models.Chat, error)
}

// ClientMessageService encrypts outgoing and decrypts incoming messages.
type ClientMessageService interface {
	SendMessage(ctx context.Context, me, chatID, text, replyTo string) (models.Message, error)

	// ListMessages returns the decrypted messages of a chat. Messages that
	// fail to decrypt carry crypto.DecryptionPlaceholder instead of failing
	// the whole listing.
	ListMessages(ctx context.Context, me, chatID string) ([]models.DecryptedMessage, error)

	DeleteMessage(ctx context.Context, chatID, messageID string) error
	ClearChat(ctx context.Context, chatID string) (int64, error)

	// HideMessage and ClearHistory remove messages from the view of the
	// logged in user only.
	HideMessage(ctx context.Context, chatID, messageID string) error
	ClearHistory(ctx context.Context, chatID string) error

	// MarkDelivered reports every listed message of another member that is
	// not yet marked delivered to me. It returns how many were reported.
	MarkDelivered(ctx context.Context, me, chatID string, messages []models.DecryptedMessage) (int, error)

	// MarkChatRead marks the messages of the other members as read and
	// resets my unread counter of the chat.
	MarkChatRead(ctx context.Context, me, chatID string) (int, error)
}

// ProgressFunc receives the upload progress in percent.
type ProgressFunc func(percent int)

// MediaUpload is a media message about to be sent.
type MediaUpload struct {
	File crypto.File

	// Caption is encrypted like a text message. Optional.
	Caption string

	// Thumbnail is only accepted for videos. Optional.
	Thumbnail *crypto.File

	ReplyTo string
}

// ClientMediaService runs the chunked media pipeline: encrypt the whole
// file, split it into chunks, upload the chunks concurrently and then the
// message metadata. Downloads reverse the steps.
type ClientMediaService interface {
	SendMediaMessage(ctx context.Context, me, chatID string, upload MediaUpload, progress ProgressFunc) (models.Message, error)
	DownloadMedia(ctx context.Context, me string, msg models.Message) (crypto.File, error)
	DownloadThumbnail(ctx context.Context, me string, msg models.Message) ([]byte, error)

	// UploadPublic stores unencrypted media (avatars, group photos) and
	// returns its "store://<fileID>" reference.
	UploadPublic(ctx context.Context, file crypto.File, progress ProgressFunc) (string, error)

	// DownloadPublic resolves a reference returned by UploadPublic.
	DownloadPublic(ctx context.Context, ref string) ([]byte, error)
}
