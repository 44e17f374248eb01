// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// MessageType is the kind of content a message carries.
type MessageType string

const (
	// MessageText is a plain encrypted text message.
	MessageText MessageType = "text"
	// MessageImage is an encrypted image stored as media chunks.
	MessageImage MessageType = "image"
	// MessageVideo is an encrypted video stored as media chunks, optionally
	// with an encrypted thumbnail.
	MessageVideo MessageType = "video"
)

// Message is a chat message as stored by the server. Text is never stored in
// plaintext: Ciphertext and IV hold the AES-GCM encryption of the text (or of
// the media caption) under the chat key.
type Message struct {
	MessageID  string      `json:"message_id"`
	ChatID     string      `json:"chat_id"`
	SenderID   string      `json:"sender_id"`
	Type       MessageType `json:"type"`
	Ciphertext string      `json:"ciphertext,omitempty"`
	IV         string      `json:"iv,omitempty"`
	ReplyTo    string      `json:"reply_to,omitempty"`
	Media      *MediaInfo  `json:"media,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`

	// DeliveredTo and ReadBy list the members that received and read the
	// message.
	DeliveredTo []string `json:"delivered_to,omitempty"`
	ReadBy      []string `json:"read_by,omitempty"`

	// HiddenFor lists the members that deleted the message for themselves.
	// It never leaves the server.
	HiddenFor []string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Message model.
func (m Message) TableName() string {
	return "messages"
}

// VisibleTo reports whether userID should see the message: it was not
// deleted by userID and was sent after userID last cleared the chat.
func (m Message) VisibleTo(userID string, clearedAt time.Time) bool {
	if slices.Contains(m.HiddenFor, userID) {
		return false
	}
	return clearedAt.IsZero() || m.CreatedAt.After(clearedAt)
}

// HasText reports whether the message carries an encrypted text or caption.
func (m Message) HasText() bool {
	return m.Ciphertext != "" && m.IV != ""
}

// MediaInfo describes the encrypted media attached to a message. The media
// itself lives in chunk sets keyed by the message id.
type MediaInfo struct {
	MimeType   string `json:"mime_type"`
	MediaIV    string `json:"media_iv"`
	ChunkCount int    `json:"chunk_count"`

	ThumbnailAvailable  bool   `json:"thumbnail_available,omitempty"`
	ThumbnailIV         string `json:"thumbnail_iv,omitempty"`
	ThumbnailChunkCount int    `json:"thumbnail_chunk_count,omitempty"`
}

// DecryptedMessage is the client-side view of a [Message] after decryption.
type DecryptedMessage struct {
	Message
	Text string `json:"text"`
}

// ClearChatResult reports how many messages a clear removed.
type ClearChatResult struct {
	Deleted int64 `json:"deleted"`
}

// ReceiptKind is the state a member reports for a message.
type ReceiptKind string

const (
	// ReceiptDelivered marks a message as received by the member's client.
	ReceiptDelivered ReceiptKind = "delivered"
	// ReceiptRead marks a message as read. Read implies delivered.
	ReceiptRead ReceiptKind = "read"
)

// ReceiptRequest reports a receipt for one message.
type ReceiptRequest struct {
	Kind ReceiptKind `json:"kind"`
}

// MessageScopeMe selects the per-member variant of a delete or clear: the
// messages are hidden for the caller only.
const MessageScopeMe = "me"
