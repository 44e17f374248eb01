// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

// Firestore layout:
//
//	users/{user_id}
//	logins/{login}                  -> {user_id}, enforces unique logins
//	chats/{chat_id}                 -> chat with members and admins arrays and
//	                                   per member maps keyed by user id
//	chats/{chat_id}/keys/{user_id}
//	chats/{chat_id}/messages/{message_id}
//	chunkSets/{kind}_{owner_id}     -> {owner_id, kind, chat_id, uploaded_by, uploaded_at}
//	chunkSets/{kind}_{owner_id}/chunks/{index}
const (
	usersCollection     = "users"
	loginsCollection    = "logins"
	chatsCollection     = "chats"
	keysCollection      = "keys"
	messagesCollection  = "messages"
	chunkSetsCollection = "chunkSets"
	chunksCollection    = "chunks"
)

// NewConnectFirestore creates a Firestore client for cfg.ProjectID.
func NewConnectFirestore(ctx context.Context, cfg config.Firestore, log *logger.Logger) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewConnectFirestore").Msg("error creating firestore client")
		return nil, fmt.Errorf("%w: %w", ErrFirestore, err)
	}
	log.Info().Str("func", "NewConnectFirestore").Str("project_id", cfg.ProjectID).Msg("connected to firestore")

	return client, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// firestoreErr keeps store sentinels intact and wraps everything else.
func firestoreErr(err error) error {
	if err == nil || isStoreSentinel(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrFirestore, err)
}

var storeSentinels = []error{
	ErrLoginAlreadyExists, ErrNoUserWasFound, ErrChatAlreadyExists, ErrChatNotFound,
	ErrMemberAlreadyExists, ErrMemberNotFound, ErrKeyNotFound, ErrMessageAlreadyExists,
	ErrMessageNotFound, ErrChunkSetConflict,
}

func isStoreSentinel(err error) bool {
	for _, sentinel := range storeSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

type userDoc struct {
	UserID     string    `firestore:"user_id"`
	Login      string    `firestore:"login"`
	LoginLower string    `firestore:"login_lower"`
	Name       string    `firestore:"name"`
	NameLower  string    `firestore:"name_lower"`
	PhotoURL   string    `firestore:"photo_url"`
	AuthHash   string    `firestore:"auth_hash"`
	CreatedAt  time.Time `firestore:"created_at"`
}

type loginDoc struct {
	UserID string `firestore:"user_id"`
}

func toUserDoc(u models.User) userDoc {
	return userDoc{
		UserID:     u.UserID,
		Login:      u.Login,
		LoginLower: strings.ToLower(u.Login),
		Name:       u.Name,
		NameLower:  strings.ToLower(u.Name),
		PhotoURL:   u.PhotoURL,
		AuthHash:   u.AuthHash,
		CreatedAt:  u.CreatedAt.UTC(),
	}
}

func (d userDoc) model() models.User {
	return models.User{
		UserID:    d.UserID,
		Login:     d.Login,
		Name:      d.Name,
		PhotoURL:  d.PhotoURL,
		AuthHash:  d.AuthHash,
		CreatedAt: d.CreatedAt,
	}
}

type chatDoc struct {
	ChatID        string     `firestore:"chat_id"`
	IsGroup       bool       `firestore:"is_group"`
	Name          string     `firestore:"name"`
	Description   string     `firestore:"description"`
	PhotoURL      string     `firestore:"photo_url"`
	CreatedBy     string     `firestore:"created_by"`
	Members       []string   `firestore:"members"`
	Admins        []string   `firestore:"admins"`
	CreatedAt     time.Time  `firestore:"created_at"`
	LastMessageAt *time.Time `firestore:"last_message_at"`
	NameLower     string     `firestore:"name_lower"`
	Streak        int        `firestore:"streak"`
	StreakDay     string     `firestore:"streak_day"`

	UnreadCounts map[string]int       `firestore:"unread_counts"`
	ClearedAt    map[string]time.Time `firestore:"cleared_at"`
	LastSentAt   map[string]time.Time `firestore:"last_sent_at"`
}

// toChatDoc stores the effective admin list so the document never relies on
// the creator fallback.
func toChatDoc(c models.Chat) chatDoc {
	members := c.Members
	if members == nil {
		members = []string{}
	}

	admins := []string{}
	if c.IsGroup {
		for _, m := range members {
			if c.IsAdmin(m) {
				admins = append(admins, m)
			}
		}
	}

	return chatDoc{
		ChatID:        c.ChatID,
		IsGroup:       c.IsGroup,
		Name:          c.Name,
		Description:   c.Description,
		PhotoURL:      c.PhotoURL,
		CreatedBy:     c.CreatedBy,
		Members:       members,
		Admins:        admins,
		CreatedAt:     c.CreatedAt.UTC(),
		LastMessageAt: c.LastMessageAt,
		NameLower:     strings.ToLower(c.Name),
		Streak:        c.Streak,
		StreakDay:     c.StreakDay,
		UnreadCounts:  map[string]int{},
		ClearedAt:     map[string]time.Time{},
		LastSentAt:    map[string]time.Time{},
	}
}

func (d chatDoc) model() models.Chat {
	chat := models.Chat{
		ChatID:        d.ChatID,
		IsGroup:       d.IsGroup,
		Name:          d.Name,
		Description:   d.Description,
		PhotoURL:      d.PhotoURL,
		CreatedBy:     d.CreatedBy,
		Members:       d.Members,
		CreatedAt:     d.CreatedAt,
		LastMessageAt: d.LastMessageAt,
		Streak:        d.Streak,
		StreakDay:     d.StreakDay,
	}
	for userID, n := range d.UnreadCounts {
		if n <= 0 {
			continue
		}
		if chat.UnreadCounts == nil {
			chat.UnreadCounts = make(map[string]int)
		}
		chat.UnreadCounts[userID] = n
	}
	if len(d.ClearedAt) > 0 {
		chat.ClearedAt = maps.Clone(d.ClearedAt)
	}
	if chat.Members == nil {
		chat.Members = []string{}
	}
	if d.IsGroup {
		chat.Admins = d.Admins
		if chat.Admins == nil {
			chat.Admins = []string{}
		}
	}
	return chat
}

// lastActivity is the ordering key of chat lists.
func (d chatDoc) lastActivity() time.Time {
	if d.LastMessageAt != nil {
		return *d.LastMessageAt
	}
	return d.CreatedAt
}

type keyDoc struct {
	UserID       string `firestore:"user_id"`
	EncryptedKey string `firestore:"encrypted_key"`
	IV           string `firestore:"iv"`
}

type messageDoc struct {
	MessageID  string    `firestore:"message_id"`
	ChatID     string    `firestore:"chat_id"`
	SenderID   string    `firestore:"sender_id"`
	Type       string    `firestore:"type"`
	Ciphertext string    `firestore:"ciphertext"`
	IV         string    `firestore:"iv"`
	ReplyTo    string    `firestore:"reply_to"`
	Media      *mediaDoc `firestore:"media"`
	CreatedAt  time.Time `firestore:"created_at"`

	DeliveredTo []string `firestore:"delivered_to"`
	ReadBy      []string `firestore:"read_by"`
	HiddenFor   []string `firestore:"hidden_for"`
}

type mediaDoc struct {
	MimeType            string `firestore:"mime_type"`
	MediaIV             string `firestore:"media_iv"`
	ChunkCount          int    `firestore:"chunk_count"`
	ThumbnailAvailable  bool   `firestore:"thumbnail_available"`
	ThumbnailIV         string `firestore:"thumbnail_iv"`
	ThumbnailChunkCount int    `firestore:"thumbnail_chunk_count"`
}

func toMessageDoc(m models.Message) messageDoc {
	doc := messageDoc{
		MessageID:  m.MessageID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		Type:       string(m.Type),
		Ciphertext: m.Ciphertext,
		IV:         m.IV,
		ReplyTo:    m.ReplyTo,
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.Media != nil {
		media := mediaDoc(*m.Media)
		doc.Media = &media
	}
	return doc
}

func (d messageDoc) model() models.Message {
	msg := models.Message{
		MessageID:  d.MessageID,
		ChatID:     d.ChatID,
		SenderID:   d.SenderID,
		Type:       models.MessageType(d.Type),
		Ciphertext: d.Ciphertext,
		IV:         d.IV,
		ReplyTo:    d.ReplyTo,
		CreatedAt:  d.CreatedAt,

		DeliveredTo: d.DeliveredTo,
		ReadBy:      d.ReadBy,
		HiddenFor:   d.HiddenFor,
	}
	if d.Media != nil {
		media := models.MediaInfo(*d.Media)
		msg.Media = &media
	}
	return msg
}

type chunkSetDoc struct {
	OwnerID    string    `firestore:"owner_id"`
	Kind       string    `firestore:"kind"`
	ChatID     string    `firestore:"chat_id"`
	UploadedBy string    `firestore:"uploaded_by"`
	UploadedAt time.Time `firestore:"uploaded_at"`
}

type chunkDoc struct {
	Index int    `firestore:"index"`
	Data  string `firestore:"data"`
}

func chunkSetDocID(set models.ChunkSet) string {
	return string(set.Kind) + "_" + set.OwnerID
}

// chunkDocID zero-pads the index so document ids sort like indices.
func chunkDocID(index int) string {
	return fmt.Sprintf("%06d", index)
}
