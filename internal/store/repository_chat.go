// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

// chatRepository is the SQL implementation of [ChatRepository]. Membership
// lives in "chat_members" and wrapped keys in "chat_keys".
type chatRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChatRepository constructs a [ChatRepository] backed by db.
func NewChatRepository(db *DB, logger *logger.Logger) ChatRepository {
	logger.Debug().Msg("creating chat repository")
	return &chatRepository{
		db:     db,
		logger: logger,
	}
}

// CreateChat inserts the chat row, one member row per member and all wrapped
// keys in a single transaction.
func (r *chatRepository) CreateChat(ctx context.Context, req models.CreateChatRequest) (models.Chat, error) {
	log := logger.FromContext(ctx)

	chat := req.Chat
	chat.CreatedAt = chat.CreatedAt.UTC()

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.db.exec(ctx, tx, r.db.insertChatQuery(chat)); err != nil {
			if r.db.errorClassificator.IsUniqueViolation(err) {
				return ErrChatAlreadyExists
			}
			return err
		}

		for _, member := range chat.Members {
			isAdmin := chat.IsGroup && chat.IsAdmin(member)
			if _, err := r.db.exec(ctx, tx, r.db.insertMemberQuery(chat.ChatID, member, isAdmin, chat.CreatedAt)); err != nil {
				if r.db.errorClassificator.IsUniqueViolation(err) {
					return ErrMemberAlreadyExists
				}
				return err
			}
		}

		for _, key := range req.Keys {
			key.ChatID = chat.ChatID
			if _, err := r.db.exec(ctx, tx, r.db.upsertKeyQuery(key)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.CreateChat").Str("chat_id", chat.ChatID).Msg("error creating chat")
		return models.Chat{}, err
	}

	return chat, nil
}

// GetChat loads a chat together with its members and admins.
func (r *chatRepository) GetChat(ctx context.Context, chatID string) (models.Chat, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db, r.db.selectChatQuery(chatID))
	if err != nil {
		return models.Chat{}, err
	}

	chat, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.GetChat").Str("chat_id", chatID).Msg("error scanning chat")
		return models.Chat{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	chats := []models.Chat{chat}
	if err = r.loadMembers(ctx, chats); err != nil {
		log.Err(err).Str("func", "*chatRepository.GetChat").Str("chat_id", chatID).Msg("error loading members")
		return models.Chat{}, err
	}

	return chats[0], nil
}

// ListChats returns the chats userID is a member of.
func (r *chatRepository) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db, r.db.selectChatsOfUserQuery(userID))
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.ListChats").Msg("error querying chats")
		return nil, err
	}
	defer rows.Close()

	chats := make([]models.Chat, 0)
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			log.Err(err).Str("func", "*chatRepository.ListChats").Msg("error scanning chat")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		chats = append(chats, chat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err = r.loadMembers(ctx, chats); err != nil {
		log.Err(err).Str("func", "*chatRepository.ListChats").Msg("error loading members")
		return nil, err
	}

	return chats, nil
}

// AddMember inserts the member row and stores the member's wrapped key.
func (r *chatRepository) AddMember(ctx context.Context, req models.AddMemberRequest) error {
	log := logger.FromContext(ctx)

	key := req.Key
	key.ChatID, key.UserID = req.ChatID, req.UserID

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := r.db.exec(ctx, tx, r.db.insertMemberQuery(req.ChatID, req.UserID, false, time.Now().UTC()))
		if err != nil {
			if r.db.errorClassificator.IsUniqueViolation(err) {
				return ErrMemberAlreadyExists
			}
			return err
		}

		_, err = r.db.exec(ctx, tx, r.db.upsertKeyQuery(key))
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.AddMember").Str("chat_id", req.ChatID).Msg("error adding member")
		return err
	}

	return nil
}

// RemoveMember deletes the member row and that member's wrapped key.
func (r *chatRepository) RemoveMember(ctx context.Context, req models.RemoveMemberRequest) error {
	log := logger.FromContext(ctx)

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		affected, err := r.db.exec(ctx, tx, r.db.deleteMemberQuery(req.ChatID, req.UserID))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrMemberNotFound
		}

		_, err = r.db.exec(ctx, tx, r.db.deleteKeyQuery(req.ChatID, req.UserID))
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.RemoveMember").Str("chat_id", req.ChatID).Msg("error removing member")
		return err
	}

	return nil
}

// MakeAdmin flags an existing member as admin.
func (r *chatRepository) MakeAdmin(ctx context.Context, chatID, userID string) error {
	return r.updateMember(ctx, "*chatRepository.MakeAdmin", r.db.makeAdminQuery(chatID, userID))
}

// UpdateChat sets the non-nil fields of req and returns the updated chat.
func (r *chatRepository) UpdateChat(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error) {
	q, ok := r.db.updateChatQuery(chatID, req)
	if !ok {
		return r.GetChat(ctx, chatID)
	}

	affected, err := r.db.exec(ctx, r.db, q)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatRepository.UpdateChat").Str("chat_id", chatID).Msg("error updating chat")
		return models.Chat{}, err
	}
	if affected == 0 {
		return models.Chat{}, ErrChatNotFound
	}

	return r.GetChat(ctx, chatID)
}

// SearchGroups returns at most limit groups whose name starts with prefix,
// ignoring case. Membership is not loaded.
func (r *chatRepository) SearchGroups(ctx context.Context, prefix string, limit int) ([]models.Chat, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db, r.db.searchGroupsQuery(prefix, limit))
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.SearchGroups").Msg("error querying groups")
		return nil, err
	}
	defer rows.Close()

	chats := make([]models.Chat, 0)
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			log.Err(err).Str("func", "*chatRepository.SearchGroups").Msg("error scanning chat")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		chats = append(chats, chat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return chats, nil
}

// ResetUnread zeroes the unread counter of one member.
func (r *chatRepository) ResetUnread(ctx context.Context, chatID, userID string) error {
	return r.updateMember(ctx, "*chatRepository.ResetUnread", r.db.resetUnreadQuery(chatID, userID))
}

// ClearHistory hides every message created up to at from userID only.
func (r *chatRepository) ClearHistory(ctx context.Context, chatID, userID string, at time.Time) error {
	return r.updateMember(ctx, "*chatRepository.ClearHistory", r.db.clearHistoryQuery(chatID, userID, at.UTC()))
}

func (r *chatRepository) updateMember(ctx context.Context, fn string, q sq.UpdateBuilder) error {
	affected, err := r.db.exec(ctx, r.db, q)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error updating member")
		return err
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// GetWrappedKey returns the chat key wrapped for userID.
func (r *chatRepository) GetWrappedKey(ctx context.Context, chatID, userID string) (models.WrappedKey, error) {
	row, err := r.db.queryRow(ctx, r.db, r.db.selectKeyQuery(chatID, userID))
	if err != nil {
		return models.WrappedKey{}, err
	}

	var key models.WrappedKey
	err = row.Scan(&key.ChatID, &key.UserID, &key.EncryptedKey, &key.IV)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WrappedKey{}, ErrKeyNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatRepository.GetWrappedKey").Msg("error scanning key")
		return models.WrappedKey{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return key, nil
}

// loadMembers fills the membership of every chat with one query. Unread
// counters and clear marks are only set for members that have them.
func (r *chatRepository) loadMembers(ctx context.Context, chats []models.Chat) error {
	if len(chats) == 0 {
		return nil
	}

	ids := make([]string, len(chats))
	byID := make(map[string]*models.Chat, len(chats))
	for i := range chats {
		ids[i] = chats[i].ChatID
		chats[i].Members = []string{}
		if chats[i].IsGroup {
			chats[i].Admins = []string{}
		}
		byID[chats[i].ChatID] = &chats[i]
	}

	rows, err := r.db.query(ctx, r.db, r.db.selectMembersQuery(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			chatID, userID string
			isAdmin        bool
			unread         int
			clearedAt      sql.NullTime
		)
		if err = rows.Scan(&chatID, &userID, &isAdmin, &unread, &clearedAt); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		chat, ok := byID[chatID]
		if !ok {
			continue
		}
		chat.Members = append(chat.Members, userID)
		if isAdmin && chat.IsGroup {
			chat.Admins = append(chat.Admins, userID)
		}
		if unread > 0 {
			if chat.UnreadCounts == nil {
				chat.UnreadCounts = make(map[string]int)
			}
			chat.UnreadCounts[userID] = unread
		}
		if clearedAt.Valid {
			if chat.ClearedAt == nil {
				chat.ClearedAt = make(map[string]time.Time)
			}
			chat.ClearedAt[userID] = clearedAt.Time.UTC()
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (models.Chat, error) {
	var (
		chat          models.Chat
		lastMessageAt sql.NullTime
	)
	err := row.Scan(&chat.ChatID, &chat.IsGroup, &chat.Name, &chat.Description, &chat.PhotoURL,
		&chat.CreatedBy, &chat.CreatedAt, &lastMessageAt, &chat.Streak, &chat.StreakDay)
	if err != nil {
		return models.Chat{}, err
	}

	if lastMessageAt.Valid {
		t := lastMessageAt.Time
		chat.LastMessageAt = &t
	}

	return chat, nil
}
