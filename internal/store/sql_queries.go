// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/sealed-chat/models"
)

var (
	userColumns = []string{"user_id", "login", "name", "auth_hash", "created_at", "photo_url"}
	chatColumns = []string{
		"chat_id", "is_group", "name", "description", "photo_url", "created_by", "created_at", "last_message_at",
		"streak", "streak_day",
	}
	messageColumns = []string{
		"message_id", "chat_id", "sender_id", "type", "ciphertext", "iv", "reply_to",
		"mime_type", "media_iv", "chunk_count", "thumbnail_iv", "thumbnail_chunk_count", "created_at",
	}
)

func (db *DB) insertUserQuery(u models.User) sq.InsertBuilder {
	return db.builder.Insert(u.TableName()).
		Columns(slices.Concat(userColumns, []string{"name_lower"})...).
		Values(u.UserID, u.Login, u.Name, u.AuthHash, u.CreatedAt, u.PhotoURL, strings.ToLower(u.Name))
}

func (db *DB) selectUserQuery(where sq.Sqlizer) sq.SelectBuilder {
	return db.builder.Select(userColumns...).From("users").Where(where)
}

// updateProfileQuery sets the non-nil fields of req. It returns false when
// there is nothing to set.
func (db *DB) updateProfileQuery(userID string, req models.UpdateProfileRequest) (sq.UpdateBuilder, bool) {
	q := db.builder.Update("users").Where(sq.Eq{"user_id": userID})
	if req.Name != nil {
		q = q.Set("name", *req.Name).Set("name_lower", strings.ToLower(*req.Name))
	}
	if req.PhotoURL != nil {
		q = q.Set("photo_url", *req.PhotoURL)
	}
	return q, !req.Empty()
}

// searchUsersQuery matches users whose display name or login starts with
// prefix, case-insensitively.
func (db *DB) searchUsersQuery(prefix string, limit int) sq.SelectBuilder {
	pattern := likePrefix(strings.ToLower(prefix))
	return db.selectUserQuery(sq.Or{
		sq.Expr("name_lower LIKE ? ESCAPE '\\'", pattern),
		sq.Expr("LOWER(login) LIKE ? ESCAPE '\\'", pattern),
	}).
		OrderBy("login").
		Limit(uint64(limit))
}

// likePrefix escapes the LIKE wildcards of s and appends one.
func likePrefix(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s) + "%"
}

func (db *DB) insertChatQuery(c models.Chat) sq.InsertBuilder {
	return db.builder.Insert(c.TableName()).
		Columns(slices.Concat(chatColumns, []string{"name_lower"})...).
		Values(c.ChatID, c.IsGroup, c.Name, c.Description, c.PhotoURL, c.CreatedBy, c.CreatedAt, c.LastMessageAt,
			c.Streak, c.StreakDay, strings.ToLower(c.Name))
}

func (db *DB) selectChatQuery(chatID string) sq.SelectBuilder {
	return db.builder.Select(chatColumns...).From("chats").Where(sq.Eq{"chat_id": chatID})
}

// updateChatQuery sets the non-nil fields of req. It returns false when
// there is nothing to set.
func (db *DB) updateChatQuery(chatID string, req models.UpdateChatRequest) (sq.UpdateBuilder, bool) {
	q := db.builder.Update("chats").Where(sq.Eq{"chat_id": chatID})
	if req.Name != nil {
		q = q.Set("name", *req.Name).Set("name_lower", strings.ToLower(*req.Name))
	}
	if req.Description != nil {
		q = q.Set("description", *req.Description)
	}
	if req.PhotoURL != nil {
		q = q.Set("photo_url", *req.PhotoURL)
	}
	return q, !req.Empty()
}

func (db *DB) searchGroupsQuery(prefix string, limit int) sq.SelectBuilder {
	return db.builder.Select(chatColumns...).
		From("chats").
		Where(sq.Eq{"is_group": true}).
		Where(sq.Expr("name_lower LIKE ? ESCAPE '\\'", likePrefix(strings.ToLower(prefix)))).
		OrderBy("name_lower", "chat_id").
		Limit(uint64(limit))
}

func (db *DB) updateStreakQuery(chatID string, streak int, day string) sq.UpdateBuilder {
	return db.builder.Update("chats").
		Set("streak", streak).
		Set("streak_day", day).
		Where(sq.Eq{"chat_id": chatID})
}

// selectChatsOfUserQuery lists the chats userID belongs to, most recently
// active first.
func (db *DB) selectChatsOfUserQuery(userID string) sq.SelectBuilder {
	cols := make([]string, len(chatColumns))
	for i, c := range chatColumns {
		cols[i] = "c." + c
	}

	return db.builder.Select(cols...).
		From("chats c").
		Join("chat_members m ON m.chat_id = c.chat_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("COALESCE(c.last_message_at, c.created_at) DESC", "c.chat_id")
}

func (db *DB) selectMembersQuery(chatIDs []string) sq.SelectBuilder {
	return db.builder.Select("chat_id", "user_id", "is_admin", "unread_count", "cleared_at").
		From("chat_members").
		Where(sq.Eq{"chat_id": chatIDs}).
		OrderBy("joined_at", "user_id")
}

func (db *DB) insertMemberQuery(chatID, userID string, isAdmin bool, joinedAt time.Time) sq.InsertBuilder {
	return db.builder.Insert("chat_members").
		Columns("chat_id", "user_id", "is_admin", "joined_at").
		Values(chatID, userID, isAdmin, joinedAt)
}

func (db *DB) deleteMemberQuery(chatID, userID string) sq.DeleteBuilder {
	return db.builder.Delete("chat_members").Where(sq.Eq{"chat_id": chatID, "user_id": userID})
}

func (db *DB) makeAdminQuery(chatID, userID string) sq.UpdateBuilder {
	return db.builder.Update("chat_members").
		Set("is_admin", true).
		Where(sq.Eq{"chat_id": chatID, "user_id": userID})
}

// bumpUnreadQuery counts a new message as unread for everyone but its sender.
func (db *DB) bumpUnreadQuery(chatID, senderID string) sq.UpdateBuilder {
	return db.builder.Update("chat_members").
		Set("unread_count", sq.Expr("unread_count + 1")).
		Where(sq.Eq{"chat_id": chatID}).
		Where(sq.NotEq{"user_id": senderID})
}

func (db *DB) resetChatUnreadQuery(chatID string) sq.UpdateBuilder {
	return db.builder.Update("chat_members").
		Set("unread_count", 0).
		Where(sq.Eq{"chat_id": chatID})
}

func (db *DB) resetUnreadQuery(chatID, userID string) sq.UpdateBuilder {
	return db.builder.Update("chat_members").
		Set("unread_count", 0).
		Where(sq.Eq{"chat_id": chatID, "user_id": userID})
}

// clearHistoryQuery hides everything up to at from one member.
func (db *DB) clearHistoryQuery(chatID, userID string, at time.Time) sq.UpdateBuilder {
	return db.builder.Update("chat_members").
		Set("cleared_at", at).
		Set("unread_count", 0).
		Where(sq.Eq{"chat_id": chatID, "user_id": userID})
}

func (db *DB) touchSenderQuery(chatID, senderID string, at time.Time) sq.UpdateBuilder {
	return db.builder.Update("chat_members").
		Set("last_sent_at", at).
		Where(sq.Eq{"chat_id": chatID, "user_id": senderID})
}

// selectStreakStateQuery returns one row per member carrying the streak of
// the chat and the member's last send time.
func (db *DB) selectStreakStateQuery(chatID string) sq.SelectBuilder {
	return db.builder.Select("c.is_group", "c.streak", "c.streak_day", "m.user_id", "m.last_sent_at").
		From("chats c").
		Join("chat_members m ON m.chat_id = c.chat_id").
		Where(sq.Eq{"c.chat_id": chatID}).
		OrderBy("m.user_id")
}

// upsertKeyQuery stores a wrapped key, replacing any stale key of the member.
func (db *DB) upsertKeyQuery(k models.WrappedKey) sq.InsertBuilder {
	return db.builder.Insert(k.TableName()).
		Columns("chat_id", "user_id", "encrypted_key", "iv").
		Values(k.ChatID, k.UserID, k.EncryptedKey, k.IV).
		Suffix("ON CONFLICT (chat_id, user_id) DO UPDATE SET encrypted_key = excluded.encrypted_key, iv = excluded.iv")
}

func (db *DB) selectKeyQuery(chatID, userID string) sq.SelectBuilder {
	return db.builder.Select("chat_id", "user_id", "encrypted_key", "iv").
		From("chat_keys").
		Where(sq.Eq{"chat_id": chatID, "user_id": userID})
}

func (db *DB) deleteKeyQuery(chatID, userID string) sq.DeleteBuilder {
	return db.builder.Delete("chat_keys").Where(sq.Eq{"chat_id": chatID, "user_id": userID})
}

func (db *DB) insertMessageQuery(m models.Message) sq.InsertBuilder {
	var (
		mimeType, mediaIV, thumbIV string
		chunkCount                 int
		thumbCount                 *int
	)
	if m.Media != nil {
		mimeType, mediaIV, chunkCount = m.Media.MimeType, m.Media.MediaIV, m.Media.ChunkCount
		if m.Media.ThumbnailAvailable {
			thumbIV = m.Media.ThumbnailIV
			count := m.Media.ThumbnailChunkCount
			thumbCount = &count
		}
	}

	return db.builder.Insert(m.TableName()).
		Columns(messageColumns...).
		Values(m.MessageID, m.ChatID, m.SenderID, string(m.Type), m.Ciphertext, m.IV, m.ReplyTo,
			mimeType, mediaIV, chunkCount, thumbIV, thumbCount, m.CreatedAt)
}

func (db *DB) touchChatQuery(chatID string, at time.Time) sq.UpdateBuilder {
	return db.builder.Update("chats").Set("last_message_at", at).Where(sq.Eq{"chat_id": chatID})
}

// recomputeLastMessageQuery points last_message_at at the newest remaining
// message, or NULL for an empty chat.
func (db *DB) recomputeLastMessageQuery(chatID string) sq.UpdateBuilder {
	return db.builder.Update("chats").
		Set("last_message_at", sq.Expr("(SELECT MAX(m.created_at) FROM messages m WHERE m.chat_id = ?)", chatID)).
		Where(sq.Eq{"chat_id": chatID})
}

func (db *DB) selectMessagesQuery(chatID string) sq.SelectBuilder {
	return db.builder.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("created_at", "message_id")
}

func (db *DB) deleteMessageQuery(chatID, messageID string) sq.DeleteBuilder {
	return db.builder.Delete("messages").Where(sq.Eq{"chat_id": chatID, "message_id": messageID})
}

func (db *DB) selectMessageSenderQuery(chatID, messageID string) sq.SelectBuilder {
	return db.builder.Select("sender_id").
		From("messages").
		Where(sq.Eq{"chat_id": chatID, "message_id": messageID})
}

// receiptColumns maps a receipt to the column recording it. Reading a message
// records its delivery too.
var receiptColumns = map[models.ReceiptKind][]string{
	models.ReceiptDelivered: {"delivered_at"},
	models.ReceiptRead:      {"delivered_at", "read_at"},
	receiptHidden:           {"hidden_at"},
}

// receiptHidden records a delete for one member in the receipts table.
const receiptHidden models.ReceiptKind = "hidden"

// upsertReceiptQuery records the first time a member reached a receipt
// state. Later reports keep the original time.
func (db *DB) upsertReceiptQuery(chatID, messageID, userID string, kind models.ReceiptKind, at time.Time) sq.InsertBuilder {
	cols := receiptColumns[kind]

	values := []any{messageID, chatID, userID}
	sets := make([]string, len(cols))
	for i, col := range cols {
		values = append(values, at)
		sets[i] = col + " = COALESCE(message_receipts." + col + ", excluded." + col + ")"
	}

	return db.builder.Insert("message_receipts").
		Columns(slices.Concat([]string{"message_id", "chat_id", "user_id"}, cols)...).
		Values(values...).
		Suffix("ON CONFLICT (message_id, user_id) DO UPDATE SET " + strings.Join(sets, ", "))
}

func (db *DB) selectReceiptsQuery(chatID string) sq.SelectBuilder {
	return db.builder.Select("message_id", "user_id", "delivered_at", "read_at", "hidden_at").
		From("message_receipts").
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("user_id")
}

func (db *DB) deleteMessagesOfChatQuery(chatID string) sq.DeleteBuilder {
	return db.builder.Delete("messages").Where(sq.Eq{"chat_id": chatID})
}

// deleteMessageChunksQuery removes the media and thumbnail sets of a message.
func (db *DB) deleteMessageChunksQuery(chatID, messageID string) sq.DeleteBuilder {
	return db.builder.Delete("media_chunks").Where(sq.Eq{
		"owner_id": messageID,
		"chat_id":  chatID,
		"kind":     []string{string(models.ChunkMedia), string(models.ChunkThumbnail)},
	})
}

func (db *DB) deleteChatChunksQuery(chatID string) sq.DeleteBuilder {
	return db.builder.Delete("media_chunks").Where(sq.Eq{"chat_id": chatID})
}

// upsertChunkQuery writes one chunk. A chunk of a set started under another
// chat or by another user is left untouched, so the statement affects zero
// rows.
func (db *DB) upsertChunkQuery(req models.UploadChunksRequest, c models.MediaChunk, at time.Time) sq.InsertBuilder {
	return db.builder.Insert("media_chunks").
		Columns("owner_id", "kind", "chunk_index", "chat_id", "data", "uploaded_at", "uploaded_by").
		Values(req.Set.OwnerID, string(req.Set.Kind), c.Index, req.Set.ChatID, c.Data, at, req.UploadedBy).
		Suffix("ON CONFLICT (owner_id, kind, chunk_index) DO UPDATE " +
			"SET data = excluded.data, uploaded_at = excluded.uploaded_at " +
			"WHERE media_chunks.chat_id = excluded.chat_id AND media_chunks.uploaded_by = excluded.uploaded_by")
}

func (db *DB) selectChunksQuery(set models.ChunkSet) sq.SelectBuilder {
	return db.builder.Select("chunk_index", "data").
		From("media_chunks").
		Where(sq.Eq{"owner_id": set.OwnerID, "kind": string(set.Kind), "chat_id": set.ChatID}).
		OrderBy("chunk_index")
}

func (db *DB) deleteChunksQuery(set models.ChunkSet) sq.DeleteBuilder {
	return db.builder.Delete("media_chunks").
		Where(sq.Eq{"owner_id": set.OwnerID, "kind": string(set.Kind), "chat_id": set.ChatID})
}

// selectOrphanChunkSetsQuery finds media and thumbnail sets whose message
// was never stored.
func (db *DB) selectOrphanChunkSetsQuery(olderThan time.Time, limit int) sq.SelectBuilder {
	return db.builder.Select("mc.owner_id", "mc.kind", "mc.chat_id").
		From("media_chunks mc").
		Where(sq.Eq{"mc.kind": []string{string(models.ChunkMedia), string(models.ChunkThumbnail)}}).
		Where("NOT EXISTS (SELECT 1 FROM messages m WHERE m.message_id = mc.owner_id)").
		GroupBy("mc.owner_id", "mc.kind", "mc.chat_id").
		Having(sq.Lt{"MAX(mc.uploaded_at)": olderThan}).
		OrderBy("mc.owner_id").
		Limit(uint64(limit))
}
