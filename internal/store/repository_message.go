// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

// messageRepository is the SQL implementation of [MessageRepository].
type messageRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMessageRepository constructs a [MessageRepository] backed by db.
func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("creating message repository")
	return &messageRepository{
		db:     db,
		logger: logger,
	}
}

// SaveMessage inserts msg, updates last_message_at of its chat, counts the
// message as unread for the other members and advances the streak of a
// direct chat.
func (r *messageRepository) SaveMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	log := logger.FromContext(ctx)

	msg.CreatedAt = msg.CreatedAt.UTC()
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.db.exec(ctx, tx, r.db.insertMessageQuery(msg)); err != nil {
			if r.db.errorClassificator.IsUniqueViolation(err) {
				return ErrMessageAlreadyExists
			}
			return err
		}

		affected, err := r.db.exec(ctx, tx, r.db.touchChatQuery(msg.ChatID, msg.CreatedAt))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrChatNotFound
		}

		if _, err = r.db.exec(ctx, tx, r.db.bumpUnreadQuery(msg.ChatID, msg.SenderID)); err != nil {
			return err
		}
		if _, err = r.db.exec(ctx, tx, r.db.touchSenderQuery(msg.ChatID, msg.SenderID, msg.CreatedAt)); err != nil {
			return err
		}

		return r.advanceStreak(ctx, tx, msg.ChatID, msg.CreatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.SaveMessage").Str("chat_id", msg.ChatID).Msg("error saving message")
		return models.Message{}, err
	}

	return msg, nil
}

// ListMessages returns the messages of chatID oldest first.
func (r *messageRepository) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db, r.db.selectMessagesQuery(chatID))
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Str("chat_id", chatID).Msg("error querying messages")
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			log.Err(err).Str("func", "*messageRepository.ListMessages").Msg("error scanning message")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		messages = append(messages, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err = r.loadReceipts(ctx, chatID, messages); err != nil {
		log.Err(err).Str("func", "*messageRepository.ListMessages").Str("chat_id", chatID).Msg("error loading receipts")
		return nil, err
	}

	return messages, nil
}

// MarkReceipt records that userID received or read a message. Receipts of
// the sender for their own message are ignored.
func (r *messageRepository) MarkReceipt(ctx context.Context, chatID, messageID, userID string, kind models.ReceiptKind, at time.Time) error {
	return r.saveReceipt(ctx, "*messageRepository.MarkReceipt", chatID, messageID, userID, kind, at)
}

// HideMessage deletes a message for userID only.
func (r *messageRepository) HideMessage(ctx context.Context, chatID, messageID, userID string, at time.Time) error {
	return r.saveReceipt(ctx, "*messageRepository.HideMessage", chatID, messageID, userID, receiptHidden, at)
}

func (r *messageRepository) saveReceipt(ctx context.Context, fn, chatID, messageID, userID string, kind models.ReceiptKind, at time.Time) error {
	log := logger.FromContext(ctx)

	if _, ok := receiptColumns[kind]; !ok {
		return fmt.Errorf("%w: unknown receipt %q", ErrBuildingSQLQuery, kind)
	}

	row, err := r.db.queryRow(ctx, r.db, r.db.selectMessageSenderQuery(chatID, messageID))
	if err != nil {
		return err
	}

	var senderID string
	err = row.Scan(&senderID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMessageNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error scanning message")
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if senderID == userID && kind != receiptHidden {
		return nil
	}

	if _, err = r.db.exec(ctx, r.db, r.db.upsertReceiptQuery(chatID, messageID, userID, kind, at.UTC())); err != nil {
		log.Err(err).Str("func", fn).Str("message_id", messageID).Msg("error saving receipt")
		return err
	}

	return nil
}

// loadReceipts fills DeliveredTo, ReadBy and HiddenFor of messages.
func (r *messageRepository) loadReceipts(ctx context.Context, chatID string, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	byID := make(map[string]*models.Message, len(messages))
	for i := range messages {
		byID[messages[i].MessageID] = &messages[i]
	}

	rows, err := r.db.query(ctx, r.db, r.db.selectReceiptsQuery(chatID))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			messageID, userID         string
			delivered, read, hiddenAt sql.NullTime
		)
		if err = rows.Scan(&messageID, &userID, &delivered, &read, &hiddenAt); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		msg, ok := byID[messageID]
		if !ok {
			continue
		}
		if delivered.Valid {
			msg.DeliveredTo = append(msg.DeliveredTo, userID)
		}
		if read.Valid {
			msg.ReadBy = append(msg.ReadBy, userID)
		}
		if hiddenAt.Valid {
			msg.HiddenFor = append(msg.HiddenFor, userID)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

// advanceStreak recomputes the streak of a direct chat inside the
// transaction that saved a message at now.
func (r *messageRepository) advanceStreak(ctx context.Context, tx *sql.Tx, chatID string, now time.Time) error {
	rows, err := r.db.query(ctx, tx, r.db.selectStreakStateQuery(chatID))
	if err != nil {
		return err
	}
	defer rows.Close()

	var (
		isGroup   bool
		streak    int
		streakDay string
		members   []string
		lastSent  = make(map[string]time.Time)
	)
	for rows.Next() {
		var (
			userID string
			sentAt sql.NullTime
		)
		if err = rows.Scan(&isGroup, &streak, &streakDay, &userID, &sentAt); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		members = append(members, userID)
		if sentAt.Valid {
			lastSent[userID] = sentAt.Time
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	if isGroup || len(members) == 0 {
		return nil
	}

	next, day := models.NextStreak(streak, streakDay, members, lastSent, now)
	if next == streak && day == streakDay {
		return nil
	}

	_, err = r.db.exec(ctx, tx, r.db.updateStreakQuery(chatID, next, day))
	return err
}

// DeleteMessage removes the message and its media and thumbnail chunks, then
// moves last_message_at back to the previous message.
func (r *messageRepository) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	log := logger.FromContext(ctx)

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		affected, err := r.db.exec(ctx, tx, r.db.deleteMessageQuery(chatID, messageID))
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrMessageNotFound
		}

		if _, err = r.db.exec(ctx, tx, r.db.deleteMessageChunksQuery(chatID, messageID)); err != nil {
			return err
		}

		_, err = r.db.exec(ctx, tx, r.db.recomputeLastMessageQuery(chatID))
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.DeleteMessage").Str("message_id", messageID).Msg("error deleting message")
		return err
	}

	return nil
}

// ClearChat removes every message and chunk set of chatID and resets
// last_message_at and the unread counters.
func (r *messageRepository) ClearChat(ctx context.Context, chatID string) (int64, error) {
	log := logger.FromContext(ctx)

	var deleted int64
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.db.exec(ctx, tx, r.db.deleteChatChunksQuery(chatID)); err != nil {
			return err
		}

		affected, err := r.db.exec(ctx, tx, r.db.deleteMessagesOfChatQuery(chatID))
		if err != nil {
			return err
		}
		deleted = affected

		if _, err = r.db.exec(ctx, tx, r.db.resetChatUnreadQuery(chatID)); err != nil {
			return err
		}

		_, err = r.db.exec(ctx, tx, r.db.recomputeLastMessageQuery(chatID))
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*messageRepository.ClearChat").Str("chat_id", chatID).Msg("error clearing chat")
		return 0, err
	}

	return deleted, nil
}

func scanMessage(row rowScanner) (models.Message, error) {
	var (
		msg        models.Message
		msgType    string
		mimeType   string
		mediaIV    string
		chunkCount int
		thumbIV    string
		thumbCount sql.NullInt64
	)
	err := row.Scan(&msg.MessageID, &msg.ChatID, &msg.SenderID, &msgType, &msg.Ciphertext, &msg.IV, &msg.ReplyTo,
		&mimeType, &mediaIV, &chunkCount, &thumbIV, &thumbCount, &msg.CreatedAt)
	if err != nil {
		return models.Message{}, err
	}

	msg.Type = models.MessageType(msgType)
	if msg.Type != models.MessageText || chunkCount > 0 {
		msg.Media = &models.MediaInfo{
			MimeType:   mimeType,
			MediaIV:    mediaIV,
			ChunkCount: chunkCount,
		}
		if thumbCount.Valid {
			msg.Media.ThumbnailAvailable = true
			msg.Media.ThumbnailIV = thumbIV
			msg.Media.ThumbnailChunkCount = int(thumbCount.Int64)
		}
	}

	return msg, nil
}
