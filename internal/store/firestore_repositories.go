// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

// firestoreUserRepository implements [UserRepository] on Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreUserRepository constructs a Firestore backed [UserRepository].
func NewFirestoreUserRepository(client *firestore.Client, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating firestore user repository")
	return &firestoreUserRepository{client: client, logger: logger}
}

// CreateUser reserves the login document and writes the user atomically.
func (r *firestoreUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	loginRef := r.client.Collection(loginsCollection).Doc(user.Login)
	userRef := r.client.Collection(usersCollection).Doc(user.UserID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(loginRef, loginDoc{UserID: user.UserID}); err != nil {
			return err
		}
		return tx.Create(userRef, toUserDoc(user))
	})
	if isAlreadyExists(err) {
		return models.User{}, ErrLoginAlreadyExists
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreUserRepository.CreateUser").Msg("error creating user")
		return models.User{}, firestoreErr(err)
	}

	user.Password = ""
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

// FindUserByLogin resolves the login document and loads its user.
func (r *firestoreUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	snap, err := r.client.Collection(loginsCollection).Doc(login).Get(ctx)
	if isNotFound(err) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		return models.User{}, firestoreErr(err)
	}

	var doc loginDoc
	if err = snap.DataTo(&doc); err != nil {
		return models.User{}, firestoreErr(err)
	}

	return r.FindUserByID(ctx, doc.UserID)
}

// FindUserByID loads users/{userID}.
func (r *firestoreUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, ErrNoUserWasFound
	}

	snap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if isNotFound(err) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreUserRepository.FindUserByID").Msg("error loading user")
		return models.User{}, firestoreErr(err)
	}

	var doc userDoc
	if err = snap.DataTo(&doc); err != nil {
		return models.User{}, firestoreErr(err)
	}

	return doc.model(), nil
}

// UpdateProfile updates the non-nil fields of users/{userID}.
func (r *firestoreUserRepository) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	var updates []firestore.Update
	if req.Name != nil {
		updates = append(updates,
			firestore.Update{Path: "name", Value: *req.Name},
			firestore.Update{Path: "name_lower", Value: strings.ToLower(*req.Name)})
	}
	if req.PhotoURL != nil {
		updates = append(updates, firestore.Update{Path: "photo_url", Value: *req.PhotoURL})
	}

	if len(updates) > 0 && userID != "" {
		_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
		if isNotFound(err) {
			return models.User{}, ErrNoUserWasFound
		}
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*firestoreUserRepository.UpdateProfile").Msg("error updating user")
			return models.User{}, firestoreErr(err)
		}
	}

	return r.FindUserByID(ctx, userID)
}

// SearchUsers runs one prefix query on name_lower and one on login_lower and
// merges the results by login.
func (r *firestoreUserRepository) SearchUsers(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	prefix = strings.ToLower(prefix)

	byID := make(map[string]models.User)
	for _, field := range []string{"name_lower", "login_lower"} {
		snaps, err := prefixQuery(r.client.Collection(usersCollection).Query, field, prefix, limit).Documents(ctx).GetAll()
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*firestoreUserRepository.SearchUsers").Msg("error querying users")
			return nil, firestoreErr(err)
		}
		for _, snap := range snaps {
			var doc userDoc
			if err = snap.DataTo(&doc); err != nil {
				return nil, firestoreErr(err)
			}
			byID[doc.UserID] = doc.model()
		}
	}

	users := make([]models.User, 0, len(byID))
	for _, u := range byID {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b models.User) int { return cmp.Compare(a.Login, b.Login) })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// prefixQuery matches documents whose field starts with prefix.
func prefixQuery(q firestore.Query, field, prefix string, limit int) firestore.Query {
	return q.Where(field, ">=", prefix).
		Where(field, "<", prefix+"\uf8ff").
		OrderBy(field, firestore.Asc).
		Limit(limit)
}

// firestoreChatRepository implements [ChatRepository] on Firestore.
type firestoreChatRepository struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreChatRepository constructs a Firestore backed [ChatRepository].
func NewFirestoreChatRepository(client *firestore.Client, logger *logger.Logger) ChatRepository {
	logger.Debug().Msg("creating firestore chat repository")
	return &firestoreChatRepository{client: client, logger: logger}
}

func (r *firestoreChatRepository) chatRef(chatID string) *firestore.DocumentRef {
	return r.client.Collection(chatsCollection).Doc(chatID)
}

func (r *firestoreChatRepository) keyRef(chatID, userID string) *firestore.DocumentRef {
	return r.chatRef(chatID).Collection(keysCollection).Doc(userID)
}

// CreateChat writes the chat document and every wrapped key in one
// transaction.
func (r *firestoreChatRepository) CreateChat(ctx context.Context, req models.CreateChatRequest) (models.Chat, error) {
	doc := toChatDoc(req.Chat)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.chatRef(doc.ChatID), doc); err != nil {
			return err
		}
		for _, key := range req.Keys {
			kd := keyDoc{UserID: key.UserID, EncryptedKey: key.EncryptedKey, IV: key.IV}
			if err := tx.Set(r.keyRef(doc.ChatID, key.UserID), kd); err != nil {
				return err
			}
		}
		return nil
	})
	if isAlreadyExists(err) {
		return models.Chat{}, ErrChatAlreadyExists
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChatRepository.CreateChat").Str("chat_id", doc.ChatID).Msg("error creating chat")
		return models.Chat{}, firestoreErr(err)
	}

	return doc.model(), nil
}

// GetChat loads chats/{chatID}.
func (r *firestoreChatRepository) GetChat(ctx context.Context, chatID string) (models.Chat, error) {
	snap, err := r.chatRef(chatID).Get(ctx)
	doc, err := chatFromSnapshot(snap, err)
	if err != nil {
		return models.Chat{}, err
	}
	return doc.model(), nil
}

// ListChats queries chats whose member array contains userID. Ordering is
// done in memory to avoid a composite index.
func (r *firestoreChatRepository) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	snaps, err := r.client.Collection(chatsCollection).
		Where("members", "array-contains", userID).
		Documents(ctx).GetAll()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChatRepository.ListChats").Msg("error querying chats")
		return nil, firestoreErr(err)
	}

	docs := make([]chatDoc, 0, len(snaps))
	for _, snap := range snaps {
		var doc chatDoc
		if err = snap.DataTo(&doc); err != nil {
			return nil, firestoreErr(err)
		}
		docs = append(docs, doc)
	}

	slices.SortFunc(docs, compareChatDocs)

	chats := make([]models.Chat, len(docs))
	for i, doc := range docs {
		chats[i] = doc.model()
	}
	return chats, nil
}

// AddMember appends the member and stores the member's wrapped key.
func (r *firestoreChatRepository) AddMember(ctx context.Context, req models.AddMemberRequest) error {
	ref := r.chatRef(req.ChatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := chatFromSnapshot(tx.Get(ref))
		if err != nil {
			return err
		}
		if slices.Contains(doc.Members, req.UserID) {
			return ErrMemberAlreadyExists
		}

		err = tx.Update(ref, []firestore.Update{{Path: "members", Value: firestore.ArrayUnion(req.UserID)}})
		if err != nil {
			return err
		}
		kd := keyDoc{UserID: req.UserID, EncryptedKey: req.Key.EncryptedKey, IV: req.Key.IV}
		return tx.Set(r.keyRef(req.ChatID, req.UserID), kd)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChatRepository.AddMember").Str("chat_id", req.ChatID).Msg("error adding member")
		return firestoreErr(err)
	}

	return nil
}

// RemoveMember removes the member from both arrays and deletes the key.
func (r *firestoreChatRepository) RemoveMember(ctx context.Context, req models.RemoveMemberRequest) error {
	ref := r.chatRef(req.ChatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := chatFromSnapshot(tx.Get(ref))
		if err != nil {
			return err
		}
		if !slices.Contains(doc.Members, req.UserID) {
			return ErrMemberNotFound
		}

		err = tx.Update(ref, []firestore.Update{
			{Path: "members", Value: firestore.ArrayRemove(req.UserID)},
			{Path: "admins", Value: firestore.ArrayRemove(req.UserID)},
		})
		if err != nil {
			return err
		}
		return tx.Delete(r.keyRef(req.ChatID, req.UserID))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChatRepository.RemoveMember").Str("chat_id", req.ChatID).Msg("error removing member")
		return firestoreErr(err)
	}

	return nil
}

// MakeAdmin adds userID to the admins array of a group.
func (r *firestoreChatRepository) MakeAdmin(ctx context.Context, chatID, userID string) error {
	ref := r.chatRef(chatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := chatFromSnapshot(tx.Get(ref))
		if err != nil {
			return err
		}
		if !slices.Contains(doc.Members, userID) {
			return ErrMemberNotFound
		}
		return tx.Update(ref, []firestore.Update{{Path: "admins", Value: firestore.ArrayUnion(userID)}})
	})
	if err != nil {
		return firestoreErr(err)
	}

	return nil
}

// UpdateChat updates the non-nil fields of chats/{chatID}.
func (r *firestoreChatRepository) UpdateChat(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error) {
	var updates []firestore.Update
	if req.Name != nil {
		updates = append(updates,
			firestore.Update{Path: "name", Value: *req.Name},
			firestore.Update{Path: "name_lower", Value: strings.ToLower(*req.Name)})
	}
	if req.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *req.Description})
	}
	if req.PhotoURL != nil {
		updates = append(updates, firestore.Update{Path: "photo_url", Value: *req.PhotoURL})
	}

	if len(updates) > 0 {
		_, err := r.chatRef(chatID).Update(ctx, updates)
		if isNotFound(err) {
			return models.Chat{}, ErrChatNotFound
		}
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*firestoreChatRepository.UpdateChat").Str("chat_id", chatID).Msg("error updating chat")
			return models.Chat{}, firestoreErr(err)
		}
	}

	return r.GetChat(ctx, chatID)
}

// SearchGroups runs a prefix query on name_lower. Direct chats have no name
// and never match a non-empty prefix.
func (r *firestoreChatRepository) SearchGroups(ctx context.Context, prefix string, limit int) ([]models.Chat, error) {
	q := prefixQuery(r.client.Collection(chatsCollection).Query, "name_lower", strings.ToLower(prefix), limit)
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChatRepository.SearchGroups").Msg("error querying groups")
		return nil, firestoreErr(err)
	}

	chats := make([]models.Chat, 0, len(snaps))
	for _, snap := range snaps {
		var doc chatDoc
		if err = snap.DataTo(&doc); err != nil {
			return nil, firestoreErr(err)
		}
		if doc.IsGroup {
			chats = append(chats, doc.model())
		}
	}
	return chats, nil
}

// ResetUnread drops the unread counter of userID.
func (r *firestoreChatRepository) ResetUnread(ctx context.Context, chatID, userID string) error {
	return r.updateMember(ctx, "*firestoreChatRepository.ResetUnread", chatID, userID,
		firestore.Update{FieldPath: firestore.FieldPath{"unread_counts", userID}, Value: firestore.Delete})
}

// ClearHistory records when userID cleared the chat and drops their unread
// counter.
func (r *firestoreChatRepository) ClearHistory(ctx context.Context, chatID, userID string, at time.Time) error {
	return r.updateMember(ctx, "*firestoreChatRepository.ClearHistory", chatID, userID,
		firestore.Update{FieldPath: firestore.FieldPath{"cleared_at", userID}, Value: at.UTC()},
		firestore.Update{FieldPath: firestore.FieldPath{"unread_counts", userID}, Value: firestore.Delete})
}

// updateMember applies updates to a chat after checking userID is a member.
func (r *firestoreChatRepository) updateMember(ctx context.Context, fn, chatID, userID string, updates ...firestore.Update) error {
	ref := r.chatRef(chatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := chatFromSnapshot(tx.Get(ref))
		if err != nil {
			return err
		}
		if !slices.Contains(doc.Members, userID) {
			return ErrMemberNotFound
		}
		return tx.Update(ref, updates)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("chat_id", chatID).Msg("error updating member")
		return firestoreErr(err)
	}

	return nil
}

// GetWrappedKey loads chats/{chatID}/keys/{userID}.
func (r *firestoreChatRepository) GetWrappedKey(ctx context.Context, chatID, userID string) (models.WrappedKey, error) {
	snap, err := r.keyRef(chatID, userID).Get(ctx)
	if isNotFound(err) {
		return models.WrappedKey{}, ErrKeyNotFound
	}
	if err != nil {
		return models.WrappedKey{}, firestoreErr(err)
	}

	var doc keyDoc
	if err = snap.DataTo(&doc); err != nil {
		return models.WrappedKey{}, firestoreErr(err)
	}

	return models.WrappedKey{ChatID: chatID, UserID: doc.UserID, EncryptedKey: doc.EncryptedKey, IV: doc.IV}, nil
}

func chatFromSnapshot(snap *firestore.DocumentSnapshot, err error) (chatDoc, error) {
	if isNotFound(err) {
		return chatDoc{}, ErrChatNotFound
	}
	if err != nil {
		return chatDoc{}, err
	}

	var doc chatDoc
	if err = snap.DataTo(&doc); err != nil {
		return chatDoc{}, err
	}
	return doc, nil
}

// compareChatDocs orders chats by last activity, newest first.
func compareChatDocs(a, b chatDoc) int {
	if c := b.lastActivity().Compare(a.lastActivity()); c != 0 {
		return c
	}
	if a.ChatID < b.ChatID {
		return -1
	}
	if a.ChatID > b.ChatID {
		return 1
	}
	return 0
}

// firestoreMessageRepository implements [MessageRepository] on Firestore.
type firestoreMessageRepository struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreMessageRepository constructs a Firestore backed
// [MessageRepository].
func NewFirestoreMessageRepository(client *firestore.Client, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("creating firestore message repository")
	return &firestoreMessageRepository{client: client, logger: logger}
}

func (r *firestoreMessageRepository) messages(chatID string) *firestore.CollectionRef {
	return r.client.Collection(chatsCollection).Doc(chatID).Collection(messagesCollection)
}

// SaveMessage creates the message document and, on the chat, bumps
// last_message_at, the unread counters of the other members and the streak.
func (r *firestoreMessageRepository) SaveMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	doc := toMessageDoc(msg)
	chatRef := r.client.Collection(chatsCollection).Doc(msg.ChatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		chat, err := chatFromSnapshot(tx.Get(chatRef))
		if err != nil {
			return err
		}
		if err = tx.Create(r.messages(msg.ChatID).Doc(msg.MessageID), doc); err != nil {
			return err
		}
		return tx.Update(chatRef, messageUpdates(chat, doc))
	})
	if isAlreadyExists(err) {
		return models.Message{}, ErrMessageAlreadyExists
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreMessageRepository.SaveMessage").Str("chat_id", msg.ChatID).Msg("error saving message")
		return models.Message{}, firestoreErr(err)
	}

	return doc.model(), nil
}

// messageUpdates are the chat updates caused by saving msg.
func messageUpdates(chat chatDoc, msg messageDoc) []firestore.Update {
	updates := []firestore.Update{
		{Path: "last_message_at", Value: msg.CreatedAt},
		{FieldPath: firestore.FieldPath{"last_sent_at", msg.SenderID}, Value: msg.CreatedAt},
	}
	for _, member := range chat.Members {
		if member != msg.SenderID {
			updates = append(updates, firestore.Update{
				FieldPath: firestore.FieldPath{"unread_counts", member},
				Value:     firestore.Increment(1),
			})
		}
	}

	if chat.IsGroup {
		return updates
	}

	lastSent := make(map[string]time.Time, len(chat.LastSentAt)+1)
	for userID, at := range chat.LastSentAt {
		lastSent[userID] = at
	}
	lastSent[msg.SenderID] = msg.CreatedAt

	streak, day := models.NextStreak(chat.Streak, chat.StreakDay, chat.Members, lastSent, msg.CreatedAt)
	if streak != chat.Streak || day != chat.StreakDay {
		updates = append(updates,
			firestore.Update{Path: "streak", Value: streak},
			firestore.Update{Path: "streak_day", Value: day})
	}
	return updates
}

// MarkReceipt adds userID to the receipt arrays of a message. Receipts of
// the sender for their own message are ignored. Only membership in the
// arrays is kept, not the time of the receipt.
func (r *firestoreMessageRepository) MarkReceipt(ctx context.Context, chatID, messageID, userID string, kind models.ReceiptKind, _ time.Time) error {
	var fields []string
	switch kind {
	case models.ReceiptDelivered:
		fields = []string{"delivered_to"}
	case models.ReceiptRead:
		fields = []string{"delivered_to", "read_by"}
	default:
		return fmt.Errorf("%w: unknown receipt %q", ErrFirestore, kind)
	}
	return r.addToArrays(ctx, "*firestoreMessageRepository.MarkReceipt", chatID, messageID, userID, true, fields...)
}

// HideMessage deletes a message for userID only.
func (r *firestoreMessageRepository) HideMessage(ctx context.Context, chatID, messageID, userID string, _ time.Time) error {
	return r.addToArrays(ctx, "*firestoreMessageRepository.HideMessage", chatID, messageID, userID, false, "hidden_for")
}

func (r *firestoreMessageRepository) addToArrays(ctx context.Context, fn, chatID, messageID, userID string, skipSender bool, fields ...string) error {
	ref := r.messages(chatID).Doc(messageID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if isNotFound(err) {
			return ErrMessageNotFound
		}
		if err != nil {
			return err
		}
		var doc messageDoc
		if err = snap.DataTo(&doc); err != nil {
			return err
		}
		if skipSender && doc.SenderID == userID {
			return nil
		}

		updates := make([]firestore.Update, len(fields))
		for i, field := range fields {
			updates[i] = firestore.Update{Path: field, Value: firestore.ArrayUnion(userID)}
		}
		return tx.Update(ref, updates)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("message_id", messageID).Msg("error updating message")
		return firestoreErr(err)
	}

	return nil
}

// ListMessages returns the messages of a chat by ascending creation time.
func (r *firestoreMessageRepository) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	snaps, err := r.messages(chatID).OrderBy("created_at", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreMessageRepository.ListMessages").Msg("error querying messages")
		return nil, firestoreErr(err)
	}

	messages := make([]models.Message, 0, len(snaps))
	for _, snap := range snaps {
		var doc messageDoc
		if err = snap.DataTo(&doc); err != nil {
			return nil, firestoreErr(err)
		}
		messages = append(messages, doc.model())
	}

	return messages, nil
}

// DeleteMessage removes the message document and moves last_message_at back
// to the previous message in one transaction, then deletes its chunk sets.
func (r *firestoreMessageRepository) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	ref := r.messages(chatID).Doc(messageID)
	chatRef := r.client.Collection(chatsCollection).Doc(chatID)
	latest := r.messages(chatID).OrderBy("created_at", firestore.Desc).Limit(2)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return ErrMessageNotFound
			}
			return err
		}
		snaps, err := tx.Documents(latest).GetAll()
		if err != nil {
			return err
		}

		var lastMessageAt *time.Time
		for _, snap := range snaps {
			if snap.Ref.ID == messageID {
				continue
			}
			var doc messageDoc
			if err = snap.DataTo(&doc); err != nil {
				return err
			}
			lastMessageAt = &doc.CreatedAt
			break
		}

		if err = tx.Delete(ref); err != nil {
			return err
		}
		return tx.Update(chatRef, []firestore.Update{{Path: "last_message_at", Value: lastMessageAt}})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreMessageRepository.DeleteMessage").Str("message_id", messageID).Msg("error deleting message")
		return firestoreErr(err)
	}

	chunks := &firestoreChunkRepository{client: r.client, logger: r.logger}
	for _, kind := range []models.ChunkKind{models.ChunkMedia, models.ChunkThumbnail} {
		if err = chunks.DeleteChunks(ctx, models.ChunkSet{OwnerID: messageID, Kind: kind, ChatID: chatID}); err != nil {
			return err
		}
	}

	return nil
}

// clearPageSize keeps a page of deletes below the 500 writes a Firestore
// transaction accepts.
const clearPageSize = 450

// ClearChat deletes the messages of a chat in transactional pages of
// clearPageSize, resetting last_message_at and the unread counters with the
// last page. Chunk sets are
// deleted afterwards; a set left behind by a failure has no message anymore
// and is collected by the orphan sweeper.
func (r *firestoreMessageRepository) ClearChat(ctx context.Context, chatID string) (int64, error) {
	log := logger.FromContext(ctx)
	chatRef := r.client.Collection(chatsCollection).Doc(chatID)
	page := r.messages(chatID).Limit(clearPageSize)

	var deleted int64
	for {
		var n int
		err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			snaps, err := tx.Documents(page).GetAll()
			if err != nil {
				return err
			}
			n = len(snaps)
			for _, snap := range snaps {
				if err = tx.Delete(snap.Ref); err != nil {
					return err
				}
			}
			if n < clearPageSize {
				return tx.Update(chatRef, []firestore.Update{
					{Path: "last_message_at", Value: nil},
					{Path: "unread_counts", Value: map[string]int{}},
				})
			}
			return nil
		})
		if err != nil {
			log.Err(err).Str("func", "*firestoreMessageRepository.ClearChat").Str("chat_id", chatID).Int64("deleted", deleted).Msg("error clearing messages")
			return deleted, firestoreErr(err)
		}
		deleted += int64(n)
		if n < clearPageSize {
			break
		}
	}

	sets, err := r.client.Collection(chunkSetsCollection).Where("chat_id", "==", chatID).Documents(ctx).GetAll()
	if err != nil {
		log.Err(err).Str("func", "*firestoreMessageRepository.ClearChat").Msg("error querying chunk sets")
		return deleted, firestoreErr(err)
	}
	chunks := &firestoreChunkRepository{client: r.client, logger: r.logger}
	for _, snap := range sets {
		var doc chunkSetDoc
		if err = snap.DataTo(&doc); err != nil {
			return deleted, firestoreErr(err)
		}
		set := models.ChunkSet{OwnerID: doc.OwnerID, Kind: models.ChunkKind(doc.Kind), ChatID: doc.ChatID}
		if err = chunks.DeleteChunks(ctx, set); err != nil {
			return deleted, err
		}
	}

	return deleted, nil
}

// firestoreChunkRepository implements [ChunkRepository] on Firestore.
type firestoreChunkRepository struct {
	client *firestore.Client
	logger *logger.Logger
}

// NewFirestoreChunkRepository constructs a Firestore backed [ChunkRepository].
func NewFirestoreChunkRepository(client *firestore.Client, logger *logger.Logger) ChunkRepository {
	logger.Debug().Msg("creating firestore chunk repository")
	return &firestoreChunkRepository{client: client, logger: logger}
}

func (r *firestoreChunkRepository) setRef(set models.ChunkSet) *firestore.DocumentRef {
	return r.client.Collection(chunkSetsCollection).Doc(chunkSetDocID(set))
}

// SaveChunks writes the set document and its chunks in one transaction.
func (r *firestoreChunkRepository) SaveChunks(ctx context.Context, req models.UploadChunksRequest) error {
	ref := r.setRef(req.Set)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		switch {
		case isNotFound(err):
		case err != nil:
			return err
		default:
			var existing chunkSetDoc
			if err = snap.DataTo(&existing); err != nil {
				return err
			}
			if existing.ChatID != req.Set.ChatID || existing.UploadedBy != req.UploadedBy {
				return ErrChunkSetConflict
			}
		}

		doc := chunkSetDoc{
			OwnerID:    req.Set.OwnerID,
			Kind:       string(req.Set.Kind),
			ChatID:     req.Set.ChatID,
			UploadedBy: req.UploadedBy,
			UploadedAt: time.Now().UTC(),
		}
		if err = tx.Set(ref, doc); err != nil {
			return err
		}
		for _, chunk := range req.Chunks {
			cd := chunkDoc{Index: chunk.Index, Data: chunk.Data}
			if err = tx.Set(ref.Collection(chunksCollection).Doc(chunkDocID(chunk.Index)), cd); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChunkRepository.SaveChunks").Str("owner_id", req.Set.OwnerID).Msg("error saving chunks")
		return firestoreErr(err)
	}

	return nil
}

// GetChunks returns the chunks of set ordered by index. A set owned by a
// different chat reads as empty.
func (r *firestoreChunkRepository) GetChunks(ctx context.Context, set models.ChunkSet) ([]models.MediaChunk, error) {
	ref := r.setRef(set)

	snap, err := ref.Get(ctx)
	if isNotFound(err) {
		return []models.MediaChunk{}, nil
	}
	if err != nil {
		return nil, firestoreErr(err)
	}
	var doc chunkSetDoc
	if err = snap.DataTo(&doc); err != nil {
		return nil, firestoreErr(err)
	}
	if doc.ChatID != set.ChatID {
		return []models.MediaChunk{}, nil
	}

	snaps, err := ref.Collection(chunksCollection).OrderBy("index", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChunkRepository.GetChunks").Msg("error querying chunks")
		return nil, firestoreErr(err)
	}

	chunks := make([]models.MediaChunk, 0, len(snaps))
	for _, s := range snaps {
		var cd chunkDoc
		if err = s.DataTo(&cd); err != nil {
			return nil, firestoreErr(err)
		}
		chunks = append(chunks, models.MediaChunk{Index: cd.Index, Data: cd.Data})
	}

	return chunks, nil
}

// DeleteChunks removes the set document and all of its chunks with a bulk
// writer and reports the first failed delete.
func (r *firestoreChunkRepository) DeleteChunks(ctx context.Context, set models.ChunkSet) error {
	ref := r.setRef(set)

	snaps, err := ref.Collection(chunksCollection).Documents(ctx).GetAll()
	if err != nil {
		return firestoreErr(err)
	}

	refs := make([]*firestore.DocumentRef, 0, len(snaps)+1)
	for _, snap := range snaps {
		refs = append(refs, snap.Ref)
	}
	// deleting a missing document is not an error
	refs = append(refs, ref)

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return firestoreErr(err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err = job.Results(); err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*firestoreChunkRepository.DeleteChunks").Str("owner_id", set.OwnerID).Msg("error deleting chunk")
			return firestoreErr(err)
		}
	}

	return nil
}

// ListOrphanChunkSets scans sets older than olderThan and keeps the media
// and thumbnail sets whose message document does not exist.
func (r *firestoreChunkRepository) ListOrphanChunkSets(ctx context.Context, olderThan time.Time, limit int) ([]models.ChunkSet, error) {
	snaps, err := r.client.Collection(chunkSetsCollection).
		Where("uploaded_at", "<", olderThan.UTC()).
		OrderBy("uploaded_at", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*firestoreChunkRepository.ListOrphanChunkSets").Msg("error querying chunk sets")
		return nil, firestoreErr(err)
	}

	sets := make([]models.ChunkSet, 0)
	for _, snap := range snaps {
		if len(sets) >= limit {
			break
		}

		var doc chunkSetDoc
		if err = snap.DataTo(&doc); err != nil {
			return nil, firestoreErr(err)
		}
		set := models.ChunkSet{OwnerID: doc.OwnerID, Kind: models.ChunkKind(doc.Kind), ChatID: doc.ChatID}
		if set.Kind == models.ChunkPublic {
			continue
		}

		_, err = r.client.Collection(chatsCollection).Doc(doc.ChatID).
			Collection(messagesCollection).Doc(doc.OwnerID).Get(ctx)
		switch {
		case isNotFound(err):
			sets = append(sets, set)
		case err != nil:
			return nil, firestoreErr(err)
		}
	}

	return sets, nil
}
