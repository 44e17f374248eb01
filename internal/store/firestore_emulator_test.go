// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

// newEmulatorClient connects to the emulator named by FIRESTORE_EMULATOR_HOST
// under a project of its own, so tests never see each other's documents.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST is not set")
	}

	project := fmt.Sprintf("sealed-chat-test-%d", time.Now().UnixNano())
	client, err := NewConnectFirestore(context.Background(), config.Firestore{ProjectID: project}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type emulatorRepos struct {
	users    UserRepository
	chats    ChatRepository
	messages MessageRepository
	chunks   ChunkRepository
}

func newEmulatorRepos(t *testing.T) emulatorRepos {
	client := newEmulatorClient(t)
	log := logger.Nop()
	return emulatorRepos{
		users:    NewFirestoreUserRepository(client, log),
		chats:    NewFirestoreChatRepository(client, log),
		messages: NewFirestoreMessageRepository(client, log),
		chunks:   NewFirestoreChunkRepository(client, log),
	}
}

func emulatorChat(t *testing.T, repos emulatorRepos, chat models.Chat) models.Chat {
	t.Helper()
	keys := make([]models.WrappedKey, 0, len(chat.Members))
	for _, m := range chat.Members {
		keys = append(keys, models.WrappedKey{ChatID: chat.ChatID, UserID: m, EncryptedKey: "k-" + m, IV: "iv"})
	}
	created, err := repos.chats.CreateChat(context.Background(), models.CreateChatRequest{Chat: chat, Keys: keys})
	require.NoError(t, err)
	return created
}

func emulatorMessage(t *testing.T, repos emulatorRepos, chatID, messageID, sender string, at time.Time) {
	t.Helper()
	_, err := repos.messages.SaveMessage(context.Background(), models.Message{
		MessageID: messageID, ChatID: chatID, SenderID: sender,
		Type: models.MessageText, Ciphertext: "ct", IV: "iv", CreatedAt: at,
	})
	require.NoError(t, err)
}

func TestFirestoreEmulator_ChatMembership(t *testing.T) {
	repos := newEmulatorRepos(t)
	ctx := context.Background()
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	chat := emulatorChat(t, repos, models.Chat{
		ChatID: "g1", IsGroup: true, Name: "Team", CreatedBy: "alice",
		Members: []string{"alice", "bob"}, CreatedAt: created,
	})
	assert.Equal(t, []string{"alice"}, chat.Admins)

	_, err := repos.chats.CreateChat(ctx, models.CreateChatRequest{Chat: models.Chat{ChatID: "g1"}})
	assert.ErrorIs(t, err, ErrChatAlreadyExists)

	add := models.AddMemberRequest{ChatID: "g1", UserID: "carol", Key: models.WrappedKey{EncryptedKey: "k-carol", IV: "iv"}}
	require.NoError(t, repos.chats.AddMember(ctx, add))
	assert.ErrorIs(t, repos.chats.AddMember(ctx, add), ErrMemberAlreadyExists)

	require.NoError(t, repos.chats.MakeAdmin(ctx, "g1", "carol"))
	require.NoError(t, repos.chats.RemoveMember(ctx, models.RemoveMemberRequest{ChatID: "g1", UserID: "carol"}))
	assert.ErrorIs(t, repos.chats.RemoveMember(ctx, models.RemoveMemberRequest{ChatID: "g1", UserID: "carol"}), ErrMemberNotFound)

	got, err := repos.chats.GetChat(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got.Members)
	assert.Equal(t, []string{"alice"}, got.Admins)

	// only the removed member's key is gone
	_, err = repos.chats.GetWrappedKey(ctx, "g1", "carol")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	key, err := repos.chats.GetWrappedKey(ctx, "g1", "bob")
	require.NoError(t, err)
	assert.Equal(t, "k-bob", key.EncryptedKey)

	_, err = repos.chats.GetChat(ctx, "missing")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestFirestoreEmulator_LastMessageAtFollowsDeletes(t *testing.T) {
	repos := newEmulatorRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	emulatorChat(t, repos, models.Chat{ChatID: "g1", IsGroup: true, Name: "team", CreatedBy: "alice", Members: []string{"alice", "bob"}, CreatedAt: base})
	emulatorMessage(t, repos, "g1", "m1", "alice", base.Add(time.Minute))
	emulatorMessage(t, repos, "g1", "m2", "bob", base.Add(2*time.Minute))

	require.NoError(t, repos.messages.DeleteMessage(ctx, "g1", "m2"))
	chat, err := repos.chats.GetChat(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, chat.LastMessageAt)
	assert.True(t, chat.LastMessageAt.Equal(base.Add(time.Minute)))

	assert.ErrorIs(t, repos.messages.DeleteMessage(ctx, "g1", "m2"), ErrMessageNotFound)

	emulatorMessage(t, repos, "g1", "m3", "alice", base.Add(3*time.Minute))
	deleted, err := repos.messages.ClearChat(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	chat, err = repos.chats.GetChat(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, chat.LastMessageAt)
	assert.Empty(t, chat.UnreadCounts)
}

func TestFirestoreEmulator_UnreadReceiptsAndPersonalClear(t *testing.T) {
	repos := newEmulatorRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	emulatorChat(t, repos, models.Chat{ChatID: "g1", IsGroup: true, Name: "team", CreatedBy: "alice", Members: []string{"alice", "bob", "carol"}, CreatedAt: base})
	emulatorMessage(t, repos, "g1", "m1", "alice", base.Add(time.Minute))
	emulatorMessage(t, repos, "g1", "m2", "alice", base.Add(2*time.Minute))

	chat, err := repos.chats.GetChat(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"bob": 2, "carol": 2}, chat.UnreadCounts)

	require.NoError(t, repos.chats.ResetUnread(ctx, "g1", "bob"))
	assert.ErrorIs(t, repos.chats.ResetUnread(ctx, "g1", "mallory"), ErrMemberNotFound)

	require.NoError(t, repos.messages.MarkReceipt(ctx, "g1", "m1", "bob", models.ReceiptRead, base))
	require.NoError(t, repos.messages.MarkReceipt(ctx, "g1", "m1", "carol", models.ReceiptDelivered, base))
	require.NoError(t, repos.messages.MarkReceipt(ctx, "g1", "m1", "alice", models.ReceiptRead, base))
	assert.ErrorIs(t, repos.messages.MarkReceipt(ctx, "g1", "nope", "bob", models.ReceiptRead, base), ErrMessageNotFound)
	require.NoError(t, repos.messages.HideMessage(ctx, "g1", "m2", "alice", base))

	clearedAt := base.Add(90 * time.Second)
	require.NoError(t, repos.chats.ClearHistory(ctx, "g1", "carol", clearedAt))

	messages, err := repos.messages.ListMessages(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.ElementsMatch(t, []string{"bob", "carol"}, messages[0].DeliveredTo)
	assert.Equal(t, []string{"bob"}, messages[0].ReadBy)
	assert.Equal(t, []string{"alice"}, messages[1].HiddenFor)

	chat, err = repos.chats.GetChat(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, chat.UnreadCounts)
	assert.True(t, chat.ClearedAt["carol"].Equal(clearedAt))
	assert.False(t, messages[0].VisibleTo("carol", chat.ClearedAt["carol"]))
	assert.True(t, messages[1].VisibleTo("carol", chat.ClearedAt["carol"]))
}

func TestFirestoreEmulator_DirectChatStreak(t *testing.T) {
	repos := newEmulatorRepos(t)
	ctx := context.Background()
	day1 := time.Date(2026, 5, 9, 12, 0, 0, 0, time.UTC)

	emulatorChat(t, repos, models.Chat{ChatID: "b_a", Members: []string{"a", "b"}, CreatedAt: day1})
	emulatorMessage(t, repos, "b_a", "m1", "a", day1)
	emulatorMessage(t, repos, "b_a", "m2", "b", day1.Add(time.Minute))
	emulatorMessage(t, repos, "b_a", "m3", "a", day1.Add(2*time.Minute))

	chat, err := repos.chats.GetChat(ctx, "b_a")
	require.NoError(t, err)
	assert.Equal(t, 1, chat.Streak)
	assert.Equal(t, "2026-05-09", chat.StreakDay)

	day2 := day1.AddDate(0, 0, 1)
	emulatorMessage(t, repos, "b_a", "m4", "b", day2)
	emulatorMessage(t, repos, "b_a", "m5", "a", day2.Add(time.Minute))

	chat, err = repos.chats.GetChat(ctx, "b_a")
	require.NoError(t, err)
	assert.Equal(t, 2, chat.Streak)
	assert.Equal(t, "2026-05-10", chat.StreakDay)
}

func TestFirestoreEmulator_ProfilesAndSearch(t *testing.T) {
	repos := newEmulatorRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, u := range []models.User{
		{UserID: "u1", Login: "alice", Name: "Alice", CreatedAt: now},
		{UserID: "u2", Login: "albert", Name: "Bert", CreatedAt: now},
		{UserID: "u3", Login: "bob", Name: "Alfred", CreatedAt: now},
	} {
		_, err := repos.users.CreateUser(ctx, u)
		require.NoError(t, err)
	}
	_, err := repos.users.CreateUser(ctx, models.User{UserID: "u4", Login: "alice"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)

	found, err := repos.users.SearchUsers(ctx, "AL", 10)
	require.NoError(t, err)
	logins := make([]string, len(found))
	for i, u := range found {
		logins[i] = u.Login
	}
	assert.Equal(t, []string{"albert", "alice", "bob"}, logins)

	name := "Zed"
	updated, err := repos.users.UpdateProfile(ctx, "u3", models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Zed", updated.Name)

	found, err = repos.users.SearchUsers(ctx, "al", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = repos.users.UpdateProfile(ctx, "ghost", models.UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNoUserWasFound)

	emulatorChat(t, repos, models.Chat{ChatID: "g1", IsGroup: true, Name: "Book club", CreatedBy: "u1", Members: []string{"u1", "u2"}, CreatedAt: now})
	emulatorChat(t, repos, models.Chat{ChatID: "g2", IsGroup: true, Name: "Chess", CreatedBy: "u1", Members: []string{"u1", "u2"}, CreatedAt: now})

	description := "weekly"
	chat, err := repos.chats.UpdateChat(ctx, "g2", models.UpdateChatRequest{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Chess", chat.Name)
	assert.Equal(t, "weekly", chat.Description)

	groups, err := repos.chats.SearchGroups(ctx, "bo", 10)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].ChatID)

	_, err = repos.chats.UpdateChat(ctx, "missing", models.UpdateChatRequest{Description: &description})
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestFirestoreEmulator_ChunkSets(t *testing.T) {
	repos := newEmulatorRepos(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	emulatorChat(t, repos, models.Chat{ChatID: "g1", IsGroup: true, Name: "team", CreatedBy: "alice", Members: []string{"alice", "bob"}, CreatedAt: now})
	emulatorMessage(t, repos, "g1", "m1", "alice", now)

	kept := models.ChunkSet{OwnerID: "m1", Kind: models.ChunkMedia, ChatID: "g1"}
	orphan := models.ChunkSet{OwnerID: "never-sent", Kind: models.ChunkMedia, ChatID: "g1"}
	public := models.ChunkSet{OwnerID: "avatar", Kind: models.ChunkPublic}
	for _, set := range []models.ChunkSet{kept, orphan, public} {
		require.NoError(t, repos.chunks.SaveChunks(ctx, models.UploadChunksRequest{
			Set: set, UploadedBy: "alice",
			Chunks: []models.MediaChunk{{Index: 1, Data: "b"}, {Index: 0, Data: "a"}},
		}))
	}

	err := repos.chunks.SaveChunks(ctx, models.UploadChunksRequest{Set: kept, UploadedBy: "bob", Chunks: []models.MediaChunk{{Index: 2, Data: "c"}}})
	assert.ErrorIs(t, err, ErrChunkSetConflict)
	otherChat := kept
	otherChat.ChatID = "g2"
	err = repos.chunks.SaveChunks(ctx, models.UploadChunksRequest{Set: otherChat, UploadedBy: "alice", Chunks: []models.MediaChunk{{Index: 2, Data: "c"}}})
	assert.ErrorIs(t, err, ErrChunkSetConflict)

	chunks, err := repos.chunks.GetChunks(ctx, kept)
	require.NoError(t, err)
	assert.Equal(t, []models.MediaChunk{{Index: 0, Data: "a"}, {Index: 1, Data: "b"}}, chunks)

	chunks, err = repos.chunks.GetChunks(ctx, otherChat)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	orphans, err := repos.chunks.ListOrphanChunkSets(ctx, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	assert.Equal(t, []models.ChunkSet{orphan}, orphans)

	// deleting the message takes its chunks along
	require.NoError(t, repos.messages.DeleteMessage(ctx, "g1", "m1"))
	chunks, err = repos.chunks.GetChunks(ctx, kept)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
