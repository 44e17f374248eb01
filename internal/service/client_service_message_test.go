// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/mock"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientMessageService(t *testing.T) (ClientMessageService, *mock.MockServerAdapter, crypto.ChatKey) {
	t.Helper()
	server := mock.NewMockServerAdapter(gomock.NewController(t))

	key, err := newTestChatCrypto().GenerateChatKey()
	require.NoError(t, err)
	cache := NewKeyCache()
	cache.Put(groupID, alice, key)

	keys := NewClientChatService(server, newTestChatCrypto(), cache, logger.Nop())
	return NewClientMessageService(server, newTestChatCrypto(), keys, logger.Nop()), server, key
}

func TestClientMessageService_SendMessage_EncryptsText(t *testing.T) {
	svc, server, key := newTestClientMessageService(t)
	chatCrypto := newTestChatCrypto()

	server.EXPECT().SendMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.Message) (models.Message, error) {
			assert.True(t, utils.IsUUID(msg.MessageID))
			assert.Equal(t, models.MessageText, msg.Type)
			assert.Equal(t, "m-0", msg.ReplyTo)
			assert.NotContains(t, msg.Ciphertext, "hello")

			text, err := chatCrypto.DecryptMessage(msg.Ciphertext, msg.IV, key)
			require.NoError(t, err)
			assert.Equal(t, "hello", text)
			return msg, nil
		},
	)

	_, err := svc.SendMessage(context.Background(), alice, groupID, "hello", "m-0")
	require.NoError(t, err)
}

func TestClientMessageService_SendMessage_NoKey(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)

	server.EXPECT().GetWrappedKey(gomock.Any(), "other-chat").
		Return(models.WrappedKey{}, adapterError(adapter.ErrForbidden, app.MsgNotChatMember))

	_, err := svc.SendMessage(context.Background(), alice, "other-chat", "hello", "")

	assert.ErrorIs(t, err, ErrNotChatMember)
}

func TestClientMessageService_ListMessages_Placeholder(t *testing.T) {
	svc, server, key := newTestClientMessageService(t)
	chatCrypto := newTestChatCrypto()

	good, err := chatCrypto.EncryptMessage("first", key)
	require.NoError(t, err)
	otherKey, err := chatCrypto.GenerateChatKey()
	require.NoError(t, err)
	bad, err := chatCrypto.EncryptMessage("second", otherKey)
	require.NoError(t, err)

	server.EXPECT().ListMessages(gomock.Any(), groupID).Return([]models.Message{
		{MessageID: "m-1", ChatID: groupID, Type: models.MessageText, Ciphertext: good.Ciphertext, IV: good.IV},
		{MessageID: "m-2", ChatID: groupID, Type: models.MessageText, Ciphertext: bad.Ciphertext, IV: bad.IV},
		{MessageID: "m-3", ChatID: groupID, Type: models.MessageImage, Media: &models.MediaInfo{MimeType: "image/png"}},
	}, nil)

	got, err := svc.ListMessages(context.Background(), alice, groupID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, crypto.DecryptionPlaceholder, got[1].Text)
	assert.Empty(t, got[2].Text)
}

func TestClientMessageService_ListMessages_CorruptWrappedKey(t *testing.T) {
	server := mock.NewMockServerAdapter(gomock.NewController(t))
	chatCrypto := newTestChatCrypto()
	keys := NewClientChatService(server, chatCrypto, NewKeyCache(), logger.Nop())
	svc := NewClientMessageService(server, chatCrypto, keys, logger.Nop())

	key, err := chatCrypto.GenerateChatKey()
	require.NoError(t, err)
	wrapped, err := chatCrypto.WrapKeyForUser(key, alice)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(wrapped.EncryptedKey)
	require.NoError(t, err)
	raw[0] ^= 0xff
	wrapped.EncryptedKey = base64.StdEncoding.EncodeToString(raw)
	sealed, err := chatCrypto.EncryptMessage("secret", key)
	require.NoError(t, err)

	server.EXPECT().ListMessages(gomock.Any(), groupID).Return([]models.Message{
		{MessageID: "m-1", ChatID: groupID, Type: models.MessageText, Ciphertext: sealed.Ciphertext, IV: sealed.IV},
		{MessageID: "m-2", ChatID: groupID, Type: models.MessageText, Ciphertext: sealed.Ciphertext, IV: sealed.IV},
	}, nil)
	server.EXPECT().GetWrappedKey(gomock.Any(), groupID).Return(wrapped, nil)

	got, err := svc.ListMessages(context.Background(), alice, groupID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, msg := range got {
		assert.Equal(t, crypto.DecryptionPlaceholder, msg.Text)
	}
}

func TestClientMessageService_ListMessages_ServerRefuses(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)

	server.EXPECT().ListMessages(gomock.Any(), groupID).
		Return(nil, adapterError(adapter.ErrForbidden, app.MsgNotChatMember))

	_, err := svc.ListMessages(context.Background(), alice, groupID)

	assert.ErrorIs(t, err, ErrNotChatMember)
}

func TestClientMessageService_DeleteAndClear(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)
	ctx := context.Background()

	server.EXPECT().DeleteMessage(ctx, groupID, "m-1").Return(adapterError(adapter.ErrNotFound, app.MsgMessageNotFound))
	server.EXPECT().ClearChat(ctx, groupID).Return(int64(0), adapterError(adapter.ErrForbidden, app.MsgNotChatAdmin))

	assert.ErrorIs(t, svc.DeleteMessage(ctx, groupID, "m-1"), store.ErrMessageNotFound)

	_, err := svc.ClearChat(ctx, groupID)
	assert.ErrorIs(t, err, ErrNotChatAdmin)
}

func TestClientMessageService_MarkDelivered_SkipsOwnAndAcknowledged(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)

	messages := []models.DecryptedMessage{
		{Message: models.Message{MessageID: "m1", SenderID: alice}},
		{Message: models.Message{MessageID: "m2", SenderID: bob, DeliveredTo: []string{alice}}},
		{Message: models.Message{MessageID: "m3", SenderID: bob}},
	}
	server.EXPECT().MarkReceipt(gomock.Any(), groupID, "m3", models.ReceiptDelivered).Return(nil)

	marked, err := svc.MarkDelivered(context.Background(), alice, groupID, messages)

	require.NoError(t, err)
	assert.Equal(t, 1, marked)
}

func TestClientMessageService_MarkChatRead(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)

	gomock.InOrder(
		server.EXPECT().ListMessages(gomock.Any(), groupID).Return([]models.Message{
			{MessageID: "m1", SenderID: bob, ReadBy: []string{alice}},
			{MessageID: "m2", SenderID: bob},
			{MessageID: "m3", SenderID: alice},
			{MessageID: "m4", SenderID: carol, DeliveredTo: []string{alice}},
		}, nil),
		server.EXPECT().MarkReceipt(gomock.Any(), groupID, "m2", models.ReceiptRead).Return(nil),
		server.EXPECT().MarkReceipt(gomock.Any(), groupID, "m4", models.ReceiptRead).Return(nil),
		server.EXPECT().MarkChatRead(gomock.Any(), groupID).Return(nil),
	)

	marked, err := svc.MarkChatRead(context.Background(), alice, groupID)

	require.NoError(t, err)
	assert.Equal(t, 2, marked)
}

func TestClientMessageService_MarkChatRead_StopsOnFailure(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)

	server.EXPECT().ListMessages(gomock.Any(), groupID).Return([]models.Message{
		{MessageID: "gone", SenderID: bob},
	}, nil)
	server.EXPECT().MarkReceipt(gomock.Any(), groupID, "gone", models.ReceiptRead).
		Return(adapterError(adapter.ErrNotFound, app.MsgMessageNotFound))

	_, err := svc.MarkChatRead(context.Background(), alice, groupID)

	assert.ErrorIs(t, err, store.ErrMessageNotFound)
}

func TestClientMessageService_PersonalDeletes(t *testing.T) {
	svc, server, _ := newTestClientMessageService(t)

	server.EXPECT().HideMessage(gomock.Any(), groupID, "m1").Return(nil)
	server.EXPECT().ClearHistory(gomock.Any(), groupID).
		Return(adapterError(adapter.ErrForbidden, app.MsgNotChatMember))

	require.NoError(t, svc.HideMessage(context.Background(), groupID, "m1"))
	assert.ErrorIs(t, svc.ClearHistory(context.Background(), groupID), ErrNotChatMember)
}
