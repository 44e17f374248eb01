// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSendMessage(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)

	msg := models.Message{Type: models.MessageText, Ciphertext: "Y3Q=", IV: "aXY="}
	m.messages.EXPECT().SendMessage(gomock.Any(), alice, gomock.Any()).
		DoAndReturn(func(_ any, _ string, got models.Message) (models.Message, error) {
			assert.Equal(t, chatID, got.ChatID)
			got.MessageID = "m1"
			got.SenderID = alice
			got.CreatedAt = time.Unix(1700000000, 0).UTC()
			return got, nil
		})

	rec := do(t, router, http.MethodPost, "/api/chats/"+chatID+"/messages", alice, msg)

	require.Equal(t, http.StatusCreated, rec.Code)
	var saved models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "m1", saved.MessageID)
	assert.Equal(t, alice, saved.SenderID)
	assert.Equal(t, "Y3Q=", saved.Ciphertext)
}

func TestSendMessage_NotMember(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(bob)
	m.messages.EXPECT().SendMessage(gomock.Any(), bob, gomock.Any()).Return(models.Message{}, service.ErrNotChatMember)

	rec := do(t, router, http.MethodPost, "/api/chats/"+chatID+"/messages", bob, models.Message{})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, app.MsgNotChatMember, errorBody(t, rec))
}

func TestListMessages(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.messages.EXPECT().ListMessages(gomock.Any(), alice, chatID).Return([]models.Message{
		{MessageID: "m1", ChatID: chatID, Type: models.MessageText},
		{MessageID: "m2", ChatID: chatID, Type: models.MessageImage, Media: &models.MediaInfo{MimeType: "image/png", ChunkCount: 2}},
	}, nil)

	rec := do(t, router, http.MethodGet, "/api/chats/"+chatID+"/messages", alice, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[1].Media.ChunkCount)
}

func TestDeleteMessage(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.messages.EXPECT().DeleteMessage(gomock.Any(), alice, chatID, "m1").Return(nil)
	m.messages.EXPECT().DeleteMessage(gomock.Any(), alice, chatID, "gone").Return(store.ErrMessageNotFound)

	rec := do(t, router, http.MethodDelete, "/api/chats/"+chatID+"/messages/m1", alice, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/chats/"+chatID+"/messages/gone", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgMessageNotFound, errorBody(t, rec))
}

func TestClearChat(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.authorize(bob)
	m.messages.EXPECT().ClearChat(gomock.Any(), alice, chatID).Return(int64(7), nil)
	m.messages.EXPECT().ClearChat(gomock.Any(), bob, chatID).Return(int64(0), service.ErrNotChatAdmin)

	rec := do(t, router, http.MethodDelete, "/api/chats/"+chatID+"/messages", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":7}`, rec.Body.String())

	rec = do(t, router, http.MethodDelete, "/api/chats/"+chatID+"/messages", bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, app.MsgNotChatAdmin, errorBody(t, rec))
}

func TestDeleteMessage_ForMeHides(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(bob)
	m.messages.EXPECT().HideMessage(gomock.Any(), bob, chatID, "m1").Return(nil)

	rec := do(t, router, http.MethodDelete, "/api/chats/"+chatID+"/messages/m1?for=me", bob, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClearChat_ForMeClearsHistory(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(bob)
	m.messages.EXPECT().ClearHistory(gomock.Any(), bob, chatID).Return(nil)

	rec := do(t, router, http.MethodDelete, "/api/chats/"+chatID+"/messages?for=me", bob, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMarkReceipt(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(bob)
	m.messages.EXPECT().MarkReceipt(gomock.Any(), bob, chatID, "m1", models.ReceiptRead).Return(nil)
	m.messages.EXPECT().MarkReceipt(gomock.Any(), bob, chatID, "m2", models.ReceiptDelivered).
		Return(store.ErrMessageNotFound)

	rec := do(t, router, http.MethodPost, "/api/chats/"+chatID+"/messages/m1/receipts", bob,
		models.ReceiptRequest{Kind: models.ReceiptRead})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/chats/"+chatID+"/messages/m2/receipts", bob,
		models.ReceiptRequest{Kind: models.ReceiptDelivered})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgMessageNotFound, errorBody(t, rec))
}
