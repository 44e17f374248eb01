// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.sendMessage")
	if !ok {
		return
	}

	var msg models.Message
	if !decodeJSON(w, r, &msg, "*Handler.sendMessage") {
		return
	}
	msg.ChatID = chi.URLParam(r, "chatID")

	saved, err := h.services.MessageService.SendMessage(r.Context(), userID, msg)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.sendMessage", "sending message failed")
		return
	}

	logger.FromRequest(r).Debug().
		Str("chat_id", saved.ChatID).
		Str("message_id", saved.MessageID).
		Str("type", string(saved.Type)).
		Msg("message stored")

	_, _ = utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.listMessages")
	if !ok {
		return
	}

	messages, err := h.services.MessageService.ListMessages(r.Context(), userID, chi.URLParam(r, "chatID"))
	if err != nil {
		writeServiceError(w, r, err, "*Handler.listMessages", "listing messages failed")
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	_, _ = utils.WriteJSON(w, messages, http.StatusOK)
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.deleteMessage")
	if !ok {
		return
	}

	chatID, messageID := chi.URLParam(r, "chatID"), chi.URLParam(r, "messageID")
	if forMe(r) {
		if err := h.services.MessageService.HideMessage(r.Context(), userID, chatID, messageID); err != nil {
			writeServiceError(w, r, err, "*Handler.deleteMessage", "hiding message failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.services.MessageService.DeleteMessage(r.Context(), userID, chatID, messageID); err != nil {
		writeServiceError(w, r, err, "*Handler.deleteMessage", "deleting message failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.clearChat")
	if !ok {
		return
	}

	chatID := chi.URLParam(r, "chatID")
	if forMe(r) {
		if err := h.services.MessageService.ClearHistory(r.Context(), userID, chatID); err != nil {
			writeServiceError(w, r, err, "*Handler.clearChat", "clearing history failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	deleted, err := h.services.MessageService.ClearChat(r.Context(), userID, chatID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.clearChat", "clearing chat failed")
		return
	}

	logger.FromRequest(r).Info().Str("chat_id", chatID).Int64("deleted", deleted).Msg("chat cleared")

	_, _ = utils.WriteJSON(w, models.ClearChatResult{Deleted: deleted}, http.StatusOK)
}

func (h *Handler) markReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.markReceipt")
	if !ok {
		return
	}

	var req models.ReceiptRequest
	if !decodeJSON(w, r, &req, "*Handler.markReceipt") {
		return
	}

	chatID, messageID := chi.URLParam(r, "chatID"), chi.URLParam(r, "messageID")
	if err := h.services.MessageService.MarkReceipt(r.Context(), userID, chatID, messageID, req.Kind); err != nil {
		writeServiceError(w, r, err, "*Handler.markReceipt", "storing receipt failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// forMe reports whether a delete targets the caller's own view only.
func forMe(r *http.Request) bool {
	return r.URL.Query().Get("for") == models.MessageScopeMe
}
