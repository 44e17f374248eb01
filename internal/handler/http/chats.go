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

func (h *Handler) createChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.createChat")
	if !ok {
		return
	}

	var req models.CreateChatRequest
	if !decodeJSON(w, r, &req, "*Handler.createChat") {
		return
	}

	chat, err := h.services.ChatService.CreateChat(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.createChat", "chat creation failed")
		return
	}

	logger.FromRequest(r).Info().Str("chat_id", chat.ChatID).Bool("is_group", chat.IsGroup).Msg("chat created")

	_, _ = utils.WriteJSON(w, chat, http.StatusCreated)
}

func (h *Handler) listChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.listChats")
	if !ok {
		return
	}

	chats, err := h.services.ChatService.ListChats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.listChats", "listing chats failed")
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}

	_, _ = utils.WriteJSON(w, chats, http.StatusOK)
}

func (h *Handler) getChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.getChat")
	if !ok {
		return
	}

	chat, err := h.services.ChatService.GetChat(r.Context(), userID, chi.URLParam(r, "chatID"))
	if err != nil {
		writeServiceError(w, r, err, "*Handler.getChat", "getting chat failed")
		return
	}

	_, _ = utils.WriteJSON(w, chat, http.StatusOK)
}

func (h *Handler) getWrappedKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.getWrappedKey")
	if !ok {
		return
	}

	key, err := h.services.ChatService.GetWrappedKey(r.Context(), userID, chi.URLParam(r, "chatID"))
	if err != nil {
		writeServiceError(w, r, err, "*Handler.getWrappedKey", "getting wrapped key failed")
		return
	}

	_, _ = utils.WriteJSON(w, key, http.StatusOK)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.addMember")
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if !decodeJSON(w, r, &req, "*Handler.addMember") {
		return
	}
	// the path wins over the body
	req.ChatID = chi.URLParam(r, "chatID")

	if err := h.services.ChatService.AddMember(r.Context(), userID, req); err != nil {
		writeServiceError(w, r, err, "*Handler.addMember", "adding member failed")
		return
	}

	logger.FromRequest(r).Info().Str("chat_id", req.ChatID).Str("member_id", req.UserID).Msg("member added")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.removeMember")
	if !ok {
		return
	}

	req := models.RemoveMemberRequest{
		ChatID: chi.URLParam(r, "chatID"),
		UserID: chi.URLParam(r, "userID"),
	}

	if err := h.services.ChatService.RemoveMember(r.Context(), userID, req); err != nil {
		writeServiceError(w, r, err, "*Handler.removeMember", "removing member failed")
		return
	}

	logger.FromRequest(r).Info().Str("chat_id", req.ChatID).Str("member_id", req.UserID).Msg("member removed")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) makeAdmin(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.makeAdmin")
	if !ok {
		return
	}

	chatID, memberID := chi.URLParam(r, "chatID"), chi.URLParam(r, "userID")
	if err := h.services.ChatService.MakeAdmin(r.Context(), userID, chatID, memberID); err != nil {
		writeServiceError(w, r, err, "*Handler.makeAdmin", "promoting member failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.updateChat")
	if !ok {
		return
	}

	var req models.UpdateChatRequest
	if !decodeJSON(w, r, &req, "*Handler.updateChat") {
		return
	}

	chat, err := h.services.ChatService.UpdateChat(r.Context(), userID, chi.URLParam(r, "chatID"), req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.updateChat", "updating chat failed")
		return
	}

	logger.FromRequest(r).Info().Str("chat_id", chat.ChatID).Msg("chat updated")

	_, _ = utils.WriteJSON(w, chat, http.StatusOK)
}

func (h *Handler) markChatRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.markChatRead")
	if !ok {
		return
	}

	if err := h.services.ChatService.MarkChatRead(r.Context(), userID, chi.URLParam(r, "chatID")); err != nil {
		writeServiceError(w, r, err, "*Handler.markChatRead", "resetting unread counter failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
