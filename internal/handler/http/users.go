// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.getProfile")
	if !ok {
		return
	}

	user, err := h.services.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.getProfile", "getting profile failed")
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.updateProfile")
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req, "*Handler.updateProfile") {
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.updateProfile", "updating profile failed")
		return
	}

	logger.FromRequest(r).Info().Str("user_id", userID).Msg("profile updated")

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.searchUsers")
	if !ok {
		return
	}

	req, ok := searchFromRequest(w, r, "*Handler.searchUsers")
	if !ok {
		return
	}

	users, err := h.services.UserService.SearchUsers(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.searchUsers", "user search failed")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	_, _ = utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) searchGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(w, r, "*Handler.searchGroups")
	if !ok {
		return
	}

	req, ok := searchFromRequest(w, r, "*Handler.searchGroups")
	if !ok {
		return
	}

	groups, err := h.services.ChatService.SearchGroups(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.searchGroups", "group search failed")
		return
	}
	if groups == nil {
		groups = []models.Chat{}
	}

	_, _ = utils.WriteJSON(w, groups, http.StatusOK)
}

// searchFromRequest reads ?search= and the optional ?limit= query parameters.
func searchFromRequest(w http.ResponseWriter, r *http.Request, fn string) (models.SearchRequest, bool) {
	query := r.URL.Query()
	req := models.SearchRequest{Query: query.Get("search")}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			logger.FromRequest(r).Err(err).Str("func", fn).Str("limit", raw).Msg("invalid search limit")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return models.SearchRequest{}, false
		}
		req.Limit = limit
	}

	return req, true
}
