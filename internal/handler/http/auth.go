// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if !decodeJSON(w, r, &user, "*Handler.register") {
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.register", "user registration failed")
		return
	}

	log.Info().Str("user_id", registeredUser.UserID).Msg("user registered")

	h.writeAuthenticated(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if !decodeJSON(w, r, &user, "*Handler.login") {
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.login", "user login failed")
		return
	}

	log.Debug().Str("user_id", foundUser.UserID).Msg("user successfully logged in")

	h.writeAuthenticated(w, r, foundUser)
}

// writeAuthenticated issues a token for user and writes it into the
// Authorization header together with the public part of the user.
func (h *Handler) writeAuthenticated(w http.ResponseWriter, r *http.Request, user models.User) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeAuthenticated").Msg("creation of token failed")
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) findUser(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	user, err := h.services.AuthService.FindUserByLogin(r.Context(), login)
	if err != nil {
		writeServiceError(w, r, err, "*Handler.findUser", "user lookup failed")
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}
