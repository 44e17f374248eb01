// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/utils"
)

// maxBodyBytes bounds every request body. A full chunk upload request is
// far below it; see validators.MaxChunksPerRequest.
const maxBodyBytes = 8 << 20

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// decodeJSON decodes the request body into dst. On failure the error
// response is already written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, fn string) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	logger.FromRequest(r).Err(err).Str("func", fn).Msg("invalid JSON was passed")

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.WriteError(w, app.MsgRequestTooLarge, http.StatusBadRequest)
		return false
	}
	utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
	return false
}

// userIDFromRequest returns the id put into the context by the auth
// middleware. On failure the error response is already written.
func userIDFromRequest(w http.ResponseWriter, r *http.Request, fn string) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Str("func", fn).Msg("no user ID was given")
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return "", false
	}

	return userID, true
}

// writeServiceError logs err and writes the mapped error response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fn, msg string) {
	resp := responseFromError(err)

	event := logger.FromRequest(r).Warn()
	if resp.status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", resp.status).Msg(msg)

	utils.WriteError(w, resp.message, resp.status)
}
