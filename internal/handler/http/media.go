// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/go-chi/chi/v5"
)

// chatChunkSet reads a chat bound chunk set from the route. Public sets have
// routes of their own.
func chatChunkSet(w http.ResponseWriter, r *http.Request, fn string) (models.ChunkSet, bool) {
	kind, err := models.ParseChunkKind(chi.URLParam(r, "kind"))
	if err != nil || kind == models.ChunkPublic {
		logger.FromRequest(r).Warn().Err(err).Str("func", fn).Msg("invalid chunk kind")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.ChunkSet{}, false
	}

	return models.ChunkSet{
		OwnerID: chi.URLParam(r, "ownerID"),
		Kind:    kind,
		ChatID:  chi.URLParam(r, "chatID"),
	}, true
}

func publicChunkSet(r *http.Request) models.ChunkSet {
	return models.ChunkSet{
		OwnerID: chi.URLParam(r, "ownerID"),
		Kind:    models.ChunkPublic,
	}
}

func (h *Handler) uploadChunks(w http.ResponseWriter, r *http.Request) {
	set, ok := chatChunkSet(w, r, "*Handler.uploadChunks")
	if !ok {
		return
	}
	h.upload(w, r, set, "*Handler.uploadChunks")
}

func (h *Handler) downloadChunks(w http.ResponseWriter, r *http.Request) {
	set, ok := chatChunkSet(w, r, "*Handler.downloadChunks")
	if !ok {
		return
	}
	h.download(w, r, set, "*Handler.downloadChunks")
}

func (h *Handler) uploadPublic(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, publicChunkSet(r), "*Handler.uploadPublic")
}

func (h *Handler) downloadPublic(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, publicChunkSet(r), "*Handler.downloadPublic")
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, set models.ChunkSet, fn string) {
	userID, ok := userIDFromRequest(w, r, fn)
	if !ok {
		return
	}

	var chunks []models.MediaChunk
	if !decodeJSON(w, r, &chunks, fn) {
		return
	}

	req := models.UploadChunksRequest{Set: set, Chunks: chunks}
	if err := h.services.MediaService.UploadChunks(r.Context(), userID, req); err != nil {
		writeServiceError(w, r, err, fn, "uploading chunks failed")
		return
	}

	logger.FromRequest(r).Debug().
		Str("owner_id", set.OwnerID).
		Str("kind", string(set.Kind)).
		Int("chunks", len(chunks)).
		Msg("chunks stored")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request, set models.ChunkSet, fn string) {
	userID, ok := userIDFromRequest(w, r, fn)
	if !ok {
		return
	}

	chunks, err := h.services.MediaService.DownloadChunks(r.Context(), userID, set)
	if err != nil {
		writeServiceError(w, r, err, fn, "downloading chunks failed")
		return
	}

	_, _ = utils.WriteJSON(w, chunks, http.StatusOK)
}
