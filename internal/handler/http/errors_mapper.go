// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order, the first match wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},

	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{service.ErrTokenIsExpired, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpired}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},

	{service.ErrNotChatMember, errorResponse{http.StatusForbidden, app.MsgNotChatMember}},
	{service.ErrNotChatAdmin, errorResponse{http.StatusForbidden, app.MsgNotChatAdmin}},
	{service.ErrDirectChatMembership, errorResponse{http.StatusForbidden, app.MsgDirectChatMembership}},

	{service.ErrUnknownMember, errorResponse{http.StatusNotFound, app.MsgUnknownMember}},
	{service.ErrMediaNotFound, errorResponse{http.StatusNotFound, app.MsgMediaNotFound}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrChatNotFound, errorResponse{http.StatusNotFound, app.MsgChatNotFound}},
	{store.ErrMemberNotFound, errorResponse{http.StatusNotFound, app.MsgMemberNotFound}},
	{store.ErrKeyNotFound, errorResponse{http.StatusNotFound, app.MsgKeyNotFound}},
	{store.ErrMessageNotFound, errorResponse{http.StatusNotFound, app.MsgMessageNotFound}},

	{store.ErrLoginAlreadyExists, errorResponse{http.StatusConflict, app.MsgLoginAlreadyExists}},
	{store.ErrChatAlreadyExists, errorResponse{http.StatusConflict, app.MsgChatAlreadyExists}},
	{store.ErrMemberAlreadyExists, errorResponse{http.StatusConflict, app.MsgMemberAlreadyExists}},
	{store.ErrMessageAlreadyExists, errorResponse{http.StatusConflict, app.MsgMessageAlreadyExists}},
	{store.ErrChunkSetConflict, errorResponse{http.StatusConflict, app.MsgChunkSetConflict}},
}

// responseFromError maps a service or storage error to the status code and
// the message written into the error body. Anything unknown, storage driver
// failures included, is an internal error.
func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}

	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}
