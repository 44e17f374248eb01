// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		if msg == app.MsgInvalidDataProvided || msg == app.MsgRequestTooLarge {
			return ErrInvalidDataProvided
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		case app.MsgTokenIsExpiredOrInvalid, app.MsgNoUserIDProvided:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrForbidden):
		switch msg {
		case app.MsgNotChatMember:
			return ErrNotChatMember
		case app.MsgNotChatAdmin:
			return ErrNotChatAdmin
		case app.MsgDirectChatMembership:
			return ErrDirectChatMembership
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgUserNotFound:
			return store.ErrNoUserWasFound
		case app.MsgChatNotFound:
			return store.ErrChatNotFound
		case app.MsgMemberNotFound:
			return store.ErrMemberNotFound
		case app.MsgKeyNotFound:
			return store.ErrKeyNotFound
		case app.MsgMessageNotFound:
			return store.ErrMessageNotFound
		case app.MsgMediaNotFound:
			return ErrMediaNotFound
		case app.MsgUnknownMember:
			return ErrUnknownMember
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		case app.MsgChatAlreadyExists:
			return store.ErrChatAlreadyExists
		case app.MsgMemberAlreadyExists:
			return store.ErrMemberAlreadyExists
		case app.MsgMessageAlreadyExists:
			return store.ErrMessageAlreadyExists
		case app.MsgChunkSetConflict:
			return store.ErrChunkSetConflict
		}

	case errors.Is(err, adapter.ErrBadGateway):
		switch msg {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
