// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// sealed-chat server handlers and the client error mapping.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP error bodies. The client maps them back to sentinel errors, so the
// wording is part of the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgRequestTooLarge is returned when a request body exceeds the limit.
	MsgRequestTooLarge = "request is too large"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires the user ID
	// from the JWT claim but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgRegistrationFailed is returned when the registration handler
	// encounters an unexpected error that prevents account creation.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when the login handler encounters an
	// unexpected error that prevents issuing a session token.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	MsgUserNotFound = "user not found"

	MsgChatNotFound      = "chat not found"
	MsgChatAlreadyExists = "chat already exists"

	// MsgNotChatMember is returned for any chat route the caller is not a
	// member of, media included.
	MsgNotChatMember = "not a member of the chat"

	// MsgNotChatAdmin is returned when a group operation needs an admin.
	MsgNotChatAdmin = "not an admin of the chat"

	// MsgDirectChatMembership is returned for membership changes of a
	// direct chat.
	MsgDirectChatMembership = "direct chat membership cannot be changed"

	// MsgUnknownMember is returned when a new chat member is not a
	// registered user.
	MsgUnknownMember = "unknown chat member"

	MsgMemberAlreadyExists = "member already exists"
	MsgMemberNotFound      = "member not found"

	// MsgKeyNotFound is returned when the caller has no wrapped key for the
	// chat.
	MsgKeyNotFound = "chat key not found"

	MsgMessageAlreadyExists = "message already exists"
	MsgMessageNotFound      = "message not found"

	MsgMediaNotFound = "media not found"

	// MsgChunkSetConflict is returned when chunks are uploaded under an
	// owner id that already belongs to another chat.
	MsgChunkSetConflict = "chunk set belongs to another chat or uploader"
)
