// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrNotChatMember        = errors.New("user is not a member of the chat")
	ErrNotChatAdmin         = errors.New("user is not an admin of the chat")
	ErrDirectChatMembership = errors.New("membership of a direct chat cannot be changed")
	ErrUnknownMember        = errors.New("chat member is not a registered user")
	ErrMediaNotFound        = errors.New("media not found")
)

// client side
var (
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrNotLoggedIn      = errors.New("not logged in")

	ErrSelfChat        = errors.New("cannot create a chat with yourself")
	ErrTooFewMembers   = errors.New("a group needs at least two unique members")
	ErrNoMedia         = errors.New("message has no media")
	ErrNoThumbnail     = errors.New("message has no thumbnail")
	ErrInvalidMediaRef = errors.New("invalid public media reference")
)
