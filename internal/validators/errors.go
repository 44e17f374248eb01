// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidLogin    = errors.New("invalid login")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidName     = errors.New("invalid name")

	ErrNothingToUpdate    = errors.New("nothing to update")
	ErrInvalidPhotoURL    = errors.New("invalid photo url")
	ErrInvalidDescription = errors.New("invalid description")
	ErrInvalidSearchQuery = errors.New("invalid search query")
	ErrInvalidReceipt     = errors.New("invalid receipt kind")

	ErrInvalidChatID       = errors.New("invalid chat id")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidMembers      = errors.New("invalid chat members")
	ErrDuplicateMember     = errors.New("duplicate chat member")
	ErrSelfChat            = errors.New("cannot create a chat with yourself")
	ErrCreatorNotMember    = errors.New("chat creator must be a member")
	ErrEmptyGroupName      = errors.New("group name is required")
	ErrInvalidWrappedKey   = errors.New("invalid wrapped key")
	ErrKeysMismatchMembers = errors.New("wrapped keys must match chat members")

	ErrInvalidMessageID   = errors.New("invalid message id")
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrEmptyCiphertext    = errors.New("ciphertext and iv are required")
	ErrPlaintextPresent   = errors.New("message must not carry media for text type")
	ErrInvalidMedia       = errors.New("invalid media metadata")
	ErrInvalidThumbnail   = errors.New("invalid thumbnail metadata")

	ErrInvalidOwnerID   = errors.New("invalid chunk owner id")
	ErrInvalidChunkKind = errors.New("invalid chunk kind")
	ErrNoChunks         = errors.New("chunk list cannot be empty")
	ErrTooManyChunks    = errors.New("too many chunks in one request")
	ErrInvalidChunk     = errors.New("invalid chunk")
)
