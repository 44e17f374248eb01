// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a user lookup produces no result.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrChatAlreadyExists is returned when a chat id is already taken.
	ErrChatAlreadyExists = errors.New("chat already exists")

	// ErrChatNotFound is returned for unknown chat ids.
	ErrChatNotFound = errors.New("chat was not found")

	// ErrMemberAlreadyExists is returned when adding a user that is already
	// a member of the chat.
	ErrMemberAlreadyExists = errors.New("user is already a chat member")

	// ErrMemberNotFound is returned when the user is not a member of the chat.
	ErrMemberNotFound = errors.New("user is not a chat member")

	// ErrKeyNotFound is returned when no wrapped key exists for the member.
	ErrKeyNotFound = errors.New("wrapped key was not found")

	// ErrMessageAlreadyExists is returned when a message id is reused.
	ErrMessageAlreadyExists = errors.New("message already exists")

	// ErrMessageNotFound is returned for unknown message ids.
	ErrMessageNotFound = errors.New("message was not found")

	// ErrChunkSetConflict is returned when chunks are uploaded for a set that
	// was started under a different chat or by a different user.
	ErrChunkSetConflict = errors.New("chunk set belongs to another chat or uploader")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a storage-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned when the DSN matches no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")

	// ErrFirestore wraps failed Firestore calls.
	ErrFirestore = errors.New("firestore operation failed")
)
