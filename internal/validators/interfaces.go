// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach storage.
//
// There is one validator per resource: users (register, login, profile,
// search), chats (creation, membership, group metadata), messages (text and
// media metadata, receipts) and media chunk uploads. Violations are reported
// as the sentinels of errors.go; the service layer wraps them into
// ErrInvalidDataProvided.
//
// Validators only look at the shape of a request. Whether the caller may
// perform it is decided by the services.
package validators

import "context"

// Validator checks obj and returns the first violation found. fields, when
// given, restricts the check to the named fields of obj (FieldLogin,
// FieldPassword, ...).
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
