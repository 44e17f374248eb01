// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the chat server.
//
// It wires chi routes for users, chats, messages and media chunks to the
// service layer. Authentication, request tracing, access logging and
// response compression are handled by middleware in this package. Request
// and response bodies carry ciphertext only; the server never decrypts.
package http
