// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the transport servers of the chat server.
//
// It starts the REST API and the gRPC health service, waits for the context
// to be cancelled and then shuts both down gracefully.
package server
