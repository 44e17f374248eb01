// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// RunServer starts serving and blocks until ctx is done or a transport
	// fails. All transports are shut down before it returns.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops every transport.
	Shutdown()
}
