// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line chat client.
//
// Every command is one short lived process: the session token is restored
// from the session file, chat keys are unwrapped on demand and nothing but
// ciphertext ever leaves the process.
package client
