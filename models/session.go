// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is what the CLI remembers about the logged in user between
// invocations. It never holds key material.
type Session struct {
	UserID string    `json:"user_id"`
	Login  string    `json:"login"`
	Token  string    `json:"token"`
	At     time.Time `json:"at"`
}
