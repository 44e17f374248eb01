// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and as a chat
// member. Its UserID is also the input of the per-user key wrapping scheme,
// so it must never change once assigned.
type User struct {
	// UserID is the server-assigned UUIDv7 identifier of the user.
	UserID string `json:"user_id,omitempty"`

	// Login is the unique user login. Chat partners are resolved by login.
	Login string `json:"login"`

	// Name is the display name of the user.
	Name string `json:"name,omitempty"`

	// PhotoURL is the avatar of the user, usually a public media reference.
	PhotoURL string `json:"photo_url,omitempty"`

	// Password is the plaintext password as received from the client. It is
	// only present in register/login requests and never persisted.
	Password string `json:"password,omitempty"`

	// AuthHash is the HMAC-SHA256 of Password computed by the server. It is
	// never exposed via JSON.
	AuthHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of u stripped of credential material, suitable for
// returning to other users.
func (u User) Public() User {
	return User{
		UserID:    u.UserID,
		Login:     u.Login,
		Name:      u.Name,
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateProfileRequest edits the profile of the authenticated user. Nil
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UpdateProfileRequest) Empty() bool {
	return r.Name == nil && r.PhotoURL == nil
}

// SearchRequest looks users or groups up by a case-insensitive prefix of
// their name.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}
