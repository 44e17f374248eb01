// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// WrappedKey is a chat key encrypted for a single member. EncryptedKey holds
// the AES-GCM ciphertext (with tag) and IV the 12-byte nonce, both in
// standard base64.
type WrappedKey struct {
	ChatID       string `json:"chat_id"`
	UserID       string `json:"user_id"`
	EncryptedKey string `json:"encrypted_key"`
	IV           string `json:"iv"`
}

// TableName returns the name of the database table
// associated with the WrappedKey model.
func (k WrappedKey) TableName() string {
	return "chat_keys"
}

// Empty reports whether the wrapped key carries no key material.
func (k WrappedKey) Empty() bool {
	return k.EncryptedKey == "" || k.IV == ""
}
