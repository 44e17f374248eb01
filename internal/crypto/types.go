// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "fmt"

// ChatKeySize is the length of a chat key in bytes (AES-256).
const ChatKeySize = 32

// ChatKey is the raw per-chat symmetric key. It is never persisted in this
// form; only [models.WrappedKey] records leave the client.
type ChatKey []byte

// Validate checks that the key has the AES-256 length.
func (k ChatKey) Validate() error {
	if len(k) != ChatKeySize {
		return fmt.Errorf("%w: %d", ErrInvalidKeyLength, len(k))
	}
	return nil
}

// String hides the key material from logs and fmt verbs.
func (k ChatKey) String() string {
	return "ChatKey(redacted)"
}

// EncryptedMessage is the AEAD output for a text message.
type EncryptedMessage struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
}

// File is a plaintext media file about to be encrypted.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// EncryptedFile is the AEAD output for a whole file. Buffer holds the
// ciphertext with the GCM tag appended and is what gets chunked.
type EncryptedFile struct {
	Buffer   []byte
	IV       string
	MimeType string
	Name     string
}
