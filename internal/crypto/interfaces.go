// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "github.com/MKhiriev/sealed-chat/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/chat_crypto_mock.go -package=mock

// ChatCryptoService holds all client-side cryptography of a chat. It knows
// nothing about the network, the database or the users: its only job is to
// produce and protect chat keys and to encrypt what is sent with them.
//
// Scheme:
//
//	CK        = GenerateChatKey()                    (once per chat)
//	Wrapped_u = WrapKeyForUser(CK, u)                (once per member u)
//	Msg       = EncryptMessage(text, CK)             (fresh IV per message)
//	File      = EncryptFile(file, CK)                (one AEAD pass per file)
type ChatCryptoService interface {
	// GenerateChatKey generates a random 256-bit chat key.
	GenerateChatKey() (ChatKey, error)

	// WrapKeyForUser encrypts the raw chat key bytes under the wrapping key
	// derived from userID, with a fresh random IV. The returned record has
	// UserID set; ChatID is left to the caller.
	WrapKeyForUser(chatKey ChatKey, userID string) (models.WrappedKey, error)

	// UnwrapKeyForUser is the inverse of WrapKeyForUser. It fails with
	// [ErrDecryption] when userID is not the one the key was wrapped for or
	// when the record is corrupted.
	UnwrapKeyForUser(wrapped models.WrappedKey, userID string) (ChatKey, error)

	// EncryptMessage encrypts text with the chat key using AES-GCM and a
	// fresh 96-bit IV. Ciphertext and IV are base64 encoded.
	EncryptMessage(text string, chatKey ChatKey) (EncryptedMessage, error)

	// DecryptMessage decrypts a message produced by EncryptMessage. It fails
	// with [ErrDecryption] on tampering, a wrong IV or a wrong key.
	DecryptMessage(ciphertext, iv string, chatKey ChatKey) (string, error)

	// EncryptFile encrypts the whole file in a single AEAD pass. Chunking
	// happens afterwards for storage reasons only.
	EncryptFile(file File, chatKey ChatKey) (EncryptedFile, error)

	// DecryptBuffer decrypts a reassembled buffer produced by EncryptFile.
	// It fails with [ErrDecryption] if the buffer does not match the
	// original ciphertext, e.g. after a lost or duplicated chunk.
	DecryptBuffer(buffer []byte, iv string, chatKey ChatKey) ([]byte, error)
}

// WrappingKeyDeriver derives the per-user key that wraps chat keys. The
// derivation is deterministic and uses the user identifier alone.
type WrappingKeyDeriver interface {
	// Derive returns a 32-byte AES-256 key for userID.
	Derive(userID string) ([]byte, error)

	// Scheme returns the configuration name of the derivation.
	Scheme() string
}
