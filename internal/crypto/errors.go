// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecryption is returned whenever AES-GCM authentication fails: wrong
	// key, wrong IV, wrong user for a wrapped key or tampered ciphertext.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidKeyLength is returned for keys that are not 32 bytes long.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidIV is returned when an IV cannot be decoded or has the wrong
	// size for AES-GCM.
	ErrInvalidIV = errors.New("invalid iv")

	// ErrInvalidCiphertext is returned when a ciphertext cannot be decoded.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrEmptyUserID is returned when a wrapping key is requested for an
	// empty user identifier.
	ErrEmptyUserID = errors.New("empty user id")

	// ErrUnknownDerivation is returned for an unsupported derivation scheme.
	ErrUnknownDerivation = errors.New("unknown wrapping key derivation scheme")
)
