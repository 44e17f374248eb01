// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/sealed-chat/models"
)

// DecryptionPlaceholder replaces the text of messages that cannot be
// decrypted so that a single bad message does not break a whole listing.
const DecryptionPlaceholder = "[Decryption Error]"

// chatCryptoService is the private implementation of [ChatCryptoService].
type chatCryptoService struct {
	deriver WrappingKeyDeriver
}

// NewChatCryptoService constructs a [ChatCryptoService] that wraps chat keys
// under keys produced by deriver. A nil deriver selects HKDF.
func NewChatCryptoService(deriver WrappingKeyDeriver) ChatCryptoService {
	if deriver == nil {
		deriver = NewHKDFDeriver()
	}
	return &chatCryptoService{deriver: deriver}
}

// GenerateChatKey implements [ChatCryptoService]. It reads 32 random bytes
// from the OS CSPRNG.
func (c *chatCryptoService) GenerateChatKey() (ChatKey, error) {
	key := make([]byte, ChatKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate chat key: %w", err)
	}
	return key, nil
}

// WrapKeyForUser implements [ChatCryptoService].
func (c *chatCryptoService) WrapKeyForUser(chatKey ChatKey, userID string) (models.WrappedKey, error) {
	if err := chatKey.Validate(); err != nil {
		return models.WrappedKey{}, err
	}

	wrappingKey, err := c.deriver.Derive(userID)
	if err != nil {
		return models.WrappedKey{}, fmt.Errorf("derive wrapping key: %w", err)
	}

	encryptedKey, iv, err := seal(wrappingKey, chatKey)
	if err != nil {
		return models.WrappedKey{}, fmt.Errorf("wrap chat key: %w", err)
	}

	return models.WrappedKey{
		UserID:       userID,
		EncryptedKey: encodeB64(encryptedKey),
		IV:           encodeB64(iv),
	}, nil
}

// UnwrapKeyForUser implements [ChatCryptoService].
func (c *chatCryptoService) UnwrapKeyForUser(wrapped models.WrappedKey, userID string) (ChatKey, error) {
	if wrapped.Empty() {
		return nil, fmt.Errorf("%w: empty wrapped key", ErrInvalidCiphertext)
	}

	wrappingKey, err := c.deriver.Derive(userID)
	if err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}

	encryptedKey, err := decodeCiphertext(wrapped.EncryptedKey)
	if err != nil {
		return nil, err
	}
	iv, err := decodeIV(wrapped.IV)
	if err != nil {
		return nil, err
	}

	raw, err := open(wrappingKey, encryptedKey, iv)
	if err != nil {
		return nil, fmt.Errorf("unwrap chat key: %w", err)
	}

	key := ChatKey(raw)
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("unwrap chat key: %w", err)
	}

	return key, nil
}

// EncryptMessage implements [ChatCryptoService].
func (c *chatCryptoService) EncryptMessage(text string, chatKey ChatKey) (EncryptedMessage, error) {
	ciphertext, iv, err := seal(chatKey, []byte(text))
	if err != nil {
		return EncryptedMessage{}, fmt.Errorf("encrypt message: %w", err)
	}

	return EncryptedMessage{
		Ciphertext: encodeB64(ciphertext),
		IV:         encodeB64(iv),
	}, nil
}

// DecryptMessage implements [ChatCryptoService].
func (c *chatCryptoService) DecryptMessage(ciphertext, iv string, chatKey ChatKey) (string, error) {
	ct, err := decodeCiphertext(ciphertext)
	if err != nil {
		return "", err
	}
	nonce, err := decodeIV(iv)
	if err != nil {
		return "", err
	}

	plaintext, err := open(chatKey, ct, nonce)
	if err != nil {
		return "", fmt.Errorf("decrypt message: %w", err)
	}

	return string(plaintext), nil
}

// EncryptFile implements [ChatCryptoService].
func (c *chatCryptoService) EncryptFile(file File, chatKey ChatKey) (EncryptedFile, error) {
	buffer, iv, err := seal(chatKey, file.Data)
	if err != nil {
		return EncryptedFile{}, fmt.Errorf("encrypt file: %w", err)
	}

	return EncryptedFile{
		Buffer:   buffer,
		IV:       encodeB64(iv),
		MimeType: file.MimeType,
		Name:     file.Name,
	}, nil
}

// DecryptBuffer implements [ChatCryptoService].
func (c *chatCryptoService) DecryptBuffer(buffer []byte, iv string, chatKey ChatKey) ([]byte, error) {
	nonce, err := decodeIV(iv)
	if err != nil {
		return nil, err
	}

	plaintext, err := open(chatKey, buffer, nonce)
	if err != nil {
		return nil, fmt.Errorf("decrypt media: %w", err)
	}

	return plaintext, nil
}

// DecryptMessageOrPlaceholder decrypts a message and degrades to
// [DecryptionPlaceholder] on any failure. The error is still returned so the
// caller can log it.
func DecryptMessageOrPlaceholder(svc ChatCryptoService, ciphertext, iv string, chatKey ChatKey) (string, error) {
	if chatKey == nil {
		return DecryptionPlaceholder, errors.New("no chat key available")
	}

	text, err := svc.DecryptMessage(ciphertext, iv, chatKey)
	if err != nil {
		return DecryptionPlaceholder, err
	}
	return text, nil
}
