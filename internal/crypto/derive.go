// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// Supported wrapping key derivation schemes.
const (
	SchemeLegacy   = "legacy"
	SchemeHKDF     = "hkdf"
	SchemeArgon2id = "argon2id"
)

const (
	legacyPadByte = '0'
	hkdfInfo      = "sealed-chat/wrap/v1"
	argon2Salt    = "sealed-chat/wrap"
)

// Argon2Params holds Argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgon2Params are used by [NewWrappingKeyDeriver].
var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
}

// NewWrappingKeyDeriver returns the deriver registered under scheme. An empty
// scheme selects [SchemeHKDF].
func NewWrappingKeyDeriver(scheme string) (WrappingKeyDeriver, error) {
	switch scheme {
	case SchemeLegacy:
		return NewLegacyDeriver(), nil
	case "", SchemeHKDF:
		return NewHKDFDeriver(), nil
	case SchemeArgon2id:
		return NewArgon2Deriver(DefaultArgon2Params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDerivation, scheme)
	}
}

// legacyDeriver uses the user identifier itself as key material: its bytes
// right-padded with '0' and truncated to 32 bytes. Identifiers sharing their
// first 32 bytes get the same key, so the scheme is opt-in and only serves
// keys wrapped by older clients.
type legacyDeriver struct{}

// NewLegacyDeriver returns the padding-based deriver.
func NewLegacyDeriver() WrappingKeyDeriver {
	return legacyDeriver{}
}

func (legacyDeriver) Derive(userID string) ([]byte, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	key := make([]byte, ChatKeySize)
	n := copy(key, userID)
	for i := n; i < ChatKeySize; i++ {
		key[i] = legacyPadByte
	}

	return key, nil
}

func (legacyDeriver) Scheme() string { return SchemeLegacy }

// hkdfDeriver expands the whole identifier with HKDF-SHA256. It is the
// default scheme.
type hkdfDeriver struct{}

// NewHKDFDeriver returns a deriver based on HKDF-SHA256.
func NewHKDFDeriver() WrappingKeyDeriver {
	return hkdfDeriver{}
}

func (hkdfDeriver) Derive(userID string) ([]byte, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	key := make([]byte, ChatKeySize)
	r := hkdf.New(sha256.New, []byte(userID), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}

	return key, nil
}

func (hkdfDeriver) Scheme() string { return SchemeHKDF }

// argon2Deriver derives keys with Argon2id. Results are memoized per user
// since every unwrap would otherwise pay the full memory cost.
type argon2Deriver struct {
	params Argon2Params
	cache  sync.Map // userID -> []byte
}

// NewArgon2Deriver returns an Argon2id deriver with the given parameters.
func NewArgon2Deriver(params Argon2Params) WrappingKeyDeriver {
	return &argon2Deriver{params: params}
}

func (d *argon2Deriver) Derive(userID string) ([]byte, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	if v, ok := d.cache.Load(userID); ok {
		return cloneBytes(v.([]byte)), nil
	}

	key := argon2.IDKey([]byte(userID), []byte(argon2Salt), d.params.Time, d.params.Memory, d.params.Threads, ChatKeySize)
	d.cache.Store(userID, key)

	return cloneBytes(key), nil
}

func (d *argon2Deriver) Scheme() string { return SchemeArgon2id }

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
