// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"golang.org/x/sync/singleflight"
)

type keyCacheEntry struct {
	chatID string
	userID string
}

// KeyCache memoizes unwrapped chat keys per (chat, user) for the lifetime of
// the process. An entry is only dropped when this process removes the user
// from the chat; membership changes made by other clients are not observed.
//
// Concurrent misses for the same entry share a single load.
type KeyCache struct {
	mu   sync.RWMutex
	keys map[keyCacheEntry]crypto.ChatKey

	group singleflight.Group
}

func NewKeyCache() *KeyCache {
	return &KeyCache{keys: make(map[keyCacheEntry]crypto.ChatKey)}
}

func (c *KeyCache) Get(chatID, userID string) (crypto.ChatKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, ok := c.keys[keyCacheEntry{chatID: chatID, userID: userID}]
	return key, ok
}

func (c *KeyCache) Put(chatID, userID string, key crypto.ChatKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.keys[keyCacheEntry{chatID: chatID, userID: userID}] = key
}

func (c *KeyCache) Drop(chatID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.keys, keyCacheEntry{chatID: chatID, userID: userID})
}

// Clear forgets every key, e.g. on logout.
func (c *KeyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.keys)
}

func (c *KeyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.keys)
}

// GetOrLoad returns the cached key or calls load once, caching its result on
// success. Failed loads are not cached.
func (c *KeyCache) GetOrLoad(ctx context.Context, chatID, userID string, load func(context.Context) (crypto.ChatKey, error)) (crypto.ChatKey, error) {
	if key, ok := c.Get(chatID, userID); ok {
		return key, nil
	}

	v, err, _ := c.group.Do(chatID+"\x00"+userID, func() (any, error) {
		if key, ok := c.Get(chatID, userID); ok {
			return key, nil
		}

		key, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(chatID, userID, key)
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(crypto.ChatKey), nil
}
