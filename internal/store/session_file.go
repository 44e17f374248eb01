// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/sealed-chat/models"
)

// ErrLocalSessionNotFound is returned by [SessionStore.Load] when nobody is
// logged in.
var ErrLocalSessionNotFound = errors.New("local session not found")

// SessionStore persists the client session.
type SessionStore interface {
	Save(session models.Session) error
	Load() (models.Session, error)
	Clear() error
}

type fileSessionStore struct {
	path     string
	inMemory bool

	mu      sync.RWMutex
	session *models.Session
}

// NewFileSessionStore returns a [SessionStore] backed by a JSON file at path.
// An empty path or ":memory:" keeps the session in memory only.
func NewFileSessionStore(path string) (SessionStore, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &fileSessionStore{
		path:     path,
		inMemory: path == ":memory:",
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileSessionStore) Save(session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &session
	return s.persist()
}

func (s *fileSessionStore) Load() (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil || s.session.Token == "" {
		return models.Session{}, ErrLocalSessionNotFound
	}
	return *s.session, nil
}

func (s *fileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if s.inMemory {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *fileSessionStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("decode session file: %w", err)
	}
	s.session = &session

	return nil
}

func (s *fileSessionStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}
