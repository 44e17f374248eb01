// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/sealed-chat/models"
)

func TestFileSessionStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := NewFileSessionStore(path)
	require.NoError(t, err)

	_, err = s.Load()
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)

	session := models.Session{UserID: "u1", Login: "alice", Token: "tok", At: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, s.Save(session))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewFileSessionStore(path)
	require.NoError(t, err)
	got, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Token, got.Token)
	assert.True(t, session.At.Equal(got.At))

	require.NoError(t, reopened.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = reopened.Load()
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)
}

func TestFileSessionStore_InMemory(t *testing.T) {
	s, err := NewFileSessionStore("")
	require.NoError(t, err)

	require.NoError(t, s.Save(models.Session{UserID: "u1", Token: "tok"}))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	require.NoError(t, s.Clear())
}

func TestFileSessionStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSessionStore(path)
	assert.Error(t, err)
}
