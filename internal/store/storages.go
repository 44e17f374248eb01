// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/logger"
)

// Storages groups the repositories of one storage backend.
type Storages struct {
	UserRepository    UserRepository
	ChatRepository    ChatRepository
	MessageRepository MessageRepository
	ChunkRepository   ChunkRepository

	close func() error
}

// NewStorages opens the backend selected by cfg and wires its repositories:
//   - Firestore when cfg.Firestore.ProjectID is set;
//   - PostgreSQL for "postgres://" and "postgresql://" DSNs;
//   - SQLite for any other DSN ("sqlite://" prefix optional).
//
// SQL backends are migrated before use.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	if cfg.Firestore.ProjectID != "" {
		client, err := NewConnectFirestore(ctx, cfg.Firestore, log)
		if err != nil {
			return nil, err
		}

		return &Storages{
			UserRepository:    NewFirestoreUserRepository(client, log),
			ChatRepository:    NewFirestoreChatRepository(client, log),
			MessageRepository: NewFirestoreMessageRepository(client, log),
			ChunkRepository:   NewFirestoreChunkRepository(client, log),
			close:             client.Close,
		}, nil
	}

	db, err := connectSQL(ctx, cfg.DB.DSN, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newSQLStorages(db, log), nil
}

func newSQLStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		ChatRepository:    NewChatRepository(db, log),
		MessageRepository: NewMessageRepository(db, log),
		ChunkRepository:   NewChunkRepository(db, log),
		close:             db.Close,
	}
}

// Close releases the underlying connection.
func (s *Storages) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func connectSQL(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	switch {
	case dsn == "":
		return nil, ErrUnsupportedDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return db, nil
	default:
		db, err := NewConnectSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"), log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return db, nil
	}
}
