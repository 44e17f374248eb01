// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
)

type clientAuthService struct {
	sessions store.SessionStore
	adapter  adapter.ServerAdapter

	logger *logger.Logger
}

func NewClientAuthService(sessions store.SessionStore, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{sessions: sessions, adapter: serverAdapter, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.Session, error) {
	registered, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.saveSession(registered)
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.Session, error) {
	found, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.saveSession(found)
}

func (a *clientAuthService) Restore(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.Load()
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return models.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("error loading session: %w", err)
	}
	if session.Token == "" || session.UserID == "" {
		return models.Session{}, ErrNotLoggedIn
	}

	a.adapter.SetToken(session.Token)
	return session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	if err := a.sessions.Clear(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}

	return nil
}

func (a *clientAuthService) saveSession(user models.User) (models.Session, error) {
	session := models.Session{
		UserID: user.UserID,
		Login:  user.Login,
		Token:  a.adapter.Token(),
		At:     time.Now().UTC(),
	}
	if err := a.sessions.Save(session); err != nil {
		a.logger.Err(err).Str("login", user.Login).Msg("error saving session")
		return models.Session{}, fmt.Errorf("error saving session: %w", err)
	}

	return session, nil
}
