// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	UserService    ClientUserService
	ChatService    ClientChatService
	MessageService ClientMessageService
	MediaService   ClientMediaService
	KeyCache       *KeyCache
}

// NewClientServices wires the client services. All of them share one key
// cache, so a chat key is unwrapped at most once per process.
func NewClientServices(sessions store.SessionStore, serverAdapter adapter.ServerAdapter, chatCrypto crypto.ChatCryptoService, cfg config.ClientConfig, logger *logger.Logger) *ClientServices {
	keyCache := NewKeyCache()
	chatSvc := NewClientChatService(serverAdapter, chatCrypto, keyCache, logger)

	return &ClientServices{
		AuthService:    NewClientAuthService(sessions, serverAdapter, logger),
		UserService:    NewClientUserService(serverAdapter, logger),
		ChatService:    chatSvc,
		MessageService: NewClientMessageService(serverAdapter, chatCrypto, chatSvc, logger),
		MediaService:   NewClientMediaService(serverAdapter, chatCrypto, chatSvc, cfg.Workers.UploadConcurrency, logger),
		KeyCache:       keyCache,
	}
}
