// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	ChatService    ChatService
	MessageService MessageService
	MediaService   MediaService
	AppInfoService AppInfoService
}

// NewServices wires the server services on top of storages. User, chat,
// message and media services are wrapped with request validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	userService := NewUserService(storages.UserRepository, logger)
	chatService := NewChatService(storages.UserRepository, storages.ChatRepository, logger)
	messageService := NewMessageService(storages.ChatRepository, storages.MessageRepository, logger)
	mediaService := NewMediaService(storages.ChatRepository, storages.ChunkRepository, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService:    NewUserValidationService().Wrap(userService),
		ChatService:    NewChatValidationService().Wrap(chatService),
		MessageService: NewMessageValidationService().Wrap(messageService),
		MediaService:   NewMediaValidationService().Wrap(mediaService),
		AppInfoService: appInfo,
	}, nil
}
