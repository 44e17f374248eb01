// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

// UserServiceWrapper decorates a UserService.
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

// ChatServiceWrapper decorates a ChatService, e.g. with validation.
type ChatServiceWrapper interface {
	Wrap(ChatService) ChatService
}

// MessageServiceWrapper decorates a MessageService.
type MessageServiceWrapper interface {
	Wrap(MessageService) MessageService
}

// MediaServiceWrapper decorates a MediaService.
type MediaServiceWrapper interface {
	Wrap(MediaService) MediaService
}
