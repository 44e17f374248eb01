// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type userService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting profile: %w", err)
	}

	return user.Public(), nil
}

// UpdateProfile changes the display name or photo of userID.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.UpdateProfile(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateProfile").Msg("error updating profile")
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("profile updated")
	return user.Public(), nil
}

// SearchUsers looks users up by a prefix of their name or login. The caller
// is left out of the results.
func (s *userService) SearchUsers(ctx context.Context, userID string, req models.SearchRequest) ([]models.User, error) {
	limit := searchLimit(req.Limit)

	// one extra row makes up for the caller
	users, err := s.userRepository.SearchUsers(ctx, req.Query, limit+1)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.SearchUsers").Msg("error searching users")
		return nil, fmt.Errorf("error searching users: %w", err)
	}

	found := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.UserID == userID {
			continue
		}
		found = append(found, u.Public())
	}
	if len(found) > limit {
		found = found[:limit]
	}

	return found, nil
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return min(limit, maxSearchLimit)
}
