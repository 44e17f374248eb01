// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sealed-chat/internal/adapter"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/models"
)

type clientUserService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewClientUserService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientUserService {
	return &clientUserService{
		adapter: serverAdapter,
		logger:  logger,
	}
}

func (c *clientUserService) GetProfile(ctx context.Context) (models.User, error) {
	user, err := c.adapter.GetProfile(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting profile: %w", mapAdapterError(err))
	}

	return user, nil
}

func (c *clientUserService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	if req.Empty() {
		return models.User{}, fmt.Errorf("%w: nothing to update", ErrInvalidDataProvided)
	}

	user, err := c.adapter.UpdateProfile(ctx, req)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating profile: %w", mapAdapterError(err))
	}

	c.logger.Info().Str("user_id", user.UserID).Msg("profile updated")
	return user, nil
}

func (c *clientUserService) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	users, err := c.adapter.SearchUsers(ctx, models.SearchRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", mapAdapterError(err))
	}

	return users, nil
}
