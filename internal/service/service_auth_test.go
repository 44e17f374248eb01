// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/mock"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testAppConfig = config.App{
	PasswordHashKey: "hash-key",
	TokenSignKey:    "sign-key",
	TokenIssuer:     "sealed-chat",
	TokenDuration:   time.Hour,
	Version:         "test",
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	return NewAuthService(users, testAppConfig, logger.Nop()), users
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.True(t, utils.IsUUID(u.UserID))
			assert.Equal(t, utils.HashString("secret", testAppConfig.PasswordHashKey), u.AuthHash)
			assert.Empty(t, u.Password, "plaintext password must not reach the repository")
			assert.False(t, u.CreatedAt.IsZero())
			return u, nil
		},
	)

	got, err := svc.RegisterUser(ctx, models.User{Login: "alice", Password: "secret", Name: "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Login)
	assert.Empty(t, got.AuthHash)
	assert.NotEmpty(t, got.UserID)
}

func TestAuthService_RegisterUser_InvalidData(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []models.User{
		{Login: "", Password: "secret"},
		{Login: "alice", Password: ""},
		{Login: "has space", Password: "secret"},
		{Login: "a/b", Password: "secret"},
	}

	for _, user := range tests {
		_, err := svc.RegisterUser(context.Background(), user)
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "login %q", user.Login)
	}
}

func TestAuthService_RegisterUser_LoginTaken(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "alice", Password: "secret"})

	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	stored := models.User{
		UserID:   "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		Login:    "alice",
		AuthHash: utils.HashString("secret", testAppConfig.PasswordHashKey),
	}

	tests := []struct {
		name     string
		password string
		findErr  error
		wantErr  error
	}{
		{name: "correct password", password: "secret"},
		{name: "wrong password", password: "nope", wantErr: ErrWrongPassword},
		{name: "unknown user", password: "secret", findErr: store.ErrNoUserWasFound, wantErr: ErrWrongPassword},
		{name: "storage failure", password: "secret", findErr: store.ErrExecutingQuery, wantErr: store.ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestAuthService(t)

			if tt.findErr != nil {
				users.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{}, tt.findErr)
			} else {
				users.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(stored, nil)
			}

			got, err := svc.Login(context.Background(), models.User{Login: "alice", Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.UserID, got.UserID)
			assert.Empty(t, got.AuthHash)
		})
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: "user-1"})
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)

	_, err = svc.ParseToken(ctx, token.SignedString+"x")
	assert.True(t, errors.Is(err, ErrTokenIsExpiredOrInvalid))
}

func TestAuthService_CreateToken_NoUserID(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.CreateToken(context.Background(), models.User{})

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_FindUserByLogin_ReturnsPublicPart(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().FindUserByLogin(gomock.Any(), "bob").
		Return(models.User{UserID: "u-2", Login: "bob", Name: "Bob", AuthHash: "hash"}, nil)

	got, err := svc.FindUserByLogin(context.Background(), "bob")

	require.NoError(t, err)
	assert.Equal(t, models.User{UserID: "u-2", Login: "bob", Name: "Bob"}, got)
}
