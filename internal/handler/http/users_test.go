// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetProfile(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.users.EXPECT().GetProfile(gomock.Any(), alice).
		Return(models.User{UserID: alice, Login: "alice", Name: "Alice"}, nil)

	rec := do(t, router, http.MethodGet, "/api/profile", alice, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Alice", got.Name)
}

func TestUpdateProfile(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)

	name := "Alice L."
	m.users.EXPECT().UpdateProfile(gomock.Any(), alice, models.UpdateProfileRequest{Name: &name}).
		Return(models.User{UserID: alice, Login: "alice", Name: name}, nil)

	rec := do(t, router, http.MethodPatch, "/api/profile", alice, `{"name":"Alice L."}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, name, got.Name)
}

func TestUpdateProfile_Invalid(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.users.EXPECT().UpdateProfile(gomock.Any(), alice, gomock.Any()).
		Return(models.User{}, errors.Join(service.ErrInvalidDataProvided, errors.New("nothing to update")))

	rec := do(t, router, http.MethodPatch, "/api/profile", alice, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, errorBody(t, rec))
}

func TestSearchUsers(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.users.EXPECT().SearchUsers(gomock.Any(), alice, models.SearchRequest{Query: "bo", Limit: 5}).
		Return([]models.User{{UserID: bob, Login: "bob"}}, nil)

	rec := do(t, router, http.MethodGet, "/api/users?search=bo&limit=5", alice, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Login)
}

func TestSearchUsers_EmptyIsArray(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.users.EXPECT().SearchUsers(gomock.Any(), alice, models.SearchRequest{Query: "zz"}).Return(nil, nil)

	rec := do(t, router, http.MethodGet, "/api/users?search=zz", alice, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearchUsers_BadLimit(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)

	rec := do(t, router, http.MethodGet, "/api/users?search=bo&limit=ten", alice, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, errorBody(t, rec))
}

func TestFindUser_StillRoutedBesideSearch(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.auth.EXPECT().FindUserByLogin(gomock.Any(), "bob").Return(models.User{}, store.ErrNoUserWasFound)

	rec := do(t, router, http.MethodGet, "/api/users/bob", alice, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgUserNotFound, errorBody(t, rec))
}

func TestSearchGroups(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.chats.EXPECT().SearchGroups(gomock.Any(), alice, models.SearchRequest{Query: "te"}).
		Return([]models.Chat{{ChatID: chatID, IsGroup: true, Name: "team"}}, nil)

	rec := do(t, router, http.MethodGet, "/api/groups?search=te", alice, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Chat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "team", got[0].Name)
}
