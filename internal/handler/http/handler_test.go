// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/mock"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Harness
// ─────────────────────────────────────────────

const (
	alice  = "0190a1b2-0000-7000-8000-00000000000a"
	bob    = "0190a1b2-0000-7000-8000-00000000000b"
	chatID = "0190a1b2-0000-7000-8000-0000000000f1"
)

type testServices struct {
	auth     *mock.MockAuthService
	users    *mock.MockUserService
	chats    *mock.MockChatService
	messages *mock.MockMessageService
	media    *mock.MockMediaService
	appInfo  *mock.MockAppInfoService
}

// newTestRouter builds the full router on top of gomock services.
func newTestRouter(t *testing.T) (http.Handler, testServices) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mocks := testServices{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserService(ctrl),
		chats:    mock.NewMockChatService(ctrl),
		messages: mock.NewMockMessageService(ctrl),
		media:    mock.NewMockMediaService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	svcs := &service.Services{
		AuthService:    mocks.auth,
		UserService:    mocks.users,
		ChatService:    mocks.chats,
		MessageService: mocks.messages,
		MediaService:   mocks.media,
		AppInfoService: mocks.appInfo,
	}
	return NewHandler(svcs, logger.Nop()).Init(), mocks
}

// authorize makes the token "token-<userID>" valid for userID.
func (m testServices) authorize(userID string) {
	m.auth.EXPECT().ParseToken(gomock.Any(), "token-"+userID).
		Return(models.Token{UserID: userID}, nil).AnyTimes()
}

// do sends a request as userID; an empty userID sends no token.
func do(t *testing.T, router http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer token-"+userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

// ─────────────────────────────────────────────
// register / login
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	router, m := newTestRouter(t)

	in := models.User{Login: "alice", Password: "secret"}
	m.auth.EXPECT().RegisterUser(gomock.Any(), in).
		Return(models.User{UserID: alice, Login: "alice", AuthHash: "hash"}, nil)
	m.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
		Return(models.Token{SignedString: "signed.jwt.token"}, nil)

	rec := do(t, router, http.MethodPost, "/api/user/register", "", in)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, alice, got.UserID)
	assert.Empty(t, got.Password)
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "invalid JSON",
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "invalid data",
			body:       `{"login":""}`,
			serviceErr: service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
		{
			name:       "login taken",
			body:       `{"login":"alice","password":"pw"}`,
			serviceErr: store.ErrLoginAlreadyExists,
			wantStatus: http.StatusConflict,
			wantMsg:    app.MsgLoginAlreadyExists,
		},
		{
			name:       "storage failure",
			body:       `{"login":"alice","password":"pw"}`,
			serviceErr: errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			if tt.serviceErr != nil {
				m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.serviceErr)
			}

			rec := do(t, router, http.MethodPost, "/api/user/register", "", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, rec))
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: alice, Login: "alice"}, nil)
		m.auth.EXPECT().CreateToken(gomock.Any(), models.User{UserID: alice, Login: "alice"}).
			Return(models.Token{SignedString: "tok"}, nil)

		rec := do(t, router, http.MethodPost, "/api/user/login", "", `{"login":"alice","password":"pw"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Bearer tok", rec.Header().Get("Authorization"))
	})

	t.Run("wrong password", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrWrongPassword)

		rec := do(t, router, http.MethodPost, "/api/user/login", "", `{"login":"alice","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgInvalidLoginPassword, errorBody(t, rec))
	})

	t.Run("token creation fails", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: alice}, nil)
		m.auth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).Return(models.Token{}, errors.New("sign"))

		rec := do(t, router, http.MethodPost, "/api/user/login", "", `{"login":"alice","password":"pw"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Header().Get("Authorization"))
	})
}

func TestFindUser(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)
	m.auth.EXPECT().FindUserByLogin(gomock.Any(), "bob").Return(models.User{UserID: bob, Login: "bob"}, nil)
	m.auth.EXPECT().FindUserByLogin(gomock.Any(), "nobody").Return(models.User{}, store.ErrNoUserWasFound)

	rec := do(t, router, http.MethodGet, "/api/users/bob", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), bob)

	rec = do(t, router, http.MethodGet, "/api/users/nobody", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgUserNotFound, errorBody(t, rec))
}

// ─────────────────────────────────────────────
// version / routing
// ─────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rec := do(t, router, http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1.2.3", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestGetServerVersion_JSON(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"v1.2.3"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestRoutes_RequireAuthorization(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/bob"},
		{http.MethodGet, "/api/chats"},
		{http.MethodPost, "/api/chats"},
		{http.MethodGet, "/api/chats/" + chatID},
		{http.MethodGet, "/api/chats/" + chatID + "/key"},
		{http.MethodPost, "/api/chats/" + chatID + "/members"},
		{http.MethodDelete, "/api/chats/" + chatID + "/members/" + bob},
		{http.MethodPost, "/api/chats/" + chatID + "/admins/" + bob},
		{http.MethodGet, "/api/chats/" + chatID + "/messages"},
		{http.MethodPost, "/api/chats/" + chatID + "/messages"},
		{http.MethodDelete, "/api/chats/" + chatID + "/messages"},
		{http.MethodDelete, "/api/chats/" + chatID + "/messages/m1"},
		{http.MethodPut, "/api/chats/" + chatID + "/media/m1/media"},
		{http.MethodGet, "/api/chats/" + chatID + "/media/m1/media"},
		{http.MethodPut, "/api/public/f1"},
		{http.MethodGet, "/api/public/f1"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			router, _ := newTestRouter(t)

			rec := do(t, router, rt.method, rt.path, "", nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, errorBody(t, rec))
		})
	}
}

func TestRoutes_UnknownMethodIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodDelete, "/api/version", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_TraceIDHeader(t *testing.T) {
	router, m := newTestRouter(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1").Times(2)

	rec := do(t, router, http.MethodGet, "/api/version", "", nil)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}

func TestRoutes_BodyTooLarge(t *testing.T) {
	router, m := newTestRouter(t)
	m.authorize(alice)

	body := `{"ciphertext":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, router, http.MethodPost, "/api/chats/"+chatID+"/messages", alice, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgRequestTooLarge, errorBody(t, rec))
}
