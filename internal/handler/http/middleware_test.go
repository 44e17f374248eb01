// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/sealed-chat/internal/app"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// auth
// ─────────────────────────────────────────────

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		wantParse  bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "valid token",
			header:     "Bearer good",
			wantParse:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "lower case scheme",
			header:     "bearer good",
			wantParse:  true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:       "no token",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:       "other scheme",
			header:     "Basic YWxpY2U6cHc=",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:       "expired",
			header:     "Bearer good",
			parseErr:   service.ErrTokenIsExpired,
			wantParse:  true,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpired,
		},
		{
			name:       "bad signature",
			header:     "Bearer good",
			parseErr:   errors.New("signature is invalid"),
			wantParse:  true,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newTestRouter(t)
			h := &Handler{services: &service.Services{AuthService: m.auth}, logger: logger.Nop()}
			if tt.wantParse {
				token := models.Token{UserID: alice}
				if tt.parseErr != nil {
					token = models.Token{}
				}
				m.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(token, tt.parseErr)
			}

			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = utils.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorBody(t, rec))
				assert.Empty(t, gotUserID)
				return
			}
			assert.Equal(t, alice, gotUserID)
		})
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	token, err := getTokenFromAuthHeader("Bearer  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = getTokenFromAuthHeader("abc")
	assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader)

	_, err = getTokenFromAuthHeader("Bearer   ")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

// ─────────────────────────────────────────────
// CheckHTTPMethod
// ─────────────────────────────────────────────

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/items", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("items"))
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method     string
		wantStatus int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodPost, http.StatusNotFound},
		{http.MethodDelete, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/items", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// gzip
// ─────────────────────────────────────────────

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestGZip_CompressesResponse(t *testing.T) {
	// no explicit WriteHeader: the first Write must still set the encoding
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"deleted":3}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, `{"deleted":3}`, string(plain))
}

func TestGZip_PlainWhenNotAccepted(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "plain", rec.Body.String())
}

func TestGZip_DecompressesRequest(t *testing.T) {
	var got string
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, r.Body.Close())
		got = string(raw)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(gzipBytes(t, `[{"index":0}]`)))
	req.Header.Set("Content-Encoding", "gzip")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `[{"index":0}]`, got)
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	called := false
	handler := withGZip(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, errorBody(t, rec))
}

func TestGZip_ConcurrentRequests(t *testing.T) {
	handler := withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Query().Get("n")))
	}))

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := strings.Repeat("x", i+1)
			req := httptest.NewRequest(http.MethodGet, "/?n="+n, nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			zr, err := gzip.NewReader(rec.Body)
			if !assert.NoError(t, err) {
				return
			}
			plain, _ := io.ReadAll(zr)
			assert.Equal(t, n, string(plain))
		}()
	}
	wg.Wait()
}

// ─────────────────────────────────────────────
// logging / trace id / responseWriter
// ─────────────────────────────────────────────

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	handler := h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/chats", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"uri":"/api/chats"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":7`)
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"remote_addr":"192.0.2.1:1234"`)
}

func TestWithLogging_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "implicit ok", status: 0, wantLevel: `"level":"info"`},
		{name: "not found", status: http.StatusNotFound, wantLevel: `"level":"warn"`},
		{name: "conflict", status: http.StatusConflict, wantLevel: `"level":"warn"`},
		{name: "internal", status: http.StatusInternalServerError, wantLevel: `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			handler := h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
			}))

			req := httptest.NewRequest(http.MethodPut, "/api/public/f1", strings.NewReader("chunk"))
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, `"bytes_in":5`)
			if tt.status == 0 {
				assert.Contains(t, out, `"status":200`)
			}
		})
	}
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	handler := h.withTraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))
	assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, _ = w.Write([]byte("ab"))
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("cde"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, w.size)
}
