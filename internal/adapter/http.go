// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/sealed-chat/internal/config"
	"github.com/MKhiriev/sealed-chat/internal/logger"
	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. Chunk uploads read the token from
// many goroutines, hence the lock.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// /api/user/register, stores the bearer token from the Authorization
// response header and returns the created account.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// /api/user/login and stores the returned bearer token.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.User, error) {
	var authenticated models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&authenticated).
		Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}
	if authenticated.UserID == "" {
		if authenticated.UserID, err = utils.ParseUserIDFromJWT(token); err != nil {
			return models.User{}, fmt.Errorf("%s parse user id: %w", path, err)
		}
	}

	h.SetToken(token)
	return authenticated, nil
}

func (h *httpServerAdapter) FindUser(ctx context.Context, login string) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetPathParam("login", login).
		SetResult(&user).
		Get("/api/users/{login}")
	if err != nil {
		return models.User{}, fmt.Errorf("find user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) GetProfile(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/api/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("get profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Patch("/api/profile")
	if err != nil {
		return models.User{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) SearchUsers(ctx context.Context, req models.SearchRequest) ([]models.User, error) {
	var users []models.User

	resp, err := h.searchRequest(ctx, req).
		SetResult(&users).
		Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("search users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return users, nil
}

func (h *httpServerAdapter) CreateChat(ctx context.Context, req models.CreateChatRequest) (models.Chat, error) {
	var chat models.Chat

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&chat).
		Post("/api/chats")
	if err != nil {
		return models.Chat{}, fmt.Errorf("create chat request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Chat{}, err
	}

	return chat, nil
}

func (h *httpServerAdapter) ListChats(ctx context.Context) ([]models.Chat, error) {
	var chats []models.Chat

	resp, err := h.authedRequest(ctx).
		SetResult(&chats).
		Get("/api/chats")
	if err != nil {
		return nil, fmt.Errorf("list chats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return chats, nil
}

func (h *httpServerAdapter) GetChat(ctx context.Context, chatID string) (models.Chat, error) {
	var chat models.Chat

	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		SetResult(&chat).
		Get("/api/chats/{chatID}")
	if err != nil {
		return models.Chat{}, fmt.Errorf("get chat request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Chat{}, err
	}

	return chat, nil
}

func (h *httpServerAdapter) UpdateChat(ctx context.Context, chatID string, req models.UpdateChatRequest) (models.Chat, error) {
	var chat models.Chat

	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&chat).
		Patch("/api/chats/{chatID}")
	if err != nil {
		return models.Chat{}, fmt.Errorf("update chat request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Chat{}, err
	}

	return chat, nil
}

func (h *httpServerAdapter) SearchGroups(ctx context.Context, req models.SearchRequest) ([]models.Chat, error) {
	var groups []models.Chat

	resp, err := h.searchRequest(ctx, req).
		SetResult(&groups).
		Get("/api/groups")
	if err != nil {
		return nil, fmt.Errorf("search groups request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return groups, nil
}

func (h *httpServerAdapter) MarkChatRead(ctx context.Context, chatID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		Post("/api/chats/{chatID}/read")
	if err != nil {
		return fmt.Errorf("mark chat read request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetWrappedKey(ctx context.Context, chatID string) (models.WrappedKey, error) {
	var key models.WrappedKey

	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		SetResult(&key).
		Get("/api/chats/{chatID}/key")
	if err != nil {
		return models.WrappedKey{}, fmt.Errorf("get wrapped key request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WrappedKey{}, err
	}

	return key, nil
}

func (h *httpServerAdapter) AddMember(ctx context.Context, req models.AddMemberRequest) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", req.ChatID).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/chats/{chatID}/members")
	if err != nil {
		return fmt.Errorf("add member request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) RemoveMember(ctx context.Context, chatID, userID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"chatID": chatID, "userID": userID}).
		Delete("/api/chats/{chatID}/members/{userID}")
	if err != nil {
		return fmt.Errorf("remove member request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) MakeAdmin(ctx context.Context, chatID, userID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"chatID": chatID, "userID": userID}).
		Post("/api/chats/{chatID}/admins/{userID}")
	if err != nil {
		return fmt.Errorf("make admin request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) SendMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	var saved models.Message

	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", msg.ChatID).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		SetResult(&saved).
		Post("/api/chats/{chatID}/messages")
	if err != nil {
		return models.Message{}, fmt.Errorf("send message request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Message{}, err
	}

	return saved, nil
}

func (h *httpServerAdapter) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	var messages []models.Message

	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		SetResult(&messages).
		Get("/api/chats/{chatID}/messages")
	if err != nil {
		return nil, fmt.Errorf("list messages request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return messages, nil
}

func (h *httpServerAdapter) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"chatID": chatID, "messageID": messageID}).
		Delete("/api/chats/{chatID}/messages/{messageID}")
	if err != nil {
		return fmt.Errorf("delete message request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ClearChat(ctx context.Context, chatID string) (int64, error) {
	var result models.ClearChatResult

	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		SetResult(&result).
		Delete("/api/chats/{chatID}/messages")
	if err != nil {
		return 0, fmt.Errorf("clear chat request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Deleted, nil
}

func (h *httpServerAdapter) ClearHistory(ctx context.Context, chatID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("chatID", chatID).
		SetQueryParam("for", models.MessageScopeMe).
		Delete("/api/chats/{chatID}/messages")
	if err != nil {
		return fmt.Errorf("clear history request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) HideMessage(ctx context.Context, chatID, messageID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"chatID": chatID, "messageID": messageID}).
		SetQueryParam("for", models.MessageScopeMe).
		Delete("/api/chats/{chatID}/messages/{messageID}")
	if err != nil {
		return fmt.Errorf("hide message request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) MarkReceipt(ctx context.Context, chatID, messageID string, kind models.ReceiptKind) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"chatID": chatID, "messageID": messageID}).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ReceiptRequest{Kind: kind}).
		Post("/api/chats/{chatID}/messages/{messageID}/receipts")
	if err != nil {
		return fmt.Errorf("mark receipt request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) UploadChunks(ctx context.Context, req models.UploadChunksRequest) error {
	resp, err := h.chunkRequest(ctx, req.Set).
		SetHeader("Content-Type", "application/json").
		SetBody(req.Chunks).
		Put(chunkPath(req.Set))
	if err != nil {
		return fmt.Errorf("upload chunks request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DownloadChunks(ctx context.Context, set models.ChunkSet) ([]models.MediaChunk, error) {
	var chunks []models.MediaChunk

	resp, err := h.chunkRequest(ctx, set).
		SetResult(&chunks).
		Get(chunkPath(set))
	if err != nil {
		return nil, fmt.Errorf("download chunks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return chunks, nil
}

func (h *httpServerAdapter) chunkRequest(ctx context.Context, set models.ChunkSet) *resty.Request {
	req := h.authedRequest(ctx).SetPathParam("ownerID", set.OwnerID)
	if set.Kind != models.ChunkPublic {
		req.SetPathParams(map[string]string{"chatID": set.ChatID, "kind": string(set.Kind)})
	}
	return req
}

func chunkPath(set models.ChunkSet) string {
	if set.Kind == models.ChunkPublic {
		return "/api/public/{ownerID}"
	}
	return "/api/chats/{chatID}/media/{ownerID}/{kind}"
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) searchRequest(ctx context.Context, req models.SearchRequest) *resty.Request {
	r := h.authedRequest(ctx).SetQueryParam("search", req.Query)
	if req.Limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(req.Limit))
	}
	return r
}
