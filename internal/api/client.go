// Copyright (c) 2025 The Gideon Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gideon-chat/gideon-tui/internal/auth"
)

// Configuration constants for the backend transport.
const (
	// DefaultBaseURL is the backend address for local development.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every non-streaming request. Streaming
	// requests are bounded by their context only.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps response bodies read into memory.
	MaxResponseSize = 10 * 1024 * 1024

	// Default outbound rate: generous enough for interactive use,
	// tight enough that a redraw loop cannot hammer the backend.
	defaultRateLimit = 10
	defaultRateBurst = 20
)

var (
	// Shared clients with connection pooling. The streaming client has
	// no timeout: a chat stream lives as long as its context.
	sharedHTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: DefaultTimeout,
	}

	sharedStreamingClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
)

// UnauthorizedFunc is invoked when any response comes back 401. The
// hosting application decides what "log out" means (navigation,
// teardown); the transport only reports it.
type UnauthorizedFunc func()

// Client is the authenticated HTTP client for the Gideon backend.
// Thread-safe for concurrent use.
type Client struct {
	baseURL        string
	store          *auth.Store
	httpClient     *http.Client
	streamClient   *http.Client
	limiter        *rate.Limiter
	onUnauthorized UnauthorizedFunc
}

// NewClient creates a transport bound to the given credential store.
func NewClient(baseURL string, store *auth.Store) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		store:        store,
		httpClient:   sharedHTTPClient,
		streamClient: sharedStreamingClient,
		limiter:      rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
	}
}

// WithTimeout sets the timeout for non-streaming requests.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithRateLimit overrides the outbound request limiter.
func (c *Client) WithRateLimit(perSecond float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// OnUnauthorized registers the global logout handler. The handler runs
// at most once per stored token, even when several in-flight requests
// fail together.
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PIPELINE
// =============================================================================

// newRequest builds a request with the bearer token attached when one
// is stored. Calls without a token go out unauthenticated; the backend
// answers 401 and the response interceptor takes over.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// checkStatus is the response-level interceptor. It runs for every
// response the transport receives, chat-related or not.
func (c *Client) checkStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusUnauthorized {
		// Clear first, then notify: once the event fires the token is
		// already gone. ClearToken reports false for every 401 after
		// the first, so the handler runs exactly once.
		if c.store.ClearToken() && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// do performs one non-streaming call and decodes the JSON response
// into out (which may be nil for endpoints with uninteresting bodies).
// No retries: failures surface directly to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		// http.Client wraps its own timeout in a url.Error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return ErrTimeout
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	respBody, err := readBody(resp)
	if err != nil {
		return err
	}

	if err := c.checkStatus(resp, respBody); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readBody reads a response body with a size cap. One extra byte is
// read so a body of exactly MaxResponseSize is accepted.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// logRequest logs method and path only. Headers carry the token and
// bodies may carry secrets; neither is ever logged.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("api: %s %s", req.Method, req.URL.Path)
}

func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("api: %d %s (%v)", resp.StatusCode, resp.Request.URL.Path, duration)
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a bearer token and stores it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tok TokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login/json",
		LoginRequest{Username: username, Password: password}, &tok)
	if err != nil {
		return err
	}
	return c.store.SetToken(tok.AccessToken)
}

// Register creates an account. It does not log in; callers follow up
// with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// =============================================================================
// PREFERENCES
// =============================================================================

// GetPreferences fetches the server-stored preferences.
func (c *Client) GetPreferences(ctx context.Context) (*Preferences, error) {
	var prefs Preferences
	if err := c.do(ctx, http.MethodGet, "/api/users/preferences", nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences replaces the server-stored preferences.
func (c *Client) UpdatePreferences(ctx context.Context, prefs Preferences) (*Preferences, error) {
	var updated Preferences
	if err := c.do(ctx, http.MethodPut, "/api/users/preferences", prefs, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// =============================================================================
// API KEYS
// =============================================================================

// ListAPIKeys fetches the stored credential metadata.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var keys []APIKey
	if err := c.do(ctx, http.MethodGet, "/api/users/api-keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// CreateAPIKey stores a new provider key. This is the only call that
// ever carries secret material.
func (c *Client) CreateAPIKey(ctx context.Context, req CreateAPIKeyRequest) (*APIKey, error) {
	var key APIKey
	if err := c.do(ctx, http.MethodPost, "/api/users/api-keys", req, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// DeleteAPIKey removes a stored key.
func (c *Client) DeleteAPIKey(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/users/api-keys/"+strconv.FormatInt(id, 10), nil, nil)
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// ListConversations fetches the user's conversations, most recent
// first. The ordering matters: resolving a freshly-created
// conversation's id relies on it.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var convs []Conversation
	if err := c.do(ctx, http.MethodGet, "/api/chat/conversations", nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// GetConversation fetches one conversation.
func (c *Client) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	var conv Conversation
	if err := c.do(ctx, http.MethodGet, conversationPath(id), nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// UpdateConversation renames a conversation.
func (c *Client) UpdateConversation(ctx context.Context, id int64, update ConversationUpdate) (*Conversation, error) {
	var conv Conversation
	if err := c.do(ctx, http.MethodPut, conversationPath(id), update, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// DeleteConversation removes a conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, conversationPath(id), nil, nil)
}

// ListMessages fetches a conversation's history with paging.
func (c *Client) ListMessages(ctx context.Context, conversationID int64, skip, limit int) ([]Message, error) {
	path := fmt.Sprintf("%s/messages?skip=%d&limit=%d", conversationPath(conversationID), skip, limit)
	var msgs []Message
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func conversationPath(id int64) string {
	return "/api/chat/conversations/" + strconv.FormatInt(id, 10)
}

// =============================================================================
// MODELS & HEALTH
// =============================================================================

// ListModels fetches the available model names grouped by provider.
func (c *Client) ListModels(ctx context.Context) (map[string][]string, error) {
	models := make(map[string][]string)
	if err := c.do(ctx, http.MethodGet, "/api/users/models", nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context) error {
	var status HealthStatus
	return c.do(ctx, http.MethodGet, "/api/health", nil, &status)
}
