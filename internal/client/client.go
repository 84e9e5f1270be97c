// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jvhelp-service/internal/domain/admin"
	"jvhelp-service/internal/domain/content"

	"go.uber.org/zap"
)

var (
	// ErrLoginRequired means the cached session is gone; the user must log in.
	ErrLoginRequired = errors.New("login required")
	// ErrTryAgain means the server or network failed; the session is kept.
	ErrTryAgain = errors.New("service unavailable, try again")
)

// APIError is a non-auth 4xx answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// Client talks to the admin API with a cached bearer token. It never
// refreshes: any 401 clears the cache and asks for a new login.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock replaces time.Now for the local expiry check.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ========== Session ==========

// Login exchanges credentials for a token and caches it.
func (c *Client) Login(ctx context.Context, username, password string) (*admin.LoginResponse, error) {
	var resp admin.LoginResponse
	status, err := c.send(ctx, http.MethodPost, "/api/admin/login", nil, admin.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected login status %d", status)
	}

	if err := c.store.Save(&Session{
		Server:    c.baseURL,
		Username:  resp.Admin.Username,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the token server side and always clears the local cache.
func (c *Client) Logout(ctx context.Context) error {
	sess, err := c.store.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}

	_, sendErr := c.send(ctx, http.MethodPost, "/api/admin/logout", sess, nil, nil)
	if err := c.store.Clear(); err != nil {
		return err
	}
	if sendErr != nil && !errors.Is(sendErr, ErrLoginRequired) {
		return sendErr
	}
	return nil
}

// IsLocallyExpired is true when no expiry is cached or it lies strictly in
// the past. The server stays authoritative.
func (c *Client) IsLocallyExpired() bool {
	sess, err := c.store.Load()
	if err != nil || sess.ExpiresAt.IsZero() {
		return true
	}
	return sess.ExpiresAt.Before(c.now())
}

// Session returns the cached login, if any.
func (c *Client) Session() (*Session, error) {
	return c.store.Load()
}

// ========== Admin API ==========

func (c *Client) Dashboard(ctx context.Context) ([]admin.Module, error) {
	var resp struct {
		Modules []admin.Module `json:"modules"`
	}
	if err := c.doAdmin(ctx, http.MethodGet, "/api/admin/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Modules, nil
}

func (c *Client) Me(ctx context.Context) (*admin.PrincipalInfo, error) {
	var resp struct {
		Admin admin.PrincipalInfo `json:"admin"`
	}
	if err := c.doAdmin(ctx, http.MethodGet, "/api/admin/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Admin, nil
}

func (c *Client) Thoughts(ctx context.Context, page, limit int) (*content.ThoughtPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/admin/thoughts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp content.ThoughtPage
	if err := c.doAdmin(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteThought(ctx context.Context, id string) error {
	return c.doAdmin(ctx, http.MethodDelete, "/api/admin/thoughts/"+url.PathEscape(id), nil, nil)
}

// ========== Transport ==========

// doAdmin runs an authenticated call: local expiry precheck, bearer header,
// uniform 401 handling.
func (c *Client) doAdmin(ctx context.Context, method, path string, body, out any) error {
	sess, err := c.store.Load()
	if errors.Is(err, ErrNoSession) {
		return ErrLoginRequired
	}
	if err != nil {
		return err
	}
	if sess.ExpiresAt.IsZero() || sess.ExpiresAt.Before(c.now()) {
		c.onUnauthorized("expired locally")
		return ErrLoginRequired
	}

	_, err = c.send(ctx, method, path, sess, body, out)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, sess *Session, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		attachAuth(req, sess)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTryAgain, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrTryAgain, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && sess != nil:
		c.onUnauthorized(errorMessage(data))
		return resp.StatusCode, ErrLoginRequired
	case resp.StatusCode >= 500:
		return resp.StatusCode, ErrTryAgain
	case resp.StatusCode >= 400:
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func attachAuth(req *http.Request, sess *Session) {
	req.Header.Set("Authorization", "Bearer "+sess.Token)
}

// onUnauthorized drops the cached session entirely; the next call needs a
// fresh login.
func (c *Client) onUnauthorized(reason string) {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to clear cached session", zap.Error(err))
		return
	}
	c.logger.Debug("cached session cleared", zap.String("reason", reason))
}

func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return "request failed"
}
