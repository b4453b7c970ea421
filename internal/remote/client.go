package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/scaledger/scaledger/internal/common"
	"github.com/scaledger/scaledger/internal/model"
)

// Config holds the connection settings for the HTTP client.
type Config struct {
	BaseURL     string
	APIKey      string
	SessionFile string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: service URL is required", common.ErrMissingConfig)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: service API key is required", common.ErrMissingConfig)
	}
	if c.SessionFile == "" {
		return fmt.Errorf("%w: session file path is required", common.ErrMissingConfig)
	}
	return nil
}

// HTTPClient implements the Client interface against a hosted service that
// exposes token auth under /auth/v1 and row CRUD under /rest/v1.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	cache      *sessionCache

	mu        sync.Mutex
	listeners []func(AuthEvent, *model.Session)
}

// NewHTTPClient creates a new client with the given configuration.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "remote"),
		cache:  &sessionCache{path: cfg.SessionFile},
	}, nil
}

// statusError carries a non-2xx response for classification by callers.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

func isAuthFailure(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusUnauthorized || se.code == http.StatusForbidden
	}
	return false
}

// wireUser is the auth service's user payload.
type wireUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// tokenResponse is the auth service's session payload.
type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    int64     `json:"expires_at"` // seconds since epoch
	User         *wireUser `json:"user"`
}

func (r *tokenResponse) session(now time.Time) *model.Session {
	sess := &model.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
	switch {
	case r.ExpiresAt > 0:
		sess.ExpiresAt = r.ExpiresAt * 1000
	case r.ExpiresIn > 0:
		sess.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second).UnixMilli()
	}
	if r.User != nil {
		sess.User = &model.User{ID: r.User.ID, Email: r.User.Email}
	}
	return sess
}

// doJSON performs a request with the service headers set, optionally sending
// a JSON body and decoding a JSON response. An empty token falls back to the
// public API key.
func (c *HTTPClient) doJSON(ctx context.Context, method, rawURL, token string, body, out any, prefer string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrRemoteCall, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: %w", common.ErrRemoteCall, method, req.URL.Path,
			&statusError{code: resp.StatusCode, body: strings.TrimSpace(string(respBody))})
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", common.ErrRemoteCall, err)
		}
	}

	return nil
}

// accessToken returns the cached session's token, or empty when signed out.
func (c *HTTPClient) accessToken() string {
	sess, err := c.cache.load()
	if err != nil || sess == nil {
		return ""
	}
	return sess.AccessToken
}

// GetCurrentSession loads the cached session and revalidates it against the
// auth service, refreshing an expired token when possible. It returns
// (nil, nil) when nobody is signed in.
func (c *HTTPClient) GetCurrentSession(ctx context.Context) (*model.Session, error) {
	sess, err := c.cache.load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	if sess.Expired(time.Now()) && sess.RefreshToken != "" {
		refreshed, refreshErr := c.refreshSession(ctx, sess)
		if refreshErr != nil {
			if isAuthFailure(refreshErr) {
				c.logger.Debug("Cached session could not be refreshed, discarding", "error", refreshErr)
				_ = c.cache.clear()
				return nil, nil
			}
			return nil, refreshErr
		}
		sess = refreshed
	}

	var user wireUser
	err = c.doJSON(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", sess.AccessToken, nil, &user, "")
	if err != nil {
		if isAuthFailure(err) {
			c.logger.Debug("Cached session rejected by auth service, discarding", "error", err)
			_ = c.cache.clear()
			return nil, nil
		}
		return nil, err
	}

	sess.User = &model.User{ID: user.ID, Email: user.Email}
	if err := c.cache.save(sess); err != nil {
		c.logger.Warn("Failed to persist session", "error", err)
	}

	return sess, nil
}

// refreshSession exchanges a refresh token for a new session.
func (c *HTTPClient) refreshSession(ctx context.Context, sess *model.Session) (*model.Session, error) {
	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/token?grant_type=refresh_token", "",
		map[string]string{"refresh_token": sess.RefreshToken}, &tr, "")
	if err != nil {
		return nil, err
	}

	refreshed := tr.session(time.Now())
	if refreshed.User == nil {
		refreshed.User = sess.User
	}
	if err := c.cache.save(refreshed); err != nil {
		c.logger.Warn("Failed to persist refreshed session", "error", err)
	}

	return refreshed, nil
}

// SignInWithPassword authenticates with email and password, persists the
// resulting session, and notifies auth-state listeners.
func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost,
		c.baseURL+"/auth/v1/token?grant_type=password", "",
		map[string]string{"email": email, "password": password}, &tr, "")
	if err != nil {
		return nil, err
	}

	sess := tr.session(time.Now())
	if err := c.cache.save(sess); err != nil {
		c.logger.Warn("Failed to persist session", "error", err)
	}
	c.notify(AuthSignedIn, sess)

	return sess, nil
}

// SignUp registers a new user. When the service issues a session immediately
// (no email confirmation required) it is persisted like a sign-in.
func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	var tr tokenResponse
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/auth/v1/signup", "",
		map[string]string{"email": email, "password": password}, &tr, "")
	if err != nil {
		return nil, err
	}

	if tr.AccessToken == "" {
		return nil, nil
	}

	sess := tr.session(time.Now())
	if err := c.cache.save(sess); err != nil {
		c.logger.Warn("Failed to persist session", "error", err)
	}
	c.notify(AuthSignedIn, sess)

	return sess, nil
}

// SignOut terminates the session with the auth service and discards the
// cached credentials. The cache is kept when the service call fails.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	sess, err := c.cache.load()
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	err = c.doJSON(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", sess.AccessToken, nil, nil, "")
	if err != nil && !isAuthFailure(err) {
		return err
	}

	if err := c.cache.clear(); err != nil {
		return err
	}
	c.notify(AuthSignedOut, nil)

	return nil
}

// SelectAccounts fetches the full accounts collection for a user, ordered by
// name ascending.
func (c *HTTPClient) SelectAccounts(ctx context.Context, userID string) ([]AccountRow, error) {
	rawURL := fmt.Sprintf("%s/rest/v1/accounts?select=*&user_id=eq.%s&order=name.asc",
		c.baseURL, url.QueryEscape(userID))

	var rows []AccountRow
	if err := c.doJSON(ctx, http.MethodGet, rawURL, c.accessToken(), nil, &rows, ""); err != nil {
		return nil, err
	}

	return rows, nil
}

// InsertAccount inserts a single account row and returns the stored row.
func (c *HTTPClient) InsertAccount(ctx context.Context, fields AccountFields) (*AccountRow, error) {
	var rows []AccountRow
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/rest/v1/accounts",
		c.accessToken(), fields, &rows, "return=representation")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no row", common.ErrRemoteCall)
	}

	return &rows[0], nil
}

// UpdateAccount applies a partial update to a single account row.
func (c *HTTPClient) UpdateAccount(ctx context.Context, id string, patch AccountPatch) error {
	rawURL := fmt.Sprintf("%s/rest/v1/accounts?id=eq.%s", c.baseURL, url.QueryEscape(id))
	return c.doJSON(ctx, http.MethodPatch, rawURL, c.accessToken(), patch, nil, "")
}

// DeleteAccount deletes a single account row. Transactions referencing the
// account are left in place; the dashboard shows them unattributed.
func (c *HTTPClient) DeleteAccount(ctx context.Context, id string) error {
	rawURL := fmt.Sprintf("%s/rest/v1/accounts?id=eq.%s", c.baseURL, url.QueryEscape(id))
	return c.doJSON(ctx, http.MethodDelete, rawURL, c.accessToken(), nil, nil, "")
}

// SelectTransactions fetches the full transactions collection for a user,
// ordered by effective timestamp descending.
func (c *HTTPClient) SelectTransactions(ctx context.Context, userID string) ([]TransactionRow, error) {
	rawURL := fmt.Sprintf("%s/rest/v1/transactions?select=*&user_id=eq.%s&order=timestamp.desc",
		c.baseURL, url.QueryEscape(userID))

	var rows []TransactionRow
	if err := c.doJSON(ctx, http.MethodGet, rawURL, c.accessToken(), nil, &rows, ""); err != nil {
		return nil, err
	}

	return rows, nil
}

// InsertTransaction inserts a single transaction row and returns the stored row.
func (c *HTTPClient) InsertTransaction(ctx context.Context, fields TransactionFields) (*TransactionRow, error) {
	var rows []TransactionRow
	err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/rest/v1/transactions",
		c.accessToken(), fields, &rows, "return=representation")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert returned no row", common.ErrRemoteCall)
	}

	return &rows[0], nil
}

// UpdateTransaction applies a partial update to a single transaction row.
func (c *HTTPClient) UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) error {
	rawURL := fmt.Sprintf("%s/rest/v1/transactions?id=eq.%d", c.baseURL, id)
	return c.doJSON(ctx, http.MethodPatch, rawURL, c.accessToken(), patch, nil, "")
}

// DeleteTransaction deletes a single transaction row.
func (c *HTTPClient) DeleteTransaction(ctx context.Context, id int64) error {
	rawURL := fmt.Sprintf("%s/rest/v1/transactions?id=eq.%d", c.baseURL, id)
	return c.doJSON(ctx, http.MethodDelete, rawURL, c.accessToken(), nil, nil, "")
}

// OnAuthStateChange registers a listener for sign-in/sign-out events.
func (c *HTTPClient) OnAuthStateChange(fn func(event AuthEvent, session *model.Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// notify delivers an auth event to every registered listener.
func (c *HTTPClient) notify(event AuthEvent, session *model.Session) {
	c.mu.Lock()
	listeners := make([]func(AuthEvent, *model.Session), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(event, session)
	}
}

// Ensure HTTPClient implements the Client interface.
var _ Client = (*HTTPClient)(nil)
