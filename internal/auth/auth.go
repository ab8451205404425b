// Package auth talks to the authentication service and keeps the signed-in session on disk.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultSessionFile is where the session is kept when no path is configured.
const DefaultSessionFile = "config/session.json"

// ErrNoSession is returned by calls that need a signed-in user when there is none.
var ErrNoSession = errors.New("auth: not signed in")

// User is the signed-in account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UnmarshalJSON accepts numeric or string ids.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Email string          `json:"email"`
		Name  string          `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.Email, u.Name = raw.Email, raw.Name
	u.ID = ""
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.ID, &s); err == nil {
		u.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err != nil {
		return fmt.Errorf("auth: user id: %w", err)
	}
	u.ID = n.String()
	return nil
}

// Session is the persisted login.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresIn    int       `json:"expiresIn,omitempty"`
	User         User      `json:"user"`
	SavedAt      time.Time `json:"savedAt"`
}

// APIError is a non-2xx answer from the auth service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth: service returned status %d", e.Status)
	}
	return fmt.Sprintf("auth: service returned status %d: %s", e.Status, e.Message)
}

// Client is the auth service client. It is safe for concurrent use.
type Client struct {
	BaseURL     string
	SessionPath string

	httpClient *http.Client
	log        *slog.Logger

	mu      sync.RWMutex
	session *Session
}

// NewClient creates a client and restores any session saved at sessionPath. A missing or
// unreadable session file leaves the client signed out.
func NewClient(baseURL, sessionPath string, timeout time.Duration, log *slog.Logger) *Client {
	if sessionPath == "" {
		sessionPath = DefaultSessionFile
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		SessionPath: sessionPath,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log.With("component", "auth"),
	}
	if s, err := readSession(sessionPath); err == nil {
		c.session = s
	} else if !errors.Is(err, os.ErrNotExist) {
		c.log.Warn("ignoring unreadable session file", "path", sessionPath, "error", err)
	}
	return c
}

// Login signs in and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &s, false); err != nil {
		return Session{}, fmt.Errorf("auth: login: %w", err)
	}
	if s.AccessToken == "" {
		return Session{}, fmt.Errorf("auth: login: response carried no access token")
	}
	s.SavedAt = time.Now().UTC()
	if err := writeSession(c.SessionPath, &s); err != nil {
		return Session{}, err
	}
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()
	c.log.Info("signed in", "user", s.User.Email)
	return s, nil
}

// Register creates an account and then signs in with the same credentials, since the
// register endpoint does not issue tokens.
func (c *Client) Register(ctx context.Context, email, password, name string) (User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, nil, false); err != nil {
		return User{}, fmt.Errorf("auth: register: %w", err)
	}
	s, err := c.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	return s.User, nil
}

// Logout forgets the session locally. There is no server call.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	if err := os.Remove(c.SessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: remove session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user from the cached session. It never blocks on I/O.
func (c *Client) CurrentUser() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return User{}, false
	}
	return c.session.User, true
}

// IsAuthenticated reports whether an access token is held.
func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

// Token returns the access token, or "" when signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (User, error) {
	if !c.IsAuthenticated() {
		return User{}, ErrNoSession
	}
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u, true); err != nil {
		return User{}, fmt.Errorf("auth: profile: %w", err)
	}
	return u, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls "message" or "error" out of a JSON error body, or returns the body text.
func errorMessage(data []byte) string {
	var body struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch m := body.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				parts = append(parts, fmt.Sprint(p))
			}
			return strings.Join(parts, "; ")
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}

func readSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if s.AccessToken == "" {
		return nil, fmt.Errorf("session has no access token")
	}
	return &s, nil
}

func writeSession(path string, s *Session) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("auth: create session dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("auth: write session: %w", err)
	}
	return nil
}

// String is used in logs; the token is never printed.
func (s Session) String() string {
	return "session(" + s.User.Email + ", expires in " + strconv.Itoa(s.ExpiresIn) + "s)"
}
