// Package museum is the client for the composition search API and the per-user
// favorites and search-history endpoints.
package museum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Defaults applied by NewClient for zero Config fields.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultFavoriteTTL = 10 * time.Second
	DefaultCooldown    = 30 * time.Second
)

// ErrUnauthorized is returned when the users service rejects the bearer token.
var ErrUnauthorized = errors.New("museum: unauthorized")

// RateLimitError is returned for HTTP 429 answers.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("museum: rate limited, retry after %s", e.RetryAfter)
}

// StatusError is any other non-2xx answer.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("museum: API returned status %d", e.Status)
	}
	return fmt.Sprintf("museum: API returned status %d: %s", e.Status, e.Message)
}

// TokenSource supplies the bearer token for user endpoints. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token() string
}

// Config configures a Client.
type Config struct {
	// APIURL is the composition service (search, artwork detail).
	APIURL string
	// UsersURL is the users service (favorites, search history).
	UsersURL    string
	Timeout     time.Duration
	FavoriteTTL time.Duration
	Tokens      TokenSource
	Logger      *slog.Logger
}

// Client is safe for concurrent use.
type Client struct {
	apiURL   string
	usersURL string
	ttl      time.Duration
	tokens   TokenSource

	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time

	mu        sync.Mutex
	favorites map[string]*favoritesEntry
	refreshes sync.WaitGroup
}

// NewClient creates a client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FavoriteTTL <= 0 {
		cfg.FavoriteTTL = DefaultFavoriteTTL
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		usersURL:   strings.TrimRight(cfg.UsersURL, "/"),
		ttl:        cfg.FavoriteTTL,
		tokens:     cfg.Tokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("component", "museum"),
		now:        time.Now,
		favorites:  map[string]*favoritesEntry{},
	}
}

// Wait blocks until background favorites refreshes have finished.
func (c *Client) Wait() {
	c.refreshes.Wait()
}

// do sends a JSON request and decodes a JSON answer into out (if non-nil).
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return statusError(resp, data)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response, body []byte) error {
	var payload struct {
		Message    any             `json:"message"`
		RetryAfter json.RawMessage `json:"retryAfter"`
	}
	_ = json.Unmarshal(body, &payload)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		after := retryAfter(resp.Header.Get("Retry-After"))
		if after == 0 {
			after = retryAfter(strings.Trim(string(payload.RetryAfter), `"`))
		}
		if after == 0 {
			after = DefaultCooldown
		}
		return &RateLimitError{RetryAfter: after}
	}
	msg := ""
	switch m := payload.Message.(type) {
	case string:
		msg = m
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			parts = append(parts, fmt.Sprint(p))
		}
		msg = strings.Join(parts, "; ")
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}

// retryAfter parses a Retry-After value in whole seconds, reading leading digits the
// way parseInt does. It returns 0 when there are none.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
