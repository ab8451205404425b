package museum

import (
	"context"
	"encoding/json"
	"net/url"

	"museum-gallery/internal/artwork"
)

func (c *Client) historyURL(userID string) string {
	return c.usersURL + "/users/" + url.PathEscape(userID) + "/search-history"
}

// SearchHistory returns the user's past queries, newest as the service orders them.
// Any failure, rate limiting included, yields an empty history.
func (c *Client) SearchHistory(ctx context.Context, userID string) []string {
	var raw json.RawMessage
	if err := c.do(ctx, "GET", c.historyURL(userID), nil, &raw); err != nil {
		c.log.Debug("search history unavailable", "user", userID, "error", err)
		return []string{}
	}
	var p listPayload
	if err := p.decode(raw, "history"); err != nil {
		return []string{}
	}
	out := artwork.NormalizeHistory(p.items)
	if out == nil {
		out = []string{}
	}
	return out
}

// AddSearchHistory records a query. Failures are logged and otherwise ignored.
func (c *Client) AddSearchHistory(ctx context.Context, userID, query string) {
	body := map[string]string{"query": query}
	if err := c.do(ctx, "POST", c.historyURL(userID), body, nil); err != nil {
		c.log.Debug("search history write failed", "user", userID, "error", err)
	}
}
