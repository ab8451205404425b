package museum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jinzhu/copier"

	"museum-gallery/internal/artwork"
)

type favoritesEntry struct {
	list       []artwork.Artwork
	cached     bool
	fetched    time.Time
	cooldown   time.Time
	refreshing bool
}

// listPayload accepts the three shapes the users service answers with:
// {"data":{"<key>":[...]}}, {"<key>":[...]} and a bare array.
type listPayload struct {
	items []json.RawMessage
}

func (p *listPayload) decode(data []byte, key string) error {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		p.items = arr
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if inner, ok := obj["data"]; ok {
		var nested map[string]json.RawMessage
		if json.Unmarshal(inner, &nested) == nil {
			if json.Unmarshal(nested[key], &arr) == nil && arr != nil {
				p.items = arr
				return nil
			}
		}
	}
	if json.Unmarshal(obj[key], &arr) == nil {
		p.items = arr
	}
	return nil
}

func (c *Client) favoritesURL(userID string) string {
	return c.usersURL + "/users/" + url.PathEscape(userID) + "/favorites"
}

// Favorites returns the user's favorites.
//
// Answers are cached per user for the TTL: a fresh cache is returned at once while a
// background refresh runs. After a 429 the client stays quiet for the Retry-After
// period and serves the cache (or an empty list) instead of erroring. Other failures
// are returned. The result is a copy the caller may modify.
func (c *Client) Favorites(ctx context.Context, userID string) ([]artwork.Artwork, error) {
	now := c.now()
	c.mu.Lock()
	e := c.entry(userID)
	if now.Before(e.cooldown) {
		out := cloneList(e.list)
		c.mu.Unlock()
		return out, nil
	}
	if e.cached && now.Sub(e.fetched) < c.ttl {
		out := cloneList(e.list)
		if !e.refreshing {
			e.refreshing = true
			c.refreshes.Add(1)
			go c.refresh(userID)
		}
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	list, err := c.fetchFavorites(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		var rl *RateLimitError
		if errors.As(err, &rl) {
			e.cooldown = c.now().Add(rl.RetryAfter)
			c.log.Warn("favorites rate limited", "user", userID, "retry_after", rl.RetryAfter)
			return cloneList(e.list), nil
		}
		return nil, err
	}
	e.list, e.cached, e.fetched = list, true, c.now()
	e.cooldown = time.Time{}
	return cloneList(list), nil
}

func (c *Client) refresh(userID string) {
	defer c.refreshes.Done()
	ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
	defer cancel()
	list, err := c.fetchFavorites(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(userID)
	e.refreshing = false
	if err != nil {
		var rl *RateLimitError
		if errors.As(err, &rl) {
			e.cooldown = c.now().Add(rl.RetryAfter)
		}
		c.log.Debug("background favorites refresh failed", "user", userID, "error", err)
		return
	}
	e.list, e.cached, e.fetched = list, true, c.now()
}

func (c *Client) fetchFavorites(ctx context.Context, userID string) ([]artwork.Artwork, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "GET", c.favoritesURL(userID), nil, &raw); err != nil {
		return nil, fmt.Errorf("museum: favorites: %w", err)
	}
	var p listPayload
	if err := p.decode(raw, "favorites"); err != nil {
		return nil, fmt.Errorf("museum: favorites: %w", err)
	}
	list, err := artwork.NormalizeFavorites(p.items)
	if err != nil {
		return nil, fmt.Errorf("museum: %w", err)
	}
	return list, nil
}

// AddFavorite stores a on the user's favorites and adds it to the cache if absent.
func (c *Client) AddFavorite(ctx context.Context, userID string, a artwork.Artwork) error {
	if err := c.do(ctx, "POST", c.favoritesURL(userID), artwork.NewFavoritePayload(a), nil); err != nil {
		return fmt.Errorf("museum: add favorite %s: %w", a.Key(), err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(userID)
	for _, f := range e.list {
		if artwork.Same(f, a) {
			e.fetched = c.now()
			return nil
		}
	}
	e.list = append(e.list, a)
	e.cached, e.fetched = true, c.now()
	return nil
}

// RemoveFavorite deletes the favorite a and drops it from the cache. Only a.ID and
// a.Museum are consulted; an empty museum matches the id in every museum.
func (c *Client) RemoveFavorite(ctx context.Context, userID string, a artwork.Artwork) error {
	body := map[string]string{"artworkId": a.ID}
	if a.Museum != "" {
		body["museum"] = a.Museum
	}
	if err := c.do(ctx, "DELETE", c.favoritesURL(userID), body, nil); err != nil {
		return fmt.Errorf("museum: remove favorite %s: %w", a.Key(), err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(userID)
	if !e.cached {
		return nil
	}
	kept := e.list[:0:0]
	for _, f := range e.list {
		if !artwork.Same(f, a) {
			kept = append(kept, f)
		}
	}
	e.list, e.fetched = kept, c.now()
	return nil
}

// entry must be called with c.mu held.
func (c *Client) entry(userID string) *favoritesEntry {
	e, ok := c.favorites[userID]
	if !ok {
		e = &favoritesEntry{}
		c.favorites[userID] = e
	}
	return e
}

// cloneList deep-copies a cached list so callers never share backing arrays with the cache.
func cloneList(list []artwork.Artwork) []artwork.Artwork {
	out := []artwork.Artwork{}
	if len(list) == 0 {
		return out
	}
	if err := copier.CopyWithOption(&out, &list, copier.Option{DeepCopy: true}); err != nil {
		out = append(out, list...)
	}
	return out
}
