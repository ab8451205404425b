package museum

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"museum-gallery/internal/artwork"
)

// Gallery search budget: MET results come first because they almost always carry images,
// Harvard fills the rest.
const (
	GalleryLimit = 12
	GalleryMET   = 8
)

// Sort orders accepted by the search endpoint.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
	SortTitle     = "title"
	SortMuseum    = "museum"
)

var (
	ErrEmptyQuery = errors.New("museum: empty search query")
	ErrNoMuseums  = errors.New("museum: no museum selected")
)

// Params are the search endpoint's query parameters. Zero values are omitted.
type Params struct {
	Query   string
	Museums []string
	Limit   int
	SortBy  string
	Period  string
	Artist  string
}

// Values encodes p as a query string.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("query", p.Query)
	if len(p.Museums) > 0 {
		v.Set("museums", strings.Join(p.Museums, ","))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.Period != "" {
		v.Set("period", p.Period)
	}
	if p.Artist != "" {
		v.Set("artist", p.Artist)
	}
	return v
}

// SearchResult is the search endpoint's payload.
type SearchResult struct {
	Artworks  []artwork.Artwork `json:"artworks"`
	Total     int               `json:"total"`
	Museums   []string          `json:"museums"`
	Timestamp time.Time         `json:"-"`
}

type searchEnvelope struct {
	Success   bool         `json:"success"`
	Data      SearchResult `json:"data"`
	Timestamp string       `json:"timestamp"`
	Message   string       `json:"message"`
}

// Search runs one query against the composition service.
func (c *Client) Search(ctx context.Context, p Params) (SearchResult, error) {
	var env searchEnvelope
	u := c.apiURL + "/api/v1/composition/search?" + p.Values().Encode()
	if err := c.do(ctx, "GET", u, nil, &env); err != nil {
		return SearchResult{}, fmt.Errorf("museum: search %q: %w", p.Query, err)
	}
	if !env.Success {
		return SearchResult{}, fmt.Errorf("museum: search %q: %s", p.Query, firstNonEmpty(env.Message, "unsuccessful response"))
	}
	res := env.Data
	if ts, err := time.Parse(time.RFC3339, env.Timestamp); err == nil {
		res.Timestamp = ts
	}
	return res, nil
}

// SearchGallery fills one gallery: up to GalleryMET MET results first, then Harvard for
// whatever is left of GalleryLimit. Museums not in the list are skipped.
func (c *Client) SearchGallery(ctx context.Context, query string, museums []string) ([]artwork.Artwork, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len(museums) == 0 {
		return nil, ErrNoMuseums
	}
	base := Params{Query: query, Limit: GalleryLimit, SortBy: SortRelevance}

	var out []artwork.Artwork
	if slices.Contains(museums, artwork.MuseumMET) {
		p := base
		p.Museums, p.Limit = []string{artwork.MuseumMET}, GalleryMET
		res, err := c.Search(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Artworks...)
	}
	if slices.Contains(museums, artwork.MuseumHarvard) {
		if remaining := base.Limit - len(out); remaining > 0 {
			p := base
			p.Museums, p.Limit = []string{artwork.MuseumHarvard}, remaining
			res, err := c.Search(ctx, p)
			if err != nil {
				return nil, err
			}
			out = append(out, res.Artworks...)
		}
	}
	c.log.Info("gallery search", "query", query, "museums", museums, "artworks", len(out))
	return out, nil
}

// Artwork fetches one record's detail.
func (c *Client) Artwork(ctx context.Context, id, museum string) (artwork.Artwork, error) {
	var env struct {
		Success bool            `json:"success"`
		Data    artwork.Artwork `json:"data"`
	}
	u := c.apiURL + "/api/v1/composition/artworks/" + url.PathEscape(id) + "?museum=" + url.QueryEscape(museum)
	if err := c.do(ctx, "GET", u, nil, &env); err != nil {
		return artwork.Artwork{}, fmt.Errorf("museum: artwork %s/%s: %w", museum, id, err)
	}
	return env.Data, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
