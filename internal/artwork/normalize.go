package artwork

import (
	"encoding/json"
	"fmt"
	"strings"
)

// favoriteRecord is the shape the users service stores for a favorite.
type favoriteRecord struct {
	ArtworkID   string `json:"artworkId"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	ImageURL    string `json:"imageUrl"`
	Museum      string `json:"museum"`
	Description string `json:"description"`
	Year        string `json:"year"`
}

// FavoritePayload is the request body for adding a favorite.
type FavoritePayload struct {
	ArtworkID   string `json:"artworkId"`
	Title       string `json:"title"`
	Artist      string `json:"artist,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Museum      string `json:"museum"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year,omitempty"`
}

// NewFavoritePayload flattens an artwork into the favorites service record.
func NewFavoritePayload(a Artwork) FavoritePayload {
	return FavoritePayload{
		ArtworkID:   a.ID,
		Title:       a.Title,
		Artist:      a.Artist,
		ImageURL:    firstNonEmpty(a.ImageURL, a.PrimaryImageSmall),
		Museum:      a.Museum,
		Description: firstNonEmpty(a.Description, a.Medium),
		Year:        firstNonEmpty(a.Dated, a.Period),
	}
}

// NormalizeFavorites converts any of the favorites list encodings the users service has
// produced over time into artworks:
//   - legacy strings like "met_438003" (museum taken from the prefix)
//   - favorite records with artworkId
//   - full artwork objects
//
// The first element decides the encoding for the whole list.
func NormalizeFavorites(raw []json.RawMessage) ([]Artwork, error) {
	if len(raw) == 0 {
		return []Artwork{}, nil
	}
	first := strings.TrimSpace(string(raw[0]))
	switch {
	case strings.HasPrefix(first, `"`):
		out := make([]Artwork, 0, len(raw))
		for _, r := range raw {
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return nil, fmt.Errorf("favorites: legacy entry: %w", err)
			}
			museum := MuseumUnknown
			if parts := strings.Split(s, "_"); len(parts) > 1 {
				museum = parts[0]
			}
			out = append(out, Artwork{ID: s, Title: s, Museum: museum})
		}
		return out, nil
	case hasArtworkID(raw[0]):
		out := make([]Artwork, 0, len(raw))
		for _, r := range raw {
			var fav favoriteRecord
			if err := json.Unmarshal(r, &fav); err != nil {
				return nil, fmt.Errorf("favorites: record: %w", err)
			}
			out = append(out, Artwork{
				ID:                fav.ArtworkID,
				Title:             firstNonEmpty(fav.Title, fav.ArtworkID),
				Artist:            fav.Artist,
				ImageURL:          fav.ImageURL,
				PrimaryImageSmall: fav.ImageURL,
				Museum:            firstNonEmpty(fav.Museum, MuseumUnknown),
				Description:       fav.Description,
				Dated:             fav.Year,
			})
		}
		return out, nil
	}
	out := make([]Artwork, 0, len(raw))
	for _, r := range raw {
		var a Artwork
		if err := json.Unmarshal(r, &a); err != nil {
			return nil, fmt.Errorf("favorites: artwork: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func hasArtworkID(r json.RawMessage) bool {
	var probe struct {
		ArtworkID string `json:"artworkId"`
	}
	if err := json.Unmarshal(r, &probe); err != nil {
		return false
	}
	return probe.ArtworkID != ""
}

// NormalizeHistory converts search-history entries into query strings. Entries may be
// plain strings or objects carrying the query under query, term, text, value or data.query.
// Empty results are dropped.
func NormalizeHistory(raw []json.RawMessage) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if q := historyEntry(r); q != "" {
			out = append(out, q)
		}
	}
	return out
}

func historyEntry(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(r, &obj); err != nil || obj == nil {
		return ""
	}
	for _, k := range []string{"query", "term", "text", "value"} {
		if v, ok := obj[k]; ok {
			return scalarString(v)
		}
	}
	if data, ok := obj["data"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if v, ok := nested["query"]; ok {
				return scalarString(v)
			}
		}
	}
	return ""
}

// scalarString renders a JSON scalar the way a string conversion would: strings unquoted,
// numbers and booleans verbatim, null as empty.
func scalarString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	t := strings.TrimSpace(string(v))
	if t == "null" {
		return ""
	}
	return t
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
