package artwork

import (
	"encoding/json"
	"strings"
)

// Museum tags used by the composition API. The set is open: other tags may appear.
const (
	MuseumMET     = "met"
	MuseumHarvard = "harvard"
	MuseumUnknown = "unknown"
)

// Artwork is one catalog record as returned by the search API. Only Title is guaranteed;
// every other field may be empty. The gallery treats it as read-only.
type Artwork struct {
	ID                string `json:"id" yaml:"id"`
	Title             string `json:"title" yaml:"title"`
	Artist            string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Museum            string `json:"museum" yaml:"museum"`
	ImageURL          string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	PrimaryImageSmall string `json:"primaryImageSmall,omitempty" yaml:"primaryImageSmall,omitempty"`
	Description       string `json:"description,omitempty" yaml:"description,omitempty"`
	Culture           string `json:"culture,omitempty" yaml:"culture,omitempty"`
	Period            string `json:"period,omitempty" yaml:"period,omitempty"`
	Dated             string `json:"dated,omitempty" yaml:"dated,omitempty"`
	Medium            string `json:"medium,omitempty" yaml:"medium,omitempty"`
	Dimensions        string `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Department        string `json:"department,omitempty" yaml:"department,omitempty"`
	Classification    string `json:"classification,omitempty" yaml:"classification,omitempty"`
}

// SourceImage returns the first usable image URL (ImageURL, then PrimaryImageSmall)
// or "" when neither is set. Whitespace-only URLs count as missing.
func (a Artwork) SourceImage() string {
	if u := strings.TrimSpace(a.ImageURL); u != "" {
		return a.ImageURL
	}
	if u := strings.TrimSpace(a.PrimaryImageSmall); u != "" {
		return a.PrimaryImageSmall
	}
	return ""
}

// Key identifies an artwork across museums. IDs are only unique within a museum,
// so the museum tag is part of the key.
func (a Artwork) Key() string {
	id := a.ID
	if id == "" {
		id = "no-id"
	}
	return a.Museum + "_" + id
}

// Same reports whether a and b refer to the same catalog record. Records without an ID
// match only a record with the same title and museum. A missing museum tag on either side
// matches any museum. A legacy "museum_id" id matches the record it names.
func Same(a, b Artwork) bool {
	if a.ID == "" || b.ID == "" {
		return a.ID == b.ID && a.Museum == b.Museum && a.Title == b.Title
	}
	// Legacy favorites store "museum_id" as the id.
	if a.ID == b.Key() || b.ID == a.Key() {
		return true
	}
	if a.Museum != "" && b.Museum != "" && a.Museum != b.Museum {
		return false
	}
	return a.ID == b.ID
}

// UnmarshalJSON accepts numeric ids as well as strings; the MET API reports object ids
// as numbers.
func (a *Artwork) UnmarshalJSON(data []byte) error {
	type plain Artwork
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.ID = scalarString(aux.ID)
	return nil
}
