package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultPath is the preferences file, relative to the process working directory.
const DefaultPath = "config/gallery.json"

// Prefs holds viewer preferences (debug overlays, grid, museums searched, language).
// Persisted across runs. Gallery contents are never persisted.
type Prefs struct {
	ShowFPS      bool     `json:"show_fps"`
	ShowMemAlloc bool     `json:"show_memalloc"`
	ShowPose     bool     `json:"show_pose"`
	GridVisible  bool     `json:"grid_visible"`
	Immersive    bool     `json:"immersive"`
	Museums      []string `json:"museums"`
	Lang         string   `json:"lang,omitempty"`
}

// Default returns default preferences (overlays off, grid on, both museums, desktop camera).
func Default() Prefs {
	return Prefs{
		GridVisible: true,
		Museums:     []string{"met", "harvard"},
	}
}

// Load reads preferences from path. If the file is missing or invalid, returns Default()
// and does not create a file.
func Load(path string) Prefs {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	p.Museums = NormalizeMuseums(p.Museums)
	if len(p.Museums) == 0 {
		p.Museums = Default().Museums
	}
	return p
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NormalizeMuseums lowercases, trims and de-duplicates museum tags, keeping order.
func NormalizeMuseums(in []string) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}
