// Package config reads the gallery's environment: service URLs, image proxy and
// placeholder bases, file locations and language.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration. Every field has a default, so an empty
// environment yields a working local setup.
type Config struct {
	// AuthURL serves /auth and /users (sessions, favorites, search history).
	AuthURL string `env:"GALLERY_AUTH_URL" envDefault:"http://localhost:3001"`
	// APIURL serves /api (the composition search service).
	APIURL         string `env:"GALLERY_API_URL" envDefault:"http://localhost:3002"`
	CORSProxy      string `env:"GALLERY_CORS_PROXY" envDefault:"https://corsproxy.io/?"`
	PlaceholderURL string `env:"GALLERY_PLACEHOLDER_URL" envDefault:"https://placehold.co/800x1000/"`
	SessionFile    string `env:"GALLERY_SESSION_FILE" envDefault:"config/session.json"`
	PrefsFile      string `env:"GALLERY_PREFS_FILE" envDefault:"config/gallery.json"`
	RoomFile       string `env:"GALLERY_ROOM_FILE" envDefault:"assets/room.yaml"`
	LogFile        string `env:"GALLERY_LOG_FILE" envDefault:"logs/gallery.txt"`
	LogLevel       string `env:"GALLERY_LOG_LEVEL" envDefault:"info"`
	Lang           string `env:"GALLERY_LANG" envDefault:"en"`
	// Font names a file under assets/fonts (fuzzy match) or a path; empty uses raylib's font.
	Font        string        `env:"GALLERY_FONT" envDefault:"Inter"`
	StyleSheet  string        `env:"GALLERY_UI_CSS" envDefault:"assets/ui.css"`
	HTTPTimeout time.Duration `env:"GALLERY_HTTP_TIMEOUT" envDefault:"30s"`
	// ImageTimeout bounds a single artwork image download.
	ImageTimeout time.Duration `env:"GALLERY_IMAGE_TIMEOUT" envDefault:"60s"`
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none) into the
// process environment. Missing files are not an error; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseEnv fills target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads .env (if present) and parses Config.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}
	c.AuthURL = strings.TrimRight(c.AuthURL, "/")
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("parse env: GALLERY_HTTP_TIMEOUT must be positive")
	}
	return c, nil
}
