package texture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

// MaxImageBytes caps a single image download.
const MaxImageBytes = 32 << 20

// Fetcher downloads artwork images, optionally keeping a copy on disk keyed by artwork.
type Fetcher struct {
	client    *http.Client
	userAgent string
	// CacheDir, when set, stores each downloaded image as <key><ext> and serves it on later runs.
	CacheDir string
}

// NewFetcher returns a fetcher with the given per-download timeout (60s when <= 0).
func NewFetcher(timeout time.Duration, cacheDir string) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		CacheDir:  cacheDir,
	}
}

// Fetch returns the image bytes for url. key names the disk cache entry; an empty key
// bypasses the cache.
func (f *Fetcher) Fetch(ctx context.Context, key, url string) ([]byte, error) {
	if data, ok := f.cached(key); ok {
		return data, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("texture: image larger than %d bytes", MaxImageBytes)
	}
	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(url)
	}
	f.store(key, ext, data)
	return data, nil
}

func (f *Fetcher) cached(key string) ([]byte, bool) {
	if f.CacheDir == "" || key == "" {
		return nil, false
	}
	matches, _ := filepath.Glob(filepath.Join(f.CacheDir, sanitizeFilename(key)+".*"))
	for _, m := range matches {
		if data, err := os.ReadFile(m); err == nil && len(data) > 0 {
			return data, true
		}
	}
	return nil, false
}

func (f *Fetcher) store(key, ext string, data []byte) {
	if f.CacheDir == "" || key == "" || ext == "" {
		return
	}
	if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(f.CacheDir, sanitizeFilename(key)+ext), data, 0644)
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	}
	return ""
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".gif", ".webp":
		return ext
	case ".jpg", ".jpeg":
		return ".jpg"
	}
	return ""
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "image"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
