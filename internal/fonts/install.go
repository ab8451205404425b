package fonts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultAPIBase lists the open-licensed families of the google/fonts repository.
	DefaultAPIBase = "https://api.github.com/repos/google/fonts/contents/ofl"
	// DefaultRawPrefix is the only host font files are downloaded from.
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
	maxFontBytes     = 20 << 20
)

// Source downloads font files from the google/fonts repository.
type Source struct {
	APIBase   string
	RawPrefix string
	HTTP      *http.Client
}

// NewSource returns a Source for the public google/fonts repository.
func NewSource(timeout time.Duration) *Source {
	return &Source{
		APIBase:   DefaultAPIBase,
		RawPrefix: DefaultRawPrefix,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

type repoFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Folders converts a family display name to the folder names google/fonts may use,
// e.g. "Open Sans" -> ["opensans", "open-sans"].
func Folders(family string) []string {
	lower := strings.ToLower(strings.TrimSpace(family))
	if lower == "" {
		return nil
	}
	joined := strings.ReplaceAll(lower, " ", "")
	hyphen := strings.ReplaceAll(lower, " ", "-")
	if hyphen == joined {
		return []string{joined}
	}
	return []string{joined, hyphen}
}

// Install makes family available under dir and returns the font path. A font already
// present in dir is reused without touching the network.
func (s *Source) Install(ctx context.Context, family, dir string) (string, error) {
	if p, err := Find(family, dir); err == nil {
		return p, nil
	}
	folders := Folders(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("fonts: empty family name")
	}
	var lastErr error
	for _, folder := range folders {
		u, err := s.resolve(ctx, folder)
		if err != nil {
			lastErr = err
			continue
		}
		return s.download(ctx, u, filepath.Join(dir, folder))
	}
	return "", lastErr
}

// resolve picks the first upright .ttf/.otf in folder, falling back to an italic one.
func (s *Source) resolve(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(s.APIBase, "/")+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: list %s: %w", folder, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("fonts: family %q not found", folder)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("fonts: list %s: HTTP %d", folder, resp.StatusCode)
	}
	var files []repoFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("fonts: list %s: %w", folder, err)
	}
	var italic string
	for _, f := range files {
		if f.Type != "file" || !isFont(f.Name) || !strings.HasPrefix(f.DownloadURL, s.RawPrefix) {
			continue
		}
		if strings.Contains(strings.ToLower(f.Name), "italic") {
			if italic == "" {
				italic = f.DownloadURL
			}
			continue
		}
		return f.DownloadURL, nil
	}
	if italic != "" {
		return italic, nil
	}
	return "", fmt.Errorf("fonts: no .ttf or .otf file in %q", folder)
}

func (s *Source) download(ctx context.Context, rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	name := path.Base(u.Path)
	if !isFont(name) {
		return "", fmt.Errorf("fonts: %s is not a font file", name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fonts: download %s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fonts: download %s: HTTP %d", name, resp.StatusCode)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name)
	tmp := dst + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(f, io.LimitReader(resp.Body, maxFontBytes))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("fonts: write %s: %w", dst, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return "", err
	}
	return dst, nil
}
