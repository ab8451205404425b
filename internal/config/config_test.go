package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.AuthURL != "http://localhost:3001" || c.APIURL != "http://localhost:3002" {
		t.Fatalf("unexpected service URLs %q %q", c.AuthURL, c.APIURL)
	}
	if c.HTTPTimeout != 30*time.Second || c.Lang != "en" || c.CORSProxy != "https://corsproxy.io/?" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GALLERY_API_URL", "https://api.example.org/")
	t.Setenv("GALLERY_HTTP_TIMEOUT", "5s")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.APIURL != "https://api.example.org" || c.HTTPTimeout != 5*time.Second {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GALLERY_HTTP_TIMEOUT", "soon")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.env")
	if err := os.WriteFile(path, []byte("# comment\nGALLERY_TEST_DOTENV=\"from file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GALLERY_TEST_DOTENV", "")
	os.Unsetenv("GALLERY_TEST_DOTENV")
	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("GALLERY_TEST_DOTENV"); got != "from file" {
		t.Fatalf("GALLERY_TEST_DOTENV = %q", got)
	}
}
