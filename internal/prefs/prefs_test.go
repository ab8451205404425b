package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !p.GridVisible || len(p.Museums) != 2 || p.Immersive {
		t.Fatalf("unexpected defaults %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "gallery.json")
	in := Default()
	in.ShowFPS = true
	in.GridVisible = false
	in.Museums = []string{" MET "}
	in.Lang = "es"
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := Load(path)
	if !out.ShowFPS || out.GridVisible || out.Lang != "es" || len(out.Museums) != 1 || out.Museums[0] != "met" {
		t.Fatalf("round trip lost data: %+v", out)
	}
}

func TestLoadInvalidAndPartial(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{"), 0644)
	if p := Load(bad); !p.GridVisible {
		t.Fatalf("invalid file should yield defaults, got %+v", p)
	}
	partial := filepath.Join(dir, "partial.json")
	_ = os.WriteFile(partial, []byte(`{"show_fps":true,"museums":[]}`), 0644)
	p := Load(partial)
	if !p.ShowFPS || !p.GridVisible || len(p.Museums) != 2 {
		t.Fatalf("partial file should keep defaults for missing fields, got %+v", p)
	}
}

func TestNormalizeMuseums(t *testing.T) {
	got := NormalizeMuseums([]string{"Harvard", "met", "", "harvard "})
	if len(got) != 2 || got[0] != "harvard" || got[1] != "met" {
		t.Fatalf("got %q", got)
	}
}
