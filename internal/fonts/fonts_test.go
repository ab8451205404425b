package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("font"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "Lora/Lora.otf", "README.md")
	got, err := ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	sort.Strings(got)
	want := []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.TTF", "Lora/Lora.otf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanDir = %v, want %v", got, want)
	}

	missing, err := ScanDir(filepath.Join(root, "nope"))
	if err != nil || len(missing) != 0 {
		t.Errorf("missing dir = %v, %v", missing, err)
	}
}

func TestFindPrefersRegular(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Inter/Inter-Bold.ttf", "Inter/Inter-Regular.ttf", "Playfair_Display/PlayfairDisplay.ttf")

	got, err := Find("inter", root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if filepath.Base(got) != "Inter-Regular.ttf" {
		t.Errorf("Find(inter) = %q", got)
	}

	got, err = Find("Playfair Display", root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if filepath.Base(got) != "PlayfairDisplay.ttf" {
		t.Errorf("Find(Playfair Display) = %q", got)
	}

	direct := filepath.Join(root, "Inter", "Inter-Bold.ttf")
	if got, err := Find(direct, root); err != nil || got != direct {
		t.Errorf("Find(existing path) = %q, %v", got, err)
	}

	if _, err := Find("Garamond", root); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Find(Garamond) err = %v", err)
	}
	if _, err := Find("  ", root); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Find(blank) err = %v", err)
	}
}
