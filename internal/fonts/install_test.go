package fonts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestFolders(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Inter", []string{"inter"}},
		{" Open Sans ", []string{"opensans", "open-sans"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Folders(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Folders(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func newFontServer(t *testing.T, hits *int) (*httptest.Server, *Source) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/ofl/opensans", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		json.NewEncoder(w).Encode([]repoFile{
			{Name: "OFL.txt", Type: "file", DownloadURL: srv.URL + "/raw/OFL.txt"},
			{Name: "OpenSans-Italic.ttf", Type: "file", DownloadURL: srv.URL + "/raw/OpenSans-Italic.ttf"},
			{Name: "Evil.ttf", Type: "file", DownloadURL: "http://elsewhere.invalid/Evil.ttf"},
			{Name: "OpenSans-Regular.ttf", Type: "file", DownloadURL: srv.URL + "/raw/OpenSans-Regular.ttf"},
		})
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Write([]byte("glyphs:" + filepath.Base(r.URL.Path)))
	})
	src := NewSource(5 * time.Second)
	src.APIBase = srv.URL + "/ofl"
	src.RawPrefix = srv.URL + "/raw/"
	return srv, src
}

func TestInstallPrefersUpright(t *testing.T) {
	var hits int
	_, src := newFontServer(t, &hits)
	dir := t.TempDir()

	got, err := src.Install(context.Background(), "Open Sans", dir)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	want := filepath.Join(dir, "opensans", "OpenSans-Regular.ttf")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "glyphs:OpenSans-Regular.ttf" {
		t.Errorf("content = %q", data)
	}

	before := hits
	again, err := src.Install(context.Background(), "Open Sans", dir)
	if err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if again != got || hits != before {
		t.Errorf("second Install = %q after %d requests, want reuse of %q", again, hits-before, got)
	}
}

func TestInstallUnknownFamily(t *testing.T) {
	var hits int
	_, src := newFontServer(t, &hits)
	if _, err := src.Install(context.Background(), "Nope", t.TempDir()); err == nil {
		t.Error("expected error for a family the repository does not have")
	}
}
