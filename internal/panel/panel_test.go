package panel

import (
	"errors"
	"testing"

	"museum-gallery/internal/artwork"
	"museum-gallery/internal/gallery"
	"museum-gallery/internal/i18n"
)

func TestHiddenWithoutSelection(t *testing.T) {
	if v := Build(gallery.Selection{}, true, i18n.NewPrinter("en")); v.Visible {
		t.Fatalf("expected hidden panel, got %+v", v)
	}
}

func TestOptionalFieldsOmitted(t *testing.T) {
	sel := gallery.Selection{
		Phase:   gallery.PhaseKnown,
		Artwork: artwork.Artwork{ID: "1", Title: "Untitled", Museum: artwork.MuseumHarvard},
	}
	v := Build(sel, true, i18n.NewPrinter("en"))
	if len(v.Lines) != 1 || v.Lines[0] != "Museum: Harvard Art Museums" {
		t.Fatalf("expected only the museum line, got %q", v.Lines)
	}

	sel.Artwork.Artist = "Monet"
	sel.Artwork.Dated = "1906"
	sel.Artwork.Medium = "Oil on canvas"
	v = Build(sel, true, i18n.NewPrinter("en"))
	want := []string{"Artist: Monet", "Museum: Harvard Art Museums", "Date: 1906", "Medium: Oil on canvas"}
	if len(v.Lines) != len(want) {
		t.Fatalf("lines = %q", v.Lines)
	}
	for i := range want {
		if v.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, v.Lines[i], want[i])
		}
	}
}

func TestFavoriteButtonStates(t *testing.T) {
	a := artwork.Artwork{ID: "1", Title: "T", Museum: artwork.MuseumMET}
	p := i18n.NewPrinter("en")
	tests := []struct {
		name     string
		sel      gallery.Selection
		signedIn bool
		label    string
		enabled  bool
	}{
		{"checking", gallery.Selection{Phase: gallery.PhaseChecking, Artwork: a}, true, "Checking...", false},
		{"pending", gallery.Selection{Phase: gallery.PhasePending, Artwork: a}, true, "Saving...", false},
		{"favorite", gallery.Selection{Phase: gallery.PhaseKnown, Artwork: a, Favorite: true}, true, "In favorites", false},
		{"not favorite", gallery.Selection{Phase: gallery.PhaseKnown, Artwork: a}, true, "Add to favorites", true},
		{"signed out", gallery.Selection{Phase: gallery.PhaseKnown, Artwork: a}, false, "Log in to save favorites", true},
	}
	for _, tt := range tests {
		v := Build(tt.sel, tt.signedIn, p)
		if v.Favorite.Label != tt.label || v.Favorite.Enabled != tt.enabled {
			t.Errorf("%s: button = %+v, want %q enabled=%v", tt.name, v.Favorite, tt.label, tt.enabled)
		}
	}
}

func TestErrorShownInline(t *testing.T) {
	sel := gallery.Selection{
		Phase:   gallery.PhaseKnown,
		Artwork: artwork.Artwork{Title: "T"},
		Err:     errors.New("server down"),
	}
	v := Build(sel, true, i18n.NewPrinter("es"))
	if v.Error != "No se pudo guardar el favorito: server down" {
		t.Fatalf("error = %q", v.Error)
	}
	if v.Close != "Cerrar" {
		t.Fatalf("close label = %q", v.Close)
	}
}
