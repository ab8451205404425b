package artwork

import (
	"encoding/json"
	"testing"
)

func rawList(t *testing.T, s string) []json.RawMessage {
	t.Helper()
	var out []json.RawMessage
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return out
}

func TestNormalizeFavoritesLegacyStrings(t *testing.T) {
	got, err := NormalizeFavorites(rawList(t, `["met_438003","orphan"]`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 artworks, got %d", len(got))
	}
	if got[0].Museum != "met" || got[0].ID != "met_438003" || got[0].Title != "met_438003" {
		t.Errorf("unexpected legacy mapping: %+v", got[0])
	}
	if got[1].Museum != MuseumUnknown {
		t.Errorf("expected unknown museum for id without prefix, got %q", got[1].Museum)
	}
}

func TestNormalizeFavoritesRecords(t *testing.T) {
	got, err := NormalizeFavorites(rawList(t, `[{"artworkId":"12","artist":"Monet","imageUrl":"http://img/1.jpg","year":"1890"}]`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	a := got[0]
	if a.ID != "12" || a.Title != "12" {
		t.Errorf("expected title to fall back to id, got %+v", a)
	}
	if a.Museum != MuseumUnknown {
		t.Errorf("expected unknown museum, got %q", a.Museum)
	}
	if a.ImageURL != "http://img/1.jpg" || a.PrimaryImageSmall != "http://img/1.jpg" {
		t.Errorf("expected image url on both fields, got %+v", a)
	}
	if a.Dated != "1890" {
		t.Errorf("expected year mapped to dated, got %q", a.Dated)
	}
}

func TestNormalizeFavoritesArtworks(t *testing.T) {
	got, err := NormalizeFavorites(rawList(t, `[{"id":"7","title":"Water Lilies","museum":"harvard"}]`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got[0].Title != "Water Lilies" || got[0].Museum != "harvard" {
		t.Errorf("unexpected artwork: %+v", got[0])
	}
}

func TestNormalizeFavoritesEmpty(t *testing.T) {
	got, err := NormalizeFavorites(nil)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v, %v", got, err)
	}
}

func TestNormalizeHistory(t *testing.T) {
	raw := rawList(t, `["monet", {"query":"picasso"}, {"term":"rembrandt"}, {"text":"klimt"}, {"value":42}, {"data":{"query":"goya"}}, {"other":"x"}, "", null]`)
	got := NormalizeHistory(raw)
	want := []string{"monet", "picasso", "rembrandt", "klimt", "42", "goya"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNewFavoritePayloadFallbacks(t *testing.T) {
	p := NewFavoritePayload(Artwork{ID: "1", Title: "T", Museum: "met", PrimaryImageSmall: "p.jpg", Medium: "Oil", Period: "Baroque"})
	if p.ImageURL != "p.jpg" || p.Description != "Oil" || p.Year != "Baroque" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestSourceImagePrefersPrimary(t *testing.T) {
	a := Artwork{ImageURL: "a.jpg", PrimaryImageSmall: "b.jpg"}
	if a.SourceImage() != "a.jpg" {
		t.Errorf("expected imageUrl first, got %q", a.SourceImage())
	}
	a.ImageURL = "   "
	if a.SourceImage() != "b.jpg" {
		t.Errorf("expected fallback to primaryImageSmall, got %q", a.SourceImage())
	}
}

func TestSame(t *testing.T) {
	tests := []struct {
		name string
		a, b Artwork
		want bool
	}{
		{"same id and museum", Artwork{ID: "1", Museum: MuseumMET, Title: "A"}, Artwork{ID: "1", Museum: MuseumMET}, true},
		{"different museum", Artwork{ID: "1", Museum: MuseumMET}, Artwork{ID: "1", Museum: MuseumHarvard}, false},
		{"museum unknown on one side", Artwork{ID: "1"}, Artwork{ID: "1", Museum: MuseumHarvard}, true},
		{"different id", Artwork{ID: "1"}, Artwork{ID: "2"}, false},
		{"both without id same title", Artwork{Title: "X"}, Artwork{Title: "X"}, true},
		{"one without id", Artwork{Title: "X"}, Artwork{ID: "1", Title: "X"}, false},
	}
	for _, tt := range tests {
		if got := Same(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Same = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUnmarshalNumericID(t *testing.T) {
	var a Artwork
	if err := json.Unmarshal([]byte(`{"id":436535,"title":"Wheat Field with Cypresses","museum":"met"}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.ID != "436535" || a.Title != "Wheat Field with Cypresses" || a.Museum != MuseumMET {
		t.Fatalf("unexpected artwork %+v", a)
	}
	if !Same(Artwork{ID: "met_436535", Museum: MuseumMET}, a) {
		t.Fatal("legacy key should match the record it names")
	}
}
