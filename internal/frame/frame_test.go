package frame

import (
	"strings"
	"testing"

	"museum-gallery/internal/artwork"
	"museum-gallery/internal/imageresolve"
	"museum-gallery/internal/layout"
)

func newTestFrame(a artwork.Artwork, onSelect func(artwork.Artwork)) *Frame {
	return New(a, layout.Default().Place(0, 6), imageresolve.Texture{}, onSelect)
}

func TestHoverScaleApproachesTarget(t *testing.T) {
	f := newTestFrame(artwork.Artwork{Title: "T"}, nil)
	f.SetHovered(true)
	f.Tick()
	if got, want := f.Scale(), float32(1.005); got-want > 1e-6 || want-got > 1e-6 {
		t.Fatalf("expected one tick to move 10%% of the way (%v), got %v", want, got)
	}
	prev := f.Scale()
	for i := 0; i < 200; i++ {
		f.Tick()
		if f.Scale() < prev {
			t.Fatalf("scale decreased while hovered at tick %d", i)
		}
		if f.Scale() > HoveredScale {
			t.Fatalf("scale overshot target: %v", f.Scale())
		}
		prev = f.Scale()
	}
	if HoveredScale-f.Scale() > 1e-4 {
		t.Errorf("expected scale to settle near %v, got %v", HoveredScale, f.Scale())
	}

	f.SetHovered(false)
	f.Tick()
	if f.Scale() >= prev {
		t.Errorf("expected scale to shrink after leave, got %v", f.Scale())
	}
	if f.Hovered() {
		t.Errorf("expected idle after leave")
	}
}

func TestClickDispatchesWithoutLocalChange(t *testing.T) {
	var got []artwork.Artwork
	a := artwork.Artwork{ID: "1", Title: "Irises"}
	f := newTestFrame(a, func(x artwork.Artwork) { got = append(got, x) })
	f.SetHovered(true)
	f.Click()
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected one select of artwork 1, got %v", got)
	}
	if !f.Hovered() {
		t.Errorf("click must not change hover state")
	}
	newTestFrame(a, nil).Click()
}

func TestTitleTruncation(t *testing.T) {
	short := strings.Repeat("a", 40)
	if TruncateTitle(short) != short {
		t.Errorf("40 characters must not be truncated")
	}
	long := strings.Repeat("b", 41)
	if got := TruncateTitle(long); got != strings.Repeat("b", 40)+"..." {
		t.Errorf("unexpected truncation %q", got)
	}
}

func TestArtistLineOnlyWhenPresent(t *testing.T) {
	f := newTestFrame(artwork.Artwork{Title: "T"}, nil)
	if _, ok := f.ArtistLine(); ok {
		t.Errorf("expected no artist line")
	}
	f = newTestFrame(artwork.Artwork{Title: "T", Artist: "Hokusai"}, nil)
	if s, ok := f.ArtistLine(); !ok || s != "Hokusai" {
		t.Errorf("expected artist line Hokusai, got %q %v", s, ok)
	}
}
