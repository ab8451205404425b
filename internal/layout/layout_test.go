package layout

import (
	"testing"

	"github.com/chewxy/math32"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func TestPlaceIsDeterministic(t *testing.T) {
	e := Default()
	for i := 0; i < 60; i++ {
		a := e.Place(i, 6)
		b := e.Place(i, 6)
		if a != b {
			t.Fatalf("index %d: expected identical slots, got %+v and %+v", i, a, b)
		}
	}
}

func TestPlaceYawPerWall(t *testing.T) {
	e := Default()
	want := map[Wall]float32{
		Front: 0,
		Right: -math32.Pi / 2,
		Left:  math32.Pi / 2,
		Back:  math32.Pi,
	}
	for i := 0; i < 100; i++ {
		s := e.Place(i, 6)
		wall := Wall((i / 6) % 4)
		if s.Wall != wall {
			t.Fatalf("index %d: expected wall %v, got %v", i, wall, s.Wall)
		}
		if !near(s.Yaw(), want[wall]) {
			t.Errorf("index %d: expected yaw %v, got %v", i, want[wall], s.Yaw())
		}
		if s.Rotation[0] != 0 || s.Rotation[2] != 0 {
			t.Errorf("index %d: expected pure yaw rotation, got %v", i, s.Rotation)
		}
		if !near(s.Position[1], DefaultFrameHeight) {
			t.Errorf("index %d: expected frame height %v, got %v", i, DefaultFrameHeight, s.Position[1])
		}
	}
}

func TestPlaceSevenArtworks(t *testing.T) {
	e := Default()
	slots := e.PlaceAll(7)
	wantX := []float32{-5.5, -3.3, -1.1, 1.1, 3.3, 5.5}
	for i, x := range wantX {
		s := slots[i]
		if s.Wall != Front {
			t.Fatalf("index %d: expected front wall, got %v", i, s.Wall)
		}
		if !near(s.Position[0], x) || !near(s.Position[2], -DefaultWallSpacing) {
			t.Errorf("index %d: expected (%v, _, -6), got %v", i, x, s.Position)
		}
	}
	six := slots[6]
	if six.Wall != Right {
		t.Fatalf("expected index 6 on right wall, got %v", six.Wall)
	}
	if !near(six.Position[0], DefaultWallSpacing) || !near(six.Position[2], -5.5) {
		t.Errorf("expected first right-wall slot at (6, _, -5.5), got %v", six.Position)
	}
}

func TestPlaceSymmetricAroundCenter(t *testing.T) {
	e := Default()
	for slot := 0; slot < 3; slot++ {
		a := e.Place(slot, 6).Position[0]
		b := e.Place(5-slot, 6).Position[0]
		if !near(a, -b) {
			t.Errorf("slots %d and %d not mirrored: %v vs %v", slot, 5-slot, a, b)
		}
	}
}

func TestPlaceWrapsAfterFourWalls(t *testing.T) {
	e := Default()
	if e.Place(24, 6) != (Slot{Index: 24, Wall: Front, Position: e.Place(0, 6).Position}) {
		t.Errorf("expected index 24 to reuse the first front-wall position, got %+v", e.Place(24, 6))
	}
}

func TestPlaceNonPositiveTotalUsesPerWall(t *testing.T) {
	e := Default()
	if e.Place(3, 0).Position != e.Place(3, 6).Position {
		t.Errorf("expected total 0 to default to artworks per wall")
	}
}

func TestExtent(t *testing.T) {
	e := Default()
	got := e.Extent(1.4)
	if !near(got, 6.2) {
		t.Errorf("expected extent 6.2, got %v", got)
	}
}
