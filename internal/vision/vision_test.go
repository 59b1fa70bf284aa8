package vision

import (
	"testing"

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
)

// openRoom builds a w x h map of bare floor.
func openRoom(w, h int) *gamemap.Map {
	m := gamemap.New(w, h)
	for _, p := range m.Bounds().Points() {
		m.SetCell(p, gamemap.Floor())
	}
	return m
}

func TestOriginAlwaysVisible(t *testing.T) {
	m := gamemap.New(9, 9) // solid walls everywhere
	e := NewEngine(m, entity.NewStore())

	set := e.ComputeVisible(geom.P(4, 4), 3)
	if !set.Contains(geom.P(4, 4)) {
		t.Error("origin must always be visible, even inside solid rock")
	}
}

func TestOpenRoomFullyVisible(t *testing.T) {
	// 5x5 open room, actor at (2,2), radius 3: all 25 cells visible.
	m := openRoom(5, 5)
	e := NewEngine(m, entity.NewStore())

	set := e.ComputeVisible(geom.P(2, 2), 3)
	if set.Len() != 25 {
		t.Fatalf("visible cells = %d, want 25: %v", set.Len(), set.Points())
	}
	for _, p := range m.Bounds().Points() {
		if !set.Contains(p) {
			t.Errorf("cell %v should be visible", p)
		}
	}
}

func TestRadiusIsClosedInterval(t *testing.T) {
	m := openRoom(11, 11)
	e := NewEngine(m, entity.NewStore())
	origin := geom.P(5, 5)

	set := e.ComputeVisible(origin, 3)

	if !set.Contains(geom.P(8, 5)) {
		t.Error("cell at exactly radius distance should be included")
	}
	if set.Contains(geom.P(9, 5)) {
		t.Error("cell beyond radius should be excluded")
	}
	// Euclidean corner checks: (2,2) away is dist^2=8 <= 9, (3,3) away is 18 > 9.
	if !set.Contains(geom.P(7, 7)) {
		t.Error("diagonal cell within Euclidean radius should be included")
	}
	if set.Contains(geom.P(8, 8)) {
		t.Error("diagonal cell beyond Euclidean radius should be excluded")
	}
}

func TestWallBlocksSight(t *testing.T) {
	m := openRoom(9, 5)
	// Wall column at x=4 with no gap.
	for y := 0; y < 5; y++ {
		m.SetCell(geom.P(4, y), gamemap.Wall())
	}
	e := NewEngine(m, entity.NewStore())

	set := e.ComputeVisible(geom.P(2, 2), 6)

	if !set.Contains(geom.P(4, 2)) {
		t.Error("the wall itself should be visible")
	}
	if set.Contains(geom.P(6, 2)) {
		t.Error("cell behind the wall should be hidden")
	}
	if set.Contains(geom.P(8, 2)) {
		t.Error("far cell behind the wall should be hidden")
	}
}

func TestOpaqueEntityBlocksSight(t *testing.T) {
	m := openRoom(9, 3)
	store := entity.NewStore()

	boulder := store.Create()
	store.MarkOpaque(boulder)
	if err := store.Place(boulder, geom.P(4, 1)); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(m, store)
	set := e.ComputeVisible(geom.P(2, 1), 6)

	if !set.Contains(geom.P(4, 1)) {
		t.Error("the blocking entity's cell should be visible")
	}
	if set.Contains(geom.P(6, 1)) {
		t.Error("cell behind an opaque entity should be hidden")
	}
}

func TestDoorOpeningRevealsBeyond(t *testing.T) {
	m := openRoom(9, 3)
	door := geom.P(4, 1)
	// Wall row with a closed door in the middle.
	for y := 0; y < 3; y++ {
		m.SetCell(geom.P(4, y), gamemap.Wall())
	}
	m.SetCell(door, gamemap.ClosedDoor())

	store := entity.NewStore()
	e := NewEngine(m, store)

	observer := store.Create()
	store.Place(observer, geom.P(3, 1))

	before := e.VisibleFor(observer, 6)
	if before.Contains(geom.P(6, 1)) {
		t.Fatal("cell beyond a closed door should be hidden")
	}

	// Open the door, invalidate, and look again.
	m.SetCell(door, gamemap.OpenDoor())
	e.InvalidateAll()

	after := e.VisibleFor(observer, 6)
	if !after.Contains(geom.P(6, 1)) {
		t.Error("cell beyond the opened door should now be visible")
	}
}

func TestCacheInvalidation(t *testing.T) {
	m := openRoom(7, 7)
	store := entity.NewStore()
	e := NewEngine(m, store)

	actor := store.Create()
	store.Place(actor, geom.P(1, 1))

	first := e.VisibleFor(actor, 3)
	if !first.Contains(geom.P(1, 1)) {
		t.Fatal("actor cell should be visible")
	}

	// Move without invalidating: the stale cached set is returned as-is.
	store.Place(actor, geom.P(5, 5))
	if got := e.VisibleFor(actor, 3); !got.Contains(geom.P(1, 1)) {
		t.Error("cache should persist until invalidated")
	}

	e.Invalidate(actor)
	fresh := e.VisibleFor(actor, 3)
	if !fresh.Contains(geom.P(5, 5)) {
		t.Error("recomputed set should be centered on the new position")
	}
	if fresh.Contains(geom.P(1, 1)) {
		t.Error("recomputed set should not contain cells out of range of the new position")
	}
}

func TestSetPointsDeterministicOrder(t *testing.T) {
	s := NewSet()
	s.Add(geom.P(2, 1))
	s.Add(geom.P(0, 0))
	s.Add(geom.P(1, 1))
	s.Add(geom.P(3, 0))

	pts := s.Points()
	want := []geom.Point{geom.P(0, 0), geom.P(3, 0), geom.P(1, 1), geom.P(2, 1)}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("Points() = %v, want %v", pts, want)
		}
	}
}
