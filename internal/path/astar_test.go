package path

import (
	"testing"

	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
)

func openGrid(w, h int) *gamemap.Map {
	m := gamemap.New(w, h)
	for _, p := range m.Bounds().Points() {
		m.SetCell(p, gamemap.Floor())
	}
	return m
}

func TestStraightLine(t *testing.T) {
	m := openGrid(10, 10)

	got := Find(m, geom.P(1, 1), geom.P(5, 1), nil)
	if len(got) != 4 {
		t.Fatalf("path length = %d, want 4: %v", len(got), got)
	}
	if got[len(got)-1] != geom.P(5, 1) {
		t.Errorf("path should end at goal, got %v", got[len(got)-1])
	}
}

func TestDiagonalCountsAsOneStep(t *testing.T) {
	m := openGrid(10, 10)

	got := Find(m, geom.P(0, 0), geom.P(4, 4), nil)
	if len(got) != 4 {
		t.Fatalf("diagonal path length = %d, want 4: %v", len(got), got)
	}
}

func TestNoPathThroughWall(t *testing.T) {
	m := openGrid(9, 9)
	for y := 0; y < 9; y++ {
		m.SetCell(geom.P(4, y), gamemap.Wall())
	}

	if got := Find(m, geom.P(1, 4), geom.P(7, 4), nil); got != nil {
		t.Errorf("expected no path across an unbroken wall, got %v", got)
	}
}

func TestPathAroundWall(t *testing.T) {
	m := openGrid(9, 9)
	// Wall column with a gap at the top.
	for y := 1; y < 9; y++ {
		m.SetCell(geom.P(4, y), gamemap.Wall())
	}

	got := Find(m, geom.P(1, 4), geom.P(7, 4), nil)
	if got == nil {
		t.Fatal("expected a path through the gap")
	}
	for _, p := range got {
		if !m.PassableAt(p) {
			t.Errorf("path crosses impassable cell %v", p)
		}
	}
	if got[len(got)-1] != geom.P(7, 4) {
		t.Errorf("path should end at goal, got %v", got[len(got)-1])
	}
}

func TestNoCornerSqueezing(t *testing.T) {
	m := openGrid(3, 3)
	// Two walls forming a sealed diagonal corner between (0,0) and (1,1).
	m.SetCell(geom.P(1, 0), gamemap.Wall())
	m.SetCell(geom.P(0, 1), gamemap.Wall())

	got := Find(m, geom.P(0, 0), geom.P(1, 1), nil)
	if got != nil {
		t.Errorf("diagonal squeeze through two walls should be impossible, got %v", got)
	}
}

func TestBlockedCellsAvoided(t *testing.T) {
	m := openGrid(5, 3)
	occupied := geom.P(2, 1)

	got := Find(m, geom.P(0, 1), geom.P(4, 1), func(p geom.Point) bool {
		return p == occupied
	})
	if got == nil {
		t.Fatal("expected a detour around the occupied cell")
	}
	for _, p := range got {
		if p == occupied {
			t.Errorf("path crosses the blocked cell %v", p)
		}
	}
}

func TestGoalExemptFromBlocked(t *testing.T) {
	m := openGrid(5, 1)
	goal := geom.P(4, 0)

	// The goal itself is occupied (e.g. the player); paths may still end there.
	got := Find(m, geom.P(0, 0), goal, func(p geom.Point) bool {
		return p == goal
	})
	if got == nil || got[len(got)-1] != goal {
		t.Errorf("path should reach the occupied goal, got %v", got)
	}
}

func TestDeterministicPath(t *testing.T) {
	m := openGrid(12, 12)
	first := Find(m, geom.P(1, 1), geom.P(10, 7), nil)
	for i := 0; i < 5; i++ {
		again := Find(m, geom.P(1, 1), geom.P(10, 7), nil)
		if len(again) != len(first) {
			t.Fatalf("path length changed between runs: %d vs %d", len(first), len(again))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("path diverged at step %d: %v vs %v", j, first[j], again[j])
			}
		}
	}
}
