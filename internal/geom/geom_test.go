package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"inside", P(3, 4), true},
		{"top-left corner", P(2, 3), true},
		{"bottom-right corner (inclusive)", P(5, 7), true},
		{"one past right", P(6, 4), false},
		{"one past bottom", P(3, 8), false},
		{"outside left", P(1, 4), false},
		{"outside top", P(3, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 5, 5), NewRect(3, 3, 5, 5), true},
		{"touching edges (inclusive cells)", NewRect(0, 0, 5, 5), NewRect(4, 0, 5, 5), true},
		{"separated horizontally", NewRect(0, 0, 5, 5), NewRect(6, 0, 5, 5), false},
		{"separated vertically", NewRect(0, 0, 5, 5), NewRect(0, 6, 5, 5), false},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 3, 3), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectPoints(t *testing.T) {
	r := NewRect(1, 1, 3, 2)
	pts := r.Points()

	if len(pts) != 6 {
		t.Fatalf("expected 6 points, got %d", len(pts))
	}
	// Row-major order
	if pts[0] != P(1, 1) || pts[2] != P(3, 1) || pts[5] != P(3, 2) {
		t.Errorf("unexpected point order: %v", pts)
	}
}

func TestChebyshev(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected int
	}{
		{"same point", P(2, 2), P(2, 2), 0},
		{"horizontal", P(0, 0), P(4, 0), 4},
		{"diagonal counts once", P(0, 0), P(3, 3), 3},
		{"mixed", P(1, 1), P(4, 2), 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Chebyshev(tc.b); got != tc.expected {
				t.Errorf("Chebyshev(%v, %v) = %d, expected %d", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestToward(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		expected Direction
	}{
		{"east", P(0, 0), P(5, 0), East},
		{"northwest", P(3, 3), P(0, 0), NorthWest},
		{"same point is zero", P(2, 2), P(2, 2), Direction{}},
		{"clamped to unit", P(0, 0), P(10, -2), NorthEast},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Toward(tc.from, tc.to); got != tc.expected {
				t.Errorf("Toward(%v, %v) = %v, expected %v", tc.from, tc.to, got, tc.expected)
			}
		})
	}
}

func TestDirectionsAreUnitSteps(t *testing.T) {
	if len(Directions) != 8 {
		t.Fatalf("expected 8 directions, got %d", len(Directions))
	}
	seen := make(map[Direction]bool)
	for _, d := range Directions {
		if d.IsZero() {
			t.Error("Directions must not contain the zero step")
		}
		if Abs(d.DX) > 1 || Abs(d.DY) > 1 {
			t.Errorf("direction %v is not a unit step", d)
		}
		if seen[d] {
			t.Errorf("duplicate direction %v", d)
		}
		seen[d] = true
	}
}
