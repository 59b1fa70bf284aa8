// Package geom provides fundamental spatial types for the simulation core.
// It contains no external dependencies to keep the engine logic pure and
// testable.
package geom

// Point is an integer grid coordinate. X grows rightward, Y grows downward.
type Point struct {
	X, Y int
}

// P is a shorthand constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point offset by the given direction.
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Offset returns the point translated by (dx, dy).
func (p Point) Offset(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev returns the chessboard distance to another point.
// With uniform diagonal movement cost this equals the number of steps
// needed to walk between the two points on an open grid.
func (p Point) Chebyshev(q Point) int {
	dx := Abs(p.X - q.X)
	dy := Abs(p.Y - q.Y)
	return Max(dx, dy)
}

// DistSq returns the squared Euclidean distance to another point.
// Used for field-of-view radius checks, avoiding floating point.
func (p Point) DistSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Direction is a unit step on the grid. The simulation uses eight-way
// movement with uniform diagonal cost.
type Direction struct {
	DX, DY int
}

var (
	North     = Direction{0, -1}
	South     = Direction{0, 1}
	West      = Direction{-1, 0}
	East      = Direction{1, 0}
	NorthWest = Direction{-1, -1}
	NorthEast = Direction{1, -1}
	SouthWest = Direction{-1, 1}
	SouthEast = Direction{1, 1}
)

// Directions lists all eight movement directions in a fixed order.
// Iteration over this slice is deterministic; never range over a map
// when picking a direction.
var Directions = []Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// Cardinals lists the four non-diagonal directions.
var Cardinals = []Direction{North, East, South, West}

// IsZero reports whether the direction is the null step.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Toward returns the unit direction pointing from p to q, clamping each
// axis delta to [-1, 1]. Returns the zero direction when p == q.
func Toward(p, q Point) Direction {
	return Direction{DX: Sign(q.X - p.X), DY: Sign(q.Y - p.Y)}
}

// Rect is an axis-aligned rectangle of grid cells. Since it describes
// tiles rather than real coordinates, all edges are inclusive.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height in cells
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the rightmost column.
func (r Rect) Right() int {
	return r.X + r.W - 1
}

// Bottom returns the y-coordinate of the bottommost row.
func (r Rect) Bottom() int {
	return r.Y + r.H - 1
}

// Center returns the middle cell of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the number of cells covered by the rectangle.
func (r Rect) Area() int {
	return r.W * r.H
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsRect reports whether other lies entirely inside the rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rectangles share any cell.
func (r Rect) Intersects(other Rect) bool {
	if r.X > other.Right() || other.X > r.Right() {
		return false
	}
	if r.Y > other.Bottom() || other.Y > r.Bottom() {
		return false
	}
	return true
}

// Inset returns the rectangle shrunk by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Points returns every cell of the rectangle in row-major order.
func (r Rect) Points() []Point {
	pts := make([]Point, 0, r.Area())
	for y := r.Y; y <= r.Bottom(); y++ {
		for x := r.X; x <= r.Right(); x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
