// Package dungeon generates populated levels: a map satisfying the
// connectivity invariant plus an entity store seeded with monsters and
// items. Generation is fully deterministic for a given seed.
//
// The layout algorithm is binary space partitioning: the map area is
// recursively split into regions, one room is carved per region, and
// consecutive rooms are joined by L-shaped corridors. Doors appear where
// a corridor pinches through a wall.
package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
)

// ErrGenerationFailed is returned when no valid layout satisfying the
// placement constraints was found within the attempt budget. Callers may
// retry with a different seed or abort the level load.
var ErrGenerationFailed = errors.New("dungeon: generation failed")

// Params configures a single level generation run.
type Params struct {
	Width, Height int
	// RoomTarget is the desired number of rooms; the partitioner may
	// produce fewer on cramped maps.
	RoomTarget  int
	MinRoomSize int
	// MonsterDensity and ItemDensity are counts per hundred floor cells.
	MonsterDensity float64
	ItemDensity    float64
	// Depth scales monster difficulty; depth 1 is the first level.
	Depth int
	// Terminal levels get no down staircase.
	Terminal bool
	// MaxAttempts bounds layout retries before giving up.
	MaxAttempts int
}

// DefaultParams returns a workable mid-size level configuration.
func DefaultParams() Params {
	return Params{
		Width:          60,
		Height:         24,
		RoomTarget:     7,
		MinRoomSize:    5,
		MonsterDensity: 1.5,
		ItemDensity:    1.0,
		Depth:          1,
		MaxAttempts:    20,
	}
}

// Result is a freshly generated level. The player is not part of it; the
// game layer places migrated entities at UpStairs after generation.
type Result struct {
	Map        *gamemap.Map
	Store      *entity.Store
	UpStairs   geom.Point
	DownStairs geom.Point // meaningful only when HasDown
	HasDown    bool
}

// Generate builds a level for the given seed and parameters.
func Generate(seed int64, p Params) (*Result, error) {
	if p.Width < p.MinRoomSize+2 || p.Height < p.MinRoomSize+2 {
		return nil, fmt.Errorf("%w: map %dx%d too small for rooms of size %d",
			ErrGenerationFailed, p.Width, p.Height, p.MinRoomSize)
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < attempts; i++ {
		if res, ok := generateOnce(rng, p); ok {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: no connected layout in %d attempts (seed %d)",
		ErrGenerationFailed, attempts, seed)
}

func generateOnce(rng *rand.Rand, p Params) (*Result, bool) {
	m := gamemap.New(p.Width, p.Height)

	regions := partition(rng, m.Bounds().Inset(1), p.MinRoomSize+2, p.RoomTarget)
	if len(regions) < 2 {
		return nil, false
	}

	rooms := make([]geom.Rect, 0, len(regions))
	for _, region := range regions {
		rooms = append(rooms, carveRoom(rng, m, region, p.MinRoomSize))
	}

	// Join consecutive rooms; with every room linked to the next the level
	// forms a single connected chain.
	for i := 1; i < len(rooms); i++ {
		carveCorridor(rng, m, rooms[i-1].Center(), rooms[i].Center())
	}
	placeDoors(m)

	up := rooms[0].Center()
	m.SetCell(up, gamemap.StairsUp())

	res := &Result{Map: m, Store: entity.NewStore(), UpStairs: up}
	if !p.Terminal {
		down := rooms[len(rooms)-1].Center()
		if down == up {
			return nil, false
		}
		m.SetCell(down, gamemap.StairsDown())
		res.DownStairs = down
		res.HasDown = true
	}

	if !connected(m, up) {
		return nil, false
	}

	if !populate(rng, res, p) {
		return nil, false
	}
	return res, true
}

// partition splits the area into regions by recursive binary partition,
// always splitting the axis with more slack.
func partition(rng *rand.Rand, area geom.Rect, minSize, target int) []geom.Rect {
	regions := []geom.Rect{area}
	for len(regions) < target {
		// Split the largest region first.
		largest := 0
		for i, r := range regions {
			if r.Area() > regions[largest].Area() {
				largest = i
			}
		}
		r := regions[largest]

		canH := r.H >= 2*minSize
		canV := r.W >= 2*minSize
		if !canH && !canV {
			break
		}

		var a, b geom.Rect
		if canH && (!canV || r.H >= r.W) {
			cut := minSize + rng.Intn(r.H-2*minSize+1)
			a = geom.NewRect(r.X, r.Y, r.W, cut)
			b = geom.NewRect(r.X, r.Y+cut, r.W, r.H-cut)
		} else {
			cut := minSize + rng.Intn(r.W-2*minSize+1)
			a = geom.NewRect(r.X, r.Y, cut, r.H)
			b = geom.NewRect(r.X+cut, r.Y, r.W-cut, r.H)
		}
		regions[largest] = a
		regions = append(regions, b)
	}
	return regions
}

// carveRoom digs a randomly sized room inside the region, leaving at least
// a one-cell wall ring, and returns the carved floor rectangle.
func carveRoom(rng *rand.Rand, m *gamemap.Map, region geom.Rect, minSize int) geom.Rect {
	inner := region.Inset(1)
	w := minSize - 2 + rng.Intn(geom.Max(inner.W-(minSize-2)+1, 1))
	h := minSize - 2 + rng.Intn(geom.Max(inner.H-(minSize-2)+1, 1))
	w = geom.Clamp(w, 2, inner.W)
	h = geom.Clamp(h, 2, inner.H)
	x := inner.X + rng.Intn(inner.W-w+1)
	y := inner.Y + rng.Intn(inner.H-h+1)

	room := geom.NewRect(x, y, w, h)
	for _, p := range room.Points() {
		m.SetCell(p, gamemap.Floor())
	}
	return room
}

// carveCorridor digs an L-shaped corridor between two points, choosing the
// elbow orientation at random.
func carveCorridor(rng *rand.Rand, m *gamemap.Map, from, to geom.Point) {
	elbow := geom.P(to.X, from.Y)
	if rng.Intn(2) == 0 {
		elbow = geom.P(from.X, to.Y)
	}
	digLine(m, from, elbow)
	digLine(m, elbow, to)
}

func digLine(m *gamemap.Map, from, to geom.Point) {
	cur := from
	for cur != to {
		carveFloor(m, cur)
		cur = cur.Add(geom.Toward(cur, to))
	}
	carveFloor(m, to)
}

func carveFloor(m *gamemap.Map, p geom.Point) {
	if c, err := m.CellAt(p); err == nil && c.Terrain == gamemap.TerrainWall {
		m.SetCell(p, gamemap.Floor())
	}
}

// placeDoors converts corridor pinch cells into closed doors: a floor cell
// walled on exactly one axis and open on the other.
func placeDoors(m *gamemap.Map) {
	var doors []geom.Point
	for _, p := range m.Bounds().Inset(1).Points() {
		c, _ := m.CellAt(p)
		if c.Terrain != gamemap.TerrainFloor {
			continue
		}
		wallN := isWall(m, p.Add(geom.North))
		wallS := isWall(m, p.Add(geom.South))
		wallE := isWall(m, p.Add(geom.East))
		wallW := isWall(m, p.Add(geom.West))
		floorN := isFloor(m, p.Add(geom.North))
		floorS := isFloor(m, p.Add(geom.South))
		floorE := isFloor(m, p.Add(geom.East))
		floorW := isFloor(m, p.Add(geom.West))

		if (wallN && wallS && floorE && floorW) || (wallE && wallW && floorN && floorS) {
			doors = append(doors, p)
		}
	}
	for _, p := range doors {
		m.SetCell(p, gamemap.ClosedDoor())
	}
}

func isWall(m *gamemap.Map, p geom.Point) bool {
	c, err := m.CellAt(p)
	return err == nil && c.Terrain == gamemap.TerrainWall
}

func isFloor(m *gamemap.Map, p geom.Point) bool {
	c, err := m.CellAt(p)
	return err == nil && c.Terrain == gamemap.TerrainFloor
}

// connected verifies the connectivity invariant: every traversable cell is
// reachable from start. Closed doors count as traversable because they can
// be opened.
func connected(m *gamemap.Map, start geom.Point) bool {
	traversable := func(p geom.Point) bool {
		c, err := m.CellAt(p)
		if err != nil {
			return false
		}
		return c.Passable || c.Terrain == gamemap.TerrainDoorClosed
	}

	total := 0
	for _, p := range m.Bounds().Points() {
		if traversable(p) {
			total++
		}
	}
	if total == 0 || !traversable(start) {
		return false
	}

	seen := map[geom.Point]struct{}{start: {}}
	queue := []geom.Point{start}
	reached := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range geom.Cardinals {
			next := cur.Add(d)
			if _, ok := seen[next]; ok || !traversable(next) {
				continue
			}
			seen[next] = struct{}{}
			reached++
			queue = append(queue, next)
		}
	}
	return reached == total
}
