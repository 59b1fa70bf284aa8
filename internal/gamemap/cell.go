package gamemap

// Terrain identifies the architectural kind of a cell.
type Terrain uint8

const (
	TerrainWall Terrain = iota
	TerrainFloor
	TerrainDoorClosed
	TerrainDoorOpen
	TerrainStairsUp
	TerrainStairsDown
)

// String returns a human-readable name for the terrain kind.
func (t Terrain) String() string {
	switch t {
	case TerrainWall:
		return "wall"
	case TerrainFloor:
		return "floor"
	case TerrainDoorClosed:
		return "closed door"
	case TerrainDoorOpen:
		return "open door"
	case TerrainStairsUp:
		return "stairs up"
	case TerrainStairsDown:
		return "stairs down"
	default:
		return "unknown"
	}
}

// FeatureID references an optional decorative or mechanical feature
// attached to a cell. Zero means no feature. Feature content itself lives
// outside the engine; the map only carries the reference.
type FeatureID uint16

// Cell is a single tile of the map grid. Passability and opacity are
// stored explicitly rather than derived from Terrain so that mutations
// (opening a door, breaking a wall) are plain field updates.
type Cell struct {
	Terrain  Terrain
	Passable bool
	Opaque   bool
	Feature  FeatureID
}

// Wall returns a solid, sight-blocking wall cell.
func Wall() Cell {
	return Cell{Terrain: TerrainWall, Passable: false, Opaque: true}
}

// Floor returns an open floor cell.
func Floor() Cell {
	return Cell{Terrain: TerrainFloor, Passable: true, Opaque: false}
}

// ClosedDoor returns a door cell that blocks both movement and sight.
func ClosedDoor() Cell {
	return Cell{Terrain: TerrainDoorClosed, Passable: false, Opaque: true}
}

// OpenDoor returns a door cell that is passable and transparent.
func OpenDoor() Cell {
	return Cell{Terrain: TerrainDoorOpen, Passable: true, Opaque: false}
}

// StairsUp returns an up-staircase cell.
func StairsUp() Cell {
	return Cell{Terrain: TerrainStairsUp, Passable: true, Opaque: false}
}

// StairsDown returns a down-staircase cell.
func StairsDown() Cell {
	return Cell{Terrain: TerrainStairsDown, Passable: true, Opaque: false}
}

// IsDoor reports whether the cell is a door, open or closed.
func (c Cell) IsDoor() bool {
	return c.Terrain == TerrainDoorClosed || c.Terrain == TerrainDoorOpen
}

// Rune returns the classic display glyph for the cell. The engine does not
// render, but glyphs keep logs and test failures readable.
func (c Cell) Rune() rune {
	switch c.Terrain {
	case TerrainWall:
		return '#'
	case TerrainFloor:
		return '.'
	case TerrainDoorClosed:
		return '+'
	case TerrainDoorOpen:
		return '\''
	case TerrainStairsUp:
		return '<'
	case TerrainStairsDown:
		return '>'
	default:
		return '?'
	}
}
