package entity

import "github.com/torvik/delve/internal/geom"

// Layer orders entities sharing a cell: architecture at the bottom, then
// items, then at most one creature on top.
type Layer uint8

const (
	LayerArchitecture Layer = iota
	LayerItem
	LayerCreature
)

// Position places an entity on exactly one map cell.
type Position struct {
	Point geom.Point
}

// Health tracks hit points. An entity whose Cur drops to zero or below is
// destroyed by the action resolver within the same resolution call.
type Health struct {
	Max int
	Cur int
}

// Combat carries the attributes melee resolution reads. Damage dealt is
// Strength minus the defender's Defense, never below one.
type Combat struct {
	Strength int
	Defense  int
}

// Speed controls turn frequency. Delay is the time multiplier applied to
// an action's base cost when rescheduling: an actor with Delay 10 acts at
// the standard rate, Delay 5 twice as often, Delay 20 half as often.
type Speed struct {
	Delay int
}

// Inventory holds carried items by identity. Items are owned by the store,
// never by the holder; destruction of the holder drops them.
type Inventory struct {
	Items []ID
}

// Glyph describes how an entity displays and on which layer it sits.
type Glyph struct {
	Rune  rune
	Layer Layer
}

// Faction determines hostility. Actors of differing factions are hostile;
// moving into a hostile blocking actor resolves as a melee attack.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionMonster
)

// Brain names the decision policy driving a non-player actor. The policy
// itself is registered in the ai package; the store only carries the name.
type Brain struct {
	Policy string
}

// Tag components mark capabilities with no data of their own.
type Tag struct{}
