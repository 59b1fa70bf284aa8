package dungeon

import (
	"math/rand"

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
)

// breed is a monster archetype. Real games would load these from content
// data; the engine ships a minimal bestiary so generated levels are
// playable and testable on their own.
type breed struct {
	name     string
	glyph    rune
	health   int
	strength int
	defense  int
	delay    int
	policy   string
	minDepth int
}

var bestiary = []breed{
	{name: "rat", glyph: 'r', health: 4, strength: 1, defense: 0, delay: 8, policy: "wander", minDepth: 1},
	{name: "salamango", glyph: 's', health: 6, strength: 2, defense: 0, delay: 10, policy: "hunter", minDepth: 1},
	{name: "ogre", glyph: 'O', health: 14, strength: 4, defense: 1, delay: 14, policy: "hunter", minDepth: 3},
}

// itemKind is a placeable item archetype.
type itemKind struct {
	name  string
	glyph rune
}

var itemKinds = []itemKind{
	{name: "potion", glyph: '!'},
	{name: "gem", glyph: '*'},
	{name: "armor", glyph: '['},
}

// populate places monsters and items on free floor cells. Counts derive
// from density (per hundred floor cells); nothing ever spawns on an
// impassable cell, on stairs, or atop another blocking entity. Returns
// false when the level lacks room for the requested population.
func populate(rng *rand.Rand, res *Result, p Params) bool {
	floors := openFloorCells(res)
	if len(floors) == 0 {
		return false
	}

	monsters := int(float64(len(floors)) * p.MonsterDensity / 100)
	items := int(float64(len(floors)) * p.ItemDensity / 100)
	if monsters+items > len(floors) {
		return false
	}

	// Deterministic shuffle, then take cells off the front.
	rng.Shuffle(len(floors), func(i, j int) {
		floors[i], floors[j] = floors[j], floors[i]
	})

	for i := 0; i < monsters; i++ {
		spawnMonster(rng, res.Store, floors[0], p.Depth)
		floors = floors[1:]
	}
	for i := 0; i < items; i++ {
		spawnItem(rng, res.Store, floors[0])
		floors = floors[1:]
	}
	return true
}

// openFloorCells returns plain floor cells in row-major order, excluding
// stairs so transitions never start on top of a monster.
func openFloorCells(res *Result) []geom.Point {
	var out []geom.Point
	for _, p := range res.Map.Bounds().Points() {
		c, _ := res.Map.CellAt(p)
		if c.Terrain == gamemap.TerrainFloor {
			out = append(out, p)
		}
	}
	return out
}

func spawnMonster(rng *rand.Rand, store *entity.Store, at geom.Point, depth int) entity.ID {
	eligible := make([]breed, 0, len(bestiary))
	for _, b := range bestiary {
		if depth >= b.minDepth {
			eligible = append(eligible, b)
		}
	}
	b := eligible[rng.Intn(len(eligible))]

	// Depth past the breed's first appearance toughens it up.
	bonus := (depth - b.minDepth) / 2

	id := store.Create()
	store.SetGlyph(id, entity.Glyph{Rune: b.glyph, Layer: entity.LayerCreature})
	store.SetHealth(id, entity.Health{Max: b.health + bonus, Cur: b.health + bonus})
	store.SetCombat(id, entity.Combat{Strength: b.strength + bonus, Defense: b.defense})
	store.SetSpeed(id, entity.Speed{Delay: b.delay})
	store.SetFaction(id, entity.FactionMonster)
	store.SetBrain(id, entity.Brain{Policy: b.policy})
	store.MarkBlocking(id)
	store.Place(id, at)
	return id
}

func spawnItem(rng *rand.Rand, store *entity.Store, at geom.Point) entity.ID {
	k := itemKinds[rng.Intn(len(itemKinds))]

	id := store.Create()
	store.SetGlyph(id, entity.Glyph{Rune: k.glyph, Layer: entity.LayerItem})
	store.MarkItem(id)
	store.Place(id, at)
	return id
}
