// Package entity implements the entity store: every actor and item in the
// world is an identity with an open set of attached components. The store
// is the single owner of all entities; everything else refers to them by
// identity only, never by pointer, so destruction can never dangle.
package entity

import (
	"errors"
	"fmt"

	"github.com/torvik/delve/internal/geom"
)

// ID uniquely identifies an entity. IDs are assigned in ascending spawn
// order and never reused within a store, which makes them a stable
// secondary sort key wherever deterministic ordering is needed.
type ID uint64

// None is the zero identity; no entity ever has it.
const None ID = 0

// ErrOccupied is returned when placing a blocking entity on a cell already
// held by another blocking entity.
var ErrOccupied = errors.New("entity: cell already occupied by a blocking entity")

type remover interface {
	remove(ID)
}

// Store owns all entities of one level.
type Store struct {
	nextID ID
	alive  map[ID]struct{}
	order  []ID // living entities in spawn order

	positions   *Table[Position]
	healths     *Table[Health]
	combats     *Table[Combat]
	speeds      *Table[Speed]
	inventories *Table[Inventory]
	glyphs      *Table[Glyph]
	factions    *Table[Faction]
	brains      *Table[Brain]
	blocking    *Table[Tag]
	opaque      *Table[Tag]
	item        *Table[Tag]
	persistent  *Table[Tag]

	byPos  map[geom.Point][]ID
	tables []remover

	onDestroy []func(ID)
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	s := &Store{
		nextID:      1,
		alive:       make(map[ID]struct{}),
		positions:   NewTable[Position](),
		healths:     NewTable[Health](),
		combats:     NewTable[Combat](),
		speeds:      NewTable[Speed](),
		inventories: NewTable[Inventory](),
		glyphs:      NewTable[Glyph](),
		factions:    NewTable[Faction](),
		brains:      NewTable[Brain](),
		blocking:    NewTable[Tag](),
		opaque:      NewTable[Tag](),
		item:        NewTable[Tag](),
		persistent:  NewTable[Tag](),
		byPos:       make(map[geom.Point][]ID),
	}
	s.tables = []remover{
		s.healths, s.combats, s.speeds, s.inventories, s.glyphs,
		s.factions, s.brains, s.blocking, s.opaque, s.item, s.persistent,
	}
	return s
}

// Create mints a new entity identity with no components attached.
func (s *Store) Create() ID {
	id := s.nextID
	s.nextID++
	s.alive[id] = struct{}{}
	s.order = append(s.order, id)
	return id
}

// Adopt registers a specific identity, used when restoring a saved level.
// Fails if the identity is zero or already present.
func (s *Store) Adopt(id ID) error {
	if id == None {
		return fmt.Errorf("entity: cannot adopt the zero identity")
	}
	if _, ok := s.alive[id]; ok {
		return fmt.Errorf("entity: identity %d already present", id)
	}
	s.alive[id] = struct{}{}
	s.order = append(s.order, id)
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return nil
}

// Destroy removes the entity and every component it carries in one step,
// then notifies destruction observers. The scheduler subscribes so it can
// drop the entity's schedule entry; the store signals removal, not the
// other way around.
func (s *Store) Destroy(id ID) {
	if _, ok := s.alive[id]; !ok {
		return
	}
	s.RemovePosition(id)
	for _, t := range s.tables {
		t.remove(id)
	}
	delete(s.alive, id)
	for i, e := range s.order {
		if e == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for _, fn := range s.onDestroy {
		fn(id)
	}
}

// OnDestroy registers an observer invoked after an entity is destroyed.
func (s *Store) OnDestroy(fn func(ID)) {
	s.onDestroy = append(s.onDestroy, fn)
}

// Alive reports whether the identity refers to a living entity.
func (s *Store) Alive(id ID) bool {
	_, ok := s.alive[id]
	return ok
}

// Len returns the number of living entities.
func (s *Store) Len() int {
	return len(s.alive)
}

// IDs returns all living entities in spawn order.
func (s *Store) IDs() []ID {
	out := make([]ID, len(s.order))
	copy(out, s.order)
	return out
}

// --- Position ---
//
// Position is maintained through the store rather than a bare table so the
// by-coordinate index stays consistent and the one-blocker-per-cell
// invariant holds.

// Place puts the entity on a cell, moving it if it already has a position.
func (s *Store) Place(id ID, p geom.Point) error {
	if !s.Alive(id) {
		return fmt.Errorf("entity: cannot place dead entity %d", id)
	}
	if s.blocking.Has(id) {
		if other, ok := s.BlockingAt(p); ok && other != id {
			return fmt.Errorf("%w: (%d,%d)", ErrOccupied, p.X, p.Y)
		}
	}
	s.removeFromIndex(id)
	s.positions.Set(id, Position{Point: p})
	s.byPos[p] = append(s.byPos[p], id)
	return nil
}

// RemovePosition takes the entity off the map, e.g. when it is picked up
// into an inventory. The entity itself stays alive.
func (s *Store) RemovePosition(id ID) {
	s.removeFromIndex(id)
	s.positions.Remove(id)
}

func (s *Store) removeFromIndex(id ID) {
	pos, ok := s.positions.Get(id)
	if !ok {
		return
	}
	ids := s.byPos[pos.Point]
	for i, e := range ids {
		if e == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.byPos, pos.Point)
	} else {
		s.byPos[pos.Point] = ids
	}
}

// PositionOf returns the entity's cell, if it has one.
func (s *Store) PositionOf(id ID) (geom.Point, bool) {
	pos, ok := s.positions.Get(id)
	return pos.Point, ok
}

// EntitiesAt returns the entities occupying a cell in placement order.
// The order is stable across a turn.
func (s *Store) EntitiesAt(p geom.Point) []ID {
	ids := s.byPos[p]
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}

// BlockingAt returns the blocking entity on a cell, if any. The store
// guarantees there is at most one.
func (s *Store) BlockingAt(p geom.Point) (ID, bool) {
	for _, id := range s.byPos[p] {
		if s.blocking.Has(id) {
			return id, true
		}
	}
	return None, false
}

// ItemsAt returns the portable entities lying on a cell in placement order.
func (s *Store) ItemsAt(p geom.Point) []ID {
	var out []ID
	for _, id := range s.byPos[p] {
		if s.item.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// OpaqueEntityAt reports whether any sight-blocking entity occupies a cell.
func (s *Store) OpaqueEntityAt(p geom.Point) bool {
	for _, id := range s.byPos[p] {
		if s.opaque.Has(id) {
			return true
		}
	}
	return false
}

// --- Typed component accessors ---
//
// Each getter returns the component value and whether it is present;
// absence is an expected result, not an error.

func (s *Store) Health(id ID) (Health, bool)       { return s.healths.Get(id) }
func (s *Store) SetHealth(id ID, v Health)         { s.healths.Set(id, v) }
func (s *Store) Combat(id ID) (Combat, bool)       { return s.combats.Get(id) }
func (s *Store) SetCombat(id ID, v Combat)         { s.combats.Set(id, v) }
func (s *Store) Speed(id ID) (Speed, bool)         { return s.speeds.Get(id) }
func (s *Store) SetSpeed(id ID, v Speed)           { s.speeds.Set(id, v) }
func (s *Store) Inventory(id ID) (Inventory, bool) { return s.inventories.Get(id) }
func (s *Store) SetInventory(id ID, v Inventory)   { s.inventories.Set(id, v) }
func (s *Store) Glyph(id ID) (Glyph, bool)         { return s.glyphs.Get(id) }
func (s *Store) SetGlyph(id ID, v Glyph)           { s.glyphs.Set(id, v) }
func (s *Store) Faction(id ID) (Faction, bool)     { return s.factions.Get(id) }
func (s *Store) SetFaction(id ID, v Faction)       { s.factions.Set(id, v) }
func (s *Store) Brain(id ID) (Brain, bool)         { return s.brains.Get(id) }
func (s *Store) SetBrain(id ID, v Brain)           { s.brains.Set(id, v) }

// --- Tags ---

func (s *Store) MarkBlocking(id ID)        { s.blocking.Set(id, Tag{}) }
func (s *Store) IsBlocking(id ID) bool     { return s.blocking.Has(id) }
func (s *Store) MarkOpaque(id ID)          { s.opaque.Set(id, Tag{}) }
func (s *Store) IsOpaque(id ID) bool       { return s.opaque.Has(id) }
func (s *Store) MarkItem(id ID)            { s.item.Set(id, Tag{}) }
func (s *Store) IsItem(id ID) bool         { return s.item.Has(id) }
func (s *Store) MarkPersistent(id ID)      { s.persistent.Set(id, Tag{}) }
func (s *Store) IsPersistent(id ID) bool   { return s.persistent.Has(id) }

// --- Component-indexed iteration ---

// Actors returns every entity with a Speed component in attachment order.
// These are exactly the entities the scheduler tracks.
func (s *Store) Actors() []ID {
	return s.speeds.IDs()
}

// Brains returns every entity with an AI policy in attachment order.
func (s *Store) Brains() []ID {
	return s.brains.IDs()
}

// PersistentIDs returns the entities flagged to survive level transitions.
func (s *Store) PersistentIDs() []ID {
	return s.persistent.IDs()
}
