package game

import (
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/geom"
)

// migrate copies every persistent entity and its inventory closure from
// the departing level's store into the fresh one, remapping identities.
// Only the root (the player) receives a position, on the arrival cell.
// Returns the root's new identity.
func migrate(old, dst *entity.Store, root entity.ID, arrival geom.Point) entity.ID {
	remap := make(map[entity.ID]entity.ID)

	var clone func(id entity.ID) entity.ID
	clone = func(id entity.ID) entity.ID {
		if nid, done := remap[id]; done {
			return nid
		}
		nid := dst.Create()
		remap[id] = nid

		if v, ok := old.Health(id); ok {
			dst.SetHealth(nid, v)
		}
		if v, ok := old.Combat(id); ok {
			dst.SetCombat(nid, v)
		}
		if v, ok := old.Speed(id); ok {
			dst.SetSpeed(nid, v)
		}
		if v, ok := old.Glyph(id); ok {
			dst.SetGlyph(nid, v)
		}
		if v, ok := old.Faction(id); ok {
			dst.SetFaction(nid, v)
		}
		if v, ok := old.Brain(id); ok {
			dst.SetBrain(nid, v)
		}
		if old.IsBlocking(id) {
			dst.MarkBlocking(nid)
		}
		if old.IsOpaque(id) {
			dst.MarkOpaque(nid)
		}
		if old.IsItem(id) {
			dst.MarkItem(nid)
		}
		if old.IsPersistent(id) {
			dst.MarkPersistent(nid)
		}
		if inv, ok := old.Inventory(id); ok {
			carried := make([]entity.ID, 0, len(inv.Items))
			for _, item := range inv.Items {
				carried = append(carried, clone(item))
			}
			dst.SetInventory(nid, entity.Inventory{Items: carried})
		}
		return nid
	}

	for _, id := range old.PersistentIDs() {
		clone(id)
	}

	newRoot := remap[root]
	if newRoot == entity.None {
		newRoot = clone(root)
	}
	dst.Place(newRoot, arrival)
	return newRoot
}
