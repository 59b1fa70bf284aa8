package save

import (
	"encoding/json"
	"fmt"

	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/game"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/geom"
	"github.com/torvik/delve/internal/turn"
)

// Saved state holds only primary data: map cells, entity component
// records, schedule entries, the clock and the seed lineage. Derived data
// (visibility sets, pathfinding state) is recomputed on load.

type mapBlob struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Cells  []gamemap.Cell `json:"cells"`
}

type pointBlob struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type entityRecord struct {
	ID         entity.ID       `json:"id"`
	Pos        *pointBlob      `json:"pos,omitempty"`
	Health     *entity.Health  `json:"health,omitempty"`
	Combat     *entity.Combat  `json:"combat,omitempty"`
	Speed      *entity.Speed   `json:"speed,omitempty"`
	Inventory  []entity.ID     `json:"inventory,omitempty"`
	Glyph      *entity.Glyph   `json:"glyph,omitempty"`
	Faction    *entity.Faction `json:"faction,omitempty"`
	Brain      *entity.Brain   `json:"brain,omitempty"`
	Blocking   bool            `json:"blocking,omitempty"`
	Opaque     bool            `json:"opaque,omitempty"`
	Item       bool            `json:"item,omitempty"`
	Persistent bool            `json:"persistent,omitempty"`
}

type scheduleBlob struct {
	Entries []turn.Entry `json:"entries"`
}

func encodeMap(m *gamemap.Map) ([]byte, error) {
	b := m.Bounds()
	return json.Marshal(mapBlob{Width: b.W, Height: b.H, Cells: m.Cells()})
}

func decodeMap(data []byte) (*gamemap.Map, error) {
	var blob mapBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return gamemap.Restore(blob.Width, blob.Height, blob.Cells)
}

func encodeEntities(s *entity.Store) ([]byte, error) {
	records := make([]entityRecord, 0, s.Len())
	for _, id := range s.IDs() {
		r := entityRecord{ID: id}
		if p, ok := s.PositionOf(id); ok {
			r.Pos = &pointBlob{X: p.X, Y: p.Y}
		}
		if v, ok := s.Health(id); ok {
			r.Health = &v
		}
		if v, ok := s.Combat(id); ok {
			r.Combat = &v
		}
		if v, ok := s.Speed(id); ok {
			r.Speed = &v
		}
		if v, ok := s.Inventory(id); ok {
			r.Inventory = v.Items
		}
		if v, ok := s.Glyph(id); ok {
			r.Glyph = &v
		}
		if v, ok := s.Faction(id); ok {
			r.Faction = &v
		}
		if v, ok := s.Brain(id); ok {
			r.Brain = &v
		}
		r.Blocking = s.IsBlocking(id)
		r.Opaque = s.IsOpaque(id)
		r.Item = s.IsItem(id)
		r.Persistent = s.IsPersistent(id)
		records = append(records, r)
	}
	return json.Marshal(records)
}

func decodeEntities(data []byte) (*entity.Store, error) {
	var records []entityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	s := entity.NewStore()
	// Records are saved in spawn order; adopting in the same order keeps
	// identity iteration stable across a save/load cycle.
	for _, r := range records {
		if err := s.Adopt(r.ID); err != nil {
			return nil, err
		}
		if r.Health != nil {
			s.SetHealth(r.ID, *r.Health)
		}
		if r.Combat != nil {
			s.SetCombat(r.ID, *r.Combat)
		}
		if r.Speed != nil {
			s.SetSpeed(r.ID, *r.Speed)
		}
		if r.Inventory != nil {
			s.SetInventory(r.ID, entity.Inventory{Items: r.Inventory})
		}
		if r.Glyph != nil {
			s.SetGlyph(r.ID, *r.Glyph)
		}
		if r.Faction != nil {
			s.SetFaction(r.ID, *r.Faction)
		}
		if r.Brain != nil {
			s.SetBrain(r.ID, *r.Brain)
		}
		if r.Blocking {
			s.MarkBlocking(r.ID)
		}
		if r.Opaque {
			s.MarkOpaque(r.ID)
		}
		if r.Item {
			s.MarkItem(r.ID)
		}
		if r.Persistent {
			s.MarkPersistent(r.ID)
		}
	}
	// Positions last, so the blocking invariant check sees final tags.
	for _, r := range records {
		if r.Pos == nil {
			continue
		}
		if err := s.Place(r.ID, geom.P(r.Pos.X, r.Pos.Y)); err != nil {
			return nil, fmt.Errorf("entity %d: %w", r.ID, err)
		}
	}
	return s, nil
}

func encodeSchedule(sched *turn.Scheduler) ([]byte, error) {
	return json.Marshal(scheduleBlob{Entries: sched.Entries()})
}

func decodeSchedule(data []byte, clock uint64) (*turn.Scheduler, error) {
	var blob scheduleBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return turn.Restore(clock, blob.Entries), nil
}

func encodeOptions(opts game.Options) ([]byte, error) {
	return json.Marshal(opts)
}

func decodeOptions(data []byte) (game.Options, error) {
	var opts game.Options
	err := json.Unmarshal(data, &opts)
	return opts, err
}
