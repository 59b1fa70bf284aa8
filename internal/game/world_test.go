package game

import (
	"errors"
	"testing"

	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
)

func TestNewWorldDeterministic(t *testing.T) {
	opts := DefaultOptions()
	a, err := NewWorld(42, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewWorld(42, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !a.Map().Equal(b.Map()) {
		t.Error("same seed should produce identical maps")
	}
	pa, _ := a.Store().PositionOf(a.Player())
	pb, _ := b.Store().PositionOf(b.Player())
	if pa != pb {
		t.Errorf("player spawned at %v vs %v", pa, pb)
	}
}

func TestPlayerLeadsTheFirstRound(t *testing.T) {
	w, err := NewWorld(1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	outcomes := w.Advance()
	if len(outcomes) != 0 {
		t.Errorf("no actor should act before the player's first turn, got %d outcomes", len(outcomes))
	}
	if acting, ok := w.Scheduler().Acting(); !ok || acting != w.Player() {
		t.Fatal("Advance should leave the player acting")
	}
}

func TestWaitCyclesTheClock(t *testing.T) {
	w, err := NewWorld(1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	w.Advance()
	before := w.Clock()
	if _, err := w.SubmitPlayerAction(action.Wait(w.Player())); err != nil {
		t.Fatal(err)
	}
	w.Advance()
	if w.Clock() <= before {
		t.Errorf("clock did not advance: %d -> %d", before, w.Clock())
	}
	if acting, ok := w.Scheduler().Acting(); !ok || acting != w.Player() {
		t.Error("player should be acting again after a full round")
	}
}

func TestRejectionKeepsTheTurn(t *testing.T) {
	w, err := NewWorld(1, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	w.Advance()

	// Dropping an item the player does not carry is always rejected.
	_, err = w.SubmitPlayerAction(action.Drop(w.Player(), entity.None))
	if _, ok := action.RejectedWith(err); !ok {
		t.Fatalf("err = %v, want rejection", err)
	}
	if acting, ok := w.Scheduler().Acting(); !ok || acting != w.Player() {
		t.Error("rejected action should leave the player acting")
	}

	if _, err := w.SubmitPlayerAction(action.Wait(w.Player())); err != nil {
		t.Errorf("resubmission after rejection failed: %v", err)
	}
}

func TestDescendMigratesThePlayer(t *testing.T) {
	w, err := NewWorld(3, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	w.Advance()

	// Give the player a carried item so the inventory closure migrates.
	item := w.Store().Create()
	w.Store().MarkItem(item)
	w.Store().SetInventory(w.Player(), entity.Inventory{Items: []entity.ID{item}})

	down := w.Map().Find(gamemap.TerrainStairsDown)
	if len(down) != 1 {
		t.Fatalf("expected one down stair, got %v", down)
	}
	if err := w.Store().Place(w.Player(), down[0]); err != nil {
		t.Fatal(err)
	}

	out, err := w.SubmitPlayerAction(action.Descend(w.Player()))
	if err != nil {
		t.Fatal(err)
	}
	if out.Transition != 1 {
		t.Fatalf("transition = %d, want +1", out.Transition)
	}
	if w.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", w.Depth())
	}

	pos, ok := w.Store().PositionOf(w.Player())
	if !ok {
		t.Fatal("player lost its position in transit")
	}
	up := w.Map().Find(gamemap.TerrainStairsUp)
	if len(up) != 1 || pos != up[0] {
		t.Errorf("player arrived at %v, want the up stairs %v", pos, up)
	}

	inv, _ := w.Store().Inventory(w.Player())
	if len(inv.Items) != 1 {
		t.Fatalf("inventory did not migrate: %v", inv.Items)
	}
	if !w.Store().IsItem(inv.Items[0]) {
		t.Error("migrated item lost its item tag")
	}
	if !w.Store().IsPersistent(w.Player()) {
		t.Error("player lost its persistent tag")
	}
}

func TestDescendIsDeterministic(t *testing.T) {
	descend := func() (*World, error) {
		w, err := NewWorld(9, DefaultOptions())
		if err != nil {
			return nil, err
		}
		w.Advance()
		down := w.Map().Find(gamemap.TerrainStairsDown)
		if err := w.Store().Place(w.Player(), down[0]); err != nil {
			return nil, err
		}
		if _, err := w.SubmitPlayerAction(action.Descend(w.Player())); err != nil {
			return nil, err
		}
		return w, nil
	}

	a, err := descend()
	if err != nil {
		t.Fatal(err)
	}
	b, err := descend()
	if err != nil {
		t.Fatal(err)
	}
	if !a.Map().Equal(b.Map()) {
		t.Error("depth two should be identical for the same run seed")
	}
}

func TestAscendFromDepthOne(t *testing.T) {
	w, err := NewWorld(3, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	w.Advance()

	// The player spawns on the up stairs.
	_, err = w.SubmitPlayerAction(action.Ascend(w.Player()))
	if !errors.Is(err, ErrSurface) {
		t.Errorf("err = %v, want ErrSurface", err)
	}
	if w.Depth() != 1 {
		t.Errorf("depth changed to %d", w.Depth())
	}
}

func TestSimulationDeterministic(t *testing.T) {
	run := func(seed int64, turns int) (*World, error) {
		w, err := NewWorld(seed, DefaultOptions())
		if err != nil {
			return nil, err
		}
		for i := 0; i < turns && w.PlayerAlive(); i++ {
			w.Advance()
			if !w.PlayerAlive() {
				break
			}
			if _, err := w.SubmitPlayerAction(action.Wait(w.Player())); err != nil {
				return nil, err
			}
		}
		return w, nil
	}

	a, err := run(1234, 40)
	if err != nil {
		t.Fatal(err)
	}
	b, err := run(1234, 40)
	if err != nil {
		t.Fatal(err)
	}

	if a.Clock() != b.Clock() {
		t.Fatalf("clocks diverged: %d vs %d", a.Clock(), b.Clock())
	}
	aIDs := a.Store().IDs()
	bIDs := b.Store().IDs()
	if len(aIDs) != len(bIDs) {
		t.Fatalf("entity counts diverged: %d vs %d", len(aIDs), len(bIDs))
	}
	for i := range aIDs {
		pa, okA := a.Store().PositionOf(aIDs[i])
		pb, okB := b.Store().PositionOf(bIDs[i])
		if okA != okB || pa != pb {
			t.Errorf("entity %d at %v vs %v", aIDs[i], pa, pb)
		}
		ha, _ := a.Store().Health(aIDs[i])
		hb, _ := b.Store().Health(bIDs[i])
		if ha != hb {
			t.Errorf("entity %d health %v vs %v", aIDs[i], ha, hb)
		}
	}
}

func TestDeadActorsNeverActAgain(t *testing.T) {
	w, err := NewWorld(5, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// Destroy every monster mid-run; none may come up afterwards.
	w.Advance()
	var killed []entity.ID
	for _, id := range w.Store().Actors() {
		if id != w.Player() {
			killed = append(killed, id)
			w.Store().Destroy(id)
		}
	}
	if _, err := w.SubmitPlayerAction(action.Wait(w.Player())); err != nil {
		t.Fatal(err)
	}
	outcomes := w.Advance()
	for _, out := range outcomes {
		for _, id := range killed {
			if out.Actor == id {
				t.Fatalf("destroyed actor %d acted", id)
			}
		}
	}
}

func TestLevelSeedSpread(t *testing.T) {
	seen := make(map[int64]int)
	for depth := 1; depth <= 50; depth++ {
		s := levelSeed(7, depth)
		if prev, dup := seen[s]; dup {
			t.Fatalf("depths %d and %d share seed %d", prev, depth, s)
		}
		seen[s] = depth
	}
}
