// Package action validates and applies actor intents. An Action is an
// unvalidated request; the Resolver either applies it atomically and
// returns an Outcome, or returns a Rejection and leaves the world
// untouched. Rejection never consumes the actor's turn.
package action

import (
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/geom"
)

// Kind identifies what an action attempts to do.
type Kind uint8

const (
	KindWait Kind = iota
	KindMove
	KindAttack
	KindOpenDoor
	KindCloseDoor
	KindPickUp
	KindDrop
	KindDescend
	KindAscend
)

func (k Kind) String() string {
	switch k {
	case KindWait:
		return "wait"
	case KindMove:
		return "move"
	case KindAttack:
		return "attack"
	case KindOpenDoor:
		return "open-door"
	case KindCloseDoor:
		return "close-door"
	case KindPickUp:
		return "pick-up"
	case KindDrop:
		return "drop"
	case KindDescend:
		return "descend"
	case KindAscend:
		return "ascend"
	}
	return "unknown"
}

// Action is an intent from a player-input collaborator or an AI policy.
// Dir targets an adjacent cell for directional kinds; Item names the
// inventory entry for Drop.
type Action struct {
	Actor entity.ID
	Kind  Kind
	Dir   geom.Direction
	Item  entity.ID
}

// Wait passes the turn at standard cost.
func Wait(actor entity.ID) Action {
	return Action{Actor: actor, Kind: KindWait}
}

// Move steps one cell in dir. Stepping into a hostile blocking actor
// resolves as a melee attack instead.
func Move(actor entity.ID, dir geom.Direction) Action {
	return Action{Actor: actor, Kind: KindMove, Dir: dir}
}

// Attack strikes the blocking actor one cell away in dir.
func Attack(actor entity.ID, dir geom.Direction) Action {
	return Action{Actor: actor, Kind: KindAttack, Dir: dir}
}

// OpenDoor opens the closed door one cell away in dir.
func OpenDoor(actor entity.ID, dir geom.Direction) Action {
	return Action{Actor: actor, Kind: KindOpenDoor, Dir: dir}
}

// CloseDoor closes the open door one cell away in dir.
func CloseDoor(actor entity.ID, dir geom.Direction) Action {
	return Action{Actor: actor, Kind: KindCloseDoor, Dir: dir}
}

// PickUp takes the topmost item lying on the actor's cell.
func PickUp(actor entity.ID) Action {
	return Action{Actor: actor, Kind: KindPickUp}
}

// Drop places a carried item on the actor's cell.
func Drop(actor entity.ID, item entity.ID) Action {
	return Action{Actor: actor, Kind: KindDrop, Item: item}
}

// Descend requests a transition down the stairs the actor stands on.
func Descend(actor entity.ID) Action {
	return Action{Actor: actor, Kind: KindDescend}
}

// Ascend requests a transition up the stairs the actor stands on.
func Ascend(actor entity.ID) Action {
	return Action{Actor: actor, Kind: KindAscend}
}

// Outcome describes the state delta a resolved action applied. Fields are
// meaningful per kind; renderers and logs read it, the world never does.
type Outcome struct {
	Kind  Kind
	Actor entity.ID

	// Move.
	From, To geom.Point

	// Attack.
	Target entity.ID
	Damage int
	Killed bool

	// Door toggles.
	Door geom.Point

	// PickUp and Drop.
	Item entity.ID

	// Descend is +1, Ascend is -1, otherwise 0. The game layer executes
	// the level change; the resolver only validates the stairs.
	Transition int

	// Cost is the time the action consumed, already applied to the
	// scheduler.
	Cost uint64

	// Invalidate lists actors whose visibility set is stale. When
	// InvalidateAll is set the terrain's opacity changed and every cached
	// set is stale.
	Invalidate    []entity.ID
	InvalidateAll bool
}
