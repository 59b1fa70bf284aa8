package action

import (
	"errors"
	"fmt"
)

// Reason classifies why an action was rejected.
type Reason uint8

const (
	// ReasonNotActing: the actor is not the one whose turn it is.
	ReasonNotActing Reason = iota
	// ReasonDead: the actor no longer exists.
	ReasonDead
	// ReasonOutOfRange: the target is not an adjacent cell.
	ReasonOutOfRange
	// ReasonBlocked: the destination terrain is impassable or out of bounds.
	ReasonBlocked
	// ReasonOccupied: a non-hostile blocking entity holds the destination.
	ReasonOccupied
	// ReasonNoTarget: nothing attackable at the target cell.
	ReasonNoTarget
	// ReasonNoDoor: the target cell is not a door in the required state.
	ReasonNoDoor
	// ReasonDoorBlocked: an entity stands in the doorway.
	ReasonDoorBlocked
	// ReasonNothingHere: no item to pick up on the actor's cell.
	ReasonNothingHere
	// ReasonNotCarried: the named item is not in the actor's inventory.
	ReasonNotCarried
	// ReasonNoStairs: the actor is not standing on the matching stairs.
	ReasonNoStairs
	// ReasonMalformed: the action itself is ill-formed.
	ReasonMalformed
)

func (r Reason) String() string {
	switch r {
	case ReasonNotActing:
		return "not acting"
	case ReasonDead:
		return "actor dead"
	case ReasonOutOfRange:
		return "out of range"
	case ReasonBlocked:
		return "blocked"
	case ReasonOccupied:
		return "occupied"
	case ReasonNoTarget:
		return "no target"
	case ReasonNoDoor:
		return "no door"
	case ReasonDoorBlocked:
		return "doorway occupied"
	case ReasonNothingHere:
		return "nothing here"
	case ReasonNotCarried:
		return "not carried"
	case ReasonNoStairs:
		return "no stairs"
	case ReasonMalformed:
		return "malformed action"
	}
	return "unknown"
}

// Rejection is the expected failure result of Resolve. It is ordinary
// control flow for callers: the turn was not consumed and the world is
// unchanged, so the caller may pick another action.
type Rejection struct {
	Kind   Kind
	Reason Reason
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("action: %s rejected: %s", r.Kind, r.Reason)
}

func reject(kind Kind, reason Reason) error {
	return &Rejection{Kind: kind, Reason: reason}
}

// RejectedWith extracts the rejection from a Resolve error, if it is one.
func RejectedWith(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
