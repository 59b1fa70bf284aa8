// Package turn implements the energy-based turn scheduler. It decides
// whose turn is next and nothing else: action validation lives in the
// resolver, and entity lifetime lives in the store.
package turn

import (
	"container/heap"
	"fmt"

	"github.com/torvik/delve/internal/entity"
)

// State tracks an actor's position in the scheduling cycle.
// Waiting -> Acting -> Waiting, with Removed as the terminal state.
type State uint8

const (
	StateUnknown State = iota
	StateWaiting
	StateActing
	StateRemoved
)

// Entry is one scheduled turn: the actor and the timestamp at which it is
// due. Seq is a monotonic tie-breaker so that actors due at the same
// instant act in a deterministic order (spawn order initially, then
// first-acted-first among ties).
type Entry struct {
	Actor entity.ID
	Due   uint64
	Seq   uint64
}

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].Due != h[j].Due {
		return h[i].Due < h[j].Due
	}
	return h[i].Seq < h[j].Seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Scheduler orders actors by ascending due timestamp.
type Scheduler struct {
	h      entryHeap
	states map[entity.ID]State
	dues   map[entity.ID]uint64
	seqs   map[entity.ID]uint64 // current live entry per actor, for lazy deletion
	now    uint64
	seq    uint64
	acting entity.ID
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		states: make(map[entity.ID]State),
		dues:   make(map[entity.ID]uint64),
		seqs:   make(map[entity.ID]uint64),
	}
}

// Now returns the current schedule clock: the due timestamp of the most
// recently selected actor.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Len returns the number of scheduled actors.
func (s *Scheduler) Len() int {
	return len(s.dues)
}

// Contains reports whether the actor currently has a schedule entry.
func (s *Scheduler) Contains(id entity.ID) bool {
	_, ok := s.dues[id]
	return ok
}

// StateOf returns the actor's scheduling state.
func (s *Scheduler) StateOf(id entity.ID) State {
	return s.states[id]
}

// Add schedules a newly spawned actor at the current clock. A removed
// identity can never be re-added; removal is terminal.
func (s *Scheduler) Add(id entity.ID) error {
	if s.states[id] == StateRemoved {
		return fmt.Errorf("turn: actor %d was removed and cannot be rescheduled", id)
	}
	if _, ok := s.dues[id]; ok {
		return fmt.Errorf("turn: actor %d already scheduled", id)
	}
	s.push(id, s.now)
	s.states[id] = StateWaiting
	return nil
}

// AddAt schedules an actor at an explicit timestamp, used when restoring
// a saved schedule.
func (s *Scheduler) AddAt(id entity.ID, due uint64) error {
	if s.states[id] == StateRemoved {
		return fmt.Errorf("turn: actor %d was removed and cannot be rescheduled", id)
	}
	if _, ok := s.dues[id]; ok {
		return fmt.Errorf("turn: actor %d already scheduled", id)
	}
	s.push(id, due)
	s.states[id] = StateWaiting
	return nil
}

func (s *Scheduler) push(id entity.ID, due uint64) {
	s.seq++
	s.dues[id] = due
	s.seqs[id] = s.seq
	heap.Push(&s.h, Entry{Actor: id, Due: due, Seq: s.seq})
}

// Next pops the actor whose turn is now, advancing the clock to its due
// timestamp and transitioning it to Acting. Returns false when no actor
// is scheduled.
func (s *Scheduler) Next() (entity.ID, bool) {
	for s.h.Len() > 0 {
		e := heap.Pop(&s.h).(Entry)
		// Skip entries orphaned by removal.
		if s.states[e.Actor] != StateWaiting || s.seqs[e.Actor] != e.Seq {
			continue
		}
		s.now = e.Due
		s.acting = e.Actor
		s.states[e.Actor] = StateActing
		return e.Actor, true
	}
	return entity.None, false
}

// Acting returns the actor currently taking its turn, if any.
func (s *Scheduler) Acting() (entity.ID, bool) {
	if s.acting != entity.None && s.states[s.acting] == StateActing {
		return s.acting, true
	}
	return entity.None, false
}

// Reschedule places the acting actor back in the queue cost time units
// from now. Cost is clamped to at least one so timestamps are strictly
// increasing for every actor.
func (s *Scheduler) Reschedule(id entity.ID, cost uint64) error {
	if s.states[id] != StateActing {
		return fmt.Errorf("turn: actor %d is not acting", id)
	}
	if cost == 0 {
		cost = 1
	}
	s.push(id, s.now+cost)
	s.states[id] = StateWaiting
	if s.acting == id {
		s.acting = entity.None
	}
	return nil
}

// Remove drops the actor from the schedule permanently. Safe to call for
// actors that were never scheduled; the store calls this for every
// destroyed entity.
func (s *Scheduler) Remove(id entity.ID) {
	if _, ok := s.dues[id]; !ok && s.states[id] == StateUnknown {
		// Never scheduled: record removal anyway so it cannot be added later.
		s.states[id] = StateRemoved
		return
	}
	delete(s.dues, id)
	delete(s.seqs, id)
	s.states[id] = StateRemoved
	if s.acting == id {
		s.acting = entity.None
	}
}

// Entries returns the live schedule sorted by (due, seq), sufficient to
// resume the scheduler deterministically after a save/restore cycle.
func (s *Scheduler) Entries() []Entry {
	out := make([]Entry, 0, len(s.dues))
	for id, due := range s.dues {
		out = append(out, Entry{Actor: id, Due: due, Seq: s.seqs[id]})
	}
	sortEntries(out)
	return out
}

// Restore rebuilds a scheduler from a saved clock and entry list.
func Restore(now uint64, entries []Entry) *Scheduler {
	s := NewScheduler()
	s.now = now
	sortEntries(entries)
	for _, e := range entries {
		s.push(e.Actor, e.Due)
		s.states[e.Actor] = StateWaiting
	}
	return s
}

func sortEntries(entries []Entry) {
	// Insertion sort: schedules are small and this keeps ordering rules in
	// one place (due, then seq).
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0; j-- {
			a, b := entries[j-1], entries[j]
			if a.Due < b.Due || (a.Due == b.Due && a.Seq < b.Seq) {
				break
			}
			entries[j-1], entries[j] = b, a
		}
	}
}
