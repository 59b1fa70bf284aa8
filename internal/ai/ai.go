// Package ai provides decision policies for non-player actors. Policies
// register themselves in init() functions, so the game layer can look up
// an actor's Brain by name without hardcoded dependencies. A policy is
// synchronous and never blocks: it always returns an action, falling back
// to a wait when nothing better is available.
package ai

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/torvik/delve/internal/action"
	"github.com/torvik/delve/internal/entity"
	"github.com/torvik/delve/internal/gamemap"
	"github.com/torvik/delve/internal/vision"
)

// View is the read-only world snapshot a policy decides from. Rand is the
// world's RNG, so decisions are deterministic for a given seed. Radius is
// the actor's sight radius.
type View struct {
	Map    *gamemap.Map
	Store  *entity.Store
	Vision *vision.Engine
	Rand   *rand.Rand
	Radius int
}

// Policy decides one actor's turn. Invoked at most once per scheduled
// turn; the returned action goes through the same resolver path as player
// input.
type Policy interface {
	Name() string
	Decide(v View, actor entity.ID) action.Action
}

var (
	policies = make(map[string]Policy)
	mu       sync.RWMutex
)

// Register adds a policy under its name. Typically called from an init()
// function. Panics on duplicate registration.
func Register(p Policy) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := policies[p.Name()]; exists {
		panic(fmt.Sprintf("ai: policy %q already registered", p.Name()))
	}
	policies[p.Name()] = p
}

// Lookup returns the policy registered under name.
func Lookup(name string) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("ai: unknown policy %q", name)
	}
	return p, nil
}

// List returns the registered policy names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
