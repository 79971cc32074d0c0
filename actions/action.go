// Package actions defines the capabilities a monster's DNA is made of, the
// registry that maps DNA letters to them, and the basic action catalog.
package actions

import (
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/config"
	"github.com/pthm-cable/monsters/grid"
)

// Outcome is the result of attempting an action.
type Outcome uint8

const (
	// Performed means the action ran and mutated the world.
	Performed Outcome = iota
	// CannotPerform means the precondition was unmet and nothing changed.
	// It is ordinary control flow: the engine tries the next gene.
	CannotPerform
)

// String returns "performed" or "cannot_perform".
func (o Outcome) String() string {
	if o == Performed {
		return "performed"
	}
	return "cannot_perform"
}

// World is the view of the simulation that actions read and mutate.
// Board faults (out-of-bounds access, moving onto a live monster) panic.
type World interface {
	Rand() *rand.Rand
	Config() *config.Config

	// Neighbors returns the in-bounds cells adjacent to at.
	Neighbors(at grid.Coords) []grid.Coords
	// At returns the occupant of a cell; an empty cell yields KindEmpty.
	At(at grid.Coords) components.Occupant

	HP(e ecs.Entity) int
	Genome(e ecs.Entity) DNA
	Color(e ecs.Entity) components.Color

	// MoveMonster moves the monster at from onto to, eating any food there.
	MoveMonster(from, to grid.Coords)
	// ChangeHP adjusts the HP of the monster at at, turning it into food if HP drops to zero or below.
	ChangeHP(at grid.Coords, delta int)
	// SpawnChild places a new monster at at, replacing any food there.
	SpawnChild(parent ecs.Entity, at grid.Coords, dna DNA, hp int, color components.Color, mutated bool)
}

// Func is the behavior behind an action.
type Func func(w World, self ecs.Entity, at grid.Coords) Outcome

// Action is a named capability identified by a single uppercase letter.
// Actions are created by a Registry and never change afterwards.
type Action struct {
	name    string
	letter  byte
	perform Func
}

// Name returns the action name, e.g. "wander".
func (a *Action) Name() string { return a.name }

// Letter returns the DNA letter, e.g. 'W'.
func (a *Action) Letter() byte { return a.letter }

// Perform runs the action for the monster self standing at at.
func (a *Action) Perform(w World, self ecs.Entity, at grid.Coords) Outcome {
	return a.perform(w, self, at)
}

// String returns the action name.
func (a *Action) String() string { return a.name }

// DNA is an ordered list of actions tried in priority order each tick.
type DNA []*Action

// String encodes the DNA as its letters, e.g. "DWIAFEHR".
func (d DNA) String() string {
	var sb strings.Builder
	sb.Grow(len(d))
	for _, a := range d {
		sb.WriteByte(a.letter)
	}
	return sb.String()
}

// Clone returns an independent copy.
func (d DNA) Clone() DNA {
	out := make(DNA, len(d))
	copy(out, d)
	return out
}

// Transposed returns a copy with genes i and i+1 swapped.
func (d DNA) Transposed(i int) DNA {
	out := d.Clone()
	out[i], out[i+1] = out[i+1], out[i]
	return out
}
