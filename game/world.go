package game

import (
	"fmt"
	"iter"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/actions"
	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/telemetry"
)

// OccupiedError is the panic value raised when an operation would overwrite a live monster.
type OccupiedError struct {
	Op string
	At grid.Coords
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("game: %s: cell %s already holds a monster", e.Op, e.At)
}

// VacantError is the panic value raised when an operation needs a monster at a cell that has none.
type VacantError struct {
	Op string
	At grid.Coords
}

func (e *VacantError) Error() string {
	return fmt.Sprintf("game: %s: no monster at %s", e.Op, e.At)
}

type turnPhase uint8

const (
	phaseIdle turnPhase = iota
	phaseMetabolism
	phaseAction
)

// turnState describes the monster whose turn is running.
type turnState struct {
	phase turnPhase
	self  ecs.Entity
}

// Get returns the occupant at at, or false for an empty cell.
func (g *Game) Get(at grid.Coords) (components.Occupant, bool) {
	return g.board.Get(at)
}

// At returns the occupant at at; an empty cell yields KindEmpty.
func (g *Game) At(at grid.Coords) components.Occupant {
	occ, _ := g.board.Get(at)
	return occ
}

// Neighbors returns the in-bounds cells adjacent to at under the configured adjacency.
func (g *Game) Neighbors(at grid.Coords) []grid.Coords {
	return g.board.Neighbors(at)
}

// Cells iterates over every non-empty cell in unspecified order.
// The board must not be modified during iteration.
func (g *Game) Cells() iter.Seq2[grid.Coords, components.Occupant] {
	return g.board.All()
}

// HP returns the hit points of a monster.
func (g *Game) HP(e ecs.Entity) int {
	return g.healthMap.Get(e).HP
}

// Genome returns a monster's DNA. Callers must not modify it.
func (g *Game) Genome(e ecs.Entity) actions.DNA {
	return *g.dnaMap.Get(e)
}

// Color returns a monster's color.
func (g *Game) Color(e ecs.Entity) components.Color {
	return g.lookMap.Get(e).Color
}

// monsterAt returns the monster at at, panicking with *VacantError if there is none.
func (g *Game) monsterAt(op string, at grid.Coords) ecs.Entity {
	occ, _ := g.board.Get(at)
	if !occ.IsMonster() {
		panic(&VacantError{Op: op, At: at})
	}
	return occ.Monster
}

// MoveMonster moves the monster at from onto to. Food at to is eaten and
// adds energy.food_hp_increase. A monster at to is a fault.
func (g *Game) MoveMonster(from, to grid.Coords) {
	e := g.monsterAt("move", from)
	dest, _ := g.board.Get(to)
	if dest.IsMonster() {
		panic(&OccupiedError{Op: "move", At: to})
	}

	if dest.IsFood() {
		gain := g.cfg.Energy.FoodHPIncrease
		health := g.healthMap.Get(e)
		health.HP += gain
		g.food--
		g.recordMeal(e, gain)
	}

	g.board.Remove(from)
	g.board.Set(to, components.MonsterOccupant(e))
	g.posMap.Get(e).At = to
}

// ChangeHP adds delta to the HP of the monster at at. If HP drops to zero
// or below the monster is replaced by food at once.
func (g *Game) ChangeHP(at grid.Coords, delta int) {
	e := g.monsterAt("change hp", at)

	cause := telemetry.CauseAttack
	switch {
	case g.turn.phase == phaseMetabolism:
		cause = telemetry.CauseMetabolism
	case g.turn.phase == phaseAction && e == g.turn.self:
		if delta < 0 {
			cause = telemetry.CauseDivision
		}
	case g.turn.phase == phaseAction:
		g.recordInteraction(g.turn.self, e, delta)
	}

	g.changeHP(e, at, delta, cause)
}

// changeHP applies delta and handles death.
func (g *Game) changeHP(e ecs.Entity, at grid.Coords, delta int, cause telemetry.DeathCause) {
	health := g.healthMap.Get(e)
	health.HP += delta
	if health.HP <= 0 {
		g.kill(e, at, cause)
		return
	}
	g.lifetimes.UpdateHP(g.lineageMap.Get(e).ID, health.HP)
}

// SpawnChild places a new monster descended from parent at at, replacing any food.
// A monster at at is a fault. A child starting with HP at or below zero dies at once.
func (g *Game) SpawnChild(parent ecs.Entity, at grid.Coords, dna actions.DNA, hp int, color components.Color, mutated bool) {
	occ, _ := g.board.Get(at)
	if occ.IsMonster() {
		panic(&OccupiedError{Op: "spawn child", At: at})
	}

	pl := *g.lineageMap.Get(parent)
	lineage := components.Lineage{
		ParentID:   pl.ID,
		FounderID:  pl.FounderID,
		Generation: pl.Generation + 1,
	}
	child := g.place(at, dna, hp, color, lineage)
	if occ.IsFood() {
		g.recordMeal(child, 0)
	}

	g.collector.RecordBirth(mutated)
	g.lifetimes.RecordChild(pl.ID)
	childID := g.lineageMap.Get(child).ID
	if obs := g.obsMap.Get(parent); obs.Followed {
		g.emit(parent, telemetry.NewBirthEvent(g.tick, pl.ID, childID, hp))
	}

	if hp <= 0 {
		g.kill(child, at, telemetry.CauseDivision)
	}
}
