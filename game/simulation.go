package game

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/actions"
	"github.com/pthm-cable/monsters/config"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/telemetry"
)

// turnEntry is one monster in the tick's turn order.
type turnEntry struct {
	e  ecs.Entity
	at grid.Coords
}

// OneStep advances the simulation by one tick. Every monster alive at the
// start of the tick gets exactly one turn: it loses energy.hp_loss_per_turn
// and, if still alive, runs the first gene of its DNA whose precondition holds.
// Effects apply immediately, so a monster killed earlier in the tick is skipped.
func (g *Game) OneStep() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSnapshot)
	order := g.turnOrder()

	g.perf.StartPhase(telemetry.PhaseTurns)
	for _, entry := range order {
		g.runTurn(entry.e)
	}
	g.perf.AddTurns(len(order))
	g.tick++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
}

// Steps runs n ticks.
func (g *Game) Steps(n int) {
	for i := 0; i < n; i++ {
		g.OneStep()
	}
}

// turnOrder snapshots the living monsters. Row-major order sorts by row,
// then column; shuffled order permutes that with the simulation RNG.
func (g *Game) turnOrder() []turnEntry {
	order := make([]turnEntry, 0, g.monsters)

	query := g.turnFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		order = append(order, turnEntry{e: query.Entity(), at: pos.At})
	}

	slices.SortFunc(order, func(a, b turnEntry) int {
		if c := cmp.Compare(a.at.Y, b.at.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.at.X, b.at.X)
	})

	if g.cfg.Engine.TurnOrder == config.TurnOrderShuffled {
		g.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}

// runTurn plays one monster's turn if it is still alive.
func (g *Game) runTurn(e ecs.Entity) {
	if !g.world.Alive(e) {
		return
	}
	at := g.posMap.Get(e).At

	g.turn = turnState{phase: phaseMetabolism, self: e}
	defer func() { g.turn = turnState{} }()

	g.changeHP(e, at, -g.cfg.Energy.HPLossPerTurn, telemetry.CauseMetabolism)
	if !g.world.Alive(e) {
		return
	}

	g.turn.phase = phaseAction
	for _, gene := range g.Genome(e) {
		if gene.Perform(g, e, at) == actions.Performed {
			g.collector.RecordGene(gene.Letter())
			return
		}
	}
	g.collector.RecordStalled()
}
