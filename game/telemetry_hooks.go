package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/telemetry"
)

// flushTelemetry flushes the stats window when it is due and handles bookmarks.
func (g *Game) flushTelemetry() {
	if g.cfg.Telemetry.StatsWindow <= 0 || !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats, census := g.collector.Flush(g.tick, g.sample(), g.cfg.Telemetry.TopGenomes)
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		census.LogCensus()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WriteCensus(census); err != nil {
			slog.Error("failed to write census", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample measures the living population for a stats window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		Monsters:       g.monsters,
		Food:           g.food,
		HP:             make([]float64, 0, g.monsters),
		Genomes:        make([]string, 0, g.monsters),
		ActiveLineages: g.lifetimes.ActiveLineageCount(),
	}

	query := g.turnFilter.Query()
	for query.Next() {
		_, health := query.Get()
		s.HP = append(s.HP, float64(health.HP))
		s.Genomes = append(s.Genomes, g.Genome(query.Entity()).String())
	}
	return s
}

// recordMeal counts food eaten by e; gain is the HP it brought.
func (g *Game) recordMeal(e ecs.Entity, gain int) {
	g.collector.RecordMeal()
	id := g.lineageMap.Get(e).ID
	g.lifetimes.RecordMeal(id)
	if g.obsMap.Get(e).Followed {
		g.emit(e, telemetry.NewMealEvent(g.tick, id, gain))
	}
}

// recordInteraction counts an HP change actor caused on a different monster.
func (g *Game) recordInteraction(actor, target ecs.Entity, delta int) {
	actorID := g.lineageMap.Get(actor).ID
	targetID := g.lineageMap.Get(target).ID

	var ev telemetry.Event
	if delta < 0 {
		g.collector.RecordAttack()
		g.lifetimes.RecordAttack(actorID)
		ev = telemetry.NewAttackedEvent(g.tick, targetID, actorID, -delta)
	} else {
		g.collector.RecordHeal()
		g.lifetimes.RecordHeal(actorID)
		ev = telemetry.NewHealedEvent(g.tick, targetID, actorID, delta)
	}
	if g.obsMap.Get(target).Followed {
		g.emit(target, ev)
	}
}

// emit logs an event about a followed monster.
func (g *Game) emit(e ecs.Entity, ev telemetry.Event) {
	ev.Name = g.obsMap.Get(e).Name
	ev.LogEvent()
}
