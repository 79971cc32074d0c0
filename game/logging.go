package game

import (
	"log/slog"

	"github.com/pthm-cable/monsters/telemetry"
)

// LogWorldState logs a one-line summary of the board: population, HP spread
// and the most common genomes.
func (g *Game) LogWorldState() {
	s := g.sample()
	mean, _, p10, p50, p90 := telemetry.ComputeHPStats(s.HP)
	census := telemetry.TakeCensus(g.tick, s.Genomes, 3)

	attrs := []any{
		"tick", g.tick,
		"monsters", s.Monsters,
		"food", s.Food,
		"hp_mean", mean,
		"hp_p10", p10,
		"hp_p50", p50,
		"hp_p90", p90,
		"distinct_genomes", census.Distinct,
		"lineages", s.ActiveLineages,
	}
	for _, row := range census.Top {
		attrs = append(attrs, row.Genome, row.Count)
	}
	slog.Info("world", attrs...)
}

// Census counts the genomes of the living monsters, keeping the topN most common.
func (g *Game) Census(topN int) telemetry.Census {
	return telemetry.TakeCensus(g.tick, g.sample().Genomes, topN)
}
