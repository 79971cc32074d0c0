package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Board contents at window end
	Monsters int `csv:"monsters"`
	Food     int `csv:"food"`

	// Events during window
	Births           int `csv:"births"`
	Mutations        int `csv:"mutations"`
	DeathsMetabolism int `csv:"deaths_metabolism"`
	DeathsAttack     int `csv:"deaths_attack"`
	DeathsDivision   int `csv:"deaths_division"`
	Attacks          int `csv:"attacks"`
	Heals            int `csv:"heals"`
	Meals            int `csv:"meals"`
	Stalled          int `csv:"stalled"` // monster turns where no gene applied

	// Per-gene executions, e.g. "A=3;D=10;W=41"
	GeneExecutions string `csv:"gene_executions"`

	// HP distribution (sampled at window end)
	HPMean float64 `csv:"hp_mean"`
	HPStd  float64 `csv:"hp_std"`
	HPP10  float64 `csv:"hp_p10"`
	HPP50  float64 `csv:"hp_p50"`
	HPP90  float64 `csv:"hp_p90"`

	// Genome diversity
	DistinctGenomes int     `csv:"distinct_genomes"`
	DominantGenome  string  `csv:"dominant_genome"`
	DominantShare   float64 `csv:"dominant_share"`
	ActiveLineages  int     `csv:"active_lineages"`
}

// Deaths returns the total number of deaths in the window.
func (s WindowStats) Deaths() int {
	return s.DeathsMetabolism + s.DeathsAttack + s.DeathsDivision
}

// ComputeHPStats calculates mean, standard deviation and empirical
// percentiles from HP values. Empty input yields zeros.
func ComputeHPStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("monsters", s.Monsters),
		slog.Int("food", s.Food),
		slog.Int("births", s.Births),
		slog.Int("mutations", s.Mutations),
		slog.Int("deaths_metabolism", s.DeathsMetabolism),
		slog.Int("deaths_attack", s.DeathsAttack),
		slog.Int("deaths_division", s.DeathsDivision),
		slog.Int("attacks", s.Attacks),
		slog.Int("heals", s.Heals),
		slog.Int("meals", s.Meals),
		slog.Int("stalled", s.Stalled),
		slog.String("gene_executions", s.GeneExecutions),
		slog.Float64("hp_mean", s.HPMean),
		slog.Float64("hp_std", s.HPStd),
		slog.Float64("hp_p10", s.HPP10),
		slog.Float64("hp_p50", s.HPP50),
		slog.Float64("hp_p90", s.HPP90),
		slog.Int("distinct_genomes", s.DistinctGenomes),
		slog.String("dominant_genome", s.DominantGenome),
		slog.Float64("dominant_share", s.DominantShare),
		slog.Int("active_lineages", s.ActiveLineages),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"monsters", s.Monsters,
		"food", s.Food,
		"births", s.Births,
		"mutations", s.Mutations,
		"deaths", s.Deaths(),
		"deaths_attack", s.DeathsAttack,
		"attacks", s.Attacks,
		"heals", s.Heals,
		"meals", s.Meals,
		"stalled", s.Stalled,
		"genes", s.GeneExecutions,
		"hp_mean", s.HPMean,
		"hp_p50", s.HPP50,
		"distinct_genomes", s.DistinctGenomes,
		"dominant_genome", s.DominantGenome,
		"dominant_share", s.DominantShare,
		"active_lineages", s.ActiveLineages,
	)
}
