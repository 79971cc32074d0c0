package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/monsters/config"
	"github.com/pthm-cable/monsters/game"
	"github.com/pthm-cable/monsters/telemetry"
)

// Fitness weights
const (
	qualityWeight = 0.2 // Scales the quality bonus on top of survival
	warmupWindows = 2   // Stats windows ignored before quality is measured
)

// FitnessEvaluator runs simulations and computes fitness scores.
type FitnessEvaluator struct {
	baseCfg  *config.Config
	params   *ParamVector
	maxTicks int
	seeds    []int64

	lastQuality float64
}

// NewFitnessEvaluator creates a new fitness evaluator.
func NewFitnessEvaluator(baseCfg *config.Config, params *ParamVector, maxTicks int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		baseCfg:  baseCfg,
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
	}
}

// RunResult holds the outcome of a single simulation run.
type RunResult struct {
	SurvivalTicks int
	Windows       []telemetry.WindowStats
	Err           error
}

// Evaluate computes the fitness for a parameter vector.
// Lower values are better; optimize.Minimize expects a cost.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]RunResult, len(fe.seeds))

	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			cfg := fe.baseCfg.Clone()
			fe.params.ApplyToConfig(cfg, x)
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total, quality float64
	for _, r := range results {
		total += computeFitness(r, fe.maxTicks)
		quality += computeQuality(r.Windows)
	}
	fe.lastQuality = quality / float64(len(results))
	return total / float64(len(results))
}

// LastQuality returns the mean quality of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	return fe.lastQuality
}

// runSimulation runs a headless simulation and collects its window stats.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) RunResult {
	var windows []telemetry.WindowStats
	g, err := game.New(cfg, nil, game.Options{
		Seed: seed,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		return RunResult{Err: err}
	}
	defer g.Close()

	survival := fe.maxTicks
	for tick := 0; tick < fe.maxTicks; tick++ {
		g.OneStep()
		if monsters, _ := g.Population(); monsters == 0 {
			survival = tick + 1
			break
		}
	}

	return RunResult{SurvivalTicks: survival, Windows: windows}
}

// computeFitness scores one run. A run that failed to start scores zero.
func computeFitness(r RunResult, maxTicks int) float64 {
	if r.Err != nil || maxTicks <= 0 {
		return 0
	}
	survival := float64(r.SurvivalTicks) / float64(maxTicks)
	return -(survival * (1 + qualityWeight*computeQuality(r.Windows)))
}

// computeQuality rewards diverse, stable, well-occupied populations.
// The result is in [0,1].
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}
	windows = windows[warmupWindows:]

	pop := make([]float64, len(windows))
	var diversity, occupancy float64
	for i, w := range windows {
		pop[i] = float64(w.Monsters)
		diversity += 1 - w.DominantShare
		if cells := w.Monsters + w.Food; cells > 0 {
			occupancy += float64(w.Monsters) / float64(cells)
		}
	}
	n := float64(len(windows))
	diversity /= n
	occupancy /= n

	stability := 1 - clamp01(cv(pop))

	return clamp01((diversity + stability + occupancy) / 3)
}

// cv returns the coefficient of variation, or 0 for a zero mean.
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / math.Abs(mean)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
