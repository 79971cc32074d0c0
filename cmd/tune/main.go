// Package main searches simulation parameters with CMA-ES for populations
// that survive long and stay diverse.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/monsters/config"
)

// pathList collects a repeatable string flag.
type pathList []string

func (p *pathList) String() string     { return strings.Join(*p, ",") }
func (p *pathList) Set(v string) error { *p = append(*p, v); return nil }

// evalRecord is one row of tune_log.csv.
type evalRecord struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	Quality          float64 `csv:"quality"`
	FoodHPIncrease   float64 `csv:"food_hp_increase"`
	HPLossPerTurn    float64 `csv:"hp_loss_per_turn"`
	DivideMinHP      float64 `csv:"divide_min_hp"`
	AttackHPDecrease float64 `csv:"attack_hp_decrease"`
	MutationRate     float64 `csv:"mutation_rate"`
}

func newEvalRecord(eval int, fitness, quality float64, v []float64) evalRecord {
	return evalRecord{
		Eval:             eval,
		Fitness:          fitness,
		Quality:          quality,
		FoodHPIncrease:   v[0],
		HPLossPerTurn:    v[1],
		DivideMinHP:      v[2],
		AttackHPDecrease: v[3],
		MutationRate:     v[4],
	}
}

// evalLog appends evaluation rows, writing the header with the first one.
type evalLog struct {
	f             *os.File
	headerWritten bool
}

func (l *evalLog) write(r evalRecord) error {
	rows := []evalRecord{r}
	if !l.headerWritten {
		l.headerWritten = true
		return gocsv.Marshal(rows, l.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, l.f)
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	var configPaths pathList
	flag.Var(&configPaths, "config", "Base config YAML file; repeat to layer files (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 5000, "Maximum simulation duration in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *seeds < 1 {
		log.Fatal("--seeds must be at least 1")
	}

	// Each run logs its seeding; keep only warnings
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(configPaths...)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(baseCfg, params, *maxTicks, evalSeeds)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	evals := &evalLog{f: logFile}

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Values actually used by the runs
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			quality := evaluator.LastQuality()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			if err := evals.write(newEvalRecord(evalCount, fitness, quality, clamped)); err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(*maxEvals-evalCount, 0)) * avgPerEval

			// Fitness = -(survival × (1 + 0.2×quality)) with survival as a share of max ticks
			survival := -fitness / (1 + qualityWeight*quality) * float64(*maxTicks)
			fmt.Printf("Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, survival, quality, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES tuning with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("tuning ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %g\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
