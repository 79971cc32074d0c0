package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/monsters/config"
	"github.com/pthm-cable/monsters/game"
	"github.com/pthm-cable/monsters/ui"
)

// pathList collects a repeatable string flag.
type pathList []string

func (p *pathList) String() string     { return strings.Join(*p, ",") }
func (p *pathList) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	// CLI flags
	var configPaths pathList
	flag.Var(&configPaths, "config", "Path to a config YAML file; repeat to layer files (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(configPaths...); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks, *stepsPerUpdate)
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Monsters")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Escape clears the selection

	g, err := game.New(cfg, nil, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer closeGame(g)

	app := ui.NewApp(g, *stepsPerUpdate)
	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
	g.LogWorldState()
}

// runHeadless runs the simulation without graphics until maxTicks or extinction.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks, stepsPerUpdate int) {
	g, err := game.New(cfg, nil, opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer closeGame(g)

	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", stepsPerUpdate,
	)

	for {
		g.Steps(stepsPerUpdate)

		if monsters, _ := g.Population(); monsters == 0 {
			slog.Info("population extinct", "tick", g.Tick())
			break
		}
		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	g.LogWorldState()
}

func closeGame(g *game.Game) {
	if err := g.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
