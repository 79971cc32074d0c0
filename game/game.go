// Package game runs the monster simulation: the board, the monsters that live
// on it as ECS entities, and the turn engine that advances them one tick at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/actions"
	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/config"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/telemetry"
)

// Options holds optional simulation parameters.
type Options struct {
	Seed          int64                       // RNG seed; every random choice derives from it
	Names         []string                    // Name pool; nil = names.file or the embedded list
	LogStats      bool                        // Log window stats and perf via slog
	OutputDir     string                      // Directory for CSV output (empty = disabled)
	StatsCallback func(telemetry.WindowStats) // Called on each stats window flush
	Empty         bool                        // Skip random seeding; the caller places monsters and food
}

// Game is a running simulation: the board, the monsters on it and the turn engine.
// It is not safe for concurrent use.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	registry *actions.Registry
	board    *grid.Board[components.Occupant]

	// Entity mappers
	monsterMapper *ecs.Map6[
		actions.DNA,
		components.Health,
		components.Appearance,
		components.Observation,
		components.Lineage,
		components.Position,
	]
	turnFilter *ecs.Filter2[components.Position, components.Health]

	// Individual component mappers for lookups
	dnaMap     *ecs.Map1[actions.DNA]
	healthMap  *ecs.Map1[components.Health]
	lookMap    *ecs.Map1[components.Appearance]
	obsMap     *ecs.Map1[components.Observation]
	lineageMap *ecs.Map1[components.Lineage]
	posMap     *ecs.Map1[components.Position]

	names *namePool

	// State
	tick     int64
	nextID   uint64
	monsters int
	food     int
	turn     turnState

	// Telemetry
	collector     *telemetry.Collector
	lifetimes     *telemetry.LifetimeTracker
	perf          *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// New creates a simulation from cfg and seeds the board.
// cfg is copied; a nil registry means the basic action catalog.
// An unknown letter in population.initial_dna is reported as *actions.UnknownGeneError.
func New(cfg *config.Config, registry *actions.Registry, opts Options) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = actions.Default()
	}

	adjacency, _ := grid.Adjacency(cfg.Board.Adjacency)
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	names := opts.Names
	if names == nil {
		var err error
		if names, err = loadNames(cfg.Names.File); err != nil {
			return nil, err
		}
	}

	g := &Game{
		world:    world,
		rng:      rng,
		cfg:      cfg,
		registry: registry,
		board:    grid.NewBoard[components.Occupant](cfg.Board.Width, cfg.Board.Height, adjacency),
		monsterMapper: ecs.NewMap6[
			actions.DNA,
			components.Health,
			components.Appearance,
			components.Observation,
			components.Lineage,
			components.Position,
		](world),
		turnFilter: ecs.NewFilter2[components.Position, components.Health](world),
		dnaMap:     ecs.NewMap1[actions.DNA](world),
		healthMap:  ecs.NewMap1[components.Health](world),
		lookMap:    ecs.NewMap1[components.Appearance](world),
		obsMap:     ecs.NewMap1[components.Observation](world),
		lineageMap: ecs.NewMap1[components.Lineage](world),
		posMap:     ecs.NewMap1[components.Position](world),
		names:      newNamePool(names, rng),
		nextID:     1,

		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetimes:     telemetry.NewLifetimeTracker(),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !opts.Empty {
		if err := g.seedBoard(); err != nil {
			g.output.Close()
			return nil, err
		}
		slog.Info("simulation seeded",
			"seed", opts.Seed,
			"width", cfg.Board.Width,
			"height", cfg.Board.Height,
			"monsters", g.monsters,
			"food", g.food,
		)
	}

	return g, nil
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int64 {
	return g.tick
}

// Rand returns the simulation's random source.
func (g *Game) Rand() *rand.Rand {
	return g.rng
}

// Config returns the simulation's configuration. Callers must not modify it.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Registry returns the action catalog DNA is decoded against.
func (g *Game) Registry() *actions.Registry {
	return g.registry
}

// Width returns the board width in cells.
func (g *Game) Width() int { return g.board.Width() }

// Height returns the board height in cells.
func (g *Game) Height() int { return g.board.Height() }

// Population returns the number of monsters and food cells on the board.
func (g *Game) Population() (monsters, food int) {
	return g.monsters, g.food
}

// Perf returns the tick timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// Close flushes and closes run output.
func (g *Game) Close() error {
	return g.output.Close()
}
