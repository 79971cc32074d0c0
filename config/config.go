// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Turn order policies.
const (
	TurnOrderRowMajor = "row_major"
	TurnOrderShuffled = "shuffled"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Board      BoardConfig      `yaml:"board"`
	Population PopulationConfig `yaml:"population"`
	Energy     EnergyConfig     `yaml:"energy"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Engine     EngineConfig     `yaml:"engine"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Names      NamesConfig      `yaml:"names"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	CellSize  int `yaml:"cell_size"` // Pixels per board cell at zoom 1
}

// BoardConfig holds board dimensions and neighborhood.
type BoardConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Adjacency string `yaml:"adjacency"` // cardinal, diagonal or all
}

// PopulationConfig holds world seeding parameters.
type PopulationConfig struct {
	InitialDNA     string  `yaml:"initial_dna"`  // Empty = shuffled full catalog
	InitialHP      int     `yaml:"initial_hp"`
	InitialColor   []int   `yaml:"initial_color,flow"`
	MonsterDensity float64 `yaml:"monster_density"` // Chance a cell starts with a monster
	FoodDensity    float64 `yaml:"food_density"`    // Chance a non-monster cell starts with food
	MaxMonsters    int     `yaml:"max_monsters"`    // 0 = board area
	MaxFood        int     `yaml:"max_food"`        // 0 = board area
}

// EnergyConfig holds HP deltas and thresholds used by actions and metabolism.
type EnergyConfig struct {
	FoodHPIncrease   int `yaml:"food_hp_increase"`   // Gained by stepping onto food
	RestHPIncrease   int `yaml:"rest_hp_increase"`   // Gained by resting
	HealHPIncrease   int `yaml:"heal_hp_increase"`   // Given to a healed neighbor
	RestMaxHP        int `yaml:"rest_max_hp"`        // Resting only works below this
	AttackHPDecrease int `yaml:"attack_hp_decrease"` // Damage dealt by an attack
	DivideMinHP      int `yaml:"divide_min_hp"`      // Minimum HP to divide
	HPLossPerTurn    int `yaml:"hp_loss_per_turn"`   // Metabolic decay per tick
}

// MutationConfig holds offspring mutation parameters.
type MutationConfig struct {
	Rate              float64 `yaml:"rate"`                // Probability a child mutates
	ColorChangeOffset int     `yaml:"color_change_offset"` // Shift applied to one color channel
}

// EngineConfig holds turn engine policies.
type EngineConfig struct {
	TurnOrder string `yaml:"turn_order"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	TopGenomes  int `yaml:"top_genomes"`  // Genomes reported by the census
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// NamesConfig holds the monster name source.
type NamesConfig struct {
	File string `yaml:"file"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxMonsters  int // Population.MaxMonsters with 0 resolved to board area
	MaxFood      int // Population.MaxFood with 0 resolved to board area
	InitialColor [3]uint8
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given paths, or uses embedded defaults if none.
// Must be called before Cfg().
func Init(paths ...string) error {
	cfg, err := Load(paths...)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(paths ...string) {
	if err := Init(paths...); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from YAML files, layered over the embedded defaults.
// Files are applied in order; each one overwrites only the fields it sets.
// Empty paths are skipped.
func Load(paths ...string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges that would otherwise surface as faults mid-run.
func (c *Config) Validate() error {
	var errs []error
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board: width and height must be positive, got %dx%d", c.Board.Width, c.Board.Height))
	}
	switch c.Board.Adjacency {
	case "", "cardinal", "diagonal", "all":
	default:
		errs = append(errs, fmt.Errorf("board: unknown adjacency %q", c.Board.Adjacency))
	}
	if !unit(c.Population.MonsterDensity) || !unit(c.Population.FoodDensity) {
		errs = append(errs, errors.New("population: densities must be within [0,1]"))
	}
	if c.Population.MaxMonsters < 0 || c.Population.MaxFood < 0 {
		errs = append(errs, errors.New("population: caps must not be negative"))
	}
	if len(c.Population.InitialColor) != 3 {
		errs = append(errs, fmt.Errorf("population: initial_color needs 3 channels, got %d", len(c.Population.InitialColor)))
	}
	for i, ch := range c.Population.InitialColor {
		if ch < 0 || ch > 255 {
			errs = append(errs, fmt.Errorf("population: initial_color[%d]=%d outside [0,255]", i, ch))
		}
	}
	if !unit(c.Mutation.Rate) {
		errs = append(errs, fmt.Errorf("mutation: rate %v outside [0,1]", c.Mutation.Rate))
	}
	switch c.Engine.TurnOrder {
	case "", TurnOrderRowMajor, TurnOrderShuffled:
	default:
		errs = append(errs, fmt.Errorf("engine: unknown turn_order %q", c.Engine.TurnOrder))
	}
	if c.Telemetry.StatsWindow < 0 {
		errs = append(errs, errors.New("telemetry: stats_window must not be negative"))
	}
	return errors.Join(errs...)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	area := c.Board.Width * c.Board.Height
	c.Derived.MaxMonsters = c.Population.MaxMonsters
	if c.Derived.MaxMonsters == 0 {
		c.Derived.MaxMonsters = area
	}
	c.Derived.MaxFood = c.Population.MaxFood
	if c.Derived.MaxFood == 0 {
		c.Derived.MaxFood = area
	}
	for i := 0; i < 3 && i < len(c.Population.InitialColor); i++ {
		c.Derived.InitialColor[i] = uint8(c.Population.InitialColor[i])
	}
}

// Clone returns a deep copy with derived values recomputed.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Population.InitialColor = append([]int(nil), c.Population.InitialColor...)
	cp.computeDerived()
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
