package game

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/actions"
	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/config"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/telemetry"
)

// harness is an empty game that records the stats of every tick.
type harness struct {
	*Game
	last telemetry.WindowStats
}

func newHarness(t *testing.T, w, h int, tweak func(cfg *config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = w, h
	cfg.Mutation.Rate = 0
	cfg.Telemetry.StatsWindow = 1
	if tweak != nil {
		tweak(cfg)
	}

	hs := &harness{}
	g, err := New(cfg, nil, Options{
		Seed:          1,
		Empty:         true,
		Names:         []string{"Ada"},
		StatsCallback: func(s telemetry.WindowStats) { hs.last = s },
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	hs.Game = g
	return hs
}

func (h *harness) spawn(x, y int, dna string, hp int) ecs.Entity {
	return h.SpawnMonster(grid.C(x, y), h.Registry().MustDecode(dna), hp, components.Gray)
}

func (h *harness) kind(x, y int) components.Kind {
	return h.At(grid.C(x, y)).Kind
}

func expectPanic[E error](t *testing.T, name string, fn func()) E {
	t.Helper()
	var got E
	func() {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.As(err, &got) {
				t.Errorf("%s: expected %T panic, got %v", name, got, r)
			}
		}()
		fn()
	}()
	return got
}

func TestWanderOntoOnlyEmptyNeighbor(t *testing.T) {
	h := newHarness(t, 3, 1, nil)
	e := h.spawn(0, 0, "W", 200)
	h.PlaceFood(grid.C(2, 0))

	h.OneStep()

	m, ok := h.Monster(e)
	if !ok {
		t.Fatal("monster should be alive")
	}
	if m.At != grid.C(1, 0) {
		t.Errorf("expected monster at (1,0), got %s", m.At)
	}
	if m.HP != 180 {
		t.Errorf("expected HP 180, got %d", m.HP)
	}
	if h.kind(0, 0) != components.KindEmpty || h.kind(2, 0) != components.KindFood {
		t.Errorf("unexpected board: (0,0)=%s (2,0)=%s", h.kind(0, 0), h.kind(2, 0))
	}
}

func TestMetabolismKillsBeforeActing(t *testing.T) {
	h := newHarness(t, 3, 1, nil)
	e := h.spawn(0, 0, "W", 20)
	h.PlaceFood(grid.C(2, 0))

	h.OneStep()

	if _, ok := h.Monster(e); ok {
		t.Fatal("monster should be dead")
	}
	if h.kind(0, 0) != components.KindFood {
		t.Errorf("dead monster should become food, got %s", h.kind(0, 0))
	}
	if h.kind(1, 0) != components.KindEmpty {
		t.Error("dead monster must not move")
	}
	monsters, food := h.Population()
	if monsters != 0 || food != 2 {
		t.Errorf("expected 0 monsters and 2 food, got %d/%d", monsters, food)
	}
	if h.last.DeathsMetabolism != 1 {
		t.Errorf("expected a metabolism death, got %+v", h.last)
	}
}

func TestDivideBelowThresholdFallsThroughToIdle(t *testing.T) {
	h := newHarness(t, 3, 3, nil)
	e := h.spawn(1, 1, "DI", 60)

	h.OneStep()

	m, _ := h.Monster(e)
	if m.HP != 40 || m.At != grid.C(1, 1) {
		t.Errorf("expected HP 40 at (1,1), got %d at %s", m.HP, m.At)
	}
	if monsters, _ := h.Population(); monsters != 1 {
		t.Errorf("no child expected, got %d monsters", monsters)
	}
	if h.last.GeneExecutions != "I=1" {
		t.Errorf("expected idle to run, got %q", h.last.GeneExecutions)
	}
}

func TestIdleBlocksLaterGenes(t *testing.T) {
	h := newHarness(t, 3, 3, nil)
	e := h.spawn(1, 1, "IWE", 200)
	h.PlaceFood(grid.C(1, 0))

	for i := 0; i < 3; i++ {
		h.OneStep()
	}

	m, _ := h.Monster(e)
	if m.At != grid.C(1, 1) || m.HP != 140 {
		t.Errorf("idle monster moved or ate: %s", m)
	}
}

func TestFirstApplicableGeneWins(t *testing.T) {
	h := newHarness(t, 3, 1, nil)
	e := h.spawn(0, 0, "EWI", 200)
	h.PlaceFood(grid.C(1, 0))

	h.OneStep()

	m, _ := h.Monster(e)
	if m.At != grid.C(1, 0) {
		t.Errorf("expected eat to move onto food, got %s", m.At)
	}
	if m.HP != 200-20+130 {
		t.Errorf("expected HP %d, got %d", 200-20+130, m.HP)
	}
	if _, food := h.Population(); food != 0 {
		t.Errorf("food should be consumed, %d left", food)
	}
	if h.last.Meals != 1 || h.last.GeneExecutions != "E=1" {
		t.Errorf("unexpected stats: %+v", h.last)
	}
}

func TestStalledMonsterDoesNothing(t *testing.T) {
	h := newHarness(t, 1, 1, nil)
	e := h.spawn(0, 0, "DWFEAH", 200)

	h.OneStep()

	m, _ := h.Monster(e)
	if m.HP != 180 {
		t.Errorf("expected only metabolic loss, got HP %d", m.HP)
	}
	if h.last.Stalled != 1 || h.last.GeneExecutions != "" {
		t.Errorf("expected a stalled turn, got %+v", h.last)
	}
}

func TestDivideHalvesHP(t *testing.T) {
	tests := []struct {
		name        string
		food        bool
		wantChildHP int
	}{
		{"empty destination", false, 90},
		{"food destination", true, 90 + 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 2, 1, nil)
			parent := h.spawn(0, 0, "DI", 201)
			if tt.food {
				h.PlaceFood(grid.C(1, 0))
			}

			h.OneStep()

			p, _ := h.Monster(parent)
			if p.HP != 91 {
				t.Errorf("parent HP = %d, want 91", p.HP)
			}
			occ := h.At(grid.C(1, 0))
			if !occ.IsMonster() {
				t.Fatalf("expected child at (1,0), got %s", occ.Kind)
			}
			child, _ := h.Monster(occ.Monster)
			if child.HP != tt.wantChildHP {
				t.Errorf("child HP = %d, want %d", child.HP, tt.wantChildHP)
			}
			if child.DNA != p.DNA || child.Color != p.Color {
				t.Errorf("unmutated child should match parent: %s vs %s", child, p)
			}
			if child.Lineage.ParentID != p.Lineage.ID || child.Lineage.Generation != 1 {
				t.Errorf("unexpected lineage %+v", child.Lineage)
			}
			if child.Lineage.FounderID != p.Lineage.ID {
				t.Errorf("child founder = %d, want %d", child.Lineage.FounderID, p.Lineage.ID)
			}
			if _, food := h.Population(); food != 0 {
				t.Errorf("child should overwrite food, %d left", food)
			}
			if h.last.Births != 1 || h.last.Mutations != 0 {
				t.Errorf("unexpected stats: %+v", h.last)
			}
		})
	}
}

func TestChildDoesNotActInBirthTick(t *testing.T) {
	h := newHarness(t, 2, 1, nil)
	h.spawn(1, 0, "D", 200)

	h.OneStep()

	child := h.At(grid.C(0, 0))
	if !child.IsMonster() {
		t.Fatal("expected a child at (0,0)")
	}
	m, _ := h.Monster(child.Monster)
	if m.HP != 90 {
		t.Errorf("child should not lose HP in its birth tick, got %d", m.HP)
	}
}

func TestDivideMutation(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		cfg := config.Default()
		cfg.Board.Width, cfg.Board.Height = 2, 1
		cfg.Mutation.Rate = 1
		g, err := New(cfg, nil, Options{Seed: seed, Empty: true})
		if err != nil {
			t.Fatal(err)
		}
		parent := g.SpawnMonster(grid.C(0, 0), g.Registry().MustDecode("DWIA"), 200, components.Gray)

		g.OneStep()

		p, _ := g.Monster(parent)
		c, _ := g.Monster(g.At(grid.C(1, 0)).Monster)
		if p.DNA != "DWIA" {
			t.Fatalf("seed %d: parent DNA changed to %s", seed, p.DNA)
		}
		diff := 0
		for i := range p.DNA {
			if p.DNA[i] != c.DNA[i] {
				diff++
			}
		}
		if diff != 2 {
			t.Errorf("seed %d: expected one transposition, got %s -> %s", seed, p.DNA, c.DNA)
		}

		changed := 0
		for ch := 0; ch < 3; ch++ {
			d := int(c.Color.Channel(ch)) - int(p.Color.Channel(ch))
			if d != 0 {
				changed++
				if d != 30 && d != -30 {
					t.Errorf("seed %d: channel %d shifted by %d", seed, ch, d)
				}
			}
		}
		if changed != 1 {
			t.Errorf("seed %d: expected one channel changed, got %d", seed, changed)
		}
	}
}

func TestAttackOnlyAdjacent(t *testing.T) {
	h := newHarness(t, 5, 1, nil)
	h.spawn(0, 0, "A", 200)
	victim := h.spawn(1, 0, "I", 200)
	far := h.spawn(3, 0, "I", 200)

	h.OneStep()

	v, _ := h.Monster(victim)
	f, _ := h.Monster(far)
	if v.HP != 200-50-20 {
		t.Errorf("victim HP = %d, want %d", v.HP, 200-50-20)
	}
	if f.HP != 180 {
		t.Errorf("non-adjacent monster HP = %d, want 180", f.HP)
	}
	if h.last.Attacks != 1 {
		t.Errorf("expected one attack, got %d", h.last.Attacks)
	}
}

func TestKilledMonsterSkipsItsTurn(t *testing.T) {
	h := newHarness(t, 3, 1, nil)
	h.spawn(0, 0, "A", 200)
	victim := h.spawn(1, 0, "W", 40)

	h.OneStep()

	if _, ok := h.Monster(victim); ok {
		t.Fatal("victim should be dead")
	}
	if h.kind(1, 0) != components.KindFood || h.kind(2, 0) != components.KindEmpty {
		t.Errorf("victim should have become food without moving: (1,0)=%s (2,0)=%s", h.kind(1, 0), h.kind(2, 0))
	}
	if h.last.DeathsAttack != 1 || h.last.GeneExecutions != "A=1" {
		t.Errorf("unexpected stats: %+v", h.last)
	}
}

func TestRestAndHeal(t *testing.T) {
	h := newHarness(t, 4, 1, nil)
	rester := h.spawn(3, 0, "R", 190)
	healer := h.spawn(0, 0, "H", 300)
	patient := h.spawn(1, 0, "I", 100)

	h.OneStep()

	if m, _ := h.Monster(rester); m.HP != 190-20+15 {
		t.Errorf("rester HP = %d, want %d", m.HP, 190-20+15)
	}
	if m, _ := h.Monster(healer); m.HP != 280 {
		t.Errorf("healer HP = %d, want 280", m.HP)
	}
	if m, _ := h.Monster(patient); m.HP != 100+21-20 {
		t.Errorf("patient HP = %d, want %d", m.HP, 100+21-20)
	}
	if h.last.Heals != 1 {
		t.Errorf("expected one heal, got %d", h.last.Heals)
	}
}

func TestRestCeiling(t *testing.T) {
	h := newHarness(t, 1, 1, nil)
	e := h.spawn(0, 0, "RI", 221)

	h.OneStep() // 201: above the ceiling, idle runs
	h.OneStep() // 181: rest runs and may overshoot to 196
	m, _ := h.Monster(e)
	if m.HP != 196 {
		t.Errorf("HP = %d, want 196", m.HP)
	}
	if h.last.GeneExecutions != "R=1" {
		t.Errorf("expected rest, got %q", h.last.GeneExecutions)
	}
}

func TestFleeNeedsAdjacentMonster(t *testing.T) {
	h := newHarness(t, 3, 3, nil)
	e := h.spawn(1, 1, "FI", 200)

	h.OneStep()
	if m, _ := h.Monster(e); m.At != grid.C(1, 1) {
		t.Fatalf("lone monster should not flee, moved to %s", m.At)
	}

	h.spawn(1, 0, "I", 200)
	h.OneStep()
	m, _ := h.Monster(e)
	if m.At == grid.C(1, 1) || m.At == grid.C(1, 0) {
		t.Errorf("expected flee to an open neighbor, at %s", m.At)
	}
}

func TestBoardFaults(t *testing.T) {
	h := newHarness(t, 3, 2, nil)
	a := h.spawn(0, 0, "I", 100)
	h.spawn(1, 0, "I", 100)

	expectPanic[*OccupiedError](t, "move onto monster", func() { h.MoveMonster(grid.C(0, 0), grid.C(1, 0)) })
	expectPanic[*OccupiedError](t, "spawn on monster", func() { h.spawn(0, 0, "I", 10) })
	expectPanic[*OccupiedError](t, "food on monster", func() { h.PlaceFood(grid.C(1, 0)) })
	expectPanic[*OccupiedError](t, "child on monster", func() {
		h.SpawnChild(a, grid.C(1, 0), h.Genome(a), 10, components.Gray, false)
	})
	expectPanic[*VacantError](t, "change empty", func() { h.ChangeHP(grid.C(2, 1), -5) })
	expectPanic[*grid.BoundsError](t, "get outside", func() { h.Get(grid.C(3, 0)) })
	expectPanic[*grid.BoundsError](t, "move outside", func() { h.MoveMonster(grid.C(0, 0), grid.C(-1, 0)) })

	// Corners are in bounds
	h.Get(grid.C(0, 0))
	h.Get(grid.C(2, 1))
}

func TestChangeHPTurnsMonsterIntoFood(t *testing.T) {
	h := newHarness(t, 2, 2, nil)
	h.spawn(1, 1, "I", 30)

	h.ChangeHP(grid.C(1, 1), -30)

	if h.kind(1, 1) != components.KindFood {
		t.Errorf("expected food, got %s", h.kind(1, 1))
	}
	if monsters, food := h.Population(); monsters != 0 || food != 1 {
		t.Errorf("unexpected population %d/%d", monsters, food)
	}
}

func TestUnknownInitialGene(t *testing.T) {
	cfg := config.Default()
	cfg.Population.InitialDNA = "DWX"
	_, err := New(cfg, nil, Options{Seed: 1})

	var unk *actions.UnknownGeneError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownGeneError, got %v", err)
	}
}

func TestSeedingRespectsCaps(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 4, 4
	cfg.Population.MonsterDensity = 1
	cfg.Population.FoodDensity = 1
	cfg.Population.MaxMonsters = 5
	cfg.Population.MaxFood = 3

	g, err := New(cfg, nil, Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	monsters, food := g.Population()
	if monsters != 5 || food != 3 {
		t.Errorf("expected 5 monsters and 3 food, got %d/%d", monsters, food)
	}

	// Seeding walks columns first: the first column fills with monsters
	for y := 0; y < 4; y++ {
		if !g.At(grid.C(0, y)).IsMonster() {
			t.Errorf("expected monster at (0,%d)", y)
		}
	}
	if !g.At(grid.C(1, 0)).IsMonster() || !g.At(grid.C(1, 1)).IsFood() {
		t.Error("unexpected seeding order in second column")
	}

	e := g.At(grid.C(0, 0)).Monster
	if m, _ := g.Monster(e); m.DNA != "DWIAFEHR" || m.HP != 200 || m.Color != components.Gray {
		t.Errorf("unexpected founder %s color %s", m, m.Color)
	}
}

func TestEmptyInitialDNAUsesFullCatalog(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 2, 2
	cfg.Population.InitialDNA = ""
	cfg.Population.MonsterDensity = 1

	g, err := New(cfg, nil, Options{Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	var genomes []string
	for _, occ := range g.Cells() {
		m, _ := g.Monster(occ.Monster)
		genomes = append(genomes, m.DNA)
	}
	if len(genomes) != 4 {
		t.Fatalf("expected 4 founders, got %d", len(genomes))
	}
	for _, dna := range genomes {
		if len(dna) != 8 || dna != genomes[0] {
			t.Errorf("founders should share one shuffled catalog, got %v", genomes)
			break
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	run := func(order string) map[grid.Coords]string {
		cfg := config.Default()
		cfg.Board.Width, cfg.Board.Height = 12, 8
		cfg.Population.MonsterDensity = 0.3
		cfg.Population.FoodDensity = 0.3
		cfg.Engine.TurnOrder = order
		g, err := New(cfg, nil, Options{Seed: 77})
		if err != nil {
			t.Fatal(err)
		}
		g.Steps(25)
		out := make(map[grid.Coords]string)
		for at, occ := range g.Cells() {
			if occ.IsMonster() {
				out[at] = g.Info(occ.Monster)
			} else {
				out[at] = "food"
			}
		}
		return out
	}

	for _, order := range []string{config.TurnOrderRowMajor, config.TurnOrderShuffled} {
		a, b := run(order), run(order)
		if len(a) != len(b) {
			t.Fatalf("%s: runs differ in size %d vs %d", order, len(a), len(b))
		}
		for at, v := range a {
			if b[at] != v {
				t.Errorf("%s: cell %s differs: %q vs %q", order, at, v, b[at])
			}
		}
	}
}

func TestMonstersAlwaysHavePositiveHP(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 15, 10
	cfg.Population.MonsterDensity = 0.2
	cfg.Population.FoodDensity = 0.2
	cfg.Mutation.Rate = 0.5

	g, err := New(cfg, nil, Options{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	for tick := 0; tick < 60; tick++ {
		g.OneStep()

		var monsters, food int
		for at, occ := range g.Cells() {
			switch {
			case occ.IsMonster():
				monsters++
				m, ok := g.Monster(occ.Monster)
				if !ok {
					t.Fatalf("tick %d: dead entity on board at %s", tick, at)
				}
				if m.HP <= 0 {
					t.Fatalf("tick %d: monster at %s has HP %d", tick, at, m.HP)
				}
				if m.At != at {
					t.Fatalf("tick %d: position %s out of sync with board %s", tick, m.At, at)
				}
			case occ.IsFood():
				food++
			}
		}
		gotM, gotF := g.Population()
		if gotM != monsters || gotF != food {
			t.Fatalf("tick %d: counters %d/%d, board %d/%d", tick, gotM, gotF, monsters, food)
		}
	}
}

func TestToggleFollowedNamesOnce(t *testing.T) {
	h := newHarness(t, 3, 1, nil)
	a := h.spawn(0, 0, "DWIA", 364)
	b := h.spawn(2, 0, "I", 50)

	if got := h.Info(a); got != "1, dna=DWIA, hp=364" {
		t.Errorf("unnamed info = %q", got)
	}

	h.ToggleFollowed(a)
	m, _ := h.Monster(a)
	if !m.Followed || m.Name != "Ada" {
		t.Fatalf("expected followed and named Ada, got %+v", m)
	}
	if got := h.Info(a); got != "Ada (1), dna=DWIA, hp=364" {
		t.Errorf("named info = %q", got)
	}

	h.ToggleFollowed(a)
	m, _ = h.Monster(a)
	if m.Followed || m.Name != "Ada" {
		t.Errorf("second toggle should unfollow and keep the name, got %+v", m)
	}

	// The pool held one name
	h.ToggleFollowed(b)
	m, _ = h.Monster(b)
	if !m.Followed || m.Name != "" {
		t.Errorf("exhausted pool should leave the monster unnamed, got %+v", m)
	}
}

func TestStatsWindow(t *testing.T) {
	var windows []telemetry.WindowStats
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 10, 10
	cfg.Telemetry.StatsWindow = 5

	g, err := New(cfg, nil, Options{
		Seed:          2,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		t.Fatal(err)
	}
	g.Steps(12)

	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[0].WindowEndTick != 5 || windows[1].WindowStartTick != 5 || windows[1].WindowEndTick != 10 {
		t.Errorf("unexpected window bounds: %+v", windows)
	}
	last := windows[1]
	if last.Monsters > 0 && last.DistinctGenomes == 0 {
		t.Error("census missing from stats")
	}
}

func TestOutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 6, 6
	cfg.Telemetry.StatsWindow = 2

	dir := t.TempDir()
	g, err := New(cfg, nil, Options{Seed: 4, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	g.Steps(4)
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(dir + "/config.yaml")
	if err != nil {
		t.Fatalf("config snapshot unreadable: %v", err)
	}
	if loaded.Board.Width != 6 {
		t.Errorf("config snapshot has width %d", loaded.Board.Width)
	}
}
