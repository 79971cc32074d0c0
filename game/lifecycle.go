package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/actions"
	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/telemetry"
)

// seedBoard fills the board column by column. Each cell first rolls for a
// monster, then, failing that, for food; both respect the configured caps.
func (g *Game) seedBoard() error {
	cfg := g.cfg

	var startDNA actions.DNA
	if cfg.Population.InitialDNA != "" {
		dna, err := g.registry.Decode(cfg.Population.InitialDNA)
		if err != nil {
			return err
		}
		startDNA = dna
	} else {
		startDNA = g.registry.Shuffled(g.rng)
	}

	rgb := cfg.Derived.InitialColor
	color := components.Color{R: rgb[0], G: rgb[1], B: rgb[2]}

	for x := 0; x < cfg.Board.Width; x++ {
		for y := 0; y < cfg.Board.Height; y++ {
			at := grid.C(x, y)
			if g.rng.Float64() < cfg.Population.MonsterDensity && g.monsters < cfg.Derived.MaxMonsters {
				g.SpawnMonster(at, startDNA, cfg.Population.InitialHP, color)
			} else if g.rng.Float64() < cfg.Population.FoodDensity && g.food < cfg.Derived.MaxFood {
				g.PlaceFood(at)
			}
		}
	}
	return nil
}

// SpawnMonster places a founder monster at at, replacing any food there.
// A monster at at is a fault. A founder with HP at or below zero becomes food at once.
func (g *Game) SpawnMonster(at grid.Coords, dna actions.DNA, hp int, color components.Color) ecs.Entity {
	occ, _ := g.board.Get(at)
	if occ.IsMonster() {
		panic(&OccupiedError{Op: "spawn", At: at})
	}

	e := g.place(at, dna, hp, color, components.Lineage{})
	if hp <= 0 {
		g.kill(e, at, telemetry.CauseMetabolism)
	}
	return e
}

// PlaceFood puts food at at. A monster at at is a fault.
func (g *Game) PlaceFood(at grid.Coords) {
	occ, _ := g.board.Get(at)
	switch {
	case occ.IsMonster():
		panic(&OccupiedError{Op: "place food", At: at})
	case occ.IsFood():
		return
	}
	g.board.Set(at, components.Food)
	g.food++
}

// place creates the monster entity and puts it on the board.
// Zero lineage fields are filled in: a new ID, and the monster as its own founder.
func (g *Game) place(at grid.Coords, dna actions.DNA, hp int, color components.Color, lineage components.Lineage) ecs.Entity {
	occ, _ := g.board.Get(at)
	if occ.IsFood() {
		g.food--
	}

	lineage.ID = g.nextID
	g.nextID++
	if lineage.FounderID == 0 {
		lineage.FounderID = lineage.ID
	}
	lineage.BornTick = g.tick

	genome := dna.Clone()
	health := components.Health{HP: hp}
	look := components.Appearance{Color: color}
	obs := components.Observation{}
	pos := components.Position{At: at}

	e := g.monsterMapper.NewEntity(&genome, &health, &look, &obs, &lineage, &pos)
	g.board.Set(at, components.MonsterOccupant(e))
	g.monsters++
	g.lifetimes.Register(lineage.ID, g.tick, lineage.FounderID, hp)
	return e
}

// kill replaces the monster at at with food and removes its entity.
func (g *Game) kill(e ecs.Entity, at grid.Coords, cause telemetry.DeathCause) {
	id := g.lineageMap.Get(e).ID
	if g.obsMap.Get(e).Followed {
		g.emit(e, telemetry.NewDeathEvent(g.tick, id, cause))
	}

	g.collector.RecordDeath(cause)
	g.lifetimes.Remove(id)
	g.world.RemoveEntity(e)
	g.monsters--

	g.board.Set(at, components.Food)
	g.food++
}
