package actions

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/grid"
)

// Basic returns the built-in action catalog in registration order.
// Letters default to the first letter of each name: W F A I R H E D.
func Basic() []Definition {
	return []Definition{
		{Name: "wander", Perform: Wander},
		{Name: "flee", Perform: Flee},
		{Name: "attack", Perform: Attack},
		{Name: "idle", Perform: Idle},
		{Name: "rest", Perform: Rest},
		{Name: "heal", Perform: Heal},
		{Name: "eat", Perform: Eat},
		{Name: "divide", Perform: Divide},
	}
}

// surroundings classifies the neighbors of a cell.
// Open cells hold no monster; they may hold food.
type surroundings struct {
	open     []grid.Coords
	monsters []grid.Coords
	food     []grid.Coords
}

func survey(w World, at grid.Coords) surroundings {
	var s surroundings
	for _, n := range w.Neighbors(at) {
		occ := w.At(n)
		switch occ.Kind {
		case components.KindMonster:
			s.monsters = append(s.monsters, n)
		case components.KindFood:
			s.food = append(s.food, n)
			s.open = append(s.open, n)
		default:
			s.open = append(s.open, n)
		}
	}
	return s
}

func pick(rng *rand.Rand, cells []grid.Coords) grid.Coords {
	return cells[rng.Intn(len(cells))]
}

// Wander moves to a random open neighbor.
// Precondition: an adjacent cell holds no monster.
func Wander(w World, self ecs.Entity, at grid.Coords) Outcome {
	s := survey(w, at)
	if len(s.open) == 0 {
		return CannotPerform
	}
	w.MoveMonster(at, pick(w.Rand(), s.open))
	return Performed
}

// Flee moves to a random open neighbor.
// Precondition: an adjacent cell is open and another holds a monster.
func Flee(w World, self ecs.Entity, at grid.Coords) Outcome {
	s := survey(w, at)
	if len(s.open) == 0 || len(s.monsters) == 0 {
		return CannotPerform
	}
	w.MoveMonster(at, pick(w.Rand(), s.open))
	return Performed
}

// Attack damages a random adjacent monster by energy.attack_hp_decrease.
// Precondition: an adjacent cell holds a monster.
func Attack(w World, self ecs.Entity, at grid.Coords) Outcome {
	s := survey(w, at)
	if len(s.monsters) == 0 {
		return CannotPerform
	}
	w.ChangeHP(pick(w.Rand(), s.monsters), -w.Config().Energy.AttackHPDecrease)
	return Performed
}

// Idle does nothing and always succeeds, so genes after it never run.
func Idle(w World, self ecs.Entity, at grid.Coords) Outcome {
	return Performed
}

// Rest adds energy.rest_hp_increase to the monster's own HP.
// Precondition: HP below energy.rest_max_hp. The result may overshoot the ceiling.
func Rest(w World, self ecs.Entity, at grid.Coords) Outcome {
	cfg := w.Config()
	if w.HP(self) >= cfg.Energy.RestMaxHP {
		return CannotPerform
	}
	w.ChangeHP(at, cfg.Energy.RestHPIncrease)
	return Performed
}

// Heal adds energy.heal_hp_increase to a random adjacent monster.
// Precondition: an adjacent cell holds a monster.
func Heal(w World, self ecs.Entity, at grid.Coords) Outcome {
	s := survey(w, at)
	if len(s.monsters) == 0 {
		return CannotPerform
	}
	w.ChangeHP(pick(w.Rand(), s.monsters), w.Config().Energy.HealHPIncrease)
	return Performed
}

// Eat moves onto a random adjacent food cell.
// Precondition: an adjacent cell holds food.
func Eat(w World, self ecs.Entity, at grid.Coords) Outcome {
	s := survey(w, at)
	if len(s.food) == 0 {
		return CannotPerform
	}
	w.MoveMonster(at, pick(w.Rand(), s.food))
	return Performed
}

// Divide splits the monster in two. The child lands on a random open
// neighbor with half the parent's HP (floored), plus the food bonus if it
// lands on food; the parent loses the same half. With probability
// mutation.rate the child's DNA has one adjacent pair of genes swapped and
// one color channel shifted by mutation.color_change_offset.
// Precondition: HP at least energy.divide_min_hp and an open neighbor.
func Divide(w World, self ecs.Entity, at grid.Coords) Outcome {
	cfg := w.Config()
	hp := w.HP(self)
	if hp < cfg.Energy.DivideMinHP {
		return CannotPerform
	}
	s := survey(w, at)
	if len(s.open) == 0 {
		return CannotPerform
	}

	rng := w.Rand()
	dest := pick(rng, s.open)

	dna := w.Genome(self)
	color := w.Color(self)
	mutated := rng.Float64() < cfg.Mutation.Rate
	if mutated {
		dna, color = Mutate(rng, dna, color, cfg.Mutation.ColorChangeOffset)
	} else {
		dna = dna.Clone()
	}

	half := hp / 2
	childHP := half
	if w.At(dest).IsFood() {
		childHP += cfg.Energy.FoodHPIncrease
	}
	w.SpawnChild(self, dest, dna, childHP, color, mutated)
	w.ChangeHP(at, -half)
	return Performed
}

// Mutate returns a copy of dna with one random adjacent pair swapped and
// color with one random channel moved up or down by offset, clamped to [0,255].
// DNA shorter than two genes is copied unchanged.
func Mutate(rng *rand.Rand, dna DNA, color components.Color, offset int) (DNA, components.Color) {
	var child DNA
	if len(dna) >= 2 {
		child = dna.Transposed(rng.Intn(len(dna) - 1))
	} else {
		child = dna.Clone()
	}

	channel := rng.Intn(3)
	delta := offset
	if rng.Intn(2) == 0 {
		delta = -offset
	}
	return child, color.Shift(channel, delta)
}
