// Package components defines board occupants and the ECS components that make up a monster.
package components

import "github.com/mlange-42/ark/ecs"

// Kind tags what sits in a board cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindFood
	KindMonster
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindMonster:
		return "monster"
	default:
		return "empty"
	}
}

// Occupant is the content of one board cell: Food or a Monster.
// Food carries no state, so every Food occupant is the same value.
// A Monster occupant refers to its ECS entity; the entity is the monster's identity.
type Occupant struct {
	Kind    Kind
	Monster ecs.Entity
}

// Food is the single food value.
var Food = Occupant{Kind: KindFood}

// MonsterOccupant wraps a monster entity for placement on the board.
func MonsterOccupant(e ecs.Entity) Occupant {
	return Occupant{Kind: KindMonster, Monster: e}
}

// IsFood reports whether the occupant is food.
func (o Occupant) IsFood() bool { return o.Kind == KindFood }

// IsMonster reports whether the occupant is a monster.
func (o Occupant) IsMonster() bool { return o.Kind == KindMonster }
