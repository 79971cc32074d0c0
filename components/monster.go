package components

import (
	"fmt"

	"github.com/pthm-cable/monsters/grid"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Gray is the default starting color.
var Gray = Color{127, 127, 127}

// Channel returns channel i (0=R, 1=G, 2=B).
func (c Color) Channel(i int) uint8 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// Shift returns the color with channel i moved by delta, clamped to [0,255].
func (c Color) Shift(i, delta int) Color {
	v := int(c.Channel(i)) + delta
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	switch i {
	case 0:
		c.R = uint8(v)
	case 1:
		c.G = uint8(v)
	default:
		c.B = uint8(v)
	}
	return c
}

// String returns the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Health holds a monster's hit points. HP may dip to zero or below only
// momentarily; the engine converts the monster to food in the same call.
type Health struct {
	HP int `inspect:"bar,max:400"`
}

// Appearance holds display attributes inherited (and possibly mutated) at division.
type Appearance struct {
	Color Color `inspect:"color"`
}

// Observation tracks whether a viewer follows this monster and the name it was given.
type Observation struct {
	Followed bool   `inspect:"bool"`
	Name     string `inspect:"label"`
}

// Lineage identifies a monster and its ancestry.
type Lineage struct {
	ID         uint64 `inspect:"label"`
	ParentID   uint64 `inspect:"label"` // 0 for founders
	FounderID  uint64 `inspect:"skip"`
	Generation int    `inspect:"label"`
	BornTick   int64  `inspect:"label"`
}

// Position is the board cell a monster stands on.
// The engine moves it together with the board entry.
type Position struct {
	At grid.Coords `inspect:"label"`
}
