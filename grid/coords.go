// Package grid provides integer coordinates, compass directions and a bounded
// board mapping cells to at most one occupant.
package grid

import (
	"fmt"
	"math"
)

// Coords is an immutable pair of signed integer coordinates.
// X grows to the right and Y grows downward.
type Coords struct {
	X, Y int
}

// C is shorthand for Coords{X: x, Y: y}.
func C(x, y int) Coords {
	return Coords{X: x, Y: y}
}

// String returns the coordinates as "(x,y)".
func (c Coords) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the component-wise sum.
func (c Coords) Add(o Coords) Coords {
	return Coords{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference.
func (c Coords) Sub(o Coords) Coords {
	return Coords{X: c.X - o.X, Y: c.Y - o.Y}
}

// Neg returns the coordinates mirrored through the origin.
func (c Coords) Neg() Coords {
	return Coords{X: -c.X, Y: -c.Y}
}

// Mul scales both components by k.
func (c Coords) Mul(k int) Coords {
	return Coords{X: c.X * k, Y: c.Y * k}
}

// FloorDiv divides both components by k, rounding toward negative infinity.
func (c Coords) FloorDiv(k int) Coords {
	return Coords{X: floorDiv(c.X, k), Y: floorDiv(c.Y, k)}
}

// Mod returns both components modulo k. The result takes the sign of k.
func (c Coords) Mod(k int) Coords {
	return Coords{X: floorMod(c.X, k), Y: floorMod(c.Y, k)}
}

// Hypot returns the Euclidean distance from the origin.
// The distance between two points is a.Sub(b).Hypot().
func (c Coords) Hypot() float64 {
	return math.Hypot(float64(c.X), float64(c.Y))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
