package grid

import (
	"fmt"
	"iter"
)

// BoundsError is the panic value raised when a board is accessed outside its bounds.
type BoundsError struct {
	At            Coords
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("grid: %s out of bounds for %dx%d board", e.At, e.Width, e.Height)
}

// Board maps coordinates to at most one value of type T.
// A zero width or height leaves that dimension unbounded.
// Out-of-bounds access is a programming error and panics with *BoundsError.
type Board[T any] struct {
	width, height int
	adjacency     []Direction
	cells         map[Coords]T
}

// NewBoard creates an empty board. If adjacency is nil the cardinal directions are used.
func NewBoard[T any](width, height int, adjacency []Direction) *Board[T] {
	if adjacency == nil {
		adjacency = Cardinal
	}
	dirs := make([]Direction, len(adjacency))
	copy(dirs, adjacency)
	return &Board[T]{
		width:     width,
		height:    height,
		adjacency: dirs,
		cells:     make(map[Coords]T),
	}
}

// Width returns the board width (0 = unbounded).
func (b *Board[T]) Width() int { return b.width }

// Height returns the board height (0 = unbounded).
func (b *Board[T]) Height() int { return b.height }

// Len returns the number of occupied cells.
func (b *Board[T]) Len() int { return len(b.cells) }

// InBounds reports whether c lies inside the board.
func (b *Board[T]) InBounds(c Coords) bool {
	inX := b.width <= 0 || (c.X >= 0 && c.X < b.width)
	inY := b.height <= 0 || (c.Y >= 0 && c.Y < b.height)
	return inX && inY
}

func (b *Board[T]) mustBeInBounds(c Coords) {
	if !b.InBounds(c) {
		panic(&BoundsError{At: c, Width: b.width, Height: b.height})
	}
}

// Get returns the value at c, or the zero value and false for an empty cell.
func (b *Board[T]) Get(c Coords) (T, bool) {
	b.mustBeInBounds(c)
	v, ok := b.cells[c]
	return v, ok
}

// Set stores v at c, replacing whatever was there.
func (b *Board[T]) Set(c Coords, v T) {
	b.mustBeInBounds(c)
	b.cells[c] = v
}

// Remove empties the cell at c.
func (b *Board[T]) Remove(c Coords) {
	b.mustBeInBounds(c)
	delete(b.cells, c)
}

// Neighbors returns the in-bounds cells adjacent to c, in adjacency order.
// Callers wanting a random pick must choose explicitly.
func (b *Board[T]) Neighbors(c Coords) []Coords {
	out := make([]Coords, 0, len(b.adjacency))
	for _, d := range b.adjacency {
		n := c.Add(d.offset)
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// All iterates over occupied cells in unspecified order.
// The board must not be modified during iteration.
func (b *Board[T]) All() iter.Seq2[Coords, T] {
	return func(yield func(Coords, T) bool) {
		for c, v := range b.cells {
			if !yield(c, v) {
				return
			}
		}
	}
}
