package grid

import (
	"errors"
	"math"
	"testing"
)

func TestCoordsArithmetic(t *testing.T) {
	a := C(3, -7)
	b := C(-1, 2)

	if got := a.Add(b); got != C(2, -5) {
		t.Errorf("Add: got %s, want (2,-5)", got)
	}
	if got := a.Sub(b); got != C(4, -9) {
		t.Errorf("Sub: got %s, want (4,-9)", got)
	}
	if got := a.Neg(); got != C(-3, 7) {
		t.Errorf("Neg: got %s, want (-3,7)", got)
	}
	if got := a.Mul(3); got != C(9, -21) {
		t.Errorf("Mul: got %s, want (9,-21)", got)
	}
}

func TestCoordsFloorDivAndMod(t *testing.T) {
	tests := []struct {
		in       Coords
		k        int
		div, mod Coords
	}{
		{C(7, 8), 2, C(3, 4), C(1, 0)},
		{C(-7, -8), 2, C(-4, -4), C(1, 0)},
		{C(-1, 5), 3, C(-1, 1), C(2, 2)},
		{C(0, 0), 5, C(0, 0), C(0, 0)},
	}

	for _, tt := range tests {
		if got := tt.in.FloorDiv(tt.k); got != tt.div {
			t.Errorf("%s.FloorDiv(%d) = %s, want %s", tt.in, tt.k, got, tt.div)
		}
		if got := tt.in.Mod(tt.k); got != tt.mod {
			t.Errorf("%s.Mod(%d) = %s, want %s", tt.in, tt.k, got, tt.mod)
		}
	}
}

func TestCoordsHypot(t *testing.T) {
	if got := C(3, 4).Hypot(); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
	if got := C(1, 1).Sub(C(2, 2)).Hypot(); math.Abs(got-math.Sqrt2) > 1e-9 {
		t.Errorf("expected sqrt(2), got %f", got)
	}
}

func TestDirectionSets(t *testing.T) {
	if len(Cardinal) != 4 || len(Diagonal) != 4 || len(AllReal) != 8 || len(All) != 9 {
		t.Fatalf("unexpected set sizes: %d %d %d %d", len(Cardinal), len(Diagonal), len(AllReal), len(All))
	}
	seen := make(map[Coords]bool)
	for _, d := range All {
		if seen[d.Offset()] {
			t.Errorf("duplicate offset %s", d.Offset())
		}
		seen[d.Offset()] = true
	}
}

func TestDirectionEqualityByOffset(t *testing.T) {
	// A copy with a different name still denotes the same direction.
	clone := Direction{name: "up", abbrev: "U", offset: Coords{0, -1}, baseCost: 99}
	if !clone.Equal(North) {
		t.Error("directions with equal offsets should be equal")
	}
	if North.Equal(South) {
		t.Error("north and south should differ")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := [][2]Direction{
		{North, South}, {East, West}, {NorthEast, SouthWest}, {NorthWest, SouthEast}, {Here, Here},
	}
	for _, p := range pairs {
		if !p[0].Opposite().Equal(p[1]) || !p[1].Opposite().Equal(p[0]) {
			t.Errorf("%s and %s should be opposites", p[0], p[1])
		}
	}
}

func TestDirectionLookups(t *testing.T) {
	if d, ok := DirectionFromOffset(C(1, 1)); !ok || !d.Equal(SouthEast) {
		t.Errorf("offset lookup: got %v %v", d, ok)
	}
	if d, ok := DirectionFromName("NorthWest"); !ok || !d.Equal(NorthWest) {
		t.Errorf("name lookup: got %v %v", d, ok)
	}
	if d, ok := DirectionFromAbbreviation("sw"); !ok || !d.Equal(SouthWest) {
		t.Errorf("abbreviation lookup: got %v %v", d, ok)
	}
	if _, ok := DirectionFromOffset(C(2, 0)); ok {
		t.Error("offset (2,0) should not resolve")
	}
}

func TestAdjacency(t *testing.T) {
	for _, name := range []string{"", "cardinal", "diagonal", "all"} {
		if _, ok := Adjacency(name); !ok {
			t.Errorf("adjacency %q should resolve", name)
		}
	}
	if _, ok := Adjacency("hex"); ok {
		t.Error("adjacency hex should not resolve")
	}
}

func expectBoundsPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("%s: expected panic", name)
			return
		}
		err, ok := r.(error)
		var be *BoundsError
		if !ok || !errors.As(err, &be) {
			t.Errorf("%s: expected *BoundsError, got %v", name, r)
		}
	}()
	fn()
}

func TestBoardBounds(t *testing.T) {
	b := NewBoard[string](4, 3, nil)

	// Edges are legal.
	b.Set(C(0, 0), "a")
	b.Set(C(3, 2), "b")
	if v, ok := b.Get(C(3, 2)); !ok || v != "b" {
		t.Errorf("expected b at (3,2), got %q %v", v, ok)
	}
	if _, ok := b.Get(C(1, 1)); ok {
		t.Error("empty cell should report absent")
	}

	for _, c := range []Coords{C(-1, 0), C(0, -1), C(4, 0), C(0, 3), C(4, 3)} {
		expectBoundsPanic(t, "Set "+c.String(), func() { b.Set(c, "x") })
		expectBoundsPanic(t, "Get "+c.String(), func() { b.Get(c) })
		expectBoundsPanic(t, "Remove "+c.String(), func() { b.Remove(c) })
	}
}

func TestBoardUnbounded(t *testing.T) {
	b := NewBoard[int](0, 0, nil)
	b.Set(C(-100, 5000), 1)
	if v, ok := b.Get(C(-100, 5000)); !ok || v != 1 {
		t.Errorf("unbounded board should accept any coords, got %d %v", v, ok)
	}
}

func TestBoardOverwriteAndRemove(t *testing.T) {
	b := NewBoard[int](2, 2, nil)
	b.Set(C(1, 1), 1)
	b.Set(C(1, 1), 2)
	if v, _ := b.Get(C(1, 1)); v != 2 {
		t.Errorf("expected overwrite to 2, got %d", v)
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 cell, got %d", b.Len())
	}
	b.Remove(C(1, 1))
	if b.Len() != 0 {
		t.Errorf("expected empty board, got %d", b.Len())
	}
}

func TestBoardNeighbors(t *testing.T) {
	b := NewBoard[int](3, 3, nil)

	corner := b.Neighbors(C(0, 0))
	want := []Coords{C(0, 1), C(1, 0)} // south, east in cardinal order
	if len(corner) != len(want) {
		t.Fatalf("corner neighbors: got %v, want %v", corner, want)
	}
	for i := range want {
		if corner[i] != want[i] {
			t.Errorf("corner neighbor %d: got %s, want %s", i, corner[i], want[i])
		}
	}

	if got := len(b.Neighbors(C(1, 1))); got != 4 {
		t.Errorf("center should have 4 cardinal neighbors, got %d", got)
	}

	diag := NewBoard[int](3, 3, AllReal)
	if got := len(diag.Neighbors(C(1, 1))); got != 8 {
		t.Errorf("center should have 8 neighbors with AllReal, got %d", got)
	}
	if got := len(diag.Neighbors(C(0, 0))); got != 3 {
		t.Errorf("corner should have 3 neighbors with AllReal, got %d", got)
	}
}

func TestBoardStrip(t *testing.T) {
	// A 3x1 strip: the left end has only one neighbor.
	b := NewBoard[int](3, 1, nil)
	n := b.Neighbors(C(0, 0))
	if len(n) != 1 || n[0] != C(1, 0) {
		t.Errorf("expected [(1,0)], got %v", n)
	}
}

func TestBoardAll(t *testing.T) {
	b := NewBoard[int](5, 5, nil)
	b.Set(C(0, 0), 1)
	b.Set(C(4, 4), 2)
	sum := 0
	for _, v := range b.All() {
		sum += v
	}
	if sum != 3 {
		t.Errorf("expected sum 3, got %d", sum)
	}
}
