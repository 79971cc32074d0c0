package grid

import "strings"

// Direction is a compass direction described by its offset.
// Two directions are interchangeable when their offsets match; use Equal or
// Offset as a map key rather than comparing Direction values directly.
type Direction struct {
	name     string
	abbrev   string
	offset   Coords
	baseCost int
}

// The nine directions. BaseCost is a scaled approximation of the offset length.
var (
	North     = Direction{name: "north", abbrev: "N", offset: Coords{0, -1}, baseCost: 2}
	South     = Direction{name: "south", abbrev: "S", offset: Coords{0, 1}, baseCost: 2}
	East      = Direction{name: "east", abbrev: "E", offset: Coords{1, 0}, baseCost: 2}
	West      = Direction{name: "west", abbrev: "W", offset: Coords{-1, 0}, baseCost: 2}
	NorthEast = Direction{name: "northeast", abbrev: "NE", offset: Coords{1, -1}, baseCost: 3}
	SouthWest = Direction{name: "southwest", abbrev: "SW", offset: Coords{-1, 1}, baseCost: 3}
	NorthWest = Direction{name: "northwest", abbrev: "NW", offset: Coords{-1, -1}, baseCost: 3}
	SouthEast = Direction{name: "southeast", abbrev: "SE", offset: Coords{1, 1}, baseCost: 3}
	Here      = Direction{name: "here", abbrev: "H", offset: Coords{0, 0}, baseCost: 0}
)

// Standing direction sets. Treat them as read-only.
var (
	Cardinal = []Direction{North, South, East, West}
	Diagonal = []Direction{NorthEast, SouthWest, NorthWest, SouthEast}
	AllReal  = []Direction{North, South, East, West, NorthEast, SouthWest, NorthWest, SouthEast}
	All      = []Direction{North, South, East, West, NorthEast, SouthWest, NorthWest, SouthEast, Here}
)

var (
	byOffset = make(map[Coords]Direction, len(All))
	byName   = make(map[string]Direction, len(All))
	byAbbrev = make(map[string]Direction, len(All))
)

func init() {
	for _, d := range All {
		byOffset[d.offset] = d
		byName[d.name] = d
		byAbbrev[d.abbrev] = d
	}
}

// Name returns the lowercase full name, e.g. "southwest".
func (d Direction) Name() string { return d.name }

// Abbreviation returns the uppercase short name, e.g. "SW".
func (d Direction) Abbreviation() string { return d.abbrev }

// Offset returns the step that moves one cell in this direction.
func (d Direction) Offset() Coords { return d.offset }

// BaseCost returns the relative movement cost.
func (d Direction) BaseCost() int { return d.baseCost }

// Opposite returns the direction with the inverted offset. Here is its own opposite.
func (d Direction) Opposite() Direction {
	return byOffset[d.offset.Neg()]
}

// Equal reports whether both directions have the same offset.
func (d Direction) Equal(o Direction) bool {
	return d.offset == o.offset
}

// String returns the uppercase name.
func (d Direction) String() string {
	return strings.ToUpper(d.name)
}

// DirectionFromOffset returns the direction with the given offset.
func DirectionFromOffset(offset Coords) (Direction, bool) {
	d, ok := byOffset[offset]
	return d, ok
}

// DirectionFromName looks up a direction by its full name (case-insensitive).
func DirectionFromName(name string) (Direction, bool) {
	d, ok := byName[strings.ToLower(name)]
	return d, ok
}

// DirectionFromAbbreviation looks up a direction by abbreviation (case-insensitive).
func DirectionFromAbbreviation(abbrev string) (Direction, bool) {
	d, ok := byAbbrev[strings.ToUpper(abbrev)]
	return d, ok
}

// Adjacency returns the named direction set used for neighbor queries:
// "cardinal", "diagonal" or "all" (all real directions, Here excluded).
func Adjacency(name string) ([]Direction, bool) {
	switch strings.ToLower(name) {
	case "", "cardinal":
		return Cardinal, true
	case "diagonal":
		return Diagonal, true
	case "all":
		return AllReal, true
	default:
		return nil, false
	}
}
