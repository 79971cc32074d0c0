package actions

import (
	"fmt"
	"math/rand"
	"strings"
)

// Definition describes an action to register.
// A zero Letter defaults to the upper-cased first letter of Name.
type Definition struct {
	Name    string
	Letter  byte
	Perform Func
}

// DuplicateLetterError reports two actions claiming the same letter.
type DuplicateLetterError struct {
	Letter         byte
	Existing, Name string
}

func (e *DuplicateLetterError) Error() string {
	return fmt.Sprintf("actions: letter %q already used by %s, cannot register %s", e.Letter, e.Existing, e.Name)
}

// UnknownGeneError reports a DNA letter with no registered action.
type UnknownGeneError struct {
	Letter   byte
	Position int
	DNA      string
}

func (e *UnknownGeneError) Error() string {
	return fmt.Sprintf("actions: unknown gene %q at position %d in %q", e.Letter, e.Position, e.DNA)
}

// Registry is the closed catalog of actions, keyed by letter.
// It is built once by NewRegistry and is read-only afterwards, so it can be
// shared freely.
type Registry struct {
	byLetter [26]*Action
	all      []*Action
}

// NewRegistry builds a registry from definitions in order.
// Letters must be unique uppercase ASCII letters.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{all: make([]*Action, 0, len(defs))}
	for _, def := range defs {
		if def.Name == "" || def.Perform == nil {
			return nil, fmt.Errorf("actions: definition %q needs a name and a behavior", def.Name)
		}
		letter := def.Letter
		if letter == 0 {
			letter = def.Name[0]
		}
		letter = upper(letter)
		if letter < 'A' || letter > 'Z' {
			return nil, fmt.Errorf("actions: %s has invalid letter %q", def.Name, letter)
		}
		if prev := r.byLetter[letter-'A']; prev != nil {
			return nil, &DuplicateLetterError{Letter: letter, Existing: prev.name, Name: def.Name}
		}
		a := &Action{name: def.Name, letter: letter, perform: def.Perform}
		r.byLetter[letter-'A'] = a
		r.all = append(r.all, a)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns a registry holding the basic actions.
func Default() *Registry {
	return MustRegistry(Basic()...)
}

// Len returns the number of registered actions.
func (r *Registry) Len() int { return len(r.all) }

// All returns the actions in registration order.
func (r *Registry) All() []*Action {
	out := make([]*Action, len(r.all))
	copy(out, r.all)
	return out
}

// Lookup returns the action for a letter (either case).
func (r *Registry) Lookup(letter byte) (*Action, bool) {
	letter = upper(letter)
	if letter < 'A' || letter > 'Z' {
		return nil, false
	}
	a := r.byLetter[letter-'A']
	return a, a != nil
}

// Decode turns a letter string such as "dwia" into DNA.
func (r *Registry) Decode(s string) (DNA, error) {
	s = strings.ToUpper(s)
	dna := make(DNA, 0, len(s))
	for i := 0; i < len(s); i++ {
		a, ok := r.Lookup(s[i])
		if !ok {
			return nil, &UnknownGeneError{Letter: s[i], Position: i, DNA: s}
		}
		dna = append(dna, a)
	}
	return dna, nil
}

// MustDecode is like Decode but panics on an unknown letter.
func (r *Registry) MustDecode(s string) DNA {
	dna, err := r.Decode(s)
	if err != nil {
		panic(err)
	}
	return dna
}

// Shuffled returns the full catalog as DNA in random order.
func (r *Registry) Shuffled(rng *rand.Rand) DNA {
	dna := DNA(r.All())
	rng.Shuffle(len(dna), func(i, j int) {
		dna[i], dna[j] = dna[j], dna[i]
	})
	return dna
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
