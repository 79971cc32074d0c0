package game

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/components"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/telemetry"
)

//go:embed names.txt
var defaultNames []byte

// namePool hands out names in a shuffled order, each at most once.
type namePool struct {
	names []string
}

func newNamePool(names []string, rng *rand.Rand) *namePool {
	shuffled := append([]string(nil), names...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &namePool{names: shuffled}
}

// next pops the next name, or returns false once the pool is empty.
func (p *namePool) next() (string, bool) {
	if len(p.names) == 0 {
		return "", false
	}
	name := p.names[0]
	p.names = p.names[1:]
	return name, true
}

// loadNames reads one name per line from path, or the embedded list if path is empty.
func loadNames(path string) ([]string, error) {
	data := defaultNames
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading names file: %w", err)
		}
	}

	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	return names, sc.Err()
}

// MonsterInfo is a read-only view of one monster.
type MonsterInfo struct {
	Entity   ecs.Entity
	At       grid.Coords
	DNA      string
	HP       int
	Color    components.Color
	Followed bool
	Name     string
	Lineage  components.Lineage
	Lifetime telemetry.LifetimeStats
}

// Monster returns a view of e, or false if e is no longer alive.
func (g *Game) Monster(e ecs.Entity) (MonsterInfo, bool) {
	if !g.world.Alive(e) {
		return MonsterInfo{}, false
	}
	obs := g.obsMap.Get(e)
	lineage := *g.lineageMap.Get(e)
	info := MonsterInfo{
		Entity:   e,
		At:       g.posMap.Get(e).At,
		DNA:      g.Genome(e).String(),
		HP:       g.HP(e),
		Color:    g.Color(e),
		Followed: obs.Followed,
		Name:     obs.Name,
		Lineage:  lineage,
	}
	if stats := g.lifetimes.Get(lineage.ID); stats != nil {
		info.Lifetime = *stats
	}
	return info, true
}

// Components returns pointers to the components of e for inspection, or nil if e is dead.
func (g *Game) Components(e ecs.Entity) []any {
	if !g.world.Alive(e) {
		return nil
	}
	return []any{
		g.lineageMap.Get(e),
		g.healthMap.Get(e),
		g.lookMap.Get(e),
		g.obsMap.Get(e),
		g.posMap.Get(e),
	}
}

// Info describes a monster on one line, e.g. "Ada (12), dna=DWIA, hp=364".
// Unnamed monsters show only their ID.
func (g *Game) Info(e ecs.Entity) string {
	m, ok := g.Monster(e)
	if !ok {
		return ""
	}
	return m.String()
}

// String formats the info line.
func (m MonsterInfo) String() string {
	if m.Name != "" {
		return fmt.Sprintf("%s (%d), dna=%s, hp=%d", m.Name, m.Lineage.ID, m.DNA, m.HP)
	}
	return fmt.Sprintf("%d, dna=%s, hp=%d", m.Lineage.ID, m.DNA, m.HP)
}

// ToggleFollowed flips whether e is followed. A monster followed for the
// first time is named from the pool; once the pool is empty it stays unnamed.
func (g *Game) ToggleFollowed(e ecs.Entity) {
	if !g.world.Alive(e) {
		return
	}
	obs := g.obsMap.Get(e)
	obs.Followed = !obs.Followed
	if obs.Name != "" {
		return
	}

	id := g.lineageMap.Get(e).ID
	name, ok := g.names.next()
	if !ok {
		slog.Warn("name pool exhausted", "monster", id)
		return
	}
	obs.Name = name
	slog.Info("monster named", "monster", id, "name", name)
}
