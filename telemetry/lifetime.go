package telemetry

// LifetimeStats tracks per-monster statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int64  `inspect:"skip"`
	FounderID uint64 `inspect:"label"` // ID of the seeded ancestor; a founder is its own founder

	Children int
	Attacks  int // attacks dealt
	Heals    int // heals given
	Meals    int
	PeakHP   int
}

// LifetimeTracker manages per-monster lifetime statistics keyed by monster ID.
type LifetimeTracker struct {
	stats map[uint64]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint64]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new monster.
func (lt *LifetimeTracker) Register(id uint64, birthTick int64, founderID uint64, hp int) {
	lt.stats[id] = &LifetimeStats{
		BirthTick: birthTick,
		FounderID: founderID,
		PeakHP:    hp,
	}
}

// Get returns the lifetime stats for a monster, or nil if not found.
func (lt *LifetimeTracker) Get(id uint64) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes a monster's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint64) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint64) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordAttack increments the attacks dealt.
func (lt *LifetimeTracker) RecordAttack(id uint64) {
	if s := lt.stats[id]; s != nil {
		s.Attacks++
	}
}

// RecordHeal increments the heals given.
func (lt *LifetimeTracker) RecordHeal(id uint64) {
	if s := lt.stats[id]; s != nil {
		s.Heals++
	}
}

// RecordMeal increments the meals eaten.
func (lt *LifetimeTracker) RecordMeal(id uint64) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// UpdateHP tracks peak HP.
func (lt *LifetimeTracker) UpdateHP(id uint64, hp int) {
	if s := lt.stats[id]; s != nil && hp > s.PeakHP {
		s.PeakHP = hp
	}
}

// Count returns the number of tracked monsters.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// ActiveLineageCount returns the number of founders with living descendants.
func (lt *LifetimeTracker) ActiveLineageCount() int {
	seen := make(map[uint64]struct{})
	for _, stats := range lt.stats {
		seen[stats.FounderID] = struct{}{}
	}
	return len(seen)
}
