package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	births           int
	mutations        int
	deathsMetabolism int
	deathsAttack     int
	deathsDivision   int
	attacks          int
	heals            int
	meals            int
	stalled          int
	geneExecutions   map[byte]int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int64(windowTicks),
		geneExecutions:      make(map[byte]int),
	}
}

// RecordBirth records a division; mutated marks a mutated child.
func (c *Collector) RecordBirth(mutated bool) {
	c.births++
	if mutated {
		c.mutations++
	}
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(cause DeathCause) {
	switch cause {
	case CauseAttack:
		c.deathsAttack++
	case CauseDivision:
		c.deathsDivision++
	default:
		c.deathsMetabolism++
	}
}

// RecordAttack records HP taken from a neighbor.
func (c *Collector) RecordAttack() {
	c.attacks++
}

// RecordHeal records HP given to a neighbor.
func (c *Collector) RecordHeal() {
	c.heals++
}

// RecordMeal records food consumed.
func (c *Collector) RecordMeal() {
	c.meals++
}

// RecordGene records the gene that ran for a monster this tick.
func (c *Collector) RecordGene(letter byte) {
	c.geneExecutions[letter]++
}

// RecordStalled records a monster for which no gene applied.
func (c *Collector) RecordStalled() {
	c.stalled++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the population state measured at window end.
type Sample struct {
	Monsters       int
	Food           int
	HP             []float64
	Genomes        []string
	ActiveLineages int
}

// Flush produces a WindowStats and resets counters for the next window.
// topN bounds the number of genomes returned in the census.
func (c *Collector) Flush(currentTick int64, sample Sample, topN int) (WindowStats, Census) {
	hpMean, hpStd, hpP10, hpP50, hpP90 := ComputeHPStats(sample.HP)
	census := TakeCensus(currentTick, sample.Genomes, topN)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Monsters: sample.Monsters,
		Food:     sample.Food,

		Births:           c.births,
		Mutations:        c.mutations,
		DeathsMetabolism: c.deathsMetabolism,
		DeathsAttack:     c.deathsAttack,
		DeathsDivision:   c.deathsDivision,
		Attacks:          c.attacks,
		Heals:            c.heals,
		Meals:            c.meals,
		Stalled:          c.stalled,

		GeneExecutions: FormatGeneCounts(c.geneExecutions),

		HPMean: hpMean,
		HPStd:  hpStd,
		HPP10:  hpP10,
		HPP50:  hpP50,
		HPP90:  hpP90,

		DistinctGenomes: census.Distinct,
		ActiveLineages:  sample.ActiveLineages,
	}
	if len(census.Top) > 0 {
		stats.DominantGenome = census.Top[0].Genome
		stats.DominantShare = census.Top[0].Share
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.mutations = 0
	c.deathsMetabolism = 0
	c.deathsAttack = 0
	c.deathsDivision = 0
	c.attacks = 0
	c.heals = 0
	c.meals = 0
	c.stalled = 0
	clear(c.geneExecutions)

	return stats, census
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
