package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPopulationCrash    BookmarkType = "population_crash"
	BookmarkPopulationRecovery BookmarkType = "population_recovery"
	BookmarkExtinction         BookmarkType = "extinction"
	BookmarkGenomeTakeover     BookmarkType = "genome_takeover"
	BookmarkStablePopulation   BookmarkType = "stable_population"
)

// Bookmark marks a noteworthy window in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds for bookmark detection.
const (
	crashDrop      = 0.30 // fraction below the recent peak
	crashMinLoss   = 10   // monsters lost before a crash counts
	recoveryFactor = 3    // growth over the recent minimum
	recoveryMin    = 10
	takeoverShare  = 0.5
	stableWindows  = 5
	stableMaxCVSq  = 0.04 // squared coefficient of variation
	stableMinPop   = 10
	stableLookback = 4
)

// BookmarkDetector detects noteworthy moments from successive window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	recentMin    int
	recentPeak   int
	extinct      bool
	takeover     string // genome of the last takeover
	stableStreak int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableLookback+1 {
		historySize = stableLookback + 1
	}
	return &BookmarkDetector{
		history:   make([]WindowStats, historySize),
		recentMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkExtinction,
		bd.checkCrash,
		bd.checkRecovery,
		bd.checkTakeover,
		bd.checkStable,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	if bd.recentMin < 0 || stats.Monsters < bd.recentMin {
		bd.recentMin = stats.Monsters
	}
	if stats.Monsters > bd.recentPeak {
		bd.recentPeak = stats.Monsters
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	size := bd.historyIdx
	if bd.historyFull {
		size = len(bd.history)
	}
	if n > size {
		n = size
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + len(bd.history)) % len(bd.history)
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Monsters > 0 {
		bd.extinct = false
		return nil
	}
	if bd.extinct {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No monsters left (%d deaths this window)", stats.Deaths()),
	}
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Monsters)/float64(bd.recentPeak)
	if drop > crashDrop && stats.Monsters < bd.recentPeak-crashMinLoss {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Monsters
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Monsters),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkRecovery(stats WindowStats) *Bookmark {
	if bd.recentMin <= 0 {
		return nil
	}

	if stats.Monsters >= bd.recentMin*recoveryFactor && stats.Monsters >= recoveryMin {
		oldMin := bd.recentMin
		bd.recentMin = stats.Monsters
		return &Bookmark{
			Type:        BookmarkPopulationRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population recovered from %d to %d", oldMin, stats.Monsters),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkTakeover(stats WindowStats) *Bookmark {
	if stats.DominantShare < takeoverShare || stats.DominantGenome == bd.takeover {
		return nil
	}
	if stats.DominantGenome == "" {
		return nil
	}
	bd.takeover = stats.DominantGenome
	return &Bookmark{
		Type:        BookmarkGenomeTakeover,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Genome %s holds %.0f%% of %d monsters", stats.DominantGenome, stats.DominantShare*100, stats.Monsters),
	}
}

func (bd *BookmarkDetector) checkStable(stats WindowStats) *Bookmark {
	if stats.Monsters < stableMinPop {
		bd.stableStreak = 0
		return nil
	}

	history := bd.recent(stableLookback)
	if len(history) < stableLookback {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += float64(h.Monsters)
	}
	mean := sum / float64(len(history))

	var variance float64
	for _, h := range history {
		d := float64(h.Monsters) - mean
		variance += d * d
	}
	variance /= float64(len(history))

	if mean > 0 && variance/(mean*mean) < stableMaxCVSq {
		bd.stableStreak++
	} else {
		bd.stableStreak = 0
	}

	// Trigger exactly once per stable stretch
	if bd.stableStreak == stableWindows {
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population stable around %.0f monsters over %d windows", mean, stableWindows),
		}
	}
	return nil
}
