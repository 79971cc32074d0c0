package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, kind BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == kind {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 100), Monsters: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, Monsters: 50})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("expected population_crash bookmark")
	}

	// The peak resets, so the same level does not trigger again
	bookmarks = bd.Check(WindowStats{WindowEndTick: 600, Monsters: 50})
	if hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("crash should not repeat without a new peak")
	}
}

func TestBookmarkDetector_PopulationRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 100), Monsters: 4})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Monsters: 20})
	if !hasBookmark(bookmarks, BookmarkPopulationRecovery) {
		t.Error("expected population_recovery bookmark")
	}
}

func TestBookmarkDetector_ExtinctionOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 100, Monsters: 5})

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 200}), BookmarkExtinction) {
		t.Fatal("expected extinction bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 300}), BookmarkExtinction) {
		t.Error("extinction should be reported once")
	}
}

func TestBookmarkDetector_GenomeTakeover(t *testing.T) {
	bd := NewBookmarkDetector(10)

	minor := WindowStats{Monsters: 40, DominantGenome: "DWIA", DominantShare: 0.3}
	if hasBookmark(bd.Check(minor), BookmarkGenomeTakeover) {
		t.Error("30% share is not a takeover")
	}

	major := WindowStats{Monsters: 40, DominantGenome: "WDIA", DominantShare: 0.7}
	if !hasBookmark(bd.Check(major), BookmarkGenomeTakeover) {
		t.Error("expected genome_takeover bookmark")
	}
	if hasBookmark(bd.Check(major), BookmarkGenomeTakeover) {
		t.Error("the same genome should not trigger twice in a row")
	}
}

func TestBookmarkDetector_StablePopulation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int64(i * 100), Monsters: 80 + i%2})
		if hasBookmark(bookmarks, BookmarkStablePopulation) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("expected one stable_population bookmark, got %d", triggered)
	}
}
