package telemetry

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// GenomeCount is one census row: how many living monsters carry a genome.
type GenomeCount struct {
	Tick   int64   `csv:"tick"`
	Rank   int     `csv:"rank"`
	Genome string  `csv:"genome"`
	Count  int     `csv:"count"`
	Share  float64 `csv:"share"`
}

// Census summarizes genome diversity at one tick.
type Census struct {
	Tick     int64
	Total    int
	Distinct int
	Top      []GenomeCount // most common first, ties broken by genome
}

// TakeCensus counts genomes and keeps the topN most common.
// topN <= 0 keeps them all.
func TakeCensus(tick int64, genomes []string, topN int) Census {
	counts := make(map[string]int)
	for _, g := range genomes {
		counts[g]++
	}

	rows := make([]GenomeCount, 0, len(counts))
	for g, n := range counts {
		rows = append(rows, GenomeCount{Tick: tick, Genome: g, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Genome < rows[j].Genome
	})
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Share = float64(rows[i].Count) / float64(len(genomes))
	}

	return Census{
		Tick:     tick,
		Total:    len(genomes),
		Distinct: len(counts),
		Top:      rows,
	}
}

// LogCensus logs the leading genomes.
func (c Census) LogCensus() {
	attrs := []any{"tick", c.Tick, "total", c.Total, "distinct", c.Distinct}
	for _, row := range c.Top {
		attrs = append(attrs, "#"+strconv.Itoa(row.Rank), row.Genome+"="+strconv.Itoa(row.Count))
	}
	slog.Info("census", attrs...)
}

// FormatGeneCounts renders per-letter counts as "A=3;D=10", sorted by letter.
func FormatGeneCounts(counts map[byte]int) string {
	letters := make([]byte, 0, len(counts))
	for l, n := range counts {
		if n > 0 {
			letters = append(letters, l)
		}
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	var sb strings.Builder
	for i, l := range letters {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteByte(l)
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(counts[l]))
	}
	return sb.String()
}
