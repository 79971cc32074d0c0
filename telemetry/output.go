package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/monsters/config"
)

// csvFile is an output CSV that writes its header with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func createCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{f: f}, nil
}

// write appends records, which must be a slice of csv-tagged structs.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvFile
	genomes   *csvFile
	perf      *csvFile
	bookmarks *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, target := range []struct {
		name string
		dst  **csvFile
	}{
		{"telemetry.csv", &om.telemetry},
		{"genomes.csv", &om.genomes},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	} {
		f, err := createCSV(dir, target.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*target.dst = f
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteCensus writes the census rows to genomes.csv.
func (om *OutputManager) WriteCensus(c Census) error {
	if om == nil || len(c.Top) == 0 {
		return nil
	}
	if err := om.genomes.write(c.Top); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var errs []error
	for _, c := range []*csvFile{om.telemetry, om.genomes, om.perf, om.bookmarks} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
