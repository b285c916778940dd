package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

const (
	TripCountsFile       = "trip_counts.csv"
	WindowAggregatesFile = "window_aggregates.csv"
	CoarseIntervalsFile  = "coarse_intervals.csv"
	StopConnectivityFile = "stop_connectivity.csv"
	HeadwaysFile         = "headways.csv"
	SummaryFile          = "report.json"
	ChartsFile           = "charts.html"
)

// WriteCSV marshals rows, a slice of csv tagged structs, to w
func WriteCSV(w io.Writer, rows interface{}) error {
	return gocsv.Marshal(rows, w)
}

// WriteCSVFile writes rows to name inside directory, creating the directory if needed
func WriteCSVFile(directory string, name string, rows interface{}) error {
	return WriteFile(directory, name, func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
}

// WriteFile creates name inside directory and hands it to write
func WriteFile(directory string, name string, write func(io.Writer) error) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(directory, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	log.Info().Str("file", path).Msg("Written output")

	return nil
}
