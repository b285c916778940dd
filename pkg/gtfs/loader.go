package gtfs

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

var ErrMissingFile = errors.New("required feed file missing")

type MissingFileError struct {
	Source string
	Files  []string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("feed %s is missing required files %v", e.Source, e.Files)
}

func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

var RequiredFiles = []string{
	"agency.txt",
	"calendar_dates.txt",
	"routes.txt",
	"shapes.txt",
	"stop_times.txt",
	"stops.txt",
	"trips.txt",
}

var OptionalFiles = []string{
	"calendar.txt",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func init() {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		return r
	})
}

func (feed *Feed) destinations() map[string]interface{} {
	return map[string]interface{}{
		"agency.txt":         &feed.Agencies,
		"stops.txt":          &feed.Stops,
		"routes.txt":         &feed.Routes,
		"trips.txt":          &feed.Trips,
		"stop_times.txt":     &feed.StopTimes,
		"calendar.txt":       &feed.Calendars,
		"calendar_dates.txt": &feed.CalendarDates,
		"shapes.txt":         &feed.Shapes,
	}
}

// Load reads a feed from a directory or a zip archive.
// Every required file is checked for before anything is parsed, then the tables are
// parsed concurrently.
func Load(path string) (*Feed, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}

	var fileSystem fs.FS
	if info.IsDir() {
		fileSystem = os.DirFS(path)
	} else {
		archive, err := zip.OpenReader(path)
		if err != nil {
			return nil, fmt.Errorf("open feed archive %s: %w", path, err)
		}
		defer archive.Close()

		fileSystem = archive
	}

	return LoadFS(fileSystem, path)
}

// LoadFS reads the feed tables from the root of fileSystem. source is only used in errors and logs.
func LoadFS(fileSystem fs.FS, source string) (*Feed, error) {
	var missing []string
	for _, fileName := range RequiredFiles {
		if _, err := fs.Stat(fileSystem, fileName); err != nil {
			missing = append(missing, fileName)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFileError{Source: source, Files: missing}
	}

	feed := &Feed{}
	destinations := feed.destinations()

	loadPool := pool.New().WithErrors()

	for _, fileName := range slices.Concat(RequiredFiles, OptionalFiles) {
		destination := destinations[fileName]

		loadPool.Go(func() error {
			file, err := fileSystem.Open(fileName)
			if errors.Is(err, fs.ErrNotExist) && slices.Contains(OptionalFiles, fileName) {
				log.Debug().Str("file", fileName).Msg("Optional file not present")
				return nil
			}
			if err != nil {
				return fmt.Errorf("open %s: %w", fileName, err)
			}
			defer file.Close()

			log.Info().Str("file", fileName).Msg("Loading file")

			if err := gocsv.Unmarshal(skipBOM(file), destination); err != nil {
				if errors.Is(err, gocsv.ErrEmptyCSVFile) {
					log.Warn().Str("file", fileName).Msg("Empty csv file")
					return nil
				}

				return fmt.Errorf("parse %s: %w", fileName, err)
			}

			return nil
		})
	}

	if err := loadPool.Wait(); err != nil {
		return nil, err
	}

	log.Info().
		Str("source", source).
		Int("routes", len(feed.Routes)).
		Int("trips", len(feed.Trips)).
		Int("stoptimes", len(feed.StopTimes)).
		Int("stops", len(feed.Stops)).
		Msg("Loaded feed")

	return feed, nil
}

func skipBOM(reader io.Reader) io.Reader {
	buffered := bufio.NewReader(reader)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	return buffered
}
