package gtfs

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedFiles() map[string][]string {
	return map[string][]string{
		"agency.txt": {
			"agency_id,agency_name,agency_url,agency_timezone",
			"14010000000001001,Metro,https://example.com,Europe/Stockholm",
		},
		"calendar_dates.txt": {
			"service_id,date,exception_type",
			"1,20250421,1",
		},
		"routes.txt": {
			"route_id,agency_id,route_short_name,route_long_name,route_type",
			"r10,14010000000001001,10,Blue line,401",
		},
		"shapes.txt": {
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled",
			"s1,59.33,18.06,1,0",
			"s1,59.34,18.07,2,",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"t1,08:00:00,08:00:30,A,1",
			"t1,25:10:00,25:10:00,B,2",
		},
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon",
			"A,Alpha,59.33,18.06",
			"B,Bravo,59.34,18.07",
		},
		"trips.txt": {
			"route_id,service_id,trip_id,shape_id,direction_id",
			"r10,1,t1,s1,0",
		},
	}
}

func writeFeedDir(t *testing.T, files map[string][]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, lines := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")), 0o644))
	}

	return dir
}

func writeFeedZip(t *testing.T, files map[string][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.zip")
	file, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(file)
	for name, lines := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(lines, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, file.Close())

	return path
}

func TestLoadDirectory(t *testing.T) {
	feed, err := Load(writeFeedDir(t, feedFiles()))
	require.NoError(t, err)

	assert.Len(t, feed.Agencies, 1)
	assert.Len(t, feed.CalendarDates, 1)
	assert.Empty(t, feed.Calendars)
	require.Len(t, feed.Routes, 1)
	assert.Equal(t, RouteTypeMetro, feed.Routes[0].Type)
	assert.Equal(t, "10", feed.Routes[0].DisplayName())
	require.Len(t, feed.StopTimes, 2)
	assert.Equal(t, "25:10:00", feed.StopTimes[1].ArrivalTime)
	require.Len(t, feed.Shapes, 2)
	assert.Equal(t, 0.0, feed.Shapes[1].DistanceTraveled)
	assert.Len(t, feed.Stops, 2)
	assert.Len(t, feed.Trips, 1)
}

func TestLoadZip(t *testing.T) {
	files := feedFiles()
	files["calendar.txt"] = []string{
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"2,1,1,1,1,1,0,0,20250101,20251231",
	}

	feed, err := Load(writeFeedZip(t, files))
	require.NoError(t, err)

	require.Len(t, feed.Calendars, 1)
	assert.Equal(t, "2", feed.Calendars[0].ServiceID)
	assert.Len(t, feed.StopTimes, 2)
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	files := feedFiles()
	files["stops.txt"][0] = "\ufeff" + files["stops.txt"][0]

	feed, err := Load(writeFeedDir(t, files))
	require.NoError(t, err)

	require.Len(t, feed.Stops, 2)
	assert.Equal(t, "A", feed.Stops[0].ID)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	files := feedFiles()
	delete(files, "shapes.txt")
	delete(files, "trips.txt")

	_, err := Load(writeFeedDir(t, files))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFile)

	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"shapes.txt", "trips.txt"}, missing.Files)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nothing"))
	assert.Error(t, err)
}

func TestTransportTypeOf(t *testing.T) {
	assert.Equal(t, TransportTypeMetro, TransportTypeOf(1))
	assert.Equal(t, TransportTypeMetro, TransportTypeOf(RouteTypeMetro))
	assert.Equal(t, TransportTypeBus, TransportTypeOf(3))
	assert.Equal(t, TransportTypeBus, TransportTypeOf(700))
	assert.Equal(t, TransportTypeRail, TransportTypeOf(109))
	assert.Equal(t, TransportTypeUnknown, TransportTypeOf(9999))
}
