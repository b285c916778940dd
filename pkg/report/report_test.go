package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

func testAggregates(t *testing.T) []headway.WindowAggregate {
	t.Helper()

	mean := 12.5
	peak, err := headway.Adjust(headway.MorningPeak, 2, headway.DefaultPolicy())
	require.NoError(t, err)
	peak.MeanIntervalMinutes = &mean

	midday, err := headway.Adjust(headway.Midday, 0, headway.DefaultPolicy())
	require.NoError(t, err)

	return []headway.WindowAggregate{peak, midday}
}

func TestWindowAggregateCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteCSV(&buffer, WindowAggregateRows(testAggregates(t))))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "time_window,trip_count,mean_interval_minutes,adjustment_factor,adjusted_trip_count,capacity_original,capacity_adjusted", lines[0])
	assert.Equal(t, "Morning Peak,2,12.5,1.2,2,1400,1400", lines[1])
	assert.Equal(t, "Midday,0,,0.9,0,0,0", lines[2])
}

func TestTripCountCSVFile(t *testing.T) {
	counts := network.TripCountsByWeekday([]network.TripDay{
		{TripID: "t1", Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)},
		{TripID: "t2", Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)},
	})

	directory := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, WriteCSVFile(directory, TripCountsFile, TripCountRows(counts)))

	data, err := os.ReadFile(filepath.Join(directory, TripCountsFile))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "day_of_week,trip_count", lines[0])
	assert.Equal(t, "Monday,2", lines[1])
	assert.Equal(t, "Sunday,0", lines[7])
}

func TestHeadwayRows(t *testing.T) {
	rows, err := HeadwayRows([]headway.Headway{
		{
			StopID:          "A",
			TripID:          "t1",
			NextTripID:      "t2",
			Current:         headway.TimeOfDay{Hour: 1, Minute: 10},
			Next:            headway.TimeOfDay{Hour: 1, Minute: 20},
			OriginalHour:    25,
			IntervalMinutes: 10,
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "01:10:00", rows[0].ArrivalTime)
	assert.Equal(t, "01:20:00", rows[0].NextArrivalTime)
	assert.Equal(t, 25, rows[0].OriginalHour)
	assert.Equal(t, "Early Morning", rows[0].PreciseWindow)
}

func TestCoarseIntervalRows(t *testing.T) {
	mean := 4.0
	rows := CoarseIntervalRows([]headway.WindowSummary{
		{Window: headway.Morning, Records: 3, MeanIntervalMinutes: &mean},
		{Window: headway.Night},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "4", rows[0].MeanIntervalMinutes)
	assert.Equal(t, "", rows[1].MeanIntervalMinutes)
}

func testSummary(t *testing.T) *Summary {
	return &Summary{
		Feed:             "feed.zip",
		StartDate:        "2025-04-21",
		EndDate:          "2025-04-27",
		Routes:           []string{"10"},
		StopTimes:        42,
		WindowAggregates: NewWindowAggregates(testAggregates(t)),
		Connectivity: NewStopConnectivity([]network.StopConnectivity{
			{StopID: "A", StopName: "Alpha", RouteCount: 2},
		}),
	}
}

func TestSummaryJSON(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, testSummary(t).WriteJSON(&buffer, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))

	assert.Equal(t, "feed.zip", decoded["feed"])
	assert.NotContains(t, decoded, "stop_times")
	assert.NotContains(t, decoded, "stop_connectivity")

	aggregates := decoded["window_aggregates"].([]interface{})
	require.Len(t, aggregates, 2)

	peak := aggregates[0].(map[string]interface{})
	assert.Equal(t, 12.5, peak["mean_interval_minutes"])
	assert.NotContains(t, peak, "capacity_original")

	midday := aggregates[1].(map[string]interface{})
	assert.Contains(t, midday, "mean_interval_minutes")
	assert.Nil(t, midday["mean_interval_minutes"])
}

func TestSummaryJSONDetail(t *testing.T) {
	directory := t.TempDir()
	require.NoError(t, testSummary(t).WriteFile(directory, true))

	data, err := os.ReadFile(filepath.Join(directory, SummaryFile))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 42.0, decoded["stop_times"])
	require.Len(t, decoded["stop_connectivity"], 1)

	peak := decoded["window_aggregates"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 1400.0, peak["capacity_original"])
}
