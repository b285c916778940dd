package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/headways/pkg/gtfs"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

func testInput(t *testing.T) Input {
	t.Helper()

	events := []headway.ArrivalEvent{}
	for _, arrival := range []string{"07:00:00", "07:04:00", "07:10:00", "07:15:00", "07:21:00", "12:00:00"} {
		event, err := headway.NewArrivalEvent("A", arrival, arrival)
		require.NoError(t, err)
		events = append(events, event)
	}

	headways, err := headway.Calculate(headway.Sequence(events))
	require.NoError(t, err)

	coarse, err := headway.AverageByWindow(headways, headway.SchemeCoarse)
	require.NoError(t, err)
	aggregates, err := headway.Aggregate(headways, headway.DefaultPolicy())
	require.NoError(t, err)
	distribution, err := headway.Distribution(headways, headway.SchemePrecise)
	require.NoError(t, err)

	n := &network.Network{
		Routes: []gtfs.Route{{ID: "r10", ShortName: "10"}},
		Trips:  []gtfs.Trip{{ID: "t1", RouteID: "r10", ShapeID: "s1"}},
		StopTimes: []gtfs.StopTime{
			{TripID: "t1", StopID: "A"},
		},
		Stops: []gtfs.Stop{{ID: "A", Name: "Alpha", Latitude: 59.33, Longitude: 18.06}},
		Shapes: []gtfs.Shape{
			{ID: "s1", PointLatitude: 59.33, PointLongitude: 18.06, PointSequence: 1},
			{ID: "s1", PointLatitude: 59.34, PointLongitude: 18.07, PointSequence: 2},
		},
	}

	return Input{
		TripCounts: network.TripCountsByWeekday([]network.TripDay{
			{TripID: "t1", Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)},
		}),
		Network:      n,
		Coarse:       coarse,
		Aggregates:   aggregates,
		Distribution: distribution,
	}
}

func TestRender(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, Render(&buffer, testInput(t)))

	html := buffer.String()
	for _, title := range []string{
		"Trips per day of week",
		"Route shapes",
		"Stops",
		"Routes per stop",
		"Average interval per part of day",
		"Original and adjusted trips per time window",
		"Interval distribution per time window",
	} {
		assert.Contains(t, html, title)
	}
}

func TestRoutesPerStopEmpty(t *testing.T) {
	scatter := RoutesPerStop(nil)
	assert.NotNil(t, scatter)
}

func TestCoarseIntervalsLeavesGaps(t *testing.T) {
	input := testInput(t)
	bar := CoarseIntervals(input.Coarse)

	require.Len(t, bar.MultiSeries, 1)
	data := bar.MultiSeries[0].Data.([]opts.BarData)
	require.Len(t, data, 4)
	assert.Equal(t, "-", data[1].Value)
}
