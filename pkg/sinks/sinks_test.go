package sinks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

func TestNewRun(t *testing.T) {
	mean := 3.5
	peak, err := headway.Adjust(headway.MorningPeak, 10, headway.DefaultPolicy())
	require.NoError(t, err)
	peak.MeanIntervalMinutes = &mean

	late, err := headway.Adjust(headway.LateEvening, 0, headway.DefaultPolicy())
	require.NoError(t, err)

	counts := network.TripCountsByWeekday([]network.TripDay{
		{TripID: "t1", Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)},
	})

	runIdentifier := RunIdentifier("2025-04-21", "2025-04-27")
	assert.Equal(t, "headways-2025-04-21-2025-04-27", runIdentifier)

	run := NewRun(runIdentifier, []headway.WindowAggregate{peak, late}, counts)
	run.SetWindow("2025-04-21", "2025-04-27")

	require.Len(t, run.WindowAggregates, 2)
	assert.Equal(t, "headways-2025-04-21-2025-04-27-window-0", run.WindowAggregates[0].PrimaryIdentifier)
	assert.Equal(t, "Morning Peak", run.WindowAggregates[0].Window)
	assert.Equal(t, 12, run.WindowAggregates[0].AdjustedTripCount)
	assert.Equal(t, "2025-04-21", run.WindowAggregates[1].StartDate)

	require.Len(t, run.TripCounts, 7)
	assert.Equal(t, "headways-2025-04-21-2025-04-27-day-Monday", run.TripCounts[0].PrimaryIdentifier)
	assert.Equal(t, 1, run.TripCounts[0].TripCount)

	body, err := json.Marshal(run.WindowAggregates[1])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"meanintervalminutes":null`)
}
