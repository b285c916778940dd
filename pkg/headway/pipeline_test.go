package headway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/headways/pkg/gtfs"
)

func TestRun(t *testing.T) {
	stopTimes := []gtfs.StopTime{
		{TripID: "t1", StopID: "A", ArrivalTime: "08:00:00"},
		{TripID: "t2", StopID: "A", ArrivalTime: "08:10:00"},
		{TripID: "t3", StopID: "A", ArrivalTime: "08:25:00"},
		{TripID: "t3", StopID: "B", ArrivalTime: ""},
		{TripID: "t4", StopID: "B", ArrivalTime: "8:0:0"},
	}

	result, err := Run(stopTimes, Options{Policy: DefaultPolicy()})
	require.NoError(t, err)

	assert.Len(t, result.Batch.Events, 3)
	assert.Equal(t, 1, result.Batch.Untimed)
	require.Len(t, result.Batch.Rejected, 1)
	assert.Equal(t, "t4", result.Batch.Rejected[0].TripID)
	assert.ErrorIs(t, result.Batch.Rejected[0], ErrMalformedTime)

	assert.Len(t, result.Headways, 2)
	assert.Len(t, result.Coarse, 4)
	assert.Len(t, result.Precise, 5)
	assert.Len(t, result.Aggregates, 5)
	assert.Len(t, result.Distribution, 5)

	assert.Equal(t, 12.5, *result.Aggregates[1].MeanIntervalMinutes)
}

func TestRunStrict(t *testing.T) {
	stopTimes := []gtfs.StopTime{
		{TripID: "t1", StopID: "A", ArrivalTime: "08:00:00"},
		{TripID: "t2", StopID: "A", ArrivalTime: "24:61:00"},
	}

	_, err := Run(stopTimes, Options{Policy: DefaultPolicy(), Strict: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedTime)

	var recordErr *RecordError
	require.ErrorAs(t, err, &recordErr)
	assert.Equal(t, "t2", recordErr.TripID)
}
