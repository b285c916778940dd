package headway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, stopID string, tripID string, rawTime string) ArrivalEvent {
	t.Helper()

	event, err := NewArrivalEvent(stopID, tripID, rawTime)
	require.NoError(t, err)

	return event
}

func TestSequenceOrdersEachStop(t *testing.T) {
	events := []ArrivalEvent{
		mustEvent(t, "B", "t3", "09:00:00"),
		mustEvent(t, "A", "t2", "08:25:00"),
		mustEvent(t, "A", "t1", "08:10:00"),
		mustEvent(t, "A", "t0", "08:00:00"),
		mustEvent(t, "B", "t4", "07:00:00"),
	}

	sequenced := Sequence(events)
	require.Len(t, sequenced, 5)

	var order []string
	for _, event := range sequenced {
		order = append(order, event.StopID+"/"+event.TripID)
	}
	assert.Equal(t, []string{"A/t0", "A/t1", "A/t2", "B/t4", "B/t3"}, order)

	assert.Equal(t, "t1", sequenced[0].Next.TripID)
	assert.Equal(t, "t2", sequenced[1].Next.TripID)
	assert.Nil(t, sequenced[2].Next)
	assert.Equal(t, "t3", sequenced[3].Next.TripID)
	assert.Nil(t, sequenced[4].Next)
}

func TestSequenceIsStableForEqualTimes(t *testing.T) {
	events := []ArrivalEvent{
		mustEvent(t, "A", "first", "10:00:00"),
		mustEvent(t, "A", "second", "10:00:00"),
		mustEvent(t, "A", "third", "10:00:00"),
	}

	sequenced := Sequence(events)
	require.Len(t, sequenced, 3)
	assert.Equal(t, "first", sequenced[0].TripID)
	assert.Equal(t, "second", sequenced[1].TripID)
	assert.Equal(t, "third", sequenced[2].TripID)
}

func TestSequenceRolloverSortsByNormalisedTime(t *testing.T) {
	events := []ArrivalEvent{
		mustEvent(t, "A", "late", "25:10:00"),
		mustEvent(t, "A", "early", "01:00:00"),
		mustEvent(t, "A", "evening", "23:00:00"),
	}

	sequenced := Sequence(events)
	require.Len(t, sequenced, 3)
	assert.Equal(t, "early", sequenced[0].TripID)
	assert.Equal(t, "late", sequenced[1].TripID)
	assert.Equal(t, 25, sequenced[1].OriginalHour)
	assert.Equal(t, "evening", sequenced[2].TripID)
}

func TestSequenceEmpty(t *testing.T) {
	assert.Empty(t, Sequence(nil))
}
