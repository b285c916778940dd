package gtfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := ParseDate(value)
	require.NoError(t, err)

	return parsed
}

func TestActiveServiceDates(t *testing.T) {
	feed := &Feed{
		Calendars: []Calendar{
			{ServiceID: "weekday", Monday: 1, Tuesday: 1, Wednesday: 1, Thursday: 1, Friday: 1, Start: "20250101", End: "20250424"},
		},
		CalendarDates: []CalendarDate{
			{ServiceID: "weekday", Date: "20250422", ExceptionType: ExceptionTypeRemoved},
			{ServiceID: "special", Date: "20250426", ExceptionType: ExceptionTypeAdded},
			{ServiceID: "special", Date: "20250501", ExceptionType: ExceptionTypeAdded},
			{ServiceID: "cancelled", Date: "20250421", ExceptionType: ExceptionTypeRemoved},
		},
	}

	serviceDates, err := ActiveServiceDates(feed, date(t, "20250421"), date(t, "20250427"))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		date(t, "20250421"),
		date(t, "20250423"),
		date(t, "20250424"),
	}, serviceDates["weekday"])
	assert.Equal(t, []time.Time{date(t, "20250426")}, serviceDates["special"])
	assert.NotContains(t, serviceDates, "cancelled")

	assert.True(t, serviceDates.Runs("weekday", date(t, "20250423")))
	assert.False(t, serviceDates.Runs("weekday", date(t, "20250422")))
	assert.False(t, serviceDates.Runs("missing", date(t, "20250423")))
}

func TestActiveServiceDatesRejectsBadInput(t *testing.T) {
	_, err := ActiveServiceDates(&Feed{}, date(t, "20250427"), date(t, "20250421"))
	assert.Error(t, err)

	feed := &Feed{CalendarDates: []CalendarDate{{ServiceID: "1", Date: "2025-04-21", ExceptionType: 1}}}
	_, err = ActiveServiceDates(feed, date(t, "20250421"), date(t, "20250427"))
	assert.Error(t, err)
}
