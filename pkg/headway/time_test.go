package headway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransitTime(t *testing.T) {
	for _, tc := range []struct {
		value        string
		expected     TimeOfDay
		originalHour int
	}{
		{"00:00:00", TimeOfDay{0, 0, 0}, 0},
		{"08:05:30", TimeOfDay{8, 5, 30}, 8},
		{"8:05:30", TimeOfDay{8, 5, 30}, 8},
		{"23:59:59", TimeOfDay{23, 59, 59}, 23},
		{"24:00:00", TimeOfDay{0, 0, 0}, 24},
		{"25:10:00", TimeOfDay{1, 10, 0}, 25},
		{"47:59:59", TimeOfDay{23, 59, 59}, 47},
		{" 12:30:00 ", TimeOfDay{12, 30, 0}, 12},
	} {
		t.Run(tc.value, func(t *testing.T) {
			parsed, err := ParseTransitTime(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed.Time)
			assert.Equal(t, tc.originalHour, parsed.OriginalHour)
			assert.Equal(t, tc.originalHour >= 24, parsed.Rollover())
		})
	}
}

func TestParseTransitTimeRollsOverEveryHour(t *testing.T) {
	for hour := 24; hour <= 47; hour++ {
		value := TimeOfDay{Hour: hour, Minute: 15, Second: 45}.String()

		parsed, err := ParseTransitTime(value)
		require.NoError(t, err)
		assert.Equal(t, hour-24, parsed.Time.Hour)
		assert.Equal(t, 15, parsed.Time.Minute)
		assert.Equal(t, 45, parsed.Time.Second)
		assert.Equal(t, hour, parsed.OriginalHour)
	}
}

func TestParseTransitTimeMalformed(t *testing.T) {
	for _, value := range []string{
		"",
		"   ",
		"8:0:0",
		"24:61:00",
		"12:00:60",
		"12:00",
		"12:00:00:00",
		"123:00:00",
		"ab:00:00",
		"-1:00:00",
		"12:+1:00",
	} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseTransitTime(value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTime))

			var malformed *MalformedTimeError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, value, malformed.Value)
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	morning := TimeOfDay{Hour: 8, Minute: 10}
	later := TimeOfDay{Hour: 8, Minute: 25}

	assert.Equal(t, 29400, morning.Seconds())
	assert.Equal(t, 490.0, morning.Minutes())
	assert.True(t, morning.Before(later))
	assert.False(t, later.Before(morning))
	assert.Equal(t, "08:10:00", morning.String())
}
