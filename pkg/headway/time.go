package headway

import (
	"fmt"
	"strings"
)

// TimeOfDay is a wall-clock time, hour always in [0,24)
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t TimeOfDay) Minutes() float64 {
	return float64(t.Seconds()) / 60
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Seconds() < other.Seconds()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// TransitTime is a GTFS time value split into its wall-clock part and the hour as scheduled.
// OriginalHour is 24 or more for service running past midnight on the same service day.
type TransitTime struct {
	Time         TimeOfDay
	OriginalHour int
}

func (t TransitTime) Rollover() bool {
	return t.OriginalHour >= 24
}

// ParseTransitTime parses H:MM:SS or HH:MM:SS where the hour may exceed 23.
// Minute and second must be exactly two digits each.
func ParseTransitTime(value string) (TransitTime, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return TransitTime{}, &MalformedTimeError{Value: value, Reason: "empty"}
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return TransitTime{}, &MalformedTimeError{Value: value, Reason: "expected three colon separated fields"}
	}

	if len(parts[0]) < 1 || len(parts[0]) > 2 {
		return TransitTime{}, &MalformedTimeError{Value: value, Reason: "hour must have one or two digits"}
	}
	if len(parts[1]) != 2 || len(parts[2]) != 2 {
		return TransitTime{}, &MalformedTimeError{Value: value, Reason: "minute and second must have two digits"}
	}

	var fields [3]int
	for i, part := range parts {
		number, ok := parseDigits(part)
		if !ok {
			return TransitTime{}, &MalformedTimeError{Value: value, Reason: fmt.Sprintf("non numeric field %q", part)}
		}
		fields[i] = number
	}

	hour, minute, second := fields[0], fields[1], fields[2]
	if minute > 59 {
		return TransitTime{}, &MalformedTimeError{Value: value, Reason: "minute out of range"}
	}
	if second > 59 {
		return TransitTime{}, &MalformedTimeError{Value: value, Reason: "second out of range"}
	}

	return TransitTime{
		Time: TimeOfDay{
			Hour:   hour % 24,
			Minute: minute,
			Second: second,
		},
		OriginalHour: hour,
	}, nil
}

// strconv.Atoi accepts signs, we only want bare digits
func parseDigits(s string) (int, bool) {
	number := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		number = number*10 + int(c-'0')
	}

	return number, true
}
