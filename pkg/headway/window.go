package headway

import (
	"fmt"
	"strings"
)

type Scheme int

const (
	SchemeCoarse Scheme = iota
	SchemePrecise
)

func (s Scheme) String() string {
	switch s {
	case SchemeCoarse:
		return "coarse"
	case SchemePrecise:
		return "precise"
	default:
		return "unknown"
	}
}

// TimeWindow is a named part of the day. Windows of the same scheme compare in day order.
type TimeWindow int

//goland:noinspection GoUnusedConst
const (
	WindowUnknown TimeWindow = iota

	// Coarse
	Morning
	Afternoon
	Evening
	Night

	// Precise
	EarlyMorning
	MorningPeak
	Midday
	EveningPeak
	LateEvening
)

var windowNames = map[TimeWindow]string{
	Morning:      "Morning",
	Afternoon:    "Afternoon",
	Evening:      "Evening",
	Night:        "Night",
	EarlyMorning: "Early Morning",
	MorningPeak:  "Morning Peak",
	Midday:       "Midday",
	EveningPeak:  "Evening Peak",
	LateEvening:  "Late Evening",
}

func (w TimeWindow) String() string {
	if name, exists := windowNames[w]; exists {
		return name
	}

	return "Unknown"
}

func (w TimeWindow) Scheme() Scheme {
	if w >= EarlyMorning {
		return SchemePrecise
	}

	return SchemeCoarse
}

// Windows lists a scheme's windows in day order
func Windows(scheme Scheme) []TimeWindow {
	if scheme == SchemePrecise {
		return []TimeWindow{EarlyMorning, MorningPeak, Midday, EveningPeak, LateEvening}
	}

	return []TimeWindow{Morning, Afternoon, Evening, Night}
}

// ParseTimeWindow matches a window by its display name, ignoring case and surrounding spaces
func ParseTimeWindow(name string) (TimeWindow, error) {
	for window, windowName := range windowNames {
		if strings.EqualFold(strings.TrimSpace(name), windowName) {
			return window, nil
		}
	}

	return WindowUnknown, fmt.Errorf("unknown time window %q", name)
}

func ClassifyCoarse(hour int) (TimeWindow, error) {
	if hour < 0 || hour > 23 {
		return WindowUnknown, fmt.Errorf("%w: %d", ErrHourOutOfRange, hour)
	}

	switch {
	case hour >= 5 && hour < 12:
		return Morning, nil
	case hour >= 12 && hour < 17:
		return Afternoon, nil
	case hour >= 17 && hour < 22:
		return Evening, nil
	default:
		return Night, nil
	}
}

func ClassifyPrecise(hour int) (TimeWindow, error) {
	if hour < 0 || hour > 23 {
		return WindowUnknown, fmt.Errorf("%w: %d", ErrHourOutOfRange, hour)
	}

	switch {
	case hour < 6:
		return EarlyMorning, nil
	case hour < 10:
		return MorningPeak, nil
	case hour < 16:
		return Midday, nil
	case hour < 20:
		return EveningPeak, nil
	default:
		return LateEvening, nil
	}
}

func Classify(scheme Scheme, hour int) (TimeWindow, error) {
	if scheme == SchemePrecise {
		return ClassifyPrecise(hour)
	}

	return ClassifyCoarse(hour)
}
