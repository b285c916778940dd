package headway

import (
	"maps"

	"github.com/montanaflynn/stats"
)

const DefaultCapacityPerTrip = 700

// Policy is the simulated frequency change applied to each precise window
type Policy struct {
	Factors         map[TimeWindow]float64
	CapacityPerTrip int
}

func DefaultPolicy() Policy {
	return Policy{
		Factors: map[TimeWindow]float64{
			EarlyMorning: 1.0,
			MorningPeak:  1.2,
			Midday:       0.9,
			EveningPeak:  1.2,
			LateEvening:  0.9,
		},
		CapacityPerTrip: DefaultCapacityPerTrip,
	}
}

type WindowSummary struct {
	Window              TimeWindow
	Records             int
	TripCount           int
	MeanIntervalMinutes *float64
}

type WindowAggregate struct {
	Window              TimeWindow
	TripCount           int
	MeanIntervalMinutes *float64
	AdjustmentFactor    float64
	AdjustedTripCount   int
	CapacityOriginal    int
	CapacityAdjusted    int
}

type windowGroup struct {
	intervals []float64
	trips     map[string]struct{}
}

func groupByWindow(headways []Headway, scheme Scheme) (map[TimeWindow]*windowGroup, error) {
	groups := map[TimeWindow]*windowGroup{}
	for _, window := range Windows(scheme) {
		groups[window] = &windowGroup{trips: map[string]struct{}{}}
	}

	for _, headway := range headways {
		window, err := Classify(scheme, headway.Current.Hour)
		if err != nil {
			return nil, err
		}

		group, exists := groups[window]
		if !exists {
			return nil, &UnknownWindowError{Window: window}
		}
		group.intervals = append(group.intervals, headway.IntervalMinutes)
		group.trips[headway.TripID] = struct{}{}
	}

	return groups, nil
}

// meanOf returns nil for an empty window so it can never be mistaken for a zero minute headway
func meanOf(intervals []float64) *float64 {
	mean, err := stats.Mean(intervals)
	if err != nil {
		return nil
	}

	return &mean
}

// AverageByWindow gives the record count, distinct trip count and mean interval per window
// of the scheme. Every window of the scheme is present in day order.
func AverageByWindow(headways []Headway, scheme Scheme) ([]WindowSummary, error) {
	groups, err := groupByWindow(headways, scheme)
	if err != nil {
		return nil, err
	}

	var summaries []WindowSummary
	for _, window := range Windows(scheme) {
		group := groups[window]
		summaries = append(summaries, WindowSummary{
			Window:              window,
			Records:             len(group.intervals),
			TripCount:           len(group.trips),
			MeanIntervalMinutes: meanOf(group.intervals),
		})
	}

	return summaries, nil
}

// Adjust applies the policy factor for the window to an observed trip count.
// The adjusted count is truncated towards zero, not rounded.
func Adjust(window TimeWindow, tripCount int, policy Policy) (WindowAggregate, error) {
	factor, exists := policy.Factors[window]
	if !exists {
		return WindowAggregate{}, &UnknownWindowError{Window: window}
	}

	adjusted := int(float64(tripCount) * factor)

	return WindowAggregate{
		Window:            window,
		TripCount:         tripCount,
		AdjustmentFactor:  factor,
		AdjustedTripCount: adjusted,
		CapacityOriginal:  tripCount * policy.CapacityPerTrip,
		CapacityAdjusted:  adjusted * policy.CapacityPerTrip,
	}, nil
}

// Aggregate produces one WindowAggregate per precise window
func Aggregate(headways []Headway, policy Policy) ([]WindowAggregate, error) {
	summaries, err := AverageByWindow(headways, SchemePrecise)
	if err != nil {
		return nil, err
	}

	aggregates := make([]WindowAggregate, 0, len(summaries))
	for _, summary := range summaries {
		aggregate, err := Adjust(summary.Window, summary.TripCount, policy)
		if err != nil {
			return nil, err
		}
		aggregate.MeanIntervalMinutes = summary.MeanIntervalMinutes

		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

func (p Policy) Clone() Policy {
	return Policy{
		Factors:         maps.Clone(p.Factors),
		CapacityPerTrip: p.CapacityPerTrip,
	}
}
