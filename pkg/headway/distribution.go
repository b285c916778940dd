package headway

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// WindowDistribution is the five number summary of the intervals in one window.
// Windows with fewer than four intervals use the extremes as their outer quartiles.
type WindowDistribution struct {
	Window    TimeWindow
	Intervals []float64
	Min       float64
	Q1        float64
	Median    float64
	Q3        float64
	Max       float64
}

func (d WindowDistribution) Empty() bool {
	return len(d.Intervals) == 0
}

func Distribution(headways []Headway, scheme Scheme) ([]WindowDistribution, error) {
	groups, err := groupByWindow(headways, scheme)
	if err != nil {
		return nil, err
	}

	var distributions []WindowDistribution
	for _, window := range Windows(scheme) {
		intervals := groups[window].intervals
		distribution := WindowDistribution{
			Window:    window,
			Intervals: intervals,
		}

		if len(intervals) > 0 {
			if err := distribution.summarise(); err != nil {
				return nil, fmt.Errorf("%s distribution: %w", window, err)
			}
		}

		distributions = append(distributions, distribution)
	}

	return distributions, nil
}

func (d *WindowDistribution) summarise() error {
	var err error
	if d.Min, err = stats.Min(d.Intervals); err != nil {
		return err
	}
	if d.Max, err = stats.Max(d.Intervals); err != nil {
		return err
	}
	if d.Median, err = stats.Median(d.Intervals); err != nil {
		return err
	}

	if len(d.Intervals) < 4 {
		d.Q1 = d.Min
		d.Q3 = d.Max
		return nil
	}

	quartiles, err := stats.Quartile(d.Intervals)
	if err != nil {
		return err
	}
	d.Q1 = quartiles.Q1
	d.Median = quartiles.Q2
	d.Q3 = quartiles.Q3

	return nil
}
