package headway

import "fmt"

// Headway is the gap between an arrival and the next arrival at the same stop
type Headway struct {
	StopID          string
	TripID          string
	NextTripID      string
	Current         TimeOfDay
	Next            TimeOfDay
	OriginalHour    int
	IntervalMinutes float64
}

// Interval returns the minutes from current to next on the same reference day.
// It never wraps around midnight.
func Interval(current TimeOfDay, next TimeOfDay) (float64, error) {
	difference := next.Seconds() - current.Seconds()
	if difference < 0 {
		return 0, fmt.Errorf("%w: %s -> %s", ErrNegativeInterval, current, next)
	}

	return float64(difference) / 60, nil
}

// Calculate builds a Headway for every sequenced event that has a next arrival.
// The last arrival at each stop has nothing to measure against and is dropped.
func Calculate(events []SequencedEvent) ([]Headway, error) {
	headways := make([]Headway, 0, len(events))

	for _, event := range events {
		if event.Next == nil {
			continue
		}

		interval, err := Interval(event.Time, event.Next.Time)
		if err != nil {
			return nil, fmt.Errorf("stop %s trip %s: %w", event.StopID, event.TripID, err)
		}

		headways = append(headways, Headway{
			StopID:          event.StopID,
			TripID:          event.TripID,
			NextTripID:      event.Next.TripID,
			Current:         event.Time,
			Next:            event.Next.Time,
			OriginalHour:    event.OriginalHour,
			IntervalMinutes: interval,
		})
	}

	return headways, nil
}
