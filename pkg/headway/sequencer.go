package headway

import (
	"cmp"
	"maps"
	"slices"
)

// SequencedEvent is an arrival paired with the arrival that follows it at the same stop.
// Next is nil for the last arrival of the stop's day.
type SequencedEvent struct {
	ArrivalEvent
	Next *ArrivalEvent
}

// Sequence groups arrivals by stop and orders each group by normalized time.
// The sort is stable so arrivals with equal times keep their input order. Stops come
// out in ascending stop id order.
//
// Times are compared after normalization, so a 25:10:00 arrival sorts with the 01:xx arrivals.
func Sequence(events []ArrivalEvent) []SequencedEvent {
	stopGroups := map[string][]ArrivalEvent{}
	for _, event := range events {
		stopGroups[event.StopID] = append(stopGroups[event.StopID], event)
	}

	sequenced := make([]SequencedEvent, 0, len(events))

	for _, stopID := range slices.Sorted(maps.Keys(stopGroups)) {
		group := stopGroups[stopID]
		slices.SortStableFunc(group, func(a, b ArrivalEvent) int {
			return cmp.Compare(a.Time.Seconds(), b.Time.Seconds())
		})

		for index := range group {
			item := SequencedEvent{ArrivalEvent: group[index]}
			if index+1 < len(group) {
				next := group[index+1]
				item.Next = &next
			}

			sequenced = append(sequenced, item)
		}
	}

	return sequenced
}
