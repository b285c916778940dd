package headway

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/gtfs"
)

// ArrivalEvent is one vehicle arriving at one stop
type ArrivalEvent struct {
	StopID       string
	TripID       string
	RawTime      string
	Time         TimeOfDay
	OriginalHour int
}

func NewArrivalEvent(stopID string, tripID string, rawTime string) (ArrivalEvent, error) {
	parsed, err := ParseTransitTime(rawTime)
	if err != nil {
		return ArrivalEvent{}, err
	}

	return ArrivalEvent{
		StopID:       stopID,
		TripID:       tripID,
		RawTime:      rawTime,
		Time:         parsed.Time,
		OriginalHour: parsed.OriginalHour,
	}, nil
}

type EventBatch struct {
	Events   []ArrivalEvent
	Rejected []*RecordError
	Untimed  int
}

// BuildEvents turns stop times into arrival events.
// Rows with an empty arrival time are untimed stops and are skipped. Rows with a malformed
// arrival time are rejected individually unless strict is set, in which case the first one
// aborts the batch.
func BuildEvents(stopTimes []gtfs.StopTime, strict bool) (*EventBatch, error) {
	batch := &EventBatch{
		Events: make([]ArrivalEvent, 0, len(stopTimes)),
	}

	for _, stopTime := range stopTimes {
		if stopTime.ArrivalTime == "" {
			batch.Untimed++
			continue
		}

		event, err := NewArrivalEvent(stopTime.StopID, stopTime.TripID, stopTime.ArrivalTime)
		if err != nil {
			recordErr := &RecordError{StopID: stopTime.StopID, TripID: stopTime.TripID, Err: err}
			if strict {
				return nil, recordErr
			}

			log.Warn().Err(err).Str("stop", stopTime.StopID).Str("trip", stopTime.TripID).Msg("Rejected stop time")
			batch.Rejected = append(batch.Rejected, recordErr)
			continue
		}

		batch.Events = append(batch.Events, event)
	}

	return batch, nil
}
