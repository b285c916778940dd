package headway

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/gtfs"
)

type Options struct {
	Policy Policy
	Strict bool
}

type Result struct {
	Batch        *EventBatch
	Headways     []Headway
	Coarse       []WindowSummary
	Precise      []WindowSummary
	Aggregates   []WindowAggregate
	Distribution []WindowDistribution
}

// Run drives the stop times through every stage: normalize, sequence, calculate, classify
// and aggregate.
func Run(stopTimes []gtfs.StopTime, options Options) (*Result, error) {
	batch, err := BuildEvents(stopTimes, options.Strict)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("events", len(batch.Events)).
		Int("rejected", len(batch.Rejected)).
		Int("untimed", batch.Untimed).
		Msg("Normalised arrival times")

	sequenced := Sequence(batch.Events)

	headways, err := Calculate(sequenced)
	if err != nil {
		return nil, err
	}
	log.Info().Int("length", len(headways)).Msg("Calculated headways")

	coarse, err := AverageByWindow(headways, SchemeCoarse)
	if err != nil {
		return nil, err
	}

	precise, err := AverageByWindow(headways, SchemePrecise)
	if err != nil {
		return nil, err
	}

	aggregates, err := Aggregate(headways, options.Policy)
	if err != nil {
		return nil, err
	}

	distribution, err := Distribution(headways, SchemePrecise)
	if err != nil {
		return nil, err
	}

	return &Result{
		Batch:        batch,
		Headways:     headways,
		Coarse:       coarse,
		Precise:      precise,
		Aggregates:   aggregates,
		Distribution: distribution,
	}, nil
}
