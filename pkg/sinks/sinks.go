package sinks

import (
	"context"
	"fmt"
	"time"

	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

// Sink receives the finished results of an analysis run
type Sink interface {
	Name() string
	Publish(ctx context.Context, run *Run) error
	Close(ctx context.Context) error
}

type Run struct {
	RunIdentifier string
	GeneratedAt   time.Time
	Feed          string
	StartDate     string
	EndDate       string
	Routes        []string

	Trips    int
	Headways int
	Rejected int

	WindowAggregates []*WindowAggregateDocument
	TripCounts       []*TripCountDocument
}

type WindowAggregateDocument struct {
	PrimaryIdentifier   string   `json:"primaryidentifier"`
	RunIdentifier       string   `json:"runidentifier"`
	StartDate           string   `json:"startdate"`
	EndDate             string   `json:"enddate"`
	Window              string   `json:"timewindow"`
	WindowOrder         int      `json:"timewindoworder"`
	TripCount           int      `json:"tripcount"`
	MeanIntervalMinutes *float64 `json:"meanintervalminutes"`
	AdjustmentFactor    float64  `json:"adjustmentfactor"`
	AdjustedTripCount   int      `json:"adjustedtripcount"`
	CapacityOriginal    int      `json:"capacityoriginal"`
	CapacityAdjusted    int      `json:"capacityadjusted"`
}

type TripCountDocument struct {
	PrimaryIdentifier string `json:"primaryidentifier"`
	RunIdentifier     string `json:"runidentifier"`
	DayOfWeek         string `json:"dayofweek"`
	TripCount         int    `json:"tripcount"`
}

// RunIdentifier names a run by its date window, so repeated runs over the same window replace each other
func RunIdentifier(startDate string, endDate string) string {
	return fmt.Sprintf("headways-%s-%s", startDate, endDate)
}

func NewRun(runIdentifier string, aggregates []headway.WindowAggregate, tripCounts []network.DayTripCount) *Run {
	run := &Run{
		RunIdentifier: runIdentifier,
		GeneratedAt:   time.Now(),
	}

	for order, aggregate := range aggregates {
		run.WindowAggregates = append(run.WindowAggregates, &WindowAggregateDocument{
			PrimaryIdentifier:   fmt.Sprintf("%s-window-%d", runIdentifier, order),
			RunIdentifier:       runIdentifier,
			Window:              aggregate.Window.String(),
			WindowOrder:         order,
			TripCount:           aggregate.TripCount,
			MeanIntervalMinutes: aggregate.MeanIntervalMinutes,
			AdjustmentFactor:    aggregate.AdjustmentFactor,
			AdjustedTripCount:   aggregate.AdjustedTripCount,
			CapacityOriginal:    aggregate.CapacityOriginal,
			CapacityAdjusted:    aggregate.CapacityAdjusted,
		})
	}

	for _, count := range tripCounts {
		run.TripCounts = append(run.TripCounts, &TripCountDocument{
			PrimaryIdentifier: fmt.Sprintf("%s-day-%s", runIdentifier, count.DayOfWeek),
			RunIdentifier:     runIdentifier,
			DayOfWeek:         count.DayOfWeek.String(),
			TripCount:         count.TripCount,
		})
	}

	return run
}

// SetWindow stamps the run's date window onto every window aggregate document
func (r *Run) SetWindow(startDate string, endDate string) {
	r.StartDate = startDate
	r.EndDate = endDate

	for _, document := range r.WindowAggregates {
		document.StartDate = startDate
		document.EndDate = endDate
	}
}
