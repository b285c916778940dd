package report

import (
	"encoding/json"
	"io"

	"github.com/liip/sheriff"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

const (
	GroupSummary = "summary"
	GroupDetail  = "detail"
)

// Summary is the JSON report. Fields in the detail group are only written for detailed reports.
type Summary struct {
	GeneratedAt string `json:"generated_at" groups:"summary,detail"`
	Feed        string `json:"feed" groups:"summary,detail"`
	StartDate   string `json:"start_date" groups:"summary,detail"`
	EndDate     string `json:"end_date" groups:"summary,detail"`

	Routes      []string `json:"routes" groups:"summary,detail"`
	Trips       int      `json:"trips" groups:"summary,detail"`
	Stops       int      `json:"stops" groups:"summary,detail"`
	StopTimes   int      `json:"stop_times" groups:"detail"`
	Headways    int      `json:"headways" groups:"summary,detail"`
	Rejected    int      `json:"rejected_records" groups:"summary,detail"`
	Untimed     int      `json:"untimed_records" groups:"detail"`
	RecordNotes []string `json:"record_errors,omitempty" groups:"detail"`

	TripCounts       []SummaryTripCount        `json:"trip_counts" groups:"summary,detail"`
	WindowAggregates []SummaryWindowAggregate  `json:"window_aggregates" groups:"summary,detail"`
	CoarseIntervals  []SummaryCoarseInterval   `json:"coarse_intervals" groups:"detail"`
	Distribution     []SummaryDistribution     `json:"distribution" groups:"detail"`
	Connectivity     []SummaryStopConnectivity `json:"stop_connectivity" groups:"detail"`
}

type SummaryTripCount struct {
	DayOfWeek string `json:"day_of_week" groups:"summary,detail"`
	TripCount int    `json:"trip_count" groups:"summary,detail"`
}

type SummaryWindowAggregate struct {
	Window              string   `json:"time_window" groups:"summary,detail"`
	TripCount           int      `json:"trip_count" groups:"summary,detail"`
	MeanIntervalMinutes *float64 `json:"mean_interval_minutes" groups:"summary,detail"`
	AdjustmentFactor    float64  `json:"adjustment_factor" groups:"summary,detail"`
	AdjustedTripCount   int      `json:"adjusted_trip_count" groups:"summary,detail"`
	CapacityOriginal    int      `json:"capacity_original" groups:"detail"`
	CapacityAdjusted    int      `json:"capacity_adjusted" groups:"detail"`
}

type SummaryCoarseInterval struct {
	Window              string   `json:"time_window" groups:"detail"`
	Records             int      `json:"records" groups:"detail"`
	MeanIntervalMinutes *float64 `json:"mean_interval_minutes" groups:"detail"`
}

type SummaryDistribution struct {
	Window string  `json:"time_window" groups:"detail"`
	Count  int     `json:"count" groups:"detail"`
	Min    float64 `json:"min" groups:"detail"`
	Q1     float64 `json:"q1" groups:"detail"`
	Median float64 `json:"median" groups:"detail"`
	Q3     float64 `json:"q3" groups:"detail"`
	Max    float64 `json:"max" groups:"detail"`
}

type SummaryStopConnectivity struct {
	StopID     string `json:"stop_id" groups:"detail"`
	StopName   string `json:"stop_name" groups:"detail"`
	RouteCount int    `json:"route_count" groups:"detail"`
}

func NewTripCounts(counts []network.DayTripCount) []SummaryTripCount {
	var summary []SummaryTripCount
	for _, count := range counts {
		summary = append(summary, SummaryTripCount{DayOfWeek: count.DayOfWeek.String(), TripCount: count.TripCount})
	}

	return summary
}

func NewWindowAggregates(aggregates []headway.WindowAggregate) []SummaryWindowAggregate {
	var summary []SummaryWindowAggregate
	for _, aggregate := range aggregates {
		summary = append(summary, SummaryWindowAggregate{
			Window:              aggregate.Window.String(),
			TripCount:           aggregate.TripCount,
			MeanIntervalMinutes: aggregate.MeanIntervalMinutes,
			AdjustmentFactor:    aggregate.AdjustmentFactor,
			AdjustedTripCount:   aggregate.AdjustedTripCount,
			CapacityOriginal:    aggregate.CapacityOriginal,
			CapacityAdjusted:    aggregate.CapacityAdjusted,
		})
	}

	return summary
}

func NewCoarseIntervals(summaries []headway.WindowSummary) []SummaryCoarseInterval {
	var summary []SummaryCoarseInterval
	for _, window := range summaries {
		summary = append(summary, SummaryCoarseInterval{
			Window:              window.Window.String(),
			Records:             window.Records,
			MeanIntervalMinutes: window.MeanIntervalMinutes,
		})
	}

	return summary
}

func NewDistribution(distributions []headway.WindowDistribution) []SummaryDistribution {
	var summary []SummaryDistribution
	for _, distribution := range distributions {
		summary = append(summary, SummaryDistribution{
			Window: distribution.Window.String(),
			Count:  len(distribution.Intervals),
			Min:    distribution.Min,
			Q1:     distribution.Q1,
			Median: distribution.Median,
			Q3:     distribution.Q3,
			Max:    distribution.Max,
		})
	}

	return summary
}

func NewStopConnectivity(connectivity []network.StopConnectivity) []SummaryStopConnectivity {
	var summary []SummaryStopConnectivity
	for _, stop := range connectivity {
		summary = append(summary, SummaryStopConnectivity{StopID: stop.StopID, StopName: stop.StopName, RouteCount: stop.RouteCount})
	}

	return summary
}

// WriteJSON writes the summary filtered down to the summary or detail group
func (s *Summary) WriteJSON(w io.Writer, detail bool) error {
	group := GroupSummary
	if detail {
		group = GroupDetail
	}

	filtered, err := sheriff.Marshal(&sheriff.Options{Groups: []string{group}}, s)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(filtered)
}

func (s *Summary) WriteFile(directory string, detail bool) error {
	return WriteFile(directory, SummaryFile, func(w io.Writer) error {
		return s.WriteJSON(w, detail)
	})
}
