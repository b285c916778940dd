package report

import (
	"strconv"

	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

type TripCountRow struct {
	DayOfWeek string `csv:"day_of_week"`
	TripCount int    `csv:"trip_count"`
}

type WindowAggregateRow struct {
	Window              string  `csv:"time_window"`
	TripCount           int     `csv:"trip_count"`
	MeanIntervalMinutes string  `csv:"mean_interval_minutes"`
	AdjustmentFactor    float64 `csv:"adjustment_factor"`
	AdjustedTripCount   int     `csv:"adjusted_trip_count"`
	CapacityOriginal    int     `csv:"capacity_original"`
	CapacityAdjusted    int     `csv:"capacity_adjusted"`
}

type CoarseIntervalRow struct {
	Window              string `csv:"time_window"`
	Records             int    `csv:"records"`
	MeanIntervalMinutes string `csv:"mean_interval_minutes"`
}

type StopConnectivityRow struct {
	StopID     string  `csv:"stop_id"`
	StopName   string  `csv:"stop_name"`
	Latitude   float64 `csv:"stop_lat"`
	Longitude  float64 `csv:"stop_lon"`
	RouteCount int     `csv:"route_count"`
}

type HeadwayRow struct {
	StopID          string  `csv:"stop_id"`
	TripID          string  `csv:"trip_id"`
	NextTripID      string  `csv:"next_trip_id"`
	ArrivalTime     string  `csv:"arrival_time"`
	NextArrivalTime string  `csv:"next_arrival_time"`
	OriginalHour    int     `csv:"original_hour"`
	IntervalMinutes float64 `csv:"interval_minutes"`
	PreciseWindow   string  `csv:"time_window"`
}

// formatMean leaves a missing mean as an empty cell rather than 0
func formatMean(mean *float64) string {
	if mean == nil {
		return ""
	}

	return strconv.FormatFloat(*mean, 'f', -1, 64)
}

func TripCountRows(counts []network.DayTripCount) []*TripCountRow {
	rows := make([]*TripCountRow, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, &TripCountRow{
			DayOfWeek: count.DayOfWeek.String(),
			TripCount: count.TripCount,
		})
	}

	return rows
}

func WindowAggregateRows(aggregates []headway.WindowAggregate) []*WindowAggregateRow {
	rows := make([]*WindowAggregateRow, 0, len(aggregates))
	for _, aggregate := range aggregates {
		rows = append(rows, &WindowAggregateRow{
			Window:              aggregate.Window.String(),
			TripCount:           aggregate.TripCount,
			MeanIntervalMinutes: formatMean(aggregate.MeanIntervalMinutes),
			AdjustmentFactor:    aggregate.AdjustmentFactor,
			AdjustedTripCount:   aggregate.AdjustedTripCount,
			CapacityOriginal:    aggregate.CapacityOriginal,
			CapacityAdjusted:    aggregate.CapacityAdjusted,
		})
	}

	return rows
}

func CoarseIntervalRows(summaries []headway.WindowSummary) []*CoarseIntervalRow {
	rows := make([]*CoarseIntervalRow, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, &CoarseIntervalRow{
			Window:              summary.Window.String(),
			Records:             summary.Records,
			MeanIntervalMinutes: formatMean(summary.MeanIntervalMinutes),
		})
	}

	return rows
}

func StopConnectivityRows(connectivity []network.StopConnectivity) []*StopConnectivityRow {
	rows := make([]*StopConnectivityRow, 0, len(connectivity))
	for _, stop := range connectivity {
		rows = append(rows, &StopConnectivityRow{
			StopID:     stop.StopID,
			StopName:   stop.StopName,
			Latitude:   stop.Latitude,
			Longitude:  stop.Longitude,
			RouteCount: stop.RouteCount,
		})
	}

	return rows
}

func HeadwayRows(headways []headway.Headway) ([]*HeadwayRow, error) {
	rows := make([]*HeadwayRow, 0, len(headways))
	for _, item := range headways {
		window, err := headway.ClassifyPrecise(item.Current.Hour)
		if err != nil {
			return nil, err
		}

		rows = append(rows, &HeadwayRow{
			StopID:          item.StopID,
			TripID:          item.TripID,
			NextTripID:      item.NextTripID,
			ArrivalTime:     item.Current.String(),
			NextArrivalTime: item.Next.String(),
			OriginalHour:    item.OriginalHour,
			IntervalMinutes: item.IntervalMinutes,
			PreciseWindow:   window.String(),
		})
	}

	return rows, nil
}
