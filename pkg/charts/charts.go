package charts

import (
	"cmp"
	"io"
	"maps"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
)

const (
	minSymbolSize = 4
	maxSymbolSize = 24
)

// Input is everything the chart page is drawn from
type Input struct {
	TripCounts   []network.DayTripCount
	Network      *network.Network
	Coarse       []headway.WindowSummary
	Aggregates   []headway.WindowAggregate
	Distribution []headway.WindowDistribution
}

func TripsPerDay(counts []network.DayTripCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Trips per day of week"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Trips"}),
	)

	var days []string
	var data []opts.BarData
	for _, count := range counts {
		days = append(days, count.DayOfWeek.String())
		data = append(data, opts.BarData{Value: count.TripCount})
	}

	bar.SetXAxis(days).AddSeries("Trips", data)

	return bar
}

// RouteShapes draws every shape point, one series per route
func RouteShapes(n *network.Network) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Route shapes"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Type: "value", Scale: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	shapeRoutes := map[string]string{}
	for _, trip := range n.Trips {
		shapeRoutes[trip.ShapeID] = trip.RouteID
	}
	routeNames := n.RouteNames()

	routePoints := map[string][]opts.ScatterData{}
	for _, shape := range n.Shapes {
		routeID := shapeRoutes[shape.ID]
		routePoints[routeID] = append(routePoints[routeID], opts.ScatterData{
			Value:      []float64{shape.PointLongitude, shape.PointLatitude},
			SymbolSize: 2,
		})
	}

	for _, routeID := range slices.Sorted(maps.Keys(routePoints)) {
		scatter.AddSeries(routeNames[routeID], routePoints[routeID])
	}

	return scatter
}

func Stops(n *network.Network) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stops"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Type: "value", Scale: opts.Bool(true)}),
	)

	var data []opts.ScatterData
	for _, stop := range n.Stops {
		data = append(data, opts.ScatterData{
			Name:       stop.Name,
			Value:      []float64{stop.Longitude, stop.Latitude},
			SymbolSize: minSymbolSize,
		})
	}
	scatter.AddSeries("Stops", data)

	return scatter
}

// RoutesPerStop sizes each stop by how many routes serve it
func RoutesPerStop(connectivity []network.StopConnectivity) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Routes per stop"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Longitude", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Latitude", Type: "value", Scale: opts.Bool(true)}),
	)

	mostRoutes := 1
	if len(connectivity) > 0 {
		mostRoutes = max(1, slices.MaxFunc(connectivity, func(a, b network.StopConnectivity) int {
			return cmp.Compare(a.RouteCount, b.RouteCount)
		}).RouteCount)
	}

	var data []opts.ScatterData
	for _, stop := range connectivity {
		data = append(data, opts.ScatterData{
			Name:       stop.StopName,
			Value:      []interface{}{stop.Longitude, stop.Latitude, stop.RouteCount},
			SymbolSize: minSymbolSize + (maxSymbolSize-minSymbolSize)*stop.RouteCount/mostRoutes,
		})
	}
	scatter.AddSeries("Routes", data)

	return scatter
}

func CoarseIntervals(summaries []headway.WindowSummary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average interval per part of day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Minutes"}),
	)

	var windows []string
	var data []opts.BarData
	for _, summary := range summaries {
		windows = append(windows, summary.Window.String())

		// a missing value leaves a gap instead of a zero height bar
		item := opts.BarData{Value: "-"}
		if summary.MeanIntervalMinutes != nil {
			item.Value = *summary.MeanIntervalMinutes
		}
		data = append(data, item)
	}

	bar.SetXAxis(windows).AddSeries("Mean interval", data)

	return bar
}

func AdjustedTrips(aggregates []headway.WindowAggregate) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Original and adjusted trips per time window"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Trips"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var windows []string
	var original, adjusted []opts.BarData
	for _, aggregate := range aggregates {
		windows = append(windows, aggregate.Window.String())
		original = append(original, opts.BarData{Value: aggregate.TripCount})
		adjusted = append(adjusted, opts.BarData{Value: aggregate.AdjustedTripCount})
	}

	bar.SetXAxis(windows).
		AddSeries("Original", original).
		AddSeries("Adjusted", adjusted)

	return bar
}

func IntervalDistribution(distributions []headway.WindowDistribution) *charts.BoxPlot {
	boxPlot := charts.NewBoxPlot()
	boxPlot.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Interval distribution per time window"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Minutes"}),
	)

	var windows []string
	var data []opts.BoxPlotData
	for _, distribution := range distributions {
		windows = append(windows, distribution.Window.String())

		if distribution.Empty() {
			data = append(data, opts.BoxPlotData{Value: []float64{}})
			continue
		}
		data = append(data, opts.BoxPlotData{
			Value: []float64{distribution.Min, distribution.Q1, distribution.Median, distribution.Q3, distribution.Max},
		})
	}

	boxPlot.SetXAxis(windows).AddSeries("Interval", data)

	return boxPlot
}

func Page(input Input) *components.Page {
	page := components.NewPage()
	page.SetPageTitle("Metro headway analysis")

	page.AddCharts(
		TripsPerDay(input.TripCounts),
		RouteShapes(input.Network),
		Stops(input.Network),
		RoutesPerStop(input.Network.Connectivity()),
		CoarseIntervals(input.Coarse),
		AdjustedTrips(input.Aggregates),
		IntervalDistribution(input.Distribution),
	)

	return page
}

func Render(w io.Writer, input Input) error {
	return Page(input).Render(w)
}
