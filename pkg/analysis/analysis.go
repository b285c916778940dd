package analysis

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/headways/pkg/charts"
	"github.com/travigo/headways/pkg/config"
	"github.com/travigo/headways/pkg/gtfs"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/metrics"
	"github.com/travigo/headways/pkg/network"
	"github.com/travigo/headways/pkg/report"
	"github.com/travigo/headways/pkg/sinks"
)

type Analysis struct {
	Config       *config.AnalysisConfig
	Network      *network.Network
	Result       *headway.Result
	TripCounts   []network.DayTripCount
	Connectivity []network.StopConnectivity
	GeneratedAt  time.Time
}

// LoadNetwork loads the feed and narrows it to the configured network
func LoadNetwork(cfg *config.AnalysisConfig, collector *metrics.Collector) (*network.Network, error) {
	start := time.Now()
	feed, err := gtfs.Load(cfg.Feed)
	if err != nil {
		return nil, err
	}
	collector.ObserveStage("load", start)

	selection, err := cfg.Selection()
	if err != nil {
		return nil, err
	}

	start = time.Now()
	selected, err := network.Select(feed, selection)
	if err != nil {
		return nil, err
	}
	collector.ObserveStage("select", start)

	return selected, nil
}

func Run(cfg *config.AnalysisConfig, collector *metrics.Collector) (*Analysis, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	selected, err := LoadNetwork(cfg, collector)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := headway.Run(selected.StopTimes, headway.Options{
		Policy: policy,
		Strict: cfg.Strict,
	})
	if err != nil {
		return nil, err
	}
	collector.ObserveStage("pipeline", start)
	collector.ObserveResult(len(selected.StopTimes), result)

	analysis := &Analysis{
		Config:       cfg,
		Network:      selected,
		Result:       result,
		TripCounts:   network.TripCountsByWeekday(selected.TripDays),
		Connectivity: selected.Connectivity(),
		GeneratedAt:  time.Now(),
	}

	for _, aggregate := range result.Aggregates {
		event := log.Info().
			Str("window", aggregate.Window.String()).
			Int("trips", aggregate.TripCount).
			Int("adjusted", aggregate.AdjustedTripCount)
		if aggregate.MeanIntervalMinutes != nil {
			event = event.Float64("mean", *aggregate.MeanIntervalMinutes)
		}
		event.Msg("Window aggregate")
	}

	return analysis, nil
}

func (a *Analysis) Summary() *report.Summary {
	summary := &report.Summary{
		GeneratedAt:      a.GeneratedAt.Format(time.RFC3339),
		Feed:             a.Config.Feed,
		StartDate:        a.Config.StartDate,
		EndDate:          a.Config.EndDate,
		Trips:            len(a.Network.Trips),
		Stops:            len(a.Network.Stops),
		StopTimes:        len(a.Network.StopTimes),
		Headways:         len(a.Result.Headways),
		Rejected:         len(a.Result.Batch.Rejected),
		Untimed:          a.Result.Batch.Untimed,
		TripCounts:       report.NewTripCounts(a.TripCounts),
		WindowAggregates: report.NewWindowAggregates(a.Result.Aggregates),
		CoarseIntervals:  report.NewCoarseIntervals(a.Result.Coarse),
		Distribution:     report.NewDistribution(a.Result.Distribution),
		Connectivity:     report.NewStopConnectivity(a.Connectivity),
	}

	for _, route := range a.Network.Routes {
		summary.Routes = append(summary.Routes, route.DisplayName())
	}
	for _, rejected := range a.Result.Batch.Rejected {
		summary.RecordNotes = append(summary.RecordNotes, rejected.Error())
	}

	return summary
}

// WriteOutputs writes every table, the JSON report and the chart page into directory
func (a *Analysis) WriteOutputs(directory string, withCharts bool) error {
	tables := map[string]interface{}{
		report.TripCountsFile:       report.TripCountRows(a.TripCounts),
		report.WindowAggregatesFile: report.WindowAggregateRows(a.Result.Aggregates),
		report.CoarseIntervalsFile:  report.CoarseIntervalRows(a.Result.Coarse),
		report.StopConnectivityFile: report.StopConnectivityRows(a.Connectivity),
	}
	for name, rows := range tables {
		if err := report.WriteCSVFile(directory, name, rows); err != nil {
			return err
		}
	}

	if err := a.Summary().WriteFile(directory, a.Config.Detail); err != nil {
		return err
	}

	if !withCharts {
		return nil
	}

	return report.WriteFile(directory, report.ChartsFile, func(w io.Writer) error {
		return charts.Render(w, charts.Input{
			TripCounts:   a.TripCounts,
			Network:      a.Network,
			Coarse:       a.Result.Coarse,
			Aggregates:   a.Result.Aggregates,
			Distribution: a.Result.Distribution,
		})
	})
}

func (a *Analysis) SinkRun() *sinks.Run {
	run := sinks.NewRun(sinks.RunIdentifier(a.Config.StartDate, a.Config.EndDate), a.Result.Aggregates, a.TripCounts)
	run.GeneratedAt = a.GeneratedAt
	run.Feed = a.Config.Feed
	run.Trips = len(a.Network.Trips)
	run.Headways = len(a.Result.Headways)
	run.Rejected = len(a.Result.Batch.Rejected)
	for _, route := range a.Network.Routes {
		run.Routes = append(run.Routes, route.DisplayName())
	}
	run.SetWindow(a.Config.StartDate, a.Config.EndDate)

	return run
}

// OpenSinks connects every sink enabled in the configuration
func OpenSinks(cfg config.SinksConfig) ([]sinks.Sink, error) {
	var opened []sinks.Sink

	if cfg.MongoDB.Enabled() {
		sink, err := sinks.NewMongoSink(cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		opened = append(opened, sink)
	}

	if cfg.Elasticsearch.Enabled() {
		sink, err := sinks.NewElasticsearchSink(cfg.Elasticsearch)
		if err != nil {
			return nil, err
		}
		opened = append(opened, sink)
	}

	return opened, nil
}

// Publish hands the run to every sink concurrently and closes them
func (a *Analysis) Publish(ctx context.Context, targets []sinks.Sink) error {
	run := a.SinkRun()

	publishPool := pool.New().WithContext(ctx)
	for _, sink := range targets {
		publishPool.Go(func(ctx context.Context) error {
			log.Info().Str("sink", sink.Name()).Msg("Publishing results")

			if err := sink.Publish(ctx, run); err != nil {
				_ = sink.Close(ctx)
				return err
			}

			return sink.Close(ctx)
		})
	}

	return publishPool.Wait()
}
