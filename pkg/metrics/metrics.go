package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/headway"
)

type Collector struct {
	reg *prometheus.Registry

	StageDuration *prometheus.HistogramVec // stage label: load|select|pipeline|outputs|sinks
	Records       *prometheus.CounterVec   // kind label: stop_times|events|headways|rejected|untimed

	WindowTrips         *prometheus.GaugeVec
	WindowAdjustedTrips *prometheus.GaugeVec
	WindowMeanInterval  *prometheus.GaugeVec

	LastSuccess prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "headways_stage_duration_seconds",
			Help:    "Duration of each analysis stage.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 15),
		}, []string{"stage"}),
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "headways_records_total",
			Help: "Records seen by the headway pipeline.",
		}, []string{"kind"}),
		WindowTrips: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "headways_window_trips",
			Help: "Distinct trips per precise time window.",
		}, []string{"window"}),
		WindowAdjustedTrips: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "headways_window_adjusted_trips",
			Help: "Policy adjusted trips per precise time window.",
		}, []string{"window"}),
		WindowMeanInterval: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "headways_window_mean_interval_minutes",
			Help: "Mean interval between arrivals per precise time window. Absent for empty windows.",
		}, []string{"window"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "headways_last_success_timestamp_seconds",
			Help: "Unix time the last analysis finished.",
		}),
	}

	// Register
	reg.MustRegister(
		c.StageDuration, c.Records,
		c.WindowTrips, c.WindowAdjustedTrips, c.WindowMeanInterval,
		c.LastSuccess,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// ObserveStage times a stage from start until now
func (c *Collector) ObserveStage(stage string, start time.Time) {
	c.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (c *Collector) ObserveResult(stopTimes int, result *headway.Result) {
	c.Records.WithLabelValues("stop_times").Add(float64(stopTimes))
	c.Records.WithLabelValues("events").Add(float64(len(result.Batch.Events)))
	c.Records.WithLabelValues("rejected").Add(float64(len(result.Batch.Rejected)))
	c.Records.WithLabelValues("untimed").Add(float64(result.Batch.Untimed))
	c.Records.WithLabelValues("headways").Add(float64(len(result.Headways)))

	for _, aggregate := range result.Aggregates {
		window := aggregate.Window.String()
		c.WindowTrips.WithLabelValues(window).Set(float64(aggregate.TripCount))
		c.WindowAdjustedTrips.WithLabelValues(window).Set(float64(aggregate.AdjustedTripCount))

		if aggregate.MeanIntervalMinutes != nil {
			c.WindowMeanInterval.WithLabelValues(window).Set(*aggregate.MeanIntervalMinutes)
		}
	}
}

func (c *Collector) MarkSuccess() {
	c.LastSuccess.SetToCurrentTime()
}

// Push sends every metric to a Prometheus pushgateway, replacing the job's previous push
func (c *Collector) Push(url string, job string) error {
	err := push.New(url, job).Gatherer(c.reg).Push()
	if err != nil {
		return err
	}

	log.Info().Str("url", url).Str("job", job).Msg("Pushed metrics")

	return nil
}
