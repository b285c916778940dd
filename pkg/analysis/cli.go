package analysis

import (
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/config"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/metrics"
	"github.com/travigo/headways/pkg/network"
	"github.com/travigo/headways/pkg/report"
	"github.com/urfave/cli/v2"
)

var outputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "feed",
		Usage: "GTFS feed directory or zip archive, overrides the config",
	},
	&cli.StringFlag{
		Name:  "output",
		Usage: "Directory the results are written to, overrides the config",
	},
	&cli.BoolFlag{
		Name:  "strict",
		Usage: "Fail on the first malformed stop time instead of skipping it",
	},
}

// loadConfig reads the config named by the global --config flag and applies command flag overrides
func loadConfig(c *cli.Context) (*config.AnalysisConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("feed") {
		cfg.Feed = c.String("feed")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("detail") {
		cfg.Detail = c.Bool("detail")
	}

	log.Debug().Msg(pretty.Sprint(cfg))

	return cfg, nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "analyse",
		Usage: "Run the full headway analysis and write every output",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "detail",
				Usage: "Write the detailed JSON report",
			},
			&cli.BoolFlag{
				Name:  "no-charts",
				Usage: "Skip rendering the chart page",
			},
		}, outputFlags...),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			collector := metrics.NewCollector()

			analysis, err := Run(cfg, collector)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := analysis.WriteOutputs(cfg.Output, !c.Bool("no-charts")); err != nil {
				return err
			}
			collector.ObserveStage("outputs", start)

			targets, err := OpenSinks(cfg.Sinks)
			if err != nil {
				return err
			}
			if len(targets) > 0 {
				start = time.Now()
				if err := analysis.Publish(c.Context, targets); err != nil {
					return err
				}
				collector.ObserveStage("sinks", start)
			}

			collector.MarkSuccess()
			if cfg.Sinks.Pushgateway.Enabled() {
				if err := collector.Push(cfg.Sinks.Pushgateway.URL, cfg.Sinks.Pushgateway.Job); err != nil {
					return fmt.Errorf("push metrics: %w", err)
				}
			}

			log.Info().Str("output", cfg.Output).Msg("Analysis complete")

			return nil
		},
	}
}

func RegisterTripCountsCLI() *cli.Command {
	return &cli.Command{
		Name:  "trip-counts",
		Usage: "Count distinct trips per day of the week",
		Flags: outputFlags,
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			selected, err := LoadNetwork(cfg, metrics.NewCollector())
			if err != nil {
				return err
			}

			counts := network.TripCountsByWeekday(selected.TripDays)
			for _, count := range counts {
				log.Info().Str("day", count.DayOfWeek.String()).Int("trips", count.TripCount).Msg("Trip count")
			}

			return report.WriteCSVFile(cfg.Output, report.TripCountsFile, report.TripCountRows(counts))
		},
	}
}

func RegisterHeadwaysCLI() *cli.Command {
	return &cli.Command{
		Name:  "headways",
		Usage: "Write every computed headway to a CSV file",
		Flags: outputFlags,
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			policy, err := cfg.Policy()
			if err != nil {
				return err
			}

			selected, err := LoadNetwork(cfg, metrics.NewCollector())
			if err != nil {
				return err
			}

			result, err := headway.Run(selected.StopTimes, headway.Options{Policy: policy, Strict: cfg.Strict})
			if err != nil {
				return err
			}

			rows, err := report.HeadwayRows(result.Headways)
			if err != nil {
				return err
			}

			return report.WriteCSVFile(cfg.Output, report.HeadwaysFile, rows)
		},
	}
}

func RegisterNormaliseCLI() *cli.Command {
	return &cli.Command{
		Name:      "normalise",
		Usage:     "Normalise transit times and show the time window they fall into",
		ArgsUsage: "HH:MM:SS [HH:MM:SS...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one time is required", 1)
			}

			for _, value := range c.Args().Slice() {
				parsed, err := headway.ParseTransitTime(value)
				if err != nil {
					return err
				}

				coarse, err := headway.ClassifyCoarse(parsed.Time.Hour)
				if err != nil {
					return err
				}
				precise, err := headway.ClassifyPrecise(parsed.Time.Hour)
				if err != nil {
					return err
				}

				fmt.Fprintf(c.App.Writer, "%s\t%s\toriginal hour %d\t%s\t%s\n", value, parsed.Time, parsed.OriginalHour, coarse, precise)
			}

			return nil
		},
	}
}

// Commands lists every command this package provides
func Commands() []*cli.Command {
	return []*cli.Command{
		RegisterCLI(),
		RegisterTripCountsCLI(),
		RegisterHeadwaysCLI(),
		RegisterNormaliseCLI(),
	}
}
