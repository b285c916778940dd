package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/travigo/headways/pkg/gtfs"
	"github.com/travigo/headways/pkg/headway"
	"github.com/travigo/headways/pkg/network"
	"github.com/travigo/headways/pkg/util"
	"gopkg.in/yaml.v3"
)

const EnvironmentPrefix = "HEADWAYS_"

type AnalysisConfig struct {
	Feed   string `yaml:"feed" validate:"required"`
	Output string `yaml:"output" validate:"required"`

	StartDate string `yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `yaml:"end_date" validate:"required,datetime=2006-01-02"`

	AgencyID        string   `yaml:"agency_id"`
	RouteShortNames []string `yaml:"route_short_names" validate:"dive,required"`
	// RouteType -1 selects routes of any type
	RouteType       int      `yaml:"route_type" validate:"gte=-1"`
	RouteExpression string   `yaml:"route_expression"`

	AdjustmentFactors map[string]float64 `yaml:"adjustment_factors" validate:"required,dive,keys,required,endkeys,gte=0"`
	CapacityPerTrip   int                `yaml:"capacity_per_trip" validate:"gt=0"`

	Strict bool `yaml:"strict"`
	Detail bool `yaml:"detail"`

	Sinks SinksConfig `yaml:"sinks"`
}

type SinksConfig struct {
	MongoDB       MongoDBConfig       `yaml:"mongodb"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Pushgateway   PushgatewayConfig   `yaml:"pushgateway"`
}

type MongoDBConfig struct {
	Connection string `yaml:"connection" validate:"omitempty,uri"`
	Database   string `yaml:"database" validate:"required_with=Connection"`
}

func (c MongoDBConfig) Enabled() bool {
	return c.Connection != ""
}

type ElasticsearchConfig struct {
	Address  string `yaml:"address" validate:"omitempty,url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Index    string `yaml:"index" validate:"required_with=Address"`
}

func (c ElasticsearchConfig) Enabled() bool {
	return c.Address != ""
}

type PushgatewayConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
	Job string `yaml:"job" validate:"required_with=URL"`
}

func (c PushgatewayConfig) Enabled() bool {
	return c.URL != ""
}

// Default is the Stockholm metro analysis for the week of 21 April 2025
func Default() AnalysisConfig {
	factors := map[string]float64{}
	for window, factor := range headway.DefaultPolicy().Factors {
		factors[window.String()] = factor
	}

	return AnalysisConfig{
		Feed:              "sl.zip",
		Output:            "output",
		StartDate:         "2025-04-21",
		EndDate:           "2025-04-27",
		AgencyID:          "14010000000001001",
		RouteShortNames:   []string{"10", "11", "13", "14", "17", "18", "19"},
		RouteType:         gtfs.RouteTypeMetro,
		AdjustmentFactors: factors,
		CapacityPerTrip:   headway.DefaultCapacityPerTrip,
		Sinks: SinksConfig{
			MongoDB:       MongoDBConfig{Database: "headways"},
			Elasticsearch: ElasticsearchConfig{Index: "headways-window-aggregates"},
			Pushgateway:   PushgatewayConfig{Job: "headways"},
		},
	}
}

// Load reads the YAML file at path over the defaults, applies HEADWAYS_ environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*AnalysisConfig, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		defaults := cfg.AdjustmentFactors
		cfg.AdjustmentFactors = nil

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}

		cfg.AdjustmentFactors, err = mergeFactors(defaults, cfg.AdjustmentFactors)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(util.GetPrefixedEnvironmentVariables(EnvironmentPrefix)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeFactors lays the file's factors over the defaults by window, so differently cased
// names of one window replace its default instead of sitting next to it
func mergeFactors(defaults map[string]float64, overrides map[string]float64) (map[string]float64, error) {
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = map[string]float64{}
	}

	windowNames := map[headway.TimeWindow]string{}
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		window, err := headway.ParseTimeWindow(name)
		if err != nil {
			merged[name] = overrides[name]
			continue
		}
		if previous, exists := windowNames[window]; exists {
			return nil, fmt.Errorf("adjustment factors %q and %q both set %s", previous, name, window)
		}
		windowNames[window] = name

		merged[window.String()] = overrides[name]
	}

	return merged, nil
}

func (c *AnalysisConfig) applyEnvironment(env map[string]string) error {
	stringFields := map[string]*string{
		"FEED":                   &c.Feed,
		"OUTPUT":                 &c.Output,
		"START_DATE":             &c.StartDate,
		"END_DATE":               &c.EndDate,
		"AGENCY_ID":              &c.AgencyID,
		"ROUTE_EXPRESSION":       &c.RouteExpression,
		"MONGODB_CONNECTION":     &c.Sinks.MongoDB.Connection,
		"MONGODB_DATABASE":       &c.Sinks.MongoDB.Database,
		"ELASTICSEARCH_ADDRESS":  &c.Sinks.Elasticsearch.Address,
		"ELASTICSEARCH_USERNAME": &c.Sinks.Elasticsearch.Username,
		"ELASTICSEARCH_PASSWORD": &c.Sinks.Elasticsearch.Password,
		"ELASTICSEARCH_INDEX":    &c.Sinks.Elasticsearch.Index,
		"PUSHGATEWAY_URL":        &c.Sinks.Pushgateway.URL,
		"PUSHGATEWAY_JOB":        &c.Sinks.Pushgateway.Job,
	}
	for key, destination := range stringFields {
		if value, exists := env[key]; exists {
			*destination = value
		}
	}

	if value, exists := env["ROUTE_SHORT_NAMES"]; exists {
		c.RouteShortNames = util.SplitList(value)
	}

	ints := map[string]*int{
		"ROUTE_TYPE":        &c.RouteType,
		"CAPACITY_PER_TRIP": &c.CapacityPerTrip,
	}
	for key, destination := range ints {
		if value, exists := env[key]; exists {
			number, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %q", EnvironmentPrefix, key, value)
			}
			*destination = number
		}
	}

	if value, exists := env["STRICT"]; exists {
		c.Strict = isYes(value)
	}
	if value, exists := env["DETAIL"]; exists {
		c.Detail = isYes(value)
	}

	return nil
}

func isYes(value string) bool {
	switch strings.ToUpper(value) {
	case "YES", "TRUE", "1":
		return true
	default:
		return false
	}
}

func (c *AnalysisConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	start, end, err := c.DateWindow()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("invalid config: end_date %s before start_date %s", c.EndDate, c.StartDate)
	}

	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// DateWindow is the inclusive analysis window
func (c *AnalysisConfig) DateWindow() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := time.Parse(time.DateOnly, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
	}

	return start, end, nil
}

// Policy resolves the adjustment factors by window name. Every precise window needs a factor.
func (c *AnalysisConfig) Policy() (headway.Policy, error) {
	policy := headway.Policy{
		Factors:         map[headway.TimeWindow]float64{},
		CapacityPerTrip: c.CapacityPerTrip,
	}

	windowNames := map[headway.TimeWindow]string{}
	for _, name := range slices.Sorted(maps.Keys(c.AdjustmentFactors)) {
		window, err := headway.ParseTimeWindow(name)
		if err != nil {
			return headway.Policy{}, err
		}
		if window.Scheme() != headway.SchemePrecise {
			return headway.Policy{}, fmt.Errorf("adjustment factor for %q: not a precise time window", name)
		}
		if previous, exists := windowNames[window]; exists {
			return headway.Policy{}, fmt.Errorf("adjustment factors %q and %q both set %s", previous, name, window)
		}
		windowNames[window] = name

		policy.Factors[window] = c.AdjustmentFactors[name]
	}

	var missing []error
	for _, window := range headway.Windows(headway.SchemePrecise) {
		if _, exists := policy.Factors[window]; !exists {
			missing = append(missing, &headway.UnknownWindowError{Window: window})
		}
	}
	if len(missing) > 0 {
		return headway.Policy{}, errors.Join(missing...)
	}

	return policy, nil
}

func (c *AnalysisConfig) Selection() (network.Selection, error) {
	start, end, err := c.DateWindow()
	if err != nil {
		return network.Selection{}, err
	}

	return network.Selection{
		AgencyID:        c.AgencyID,
		RouteShortNames: c.RouteShortNames,
		RouteType:       c.RouteType,
		Expression:      c.RouteExpression,
		Start:           start,
		End:             end,
	}, nil
}
