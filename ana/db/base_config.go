package db

import (
	"hydrobr/series"
	"hydrobr/utils"
)

type BaseConfig struct {
	Path        string           `arg:"-p" default:"./dumps/ana" help:"Location the dumped data is stored in"`
	Kind        series.Kind      `arg:"-k,required" help:"Which data kind to process. Choices: ['prec', 'stage', 'flow']"`
	Stations    []string         `help:"Optional space separated list of station codes"`
	FromTime    *utils.Timestamp `arg:"--from" help:"Consider data only starting from this date-only timestamp"`
	ToTime      *utils.Timestamp `arg:"--to" help:"Consider data only until this date-only timestamp, 'now' is allowed"`
	Workers     int              `arg:"-w" default:"4" help:"Number of stations merged concurrently"`
	Policy      series.Policy    `default:"latest" help:"Resolution of duplicate days. Choices: ['latest', 'consistent']"`
	MetricsFile string           `arg:"--metrics-file" help:"Write run metrics to this node-exporter textfile"`
	LogFile     string           `arg:"--log-file" help:"Write logs to this file instead of stderr"`
}

// Normalizes the station list, returning an error for codes that are not numeric
func (config *BaseConfig) NormalizeStations() error {
	for i, code := range config.Stations {
		normalized, err := NormalizeStation(code)
		if err != nil {
			return err
		}
		config.Stations[i] = normalized
	}
	return nil
}

func (config *BaseConfig) ShouldProcessStation(station string) bool {
	return utils.IsEmptyOrContains(config.Stations, station)
}

func (config *BaseConfig) TimeSpan() *utils.TimeSpan {
	return &utils.TimeSpan{From: config.FromTime.Inner(), To: config.ToTime.Inner()}
}

// Directory holding the dumps of the configured kind
func (config *BaseConfig) KindPath() string {
	return KindPath(config.Path, config.Kind)
}
