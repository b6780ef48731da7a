package filter

import (
	"context"
	"fmt"
	"log/slog"

	"hydrobr/ana/db"
	port "hydrobr/ana/import"
	"hydrobr/export"
	"hydrobr/metrics"
	"hydrobr/series"
	"hydrobr/utils"
)

// Qualification flags, shared with the monthly command
type QualifyFlags struct {
	Years             int     `arg:"-y" default:"10" help:"Minimum record length in years"`
	Missing           float64 `arg:"-m" default:"5" help:"Maximum percentage of missing days inside a window of --years"`
	SkipFirstInterval bool    `arg:"--skip-first-interval" default:"true" help:"Do not start completeness windows at the first run of a series"`
}

func (f *QualifyFlags) Options(span *utils.TimeSpan) series.QualifyOptions {
	return series.QualifyOptions{
		MinYears:          f.Years,
		MaxMissingPct:     f.Missing,
		Start:             span.From,
		End:               span.To,
		SkipFirstInterval: f.SkipFirstInterval,
	}
}

type Config struct {
	db.BaseConfig
	QualifyFlags
	Out string `arg:"-o" default:"./export" help:"Directory the fixed-width files are written to"`
}

func (Config) Description() string {
	return `Keep the dumped stations with enough usable history and export them
as fixed-width text files, one per station.`
}

func (config *Config) Execute() {
	if err := config.NormalizeStations(); err != nil {
		fmt.Println(err)
		return
	}

	opts := config.Options(config.TimeSpan())
	if err := opts.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	if config.LogFile != "" {
		closer, err := utils.SetLogFile(config.LogFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer closer()
	}

	m := metrics.NewMetrics()
	panel, err := port.LoadPanel(context.Background(), &config.BaseConfig, m)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	qualified, err := QualifyPanel(panel, opts, m)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	written, err := export.WriteFixedWidth(config.Out, qualified)
	if err != nil {
		slog.Error(err.Error())
		return
	}
	fmt.Printf("%d/%d stations qualified and exported to %q\n", written, len(panel.Stations()), config.Out)

	if err := m.WriteTextfile(config.MetricsFile); err != nil {
		slog.Error(err.Error())
	}
}

// Runs the qualification and reports every decision to the log and metrics
func QualifyPanel(panel series.Panel, opts series.QualifyOptions, m *metrics.Metrics) (series.Panel, error) {
	qualified, decisions, err := series.Qualify(panel, opts)
	if err != nil {
		return series.Panel{}, err
	}

	for _, decision := range decisions {
		logStr := fmt.Sprintf("[%s - %s]: ", decision.StationID, panel.Kind)
		if !decision.Qualified {
			m.StationsDropped.WithLabelValues(string(decision.Reason)).Inc()
			slog.Info(fmt.Sprintf("%sdropped, %s (span %.2f years)", logStr, decision.Reason, decision.SpanYears))
			continue
		}

		m.StationsQualified.Inc()
		if decision.Reason == series.ReasonWindow {
			slog.Info(fmt.Sprintf("%squalified, %s from %s with %.2f%% missing",
				logStr, decision.Reason, decision.Window.Format("2006-01-02"), decision.MissingPct))
		} else {
			slog.Info(fmt.Sprintf("%squalified, %s", logStr, decision.Reason))
		}
	}

	return qualified, nil
}
