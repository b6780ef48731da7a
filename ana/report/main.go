package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"hydrobr/ana/db"
	port "hydrobr/ana/import"
	"hydrobr/metrics"
	"hydrobr/series"
	"hydrobr/utils"
)

type Config struct {
	db.BaseConfig
	Monthly bool   `help:"Compute availability month by month instead of day by day"`
	Out     string `arg:"-o" default:"./report" help:"Directory the report files are written to"`
}

func (Config) Description() string {
	return `Write data availability intervals (availability.csv) and flow duration
curves (duration_curve.csv) of the dumped stations.`
}

type AvailabilityRow struct {
	Station string `csv:"station"`
	Start   string `csv:"start"`
	Finish  string `csv:"finish"`
}

type CurveRow struct {
	Station    string `csv:"station"`
	Exceedance string `csv:"exceedance"`
	Value      string `csv:"value"`
}

func (config *Config) Execute() {
	if err := config.NormalizeStations(); err != nil {
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

	// Optional bounds restrict the report period
	if span := config.TimeSpan(); span.From != nil || span.To != nil {
		if err := span.Validate(); err != nil {
			fmt.Println(err)
			return
		}
		panel = panel.Clip(span.From, span.To)
	}

	if err := WriteReport(config.Out, panel, config.Monthly); err != nil {
		slog.Error(err.Error())
		return
	}
	fmt.Printf("Report of %d stations written to %q\n", len(panel.Stations()), config.Out)

	if err := m.WriteTextfile(config.MetricsFile); err != nil {
		slog.Error(err.Error())
	}
}

func WriteReport(dir string, panel series.Panel, monthly bool) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	availability := AvailabilityRows(series.Availability(panel, monthly))
	if err := writeCSV(filepath.Join(dir, "availability.csv"), availability); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "duration_curve.csv"), CurveRows(panel))
}

func AvailabilityRows(intervals []series.StationInterval) []*AvailabilityRow {
	rows := make([]*AvailabilityRow, 0, len(intervals))
	for _, interval := range intervals {
		rows = append(rows, &AvailabilityRow{
			Station: interval.StationID,
			Start:   interval.Start.Format(time.DateOnly),
			Finish:  interval.End.Format(time.DateOnly),
		})
	}
	return rows
}

func CurveRows(panel series.Panel) []*CurveRow {
	var rows []*CurveRow
	for _, station := range panel.Stations() {
		s, _ := panel.Series(station)
		for _, point := range series.DurationCurve(s) {
			rows = append(rows, &CurveRow{
				Station:    station,
				Exceedance: strconv.FormatFloat(point.Exceedance, 'f', 4, 64),
				Value:      strconv.FormatFloat(point.Value, 'f', -1, 64),
			})
		}
	}
	return rows
}

func writeCSV[T any](filename string, rows []*T) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(rows, file)
}
