// Package export writes station series as fixed-width ASCII files, one file per
// station, as consumed by hydrological models.
package export

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hydrobr/series"
)

// Value written for absent days
const Missing = -1.0

// Flow values are written with thousands grouping
var printer = message.NewPrinter(language.AmericanEnglish)

func formatValue(kind series.Kind, v float64) string {
	if kind == series.Flow {
		s := printer.Sprintf("%.6f", v)
		if len(s) < 11 {
			return fmt.Sprintf("%16s", s)
		}
		return fmt.Sprintf("%18s", s)
	}
	return fmt.Sprintf("%12s", strconv.FormatFloat(v, 'f', 2, 64))
}

// Filename pads numeric station codes to 8 digits
func Filename(station string) string {
	if len(station) < 8 {
		station = strings.Repeat("0", 8-len(station)) + station
	}
	return station + ".txt"
}

// WriteSeries writes the days from the first to the last present value of s,
// one `day month year value` row per day. It reports false when s has no
// present value, in which case nothing is written.
func WriteSeries(w *bufio.Writer, kind series.Kind, s series.Series) (bool, error) {
	s = s.Trim()
	if s.Len() == 0 {
		return false, nil
	}

	for i, v := range s.Values {
		value := Missing
		if v != nil {
			value = *v
		}
		d := s.Date(i)
		if _, err := fmt.Fprintf(w, "%6d%6d%6d%s\n", d.Day(), int(d.Month()), d.Year(), formatValue(kind, value)); err != nil {
			return true, err
		}
	}
	return true, w.Flush()
}

// WriteFixedWidth writes every station of the panel to dir, creating it if
// needed. Stations without any present value are skipped. Returns the number
// of files written.
func WriteFixedWidth(dir string, panel series.Panel) (int, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return 0, err
	}

	var written int
	for _, station := range panel.Stations() {
		s, _ := panel.Series(station)
		if _, ok := s.FirstPresent(); !ok {
			slog.Info(fmt.Sprintf("[%s - %s]: no data to export, skipping", station, panel.Kind))
			continue
		}

		if err := writeFile(filepath.Join(dir, Filename(station)), panel.Kind, s); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeFile(filename string, kind series.Kind, s series.Series) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := WriteSeries(bufio.NewWriter(file), kind, s); err != nil {
		return err
	}
	return file.Close()
}
