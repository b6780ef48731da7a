package dump

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hydrobr/ana/db"
	"hydrobr/series"
)

// Layouts accepted for `DataHora`, the service is not consistent across stations
var dateLayouts = []string{
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"02/01/2006 15:04:05",
	"02/01/2006",
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type serieHistorica struct {
	Fields []xmlField `xml:",any"`
}

func (s *serieHistorica) fields() map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.XMLName.Local] = strings.TrimSpace(f.Value)
	}
	return out
}

func parseMonth(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return series.MonthStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unknown date format %q", series.ErrMalformedBlock, s)
}

func toBlock(fields map[string]string, kind series.Kind) (series.RawBlock, error) {
	var block series.RawBlock

	station, err := db.NormalizeStation(fields["EstacaoCodigo"])
	if err != nil {
		return block, fmt.Errorf("%w: %w", series.ErrMalformedBlock, err)
	}

	quality, err := strconv.Atoi(fields["NivelConsistencia"])
	if err != nil {
		return block, fmt.Errorf("%w: invalid consistency level: %w", series.ErrMalformedBlock, err)
	}

	month, err := parseMonth(fields["DataHora"])
	if err != nil {
		return block, err
	}

	block = series.RawBlock{
		StationID:  station,
		Kind:       kind,
		MonthStart: month,
		Quality:    series.Quality(quality),
		Values:     make([]*float64, series.DaysIn(month)),
	}

	prefix := db.ValuePrefix(kind)
	for i := range block.Values {
		text := fields[fmt.Sprintf("%s%02d", prefix, i+1)]
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return block, fmt.Errorf("%w: day %d: %w", series.ErrMalformedBlock, i+1, err)
		}
		block.Values[i] = &v
	}

	return block, block.Validate()
}

// Decodes every `SerieHistorica` element of a response into a block, in
// document order. Malformed blocks are skipped and counted.
func ParseResponse(r io.Reader, kind series.Kind, logStr string) (blocks []series.RawBlock, malformed int, err error) {
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return blocks, malformed, nil
		}
		if err != nil {
			return nil, malformed, err
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "SerieHistorica" {
			continue
		}

		var element serieHistorica
		if err := decoder.DecodeElement(&element, &start); err != nil {
			return nil, malformed, err
		}

		block, err := toBlock(element.fields(), kind)
		if err != nil {
			slog.Warn(logStr + err.Error())
			malformed++
			continue
		}
		blocks = append(blocks, block)
	}
}
