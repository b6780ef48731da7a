package db

import (
	"fmt"
	"path/filepath"
	"strconv"

	"hydrobr/series"
)

// The ANA `HidroSerieHistorica` service returns one `SerieHistorica` element per
// station, month and consistency level:
//
//   EstacaoCodigo      station code, not zero padded
//   NivelConsistencia  1 = provisional (raw), 2 = consistent (reviewed)
//   DataHora           any day of the month, with or without time
//   <Prefix>01..31     daily values, the prefix depends on `tipoDados`
//
// The same month can show up more than once, with different or equal consistency levels.

// Env var overriding the default service address
const BASE_URL_ENV_VAR string = "ANA_BASE_URL"

const DEFAULT_BASE_URL string = "http://telemetriaws1.ana.gov.br/ServiceANA.asmx"

// Value of the `tipoDados` request parameter
func DataType(kind series.Kind) int {
	switch kind {
	case series.Stage:
		return 1
	case series.Precipitation:
		return 2
	case series.Flow:
		return 3
	}
	return 0
}

// Prefix of the daily value elements
func ValuePrefix(kind series.Kind) string {
	switch kind {
	case series.Stage:
		return "Cota"
	case series.Precipitation:
		return "Chuva"
	case series.Flow:
		return "Vazao"
	}
	return ""
}

// Zero pads station codes to 8 digits
func NormalizeStation(code string) (string, error) {
	n, err := strconv.ParseUint(code, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid station code %q: %w", code, err)
	}
	return fmt.Sprintf("%08d", n), nil
}

func KindPath(path string, kind series.Kind) string {
	return filepath.Join(path, kind.String())
}

// Dump file of a station: <path>/<kind>/<station>.csv
func DumpPath(path string, kind series.Kind, station string) string {
	return filepath.Join(KindPath(path, kind), station+".csv")
}
