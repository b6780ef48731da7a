package lard

import (
	"time"

	"hydrobr/series"
)

const LARD_ENV_VAR string = "LARD_CONN_STRING"

// Struct mimicking the `public.data` table
type DataObs struct {
	// Timeseries ID
	Id int32
	// Time of observation
	Obstime time.Time
	// Observation value
	Data *float64
	// Indicator of QC status, always true for us as we don't QC on import
	QcUsable bool
}

func (o *DataObs) ToRow() []any {
	return []any{o.Id, o.Obstime, o.Data, o.QcUsable}
}

// Present values of a canonical series, ready to be copied into `public.data`
type DataRows struct {
	rows []DataObs
}

// Absent days are not stored in LARD, they are implied by the timeseries span
func NewDataRows(tsid int32, s series.Series) *DataRows {
	rows := make([]DataObs, 0, s.Present())
	for i, v := range s.Values {
		if v == nil {
			continue
		}
		rows = append(rows, DataObs{Id: tsid, Obstime: s.Date(i), Data: v, QcUsable: true})
	}
	return &DataRows{rows: rows}
}

func (d *DataRows) Len() int {
	return len(d.rows)
}

func (d *DataRows) InsertData(i int) ([]any, error) {
	return d.rows[i].ToRow(), nil
}
