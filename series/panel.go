package series

import (
	"slices"
	"time"
)

// Panel is a set of daily station series sharing one index.
type Panel struct {
	Kind     Kind
	Start    time.Time
	length   int
	stations []string
	columns  map[string]Series
}

// Assemble aligns the canonical series of several stations on the union of
// their ranges. Stations with an empty series are left out. Station order
// follows the input.
func Assemble(kind Kind, canon []Canonical) Panel {
	panel := Panel{Kind: kind, columns: make(map[string]Series, len(canon))}

	var start, end time.Time
	for _, c := range canon {
		if c.Len() == 0 {
			continue
		}
		if start.IsZero() || c.Start.Before(start) {
			start = c.Start
		}
		if end.IsZero() || c.End().After(end) {
			end = c.End()
		}
	}
	if start.IsZero() {
		return panel
	}

	panel.Start = start
	panel.length = Daily.steps(start, end) + 1
	for _, c := range canon {
		if c.Len() == 0 {
			continue
		}
		if _, dup := panel.columns[c.StationID]; !dup {
			panel.stations = append(panel.stations, c.StationID)
		}
		panel.columns[c.StationID] = c.Reindex(start, end)
	}
	return panel
}

func (p Panel) Len() int {
	return p.length
}

// End returns the last date of the shared index, or the zero time for an empty panel.
func (p Panel) End() time.Time {
	if p.length == 0 {
		return time.Time{}
	}
	return Daily.add(p.Start, p.length-1)
}

// Stations returns the station ids in panel order.
func (p Panel) Stations() []string {
	return slices.Clone(p.stations)
}

func (p Panel) Series(stationID string) (Series, bool) {
	s, ok := p.columns[stationID]
	return s, ok
}

func (p Panel) Empty() bool {
	return len(p.stations) == 0
}

// Select returns a panel restricted to the given stations, keeping panel order.
func (p Panel) Select(stationIDs []string) Panel {
	out := Panel{Kind: p.Kind, Start: p.Start, length: p.length, columns: make(map[string]Series, len(stationIDs))}
	for _, id := range p.stations {
		if slices.Contains(stationIDs, id) {
			out.stations = append(out.stations, id)
			out.columns[id] = p.columns[id]
		}
	}
	return out
}

// Clip restricts the shared index to [from, to], a nil bound leaves that side
// unclipped.
func (p Panel) Clip(from, to *time.Time) Panel {
	if p.length == 0 {
		return p
	}

	// Every column shares the panel index, so they all clip to the same range
	index := Series{Freq: Daily, Start: p.Start, Values: make([]*float64, p.length)}.Clip(from, to)

	out := Panel{Kind: p.Kind, Start: index.Start, length: index.Len(), columns: make(map[string]Series, len(p.stations))}
	for _, id := range p.stations {
		out.stations = append(out.stations, id)
		out.columns[id] = p.columns[id].Clip(from, to)
	}
	return out
}
