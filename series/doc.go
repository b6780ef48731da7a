// Package series consolidates raw monthly station blocks into canonical daily
// series and runs the analyses built on top of them: gap intervals, station
// qualification, monthly aggregation, availability and duration curves.
//
// Absent values are nil pointers. Every series has a contiguous index, so a
// gap is a run of nil values rather than a hole in the dates.
package series
