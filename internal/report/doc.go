// Package report summarizes stardate records and renders them for the
// terminal: tables in several text formats, a stardate trend sparkline and a
// decimal digit bar chart.
package report
