// Package standings builds and ranks league tables.
//
// A Table is built from the fixtures of one league group. Only complete,
// non-friendly fixtures contribute to the statistics, but every team named
// in a non-friendly fixture receives an entry. Entries are ranked by the
// configured ordering keys; when every key ties, team names are compared
// with locale-aware collation.
package standings
