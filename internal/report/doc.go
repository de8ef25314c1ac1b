// Package report renders query results for the command line.
//
// Build runs the filter/sort pipeline over a catalog snapshot; Write encodes the
// result as an aligned text table, indented JSON or YAML. The table format is meant
// for people and is covered by golden files under testdata/golden; JSON and YAML are
// meant for scripts and carry the full product records.
package report
