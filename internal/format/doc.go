// Package format holds the presentation helpers shared by the CLI, the REPL
// and verification reports: durations, digit grouping, progress bars and
// ETA estimation.
package format
