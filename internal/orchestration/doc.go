// Package orchestration runs the same division with several strategies at
// once and checks that they agree. It reports progress and results through
// the ProgressReporter and ResultPresenter interfaces so it stays free of
// terminal concerns.
package orchestration
