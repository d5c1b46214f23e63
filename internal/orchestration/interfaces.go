//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/infinite/internal/bigint"
)

// ProgressUpdate reports how far one strategy has come.
type ProgressUpdate struct {
	// Index identifies the strategy within the verification run.
	Index int
	// Value is the completion ratio, from 0 to 1.
	Value float64
}

// VerificationResult is the outcome of one strategy.
type VerificationResult struct {
	// Name is the strategy's name, e.g. "long".
	Name string
	// Quotient is the computed division. It is meaningless when Err is set.
	Quotient bigint.Quotient
	// Duration is the time the strategy took.
	Duration time.Duration
	// Err is set when the strategy did not complete.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Radix   int
	Verbose bool
}

// ProgressReporter displays progress while strategies run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter drains the channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders verification outcomes.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per strategy.
	PresentComparisonTable(results []VerificationResult, out io.Writer)
	// PresentResult displays the agreed quotient.
	PresentResult(result VerificationResult, opts PresentationOptions, out io.Writer)
	// HandleError reports a failure and returns the exit code to use.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
