package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/infinite/internal/format"
	"github.com/agbru/infinite/internal/orchestration"
	"github.com/agbru/infinite/internal/ui"
)

// CLIProgressReporter shows a spinner and progress bar during verification.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIResultPresenter renders verification results for the terminal.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per strategy with its duration and
// status. Padding is computed by hand so color codes do not skew columns.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.VerificationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Strategy Comparison ---\n")

	nameWidth, durWidth := len("Strategy"), len("Duration")
	durations := make([]string, len(results))
	for i, res := range results {
		durations[i] = displayDuration(res.Duration)
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, len([]rune(durations[i])))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), pad(nameWidth-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), pad(durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		status := fmt.Sprintf("%s✅ %s%s", ui.ColorGreen(), res.Quotient, ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(nameWidth-len(res.Name)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), pad(durWidth-len([]rune(durations[i]))),
			status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1ns"
	}
	return format.FormatExecutionDuration(d)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

// PresentResult prints the agreed quotient in the requested radix.
func (CLIResultPresenter) PresentResult(result orchestration.VerificationResult, opts orchestration.PresentationOptions, out io.Writer) {
	whole, err := result.Quotient.Whole.Text(opts.Radix)
	if err != nil {
		fmt.Fprintf(out, "%sCannot render quotient: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	rem, err := result.Quotient.Remainder.Text(opts.Radix)
	if err != nil {
		fmt.Fprintf(out, "%sCannot render remainder: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	if !opts.Verbose {
		whole, rem = format.Truncate(whole, TruncationLimit), format.Truncate(rem, TruncationLimit)
	}
	fmt.Fprintf(out, "Quotient:  %s%s%s\n", ui.ColorGreen(), whole, ui.ColorReset())
	fmt.Fprintf(out, "Remainder: %s%s%s\n", ui.ColorGreen(), rem, ui.ColorReset())
}

// HandleError reports err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return HandleCalculationError(err, duration, out)
}
