package tui

import (
	"io"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/orchestration"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the running program. Bubbletea copies
// the model on every Update, so the verification goroutines hold this
// pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program messages are sent to.
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op until a program is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by turning
// progress updates into ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

// TUIResultPresenter implements orchestration.ResultPresenter by sending
// the outcome to the dashboard instead of writing it.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)
	_ orchestration.ResultPresenter  = (*TUIResultPresenter)(nil)
)

// DisplayProgress drains progressChan and sends one ProgressMsg per update,
// then a ProgressDoneMsg.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Generation:      t.generation,
			Index:           ap.Index,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.generation})
}

// PresentComparisonTable sends a copy of results; the caller keeps sorting
// its own slice.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.VerificationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Generation: t.generation, Results: slices.Clone(results)})
}

// PresentResult renders the quotient in opts.Radix and sends it.
func (t *TUIResultPresenter) PresentResult(result orchestration.VerificationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	whole, err := result.Quotient.Whole.Text(opts.Radix)
	if err == nil {
		var rem string
		if rem, err = result.Quotient.Remainder.Text(opts.Radix); err == nil {
			t.ref.Send(FinalResultMsg{
				Generation: t.generation,
				Strategy:   result.Name,
				Whole:      whole,
				Remainder:  rem,
				Duration:   result.Duration,
			})
			return
		}
	}
	t.ref.Send(ErrorMsg{Generation: t.generation, Err: err, Duration: result.Duration})
}

// HandleError sends err and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err != nil {
		t.ref.Send(ErrorMsg{Generation: t.generation, Err: err, Duration: duration})
	}
	return apperrors.ExitCodeFor(err)
}
