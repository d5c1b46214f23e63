package tui

import (
	"time"

	"github.com/agbru/infinite/internal/orchestration"
)

// Every message produced by a verification run carries the generation it
// belongs to, so that updates from a run abandoned by a restart are ignored.

// ProgressMsg reports the progress of one strategy.
type ProgressMsg struct {
	Generation      uint64
	Index           int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent once every strategy has stopped reporting.
type ProgressDoneMsg struct {
	Generation uint64
}

// ComparisonResultsMsg carries the outcome of every strategy.
type ComparisonResultsMsg struct {
	Generation uint64
	Results    []orchestration.VerificationResult
}

// FinalResultMsg carries the agreed quotient, already rendered.
type FinalResultMsg struct {
	Generation uint64
	Strategy   string
	Whole      string
	Remainder  string
	Duration   time.Duration
}

// ErrorMsg reports a failure of the whole run.
type ErrorMsg struct {
	Generation uint64
	Err        error
	Duration   time.Duration
}

// VerificationDoneMsg ends a run with its exit code.
type VerificationDoneMsg struct {
	Generation uint64
	ExitCode   int
}

// TickMsg drives the periodic host sampling.
type TickMsg time.Time

// SysStatsMsg carries a host CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// MemStatsMsg carries the process heap state.
type MemStatsMsg struct {
	HeapAlloc uint64
	NumGC     uint32
}

// ContextCancelledMsg is sent when the parent context ends, typically on
// SIGINT.
type ContextCancelledMsg struct {
	Err error
}
