package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/infinite/internal/bigint"
	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/orchestration"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	req := orchestration.VerifyRequest{
		X:        bigint.FromInt64(100),
		Y:        bigint.FromInt64(7),
		Dividers: orchestration.DividersFor(nil),
	}
	m := NewModel(context.Background(), req, orchestration.PresentationOptions{Radix: 10}, time.Minute, "v1.2.3")
	t.Cleanup(m.cancel)
	return apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

// apply runs msg through Update and returns the new model.
func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// finish plays a successful run of generation gen into m.
func finish(t *testing.T, m Model, gen uint64) Model {
	t.Helper()
	results := []orchestration.VerificationResult{
		{Name: "native", Duration: time.Millisecond},
		{Name: "binary", Duration: 2 * time.Millisecond},
		{Name: "long", Duration: 3 * time.Millisecond},
	}
	m = apply(t, m, ProgressDoneMsg{Generation: gen})
	m = apply(t, m, ComparisonResultsMsg{Generation: gen, Results: results})
	m = apply(t, m, FinalResultMsg{Generation: gen, Strategy: "native", Whole: "14", Remainder: "2"})
	return apply(t, m, VerificationDoneMsg{Generation: gen, ExitCode: apperrors.ExitSuccess})
}

func TestViewBeforeSize(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), orchestration.VerifyRequest{}, orchestration.PresentationOptions{Radix: 10}, time.Second, "dev")
	defer m.cancel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestRowsFollowStrategies(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"infcalc verify v1.2.3", "Dividing", "100", "native", "binary", "long", "waiting", "Running"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressUpdatesRow(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = apply(t, m, ProgressMsg{Index: 2, Value: 0.5, AverageProgress: 0.5 / 3, ETA: time.Second})

	if m.rows[2].progress != 0.5 || m.rows[0].progress != 0 {
		t.Errorf("rows = %+v", m.rows)
	}
	if m.average != 0.5/3 || m.eta != time.Second {
		t.Errorf("average = %v, eta = %v", m.average, m.eta)
	}
	if !strings.Contains(m.View(), "running") {
		t.Error("a strategy with progress should show as running")
	}

	m = apply(t, m, ProgressMsg{Index: 7, Value: 1})
	m = apply(t, m, ProgressMsg{Index: -1, Value: 1})
	if m.rows[0].progress != 0 {
		t.Error("out of range indexes must be ignored")
	}
}

func TestStaleGenerationIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = apply(t, m, runes("r"))
	if m.generation != 1 {
		t.Fatalf("generation = %d after restart", m.generation)
	}

	m = apply(t, m, ProgressMsg{Generation: 0, Index: 0, Value: 1})
	m = apply(t, m, ErrorMsg{Generation: 0, Err: errors.New("old run")})
	m = apply(t, m, VerificationDoneMsg{Generation: 0, ExitCode: apperrors.ExitErrorMismatch})
	if m.rows[0].progress != 0 || m.err != nil || m.done {
		t.Errorf("messages from the abandoned run changed the model: %+v", m)
	}

	m = finish(t, m, 1)
	if !m.done || m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("current run not applied: done=%v code=%d", m.done, m.ExitCode())
	}
}

func TestSuccessfulRun(t *testing.T) {
	t.Parallel()
	m := finish(t, newTestModel(t), 0)

	for _, r := range m.rows {
		if !r.finished || r.progress != 1 || r.duration == 0 {
			t.Errorf("row %+v not completed", r)
		}
	}
	view := m.View()
	for _, want := range []string{"Quotient:", "14", "Remainder:", "Agreed", "All strategies agree", "done"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	summary := m.Summary()
	if !strings.Contains(summary, "Quotient:  14\nRemainder: 2\n") || !strings.Contains(summary, "All strategies agree") {
		t.Errorf("Summary() = %q", summary)
	}
	if strings.Contains(summary, "\x1b[") {
		t.Errorf("summary carries escape codes: %q", summary)
	}
}

func TestFailedRuns(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		code    int
		status  string
		verdict string
	}{
		{"mismatch", apperrors.ExitErrorMismatch, "MISMATCH", "Strategies disagree"},
		{"timeout", apperrors.ExitErrorTimeout, "Failed", "No strategy completed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t)
			m = apply(t, m, ComparisonResultsMsg{Results: []orchestration.VerificationResult{
				{Name: "long", Err: context.DeadlineExceeded},
			}})
			m = apply(t, m, VerificationDoneMsg{ExitCode: tt.code})

			view := m.View()
			for _, want := range []string{tt.status, tt.verdict, "error: context deadline exceeded"} {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q:\n%s", want, view)
				}
			}
			if m.ExitCode() != tt.code {
				t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), tt.code)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		finished bool
		want     int
	}{
		{"q while running", runes("q"), false, apperrors.ExitErrorCanceled},
		{"ctrl+c while running", tea.KeyMsg{Type: tea.KeyCtrlC}, false, apperrors.ExitErrorCanceled},
		{"q after success", runes("q"), true, apperrors.ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t)
			if tt.finished {
				m = finish(t, m, 0)
			}
			next, cmd := m.Update(tt.msg)
			nm := next.(Model)
			if !isQuit(cmd) {
				t.Error("expected tea.Quit")
			}
			if nm.ExitCode() != tt.want {
				t.Errorf("ExitCode() = %d, want %d", nm.ExitCode(), tt.want)
			}
			if nm.ctx.Err() == nil {
				t.Error("quitting must cancel the run")
			}
		})
	}
}

func TestRestart(t *testing.T) {
	t.Parallel()
	m := finish(t, newTestModel(t), 0)
	oldCtx := m.ctx

	next, cmd := m.Update(runes("r"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("restart should start a new run")
	}
	if oldCtx.Err() == nil || m.ctx.Err() != nil {
		t.Error("restart should cancel the old run and keep the new one live")
	}
	if m.done || m.final != nil || m.rows[0].finished || m.generation != 1 {
		t.Errorf("state not reset: %+v", m)
	}
}

func TestContextCancelledQuits(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	if !isQuit(cmd) {
		t.Error("expected tea.Quit")
	}
	if got := next.(Model).ExitCode(); got != apperrors.ExitErrorCanceled {
		t.Errorf("ExitCode() = %d", got)
	}
	if got := next.(Model).Summary(); got != "Verification canceled.\n" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestSystemPanel(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = apply(t, m, SysStatsMsg{CPUPercent: 100, MemPercent: 0})
	m = apply(t, m, MemStatsMsg{HeapAlloc: 3 << 20, NumGC: 4})

	view := m.View()
	for _, want := range []string{"CPU", "█", "100.0%", "MEM", "▁", "3.0 MiB", "GC cycles"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = apply(t, m, runes("d"))
	if strings.Contains(m.View(), "GC cycles") {
		t.Error("d should hide the system panel")
	}
}

func TestTickStopsWhenDone(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if _, cmd := m.Update(TickMsg(time.Now())); cmd == nil {
		t.Error("a running dashboard keeps sampling")
	}
	m = finish(t, m, 0)
	if _, cmd := m.Update(TickMsg(time.Now())); cmd != nil {
		t.Error("a finished dashboard stops sampling")
	}
}

func TestSummaryTruncatesUnlessVerbose(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("9", 500)
	for _, verbose := range []bool{false, true} {
		m := newTestModel(t)
		m.opts.Verbose = verbose
		m = apply(t, m, FinalResultMsg{Whole: long, Remainder: "0"})
		m = apply(t, m, VerificationDoneMsg{})
		if got := strings.Contains(m.Summary(), long); got != verbose {
			t.Errorf("verbose=%v: full quotient printed = %v", verbose, got)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
