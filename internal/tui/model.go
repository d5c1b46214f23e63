// Package tui shows a division cross-check as a full-screen dashboard: one
// row per strategy with its progress, host load sparklines, and the agreed
// quotient once every strategy has finished.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/infinite/internal/cli"
	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/format"
	"github.com/agbru/infinite/internal/metrics"
	"github.com/agbru/infinite/internal/orchestration"
	"github.com/agbru/infinite/internal/sysmon"
)

const (
	tickInterval   = 500 * time.Millisecond
	sparklineWidth = 40
	minBarWidth    = 10
)

// strategyRow is the dashboard state of one strategy.
type strategyRow struct {
	name     string
	progress float64
	duration time.Duration
	err      error
	finished bool
}

// Model is the bubbletea model of the verification dashboard.
type Model struct {
	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	ref       *programRef

	req     orchestration.VerifyRequest
	opts    orchestration.PresentationOptions
	timeout time.Duration
	version string

	keymap     KeyMap
	help       help.Model
	showSystem bool

	generation uint64
	rows       []strategyRow
	average    float64
	eta        time.Duration

	cpu, mem  *RingBuffer
	heapAlloc uint64
	numGC     uint32

	final    *FinalResultMsg
	err      error
	done     bool
	exitCode int

	start, end    time.Time
	width, height int
}

// NewModel returns a dashboard for req. Each run is bounded by timeout.
func NewModel(parent context.Context, req orchestration.VerifyRequest, opts orchestration.PresentationOptions, timeout time.Duration, version string) Model {
	ctx, cancel := context.WithCancel(parent)
	m := Model{
		parentCtx:  parent,
		ctx:        ctx,
		cancel:     cancel,
		ref:        &programRef{},
		req:        req,
		opts:       opts,
		timeout:    timeout,
		version:    version,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		showSystem: true,
		cpu:        NewRingBuffer(sparklineWidth),
		mem:        NewRingBuffer(sparklineWidth),
	}
	m.resetRun()
	return m
}

// resetRun clears the state of the current run.
func (m *Model) resetRun() {
	m.rows = make([]strategyRow, len(m.req.Dividers))
	for i, d := range m.req.Dividers {
		m.rows[i] = strategyRow{name: d.Name()}
	}
	m.average, m.eta = 0, 0
	m.final, m.err = nil, nil
	m.done = false
	m.exitCode = apperrors.ExitSuccess
	m.start, m.end = time.Now(), time.Time{}
}

// Init starts the run, the sampling ticker and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startVerificationCmd(m.ref, m.ctx, m.req, m.opts, m.timeout, m.generation),
		watchContextCmd(m.parentCtx),
	)
}

// Update applies msg to the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation || msg.Index < 0 || msg.Index >= len(m.rows) {
			return m, nil
		}
		m.rows[msg.Index].progress = msg.Value
		m.average, m.eta = msg.AverageProgress, msg.ETA
		return m, nil

	case ProgressDoneMsg:
		if msg.Generation == m.generation {
			m.average, m.eta = 1, 0
		}
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		for _, res := range msg.Results {
			for i := range m.rows {
				if m.rows[i].name == res.Name {
					m.rows[i].duration, m.rows[i].err = res.Duration, res.Err
					m.rows[i].progress, m.rows[i].finished = 1, true
				}
			}
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			m.final = &msg
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.err = msg.Err
		}
		return m, nil

	case VerificationDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.end = time.Now()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), sampleMemStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case MemStatsMsg:
		m.heapAlloc, m.numGC = msg.HeapAlloc, msg.NumGC
		return m, nil

	case ContextCancelledMsg:
		if !m.done {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Restart):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.resetRun()
		return m, tea.Batch(
			tickCmd(),
			startVerificationCmd(m.ref, m.ctx, m.req, m.opts, m.timeout, m.generation),
		)

	case key.Matches(msg, m.keymap.Details):
		m.showSystem = !m.showSystem
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	inner := max(minBarWidth*3, m.width-4)

	sections := []string{m.headerView(), m.strategiesView(inner)}
	if m.showSystem {
		sections = append(sections, m.systemView(inner))
	}
	sections = append(sections, m.resultView(inner), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := "infcalc verify"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	elapsed := time.Since(m.start)
	if m.done {
		elapsed = m.end.Sub(m.start)
	}
	return titleStyle.Render(title) + dimStyle.Render(" | ") +
		labelStyle.Render("Elapsed: ") + valueStyle.Render(format.FormatExecutionDuration(elapsed)) +
		dimStyle.Render(" | ") + m.statusView()
}

func (m Model) statusView() string {
	switch {
	case !m.done:
		return statusActiveStyle.Render("Running")
	case m.exitCode == apperrors.ExitSuccess:
		return statusOKStyle.Render("Agreed")
	case m.exitCode == apperrors.ExitErrorMismatch:
		return statusErrorStyle.Render("MISMATCH")
	}
	return statusErrorStyle.Render("Failed")
}

func (m Model) strategiesView(width int) string {
	nameWidth := 8
	for _, r := range m.rows {
		nameWidth = max(nameWidth, len(r.name))
	}
	barWidth := max(minBarWidth, (width-nameWidth-30)/2)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s ÷ %s\n", labelStyle.Render("Dividing"),
		valueStyle.Render(m.req.X.String()), valueStyle.Render(m.req.Y.String()))
	for _, r := range m.rows {
		fmt.Fprintf(&b, "%-*s %s %6.2f%%  %-10s %s\n", nameWidth, r.name,
			format.ProgressBar(r.progress, barWidth), r.progress*100,
			rowDuration(r), rowStatus(r))
	}
	fmt.Fprintf(&b, "%-*s %s", nameWidth, "overall",
		format.FormatProgressBarWithETA(m.average, m.eta, barWidth))
	return panelStyle.Width(width).Render(b.String())
}

func rowDuration(r strategyRow) string {
	if !r.finished {
		return "-"
	}
	return format.FormatExecutionDuration(r.duration)
}

func rowStatus(r strategyRow) string {
	switch {
	case !r.finished && r.progress == 0:
		return dimStyle.Render("waiting")
	case !r.finished:
		return statusActiveStyle.Render("running")
	case r.err != nil:
		return statusErrorStyle.Render("error: " + r.err.Error())
	}
	return statusOKStyle.Render("done")
}

func (m Model) systemView(width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %5.1f%%\n", labelStyle.Render("CPU "), RenderSparkline(m.cpu.Slice()), m.cpu.Last())
	fmt.Fprintf(&b, "%s %s %5.1f%%\n", labelStyle.Render("MEM "), RenderSparkline(m.mem.Slice()), m.mem.Last())
	fmt.Fprintf(&b, "%s %s  %s %d", labelStyle.Render("Heap"), valueStyle.Render(formatBytes(m.heapAlloc)),
		labelStyle.Render("GC cycles"), m.numGC)
	return panelStyle.Width(width).Render(b.String())
}

func (m Model) resultView(width int) string {
	var b strings.Builder
	limit := max(minBarWidth, width-14)
	if m.final != nil {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Quotient: "), valueStyle.Render(format.Truncate(m.final.Whole, limit)))
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Remainder:"), valueStyle.Render(format.Truncate(m.final.Remainder, limit)))
	}
	if m.err != nil {
		fmt.Fprintf(&b, "%s %v\n", statusErrorStyle.Render("Error:"), m.err)
	}
	b.WriteString(m.verdict())
	return panelStyle.Width(width).Render(b.String())
}

// verdict summarizes the run in one line.
func (m Model) verdict() string {
	switch {
	case !m.done:
		return dimStyle.Render(m.verdictText())
	case m.exitCode == apperrors.ExitSuccess:
		return statusOKStyle.Render(m.verdictText())
	}
	return statusErrorStyle.Render(m.verdictText())
}

func (m Model) verdictText() string {
	switch {
	case !m.done:
		return "Waiting for every strategy..."
	case m.exitCode == apperrors.ExitSuccess:
		return "All strategies agree and x = y*q + sign(x)*r holds."
	case m.exitCode == apperrors.ExitErrorMismatch:
		return "Strategies disagree or the division identity does not hold."
	}
	return "No strategy completed the division."
}

// Summary is the plain-text outcome printed once the dashboard closes.
func (m Model) Summary() string {
	if !m.done {
		return "Verification canceled.\n"
	}
	var b strings.Builder
	if m.final != nil {
		whole, rem := m.final.Whole, m.final.Remainder
		if !m.opts.Verbose {
			whole, rem = format.Truncate(whole, cli.TruncationLimit), format.Truncate(rem, cli.TruncationLimit)
		}
		fmt.Fprintf(&b, "Quotient:  %s\nRemainder: %s\n", whole, rem)
	}
	if m.err != nil {
		fmt.Fprintf(&b, "Error: %v\n", m.err)
	}
	b.WriteString(m.verdictText())
	b.WriteByte('\n')
	return b.String()
}

// ExitCode returns the code the process should exit with.
func (m Model) ExitCode() int { return m.exitCode }

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// Run shows the dashboard until the user quits, then prints the summary to
// out and returns the exit code.
func Run(ctx context.Context, req orchestration.VerifyRequest, opts orchestration.PresentationOptions, timeout time.Duration, version string, out io.Writer) int {
	initStyles()

	model := NewModel(ctx, req, opts, timeout, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(out, "Dashboard failed: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	m, ok := final.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	m.cancel()
	fmt.Fprint(out, m.Summary())
	return m.ExitCode()
}

// startVerificationCmd runs one cross-check and reports through ref.
func startVerificationCmd(ref *programRef, ctx context.Context, req orchestration.VerifyRequest, opts orchestration.PresentationOptions, timeout time.Duration, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}
		results := orchestration.VerifyDivision(ctx, req, reporter, io.Discard)
		code := orchestration.AnalyzeVerification(req, results, presenter, opts, io.Discard)
		return VerificationDoneMsg{Generation: gen, ExitCode: code}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := metrics.NewMemoryCollector().Snapshot()
		return MemStatsMsg{HeapAlloc: s.HeapAlloc, NumGC: s.NumGC}
	}
}

// watchContextCmd waits for ctx to end.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
