package app

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/agbru/infinite/internal/bigint"
	"github.com/agbru/infinite/internal/calc"
	"github.com/agbru/infinite/internal/cli"
	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/logging"
	"github.com/agbru/infinite/internal/orchestration"
	"github.com/agbru/infinite/internal/tui"
)

// runCalculate evaluates the configured expression once.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	ev := a.newEvaluator()
	var (
		res  calc.Result
		text calc.Rendering
		err  error
	)
	start := time.Now()
	evaluate := func() { res, text, err = ev.EvaluateRendered(ctx, a.Config.Expr) }
	if !a.Config.Quiet && isTerminalWriter(out) {
		cli.RunWithSpinner(out, "Evaluating...", evaluate)
	} else {
		evaluate()
	}
	duration := time.Since(start)

	if err != nil {
		a.Logger.Debug("evaluation failed", logging.String("expr", a.Config.Expr), logging.Err(err))
		return cli.HandleCalculationError(err, duration, out)
	}
	a.Logger.Debug("evaluated", logging.String("expr", a.Config.Expr), logging.Float64("seconds", duration.Seconds()))

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, a.Config.Expr, res, text, duration, outputCfg); err != nil {
		return cli.HandleCalculationError(err, duration, out)
	}
	return apperrors.ExitSuccess
}

// runVerify cross-checks the configured division across every strategy.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	fields := strings.Fields(a.Config.Verify)
	x, err := bigint.Parse(fields[0], a.Config.Radix)
	if err != nil {
		return cli.HandleCalculationError(err, 0, out)
	}
	y, err := bigint.Parse(fields[1], a.Config.Radix)
	if err != nil {
		return cli.HandleCalculationError(err, 0, out)
	}

	req := orchestration.VerifyRequest{
		X:           x,
		Y:           y,
		Dividers:    orchestration.DividersFor(nil),
		Concurrency: a.Config.Concurrency,
	}
	opts := orchestration.PresentationOptions{Radix: a.Config.Radix, Verbose: a.Config.Verbose}

	if a.useDashboard(out) {
		code := tui.Run(ctx, req, opts, a.Config.Timeout, Version, out)
		a.recordVerification(code)
		return code
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(req.Dividers, req.Concurrency, out)
	}

	results := orchestration.VerifyDivision(ctx, req, reporter, progressOut)
	code := orchestration.AnalyzeVerification(req, results, cli.CLIResultPresenter{}, opts, out)
	a.recordVerification(code)
	return code
}

// useDashboard reports whether verification runs in the full-screen
// dashboard: it needs --tui and an interactive, non-quiet output.
func (a *Application) useDashboard(out io.Writer) bool {
	return a.Config.TUI && !a.Config.Quiet && isTerminalWriter(out)
}

func (a *Application) recordVerification(code int) {
	switch code {
	case apperrors.ExitSuccess, apperrors.ExitErrorMismatch:
		a.Metrics.ObserveVerification(code == apperrors.ExitSuccess)
	}
	a.Logger.Debug("verification finished", logging.String("operands", a.Config.Verify), logging.Int("exit_code", code))
}
