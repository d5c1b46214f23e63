// Package app wires configuration, the evaluator and the front ends
// (one-shot CLI, verification, REPL, HTTP service) into the infcalc
// application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/infinite/internal/bigint"
	"github.com/agbru/infinite/internal/calc"
	"github.com/agbru/infinite/internal/cli"
	"github.com/agbru/infinite/internal/config"
	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/logging"
	"github.com/agbru/infinite/internal/metrics"
	"github.com/agbru/infinite/internal/server"
	"github.com/agbru/infinite/internal/ui"
)

// Application represents the infcalc application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *calc.Registry
	Metrics   *metrics.Metrics
	Logger    logging.Logger
	ErrWriter io.Writer
	// Stdin feeds the REPL.
	Stdin io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets the operation registry instead of the built-in one.
func WithRegistry(r *calc.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithStdin sets the REPL input instead of os.Stdin.
func WithStdin(in io.Reader) AppOption {
	return func(a *Application) { a.Stdin = in }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, Stdin: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = calc.DefaultRegistry()
	}

	programName := "infcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveLimits(cfg)

	level, err := logging.ParseLevel(app.Config.LogLevel)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	app.Logger = logging.NewLevelLogger(errWriter, "app", level)
	app.Metrics = metrics.NewMetrics()
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Serve != "":
		return a.runServer(ctx)
	case a.Config.Verify != "":
		return a.runVerify(ctx, out)
	case a.Config.Expr != "":
		return a.runCalculate(ctx, out)
	default:
		return a.runREPL(out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// strategy returns the configured division strategy. The configuration has
// been validated, so an unknown name cannot reach here.
func (a *Application) strategy() bigint.Strategy {
	s, _ := bigint.ParseStrategy(a.Config.Strategy)
	return s
}

// evaluatorOptions returns the settings every evaluator of the run shares.
func (a *Application) evaluatorOptions() []calc.EvaluatorOption {
	return []calc.EvaluatorOption{
		calc.WithMaxOperandDigits(a.Config.MaxOperandDigits),
		calc.WithObserver(a.Metrics),
	}
}

func (a *Application) newEvaluator() *calc.Evaluator {
	opts := append([]calc.EvaluatorOption{
		calc.WithRadix(a.Config.Radix),
		calc.WithStrategy(a.strategy()),
		calc.WithTimeout(a.Config.Timeout),
	}, a.evaluatorOptions()...)
	return calc.NewEvaluator(a.Registry, opts...)
}

// runREPL starts an interactive session on Stdin.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Registry, cli.REPLConfig{
		Timeout:     a.Config.Timeout,
		Radix:       a.Config.Radix,
		Strategy:    a.strategy(),
		Concurrency: a.Config.Concurrency,
		Verbose:     a.Config.Verbose,
		ShowSpinner: isTerminalWriter(out),
	}, a.evaluatorOptions()...)
	repl.SetInput(a.Stdin)
	repl.SetOutput(out)
	repl.SetLogger(a.Logger)
	repl.Start()
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until ctx is canceled.
func (a *Application) runServer(ctx context.Context) int {
	security := server.DefaultSecurityConfig()
	security.MaxOperandDigits = a.Config.MaxOperandDigits

	level, _ := logging.ParseLevel(a.Config.LogLevel)
	srv := server.NewServer(a.Config.Serve, a.newEvaluator(),
		server.WithLogger(logging.NewLevelLogger(a.ErrWriter, "server", level)),
		server.WithMetrics(a.Metrics),
		server.WithSecurityConfig(security),
	)
	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// isTerminalWriter reports whether out is a terminal.
func isTerminalWriter(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && ui.IsTerminal(f)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
