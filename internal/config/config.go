// Package config parses and validates the command-line configuration of
// infcalc. Values come from flags first, then INFCALC_* environment
// variables, then defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/infinite/internal/bigint"
	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/logging"
)

// EnvPrefix is the prefix shared by every environment variable override.
const EnvPrefix = "INFCALC_"

// Default values for the configuration.
const (
	DefaultRadix            = 10
	DefaultStrategy         = "auto"
	DefaultTimeout          = 5 * time.Minute
	DefaultMaxOperandDigits = 100000
	DefaultLogLevel         = "info"
)

// SupportedShells lists the shells accepted by --completion.
var SupportedShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds the application's configuration, populated from flags and
// environment variables.
type AppConfig struct {
	// Expr is a single expression to evaluate, such as "gcd 12 10".
	Expr string
	// Interactive starts the REPL.
	Interactive bool
	// Verify holds two operands "x y" whose division is cross-checked across
	// every strategy.
	Verify string
	// Serve is the listen address of the HTTP service; empty disables it.
	Serve string
	// Radix is the radix used to parse operands and render results (1 to 62).
	Radix int
	// Strategy names the division strategy used by evaluations.
	Strategy string
	// Timeout bounds a single evaluation.
	Timeout time.Duration
	// MaxOperandDigits bounds the length of each operand; 0 disables the check.
	MaxOperandDigits int
	// Concurrency bounds how many strategies verification runs at once;
	// 0 selects a value from the host's CPU count.
	Concurrency int
	// OutputFile receives the result with a descriptive header.
	OutputFile string
	// Quiet prints only the result.
	Quiet bool
	// Verbose prints results in full instead of truncating long values.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// TUI shows verification as a full-screen dashboard. It is ignored
	// outside --verify and when the output is not a terminal.
	TUI bool
	// LogLevel is the minimum level of the structured logs.
	LogLevel string
	// Completion names a shell to print a completion script for.
	Completion string
}

// ParseConfig parses the command line into an AppConfig, applies environment
// overrides for flags that were not given, and validates the result.
// Positional arguments, when no expression flag is given, form the expression.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errWriter: Destination of usage and parse errors.
//   - availableOps: Operation names accepted in expressions.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Expr, "e", "", "Expression to evaluate, e.g. \"gcd 12 10\" (shorthand).")
	fs.StringVar(&cfg.Expr, "expr", "", "Expression to evaluate, e.g. \"gcd 12 10\".")
	fs.BoolVar(&cfg.Interactive, "i", false, "Start the interactive REPL (shorthand).")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.StringVar(&cfg.Verify, "verify", "", "Cross-check the division \"x y\" with every strategy.")
	fs.StringVar(&cfg.Serve, "serve", "", "Serve the HTTP API on this address (e.g. :8080).")
	fs.IntVar(&cfg.Radix, "radix", DefaultRadix, "Radix for operands and results (1-62).")
	fs.StringVar(&cfg.Strategy, "strategy", DefaultStrategy, "Division strategy: auto, native, binary or long.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of one evaluation.")
	fs.IntVar(&cfg.MaxOperandDigits, "max-digits", DefaultMaxOperandDigits, "Maximum digits per operand (0 = unlimited).")
	fs.IntVar(&cfg.Concurrency, "concurrency", 0, "Strategies verified in parallel (0 = from CPU count).")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the result to this file (shorthand).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print only the result (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Print long results in full (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print long results in full.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show --verify as an interactive dashboard.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [op operand...]\n\n", programName)
		fmt.Fprintf(errWriter, "Operations: %s\n\nFlags:\n", strings.Join(availableOps, ", "))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if cfg.Expr == "" && fs.NArg() > 0 {
		cfg.Expr = strings.Join(fs.Args(), " ")
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableOps); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
//
// Parameters:
//   - availableOps: Operation names accepted in expressions.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableOps []string) error {
	if c.Radix < bigint.MinRadix || c.Radix > bigint.MaxRadix {
		return apperrors.NewConfigError("radix must be between %d and %d, got %d", bigint.MinRadix, bigint.MaxRadix, c.Radix)
	}
	if _, err := bigint.ParseStrategy(c.Strategy); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxOperandDigits < 0 {
		return apperrors.NewConfigError("max-digits must not be negative, got %d", c.MaxOperandDigits)
	}
	if c.Concurrency < 0 {
		return apperrors.NewConfigError("concurrency must not be negative, got %d", c.Concurrency)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Completion != "" && !slices.Contains(SupportedShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for completion (supported: %s)", c.Completion, strings.Join(SupportedShells, ", "))
	}

	modes := 0
	for _, set := range []bool{c.Expr != "", c.Interactive, c.Verify != "", c.Serve != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("choose only one of an expression, -i, --verify and --serve")
	}

	if c.Expr != "" {
		fields := strings.Fields(c.Expr)
		if len(fields) == 0 {
			return apperrors.NewConfigError("expression is empty")
		}
		if op := fields[0]; len(availableOps) > 0 && !slices.Contains(availableOps, op) {
			return apperrors.NewConfigError("unknown operation %q (available: %s)", op, strings.Join(availableOps, ", "))
		}
	}
	if c.Verify != "" && len(strings.Fields(c.Verify)) != 2 {
		return apperrors.NewConfigError("--verify needs exactly two operands, got %q", c.Verify)
	}
	return nil
}
