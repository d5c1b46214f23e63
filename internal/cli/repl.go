package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/infinite/internal/bigint"
	"github.com/agbru/infinite/internal/calc"
	"github.com/agbru/infinite/internal/format"
	"github.com/agbru/infinite/internal/logging"
	"github.com/agbru/infinite/internal/metrics"
	"github.com/agbru/infinite/internal/orchestration"
	"github.com/agbru/infinite/internal/sysmon"
	"github.com/agbru/infinite/internal/ui"
)

// REPLConfig holds the settings of an interactive session.
type REPLConfig struct {
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Radix is the radix operands are typed in and results shown in.
	Radix int
	// Strategy is the division strategy used by div and mod.
	Strategy bigint.Strategy
	// Concurrency bounds how many strategies verify runs at once.
	Concurrency int
	// Verbose prints long values in full.
	Verbose bool
	// ShowSpinner turns a spinner while an evaluation runs.
	ShowSpinner bool
}

// REPL is an interactive evaluation session.
type REPL struct {
	config    REPLConfig
	registry  *calc.Registry
	evalOpts  []calc.EvaluatorOption
	logger    logging.Logger
	in        io.Reader
	out       io.Writer
	memory    *metrics.MemoryCollector
	evaluated int
}

// NewREPL creates a session over registry. evalOpts are applied to every
// evaluator the session builds, after its own radix, strategy and timeout.
func NewREPL(registry *calc.Registry, config REPLConfig, evalOpts ...calc.EvaluatorOption) *REPL {
	if config.Radix == 0 {
		config.Radix = 10
	}
	return &REPL{
		config:   config,
		registry: registry,
		evalOpts: evalOpts,
		logger:   logging.NewLogger(io.Discard, "repl"),
		in:       os.Stdin,
		out:      os.Stdout,
		memory:   metrics.NewMemoryCollector(),
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetLogger sets the logger receiving one debug entry per evaluation.
func (r *REPL) SetLogger(l logging.Logger) { r.logger = l }

// Start reads commands until exit or end of input.
func (r *REPL) Start() {
	fmt.Fprintln(r.out, ui.RenderBanner("infcalc", "unbounded integers, interactive mode"))
	r.printHelp()
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 64<<20)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"inf> "+ui.ColorReset())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <operand>...%s  - Evaluate an operation, e.g. gcd 12 10\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sops%s                - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sradix [r]%s          - Show or set the radix (1-62)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstrategy [name]%s    - Show or set the division strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverify <x> <y>%s     - Cross-check x / y with every strategy\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s            - Toggle full display of long values\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s             - Display the session settings\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s               - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s        - Leave\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one line and returns false when the session ends.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case "ops", "list", "ls":
		r.cmdOps()
	case "radix":
		r.cmdRadix(args)
	case "strategy":
		r.cmdStrategy(args)
	case "verify":
		r.cmdVerify(args)
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full values: %s%v%s\n", ui.ColorGreen(), r.config.Verbose, ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	default:
		if _, err := r.registry.Get(cmd); err != nil {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
			return true
		}
		r.evaluate(input)
	}
	return true
}

func (r *REPL) evaluator() *calc.Evaluator {
	opts := append([]calc.EvaluatorOption{
		calc.WithRadix(r.config.Radix),
		calc.WithStrategy(r.config.Strategy),
		calc.WithTimeout(r.config.Timeout),
	}, r.evalOpts...)
	return calc.NewEvaluator(r.registry, opts...)
}

func (r *REPL) evaluate(line string) {
	var (
		res  calc.Result
		text calc.Rendering
		err  error
	)
	start := time.Now()
	run := func() { res, text, err = r.evaluator().EvaluateRendered(context.Background(), line) }
	if r.config.ShowSpinner {
		RunWithSpinner(r.out, "Evaluating...", run)
	} else {
		run()
	}
	duration := time.Since(start)
	r.logger.Debug("evaluated", logging.String("expr", line), logging.Int("radix", r.config.Radix), logging.Float64("seconds", duration.Seconds()))

	if err != nil {
		HandleCalculationError(err, duration, r.out)
		return
	}
	r.evaluated++
	DisplayResult(res, text, line, duration, r.config.Verbose, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.registry.List() {
		op := r.registry.MustGet(name)
		fmt.Fprintf(r.out, "  %s%-14s%s %s\n", ui.ColorYellow(), op.Usage, ui.ColorReset(), op.Description)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdRadix(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Radix: %s%d%s\n", ui.ColorCyan(), r.config.Radix, ui.ColorReset())
		return
	}
	radix, err := strconv.Atoi(args[0])
	if err != nil || radix < bigint.MinRadix || radix > bigint.MaxRadix {
		fmt.Fprintf(r.out, "%sRadix must be an integer between %d and %d%s\n", ui.ColorRed(), bigint.MinRadix, bigint.MaxRadix, ui.ColorReset())
		return
	}
	r.config.Radix = radix
	fmt.Fprintf(r.out, "Radix changed to: %s%d%s\n", ui.ColorGreen(), radix, ui.ColorReset())
}

func (r *REPL) cmdStrategy(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Strategy: %s%s%s\n", ui.ColorCyan(), r.config.Strategy, ui.ColorReset())
		return
	}
	s, err := bigint.ParseStrategy(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.config.Strategy = s
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), s, ui.ColorReset())
}

func (r *REPL) cmdVerify(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: verify <x> <y>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	x, err := bigint.Parse(args[0], r.config.Radix)
	if err != nil {
		HandleCalculationError(err, 0, r.out)
		return
	}
	y, err := bigint.Parse(args[1], r.config.Radix)
	if err != nil {
		HandleCalculationError(err, 0, r.out)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if r.config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), r.config.Timeout)
	}
	defer cancel()
	req := orchestration.VerifyRequest{X: x, Y: y, Dividers: orchestration.DividersFor(nil), Concurrency: r.config.Concurrency}
	results := orchestration.VerifyDivision(ctx, req, orchestration.NullProgressReporter{}, r.out)
	orchestration.AnalyzeVerification(req, results, CLIResultPresenter{},
		orchestration.PresentationOptions{Radix: r.config.Radix, Verbose: r.config.Verbose}, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	heap := r.memory.Snapshot()
	host := sysmon.Sample()
	fmt.Fprintln(r.out, ui.RenderPanel("Session",
		fmt.Sprintf("Radix:       %d", r.config.Radix),
		fmt.Sprintf("Strategy:    %s", r.config.Strategy),
		fmt.Sprintf("Timeout:     %s", r.config.Timeout),
		fmt.Sprintf("Full values: %v", r.config.Verbose),
		fmt.Sprintf("Evaluated:   %d", r.evaluated),
		fmt.Sprintf("Heap:        %s bytes", format.FormatNumberString(strconv.FormatUint(heap.HeapAlloc, 10))),
		fmt.Sprintf("Host:        CPU %.1f%%, memory %.1f%%", host.CPUPercent, host.MemPercent),
	))
}
