// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agbru/infinite/internal/calc"
	"github.com/agbru/infinite/internal/format"
	"github.com/agbru/infinite/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// Verbose disables truncation of long values.
	Verbose bool
}

// FormatResultValue returns text shortened around an ellipsis when it is
// longer than TruncationLimit and verbose is false. The boolean reports
// whether the text was shortened.
func FormatResultValue(text calc.Rendering, verbose bool) (string, bool) {
	full := text.String()
	if verbose {
		return full, false
	}
	short := format.Truncate(full, TruncationLimit)
	return short, short != full
}

// DisplayResult prints a rendered result with its timing and size details.
//
// Parameters:
//   - res: The evaluated result.
//   - text: The result rendered in the output radix.
//   - expr: The expression as typed, echoed before the value.
//   - duration: The evaluation time.
//   - verbose: Print the value in full.
//   - out: The output writer.
func DisplayResult(res calc.Result, text calc.Rendering, expr string, duration time.Duration, verbose bool, out io.Writer) {
	value, truncated := FormatResultValue(text, verbose)

	fmt.Fprintf(out, "\n%sResult%s (radix %d)\n", ui.ColorBold(), ui.ColorReset(), text.Radix)
	fmt.Fprintf(out, "  %s = %s%s%s\n", expr, ui.ColorGreen(), value, ui.ColorReset())
	fmt.Fprintf(out, "  Time:   %s%s%s\n", ui.ColorCyan(), format.FormatExecutionDuration(duration), ui.ColorReset())
	if res.Kind == calc.ResultNumber && res.Value.IsFinite() {
		fmt.Fprintf(out, "  Bits:   %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(res.Value.BitLen())), ui.ColorReset())
		fmt.Fprintf(out, "  Digits: %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(text.Digits())), ui.ColorReset())
	}
	if truncated {
		fmt.Fprintf(out, "  (truncated) Tip: use %s-v%s to print the full value.\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// DisplayQuietResult prints the full value alone, for scripts.
func DisplayQuietResult(out io.Writer, text calc.Rendering) {
	fmt.Fprintln(out, text.String())
}

// WriteResultToFile writes a rendered result with a descriptive header to
// path, creating parent directories as needed. An empty path writes nothing.
func WriteResultToFile(path, expr string, res calc.Result, text calc.Rendering, duration time.Duration) error {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# infcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expression: %s\n", expr)
	fmt.Fprintf(file, "# Radix: %d\n", text.Radix)
	fmt.Fprintf(file, "# Kind: %s\n", res.Kind)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	if res.Kind == calc.ResultNumber && res.Value.IsFinite() {
		fmt.Fprintf(file, "# Bits: %d\n", res.Value.BitLen())
	}
	fmt.Fprintf(file, "\n%s\n", text.String())
	return file.Close()
}

// DisplayResultWithConfig prints a rendered result according to cfg and
// saves it when an output file is configured.
func DisplayResultWithConfig(out io.Writer, expr string, res calc.Result, text calc.Rendering, duration time.Duration, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, text)
	} else {
		DisplayResult(res, text, expr, duration, cfg.Verbose, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(cfg.OutputFile, expr, res, text, duration); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
