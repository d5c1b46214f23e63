package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/infinite/internal/config"
	"github.com/agbru/infinite/internal/orchestration"
	"github.com/agbru/infinite/internal/sysmon"
	"github.com/agbru/infinite/internal/ui"
)

// PrintExecutionConfig displays the settings a run uses.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Radix %s%d%s, division strategy %s%s%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.Radix, ui.ColorReset(),
		ui.ColorCyan(), cfg.Strategy, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	limit := "unlimited"
	if cfg.MaxOperandDigits > 0 {
		limit = fmt.Sprintf("%d digits", cfg.MaxOperandDigits)
	}
	fmt.Fprintf(out, "Operand limit: %s%s%s.\n", ui.ColorCyan(), limit, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if features := sysmon.CPUFeatures(); len(features) > 0 {
		fmt.Fprintf(out, "CPU features: %s%s%s.\n", ui.ColorCyan(), strings.Join(features, ", "), ui.ColorReset())
	}
}

// PrintExecutionMode announces which strategies a verification runs.
func PrintExecutionMode(dividers []orchestration.Divider, concurrency int, out io.Writer) {
	switch len(dividers) {
	case 0:
		fmt.Fprintf(out, "Execution mode: nothing to run.\n")
		return
	case 1:
		fmt.Fprintf(out, "Execution mode: single division with the %s%s%s strategy.\n",
			ui.ColorGreen(), dividers[0].Name(), ui.ColorReset())
	default:
		parallel := len(dividers)
		if concurrency > 0 && concurrency < parallel {
			parallel = concurrency
		}
		fmt.Fprintf(out, "Execution mode: cross-check of %d strategies, %d at a time.\n", len(dividers), parallel)
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
