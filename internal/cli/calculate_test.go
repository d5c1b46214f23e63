package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/infinite/internal/bigint"
	"github.com/agbru/infinite/internal/config"
	"github.com/agbru/infinite/internal/orchestration"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()

	t.Run("Limited operands", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		cfg := config.AppConfig{Radix: 16, Strategy: "long", Timeout: time.Minute, MaxOperandDigits: 500}
		PrintExecutionConfig(cfg, &buf)

		output := buf.String()
		for _, want := range []string{"Execution Configuration", "Radix 16", "strategy long", "timeout 1m0s", "500 digits", "logical processors"} {
			if !strings.Contains(output, want) {
				t.Errorf("output missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("Unlimited operands", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionConfig(config.AppConfig{Radix: 10, Strategy: "auto", Timeout: time.Second}, &buf)
		if !strings.Contains(buf.String(), "Operand limit: unlimited") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		dividers    []orchestration.Divider
		concurrency int
		want        string
	}{
		{"Nothing to run", nil, 0, "nothing to run"},
		{"Single strategy", orchestration.DividersFor([]bigint.Strategy{bigint.StrategyLongDivision}), 0, "single division with the long strategy"},
		{"All strategies", orchestration.DividersFor(nil), 0, "cross-check of 3 strategies, 3 at a time"},
		{"Limited concurrency", orchestration.DividersFor(nil), 2, "cross-check of 3 strategies, 2 at a time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionMode(tc.dividers, tc.concurrency, &buf)
			if !strings.Contains(buf.String(), tc.want) {
				t.Errorf("output missing %q:\n%s", tc.want, buf.String())
			}
		})
	}
}
