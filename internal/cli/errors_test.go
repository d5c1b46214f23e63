package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/orchestration"
)

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		duration time.Duration
		code     int
		contains string
	}{
		{"Nil", nil, 0, apperrors.ExitSuccess, ""},
		{"Timeout", apperrors.TimeoutError{Operation: "pow", Limit: time.Second}, time.Second, apperrors.ExitErrorTimeout, "Timeout"},
		{"Deadline", fmt.Errorf("verify: %w", context.DeadlineExceeded), 0, apperrors.ExitErrorTimeout, "Timeout"},
		{"Canceled", context.Canceled, 2 * time.Second, apperrors.ExitErrorCanceled, "Canceled after"},
		{"Arithmetic", apperrors.ArithmeticError{Op: "DivideExact", Message: "7 is not a multiple of 2"}, 0, apperrors.ExitErrorGeneric, "Undefined: 7 is not a multiple of 2"},
		{"Capacity", apperrors.CapacityError{Needed: 10, Limit: 5}, 0, apperrors.ExitErrorGeneric, "Too large"},
		{"Format", apperrors.FormatError{Input: "zz", Radix: 10, Message: "invalid digit 'z'"}, 0, apperrors.ExitErrorGeneric, "Invalid input"},
		{"Validation", apperrors.ValidationError{Field: "operands", Message: "too many"}, 0, apperrors.ExitErrorGeneric, "Invalid input"},
		{"Config", apperrors.NewConfigError("bad radix"), 0, apperrors.ExitErrorConfig, "Error: bad radix"},
		{"Generic", errors.New("boom"), time.Millisecond, apperrors.ExitErrorGeneric, "Error after"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tc.err, tc.duration, &buf)
			if code != tc.code {
				t.Errorf("exit code = %d, want %d", code, tc.code)
			}
			if tc.contains == "" {
				if buf.Len() != 0 {
					t.Errorf("expected no output, got %q", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), tc.contains) {
				t.Errorf("output %q missing %q", buf.String(), tc.contains)
			}
		})
	}
}

func TestCLIResultPresenter(t *testing.T) {
	t.Parallel()
	x, y := mustParse(t, "100"), mustParse(t, "7")
	q := x.Divide(y)
	results := []orchestration.VerificationResult{
		{Name: "native", Quotient: q, Duration: time.Millisecond},
		{Name: "binary", Err: errors.New("boom")},
	}
	presenter := CLIResultPresenter{}

	t.Run("Comparison table", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		presenter.PresentComparisonTable(results, &buf)
		output := buf.String()
		for _, want := range []string{"Strategy Comparison", "Strategy", "Duration", "Status", "native", "✅ 14 r 2", "❌ Failure (boom)", "< 1ns"} {
			if !strings.Contains(output, want) {
				t.Errorf("table missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("Result in radix 2", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		presenter.PresentResult(results[0], orchestration.PresentationOptions{Radix: 2}, &buf)
		if !strings.Contains(buf.String(), "Quotient:  1110") || !strings.Contains(buf.String(), "Remainder: 10") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("Invalid radix", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		presenter.PresentResult(results[0], orchestration.PresentationOptions{Radix: 0}, &buf)
		if !strings.Contains(buf.String(), "Cannot render quotient") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("Handle error", func(t *testing.T) {
		t.Parallel()
		if code := presenter.HandleError(context.Canceled, 0, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
		}
	})
}
