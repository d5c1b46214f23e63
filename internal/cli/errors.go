package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/format"
	"github.com/agbru/infinite/internal/ui"
)

// HandleCalculationError prints a message suited to the kind of err and
// returns the matching exit code. A nil error prints nothing.
func HandleCalculationError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}

	var (
		timeoutErr    apperrors.TimeoutError
		arithErr      apperrors.ArithmeticError
		capacityErr   apperrors.CapacityError
		formatErr     apperrors.FormatError
		validationErr apperrors.ValidationError
	)
	after := ""
	if duration > 0 {
		after = " after " + format.FormatExecutionDuration(duration)
	}

	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimeout%s: %v\n", ui.ColorRed(), ui.ColorReset(), err)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled%s%s.\n", ui.ColorYellow(), ui.ColorReset(), after)
	case errors.As(err, &arithErr):
		fmt.Fprintf(out, "%sUndefined%s: %s\n", ui.ColorRed(), ui.ColorReset(), arithErr.Message)
	case errors.As(err, &capacityErr):
		fmt.Fprintf(out, "%sToo large%s: %v\n", ui.ColorRed(), ui.ColorReset(), err)
	case errors.As(err, &formatErr), errors.As(err, &validationErr):
		fmt.Fprintf(out, "%sInvalid input%s: %v\n", ui.ColorRed(), ui.ColorReset(), err)
	default:
		fmt.Fprintf(out, "%sError%s%s: %v\n", ui.ColorRed(), ui.ColorReset(), after, err)
	}
	return apperrors.ExitCodeFor(err)
}
