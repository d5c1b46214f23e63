package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/infinite/internal/bigint"
	apperrors "github.com/agbru/infinite/internal/errors"
)

// ProgressBufferMultiplier sizes the progress channel per strategy so that
// strategies never block on a slow display.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/infinite/internal/orchestration"

// VerifyRequest describes one cross-check.
type VerifyRequest struct {
	X, Y     bigint.Int
	Dividers []Divider
	// Concurrency bounds how many dividers run at once; 0 runs them all.
	Concurrency int
}

// VerifyDivision computes x ÷ y with every divider of req concurrently and
// returns one result per divider, in the order given.
//
// The engine cannot be interrupted: when ctx ends, pending dividers are
// reported with the context error and their computations are abandoned.
//
// Parameters:
//   - ctx: Cancellation and deadline for the whole run.
//   - req: Operands, dividers and concurrency.
//   - reporter: Progress display (NullProgressReporter for quiet mode).
//   - out: Destination of progress output.
//
// Returns:
//   - []VerificationResult: The result of each divider.
func VerifyDivision(ctx context.Context, req VerifyRequest, reporter ProgressReporter, out io.Writer) []VerificationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "VerifyDivision", trace.WithAttributes(
		attribute.Int("x.bits", req.X.BitLen()),
		attribute.Int("y.bits", req.Y.BitLen()),
		attribute.Int("dividers", len(req.Dividers)),
	))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	if req.Concurrency > 0 {
		g.SetLimit(req.Concurrency)
	}
	results := make([]VerificationResult, len(req.Dividers))
	progressChan := make(chan ProgressUpdate, len(req.Dividers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(req.Dividers), out)

	for i, d := range req.Dividers {
		g.Go(func() error {
			results[i] = runDivider(ctx, i, d, req.X, req.Y, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("failed", failed))
	return results
}

type divideOutcome struct {
	q   bigint.Quotient
	err error
}

func runDivider(ctx context.Context, idx int, d Divider, x, y bigint.Int, progressChan chan<- ProgressUpdate) (res VerificationResult) {
	_, span := otel.Tracer(tracerName).Start(ctx, "divide", trace.WithAttributes(attribute.String("strategy", d.Name())))
	defer span.End()

	res = VerificationResult{Name: d.Name()}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		progressChan <- ProgressUpdate{Index: idx, Value: 1}
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		span.SetStatus(codes.Error, err.Error())
		return res
	}
	progressChan <- ProgressUpdate{Index: idx, Value: 0}

	done := make(chan divideOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- divideOutcome{err: apperrors.CalculationError{Cause: fmt.Errorf("strategy %s panicked: %v", d.Name(), r)}}
			}
		}()
		done <- divideOutcome{q: d.Divide(x, y)}
	}()

	select {
	case o := <-done:
		res.Quotient, res.Err = o.q, o.err
	case <-ctx.Done():
		res.Err = ctx.Err()
	}
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	}
	return res
}

// AnalyzeVerification sorts the results, presents them and checks that the
// successful dividers agree with each other and with x = y·q + sign(x)·r.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, or the presenter's code when no
//     divider completed.
func AnalyzeVerification(req VerifyRequest, results []VerificationResult, presenter ResultPresenter, opts PresentationOptions, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *VerificationResult
	var firstError error
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the division.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !res.Quotient.Equal(firstValid.Quotient) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Strategy %s disagrees with %s.\n", res.Name, firstValid.Name)
			return apperrors.ExitErrorMismatch
		}
	}
	if !SatisfiesIdentity(req.X, req.Y, firstValid.Quotient) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The quotient does not satisfy x = y*q + sign(x)*r with 0 <= r < |y|.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All strategies agree.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// SatisfiesIdentity reports whether q is consistent with x ÷ y: the
// remainder r lies in [0, |y|) and x = y·whole + sign(x)·r. Divisions with
// a non-finite operand or a zero divisor have no identity to check and
// always pass.
func SatisfiesIdentity(x, y bigint.Int, q bigint.Quotient) bool {
	if !x.IsFinite() || !y.IsFinite() || y.IsZero() {
		return true
	}
	if !q.Whole.IsFinite() || !q.Remainder.IsFinite() {
		return false
	}
	r := q.Remainder
	if r.Sign() < 0 || r.Cmp(y.Abs()) >= 0 {
		return false
	}
	if x.Sign() < 0 {
		r = r.Neg()
	}
	return y.Mul(q.Whole).Add(r).Equal(x)
}
