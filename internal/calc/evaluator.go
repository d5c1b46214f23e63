package calc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agbru/infinite/internal/bigint"
	apperrors "github.com/agbru/infinite/internal/errors"
)

// Observer is notified after every evaluation. Metrics collectors implement it.
type Observer interface {
	ObserveOperation(op string, duration time.Duration, err error)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(op string, duration time.Duration, err error)

// ObserveOperation calls f.
func (f ObserverFunc) ObserveOperation(op string, duration time.Duration, err error) {
	f(op, duration, err)
}

// Evaluator parses and runs expressions of the form "op operand...".
type Evaluator struct {
	registry  *Registry
	radix     int
	strategy  bigint.Strategy
	maxDigits int
	timeout   time.Duration
	observer  Observer
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithRadix sets the radix used to parse operands.
func WithRadix(radix int) EvaluatorOption {
	return func(e *Evaluator) { e.radix = radix }
}

// WithStrategy sets the division strategy used by div and mod.
func WithStrategy(s bigint.Strategy) EvaluatorOption {
	return func(e *Evaluator) { e.strategy = s }
}

// WithMaxOperandDigits bounds the text length of every operand; 0 disables
// the check.
func WithMaxOperandDigits(n int) EvaluatorOption {
	return func(e *Evaluator) { e.maxDigits = n }
}

// WithTimeout bounds EvaluateContext and EvaluateRendered; 0 disables the
// bound.
func WithTimeout(d time.Duration) EvaluatorOption {
	return func(e *Evaluator) { e.timeout = d }
}

// WithObserver registers an observer for completed evaluations.
func WithObserver(o Observer) EvaluatorOption {
	return func(e *Evaluator) { e.observer = o }
}

// NewEvaluator creates an evaluator over registry, defaulting to radix 10
// and automatic strategy selection.
func NewEvaluator(registry *Registry, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{registry: registry, radix: 10, strategy: bigint.StrategyAuto}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Radix returns the radix operands are parsed in.
func (e *Evaluator) Radix() int { return e.radix }

// Registry returns the operations the evaluator knows.
func (e *Evaluator) Registry() *Registry { return e.registry }

// WithRadix returns a copy of e that parses operands in radix.
func (e *Evaluator) WithRadix(radix int) *Evaluator {
	c := *e
	c.radix = radix
	return &c
}

// Parse splits line into an operation and its parsed operands.
func (e *Evaluator) Parse(line string) (Operation, []bigint.Int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Operation{}, nil, apperrors.ValidationError{Field: "expression", Message: "is empty"}
	}
	op, err := e.registry.Get(strings.ToLower(fields[0]))
	if err != nil {
		return Operation{}, nil, apperrors.ValidationError{Field: "operation", Message: err.Error()}
	}
	raw := fields[1:]
	if len(raw) != op.Arity {
		return Operation{}, nil, apperrors.ValidationError{
			Field:   "operands",
			Message: fmt.Sprintf("%s takes %d operand(s), got %d (usage: %s)", op.Name, op.Arity, len(raw), op.Usage),
		}
	}

	args := make([]bigint.Int, len(raw))
	for i, s := range raw {
		if e.maxDigits > 0 && len(s) > e.maxDigits {
			return Operation{}, nil, apperrors.ValidationError{
				Field:   "operands",
				Message: fmt.Sprintf("operand %d has %d digits, limit is %d", i+1, len(s), e.maxDigits),
			}
		}
		v, err := bigint.Parse(s, e.radix)
		if err != nil {
			return Operation{}, nil, err
		}
		args[i] = v
	}
	return op, args, nil
}

// Evaluate runs line synchronously.
func (e *Evaluator) Evaluate(line string) (Result, error) {
	start := time.Now()
	op, args, err := e.Parse(line)
	if err != nil {
		e.observe("invalid", start, err)
		return Result{}, err
	}
	res, err := op.Apply(args, Options{Strategy: e.strategy})
	e.observe(op.Name, start, err)
	return res, err
}

// EvaluateContext runs line and gives up when ctx ends or the configured
// timeout elapses. The engine cannot be interrupted, so an abandoned
// evaluation finishes in the background and its result is discarded.
func (e *Evaluator) EvaluateContext(ctx context.Context, line string) (Result, error) {
	res, _, err := e.bounded(ctx, line, false)
	return res, err
}

// EvaluateRendered is EvaluateContext followed by rendering the result in
// the evaluator's radix. Rendering a large value can cost far more than
// computing it, so both steps share the same deadline.
func (e *Evaluator) EvaluateRendered(ctx context.Context, line string) (Result, Rendering, error) {
	return e.bounded(ctx, line, true)
}

func (e *Evaluator) bounded(ctx context.Context, line string, render bool) (Result, Rendering, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type outcome struct {
		res  Result
		text Rendering
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		var o outcome
		o.res, o.err = e.Evaluate(line)
		if o.err == nil && render {
			o.text, o.err = o.res.Render(e.radix)
		}
		done <- o
	}()

	select {
	case o := <-done:
		return o.res, o.text, o.err
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) && e.timeout > 0 {
			return Result{}, Rendering{}, apperrors.TimeoutError{Operation: opName(line), Limit: e.timeout}
		}
		return Result{}, Rendering{}, err
	}
}

func (e *Evaluator) observe(op string, start time.Time, err error) {
	if e.observer != nil {
		e.observer.ObserveOperation(op, time.Since(start), err)
	}
}

func opName(line string) string {
	if fields := strings.Fields(line); len(fields) > 0 {
		return strings.ToLower(fields[0])
	}
	return "expression"
}
