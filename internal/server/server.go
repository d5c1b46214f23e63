// Package server exposes the integer evaluator over HTTP.
//
// Routes:
//   - GET /v1/eval?expr=...&radix=... evaluates one expression. The answer
//     is JSON unless the request accepts application/octet-stream, in which
//     case the values are written in the wire encoding. Responses carry an
//     ETag derived from the result, and If-None-Match yields 304.
//   - GET /healthz reports liveness.
//   - GET /metrics serves Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/infinite/internal/bigint"
	"github.com/agbru/infinite/internal/calc"
	apperrors "github.com/agbru/infinite/internal/errors"
	"github.com/agbru/infinite/internal/logging"
	"github.com/agbru/infinite/internal/metrics"
	"github.com/agbru/infinite/internal/wire"
)

const (
	// ContentTypeWire is the media type of wire-encoded responses.
	ContentTypeWire = "application/octet-stream"

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = time.Minute
)

// EvalResponse is the JSON body of /v1/eval.
type EvalResponse struct {
	Expr       string  `json:"expr"`
	Radix      int     `json:"radix"`
	Kind       string  `json:"kind,omitempty"`
	Result     string  `json:"result,omitempty"`
	Remainder  string  `json:"remainder,omitempty"`
	Truth      *bool   `json:"truth,omitempty"`
	Error      string  `json:"error,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// Server is the HTTP front end of an Evaluator.
type Server struct {
	evaluator *calc.Evaluator
	metrics   *metrics.Metrics
	logger    logging.Logger
	security  SecurityConfig
	addr      string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics sets the metrics the server records into and serves.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option { return func(s *Server) { s.security = c } }

// NewServer creates a server listening on addr once Start is called.
func NewServer(addr string, evaluator *calc.Evaluator, opts ...Option) *Server {
	s := &Server{
		evaluator: evaluator,
		security:  DefaultSecurityConfig(),
		addr:      addr,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NewDefaultLogger()
	}
	return s
}

// Handler returns the routed handler of the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/eval", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleEval)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return apperrors.WrapError(err, "listen on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "server shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}

	query := r.URL.Query()
	resp := EvalResponse{Expr: strings.TrimSpace(query.Get("expr")), Radix: s.evaluator.Radix()}
	if resp.Expr == "" {
		s.writeError(w, resp, apperrors.ValidationError{Field: "expr", Message: "is required"})
		return
	}
	if raw := query.Get("radix"); raw != "" {
		radix, err := strconv.Atoi(raw)
		if err != nil || radix < bigint.MinRadix || radix > bigint.MaxRadix {
			s.writeError(w, resp, apperrors.ValidationError{
				Field:   "radix",
				Message: fmt.Sprintf("must be an integer between %d and %d", bigint.MinRadix, bigint.MaxRadix),
			})
			return
		}
		resp.Radix = radix
	}
	if err := validateOperands(resp.Expr, s.security.MaxOperandDigits); err != nil {
		s.writeError(w, resp, err)
		return
	}

	ev := s.evaluator.WithRadix(resp.Radix)
	wireOut := acceptsWire(r)
	start := time.Now()
	var (
		res  calc.Result
		text calc.Rendering
		err  error
	)
	if wireOut {
		res, err = ev.EvaluateContext(r.Context(), resp.Expr)
	} else {
		res, text, err = ev.EvaluateRendered(r.Context(), resp.Expr)
	}
	resp.DurationMS = float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		s.logger.Debug("evaluation failed", logging.String("expr", resp.Expr), logging.Err(err))
		s.writeError(w, resp, err)
		return
	}

	etag := etagFor(res, resp.Radix, wireOut)
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept")
	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if wireOut {
		s.writeWire(w, res)
		return
	}
	fillResponse(&resp, text)
	writeJSON(w, http.StatusOK, resp)
}

func fillResponse(resp *EvalResponse, text calc.Rendering) {
	resp.Kind = text.Kind.String()
	switch text.Kind {
	case calc.ResultTruth:
		truth := text.Truth
		resp.Truth = &truth
		return
	case calc.ResultQuotient:
		resp.Remainder = text.Remainder
	}
	resp.Result = text.Value
}

// etagFor names a response by the value it carries. The tag is weak
// because duration_ms differs between otherwise identical JSON bodies.
func etagFor(res calc.Result, radix int, wireOut bool) string {
	encoding := "json"
	if wireOut {
		encoding = "wire"
	}
	return fmt.Sprintf(`W/"%016x-%d-%s"`, res.Hash(), radix, encoding)
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func acceptsWire(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), ContentTypeWire)
}

// writeWire writes the result values in the wire encoding: one value, a
// quotient and its remainder, or 1/0 for a truth.
func (s *Server) writeWire(w http.ResponseWriter, res calc.Result) {
	values := []bigint.Int{res.Value}
	switch res.Kind {
	case calc.ResultQuotient:
		values = append(values, res.Remainder)
	case calc.ResultTruth:
		values = []bigint.Int{bigint.Zero()}
		if res.Truth {
			values[0] = bigint.One()
		}
	}

	w.Header().Set("Content-Type", ContentTypeWire)
	w.Header().Set("X-Result-Kind", res.Kind.String())
	w.WriteHeader(http.StatusOK)
	enc := wire.NewEncoder(w)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			s.logger.Error("failed to write wire response", err)
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func (s *Server) writeError(w http.ResponseWriter, resp EvalResponse, err error) {
	resp.Error = err.Error()
	writeJSON(w, statusFor(err), resp)
}

// statusFor maps an evaluation error to an HTTP status.
func statusFor(err error) int {
	var (
		validationErr apperrors.ValidationError
		formatErr     apperrors.FormatError
		arithErr      apperrors.ArithmeticError
		capacityErr   apperrors.CapacityError
		timeoutErr    apperrors.TimeoutError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.As(err, &arithErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &capacityErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware counts in-flight requests and records each request's
// status and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.status, time.Since(start))
	}
}
