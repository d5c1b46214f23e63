package server

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"unicode/utf8"

	apperrors "github.com/agbru/infinite/internal/errors"
)

// SecurityConfig holds the HTTP hardening settings of the service.
type SecurityConfig struct {
	// EnableCORS adds CORS headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists the origins CORS accepts; "*" accepts any.
	AllowedOrigins []string
	// AllowedMethods lists the methods announced in preflight responses.
	AllowedMethods []string
	// MaxOperandDigits bounds the length of each operand of an expression;
	// 0 disables the check.
	MaxOperandDigits int
}

// DefaultSecurityConfig returns the settings used when none are given.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:       true,
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		MaxOperandDigits: 100_000,
	}
}

// SecurityMiddleware sets defensive response headers and CORS headers, and
// answers OPTIONS preflight requests itself.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, If-None-Match")
				h.Set("Access-Control-Expose-Headers", "ETag, X-Result-Kind")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value of Access-Control-Allow-Origin for origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}

// validateOperands checks every operand of expr against the digit limit.
func validateOperands(expr string, limit int) error {
	if limit <= 0 {
		return nil
	}
	fields := strings.Fields(expr)
	for i, operand := range fields[min(1, len(fields)):] {
		if n := utf8.RuneCountInString(operand); n > limit {
			return apperrors.ValidationError{
				Field:   "expr",
				Message: fmt.Sprintf("operand %d has %d digits, limit is %d", i+1, n, limit),
			}
		}
	}
	return nil
}
