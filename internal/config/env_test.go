package config

import (
	"bytes"
	"testing"
	"time"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"RADIX", "16")
	t.Setenv(EnvPrefix+"TIMEOUT", "42s")
	t.Setenv(EnvPrefix+"STRATEGY", "binary")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"MAX_DIGITS", "not-a-number")
	t.Setenv(EnvPrefix+"TUI", "1")

	cfg, err := ParseConfig("infcalc", nil, &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Radix != 16 || cfg.Timeout != 42*time.Second || cfg.Strategy != "binary" || !cfg.Quiet || !cfg.TUI {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.MaxOperandDigits != DefaultMaxOperandDigits {
		t.Errorf("invalid env value should be ignored, got %d", cfg.MaxOperandDigits)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"RADIX", "16")
	t.Setenv(EnvPrefix+"QUIET", "true")

	cfg, err := ParseConfig("infcalc", []string{"-radix", "8", "-quiet=false"}, &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Radix != 8 {
		t.Errorf("flag should win over env, got radix %d", cfg.Radix)
	}
	if cfg.Quiet {
		t.Error("explicit -quiet=false should win over env")
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}
