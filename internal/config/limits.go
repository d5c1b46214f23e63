package config

import (
	"runtime"

	"github.com/agbru/infinite/internal/bigint"
)

// Concurrency resolution chain (highest priority first):
//   1. CLI flag (--concurrency)
//   2. Environment variable (INFCALC_CONCURRENCY)
//   3. Estimation from the host (this file)

// ApplyAdaptiveLimits fills limits left at their zero default with values
// estimated from the host, preserving anything the user set explicitly.
func ApplyAdaptiveLimits(cfg AppConfig) AppConfig {
	if cfg.Concurrency == 0 {
		cfg.Concurrency = EstimateVerifyConcurrency()
	}
	return cfg
}

// EstimateVerifyConcurrency returns how many division strategies can be
// verified side by side: one per CPU, and never more than there are
// strategies.
func EstimateVerifyConcurrency() int {
	return max(1, min(runtime.NumCPU(), len(bigint.Strategies)))
}
