// Package metrics exposes evaluation, verification and HTTP metrics in the
// Prometheus format, together with runtime memory readings.
package metrics
