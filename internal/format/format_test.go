package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{-time.Second, "0ns"},
		{0, "0ns"},
		{850 * time.Nanosecond, "850ns"},
		{10*time.Microsecond + 400*time.Nanosecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{2*time.Second + 345678*time.Microsecond, "2.346s"},
		{90 * time.Minute, "1h30m0s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"7", "7"},
		{"999", "999"},
		{"1000", "1,000"},
		{"123456", "123,456"},
		{"18446744073709551616", "18,446,744,073,709,551,616"},
		{"-1234", "-1,234"},
		{"+12345", "+12,345"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("1", 10) + strings.Repeat("2", 10)
	if got := Truncate(long, 11); got != "1111...2222" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate(long, 0); got != long {
		t.Errorf("limit 0 should disable truncation, got %q", got)
	}
	if got := Truncate("∞", 10); got != "∞" {
		t.Errorf("short input changed: %q", got)
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()

	t.Run("average", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(2)
		if avg := ps.CalculateAverage(); avg != 0 {
			t.Errorf("initial average = %f, want 0", avg)
		}
		ps.Update(0, 0.5)
		ps.Update(1, 1.0)
		if avg := ps.CalculateAverage(); avg != 0.75 {
			t.Errorf("average = %f, want 0.75", avg)
		}
	})

	t.Run("no tasks", func(t *testing.T) {
		t.Parallel()
		if avg := NewProgressState(0).CalculateAverage(); avg != 0 {
			t.Errorf("average = %f, want 0", avg)
		}
	})

	t.Run("clamping and bad indexes", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(2)
		ps.Update(0, 1.5)
		ps.Update(1, -0.5)
		ps.Update(5, 0.5)
		ps.Update(-1, 0.5)
		if avg := ps.CalculateAverage(); avg != 0.5 {
			t.Errorf("average = %f, want 0.5", avg)
		}
	})
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()

	t.Run("update returns average", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(2)
		avg, eta := p.UpdateWithETA(0, 0.25)
		if avg != 0.125 {
			t.Errorf("average = %f, want 0.125", avg)
		}
		if eta < 0 {
			t.Errorf("ETA should not be negative, got %v", eta)
		}
		if avg, _ = p.UpdateWithETA(1, 0.5); avg != 0.375 {
			t.Errorf("average = %f, want 0.375", avg)
		}
	})

	t.Run("eta from rate", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(1)
		if eta := p.GetETA(); eta != 0 {
			t.Errorf("initial ETA = %v, want 0", eta)
		}
		p.Update(0, 0.5)
		p.progressRate = 0.1
		if eta := p.GetETA(); eta != 5*time.Second {
			t.Errorf("ETA = %v, want 5s", eta)
		}
	})

	t.Run("capped", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(1)
		p.Update(0, 0.001)
		p.progressRate = 0.0000001
		if eta := p.GetETA(); eta != maxETA {
			t.Errorf("ETA = %v, want %v", eta, maxETA)
		}
	})

	t.Run("complete", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(1)
		p.Update(0, 1)
		p.progressRate = 1
		if eta := p.GetETA(); eta != 0 {
			t.Errorf("ETA = %v, want 0 once complete", eta)
		}
	})
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{2 * time.Hour, "2h"},
		{3*time.Hour + 45*time.Minute, "3h45m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.expected {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.expected)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		expected string
	}{
		{0.0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1.0, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 10); got != tt.expected {
			t.Errorf("ProgressBar(%f) = %s; want %s", tt.progress, got, tt.expected)
		}
	}

	line := FormatProgressBarWithETA(0.5, 30*time.Second, 4)
	if line != "[██░░]  50.00% ETA: 30s" {
		t.Errorf("FormatProgressBarWithETA = %q", line)
	}
}
