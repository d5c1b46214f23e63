package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates produced from a very slow progress rate.
const maxETA = 24 * time.Hour

// rateSmoothing is the weight given to the newest rate sample.
const rateSmoothing = 0.3

// ProgressState tracks the completion ratio of a fixed number of concurrent
// tasks. Ratios outside [0, 1] are clamped and unknown indexes are ignored.
type ProgressState struct {
	mu         sync.Mutex
	progresses []float64
	numTasks   int
}

// NewProgressState creates a state for numTasks tasks, all at 0.
func NewProgressState(numTasks int) *ProgressState {
	if numTasks < 0 {
		numTasks = 0
	}
	return &ProgressState{progresses: make([]float64, numTasks), numTasks: numTasks}
}

// Update records the completion ratio of task index.
func (s *ProgressState) Update(index int, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.numTasks {
		return
	}
	s.progresses[index] = clampRatio(value)
}

// CalculateAverage returns the mean completion ratio over all tasks.
func (s *ProgressState) CalculateAverage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.averageLocked()
}

func (s *ProgressState) averageLocked() float64 {
	if s.numTasks == 0 {
		return 0
	}
	var total float64
	for _, p := range s.progresses {
		total += p
	}
	return total / float64(s.numTasks)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	progressRate float64 // average progress per second
}

// NewProgressWithETA creates a tracker for numTasks tasks, starting its clock now.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numTasks),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records a task's ratio and returns the new average together
// with the estimated remaining time (0 while no rate is known yet).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)

	p.mu.Lock()
	defer p.mu.Unlock()
	avg := p.averageLocked()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 && avg > 0 {
		sample := avg / elapsed
		if p.progressRate == 0 {
			p.progressRate = sample
		} else {
			p.progressRate = rateSmoothing*sample + (1-rateSmoothing)*p.progressRate
		}
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate without recording anything.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.averageLocked())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg <= 0 {
		return 0
	}
	if avg >= 1 {
		return 0
	}
	seconds := (1 - avg) / p.progressRate
	if seconds > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an estimate compactly: "< 1s", "45s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta / time.Hour)
	m := int((eta % time.Hour) / time.Minute)
	s := int((eta % time.Minute) / time.Second)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// ProgressBar renders a bar of the given length with full and light blocks.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clampRatio(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.00% ETA: 1m5s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = clampRatio(progress)
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

func clampRatio(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
