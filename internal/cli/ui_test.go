package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/infinite/internal/cli/mocks"
	"github.com/agbru/infinite/internal/orchestration"
)

func stubSpinner(t *testing.T, s Spinner) {
	t.Helper()
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = original })
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("suffix = %q, want %q", s.Suffix, " test")
	}
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)

	var mu sync.Mutex
	var suffixes []string
	mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) {
		mu.Lock()
		suffixes = append(suffixes, s)
		mu.Unlock()
	}).AnyTimes()
	gomock.InOrder(
		mockS.EXPECT().Start(),
		mockS.EXPECT().Stop(),
	)
	stubSpinner(t, mockS)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	go func() {
		progressChan <- orchestration.ProgressUpdate{Index: 0, Value: 0.5}
		progressChan <- orchestration.ProgressUpdate{Index: 1, Value: 1}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, io.Discard)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(suffixes) < 3 {
		t.Fatalf("got %d suffix updates, want at least 3", len(suffixes))
	}
	last := suffixes[len(suffixes)-1]
	if !strings.Contains(last, "Cross-checking 2 strategies") || !strings.Contains(last, "100.00%") {
		t.Errorf("final suffix = %q", last)
	}
}

func TestDisplayProgressSingleStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	var last string
	mockS.EXPECT().UpdateSuffix(gomock.Any()).Do(func(s string) { last = s }).AnyTimes()
	mockS.EXPECT().Start()
	mockS.EXPECT().Stop()
	stubSpinner(t, mockS)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()
	if !strings.HasPrefix(last, " Dividing") {
		t.Errorf("suffix = %q, want a single strategy label", last)
	}
}

func TestDisplayProgressZeroStrategies(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: the spinner must never be created or started.
	stubSpinner(t, mocks.NewMockSpinner(ctrl))

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan orchestration.ProgressUpdate, 1)
	progressChan <- orchestration.ProgressUpdate{Index: 0, Value: 1}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestRunWithSpinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockS := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		mockS.EXPECT().UpdateSuffix(" Working"),
		mockS.EXPECT().Start(),
		mockS.EXPECT().Stop(),
	)
	stubSpinner(t, mockS)

	ran := false
	RunWithSpinner(&bytes.Buffer{}, "Working", func() { ran = true })
	if !ran {
		t.Error("function was not run")
	}
}
