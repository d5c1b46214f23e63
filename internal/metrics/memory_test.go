package metrics

import "testing"

var sink []byte

func TestMemoryCollectorSnapshot(t *testing.T) {
	t.Parallel()
	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 || snap.Sys == 0 {
		t.Errorf("snapshot should report heap and system memory: %+v", snap)
	}
	if snap.Taken.IsZero() {
		t.Error("snapshot time should be set")
	}
}

func TestMemorySnapshotSince(t *testing.T) {
	t.Parallel()
	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1<<20)
	after := mc.Snapshot()

	delta := after.Since(before)
	if delta.Allocated < 1<<20 {
		t.Errorf("Allocated = %d, want at least 1 MiB", delta.Allocated)
	}
	if delta.Elapsed < 0 {
		t.Errorf("Elapsed = %v, should not be negative", delta.Elapsed)
	}
	if delta.PeakHeap < before.HeapAlloc {
		t.Error("PeakHeap should be at least the starting heap")
	}
}
