package pipeline

import (
	"testing"
	"time"
)

func TestJobStats_EmptySnapshot(t *testing.T) {
	s := NewJobStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Errorf("Count = %d, want 0", snap.Count)
	}
	if snap.AvgMs != 0 || snap.P95Ms != 0 {
		t.Errorf("empty snapshot should be all zeros: %+v", snap)
	}
}

func TestJobStats_Aggregates(t *testing.T) {
	s := NewJobStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Fatalf("Count = %d, want 4", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Errorf("MinMs = %d, want 100", snap.MinMs)
	}
	if snap.MaxMs != 400 {
		t.Errorf("MaxMs = %d, want 400", snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("AvgMs = %v, want 250", snap.AvgMs)
	}
	if snap.P50Ms != 250 {
		t.Errorf("P50Ms = %v, want 250", snap.P50Ms)
	}
}

func TestJobStats_NegativeClamped(t *testing.T) {
	s := NewJobStats(time.Hour)
	s.Record(-5)
	snap := s.Snapshot()
	if snap.MinMs != 0 {
		t.Errorf("MinMs = %d, want 0 after clamping", snap.MinMs)
	}
}

func TestJobStats_WindowPruning(t *testing.T) {
	s := NewJobStats(50 * time.Millisecond)
	s.Record(100)
	time.Sleep(100 * time.Millisecond)
	s.Record(200)

	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("Count = %d, want 1 after pruning", snap.Count)
	}
	if snap.MinMs != 200 {
		t.Errorf("surviving sample = %d, want 200", snap.MinMs)
	}
}

func TestPercentile(t *testing.T) {
	values := []int64{10, 20, 30, 40, 50}
	cases := []struct {
		pct  float64
		want float64
	}{
		{0, 10},
		{50, 30},
		{100, 50},
		{25, 20},
	}
	for _, tc := range cases {
		if got := percentile(values, tc.pct); got != tc.want {
			t.Errorf("percentile(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}
