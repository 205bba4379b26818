package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestIntervalSpec(t *testing.T) {
	tests := []struct {
		in      time.Duration
		want    string
		wantErr bool
	}{
		{time.Minute, "@every 60s", false},
		{90 * time.Second, "@every 90s", false},
		{100 * time.Millisecond, "@every 1s", false},
		{0, "", true},
	}
	for _, tt := range tests {
		got, err := IntervalSpec(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("IntervalSpec(%v) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestEveryRunsJob(t *testing.T) {
	s := New(time.UTC)
	var runs int32
	if _, err := s.Every(time.Second, func() { atomic.AddInt32(&runs, 1) }); err != nil {
		t.Fatalf("Every failed: %v", err)
	}
	s.Start()
	time.Sleep(2500 * time.Millisecond)
	s.Stop()
	if atomic.LoadInt32(&runs) == 0 {
		t.Error("Expected the job to run at least once")
	}
}
