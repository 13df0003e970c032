package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("expected 100, got %d", counter)
	}
}

func TestFor_CoarseVisitsAll(t *testing.T) {
	cfg := CoarseConfig()

	n := 7 // fewer items than workers on most machines
	visited := make([]int64, n)
	For(n, func(i int) {
		atomic.AddInt64(&visited[i], 1)
	}, cfg)

	for i, v := range visited {
		if v != 1 {
			t.Errorf("index %d visited %d times, want 1", i, v)
		}
	}
}
