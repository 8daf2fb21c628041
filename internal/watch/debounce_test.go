package watch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var runs int64
	d := NewDebouncer(30*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
	})
	d.Start()

	for i := 0; i < 10; i++ {
		d.Notify()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	d.Stop()

	if got := atomic.LoadInt64(&runs); got != 1 {
		t.Errorf("burst of events ran %d builds, want 1", got)
	}
}

func TestDebouncerEventResetsTimer(t *testing.T) {
	var runs int64
	d := NewDebouncer(50*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
	})
	d.Start()
	defer d.Stop()

	d.Notify()
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt64(&runs); got != 0 {
		t.Fatal("build started before debounce window elapsed")
	}
	d.Notify() // window restarts
	time.Sleep(30 * time.Millisecond)
	if got := atomic.LoadInt64(&runs); got != 0 {
		t.Error("second event should have reset the timer")
	}
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt64(&runs); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
}

func TestDebouncerDropsEventsDuringRun(t *testing.T) {
	var runs int64
	release := make(chan struct{})
	var once sync.Once
	d := NewDebouncer(10*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
		once.Do(func() { <-release })
	})
	d.Start()

	d.Notify()
	time.Sleep(40 * time.Millisecond) // build now blocked in release wait

	d.Notify() // arrives while running, must be dropped
	time.Sleep(20 * time.Millisecond)
	close(release)
	time.Sleep(60 * time.Millisecond)
	d.Stop()

	if got := atomic.LoadInt64(&runs); got != 1 {
		t.Errorf("event during run triggered a rebuild: runs = %d, want 1", got)
	}
}

func TestDebouncerEventAfterCompletionStartsFreshWindow(t *testing.T) {
	var runs int64
	d := NewDebouncer(10*time.Millisecond, func() {
		atomic.AddInt64(&runs, 1)
	})
	d.Start()

	d.Notify()
	time.Sleep(50 * time.Millisecond)
	d.Notify()
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	if got := atomic.LoadInt64(&runs); got != 2 {
		t.Errorf("runs = %d, want 2", got)
	}
}

func TestDebouncerStopWaitsForBuild(t *testing.T) {
	finished := make(chan struct{})
	d := NewDebouncer(5*time.Millisecond, func() {
		time.Sleep(40 * time.Millisecond)
		close(finished)
	})
	d.Start()
	d.Notify()
	time.Sleep(20 * time.Millisecond) // build in flight

	d.Stop()
	select {
	case <-finished:
	default:
		t.Error("Stop returned before the in-flight build completed")
	}
}

func TestDebouncerStopIdempotentBeforeStart(t *testing.T) {
	d := NewDebouncer(time.Millisecond, func() {})
	d.Stop() // never started, must not hang
	d.Start()
	d.Start() // second Start is a no-op
	d.Stop()
}
