// Package watch drives debounced rebuilds from filesystem change events.
package watch

import (
	"sync"
	"time"
)

type state int

const (
	stateIdle state = iota
	stateDebouncing
	stateRunning
)

// Debouncer coalesces bursts of change events into single build runs.
// Events during a run are dropped; the first event after the run
// completes starts a fresh debounce window. At most one build is in
// flight at any time.
type Debouncer struct {
	delay time.Duration
	build func()

	events chan struct{}
	stop   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	started bool
}

func NewDebouncer(delay time.Duration, build func()) *Debouncer {
	return &Debouncer{
		delay:  delay,
		build:  build,
		events: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the debounce loop. Calling it twice is a no-op.
func (d *Debouncer) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.loop()
}

// Notify records a change event without blocking the caller.
func (d *Debouncer) Notify() {
	select {
	case d.events <- struct{}{}:
	default:
	}
}

// Stop shuts the loop down and waits for any in-flight build to finish.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	close(d.stop)
	<-d.done
}

func (d *Debouncer) loop() {
	defer close(d.done)

	timer := time.NewTimer(d.delay)
	if !timer.Stop() {
		<-timer.C
	}

	buildDone := make(chan struct{})
	st := stateIdle

	for {
		select {
		case <-d.stop:
			if st == stateDebouncing {
				timer.Stop()
			}
			if st == stateRunning {
				<-buildDone
			}
			return

		case <-d.events:
			switch st {
			case stateIdle:
				timer.Reset(d.delay)
				st = stateDebouncing
			case stateDebouncing:
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(d.delay)
			case stateRunning:
				// Dropped. The next event after completion
				// opens a new window.
			}

		case <-timer.C:
			st = stateRunning
			go func() {
				d.build()
				buildDone <- struct{}{}
			}()

		case <-buildDone:
			st = stateIdle
		}
	}
}
