package compose

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 30fps display refresh.
const DefaultFrameInterval = 33 * time.Millisecond

// Loop is an explicit start/stop controller for the continuous redraw
// cycle. It only schedules; the tick callback owns all drawing work and
// must never panic the chain — a tick that cannot draw simply returns and
// the next tick fires regardless.
type Loop struct {
	interval time.Duration
	tick     func()

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

// NewLoop creates a loop that invokes tick at the given interval once
// started. A non-positive interval falls back to DefaultFrameInterval.
func NewLoop(interval time.Duration, tick func()) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{interval: interval, tick: tick}
}

// Start begins scheduling ticks. Starting a running loop is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.stop = make(chan struct{})

	go func(stop chan struct{}) {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.tick()
			case <-stop:
				return
			}
		}
	}(l.stop)
}

// Stop cancels the scheduling chain. Safe to call repeatedly and on a loop
// that was never started.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.stop)
}

// Running reports whether the loop is currently scheduling ticks.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
