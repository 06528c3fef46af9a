// Package events carries application events (analysis alerts, source
// attach/detach, status text) from background goroutines to the UI.
// Handlers run on the Fyne main thread via a drain ticker, so widget code
// can be called from them directly.
package events

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Type discriminates events on the bus.
type Type int

const (
	// TypeAlert is raised by the analysis pipeline for each alert.
	TypeAlert Type = iota
	// TypeAnalysisDone reports a completed analysis round.
	TypeAnalysisDone
	// TypeSourceChanged reports a capture source attach or detach.
	TypeSourceChanged
	// TypeStatus updates the status bar text.
	TypeStatus
)

// Event is a single bus message.
type Event struct {
	Type      Type
	Message   string
	Severity  string
	Timestamp time.Time
}

// Handler processes one event. Handlers run on the main thread.
type Handler func(Event)

const drainInterval = 25 * time.Millisecond

// Bus is a buffered, typed event queue drained onto the Fyne main thread.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler

	queue chan Event
	stop  chan struct{}
	once  sync.Once

	do func(func())
}

// NewBus creates a bus; Start must be called before events are delivered.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
		queue:    make(chan Event, 128),
		stop:     make(chan struct{}),
		do:       fyne.Do,
	}
}

// SetDispatcher overrides how handler batches are scheduled. Tests use a
// direct call instead of the Fyne main thread.
func (b *Bus) SetDispatcher(do func(func())) {
	b.do = do
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish enqueues an event. Never blocks; when the queue is full the event
// is dropped, which is acceptable for UI status traffic.
func (b *Bus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case b.queue <- e:
	default:
	}
}

// Start begins draining the queue. Events are dispatched inside fyne.Do so
// handlers always execute on the main thread.
func (b *Bus) Start() {
	go func() {
		ticker := time.NewTicker(drainInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.drain()
			case <-b.stop:
				return
			}
		}
	}()
}

// Stop shuts the bus down. Events published afterwards are dropped once
// the queue fills.
func (b *Bus) Stop() {
	b.once.Do(func() { close(b.stop) })
}

func (b *Bus) drain() {
	for {
		select {
		case e := <-b.queue:
			b.dispatch(e)
		default:
			return
		}
	}
}

func (b *Bus) dispatch(e Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[e.Type]...)
	b.mu.RUnlock()
	if len(handlers) == 0 {
		return
	}
	b.do(func() {
		for _, h := range handlers {
			h(e)
		}
	})
}
