package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/go-logr/logr"
)

const queueSize = 1000

// Event is anything published on the bus. Handlers subscribe by Type
type Event interface {
	Type() string
}

// Handler handles one event
type Handler func(Event)

// Publisher is the only part of the bus producers need
type Publisher interface {
	Publish(event Event)
}

// Bus delivers events to subscribers on a single dispatch goroutine, in publish order
type Bus struct {
	log logr.Logger

	mu       sync.RWMutex
	handlers map[string][]subscription
	nextID   int

	events    chan Event
	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type subscription struct {
	id      int
	handler Handler
}

// New starts a bus. Close stops it
func New(log logr.Logger) *Bus {
	b := &Bus{
		log:      log.WithName("eventbus"),
		handlers: make(map[string][]subscription),
		events:   make(chan Event, queueSize),
		quit:     make(chan struct{}),
	}
	b.wg.Add(1)
	go b.dispatch()
	return b
}

// Publish queues event for delivery. Events published after Close, or while the queue is full, are dropped
func (b *Bus) Publish(event Event) {
	select {
	case <-b.quit:
		return
	default:
	}
	select {
	case b.events <- event:
	default:
		b.log.Info("queue full, dropping event", "type", event.Type())
	}
}

// Subscribe registers handler for events of eventType and returns a function that unsubscribes it
func (b *Bus) Subscribe(eventType string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Close stops dispatching. Queued events that were not delivered yet are discarded
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *Bus) dispatch() {
	defer b.wg.Done()
	for {
		select {
		case event := <-b.events:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.deliver(s.handler, event)
			}
		case <-b.quit:
			return
		}
	}
}

func (b *Bus) deliver(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Info("handler panicked", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
