package events

import (
	"context"
	"sync"
	"time"

	"github.com/hilthontt/roomly/infrastructure/logger"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Sink receives every published event. Sinks run sequentially on the
// publisher goroutine.
type Sink interface {
	Name() string
	Handle(ctx context.Context, event Event) error
}

// EventPublisher fans events out to its sinks off the request path. When the
// buffer is full new events are dropped and logged.
type EventPublisher struct {
	sinks  []Sink
	logger *logger.Logger
	queue  chan Event

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
}

func NewEventPublisher(bufferSize int, logger *logger.Logger, sinks ...Sink) *EventPublisher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &EventPublisher{
		sinks:  sinks,
		logger: logger,
		queue:  make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event Event) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}

	select {
	case p.queue <- event:
	default:
		p.logger.Warn("event buffer full, dropping event",
			zap.String("eventId", event.ID),
			zap.String("eventType", string(event.Type)),
		)
	}
}

// Start consumes the queue until Close is called.
func (p *EventPublisher) Start() {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		defer close(p.done)
		for event := range p.queue {
			p.dispatch(event)
		}
	}()
}

func (p *EventPublisher) dispatch(event Event) {
	for _, sink := range p.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := sink.Handle(ctx, event); err != nil {
			p.logger.Error("event sink failed",
				zap.String("sink", sink.Name()),
				zap.String("eventId", event.ID),
				zap.String("eventType", string(event.Type)),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (p *EventPublisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	started := p.started
	p.mu.Unlock()

	if started {
		<-p.done
	}
}
