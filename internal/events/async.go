package events

import (
	"context"
	"errors"
	"sync"

	"campuscash/internal/logger"
)

// ErrQueueFull is returned when an AsyncPublisher cannot take another event.
var ErrQueueFull = errors.New("event queue full")

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("event publisher closed")

// AsyncPublisher hands events to a single background worker that forwards
// them, in order, to the wrapped Publisher. Publish never waits on the broker.
type AsyncPublisher struct {
	next   Publisher
	queue  chan TransactionEvent
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsyncPublisher starts the worker. size bounds the number of pending events.
func NewAsyncPublisher(next Publisher, size int) *AsyncPublisher {
	if size < 1 {
		size = 1
	}
	p := &AsyncPublisher{
		next:  next,
		queue: make(chan TransactionEvent, size),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for event := range p.queue {
		// the request that produced the event is gone by now
		if err := p.next.Publish(context.Background(), event); err != nil {
			logger.Get().Warnw("failed to publish transaction event",
				"error", err,
				"type", event.Type,
				"transaction_id", event.TransactionID,
			)
		}
	}
}

// Publish enqueues event. The context is not used for delivery.
func (p *AsyncPublisher) Publish(_ context.Context, event TransactionEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, delivers the ones already queued and closes
// the wrapped Publisher.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}
