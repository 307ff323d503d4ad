// Package feed fans out appended indicator records to websocket subscribers.
package feed

import (
	"sync"
	"sync/atomic"

	"github.com/dgnsrekt/tv_indicators/internal/indicators"
)

const subscriberBufSize = 64

// Broker fans out records to all subscribed clients.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[int64]chan indicators.Record
	nextID      atomic.Int64
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[int64]chan indicators.Record),
	}
}

// Subscribe registers a new client. The channel is buffered; slow consumers
// have records dropped.
func (b *Broker) Subscribe() (int64, <-chan indicators.Record) {
	id := b.nextID.Add(1)
	ch := make(chan indicators.Record, subscriberBufSize)
	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call more
// than once for the same id.
func (b *Broker) Unsubscribe(id int64) {
	b.mu.Lock()
	ch, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish sends a record to all subscribers without blocking.
func (b *Broker) Publish(rec indicators.Record) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- rec:
		default:
		}
	}
}

// ClientCount returns the number of active subscribers.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
