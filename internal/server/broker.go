package server

import (
	"encoding/json"
	"sync"
)

// StateEvent is broadcast to SSE subscribers after every successful
// auction mutation. Clients refetch the full state on receipt.
type StateEvent struct {
	Action string `json:"action"`
	Player string `json:"player,omitempty"`
	Team   string `json:"team,omitempty"`
	Time   string `json:"time"`
}

// Broker fans auction events out to connected SSE clients. Slow
// clients get events dropped rather than blocking the publisher.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan []byte]struct{})}
}

// Subscribe registers a new client channel. Callers must Unsubscribe
// when done.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

// Publish sends the event to every subscriber without blocking.
func (b *Broker) Publish(ev StateEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- payload:
		default:
		}
	}
}
