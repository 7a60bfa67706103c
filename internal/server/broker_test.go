package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBrokerDeliversEvents(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(StateEvent{Action: "sell", Player: "Rohit Kumar", Team: "Lions", Time: "t"})

	select {
	case payload := <-ch:
		var ev StateEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			t.Fatal(err)
		}
		if ev.Action != "sell" || ev.Team != "Lions" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Overfill the buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(StateEvent{Action: "sell"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	// Publishing after unsubscribe must not panic on the closed channel.
	b.Publish(StateEvent{Action: "sell"})

	if _, ok := <-ch; ok {
		t.Error("expected closed channel")
	}
}
