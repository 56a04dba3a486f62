package hub

import (
	"encoding/json"
	"testing"
)

func TestBroadcastGameReachesOnlySubscribers(t *testing.T) {
	h := NewHub()

	sub1 := h.SubscribeGame(1)
	sub2 := h.SubscribeGame(2)

	h.BroadcastGame(1, Event{Type: EventMessageSent})

	select {
	case data := <-sub1:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != EventMessageSent || ev.GameID != 1 {
			t.Errorf("got event %+v, want message_sent for game 1", ev)
		}
	default:
		t.Fatal("subscriber of game 1 received nothing")
	}

	select {
	case <-sub2:
		t.Fatal("subscriber of game 2 received an event for game 1")
	default:
	}

	h.UnsubscribeGame(1, sub1)
	h.UnsubscribeGame(2, sub2)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()

	sub := h.SubscribeGame(7)
	h.UnsubscribeGame(7, sub)

	if _, ok := <-sub; ok {
		t.Error("channel still open after unsubscribe")
	}

	// A second unsubscribe for the same subscriber must be a no-op.
	h.UnsubscribeGame(7, sub)

	// Broadcasting to a game with no subscribers must not panic.
	h.BroadcastGame(7, Event{Type: EventGameUpdated})
}

func TestListingFeed(t *testing.T) {
	h := NewHub()

	sub := h.SubscribeListing()
	defer h.UnsubscribeListing(sub)

	h.BroadcastListing(Event{Type: EventGameCreated, GameID: 3})

	select {
	case data := <-sub:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Type != EventGameCreated {
			t.Errorf("got %q, want %q", ev.Type, EventGameCreated)
		}
	default:
		t.Fatal("listing subscriber received nothing")
	}
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub()

	sub := h.SubscribeGame(1)
	defer h.UnsubscribeGame(1, sub)

	// Fill the buffer without draining; further broadcasts must drop, not hang.
	for i := 0; i < cap(sub)+5; i++ {
		h.BroadcastGame(1, Event{Type: EventGameUpdated})
	}
}
