package services

import (
	"testing"
	"time"
)

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(7)
	defer hub.Unsubscribe(7, ch)

	hub.Unlocked(7, Unlock{Name: "First Workout", Description: "Complete your first workout", Points: 10})

	select {
	case n := <-ch:
		if n.Type != "achievement_unlocked" {
			t.Errorf("wrong notification type: %q", n.Type)
		}
		if n.Name != "First Workout" || n.Points != 10 {
			t.Errorf("wrong payload: %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatal("notification never arrived")
	}
}

func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub()
	mine := hub.Subscribe(7)
	theirs := hub.Subscribe(8)
	defer hub.Unsubscribe(7, mine)
	defer hub.Unsubscribe(8, theirs)

	hub.Unlocked(7, Unlock{Name: "Night Owl", Points: 40})

	select {
	case <-theirs:
		t.Fatal("notification leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}

	select {
	case <-mine:
	case <-time.After(time.Second):
		t.Fatal("owner never got the notification")
	}
}

func TestHubNeverBlocksOnFullBuffer(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(7)
	defer hub.Unsubscribe(7, ch)

	// Nobody reads; the hub must drop rather than stall.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Unlocked(7, Unlock{Name: "Workout Warrior", Points: 100})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Unlocked blocked on a full subscriber buffer")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(7)
	hub.Unsubscribe(7, ch)

	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}

	// Sending after unsubscribe must not panic or deliver.
	hub.Unlocked(7, Unlock{Name: "First Workout", Points: 10})
}
