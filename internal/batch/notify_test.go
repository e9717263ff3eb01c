package batch

import (
	"testing"
	"time"
)

func TestNotifierSubscribeUnsubscribe(t *testing.T) {
	n := NewNotifier()
	if n.ListenerCount() != 0 {
		t.Errorf("initial ListenerCount = %d, want 0", n.ListenerCount())
	}

	l1 := n.Subscribe()
	l2 := n.Subscribe()
	if n.ListenerCount() != 2 {
		t.Errorf("after two subscribes: ListenerCount = %d, want 2", n.ListenerCount())
	}

	n.Unsubscribe(l1)
	if n.ListenerCount() != 1 {
		t.Errorf("after one unsubscribe: ListenerCount = %d, want 1", n.ListenerCount())
	}
	n.Unsubscribe(l2)
	if n.ListenerCount() != 0 {
		t.Errorf("after all unsubscribed: ListenerCount = %d, want 0", n.ListenerCount())
	}
}

func TestPublishDeliversToAllListeners(t *testing.T) {
	n := NewNotifier()
	listeners := make([]*Listener, 3)
	for i := range listeners {
		listeners[i] = n.Subscribe()
	}

	want := Status{State: StateRunning, Stage: "encoding 1/3: song.mp3", Total: 3}
	n.Publish(want)

	for i, l := range listeners {
		select {
		case got := <-l.C:
			if got.Stage != want.Stage || got.State != want.State {
				t.Errorf("listener %d got %+v, want %+v", i, got, want)
			}
		case <-time.After(time.Second):
			t.Errorf("listener %d timed out", i)
		}
	}
}

func TestPublishDropsWhenListenerFull(t *testing.T) {
	n := NewNotifier()
	l := n.Subscribe()
	bufCap := cap(l.C)

	// Publish past the buffer without a reader; the extra snapshots must
	// be dropped, not block.
	for i := 0; i < bufCap+10; i++ {
		n.Publish(Status{State: StateRunning, Processed: i})
	}

	count := 0
	for {
		select {
		case <-l.C:
			count++
		default:
			if count != bufCap {
				t.Errorf("buffered snapshots = %d, want full buffer of %d with the rest dropped", count, bufCap)
			}
			return
		}
	}
}

func TestUnsubscribeClosesDone(t *testing.T) {
	n := NewNotifier()
	l := n.Subscribe()
	n.Unsubscribe(l)

	select {
	case <-l.Done():
	default:
		t.Error("Done not closed after unsubscribe")
	}
}

func TestUnsubscribeTwiceIsSafe(t *testing.T) {
	n := NewNotifier()
	l := n.Subscribe()
	n.Unsubscribe(l)
	n.Unsubscribe(l) // must not close done a second time
}

// The notifier's Publish matches the runner's status callback, so a
// runner can fan its snapshots out without glue code.
func TestNotifierActsAsStatusFunc(t *testing.T) {
	n := NewNotifier()
	l := n.Subscribe()

	var fn StatusFunc = n.Publish
	fn(Status{State: StateCompleted, Processed: 2, Total: 2})

	select {
	case got := <-l.C:
		if got.State != StateCompleted || got.Processed != 2 {
			t.Errorf("snapshot = %+v, want the published completion", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
}
