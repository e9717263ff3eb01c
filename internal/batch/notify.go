package batch

import "sync"

// Notifier fans out status snapshots from one runner to N listeners.
// Progress is advisory: slow listeners get snapshots dropped rather than
// blocking the run.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[*Listener]struct{}
}

// Listener receives status snapshots from the notifier.
type Listener struct {
	C    chan Status
	done chan struct{}
}

// Done is closed when the listener is unsubscribed.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[*Listener]struct{}),
	}
}

// Subscribe registers a new listener.
func (n *Notifier) Subscribe() *Listener {
	l := &Listener{
		C:    make(chan Status, 32),
		done: make(chan struct{}),
	}
	n.mu.Lock()
	n.listeners[l] = struct{}{}
	n.mu.Unlock()
	return l
}

// Unsubscribe removes a listener and signals it to stop.
func (n *Notifier) Unsubscribe(l *Listener) {
	n.mu.Lock()
	_, ok := n.listeners[l]
	delete(n.listeners, l)
	n.mu.Unlock()
	if ok {
		close(l.done)
	}
}

// ListenerCount returns the number of active listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Publish fans a snapshot out to all listeners. Matches the runner's
// status callback signature, so it can be registered directly with
// SetStatusFunc.
func (n *Notifier) Publish(st Status) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for l := range n.listeners {
		select {
		case l.C <- st:
		default:
			// listener too slow, drop the snapshot to keep the run moving
		}
	}
}
