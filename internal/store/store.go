// Package store holds the client-side state containers. Each store owns
// its slice of state exclusively and mutates it only through a pure
// reducer over a closed event set; commands apply a synchronous local
// transition, perform the network call, then apply the completion event.
package store

import "sync"

// notifier fans out change notifications to subscribers. Sends never
// block: a subscriber that has not drained its channel keeps exactly one
// pending notification.
type notifier struct {
	mu   sync.Mutex
	subs []chan struct{}
}

// Subscribe returns a channel that receives after every state change.
func (n *notifier) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs = append(n.subs, ch)
	n.mu.Unlock()
	return ch
}

func (n *notifier) broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
