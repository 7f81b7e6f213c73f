package roster

import "sync"

// Notifier fans full-roster snapshots out to per-user subscribers.
// Every delivery replaces the subscriber's previous view entirely; a
// slow subscriber is skipped ahead to the latest snapshot instead of
// blocking the writer.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan []Employee]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan []Employee]struct{})}
}

func (n *Notifier) Subscribe(userID string) (<-chan []Employee, func()) {
	ch := make(chan []Employee, 1)

	n.mu.Lock()
	if n.subs[userID] == nil {
		n.subs[userID] = make(map[chan []Employee]struct{})
	}
	n.subs[userID][ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if set, ok := n.subs[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(n.subs, userID)
			}
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *Notifier) Publish(userID string, snapshot []Employee) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[userID] {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot, deliver the fresh one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
