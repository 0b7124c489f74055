package docstore

import "sync"

// Hub fans document updates out to subscribers, one channel per
// subscriber keyed by document name. Slow subscribers drop updates
// instead of blocking the write path.
type Hub struct {
	mu      sync.Mutex
	subs    map[string]map[chan []byte]bool
	stopped bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan []byte]bool)}
}

// Subscribe returns a channel receiving every broadcast for key and a
// cancel func that must be called when the subscriber goes away.
func (h *Hub) Subscribe(key string) (chan []byte, func()) {
	ch := make(chan []byte, 8)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan []byte]bool)
	}
	h.subs[key][ch] = true
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if conns := h.subs[key]; conns != nil && conns[ch] {
			delete(conns, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (h *Hub) Broadcast(key string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[key] {
		select {
		case ch <- data:
		default:
			// subscriber is not keeping up; skip this update
		}
	}
}

func (h *Hub) HasSubscribers(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key]) > 0
}

// Stop closes every subscriber channel.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	for key, conns := range h.subs {
		for ch := range conns {
			close(ch)
		}
		delete(h.subs, key)
	}
}
