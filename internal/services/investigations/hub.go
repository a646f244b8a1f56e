package investigations

import (
	"sync"

	"go.uber.org/zap"

	"aura/internal/domain"
	"aura/internal/ports"
)

// Hub fans investigation events out to subscribers. Each subscriber only
// receives events of the investigations it follows, in publish order.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
	log  *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{subs: make(map[*subscriber]struct{}), log: log}
}

type subscriber struct {
	hub    *Hub
	ch     chan domain.Event
	mu     sync.Mutex
	follow map[string]bool
}

func (h *Hub) Subscribe(buffer int) ports.Subscription {
	if buffer < 1 {
		buffer = 64
	}
	s := &subscriber{hub: h, ch: make(chan domain.Event, buffer), follow: make(map[string]bool)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Publish never blocks. A subscriber whose buffer is full misses the event,
// except investigation_completed, which evicts the oldest queued events until
// it fits so every follower sees the end of the investigation.
func (h *Hub) Publish(ev domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if !s.follows(ev.InvestigationID) {
			continue
		}
		h.deliver(s, ev)
	}
}

func (h *Hub) deliver(s *subscriber, ev domain.Event) {
	for {
		select {
		case s.ch <- ev:
			return
		default:
		}
		if ev.Type != domain.EventInvestigationCompleted {
			h.log.Warnw("dropping event for slow subscriber", "investigation_id", ev.InvestigationID, "type", ev.Type)
			return
		}
		select {
		case old := <-s.ch:
			h.log.Warnw("evicting event for slow subscriber", "investigation_id", old.InvestigationID, "type", old.Type)
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (s *subscriber) Events() <-chan domain.Event { return s.ch }

func (s *subscriber) Follow(id string) {
	s.mu.Lock()
	s.follow[id] = true
	s.mu.Unlock()
}

func (s *subscriber) Unfollow(id string) {
	s.mu.Lock()
	delete(s.follow, id)
	s.mu.Unlock()
}

func (s *subscriber) follows(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follow[id]
}

// Close detaches the subscriber and closes its channel. Safe to call twice.
func (s *subscriber) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.subs[s]; !ok {
		return
	}
	delete(s.hub.subs, s)
	close(s.ch)
}
