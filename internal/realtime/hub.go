// Package realtime pushes registry and catalog changes to connected clients.
// It replaces polling: a client subscribes to a topic and receives an event
// whenever the underlying data changes.
package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Topics clients can subscribe to.
const (
	TopicSites    = "sites"
	TopicSystems  = "systems"
	TopicMessages = "messages"
	TopicCatalog  = "catalog"
)

// Event kinds.
const (
	KindCreated = "created"
	KindDeleted = "deleted"
	KindUpdated = "updated"
)

// Event is a single change notification. OwnerID scopes the event to one
// user's data; uuid.Nil means the event is global (catalog, admin feeds).
type Event struct {
	Topic   string    `json:"topic"`
	OwnerID uuid.UUID `json:"-"`
	Kind    string    `json:"kind"`
	Payload any       `json:"payload,omitempty"`
}

// Subscription is one client's event feed. The channel is closed when the
// subscription is cancelled or its owner is dropped.
type Subscription struct {
	C chan Event

	hub     *Hub
	topic   string
	ownerID uuid.UUID
	once    sync.Once
}

// Close cancels the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.C)
	})
}

type subKey struct {
	topic   string
	ownerID uuid.UUID
}

// Hub fans events out to subscribers. Slow subscribers are skipped rather
// than blocking the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[subKey]map[*Subscription]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[subKey]map[*Subscription]struct{}),
	}
}

// Subscribe registers a feed for the given topic scoped to ownerID. Pass
// uuid.Nil as ownerID to receive the topic's global events.
func (h *Hub) Subscribe(topic string, ownerID uuid.UUID) *Subscription {
	sub := &Subscription{
		C:       make(chan Event, 16),
		hub:     h,
		topic:   topic,
		ownerID: ownerID,
	}
	key := subKey{topic: topic, ownerID: ownerID}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[key] == nil {
		h.subs[key] = make(map[*Subscription]struct{})
	}
	h.subs[key][sub] = struct{}{}

	return sub
}

// Publish delivers the event to every subscription matching its topic and
// owner. Subscribers with full channels miss the event.
func (h *Hub) Publish(event Event) {
	key := subKey{topic: event.Topic, ownerID: event.OwnerID}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[key] {
		select {
		case sub.C <- event:
		default:
			// Client too slow, skip.
		}
	}
}

// DropOwner closes every subscription belonging to an owner across all
// topics. Called on logout and account deletion.
func (h *Hub) DropOwner(ownerID uuid.UUID) {
	h.mu.Lock()
	var dropped []*Subscription
	for key, set := range h.subs {
		if key.ownerID != ownerID {
			continue
		}
		for sub := range set {
			dropped = append(dropped, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range dropped {
		sub.Close()
	}
}

func (h *Hub) remove(sub *Subscription) {
	key := subKey{topic: sub.topic, ownerID: sub.ownerID}

	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[key]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, key)
		}
	}
}
