package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()

	select {
	case event, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")

		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")

		return Event{}
	}
}

func TestHub_PublishReachesMatchingSubscriber(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	owner := uuid.New()

	sub := hub.Subscribe(TopicSites, owner)
	defer sub.Close()

	hub.Publish(Event{Topic: TopicSites, OwnerID: owner, Kind: KindCreated, Payload: "home"})

	event := receiveEvent(t, sub)
	assert.Equal(t, TopicSites, event.Topic)
	assert.Equal(t, KindCreated, event.Kind)
	assert.Equal(t, "home", event.Payload)
}

func TestHub_ScopesByOwner(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	mine := hub.Subscribe(TopicSystems, uuid.New())
	defer mine.Close()

	hub.Publish(Event{Topic: TopicSystems, OwnerID: uuid.New(), Kind: KindCreated})

	select {
	case <-mine.C:
		t.Fatal("received another owner's event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ScopesByTopic(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	owner := uuid.New()
	sites := hub.Subscribe(TopicSites, owner)
	defer sites.Close()

	hub.Publish(Event{Topic: TopicSystems, OwnerID: owner, Kind: KindCreated})

	select {
	case <-sites.C:
		t.Fatal("received an event for another topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_GlobalEvents(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	sub := hub.Subscribe(TopicCatalog, uuid.Nil)
	defer sub.Close()

	hub.Publish(Event{Topic: TopicCatalog, Kind: KindUpdated})

	event := receiveEvent(t, sub)
	assert.Equal(t, KindUpdated, event.Kind)
}

func TestHub_DropOwnerClosesAllSubscriptions(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	owner := uuid.New()
	sites := hub.Subscribe(TopicSites, owner)
	systems := hub.Subscribe(TopicSystems, owner)
	other := hub.Subscribe(TopicSites, uuid.New())
	defer other.Close()

	hub.DropOwner(owner)

	_, ok := <-sites.C
	assert.False(t, ok)
	_, ok = <-systems.C
	assert.False(t, ok)

	// Unrelated subscriptions keep working.
	hub.Publish(Event{Topic: TopicSites, OwnerID: other.ownerID, Kind: KindCreated})
	event := receiveEvent(t, other)
	assert.Equal(t, KindCreated, event.Kind)
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	sub := hub.Subscribe(TopicSites, uuid.New())

	sub.Close()
	sub.Close()
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	owner := uuid.New()
	sub := hub.Subscribe(TopicSites, owner)
	defer sub.Close()

	// Overfill the buffer; Publish must not block.
	for range 64 {
		hub.Publish(Event{Topic: TopicSites, OwnerID: owner, Kind: KindCreated})
	}
}
