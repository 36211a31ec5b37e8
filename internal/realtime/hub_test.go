package realtime

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ummahhub/ummah-backend/internal/model"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func TestHubDeliversToConversationSubscribers(t *testing.T) {
	h := newTestHub()
	sub := h.Subscribe(42)
	defer sub.Close()

	other := h.Subscribe(99)
	defer other.Close()

	h.Publish(Event{Type: "INSERT", ConversationID: 42, Message: model.Message{ID: 1}})

	select {
	case ev := <-sub.Events():
		assert.Equal(t, uint64(1), ev.Message.ID)
		assert.Equal(t, "INSERT", ev.Type)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case ev := <-other.Events():
		t.Fatalf("unrelated subscriber got event %+v", ev)
	default:
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	h := newTestHub()
	sub := h.Subscribe(7)
	sub.Close()

	// Publishing after teardown must not panic or deliver.
	h.Publish(Event{Type: "INSERT", ConversationID: 7, Message: model.Message{ID: 2}})

	_, ok := <-sub.Events()
	assert.False(t, ok, "channel should be closed")
}

func TestHubCloseIsIdempotent(t *testing.T) {
	h := newTestHub()
	sub := h.Subscribe(7)
	sub.Close()
	sub.Close()
}

func TestHubDropsWhenSubscriberBufferFull(t *testing.T) {
	h := newTestHub()
	sub := h.Subscribe(1)
	defer sub.Close()

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish(Event{Type: "INSERT", ConversationID: 1, Message: model.Message{ID: uint64(i + 1)}})
	}

	received := 0
	for {
		select {
		case <-sub.Events():
			received++
		default:
			require.Equal(t, subscriberBuffer, received)
			return
		}
	}
}
