package realtime

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/ummahhub/ummah-backend/internal/model"
)

const subscriberBuffer = 16

// Event is a change-feed insert event scoped to one conversation.
type Event struct {
	Type           string        `json:"type"`
	ConversationID uint64        `json:"conversationId"`
	Message        model.Message `json:"message"`
}

// Publisher is what message-producing code needs from the hub.
type Publisher interface {
	Publish(ev Event)
}

// Hub fans insert events out to subscribers keyed by conversation id.
// Delivery is at-least-once from the consumer's point of view (the
// initial history fetch can race the first events), so consumers
// de-duplicate by message id; see Merge.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint64]map[*Subscriber]struct{}
	log  zerolog.Logger
}

// Subscriber receives events for a single conversation until Close.
type Subscriber struct {
	hub    *Hub
	convID uint64
	ch     chan Event
	once   sync.Once
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[uint64]map[*Subscriber]struct{}),
		log:  log,
	}
}

func (h *Hub) Subscribe(convID uint64) *Subscriber {
	sub := &Subscriber{
		hub:    h,
		convID: convID,
		ch:     make(chan Event, subscriberBuffer),
	}
	h.mu.Lock()
	set, ok := h.subs[convID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[convID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Publish delivers to every live subscriber of the event's
// conversation. A subscriber whose buffer is full misses the event
// rather than blocking the sender; the miss is logged.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	set := h.subs[ev.ConversationID]
	for sub := range set {
		select {
		case sub.ch <- ev:
		default:
			h.log.Warn().
				Uint64("conversation_id", ev.ConversationID).
				Uint64("message_id", ev.Message.ID).
				Msg("dropping feed event for slow subscriber")
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[sub.convID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.convID)
		}
	}
	h.mu.Unlock()
}

// Events is the subscriber's receive channel; it is closed by Close.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Close tears the subscription down; safe to call more than once.
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}
