package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected notification clients grouped by topic
// and broadcasts events to them. It implements Emitter.
type Hub struct {
	// Registered clients organized by topic
	clients map[string]map[*Client]bool

	// Channel for outbound events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and broadcasts.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Emit publishes an event on a topic. The send is non-blocking: when the
// broadcast buffer is full the event is dropped and logged, keeping the
// side-channel strictly best-effort for the caller.
func (h *Hub) Emit(topic string, payload interface{}) {
	event := &Event{Topic: topic, Payload: payload, Timestamp: time.Now()}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("topic", topic).Msg("Notification channel full, event dropped")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range client.topics {
		if _, ok := h.clients[topic]; !ok {
			h.clients[topic] = make(map[*Client]bool)
		}
		h.clients[topic][client] = true
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Strs("topics", client.topics).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for _, topic := range client.topics {
		if clients, ok := h.clients[topic]; ok {
			if _, ok := clients[client]; ok {
				delete(clients, client)
				removed = true
				if len(clients) == 0 {
					delete(h.clients, topic)
				}
			}
		}
	}
	if removed {
		close(client.send)
		h.logger.Info().
			Int64("userID", client.userID).
			Msg("Notification client unregistered")
	}
}

func (h *Hub) broadcastEvent(event *Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[event.Topic]))
	for client := range h.clients[event.Topic] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		h.logger.Debug().Str("topic", event.Topic).Msg("No subscribers for topic")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", event.Topic).Msg("Failed to marshal event")
		return
	}

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow or disconnected subscriber: evict it rather than
			// block the broadcast loop. Unregister directly; sending
			// on the unregister channel from here would deadlock the
			// hub loop.
			h.unregisterClient(client)
		}
	}

	h.logger.Debug().
		Str("topic", event.Topic).
		Int("subscriberCount", len(clients)).
		Msg("Event broadcast to subscribers")
}

// SubscriberCount returns the number of connected clients for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}
