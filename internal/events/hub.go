package events

import (
	"encoding/json"
	"sync"
	"time"

	"storefront-gateway/pkg/logger"
)

// Event topics pushed to subscribers.
const (
	TopicCart    = "cart"
	TopicSession = "session"
	TopicSearch  = "search"
)

// Event is one state change pushed over the stream.
type Event struct {
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// ClientMessage is an inbound message from a subscriber. Search queries
// arrive here so keystrokes ride the same connection the results return
// on.
type ClientMessage struct {
	Type  string `json:"type"` // search
	Query string `json:"query"`
}

// SnapshotFunc returns the events that seed a fresh subscriber with the
// current state of every topic.
type SnapshotFunc func() []Event

// QueryFunc receives search queries submitted over the stream.
type QueryFunc func(query string)

// Hub fans state-change events out to all connected subscribers.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	snapshot SnapshotFunc
	onQuery  QueryFunc

	mu sync.RWMutex
}

func NewHub(snapshot SnapshotFunc, onQuery QueryFunc) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan []byte, 256),
		snapshot:   snapshot,
		onQuery:    onQuery,
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()

			h.seed(client)

			logger.Info("Event subscriber connected", map[string]interface{}{
				"total_subscribers": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()

			logger.Info("Event subscriber disconnected", map[string]interface{}{
				"total_subscribers": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full, drop the slow subscriber
					go h.Unregister(client)
					logger.Warn("Subscriber send buffer full, disconnecting", nil)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish broadcasts an event to every subscriber. Events are dropped
// rather than blocking a state mutation when the hub is saturated.
func (h *Hub) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(Event{Topic: topic, Payload: payload})
	if err != nil {
		logger.Error("Failed to marshal event", err, map[string]interface{}{
			"topic": topic,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"topic": topic,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SubscriberCount reports the number of live connections.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// seed pushes the current state of every topic to a new subscriber so it
// never starts from a blank slate.
func (h *Hub) seed(client *Client) {
	if h.snapshot == nil {
		return
	}
	for _, event := range h.snapshot() {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		select {
		case client.send <- data:
		default:
			return
		}
	}
}

// handleClientMessage parses an inbound message and routes it.
func (h *Hub) handleClientMessage(client *Client, message []byte) {
	client.rateMu.Lock()
	now := time.Now()
	if now.Sub(client.lastResetTime) >= time.Second {
		client.messageCount = 0
		client.lastResetTime = now
	}
	client.messageCount++
	count := client.messageCount
	client.rateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Subscriber rate limit exceeded", map[string]interface{}{
			"count": count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse subscriber message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	switch msg.Type {
	case "search":
		if h.onQuery != nil {
			h.onQuery(msg.Query)
		}
	default:
		logger.Debug("Ignoring unknown subscriber message", map[string]interface{}{
			"type": msg.Type,
		})
	}
}
