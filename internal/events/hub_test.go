package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestHub_SeedsNewSubscriber(t *testing.T) {
	hub := NewHub(func() []Event {
		return []Event{
			{Topic: TopicCart, Payload: map[string]interface{}{"totalItems": 3}},
			{Topic: TopicSession, Payload: map[string]interface{}{"isAuthenticated": false}},
		}
	}, nil)
	go hub.Run()

	conn := dialHub(t, hub)

	first := readEvent(t, conn)
	assert.Equal(t, TopicCart, first.Topic)

	second := readEvent(t, conn)
	assert.Equal(t, TopicSession, second.Topic)
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub(nil, nil)
	go hub.Run()

	conn := dialHub(t, hub)

	// Wait for registration before publishing
	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish(TopicCart, map[string]interface{}{"totalItems": 1})

	event := readEvent(t, conn)
	assert.Equal(t, TopicCart, event.Topic)

	payload, ok := event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, payload["totalItems"])
}

func TestHub_InboundSearchMessage(t *testing.T) {
	queries := make(chan string, 1)
	hub := NewHub(nil, func(query string) {
		queries <- query
	})
	go hub.Run()

	conn := dialHub(t, hub)
	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "search", Query: "shirt"}))

	select {
	case query := <-queries:
		assert.Equal(t, "shirt", query)
	case <-time.After(2 * time.Second):
		t.Fatal("search query never routed")
	}
}

func TestHub_UnknownMessageIgnored(t *testing.T) {
	hub := NewHub(nil, nil)
	go hub.Run()

	conn := dialHub(t, hub)
	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "noop"}))

	// The connection stays healthy after an unknown message
	hub.Publish(TopicSearch, map[string]interface{}{"query": "q"})
	event := readEvent(t, conn)
	assert.Equal(t, TopicSearch, event.Topic)
}
