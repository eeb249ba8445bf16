package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID int64, topics []string, buffer int) *Client {
	return &Client{
		send:   make(chan []byte, buffer),
		userID: userID,
		topics: topics,
		logger: zerolog.Nop(),
	}
}

func waitForSubscribers(t *testing.T, h *Hub, topic string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.SubscriberCount(topic) == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("subscriber count for %q never reached %d", topic, want)
}

func TestHubDeliversToTopicSubscribers(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	noticeClient := newTestClient(1, []string{TopicPostNotice}, 4)
	leaveClient := newTestClient(2, []string{TopicLeaveStatus}, 4)
	h.register <- noticeClient
	h.register <- leaveClient
	waitForSubscribers(t, h, TopicPostNotice, 1)
	waitForSubscribers(t, h, TopicLeaveStatus, 1)

	h.Emit(TopicPostNotice, map[string]string{"title": "Exam schedule"})

	select {
	case data := <-noticeClient.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, TopicPostNotice, event.Topic)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case <-leaveClient.send:
		t.Fatal("event leaked to a subscriber of another topic")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := NewHub(zerolog.Nop())
	go h.Run()

	client := newTestClient(1, []string{TopicPostNotice}, 1)
	h.register <- client
	waitForSubscribers(t, h, TopicPostNotice, 1)

	h.unregister <- client
	waitForSubscribers(t, h, TopicPostNotice, 0)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel must be closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubEvictsSlowSubscriber(t *testing.T) {
	h := NewHub(zerolog.Nop())

	// Buffer of one: the second broadcast cannot be delivered.
	client := newTestClient(1, []string{TopicLeaveStatus}, 1)
	h.registerClient(client)

	h.broadcastEvent(&Event{Topic: TopicLeaveStatus, Timestamp: time.Now()})
	h.broadcastEvent(&Event{Topic: TopicLeaveStatus, Timestamp: time.Now()})

	assert.Equal(t, 0, h.SubscriberCount(TopicLeaveStatus), "slow subscriber must be evicted")
}

func TestHubEmitNeverBlocks(t *testing.T) {
	h := NewHub(zerolog.Nop())
	// No Run loop consuming the broadcast channel: once the buffer is
	// full, further emits must drop instead of blocking the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			h.Emit(TopicPostNotice, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full broadcast buffer")
	}
}
