package events

import "time"

// Known topics on the notification side-channel.
const (
	TopicPostNotice  = "post-notice"
	TopicLeaveStatus = "leave-status"
)

// Event is one notification published on a topic.
type Event struct {
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Emitter publishes events to the notification side-channel. Emit is
// fire-and-forget: failures are logged by the implementation and never
// returned, so a publish problem cannot fail the primary mutation that
// triggered it.
type Emitter interface {
	Emit(topic string, payload interface{})
}

// NopEmitter drops every event. Used where no side-channel is wired.
type NopEmitter struct{}

// Emit discards the event.
func (NopEmitter) Emit(topic string, payload interface{}) {}
