// internal/domain/websocket/types.go
package websocket

import (
	"crypto/rand"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing         EventType = "ping"
	EventTypePong         EventType = "pong"
	EventTypeConnected    EventType = "connected"
	EventTypeDisconnected EventType = "disconnected"
	EventTypeError        EventType = "error"

	// Moderation events (server -> client)
	EventTypeThoughtCreated EventType = "thought:created"
	EventTypeThoughtDeleted EventType = "thought:deleted"
	EventTypeContentUpdated EventType = "content:updated"

	// Session events
	EventTypeSessionExpired EventType = "session:expired"
	EventTypeForceLogout    EventType = "session:force_logout"

	// Subscription events
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id,omitempty"`
}

// Subscription channels that clients can subscribe to
type ChannelType string

const (
	ChannelThoughts ChannelType = "thoughts"
	ChannelContent  ChannelType = "content"
	ChannelSystem   ChannelType = "system"
)

// DefaultChannels are subscribed on connect.
var DefaultChannels = []ChannelType{ChannelThoughts, ChannelContent, ChannelSystem}

// SubscribeRequest sent by client to subscribe to specific channels
type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SessionEventData for session events
type SessionEventData struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ContentEventData names the content area an admin changed.
type ContentEventData struct {
	Module string `json:"module"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	By     string `json:"by,omitempty"`
}

// NewMessage stamps a message with the current time and a ULID.
func NewMessage(eventType EventType, data any) *WSMessage {
	now := time.Now()
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: now,
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
