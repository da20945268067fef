package strategy

import (
	"encoding/json"
	"time"
)

// MessageType represents the type of a WebSocket message
type MessageType string

const (
	// MessageDecide carries a tensor.Observation to the agent.
	MessageDecide MessageType = "decide"
	// MessageAction carries the agent's game.Action back.
	MessageAction MessageType = "action"
	// MessageError reports that the agent could not decide.
	MessageError MessageType = "error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now().UTC(),
	}, nil
}

// ErrorData is the payload of MessageError.
type ErrorData struct {
	Message string `json:"message"`
}
