// Package protocol defines the JSON messages exchanged between the engine
// and a presentation layer.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of message.
type MessageType string

// Operation message types (presentation to engine)
const (
	TypeInitializeField  MessageType = "initialize_field"
	TypeResetField       MessageType = "reset_field"
	TypeCellTapped       MessageType = "cell_tapped"
	TypeCellDoubleTapped MessageType = "cell_double_tapped"
	TypeEndTurn          MessageType = "end_turn"
	TypeResume           MessageType = "resume"
)

// Notification message types (engine to presentation)
const (
	TypeCellUpdated          MessageType = "cell_updated"
	TypeCellSelectionChanged MessageType = "cell_selection_changed"
	TypeFieldReset           MessageType = "field_reset"
	TypeSelectedCountChanged MessageType = "selected_count_changed"
	TypeUnitMovementStarted  MessageType = "unit_movement_started"
	TypeUnitMovementComplete MessageType = "unit_movement_completed"
	TypeBuildingUpgrade      MessageType = "building_upgrade_effect"
	TypeTurnChanged          MessageType = "turn_changed"
	TypeCountdownTick        MessageType = "countdown_tick"
	TypeCountdownExpired     MessageType = "countdown_expired"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a new message with the given type and payload. A nil
// payload produces a message without one.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
	}
	if payload == nil {
		return msg, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg.Payload = data
	return msg, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// IsOperation reports whether the message is an input for the engine.
func (m *Message) IsOperation() bool {
	switch m.Type {
	case TypeInitializeField, TypeResetField, TypeCellTapped, TypeCellDoubleTapped, TypeEndTurn, TypeResume:
		return true
	}
	return false
}
