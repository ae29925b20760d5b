// Package protocol defines the command and result messages exchanged with the engine.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of message.
type MessageType string

// Game flow message types
const (
	TypeActionResult MessageType = "action_result"
	TypeGameState    MessageType = "game_state"
	TypeGameEnded    MessageType = "game_ended"
)

// Action message types
const (
	TypeMoveUnit        MessageType = "move_unit"
	TypeAttack          MessageType = "attack"
	TypeAttackBuilding  MessageType = "attack_building"
	TypeBuild           MessageType = "build"
	TypeRecruit         MessageType = "recruit"
	TypeUnitSpecial     MessageType = "unit_special"
	TypeBuildingSpecial MessageType = "building_special"
	TypeEndTurn         MessageType = "end_turn"
	TypeQueryOdds       MessageType = "query_odds"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrorCode represents an error type.
type ErrorCode string

const (
	ErrCodeInvalidAction         ErrorCode = "invalid_action"
	ErrCodeNotYourTurn           ErrorCode = "not_your_turn"
	ErrCodeInvalidTarget         ErrorCode = "invalid_target"
	ErrCodeInsufficientResources ErrorCode = "insufficient_resources"
	ErrCodeOutOfRange            ErrorCode = "out_of_range"
	ErrCodeAlreadyActed          ErrorCode = "already_acted"
	ErrCodeTileUnavailable       ErrorCode = "tile_unavailable"
	ErrCodeOutOfBounds           ErrorCode = "out_of_bounds"
	ErrCodeNotBuilt              ErrorCode = "not_built"
	ErrCodeGameOver              ErrorCode = "game_over"
	ErrCodeMalformed             ErrorCode = "malformed"
	ErrCodeInternalError         ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
