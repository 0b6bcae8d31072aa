package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// Client to server.
	MessageTypeMove MessageType = "move"

	// Server to client.
	MessageTypeGameState        MessageType = "gameState"
	MessageTypePlayerRegistered MessageType = "playerRegistered"
	MessageTypeMoveMade         MessageType = "moveMade"
	MessageTypeGameOver         MessageType = "gameOver"
	MessageTypeError            MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage wraps a payload struct into an envelope, marshaling it to raw
// JSON. It fails only if the payload itself cannot be marshaled.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// PlayerRegisteredPayload announces a seat being taken.
type PlayerRegisteredPayload struct {
	PlayerID  string `json:"playerId"`
	Color     int    `json:"color"`
	ColorName string `json:"colorName"`
}

// MoveMadePayload announces an applied move. Coordinates and actor only;
// tokens never leave the board through events.
type MoveMadePayload struct {
	Actor     int    `json:"actor"`
	ActorName string `json:"actorName"`
	FromX     int    `json:"fromX"`
	FromY     int    `json:"fromY"`
	ToX       int    `json:"toX"`
	ToY       int    `json:"toY"`
}

// GameOverPayload closes the match. Winner carries the index of the player
// who was left without a legal move when the scan fired.
type GameOverPayload struct {
	Winner     int    `json:"winner"`
	WinnerName string `json:"winnerName"`
}

// ErrorPayload reports a rejected request back to the sender only.
type ErrorPayload struct {
	Message string `json:"message"`
}
