package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/quanvenc/BlindChess-Z/internal/model"
	"github.com/quanvenc/BlindChess-Z/internal/service"
	"github.com/quanvenc/BlindChess-Z/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	log         *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, log *zap.Logger) *WebSocketController {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
// The raw connection is wrapped once; every write, whether a broadcast or an
// error reply from this read loop, goes through the same write-serialized
// client.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)
	client := ws.NewClient(c)

	if err := wsc.gameService.RegisterConnection(playerID, client); err != nil {
		wsc.log.Warn("connection refused",
			zap.String("playerId", playerID),
			zap.Error(err))
		client.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(playerID, client)

	for {
		messageType, message, err := client.ReadMessage()
		if err != nil {
			wsc.log.Debug("read loop ended",
				zap.String("playerId", playerID),
				zap.Error(err))
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(client, "malformed message")
			continue
		}

		if err := wsc.handleMessage(playerID, msg); err != nil {
			wsc.sendError(client, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var claim model.MoveClaim
		if err := json.Unmarshal(msg.Payload, &claim); err != nil {
			return fmt.Errorf("malformed move payload: %w", err)
		}
		return wsc.gameService.HandleMove(playerID, claim)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError reports a rejection back on the offending connection only.
func (wsc *WebSocketController) sendError(client *ws.Client, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	if err := client.WriteJSON(msg); err != nil {
		wsc.log.Debug("error reply failed", zap.Error(err))
	}
}
