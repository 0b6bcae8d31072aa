package ws

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a Client drives. Satisfied by
// *websocket.Conn.
type Conn interface {
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Client serializes writes to one websocket connection. The underlying
// connection supports a single concurrent writer, so every outbound frame,
// whichever goroutine produces it, must go through the same Client. Reads
// are not locked; the connection's read loop is its only reader.
type Client struct {
	mu   sync.Mutex
	conn Conn
}

func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// WriteJSON sends one JSON frame.
func (c *Client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// CloseWithReason sends a close frame, then tears the connection down.
func (c *Client) CloseWithReason(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	c.conn.Close()
}

// ReadMessage reads the next frame from the connection.
func (c *Client) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

// Close tears the connection down without a close frame.
func (c *Client) Close() error {
	return c.conn.Close()
}
