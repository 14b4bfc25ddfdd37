package realtime

import "github.com/gofiber/websocket/v2"

// WebSocketConn wraps websocket.Conn so callers outside the handler
// never import the websocket package directly.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}
