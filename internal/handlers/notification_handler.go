package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/workbridge-jp/workbridge_be/internal/realtime"
	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

// NotificationHandler feeds scout and application-status events to the
// browser over a websocket. The connection authenticates with the
// session token passed as a query parameter (websockets cannot set
// cookies reliably across origins).
type NotificationHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewNotificationHandler(hub *realtime.Hub, jwtSecret string) *NotificationHandler {
	return &NotificationHandler{Hub: hub, JWTSecret: jwtSecret}
}

func (h *NotificationHandler) WebSocketHandler(c *websocket.Conn) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		log.Println("WebSocket: token parameter missing")
		c.Close()
		return
	}

	claims, err := parseWSClaims(h.JWTSecret, tokenStr)
	if err != nil {
		log.Println("WebSocket: invalid token:", err)
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:   uuid.NewString(),
		User: *claims,
		Send: make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer func() {
		h.Hub.UnregisterClient(client)
		log.Printf("WebSocket: %s %d disconnected\n", claims.Role, claims.ID)
	}()

	// hub -> client
	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// client -> server: nothing to process, just keep the connection
	// alive and answer pings
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}

func parseWSClaims(secret, tokenStr string) (*realtime.UserRef, error) {
	claims, err := utils.ParseJWT(secret, tokenStr)
	if err != nil {
		return nil, err
	}
	uid, err := strconv.ParseUint(strings.TrimSpace(claims.UserID), 10, 64)
	if err != nil {
		return nil, err
	}
	return &realtime.UserRef{Role: strings.ToLower(claims.Role), ID: uint(uid)}, nil
}
