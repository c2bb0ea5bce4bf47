package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches an upgraded console connection to the hub. It blocks
// until the socket closes; the fiber websocket handler owns the
// goroutine.
func ServeWs(hub *Hub, c *websocket.Conn, adminID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, AdminID: adminID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
