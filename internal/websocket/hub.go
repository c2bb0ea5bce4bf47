package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"trademini-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ConsoleEvent is the frame pushed to connected admin consoles:
// broadcast delivery progress, payment review updates, ban changes.
type ConsoleEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type Hub struct {
	// Registered clients map: admin id -> open console sockets (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis relay so events reach consoles connected to other instances.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.AdminID] = append(h.clients[client.AdminID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Console connected", map[string]interface{}{"admin_id": client.AdminID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.AdminID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.AdminID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.AdminID]) == 0 {
					delete(h.clients, client.AdminID)
					h.logger.Info("Hub", "Console disconnected", map[string]interface{}{"admin_id": client.AdminID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) sendLocal(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Stuck console: hand it to Run, which owns the only
			// close of Send. Callers hold the read lock, so the
			// unregister must not block here.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// Broadcast pushes an event to every connected console, on every
// instance.
func (h *Hub) Broadcast(event ConsoleEvent) {
	data, _ := json.Marshal(event)

	h.mu.RLock()
	for _, clients := range h.clients {
		h.sendLocal(clients, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_user_id": "*",
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// Send pushes an event to one admin's consoles only.
func (h *Hub) Send(userID uuid.UUID, event ConsoleEvent) {
	data, _ := json.Marshal(event)

	// Push under the read lock: Run only closes a Send channel while
	// holding the write lock, so no push can race a close.
	h.mu.RLock()
	if clients, ok := h.clients[userID]; ok {
		h.sendLocal(clients, data)
	}
	h.mu.RUnlock()

	// Always relay: the same admin may be connected elsewhere.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to one cluster channel; frames carry
	// the target and each instance delivers to its own sockets.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				h.sendLocal(clients, payload.Message)
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		if clients, ok := h.clients[uid]; ok {
			h.sendLocal(clients, payload.Message)
		}
		h.mu.RUnlock()
	}
}
