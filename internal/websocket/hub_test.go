package websocket

import (
	"testing"
	"time"

	"trademini-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{}) {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                 { return nil }
func (quietLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (quietLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func (h *Hub) clientCount(adminID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[adminID])
}

func TestBroadcastDropsStuckConsoleWithoutPanic(t *testing.T) {
	h := NewHub(nil, quietLogger{})
	go h.Run()

	adminID := uuid.New()
	healthy := &Client{Hub: h, AdminID: adminID, Send: make(chan []byte, 8)}
	// No buffer and no reader: every push to this console fails.
	stuck := &Client{Hub: h, AdminID: adminID, Send: make(chan []byte)}

	h.register <- healthy
	h.register <- stuck

	require.Eventually(t, func() bool {
		return h.clientCount(adminID) == 2
	}, time.Second, 5*time.Millisecond)

	// Repeated pushes at a stuck console must not close its channel
	// twice; the second broadcast used to panic here.
	h.Broadcast(ConsoleEvent{Type: "broadcast_progress", Data: map[string]interface{}{"n": 1}})
	h.Broadcast(ConsoleEvent{Type: "broadcast_progress", Data: map[string]interface{}{"n": 2}})
	h.Broadcast(ConsoleEvent{Type: "broadcast_progress", Data: map[string]interface{}{"n": 3}})

	assert.Eventually(t, func() bool {
		return h.clientCount(adminID) == 1
	}, time.Second, 5*time.Millisecond)

	// The healthy console on the same admin keeps receiving.
	select {
	case frame := <-healthy.Send:
		assert.Contains(t, string(frame), "broadcast_progress")
	case <-time.After(time.Second):
		t.Fatal("healthy console received nothing")
	}

	// Run owns the close; once unregistered the stuck channel reports
	// closed instead of panicking a later close.
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-stuck.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
