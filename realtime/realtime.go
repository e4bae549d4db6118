package realtime

import (
	"log"
	"sync"

	"portal/models"

	"github.com/gorilla/websocket"
)

var (
	adminClients = make(map[*websocket.Conn]bool) // Connected admin dashboard clients
	broadcast    = make(chan AttemptUpdate, 16)   // Broadcast channel for attempt events
	mutex        sync.Mutex                       // Protects adminClients
)

// AttemptUpdate is pushed to admin dashboards whenever an attempt is recorded
type AttemptUpdate struct {
	Attempt  models.Attempt `json:"attempt"`
	Username string         `json:"username"`
	Status   string         `json:"status"` // resulting account status
}

// RegisterClient adds a WebSocket client to the attempt feed
func RegisterClient(conn *websocket.Conn) {
	mutex.Lock()
	adminClients[conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from the attempt feed
func UnregisterClient(conn *websocket.Conn) {
	mutex.Lock()
	delete(adminClients, conn)
	mutex.Unlock()
}

// BroadcastAttemptUpdate queues an update for all connected clients. The
// feed is best effort: when nobody is draining the channel the update is
// dropped rather than blocking the attempt path.
func BroadcastAttemptUpdate(update AttemptUpdate) {
	select {
	case broadcast <- update:
	default:
	}
}

func handleBroadcast() {
	for update := range broadcast {
		mutex.Lock()
		for client := range adminClients {
			if err := client.WriteJSON(update); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(adminClients, client)
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
