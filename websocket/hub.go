package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event types pushed to connected admin dashboards so the review queue
// updates without polling.
const (
	EventProofSubmitted = "proof.submitted"
	EventProofApproved  = "proof.approved"
	EventProofRejected  = "proof.rejected"
)

type ProofEvent struct {
	Type        string    `json:"type"`
	ProofID     uuid.UUID `json:"proof_id"`
	Status      string    `json:"status"`
	UserName    string    `json:"user_name,omitempty"`
	PackageName string    `json:"package_name,omitempty"`
	At          time.Time `json:"at"`
}

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan ProofEvent, 16)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Admin dashboard connected: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Admin dashboard disconnected: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			stale := make([]uuid.UUID, 0)
			for adminID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error pushing event to admin %s: %v", adminID, err)
					conn.Close()
					stale = append(stale, adminID)
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, adminID := range stale {
					delete(clients, adminID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// PublishProofEvent queues an event for connected dashboards without ever
// blocking the request that produced it.
func PublishProofEvent(eventType string, proofID uuid.UUID, status, userName, packageName string) {
	event := ProofEvent{
		Type:        eventType,
		ProofID:     proofID,
		Status:      status,
		UserName:    userName,
		PackageName: packageName,
		At:          time.Now(),
	}
	select {
	case Broadcast <- event:
	default:
		log.Printf("Event queue full, dropping %s for proof %s", eventType, proofID)
	}
}
