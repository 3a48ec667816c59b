// Package ws pushes monitor status transitions to connected dashboards.
package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cronmon-dev/cronmon/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	clients   = make(map[*websocket.Conn]bool)
	clientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// StatusEvent is broadcast whenever a monitor changes state: up on a ping
// that recovers it, down on an overdue sweep finding.
type StatusEvent struct {
	Type         string `json:"type"`
	MonitorID    string `json:"monitor_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	FailureCount int    `json:"failure_count"`
}

// BroadcastStatus sends the event to every connected client. Failed
// connections are dropped.
func BroadcastStatus(event StatusEvent) {
	event.Type = "status"

	clientsMu.RLock()
	if len(clients) == 0 {
		clientsMu.RUnlock()
		return
	}

	// Copy the connections so the lock is not held while writing.
	conns := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		conns = append(conns, conn)
	}
	clientsMu.RUnlock()

	for _, conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Failed to broadcast status to client: %v", err)
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
			conn.Close()
		}
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away.
func Serve(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	clientsMu.Lock()
	clients[conn] = true
	clientsMu.Unlock()

	defer func() {
		clientsMu.Lock()
		delete(clients, conn)
		clientsMu.Unlock()
		conn.Close()

		log.Println("WebSocket connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	if err := conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	}); err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for ping: %v", err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}
