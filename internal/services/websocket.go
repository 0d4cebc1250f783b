package services

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tennis-sim/internal/models"
	"github.com/stitts-dev/tennis-sim/internal/simulator"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// ProgressClient is one websocket subscriber. An empty RunID subscribes it
// to every run's updates.
type ProgressClient struct {
	ID    string
	RunID string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *ProgressHub
}

// ProgressMessage is the envelope for every frame pushed to clients.
type ProgressMessage struct {
	Type      string      `json:"type"`
	RunID     string      `json:"run_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ProgressHub fans simulation progress out to websocket clients.
type ProgressHub struct {
	clients    map[*ProgressClient]bool
	runClients map[string][]*ProgressClient
	register   chan *ProgressClient
	unregister chan *ProgressClient
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
	logger     *logrus.Logger
}

func NewProgressHub(readBuffer, writeBuffer int, logger *logrus.Logger) *ProgressHub {
	return &ProgressHub{
		clients:    make(map[*ProgressClient]bool),
		runClients: make(map[string][]*ProgressClient),
		register:   make(chan *ProgressClient),
		unregister: make(chan *ProgressClient),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Origin checking is left to the CORS layer in front.
				return true
			},
			ReadBufferSize:  readBuffer,
			WriteBufferSize: writeBuffer,
		},
		logger: logger,
	}
}

// Run owns the client registry. Call it once from a dedicated goroutine.
func (h *ProgressHub) Run() {
	h.logger.Info("Starting progress websocket hub")

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if client.RunID != "" {
				h.runClients[client.RunID] = append(h.runClients[client.RunID], client)
			}
			h.mu.Unlock()

			h.logger.WithFields(logrus.Fields{
				"client_id": client.ID,
				"run_id":    client.RunID,
			}).Info("Progress client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeRunClient(client)
			}
			h.mu.Unlock()

			h.logger.WithFields(logrus.Fields{
				"client_id": client.ID,
				"run_id":    client.RunID,
			}).Info("Progress client disconnected")
		}
	}
}

// removeRunClient must be called with the hub lock held.
func (h *ProgressHub) removeRunClient(client *ProgressClient) {
	if client.RunID == "" {
		return
	}
	clients := h.runClients[client.RunID]
	for i, c := range clients {
		if c == client {
			h.runClients[client.RunID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.runClients[client.RunID]) == 0 {
		delete(h.runClients, client.RunID)
	}
}

// HandleWebSocket upgrades the connection and subscribes it to progress
// frames. A run_id query parameter narrows the subscription to one run.
func (h *ProgressHub) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade websocket connection")
		return
	}

	client := &ProgressClient{
		ID:    uuid.NewString(),
		RunID: c.Query("run_id"),
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   h,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastProgress pushes one progress update for a run.
func (h *ProgressHub) BroadcastProgress(runID string, update simulator.ProgressUpdate) {
	h.sendToRun(runID, &ProgressMessage{
		Type:      "simulation_progress",
		RunID:     runID,
		Data:      update,
		Timestamp: time.Now().Unix(),
	})
}

// BroadcastComplete announces that a run finished and its summary is ready.
func (h *ProgressHub) BroadcastComplete(runID string, summary *models.SummaryStatistics) {
	h.sendToRun(runID, &ProgressMessage{
		Type:      "simulation_complete",
		RunID:     runID,
		Data:      summary,
		Timestamp: time.Now().Unix(),
	})
}

// ConnectionCount returns the number of active subscribers.
func (h *ProgressHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// sendToRun delivers to the run's subscribers and to clients with no run
// filter. A slow client loses frames rather than stalling the simulation.
func (h *ProgressHub) sendToRun(runID string, message *ProgressMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal websocket message")
		return
	}

	h.mu.RLock()
	targets := make([]*ProgressClient, 0, len(h.clients))
	for client := range h.clients {
		if client.RunID == "" || client.RunID == runID {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- data:
		default:
			h.logger.WithField("client_id", client.ID).Debug("Dropped progress frame for slow client")
		}
	}
}

// readPump drains the connection so close frames and pongs are processed.
func (c *ProgressClient) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Error("Websocket read error")
			}
			break
		}
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *ProgressClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
