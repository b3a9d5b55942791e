package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mvillota/chesslink/game/protocol"
	"github.com/mvillota/chesslink/game/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// MessageHandler consumes decoded transport events. Implemented by
// protocol.Handler.
type MessageHandler interface {
	HandleMessage(conn room.ConnID, data []byte)
	HandleDisconnect(conn room.ConnID)
}

// Client represents one WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   room.ConnID
	send chan []byte
}

// inboundFrame pairs a raw frame with the connection that produced it.
type inboundFrame struct {
	conn room.ConnID
	data []byte
}

// Hub maintains the set of live connections and runs the event loop that
// serializes all protocol handling.
type Hub struct {
	handler MessageHandler

	// Live clients by connection identity; mutated only on the Run loop,
	// guarded for the read-only stats path.
	mu      sync.RWMutex
	clients map[room.ConnID]*Client

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame
	tasks      chan func()
}

// NewHub creates a hub with no connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[room.ConnID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 64),
		tasks:      make(chan func()),
	}
}

// SetHandler wires the protocol handler. Must be called before Run.
func (h *Hub) SetHandler(handler MessageHandler) {
	h.handler = handler
}

// Run starts the hub's event loop. One event is processed to completion
// before the next begins; this is the serialization point for all room and
// seat mutations.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case frame := <-h.inbound:
			h.handler.HandleMessage(frame.conn, frame.data)

		case task := <-h.tasks:
			task()
		}
	}
}

// Dispatch runs task on the event loop, serialized with all other protocol
// handling. Blocks until the loop picks the task up.
func (h *Hub) Dispatch(task func()) {
	h.tasks <- task
}

// ServeWS upgrades an HTTP request, assigns the connection its identity,
// and starts its pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		id:   room.ConnID(uuid.NewString()),
		send: make(chan []byte, 256),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// ServeHTTP implements http.Handler by upgrading every request.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.ServeWS(w, r)
}

// Send implements protocol.Sender. It enqueues msg on the connection's
// FIFO queue; messages are written one per frame, never coalesced. Called
// from the Run loop, so the emit order of the handler is the queue order.
func (h *Hub) Send(conn room.ConnID, msg protocol.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message for %s: %v", conn, err)
		return
	}

	h.mu.RLock()
	client, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.send <- data:
	default:
		// a seat that misses one frame can never resync; turn the stall
		// into a disconnect the protocol already handles
		log.Printf("Disconnecting slow client %s: send queue full", conn)
		h.removeClient(client)
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// addClient registers a connection and tells it its assigned identity.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client connected: %s (total clients: %d)", client.id, total)
	h.Send(client.id, protocol.Connected(client.id))
}

// removeClient drops a connection and runs disconnect cleanup for any room
// it occupied.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.id]
	if ok {
		delete(h.clients, client.id)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	log.Printf("Client disconnected: %s (total clients: %d)", client.id, total)
	h.handler.HandleDisconnect(client.id)
}

// readPump pumps frames from the connection into the hub's event loop.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error from %s: %v", c.id, err)
			}
			break
		}
		c.hub.inbound <- inboundFrame{conn: c.id, data: data}
	}
}

// writePump drains the client's send queue to the connection, one message
// per frame, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
