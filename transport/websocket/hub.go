package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wricardo/tictacroom/game/service"
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

// Envelope is the outbound message frame.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Request is the inbound message frame.
type Request struct {
	Type string `json:"type"`
	Code string `json:"code,omitempty"`
	Cell int    `json:"index"`
}

// Inbound request types.
const (
	reqCreateRoom   = "createRoom"
	reqCreateAiRoom = "createAiRoom"
	reqJoinRoom     = "joinRoom"
	reqMakeMove     = "makeMove"
	reqVoteRematch  = "voteRematch"
)

// Hub maintains the set of active clients and their room subscriptions, and
// fans broadcasts out to every connection attached to a room's channel. It
// implements service.Broadcaster.
type Hub struct {
	rooms   map[string]map[*Client]bool
	service service.RoomService
	mu      sync.RWMutex
}

// NewHub creates a new gateway hub. SetService must be called before the
// first connection is served.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// SetService wires the room service the hub dispatches requests to. The hub
// and service reference each other, so one side attaches late.
func (h *Hub) SetService(svc service.RoomService) {
	h.service = svc
}

// ServeWS upgrades the request and attaches a client for an already
// verified identity.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, identity string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		id:       uuid.NewString(),
		identity: identity,
	}

	log.Printf("Client connected: conn=%s identity=%s", client.id, identity)

	go client.writePump()
	go client.readPump()
}

// BroadcastEvent sends an event to every connection subscribed to a room's
// channel. Slow clients are dropped rather than waited on.
func (h *Hub) BroadcastEvent(roomCode, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	key := channelKey(roomCode)
	var stale []*Client

	h.mu.RLock()
	for client := range h.rooms[key] {
		select {
		case client.send <- payload:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.removeClient(client)
	}
}

// subscribe attaches a client to a room's channel.
func (h *Hub) subscribe(client *Client, roomCode string) {
	key := channelKey(roomCode)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[key] == nil {
		h.rooms[key] = make(map[*Client]bool)
	}
	h.rooms[key][client] = true
}

// unsubscribe detaches a client from a room's channel.
func (h *Hub) unsubscribe(client *Client, roomCode string) {
	key := channelKey(roomCode)

	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[key]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, key)
		}
	}
}

// removeClient drops a client from every channel and closes its send queue.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()

	dropped := false
	for key, clients := range h.rooms {
		if clients[client] {
			delete(clients, client)
			dropped = true
			if len(clients) == 0 {
				delete(h.rooms, key)
			}
		}
	}
	if !client.closed {
		client.closed = true
		close(client.send)
	}
	h.mu.Unlock()

	if dropped {
		log.Printf("Client detached: conn=%s", client.id)
	}
}

// sendTo queues an event for a single connection.
func (h *Hub) sendTo(client *Client, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	// The send stays under the read lock: removeClient closes the channel
	// under the write lock, so a queued send can never hit a closed channel.
	h.mu.RLock()
	full := false
	if !client.closed {
		select {
		case client.send <- payload:
		default:
			full = true
		}
	}
	h.mu.RUnlock()

	if full {
		h.removeClient(client)
	}
}

// subscriberCount returns how many connections are attached to a room's
// channel.
func (h *Hub) subscriberCount(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[channelKey(roomCode)])
}

// channelKey normalizes a room code the same way the registry does, so a
// client joining with a lowercase code lands on the same channel.
func channelKey(roomCode string) string {
	return strings.ToUpper(strings.TrimSpace(roomCode))
}
