package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/tictacroom/game/service"
	"github.com/wricardo/tictacroom/game/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Client is one attached websocket connection with a verified identity.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	id       string
	identity string

	// closed guards the send channel; owned by the hub's lock.
	closed bool
}

// readPump pumps requests from the connection into the room service.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.hub.service.Disconnect(c.identity, c.id)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			c.hub.sendTo(c, service.EventRoomError, "malformed request")
			continue
		}
		c.dispatch(&req)
	}
}

// dispatch maps one inbound request onto exactly one room service operation.
func (c *Client) dispatch(req *Request) {
	ctx := context.Background()

	switch req.Type {
	case reqCreateRoom, reqCreateAiRoom:
		view, err := c.hub.service.CreateRoom(ctx, c.identity, c.id, req.Type == reqCreateAiRoom)
		if err != nil {
			c.hub.sendTo(c, service.EventRoomError, "failed to create room")
			return
		}
		c.hub.subscribe(c, view.Code)
		c.hub.sendTo(c, service.EventRoomCreated, service.RoomPayload{Room: view})

	case reqJoinRoom:
		// Subscribe before joining so the playerJoined broadcast produced
		// by the join reaches the joiner too.
		c.hub.subscribe(c, req.Code)
		result, err := c.hub.service.JoinRoom(ctx, c.identity, c.id, req.Code)
		if err != nil {
			c.hub.unsubscribe(c, req.Code)
			c.hub.sendTo(c, service.EventRoomError, joinErrorMessage(err))
			return
		}
		if result.Role == service.RoleSpectator {
			c.hub.sendTo(c, service.EventJoinedAsSpectator, service.RoomPayload{Room: result.Room})
		}

	case reqMakeMove:
		if err := c.hub.service.MakeMove(ctx, c.id, req.Code, req.Cell); err != nil {
			c.hub.sendTo(c, service.EventRoomError, moveErrorMessage(err))
		}

	case reqVoteRematch:
		if err := c.hub.service.VoteRematch(ctx, c.identity, req.Code); err != nil {
			c.hub.sendTo(c, service.EventRoomError, joinErrorMessage(err))
		}

	default:
		c.hub.sendTo(c, service.EventRoomError, "unknown request type")
	}
}

// joinErrorMessage maps join/vote failures onto client-facing messages.
func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, service.ErrNotSeated):
		return "Only seated players can do that"
	default:
		return "Request failed"
	}
}

// moveErrorMessage maps move rejections onto client-facing messages. The
// rejected move changed nothing and nothing was broadcast.
func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, service.ErrRoomFinished):
		return "Game is already over"
	case errors.Is(err, service.ErrInvalidCell):
		return "Invalid cell"
	case errors.Is(err, service.ErrCellOccupied):
		return "Cell already taken"
	case errors.Is(err, service.ErrNotSeated):
		return "You are not seated in this game"
	case errors.Is(err, service.ErrNotYourTurn):
		return "Not your turn"
	default:
		return "Move rejected"
	}
}

// writePump pumps queued messages to the connection and keeps it alive.
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

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
