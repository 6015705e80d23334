package service

import (
	"context"
	"errors"
)

// Move and vote validation failures. These mutate nothing; the gateway
// answers the acting connection with a room error and broadcasts nothing.
var (
	ErrRoomFinished = errors.New("game already finished")
	ErrInvalidCell  = errors.New("cell index out of range")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrNotSeated    = errors.New("no seat in this room")
	ErrNotYourTurn  = errors.New("not your turn")
)

// RoomService is the session state machine: the only way to read or mutate
// room state.
type RoomService interface {
	// CreateRoom opens a new room with identity seated as X and its
	// connection bound to connID.
	CreateRoom(ctx context.Context, identity, connID string, vsAI bool) (*RoomView, error)

	// JoinRoom admits identity to the room: a reconnecting player gets its
	// seat rebound, a new player takes the free seat, everyone else becomes
	// a spectator.
	JoinRoom(ctx context.Context, identity, connID, code string) (*JoinResult, error)

	// GetRoom returns a snapshot of the room.
	GetRoom(ctx context.Context, code string) (*RoomView, error)

	// MakeMove applies the move held by connID's seat to the given cell. In
	// AI rooms the computer's reply is applied within the same serialized
	// operation.
	MakeMove(ctx context.Context, connID, code string, cell int) error

	// VoteRematch records identity's rematch vote and starts a new round
	// once the quorum is reached.
	VoteRematch(ctx context.Context, identity, code string) error

	// Disconnect releases connID's weak references: seats held by identity
	// through this connection are marked disconnected (the seat survives
	// for reconnection) and spectator entries are dropped.
	Disconnect(identity, connID string)
}

// Broadcaster fans an event out to every connection subscribed to a room's
// channel. The websocket hub implements it.
type Broadcaster interface {
	BroadcastEvent(roomCode, event string, data interface{})
}
