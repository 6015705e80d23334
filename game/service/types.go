package service

import (
	"time"

	"github.com/wricardo/tictacroom/game/engine"
)

// Broadcast event names. These are the wire-level event kinds every client
// can distinguish; payload shapes are documented next to each payload type.
const (
	EventRoomCreated       = "roomCreated"
	EventPlayerJoined      = "playerJoined"
	EventJoinedAsSpectator = "joinedAsSpectator"
	EventMoveMade          = "moveMade"
	EventGameOver          = "gameOver"
	EventRematchVote       = "rematchVote"
	EventRematchStarted    = "rematchStarted"
	EventPlayerLeft        = "playerLeft"
	EventRoomError         = "roomError"
)

// PlayerView is the outward-facing shape of a seated player.
type PlayerView struct {
	Identity  string      `json:"identity"`
	Symbol    engine.Mark `json:"symbol"`
	Connected bool        `json:"connected"`
}

// RoomView is a consistent snapshot of a room taken under its lock. Views
// are what gets broadcast and returned by the REST surface; the live Room
// never leaves the service.
type RoomView struct {
	Code         string         `json:"code"`
	CreatedBy    string         `json:"created_by"`
	VsAI         bool           `json:"vs_ai"`
	Players      []PlayerView   `json:"players"`
	Spectators   []string       `json:"spectators"`
	Board        engine.Board   `json:"board"`
	Turn         engine.Mark    `json:"turn"`
	Outcome      engine.Outcome `json:"outcome"`
	RematchVotes int            `json:"rematch_votes"`
	CreatedAt    time.Time      `json:"created_at"`
}

// JoinRole reports how an identity was admitted to a room.
type JoinRole string

const (
	RolePlayer    JoinRole = "player"
	RoleSpectator JoinRole = "spectator"
	RoleRejoined  JoinRole = "rejoined"
)

// JoinResult is the outcome of a join request.
type JoinResult struct {
	Role JoinRole  `json:"role"`
	Room *RoomView `json:"room"`
}

// MovePayload is broadcast as EventMoveMade after every accepted move.
type MovePayload struct {
	Board engine.Board `json:"board"`
	Turn  engine.Mark  `json:"turn"`
}

// GameOverPayload is broadcast as EventGameOver when a round ends.
// Winner is "X", "O", or "draw".
type GameOverPayload struct {
	Winner string       `json:"winner"`
	Board  engine.Board `json:"board"`
}

// RematchVotePayload is broadcast as EventRematchVote on every vote.
type RematchVotePayload struct {
	Votes    int `json:"votes"`
	Required int `json:"required"`
}

// RoomPayload wraps a room view for events whose payload is the whole room.
type RoomPayload struct {
	Room *RoomView `json:"room"`
}
