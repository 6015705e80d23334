package session

import (
	"sync"
	"time"

	"github.com/wricardo/tictacroom/game/engine"
)

// Player is a seated participant in a room. ConnID is a weak reference to
// whichever live connection currently represents the identity; it is empty
// while the player is disconnected and rebound on reconnect. The room owns
// the Player, never the connection.
type Player struct {
	Identity string      `json:"identity"`
	Symbol   engine.Mark `json:"symbol"`
	ConnID   string      `json:"-"`
}

// Connected reports whether a live connection currently represents the player.
func (p *Player) Connected() bool {
	return p.ConnID != ""
}

// Room is one active game session. All mutable fields are guarded by the
// embedded mutex: every state-machine operation locks the room for its full
// duration, which serializes moves, votes, joins, and disconnects per room
// while keeping distinct rooms fully independent.
type Room struct {
	sync.Mutex

	Code      string
	CreatedBy string
	VsAI      bool

	Players      []*Player
	Spectators   map[string]struct{}
	Board        engine.Board
	Turn         engine.Mark
	Outcome      engine.Outcome
	RematchVotes map[string]struct{}

	CreatedAt      time.Time
	LastActivityAt time.Time
}

func newRoom(code, createdBy string, vsAI bool) *Room {
	now := time.Now()
	r := &Room{
		Code:           code,
		CreatedBy:      createdBy,
		VsAI:           vsAI,
		Spectators:     make(map[string]struct{}),
		Turn:           engine.X,
		Outcome:        engine.InProgress,
		RematchVotes:   make(map[string]struct{}),
		CreatedAt:      now,
		LastActivityAt: now,
	}
	r.Players = append(r.Players, &Player{Identity: createdBy, Symbol: engine.X})
	return r
}

// MaxPlayers returns the seat cap for the room's mode.
func (r *Room) MaxPlayers() int {
	if r.VsAI {
		return 1
	}
	return 2
}

// PlayerByIdentity returns the seated player for an identity, or nil.
// Caller must hold the room lock.
func (r *Room) PlayerByIdentity(identity string) *Player {
	for _, p := range r.Players {
		if p.Identity == identity {
			return p
		}
	}
	return nil
}

// PlayerByConn returns the seated player represented by a connection, or nil.
// Caller must hold the room lock.
func (r *Room) PlayerByConn(connID string) *Player {
	if connID == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// FreeSymbol returns the unseated symbol. With both seats taken it returns
// Empty. Caller must hold the room lock.
func (r *Room) FreeSymbol() engine.Mark {
	taken := map[engine.Mark]bool{}
	for _, p := range r.Players {
		taken[p.Symbol] = true
	}
	switch {
	case !taken[engine.X]:
		return engine.X
	case !taken[engine.O]:
		return engine.O
	default:
		return engine.Empty
	}
}

// Touch records activity on the room. Caller must hold the room lock.
func (r *Room) Touch() {
	r.LastActivityAt = time.Now()
}

// ResetRound clears the board for a new round of the same session. The code,
// seats, and creator are preserved; only the round state is reset.
// Caller must hold the room lock.
func (r *Room) ResetRound() {
	r.Board = engine.Board{}
	r.Turn = engine.X
	r.Outcome = engine.InProgress
	r.RematchVotes = make(map[string]struct{})
	r.Touch()
}

// Evictable reports whether the room has no connected players, no
// spectators, and no activity since the cutoff. Caller must hold the room lock.
func (r *Room) Evictable(cutoff time.Time) bool {
	for _, p := range r.Players {
		if p.Connected() {
			return false
		}
	}
	return len(r.Spectators) == 0 && r.LastActivityAt.Before(cutoff)
}
