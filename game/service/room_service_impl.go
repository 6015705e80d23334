package service

import (
	"context"
	"log"
	"time"

	"github.com/wricardo/tictacroom/archive"
	"github.com/wricardo/tictacroom/game/engine"
	"github.com/wricardo/tictacroom/game/session"
)

// roomServiceImpl implements the RoomService interface.
type roomServiceImpl struct {
	rooms       *session.Manager
	archiver    archive.Archive
	broadcaster Broadcaster
	aiDelay     time.Duration
}

// NewRoomService creates a new room service instance. aiDelay is the display
// pause before the computer opponent replies; the room stays locked for the
// duration so no other operation can interleave with the AI's ply.
func NewRoomService(rooms *session.Manager, archiver archive.Archive, broadcaster Broadcaster, aiDelay time.Duration) RoomService {
	return &roomServiceImpl{
		rooms:       rooms,
		archiver:    archiver,
		broadcaster: broadcaster,
		aiDelay:     aiDelay,
	}
}

// CreateRoom opens a new room with the creator seated as X.
func (s *roomServiceImpl) CreateRoom(ctx context.Context, identity, connID string, vsAI bool) (*RoomView, error) {
	room := s.rooms.Create(identity, vsAI)

	room.Lock()
	defer room.Unlock()

	room.Players[0].ConnID = connID
	return viewOf(room), nil
}

// JoinRoom admits identity to the room.
func (s *roomServiceImpl) JoinRoom(ctx context.Context, identity, connID, code string) (*JoinResult, error) {
	room, err := s.rooms.Get(code)
	if err != nil {
		return nil, err
	}

	room.Lock()
	defer room.Unlock()

	// Reconnect: rebind the weak connection reference, board and turn
	// untouched.
	if p := room.PlayerByIdentity(identity); p != nil {
		p.ConnID = connID
		room.Touch()
		view := viewOf(room)
		s.broadcaster.BroadcastEvent(room.Code, EventPlayerJoined, RoomPayload{Room: view})
		return &JoinResult{Role: RoleRejoined, Room: view}, nil
	}

	// Free seat: second joiner takes whichever symbol is left. A room whose
	// seats all emptied out seats the newcomer as X.
	if len(room.Players) < room.MaxPlayers() {
		symbol := room.FreeSymbol()
		if len(room.Players) == 0 {
			symbol = engine.X
		}
		room.Players = append(room.Players, &session.Player{
			Identity: identity,
			Symbol:   symbol,
			ConnID:   connID,
		})
		room.Touch()
		view := viewOf(room)
		s.broadcaster.BroadcastEvent(room.Code, EventPlayerJoined, RoomPayload{Room: view})
		return &JoinResult{Role: RolePlayer, Room: view}, nil
	}

	// Spectator admission is idempotent.
	room.Spectators[identity] = struct{}{}
	room.Touch()
	return &JoinResult{Role: RoleSpectator, Room: viewOf(room)}, nil
}

// GetRoom returns a snapshot of the room.
func (s *roomServiceImpl) GetRoom(ctx context.Context, code string) (*RoomView, error) {
	room, err := s.rooms.Get(code)
	if err != nil {
		return nil, err
	}

	room.Lock()
	defer room.Unlock()
	return viewOf(room), nil
}

// MakeMove applies a player's move, and in AI rooms the computer's reply.
// The room lock is held for the whole operation, including the AI delay, so
// a second concurrent move must observe the updated turn and fail its check.
func (s *roomServiceImpl) MakeMove(ctx context.Context, connID, code string, cell int) error {
	room, err := s.rooms.Get(code)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	if room.Outcome.Terminal() {
		return ErrRoomFinished
	}
	if !engine.ValidCell(cell) {
		return ErrInvalidCell
	}
	if room.Board[cell] != engine.Empty {
		return ErrCellOccupied
	}
	player := room.PlayerByConn(connID)
	if player == nil {
		return ErrNotSeated
	}
	if player.Symbol != room.Turn {
		return ErrNotYourTurn
	}

	if done := s.applyMove(room, cell, player.Symbol); done {
		return nil
	}

	// The computer opponent replies exactly one ply within the same
	// serialized operation, then control returns to the human.
	if room.VsAI && room.Turn == engine.O && len(room.Players) == 1 {
		if s.aiDelay > 0 {
			time.Sleep(s.aiDelay)
		}
		aiCell, ok := engine.BestMove(room.Board, engine.O)
		if !ok {
			return nil
		}
		s.applyMove(room, aiCell, engine.O)
	}
	return nil
}

// applyMove writes the mark, evaluates the board, and broadcasts the
// resulting state. It reports whether the round ended. Caller must hold the
// room lock and have validated the move.
func (s *roomServiceImpl) applyMove(room *session.Room, cell int, symbol engine.Mark) bool {
	room.Board[cell] = symbol
	room.Touch()

	outcome := engine.Evaluate(room.Board)
	if outcome.Terminal() {
		room.Outcome = outcome
		s.recordMatch(room)
		s.broadcaster.BroadcastEvent(room.Code, EventGameOver, GameOverPayload{
			Winner: winnerLabel(outcome),
			Board:  room.Board,
		})
		return true
	}

	room.Turn = room.Turn.Other()
	s.broadcaster.BroadcastEvent(room.Code, EventMoveMade, MovePayload{
		Board: room.Board,
		Turn:  room.Turn,
	})
	return false
}

// VoteRematch records a seated player's vote and resets the round once
// every required identity has voted.
func (s *roomServiceImpl) VoteRematch(ctx context.Context, identity, code string) error {
	room, err := s.rooms.Get(code)
	if err != nil {
		return err
	}

	room.Lock()
	defer room.Unlock()

	if room.PlayerByIdentity(identity) == nil {
		return ErrNotSeated
	}

	room.RematchVotes[identity] = struct{}{}
	room.Touch()

	required := len(room.Players)
	if room.VsAI || required < 1 {
		required = 1
	}

	s.broadcaster.BroadcastEvent(room.Code, EventRematchVote, RematchVotePayload{
		Votes:    len(room.RematchVotes),
		Required: required,
	})

	if len(room.RematchVotes) >= required {
		room.ResetRound()
		s.broadcaster.BroadcastEvent(room.Code, EventRematchStarted, RoomPayload{Room: viewOf(room)})
	}
	return nil
}

// Disconnect releases every weak reference the connection held: seats stay
// reserved for the identity with their connection cleared, spectator entries
// are dropped. Rooms left with nobody attached become eligible for eviction.
func (s *roomServiceImpl) Disconnect(identity, connID string) {
	for _, room := range s.rooms.List() {
		room.Lock()

		changed := false
		if p := room.PlayerByIdentity(identity); p != nil && p.ConnID == connID {
			p.ConnID = ""
			changed = true
		}
		if _, watching := room.Spectators[identity]; watching {
			delete(room.Spectators, identity)
		}

		if changed {
			room.Touch()
			s.broadcaster.BroadcastEvent(room.Code, EventPlayerLeft, RoomPayload{Room: viewOf(room)})
		}
		room.Unlock()
	}
}

// recordMatch emits exactly one archive record for the finished round.
// Archive failures are logged and never block or reverse the game state.
func (s *roomServiceImpl) recordMatch(room *session.Room) {
	record := &archive.MatchRecord{
		RoomCode: room.Code,
		PlayerX:  identityOf(room, engine.X),
		PlayerO:  identityOf(room, engine.O),
		Winner:   recordWinner(room.Outcome),
		PlayedAt: time.Now(),
	}
	if room.VsAI {
		record.PlayerO = archive.AIOpponent
	}

	if err := s.archiver.Record(record); err != nil {
		log.Printf("Warning: failed to archive match for room %s: %v", room.Code, err)
	}
}

// viewOf snapshots a room. Caller must hold the room lock.
func viewOf(room *session.Room) *RoomView {
	players := make([]PlayerView, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, PlayerView{
			Identity:  p.Identity,
			Symbol:    p.Symbol,
			Connected: p.Connected(),
		})
	}

	spectators := make([]string, 0, len(room.Spectators))
	for id := range room.Spectators {
		spectators = append(spectators, id)
	}

	return &RoomView{
		Code:         room.Code,
		CreatedBy:    room.CreatedBy,
		VsAI:         room.VsAI,
		Players:      players,
		Spectators:   spectators,
		Board:        room.Board,
		Turn:         room.Turn,
		Outcome:      room.Outcome,
		RematchVotes: len(room.RematchVotes),
		CreatedAt:    room.CreatedAt,
	}
}

func identityOf(room *session.Room, symbol engine.Mark) string {
	for _, p := range room.Players {
		if p.Symbol == symbol {
			return p.Identity
		}
	}
	return ""
}

// winnerLabel maps an outcome onto the gameOver wire value.
func winnerLabel(outcome engine.Outcome) string {
	if outcome == engine.Draw {
		return "draw"
	}
	return string(outcome.Winner())
}

// recordWinner maps an outcome onto the archive's winner column.
func recordWinner(outcome engine.Outcome) string {
	switch outcome {
	case engine.XWon:
		return archive.WinnerX
	case engine.OWon:
		return archive.WinnerO
	default:
		return archive.WinnerDraw
	}
}
