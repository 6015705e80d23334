// Package session provides room entities and their registry.
//
// A Room is one active tic-tac-toe session: its board, turn, seats,
// spectators, and rematch votes, guarded by a per-room mutex so that all
// operations against the same room serialize while distinct rooms run in
// parallel.
//
// The Manager is the single authority over room lifecycle. It creates rooms
// under short human-enterable codes (case-insensitive, collision-checked),
// resolves lookups, and evicts rooms that have sat idle with nobody attached.
//
// Usage:
//
//	registry := session.NewManager(6)
//	room := registry.Create(userID, false)
//
//	found, err := registry.Get(room.Code)
//	if err != nil {
//		// session.ErrRoomNotFound
//	}
//
// Cleanup:
//
// Callers are expected to run CleanupIdleRooms periodically; a room becomes
// eligible once it has no connected players, no spectators, and no recent
// activity.
package session
