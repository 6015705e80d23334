// Package service implements the per-room state machine.
//
// RoomService is the single entry point for everything that mutates a room:
// creation, joining (with reconnect rebinding and spectator overflow),
// move application (including the computer opponent's reply), rematch
// voting, and disconnect handling. Each operation locks the target room for
// its entire duration, so two concurrent moves can never land in the same
// cell or be accepted for the same turn; operations on distinct rooms do
// not contend.
//
// The service broadcasts room-wide events through the Broadcaster port
// (implemented by the websocket hub) and emits one match record to the
// archive per terminal outcome. Archive failures are logged and never block
// or roll back game state.
package service
