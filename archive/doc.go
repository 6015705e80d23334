// Package archive records finished matches.
//
// The archive is a best-effort sink outside the game's consistency boundary:
// exactly one MatchRecord is emitted per terminal outcome, and a failed write
// is logged by the caller without blocking or rolling back the game state
// already broadcast to players.
//
// FileArchive is the default implementation, an append-only JSON-lines file
// under the server's data directory. Recent reads back the newest records
// for the history endpoint.
package archive
