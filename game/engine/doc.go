// Package engine provides the core game logic for tic-tac-toe.
//
// The engine package is pure and stateless: it knows nothing about rooms,
// players, or connections. It implements:
//   - The 9-cell board model and its X/O/empty marks
//   - Win and draw evaluation over the 8 fixed win lines
//   - The computer opponent's move search (minimax with alpha-beta pruning)
//
// Core Types:
//
// Board is a fixed array of nine Mark cells indexed 0..8, row-major. Outcome
// reports whether a board is still in progress, won by a side, or drawn.
//
// Usage:
//
//	outcome := engine.Evaluate(board)
//	if outcome == engine.InProgress {
//		cell, ok := engine.BestMove(board, engine.O)
//		if ok {
//			board[cell] = engine.O
//		}
//	}
//
// Game Rules:
//
// X always moves first. A line of three equal non-empty marks wins; a full
// board with no winning line is a draw. The search plays perfectly: it
// prefers faster wins and slower losses, and breaks ties deterministically
// by the lowest cell index.
package engine
