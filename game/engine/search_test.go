package engine

import "testing"

func TestBestMoveBlocksImmediateLoss(t *testing.T) {
	// X,X,_ / O,O,_ / _,_,_ with O to move. X threatens to win at 2, but
	// O completing its own row at 5 ends the game first and outscores the
	// block. Either way the chosen cell must not be a losing move.
	b := boardOf(t, "XX.OO....")
	cell, ok := BestMove(b, O)
	if !ok {
		t.Fatal("expected a move")
	}
	if cell != 5 {
		t.Errorf("BestMove = %d, want 5 (completes O's row before blocking)", cell)
	}
}

func TestBestMoveTakesWin(t *testing.T) {
	// O can win at 8 on the main-column line 2,5,8.
	b := boardOf(t, "XXO.XO...")
	cell, ok := BestMove(b, O)
	if !ok {
		t.Fatal("expected a move")
	}
	if cell != 8 {
		t.Errorf("BestMove = %d, want 8 (winning cell)", cell)
	}
}

func TestBestMoveBlocksWhenNoWin(t *testing.T) {
	// X holds 0,4 (diagonal threat building), O holds 1. X to threaten at 8;
	// here X has 0 and 4 with 8 open: O must take 8.
	b := boardOf(t, "XO..X....")
	cell, ok := BestMove(b, O)
	if !ok {
		t.Fatal("expected a move")
	}
	if cell != 8 {
		t.Errorf("BestMove = %d, want 8 (blocks the 0-4-8 diagonal)", cell)
	}
}

func TestBestMoveNeverPicksOccupiedCell(t *testing.T) {
	boards := []string{
		".........",
		"X........",
		"XO.X.....",
		"XOXO.X...",
		"XOXOXO.X.",
	}
	for _, pattern := range boards {
		b := boardOf(t, pattern)
		toMove := X
		if countMarks(b, X) > countMarks(b, O) {
			toMove = O
		}
		cell, ok := BestMove(b, toMove)
		if !ok {
			t.Fatalf("BestMove(%q) returned no move", pattern)
		}
		if b[cell] != Empty {
			t.Errorf("BestMove(%q) picked occupied cell %d", pattern, cell)
		}
	}
}

func TestBestMoveOnTerminalBoard(t *testing.T) {
	if _, ok := BestMove(boardOf(t, "XXXOO...."), O); ok {
		t.Error("expected no move on a won board")
	}
	if _, ok := BestMove(boardOf(t, "XXOOOXXOX"), X); ok {
		t.Error("expected no move on a drawn board")
	}
}

func TestBestMoveIsDeterministic(t *testing.T) {
	b := boardOf(t, "....X....")
	first, ok := BestMove(b, O)
	if !ok {
		t.Fatal("expected a move")
	}
	for i := 0; i < 5; i++ {
		cell, ok := BestMove(b, O)
		if !ok || cell != first {
			t.Fatalf("BestMove not deterministic: got %d then %d", first, cell)
		}
	}
}

// TestPerfectPlayDraws plays the search against itself from the empty board.
// Perfect play from both sides always ends in a draw.
func TestPerfectPlayDraws(t *testing.T) {
	var b Board
	turn := X
	for Evaluate(b) == InProgress {
		cell, ok := BestMove(b, turn)
		if !ok {
			t.Fatal("search returned no move mid-game")
		}
		if b[cell] != Empty {
			t.Fatalf("search picked occupied cell %d", cell)
		}
		b[cell] = turn
		turn = turn.Other()
	}
	if got := Evaluate(b); got != Draw {
		t.Errorf("self-play ended %v, want draw", got)
	}
}

func countMarks(b Board, m Mark) int {
	n := 0
	for _, c := range b {
		if c == m {
			n++
		}
	}
	return n
}
