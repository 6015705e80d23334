package engine

// Mark represents the content of a single board cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Other returns the opposing mark. Empty is returned unchanged.
func (m Mark) Other() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// BoardSize is the number of cells on the board.
const BoardSize = 9

// Board is a tic-tac-toe board, row-major, cells indexed 0..8.
type Board [BoardSize]Mark

// Outcome represents the evaluation result of a board.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	XWon       Outcome = "x_won"
	OWon       Outcome = "o_won"
	Draw       Outcome = "draw"
)

// Terminal reports whether the outcome ends the current round.
func (o Outcome) Terminal() bool {
	return o == XWon || o == OWon || o == Draw
}

// Winner returns the winning mark, or Empty for non-win outcomes.
func (o Outcome) Winner() Mark {
	switch o {
	case XWon:
		return X
	case OWon:
		return O
	default:
		return Empty
	}
}

// winLines enumerates the 8 possible three-in-a-row lines:
// three rows, three columns, two diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Evaluate checks the board for a winner or a draw. It is pure and total:
// any board yields exactly one Outcome.
func Evaluate(b Board) Outcome {
	for _, line := range winLines {
		a := b[line[0]]
		if a != Empty && a == b[line[1]] && a == b[line[2]] {
			if a == X {
				return XWon
			}
			return OWon
		}
	}
	if b.Full() {
		return Draw
	}
	return InProgress
}

// Full reports whether every cell holds a mark.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// ValidCell reports whether idx addresses a cell on the board.
func ValidCell(idx int) bool {
	return idx >= 0 && idx < BoardSize
}
