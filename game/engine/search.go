package engine

// Score bounds for the minimax search. A win is always worth more than the
// deepest possible loss, so the exact values only need to dominate depth.
const (
	scoreMin = -100
	scoreMax = 100
)

// BestMove returns the strongest cell for toMove on the given board using
// exhaustive minimax with alpha-beta pruning. O is the maximizing side and X
// the minimizing side. Terminal positions score 10-depth for an O win and
// depth-10 for an X win, so the search prefers faster wins and slower losses.
// Ties between equally scored cells resolve to the lowest index.
//
// ok is false only when the board is already terminal or has no empty cell.
func BestMove(b Board, toMove Mark) (cell int, ok bool) {
	if Evaluate(b) != InProgress {
		return 0, false
	}

	best := -1
	if toMove == O {
		alpha := scoreMin
		for i := 0; i < BoardSize; i++ {
			if b[i] != Empty {
				continue
			}
			b[i] = O
			score := minimax(b, X, 1, alpha, scoreMax)
			b[i] = Empty
			if score > alpha {
				alpha = score
				best = i
			}
		}
	} else {
		beta := scoreMax
		for i := 0; i < BoardSize; i++ {
			if b[i] != Empty {
				continue
			}
			b[i] = X
			score := minimax(b, O, 1, scoreMin, beta)
			b[i] = Empty
			if score < beta {
				beta = score
				best = i
			}
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// minimax scores the board from O's perspective with toMove to play.
func minimax(b Board, toMove Mark, depth, alpha, beta int) int {
	switch Evaluate(b) {
	case OWon:
		return 10 - depth
	case XWon:
		return depth - 10
	case Draw:
		return 0
	}

	if toMove == O {
		for i := 0; i < BoardSize; i++ {
			if b[i] != Empty {
				continue
			}
			b[i] = O
			score := minimax(b, X, depth+1, alpha, beta)
			b[i] = Empty
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break
			}
		}
		return alpha
	}

	for i := 0; i < BoardSize; i++ {
		if b[i] != Empty {
			continue
		}
		b[i] = X
		score := minimax(b, O, depth+1, alpha, beta)
		b[i] = Empty
		if score < beta {
			beta = score
		}
		if alpha >= beta {
			break
		}
	}
	return beta
}
