package engine

import (
	gm "gander-engine/gandermg"
)

// The repetition path: an ordered sequence of Zobrist keys from the game
// history through the current search path, extended on every make and
// truncated on every unmake. Inside the search a single earlier occurrence
// of the current hash already counts as a draw, so repetitions straddling
// the root are not missed.

const fiftyMoveLimit = 100

var stateStack []uint64

// ResetStateTracking rebuilds the stack so it only contains the given board
// (or nothing if nil).
func ResetStateTracking(board *gm.Board) {
	stateStack = stateStack[:0]
	if board != nil {
		stateStack = append(stateStack, board.Hash())
	}
}

// RecordState appends the board's current hash to the path. The UCI layer
// calls this for each game move so in-game repetitions are visible to the
// search.
func RecordState(board *gm.Board) {
	stateStack = append(stateStack, board.Hash())
}

// ensureStateStackSynced guarantees that the top of the stack reflects the
// board position.
func ensureStateStackSynced(board *gm.Board) {
	if len(stateStack) == 0 || stateStack[len(stateStack)-1] != board.Hash() {
		ResetStateTracking(board)
	}
}

func pushState(board *gm.Board) {
	stateStack = append(stateStack, board.Hash())
}

func popState() {
	if len(stateStack) > 0 {
		stateStack = stateStack[:len(stateStack)-1]
	}
}

// isRepetition reports whether the current position already occurred earlier
// on the path. The scan is bounded by the halfmove clock: an irreversible
// move makes older entries unreachable.
func isRepetition(board *gm.Board) bool {
	n := len(stateStack)
	if n < 2 {
		return false
	}
	target := stateStack[n-1]
	start := n - 1 - board.HalfmoveClock()
	if start < 0 {
		start = 0
	}
	for i := n - 3; i >= start; i -= 2 {
		if stateStack[i] == target {
			return true
		}
	}
	return false
}

// isDraw combines repetition, the 50-move rule and insufficient material.
// A full clock while in check is not a draw yet: the position may be mate,
// which the move loop detects.
func isDraw(board *gm.Board, inCheck bool) bool {
	if board.HalfmoveClock() >= fiftyMoveLimit && !inCheck {
		return true
	}
	if board.OnlyKingsAndMinors() {
		return true
	}
	return isRepetition(board)
}
