package engine

import (
	"fmt"

	"golang.org/x/exp/constraints"

	gm "gander-engine/gandermg"
)

// History heuristic: per (piece type, destination) cutoff scores for quiet
// moves, saturating at historyMaxVal.
var historyMove [7][64]int32

const historyMaxVal = 16384

// incrementHistoryScore bumps the history score for a quiet move that caused
// a beta cutoff, saturating at historyMaxVal.
func incrementHistoryScore(pt gm.PieceType, move gm.Move, depth int8) {
	h := &historyMove[pt][move.To()]
	*h += int32(depth) * int32(depth)
	if *h > historyMaxVal {
		*h = historyMaxVal
	}
}

// ClearHistoryTable zeroes the history scores.
func ClearHistoryTable() {
	for pt := 0; pt < 7; pt++ {
		for sq := 0; sq < 64; sq++ {
			historyMove[pt][sq] = 0
		}
	}
}

func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts v to the inclusive range [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func getPVLineString(pvLine PVLine) string {
	theMoves := ""
	for i, move := range pvLine.Moves {
		if i > 0 {
			theMoves += " "
		}
		theMoves += move.String()
	}
	return theMoves
}

// getMateOrCPScore renders a score for UCI output: "cp <n>" for ordinary
// scores, "mate <n>" in full moves for forced mates.
func getMateOrCPScore(score int32) string {
	if score >= MateThreshold {
		pliesToMate := MateScore - score
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if score <= -MateThreshold {
		pliesToMate := MateScore + score
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// ResetForNewGame clears all state that persists between searches.
func ResetForNewGame() {
	if TT.IsInitialized() {
		TT.Clear()
	}
	KillerMoveTable.ClearKillers()
	ClearHistoryTable()
	ResetStateTracking(nil)
}
