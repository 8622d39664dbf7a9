package engine

import (
	gm "gander-engine/gandermg"
)

// KillerStruct keeps two quiet moves per ply that caused beta cutoffs.
type KillerStruct struct {
	KillerMoves [MaxPly + 1][2]gm.Move
}

// InsertKiller shifts slot 0 into slot 1 and records the new killer, unless
// it is already in slot 0.
func (k *KillerStruct) InsertKiller(move gm.Move, ply int8) {
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// IsKiller reports whether the move occupies either killer slot for the ply.
func (k *KillerStruct) IsKiller(move gm.Move, ply int8) bool {
	return k.KillerMoves[ply][0] == move || k.KillerMoves[ply][1] == move
}

// ClearKillers empties the killer table.
func (k *KillerStruct) ClearKillers() {
	for ply := 0; ply <= MaxPly; ply++ {
		k.KillerMoves[ply][0] = 0
		k.KillerMoves[ply][1] = 0
	}
}
