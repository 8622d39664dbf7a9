package engine

import (
	gm "gander-engine/gandermg"
)

// PVLine holds the principal variation collected while searching.
type PVLine struct {
	Moves []gm.Move
}

// Clear empties the line.
func (pv *PVLine) Clear() { pv.Moves = pv.Moves[:0] }

// Update sets the line to move followed by the child's line.
func (pv *PVLine) Update(move gm.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns an independent copy of the line.
func (pv PVLine) Clone() PVLine {
	c := PVLine{Moves: make([]gm.Move, len(pv.Moves))}
	copy(c.Moves, pv.Moves)
	return c
}

// GetPVMove returns the first move of the line, or the zero move if empty.
func (pv PVLine) GetPVMove() gm.Move {
	if len(pv.Moves) == 0 {
		return 0
	}
	return pv.Moves[0]
}
