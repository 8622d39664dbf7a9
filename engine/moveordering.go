package engine

import (
	gm "gander-engine/gandermg"
)

type scoredMove struct {
	move  gm.Move
	score int32
}

type moveList struct {
	moves []scoredMove
}

/*
Move ordering offsets:
  - The TT move goes first; it was the best move the last time this position
    was searched, and in a re-search it usually still is.
  - Captures by MVV-LVA next: best victim first, cheapest attacker breaking
    ties, so winning captures bubble up.
  - Quiet queen promotions just below the captures.
  - Killers for this ply, then history-scored quiets. History is capped at
    historyMaxVal (16384), which lies above the killer and capture scores, so
    a saturated history entry can outrank them.
*/
const (
	ttMoveScore       int32 = 100_000
	captureOffset     int32 = 10_000
	promotionScore    int32 = 9_000
	killerFirstScore  int32 = 8_000
	killerSecondScore int32 = 7_000
)

// orderNextMove selection-sorts the single entry at currIndex; lists are
// short, so one pass per pick beats a full sort on early cutoffs.
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := currIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// mvvLvaScore scores a capture as 10x the victim's value minus the attacker's
// piece index, on top of the capture offset.
func mvvLvaScore(b *gm.Board, move gm.Move) int32 {
	victim := b.PieceAt(move.To()).Type()
	if victim == gm.PieceTypeNone {
		// En passant: pawn takes pawn.
		victim = gm.PieceTypePawn
	}
	attacker := b.PieceAt(move.From()).Type()
	return captureOffset + 10*pieceValueMG[victim] - (int32(attacker) - 1)
}

// scoreMovesList assigns a sort key to every move per the ordering above.
func scoreMovesList(b *gm.Board, moves []gm.Move, ply int8, ttMove gm.Move) moveList {
	list := moveList{moves: make([]scoredMove, len(moves))}
	for i, move := range moves {
		var score int32
		switch {
		case move == ttMove && ttMove != 0:
			score = ttMoveScore
		case b.IsCapture(move):
			score = mvvLvaScore(b, move)
			if move.IsPromotion() {
				score += promotionScore
			}
		case move.IsPromotion() && move.PromotionPieceType() == gm.PieceTypeQueen:
			score = promotionScore
		case KillerMoveTable.KillerMoves[ply][0] == move:
			score = killerFirstScore
		case KillerMoveTable.KillerMoves[ply][1] == move:
			score = killerSecondScore
		default:
			score = Min(historyMove[b.PieceAt(move.From()).Type()][move.To()], historyMaxVal)
		}
		list.moves[i] = scoredMove{move: move, score: score}
	}
	return list
}

// scoreMovesListCaptures keeps only captures (and capture promotions) from a
// capture generation, scored by MVV-LVA for quiescence.
func scoreMovesListCaptures(b *gm.Board, moves []gm.Move) moveList {
	list := moveList{moves: make([]scoredMove, 0, len(moves))}
	for _, move := range moves {
		if !b.IsCapture(move) {
			continue
		}
		score := mvvLvaScore(b, move)
		if move.IsPromotion() {
			score += promotionScore
		}
		list.moves = append(list.moves, scoredMove{move: move, score: score})
	}
	return list
}
