package engine

import (
	"testing"

	gm "gander-engine/gandermg"
)

// In the exchange position after 1.e4 d5, the capture e4xd5 must be ordered
// before every quiet move.
func TestMVVLVACaptureOrderedFirst(t *testing.T) {
	board := parseBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2")
	resetSearchGlobals(board)

	list := scoreMovesList(board, board.GenerateLegalMoves(), 0, 0)
	orderNextMove(0, &list)

	if got := list.moves[0].move.String(); got != "e4d5" {
		t.Errorf("expected e4d5 first, got %s (score %d)", got, list.moves[0].score)
	}
	for _, sm := range list.moves[1:] {
		if !board.IsCapture(sm.move) && sm.move.IsPromotion() == false && sm.score >= list.moves[0].score {
			t.Errorf("quiet move %s (score %d) outranks the capture", sm.move, sm.score)
		}
	}
}

func TestTTMoveOrderedAboveEverything(t *testing.T) {
	board := parseBoard(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2")
	resetSearchGlobals(board)

	ttMove, _ := gm.ParseMove("g1f3")
	list := scoreMovesList(board, board.GenerateLegalMoves(), 0, ttMove)
	orderNextMove(0, &list)

	if list.moves[0].move != ttMove {
		t.Errorf("TT move should be tried first, got %s", list.moves[0].move)
	}
	if list.moves[0].score != ttMoveScore {
		t.Errorf("TT move score should be %d, got %d", ttMoveScore, list.moves[0].score)
	}
}

// MVV-LVA: taking the queen with a pawn beats taking it with the rook, which
// beats taking a pawn at all.
func TestMVVLVAVictimAndAttackerOrder(t *testing.T) {
	// Pawn b4 and rook c1 can both capture the queen on c5; pawn g4 can
	// take the pawn on h5.
	board := parseBoard(t, "4k3/8/8/2q4p/1P4P1/8/8/2R1K3 w - - 0 1")
	resetSearchGlobals(board)

	pawnTakesQueen, _ := gm.ParseMove("b4c5")
	rookTakesQueen, _ := gm.ParseMove("c1c5")
	pawnTakesPawn, _ := gm.ParseMove("g4h5")

	list := scoreMovesList(board, board.GenerateLegalMoves(), 0, 0)
	scores := map[gm.Move]int32{}
	for _, sm := range list.moves {
		scores[sm.move] = sm.score
	}

	if scores[pawnTakesQueen] <= scores[rookTakesQueen] {
		t.Errorf("cheaper attacker should break the tie: pawn %d, rook %d",
			scores[pawnTakesQueen], scores[rookTakesQueen])
	}
	if scores[rookTakesQueen] <= scores[pawnTakesPawn] {
		t.Errorf("bigger victim should dominate: queen %d, pawn %d",
			scores[rookTakesQueen], scores[pawnTakesPawn])
	}
}

func TestKillerAndHistoryOrdering(t *testing.T) {
	board := parseBoard(t, gm.FENStartPos)
	resetSearchGlobals(board)

	killer, _ := gm.ParseMove("b1c3")
	KillerMoveTable.InsertKiller(killer, 0)

	historyMoveStr, _ := gm.ParseMove("g1f3")
	incrementHistoryScore(gm.PieceTypeKnight, historyMoveStr, 5)

	list := scoreMovesList(board, board.GenerateLegalMoves(), 0, 0)
	scores := map[gm.Move]int32{}
	for _, sm := range list.moves {
		scores[sm.move] = sm.score
	}

	if scores[killer] != killerFirstScore {
		t.Errorf("killer should score %d, got %d", killerFirstScore, scores[killer])
	}
	if scores[historyMoveStr] != 25 {
		t.Errorf("history move should score depth^2=25, got %d", scores[historyMoveStr])
	}
	if scores[killer] <= scores[historyMoveStr] {
		t.Errorf("killer should outrank history-scored quiets")
	}
}

func TestHistorySaturates(t *testing.T) {
	ClearHistoryTable()
	m, _ := gm.ParseMove("g1f3")
	for i := 0; i < 1000; i++ {
		incrementHistoryScore(gm.PieceTypeKnight, m, 8)
	}
	if got := historyMove[gm.PieceTypeKnight][m.To()]; got != historyMaxVal {
		t.Errorf("history should saturate at %d, got %d", historyMaxVal, got)
	}
}

func TestKillerSlotsShift(t *testing.T) {
	var k KillerStruct
	m1, _ := gm.ParseMove("b1c3")
	m2, _ := gm.ParseMove("g1f3")

	k.InsertKiller(m1, 3)
	k.InsertKiller(m2, 3)

	if k.KillerMoves[3][0] != m2 || k.KillerMoves[3][1] != m1 {
		t.Errorf("killer slots should shift: got %v %v", k.KillerMoves[3][0], k.KillerMoves[3][1])
	}

	// Re-inserting the current slot-0 killer must not duplicate it.
	k.InsertKiller(m2, 3)
	if k.KillerMoves[3][0] != m2 || k.KillerMoves[3][1] != m1 {
		t.Errorf("re-inserting slot 0 should be a no-op")
	}
}
