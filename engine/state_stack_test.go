package engine

import (
	"testing"

	gm "gander-engine/gandermg"
)

func TestRepetitionDetectedOnPath(t *testing.T) {
	board := parseBoard(t, gm.FENStartPos)
	ResetStateTracking(board)

	// Nf3 Nf6 Ng1 Ng8 walks back to the starting position.
	for _, ms := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, _ := gm.ParseMove(ms)
		if ok, _ := board.MakeMove(m); !ok {
			t.Fatalf("%s should be legal", ms)
		}
		RecordState(board)
	}

	if stateStack[0] != stateStack[len(stateStack)-1] {
		t.Fatalf("knight shuffle should reproduce the starting hash")
	}
	if !isRepetition(board) {
		t.Errorf("twofold occurrence on the path should count as a repetition")
	}
}

func TestRepetitionBoundedByHalfmoveClock(t *testing.T) {
	// The current hash appears earlier, but an irreversible move (clock 0)
	// separates them; the scan must not look past it.
	board := parseBoard(t, "4k3/8/8/8/8/8/8/4K2R b K - 0 40")
	ResetStateTracking(board)
	stateStack = append([]uint64{board.Hash(), 0xBEEF}, stateStack...)

	if isRepetition(board) {
		t.Errorf("entries older than the halfmove clock must be ignored")
	}
}

func TestPushPopKeepPathAligned(t *testing.T) {
	board := parseBoard(t, gm.FENStartPos)
	ResetStateTracking(board)

	m, _ := gm.ParseMove("e2e4")
	ok, st := board.MakeMove(m)
	if !ok {
		t.Fatal("e2e4 should be legal")
	}
	pushState(board)
	if len(stateStack) != 2 || stateStack[1] != board.Hash() {
		t.Fatalf("push should append the new hash")
	}
	popState()
	board.UnmakeMove(m, st)
	if len(stateStack) != 1 || stateStack[0] != board.Hash() {
		t.Fatalf("pop should restore the path")
	}
}

func TestEnsureSyncRebuildsOnMismatch(t *testing.T) {
	board := parseBoard(t, gm.FENStartPos)
	ResetStateTracking(board)
	stateStack[0] = 0xDEAD

	ensureStateStackSynced(board)
	if len(stateStack) != 1 || stateStack[0] != board.Hash() {
		t.Errorf("sync should rebuild a stale path")
	}
}
