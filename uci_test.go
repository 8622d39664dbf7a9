package main

import (
	"strings"
	"testing"

	"gander-engine/engine"
	gm "gander-engine/gandermg"
)

func TestParseGoDepth(t *testing.T) {
	limits := parseGo([]string{"go", "depth", "6"}, gm.White)
	if limits.Depth != 6 {
		t.Errorf("depth: got %d want 6", limits.Depth)
	}
}

func TestParseGoClock(t *testing.T) {
	tokens := []string{"go", "wtime", "60000", "btime", "30000", "winc", "1000", "binc", "500"}

	w := parseGo(tokens, gm.White)
	if w.TimeMs != 60000 || w.IncMs != 1000 {
		t.Errorf("white clock: got %d/%d", w.TimeMs, w.IncMs)
	}

	b := parseGo(tokens, gm.Black)
	if b.TimeMs != 30000 || b.IncMs != 500 {
		t.Errorf("black clock: got %d/%d", b.TimeMs, b.IncMs)
	}
}

func TestParseGoInfinite(t *testing.T) {
	limits := parseGo([]string{"go", "infinite"}, gm.White)
	if !limits.Infinite {
		t.Errorf("infinite flag should be set")
	}
}

func TestParsePositionStartposWithMoves(t *testing.T) {
	board := parsePosition([]string{"position", "startpos", "moves", "e2e4", "e7e5"})
	if board == nil {
		t.Fatal("position should parse")
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := board.ToFEN(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestParsePositionFEN(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	board := parsePosition(append([]string{"position", "fen"}, strings.Fields(fen)...))
	if board == nil {
		t.Fatal("position fen should parse")
	}
	if board.ToFEN() != fen {
		t.Errorf("got %q want %q", board.ToFEN(), fen)
	}
}

func TestParsePositionIllegalMoveStopsApplying(t *testing.T) {
	// e2e5 is illegal; the position must stay at the state after e2e4.
	board := parsePosition([]string{"position", "startpos", "moves", "e2e4", "e2e5", "d7d5"})
	if board == nil {
		t.Fatal("position should parse")
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := board.ToFEN(); got != want {
		t.Errorf("illegal move should abort the tail: got %q", got)
	}
}

func TestParsePositionBadFENKeepsNil(t *testing.T) {
	if board := parsePosition([]string{"position", "fen", "not", "a", "fen"}); board != nil {
		t.Errorf("invalid fen should return nil")
	}
}

func TestSetOptionHashOutOfRangeKeepsPrior(t *testing.T) {
	engine.TT.Resize(1)
	before := engine.TT.IsInitialized()
	parseSetOption([]string{"setoption", "name", "Hash", "value", "999999"})
	if engine.TT.IsInitialized() != before {
		t.Errorf("out-of-range hash must not touch the table")
	}
}
